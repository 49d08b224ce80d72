// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parser

import (
	"fmt"
	"slices"
	"strings"

	"github.com/aicli/ai/pkg/values"
)

// Descriptor is a declarative rule that binds one option to one key.
// Descriptors are built once, when a table is declared, and never change.
type Descriptor struct {
	alias    string   // e.g. "--group"; may be empty
	aliases  []string // extra exact spellings, e.g. "-h"
	key      string
	segs     []string
	spec     string
	patterns []pattern
	counts   []int
	legal    []string
	def      string
	hasDef   bool
	implied  []values.Pair
	add      bool
	sep      string
	display  string
	example  string
	hidden   bool
}

// Option configures a Descriptor.
type Option func(*Descriptor)

// OneOf restricts the captured values to vals (compared case-insensitively).
func OneOf(vals ...string) Option {
	return func(d *Descriptor) { d.legal = append(d.legal, vals...) }
}

// Default sets the literal written when the option is given with no value.
func Default(v string) Option {
	return func(d *Descriptor) { d.def, d.hasDef = v, true }
}

// Implies adds a key/value pair written whenever the descriptor fires.
func Implies(key, value string) Option {
	return func(d *Descriptor) { d.implied = append(d.implied, values.Pair{Key: key, Value: value}) }
}

// Add makes the descriptor append to the key, joined by sep, instead of
// replacing it.
func Add(sep string) Option {
	return func(d *Descriptor) { d.add, d.sep = true, sep }
}

// Separator sets the join string for "+" value counts. Default ";".
func Separator(sep string) Option {
	return func(d *Descriptor) { d.sep = sep }
}

// Alias adds exact option spellings, such as "-h".
func Alias(names ...string) Option {
	return func(d *Descriptor) { d.aliases = append(d.aliases, names...) }
}

// Display sets the human name used in diagnostics, e.g. "group".
func Display(name string) Option {
	return func(d *Descriptor) { d.display = name }
}

// Example sets the usage shown when a value is missing,
// e.g. "--group GROUP".
func Example(text string) Option {
	return func(d *Descriptor) { d.example = text }
}

// Hidden keeps the descriptor out of help output.
func Hidden() Option {
	return func(d *Descriptor) { d.hidden = true }
}

// New declares a descriptor. alias is the option spelling (may be empty),
// key the destination, pattern the requirement pattern and count the value
// count spec. New panics if the declaration is malformed.
func New(alias, key, pattern, count string, opts ...Option) *Descriptor {
	d := &Descriptor{alias: alias, key: key, spec: pattern, sep: ";"}
	if key == "" {
		panic("parser: descriptor with empty key")
	}
	d.segs = strings.Split(key, ".")
	if slices.Contains(d.segs, "") {
		panic(fmt.Sprintf("parser: %s: empty key segment", key))
	}
	for _, o := range opts {
		o(d)
	}
	for _, a := range append([]string{alias}, d.aliases...) {
		if a != "" && !strings.HasPrefix(a, "-") {
			panic(fmt.Sprintf("parser: %s: alias %q must start with '-'", key, a))
		}
	}
	d.patterns = compilePatterns(key, d.segs, pattern)
	d.counts = compileCounts(key, count)
	if _, ok := d.canonical(d.defaultValue()); slices.Contains(d.counts, 0) && !ok {
		panic(fmt.Sprintf("parser: %s: default %q is not one of %s", key, d.defaultValue(), strings.Join(d.legal, ";")))
	}
	return d
}

// TrueFalse declares an optional boolean: "--key" writes true and
// "--key false" writes false.
func TrueFalse(alias, key, pattern string, opts ...Option) *Descriptor {
	return New(alias, key, pattern, "1;0", append([]Option{OneOf("true", "false"), Default("true")}, opts...)...)
}

// Key returns the destination key.
func (d *Descriptor) Key() string { return d.key }

// Alias returns the option spelling, or "" if the descriptor has none.
func (d *Descriptor) Alias() string { return d.alias }

// Pattern returns the requirement pattern as declared.
func (d *Descriptor) Pattern() string { return d.spec }

// Legal returns the allowed values, or nil if any value is allowed.
func (d *Descriptor) Legal() []string { return slices.Clone(d.legal) }

// Implied returns the pairs written alongside the primary write.
func (d *Descriptor) Implied() []values.Pair { return slices.Clone(d.implied) }

// IsHidden reports whether the descriptor is left out of help.
func (d *Descriptor) IsHidden() bool { return d.hidden }

// Label is the spelling used to name the descriptor to users.
func (d *Descriptor) Label() string {
	if d.alias != "" {
		return d.alias
	}
	return "--" + d.key
}

// DisplayName is the human name of the value.
func (d *Descriptor) DisplayName() string {
	if d.display != "" {
		return d.display
	}
	return strings.ReplaceAll(d.key, ".", " ")
}

// Example returns the usage shown for a missing value.
func (d *Descriptor) Example() string {
	if d.example != "" {
		return d.example
	}
	switch d.counts[0] {
	case 0:
		return d.Label()
	case 2:
		return d.Label() + " NAME VALUE"
	}
	placeholder := strings.ToUpper(d.segs[len(d.segs)-1])
	if len(d.legal) > 0 {
		placeholder = strings.Join(d.legal, "|")
	}
	if d.counts[0] == countMany {
		return fmt.Sprintf("%s %s [...]", d.Label(), placeholder)
	}
	return d.Label() + " " + placeholder
}

// Names reports whether the option name (without leading dashes) selects
// this descriptor.
func (d *Descriptor) Names(name string) bool {
	if name == "" {
		return false
	}
	for _, a := range d.exact() {
		if strings.EqualFold(a, name) {
			return true
		}
	}
	parts := strings.Split(name, ".")
	for _, p := range d.patterns {
		if p.matches(d.segs, parts) {
			return true
		}
	}
	return false
}

// Spellings returns every option name (without dashes) that selects this
// descriptor when it is considered on its own.
func (d *Descriptor) Spellings() []string {
	out := d.exact()
	for _, p := range d.patterns {
		for _, s := range p.spellings(d.segs) {
			if !slices.Contains(out, s) {
				out = append(out, s)
			}
		}
	}
	return out
}

func (d *Descriptor) exact() []string {
	var out []string
	for _, a := range append([]string{d.alias}, d.aliases...) {
		if a = strings.TrimLeft(a, "-"); a != "" {
			out = append(out, a)
		}
	}
	return out
}

func (d *Descriptor) defaultValue() string {
	if d.hasDef {
		return d.def
	}
	return "true"
}

// canonical returns the declared spelling of v, or v itself when the
// descriptor accepts any value. ok is false when v is not legal.
func (d *Descriptor) canonical(v string) (string, bool) {
	if len(d.legal) == 0 {
		return v, true
	}
	for _, l := range d.legal {
		if strings.EqualFold(l, v) {
			return l, true
		}
	}
	return "", false
}

func (d *Descriptor) String() string {
	return fmt.Sprintf("%s (%s %s)", d.Label(), d.key, d.spec)
}
