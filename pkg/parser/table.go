// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parser

import (
	"fmt"
	"slices"
)

// Table is the ordered list of descriptors legal for one command.
// Declaration order is priority order: the first descriptor that names an
// option owns it.
type Table struct {
	name       string
	descs      []*Descriptor
	positional string
}

// NewTable declares a table. Nil descriptors are skipped so that optional
// groups can be spliced in.
func NewTable(name string, descs ...*Descriptor) *Table {
	t := &Table{name: name}
	for _, d := range descs {
		if d != nil {
			t.descs = append(t.descs, d)
		}
	}
	return t
}

// WithPositional returns a copy of t that collects bare values under key
// instead of rejecting them.
func (t *Table) WithPositional(key string) *Table {
	c := *t
	c.positional = key
	return &c
}

// Name returns the command the table belongs to.
func (t *Table) Name() string { return t.name }

// Positional returns the key bare values are collected under, or "".
func (t *Table) Positional() string { return t.positional }

// Descriptors returns the descriptors in priority order.
func (t *Table) Descriptors() []*Descriptor { return slices.Clone(t.descs) }

// Lookup returns the first descriptor that names the option, or nil.
func (t *Table) Lookup(name string) *Descriptor {
	for _, d := range t.descs {
		if d.Names(name) {
			return d
		}
	}
	return nil
}

// Shadow records an option spelling that one descriptor would accept but
// an earlier one captures.
type Shadow struct {
	Spelling string
	Owner    *Descriptor
	Shadowed *Descriptor
}

func (s Shadow) String() string {
	return fmt.Sprintf("--%s: %s shadows %s", s.Spelling, s.Owner, s.Shadowed)
}

// Shadowed lists every spelling of every descriptor that an earlier
// descriptor in the table captures.
func (t *Table) Shadowed() []Shadow {
	var out []Shadow
	for j, d := range t.descs {
		for _, s := range d.Spellings() {
			for _, earlier := range t.descs[:j] {
				if earlier.Names(s) {
					out = append(out, Shadow{Spelling: s, Owner: earlier, Shadowed: d})
					break
				}
			}
		}
	}
	return out
}

// Unreachable lists descriptors that no option spelling can select.
func (t *Table) Unreachable() []*Descriptor {
	var out []*Descriptor
	for _, d := range t.descs {
		reachable := false
		for _, s := range d.Spellings() {
			if t.Lookup(s) == d {
				reachable = true
				break
			}
		}
		if !reachable {
			out = append(out, d)
		}
	}
	return out
}

// spellings returns the suggestion candidates for the table, as typed.
func (t *Table) spellings() []string {
	var out []string
	for _, d := range t.descs {
		if d.hidden {
			continue
		}
		for _, s := range []string{d.Label(), "--" + d.key} {
			if !slices.Contains(out, s) {
				out = append(out, s)
			}
		}
	}
	return out
}
