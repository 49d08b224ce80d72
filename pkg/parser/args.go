// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parser

import (
	"slices"
	"strings"

	"github.com/aicli/ai/pkg/tokens"
	"github.com/aicli/ai/pkg/values"
)

// Args renders values from store as options that t binds back to the
// same values. With no keys, every key in store is rendered.
//
// A key written by a two-value option is spelled "--option NAME VALUE".
// Keys that only an implied write can set are left to the option that
// implies them. Reserved keys and keys no descriptor can bind are
// skipped. Options that imply other keys come first so that an explicit
// value for an implied key still wins on re-parse.
func (t *Table) Args(store *values.Store, keys ...string) []string {
	if len(keys) == 0 {
		keys = store.Names()
	}
	var implying, rest []string
	for _, key := range keys {
		v, ok := store.Get(key)
		if !ok || values.Reserved(key) {
			continue
		}
		d, args := t.render(key, v)
		if d == nil {
			continue
		}
		if len(d.implied) > 0 {
			implying = append(implying, args...)
		} else {
			rest = append(rest, args...)
		}
	}
	return append(implying, rest...)
}

// render returns the descriptor and options that write key=v, or nil.
func (t *Table) render(key, v string) (*Descriptor, []string) {
	for _, d := range t.descs {
		if d.key != key {
			continue
		}
		if args := t.renderValue(d, v); args != nil {
			return d, args
		}
	}
	// Two-value options write under KEY.NAME; the longest owning key wins.
	var owner *Descriptor
	for _, d := range t.descs {
		if !slices.Contains(d.counts, 2) || !strings.HasPrefix(key, d.key+".") {
			continue
		}
		if owner == nil || len(d.key) > len(owner.key) {
			owner = d
		}
	}
	if owner == nil {
		return nil, nil
	}
	name := strings.TrimPrefix(key, owner.key+".")
	spelling := t.spelling(owner)
	if spelling == "" || name == "" || tokens.IsFlag(name) || tokens.IsFlag(v) {
		return nil, nil
	}
	if _, ok := owner.canonical(v); !ok {
		return nil, nil
	}
	return owner, []string{spelling, escape(name), escape(v)}
}

func (t *Table) renderValue(d *Descriptor, v string) []string {
	spelling := t.spelling(d)
	if spelling == "" {
		return nil
	}
	takes := func(n int) bool { return slices.Contains(d.counts, n) }

	switch {
	case takes(countMany):
		parts := strings.Split(v, d.sep)
		for _, p := range parts {
			if _, ok := d.canonical(p); !ok || tokens.IsFlag(p) {
				return nil
			}
		}
		args := []string{spelling}
		for _, p := range parts {
			args = append(args, escape(p))
		}
		return args
	case takes(1) && d.add:
		var args []string
		for _, p := range strings.Split(v, d.sep) {
			if _, ok := d.canonical(p); !ok {
				return nil
			}
			args = append(args, single(spelling, p)...)
		}
		return args
	case takes(1):
		if _, ok := d.canonical(v); !ok {
			return nil
		}
		return single(spelling, v)
	case takes(0):
		if def, _ := d.canonical(d.defaultValue()); def == v {
			return []string{spelling}
		}
	}
	return nil
}

// spelling returns an option spelling that selects d in t, or "".
func (t *Table) spelling(d *Descriptor) string {
	if t.Lookup(d.key) == d {
		return "--" + d.key
	}
	for _, s := range d.Spellings() {
		if t.Lookup(s) == d {
			return "--" + s
		}
	}
	return ""
}

// single spells one value for option, inline when the value would
// otherwise read as an option.
func single(option, v string) []string {
	if tokens.IsFlag(v) {
		return []string{option + "=" + v}
	}
	return []string{option, escape(v)}
}

// escape keeps a value that starts with '@' from being read as a file
// reference.
func escape(v string) string {
	if strings.HasPrefix(v, "@") {
		return "@" + v
	}
	return v
}
