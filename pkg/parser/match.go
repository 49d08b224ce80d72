// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package parser binds command-line options to named values.
//
// A command declares a Table of Descriptors. Each Descriptor names a
// destination key, a requirement pattern saying which dotted segments of
// that key an option must spell, and a value count spec saying how many
// values the option takes. Parse walks a token stream and writes one
// atomic set of values per matched option.
package parser

import (
	"github.com/aicli/ai/pkg/tokens"
	"github.com/aicli/ai/pkg/values"
)

// Write is a single store mutation.
type Write struct {
	Key   string
	Value string
	Add   bool   // append instead of replace
	Sep   string // join string when Add is set
}

// Result is the outcome of matching one token window.
type Result struct {
	// Descriptor is the rule that fired, or nil for a positional value.
	Descriptor *Descriptor
	// Consumed is the number of tokens the window covers.
	Consumed int
	// Writes are applied in order, together.
	Writes []Write
}

// Apply performs the result's writes on store.
func (r *Result) Apply(store *values.Store) {
	for _, w := range r.Writes {
		if w.Add {
			store.Add(w.Key, w.Value, w.Sep)
		} else {
			store.Reset(w.Key, w.Value)
		}
	}
}

// Match tests the option at the stream cursor against t. It does not move
// the cursor or touch any store. It returns nil, nil when the stream is
// exhausted or no descriptor names the token.
func Match(s *tokens.Stream, t *Table) (*Result, error) {
	tok, ok := s.Peek(0)
	if !ok || !tok.IsFlag() {
		return nil, nil
	}
	name, inline, hasInline := tokens.FlagName(tok.Text)
	d := t.Lookup(name)
	if d == nil {
		return nil, nil
	}

	var vals []string
	if hasInline {
		vals = append(vals, inline)
	}
	for i := 1; ; i++ {
		next, ok := s.Peek(i)
		if !ok || next.IsFlag() {
			break
		}
		vals = append(vals, next.Text)
	}
	consumed := func(n int) int {
		if hasInline {
			return n
		}
		return n + 1
	}

	var bad string
	var badSeen, inlineRefused bool
	for _, n := range d.counts {
		switch n {
		case 0:
			if hasInline {
				inlineRefused = true
				continue
			}
			v, _ := d.canonical(d.defaultValue())
			return d.result(consumed(0), v), nil
		case countMany:
			if len(vals) == 0 {
				continue
			}
			canon, v, ok := d.canonicalAll(vals)
			if !ok {
				bad, badSeen = v, true
				continue
			}
			joined := canon[0]
			for _, c := range canon[1:] {
				joined += d.sep + c
			}
			return d.result(consumed(len(vals)), joined), nil
		case 1:
			if len(vals) < 1 {
				continue
			}
			v, ok := d.canonical(vals[0])
			if !ok {
				bad, badSeen = vals[0], true
				continue
			}
			return d.result(consumed(1), v), nil
		case 2:
			if len(vals) < 2 {
				continue
			}
			v, ok := d.canonical(vals[1])
			if !ok {
				bad, badSeen = vals[1], true
				continue
			}
			r := d.result(consumed(2), v)
			r.Writes[0].Key = d.key + "." + vals[0]
			return r, nil
		}
	}
	if badSeen {
		return nil, &InvalidValueError{Option: tok.Text, Key: d.key, Value: bad, Pos: tok.Pos, Allowed: d.Legal()}
	}
	if inlineRefused && len(d.counts) == 1 {
		return nil, &UnexpectedValueError{Option: tok.Text, Key: d.key, Value: inline, Pos: tok.Pos}
	}
	return nil, &MissingValueError{Option: tok.Text, Key: d.key, Pos: tok.Pos, Example: d.Example()}
}

func (d *Descriptor) result(consumed int, value string) *Result {
	r := &Result{Descriptor: d, Consumed: consumed}
	r.Writes = append(r.Writes, Write{Key: d.key, Value: value, Add: d.add, Sep: d.sep})
	for _, p := range d.implied {
		r.Writes = append(r.Writes, Write{Key: p.Key, Value: p.Value})
	}
	return r
}

// canonicalAll canonicalizes every value, reporting the first illegal one.
func (d *Descriptor) canonicalAll(vals []string) ([]string, string, bool) {
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		c, ok := d.canonical(v)
		if !ok {
			return nil, v, false
		}
		out = append(out, c)
	}
	return out, "", true
}

// Parse matches and applies options from s until it is exhausted or an
// error occurs. Bare values go to the table's positional key when it has
// one. Parse stops at the first error, leaving s at the offending token.
func Parse(s *tokens.Stream, t *Table, store *values.Store) error {
	for !s.Done() {
		r, err := Match(s, t)
		if err != nil {
			return err
		}
		if r == nil {
			if r, err = unmatched(s, t); err != nil {
				return err
			}
		}
		r.Apply(store)
		s.Advance(r.Consumed)
	}
	return nil
}

func unmatched(s *tokens.Stream, t *Table) (*Result, error) {
	tok, _ := s.Peek(0)
	if !tok.IsFlag() && t.positional != "" {
		return &Result{Consumed: 1, Writes: []Write{{Key: t.positional, Value: tok.Text, Add: true, Sep: " "}}}, nil
	}
	e := &UnrecognizedOptionError{Option: tok.Text, Pos: tok.Pos, Command: t.name}
	if tok.IsFlag() {
		name, _, _ := tokens.FlagName(tok.Text)
		e.Suggestions = Suggest("--"+name, t.spellings(), 3)
	}
	return nil, e
}
