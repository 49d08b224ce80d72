// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package command

import (
	"github.com/aicli/ai/pkg/parser"
	"github.com/aicli/ai/pkg/tokens"
	"github.com/aicli/ai/pkg/values"
)

// HelpCommand is selected by an empty command line and by a leading
// "--help", "-h" or "-?".
const HelpCommand = "help"

// Dispatcher drives parsing for a registry.
type Dispatcher struct {
	reg *Registry
}

// NewDispatcher returns a Dispatcher over reg.
func NewDispatcher(reg *Registry) *Dispatcher {
	return &Dispatcher{reg: reg}
}

// Registry returns the dispatcher's registry.
func (d *Dispatcher) Registry() *Registry { return d.reg }

// Parse resolves the command, unless store already has one, and binds the
// remaining tokens with the command's table. Any error is also recorded
// under the store's error key.
func (d *Dispatcher) Parse(s *tokens.Stream, store *values.Store) error {
	err := d.parse(s, store)
	store.SetErr(err)
	return err
}

func (d *Dispatcher) parse(s *tokens.Stream, store *values.Store) error {
	if store.Command() == "" {
		name, n, err := d.resolve(s)
		if err != nil {
			return err
		}
		store.SetCommand(name)
		s.Advance(n)
		if spec, ok := d.reg.Lookup(name); ok && spec.ValuesRequired && s.Done() {
			store.Set(values.KeyHelp, "true")
			return nil
		}
	}
	return d.parseValues(s, store)
}

// ParseValues binds tokens for the store's current command into store.
// Values already in the store are kept unless a token overwrites them, so
// ParseValues can be called again with another stream.
func (d *Dispatcher) ParseValues(s *tokens.Stream, store *values.Store) error {
	err := d.parseValues(s, store)
	if err != nil {
		store.SetErr(err)
	}
	return err
}

func (d *Dispatcher) parseValues(s *tokens.Stream, store *values.Store) error {
	spec, ok := d.reg.Lookup(store.Command())
	if !ok {
		return &UnknownCommandError{Command: store.Command(), Suggestions: d.reg.suggest(store.Command())}
	}
	return parser.Parse(s, spec.Table, store)
}

func (d *Dispatcher) resolve(s *tokens.Stream) (string, int, error) {
	first, ok := s.Peek(0)
	if !ok {
		return HelpCommand, 0, nil
	}
	switch first.Text {
	case "--help", "-h", "-?":
		return HelpCommand, 1, nil
	}
	rest := s.Rest()
	args := make([]string, len(rest))
	for i, t := range rest {
		args[i] = t.Text
	}
	return d.reg.Resolve(args)
}
