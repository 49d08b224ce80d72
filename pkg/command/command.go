// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package command resolves command names and dispatches the rest of the
// command line to the resolved command's parser table.
package command

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/aicli/ai/pkg/parser"
	"github.com/aicli/ai/pkg/values"
)

// Runner runs another command line inside the current invocation, with a
// fresh store.
type Runner interface {
	RunInternal(ctx context.Context, args ...string) error
}

// Invocation is everything a handler gets to work with. Handlers read
// their inputs from Values only.
type Invocation struct {
	Name   string
	ID     string
	Values *values.Store
	Log    *slog.Logger
	Stdout io.Writer
	Stderr io.Writer
	Runner Runner
	// Depth counts the invocations this one is nested in; 0 at top level.
	Depth  int
}

// Handler runs a resolved command.
type Handler func(ctx context.Context, inv *Invocation) error

// Spec declares one full command.
type Spec struct {
	Name     string // dotted, e.g. "dialog.bot"
	Summary  string
	Usage    string
	Examples []string
	// ValuesRequired commands show their help when given no values.
	ValuesRequired bool
	Hidden         bool
	Table          *parser.Table
	Run            Handler
}

// Registry maps command names to specs. It is built once at startup.
type Registry struct {
	specs    map[string]*Spec
	order    []string
	partials []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{specs: make(map[string]*Spec)}
}

// Register adds a command. It panics on a duplicate name or a spec
// without a table or handler.
func (r *Registry) Register(s Spec) {
	if s.Name == "" {
		panic("command: spec with empty name")
	}
	if _, ok := r.specs[s.Name]; ok {
		panic(fmt.Sprintf("command: %q registered twice", s.Name))
	}
	if s.Table == nil {
		panic(fmt.Sprintf("command: %q has no parser table", s.Name))
	}
	if s.Run == nil {
		panic(fmt.Sprintf("command: %q has no handler", s.Name))
	}
	r.specs[s.Name] = &s
	r.order = append(r.order, s.Name)
}

// Partial declares prefixes under which commands may be abbreviated.
func (r *Registry) Partial(prefixes ...string) {
	for _, p := range prefixes {
		if !slices.Contains(r.partials, p) {
			r.partials = append(r.partials, p)
		}
	}
}

// Lookup returns the spec registered under name.
func (r *Registry) Lookup(name string) (*Spec, bool) {
	s, ok := r.specs[name]
	return s, ok
}

// Names returns every command name in registration order.
func (r *Registry) Names() []string {
	return slices.Clone(r.order)
}

// Visible returns the sorted names of the commands shown in help. With a
// prefix, only the commands under that prefix are returned.
func (r *Registry) Visible(prefix string) []string {
	var out []string
	for _, name := range r.order {
		if r.specs[name].Hidden {
			continue
		}
		if prefix != "" && name != prefix && !strings.HasPrefix(name, prefix+".") {
			continue
		}
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}

// IsPartial reports whether name is a declared partial.
func (r *Registry) IsPartial(name string) bool {
	for _, p := range r.partials {
		if strings.EqualFold(p, name) {
			return true
		}
	}
	return false
}

func (r *Registry) underPartial(name string) bool {
	lower := strings.ToLower(name)
	for _, p := range r.partials {
		if strings.HasPrefix(lower, strings.ToLower(p)+".") {
			return true
		}
	}
	return false
}
