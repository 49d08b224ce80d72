// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package app runs ai command lines: one store, one parse and one handler
// call per invocation, mapped to a process exit code.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/aicli/ai/pkg/command"
	"github.com/aicli/ai/pkg/config"
	"github.com/aicli/ai/pkg/display"
	"github.com/aicli/ai/pkg/tokens"
	"github.com/aicli/ai/pkg/values"
	"github.com/google/uuid"
)

// Exit codes.
const (
	ExitOK         = 0
	ExitFailure    = 1
	ExitParseError = -2
)

// MaxDepth bounds how deeply handlers may nest invocations through
// RunInternal.
const MaxDepth = 8

type depthKey struct{}

func depthOf(ctx context.Context) int {
	d, _ := ctx.Value(depthKey{}).(int)
	return d
}

// ExitError carries the exit code for a failed invocation. Its message
// has already been printed.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

func (e *ExitError) Unwrap() error { return e.Err }

// ExitCode returns the process exit code.
func (e *ExitError) ExitCode() int { return e.Code }

// Options configure an App. Nil writers mean os.Stdout and os.Stderr.
type Options struct {
	// Config seeds every store. May be nil.
	Config *config.Location
	// SearchPath is where @file response files are looked up.
	SearchPath []string
	Stdout     io.Writer
	Stderr     io.Writer
	Log        *slog.Logger
	Color      display.Colorizer
	Debug      bool
}

// App runs command lines against a registry. It is safe for concurrent
// use by batch jobs; output from concurrent invocations is serialized per
// write.
type App struct {
	reg    *command.Registry
	opts   Options
	stdout io.Writer
	stderr io.Writer
	log    *slog.Logger
}

// New returns an App over reg.
func New(reg *command.Registry, opts Options) *App {
	a := &App{reg: reg, opts: opts}
	stderr := orDefault(opts.Stderr, os.Stderr)
	a.stdout = &syncWriter{w: orDefault(opts.Stdout, os.Stdout)}
	a.stderr = &syncWriter{w: stderr}
	a.log = opts.Log
	if a.log == nil {
		a.log = NewLogger(a.stderr, opts.Debug, IsTerminal(stderr))
	}
	return a
}

// Run runs one command line and returns the process exit code.
func (a *App) Run(ctx context.Context, args []string) int {
	err := a.RunInternal(ctx, args...)
	if err == nil {
		return ExitOK
	}
	var ee *ExitError
	if errors.As(err, &ee) {
		return ee.Code
	}
	return ExitFailure
}

// RunInternal runs args as a new invocation with its own store. Errors
// are printed before they are returned as an *ExitError.
func (a *App) RunInternal(ctx context.Context, args ...string) error {
	depth := depthOf(ctx)
	if depth > MaxDepth {
		err := fmt.Errorf("ERROR: commands nested more than %d deep", MaxDepth)
		display.PrintError(a.stderr, a.opts.Color, err)
		return &ExitError{Code: ExitFailure, Err: err}
	}
	id := uuid.NewString()
	store := a.newStore(id)

	s, err := tokens.New(args, tokens.Options{SearchPath: a.opts.SearchPath})
	if err != nil {
		display.PrintError(a.stderr, a.opts.Color, err)
		return &ExitError{Code: ExitParseError, Err: err}
	}
	if err := command.NewDispatcher(a.reg).Parse(s, store); err != nil {
		display.PrintError(a.stderr, a.opts.Color, err)
		if spec, ok := a.reg.Lookup(store.Command()); ok && spec.Name != command.HelpCommand {
			fmt.Fprintln(a.stderr)
			display.CommandHelp(a.stderr, a.opts.Color, spec)
		}
		return &ExitError{Code: ExitParseError, Err: err}
	}

	spec, _ := a.reg.Lookup(store.Command())
	if store.HelpRequested() && spec.Name != command.HelpCommand {
		display.CommandHelp(a.stdout, a.opts.Color, spec)
		return nil
	}

	log := a.log.With("invocation", id, "command", spec.Name)
	log.Debug("parsed", "values", store.Len())
	inv := &command.Invocation{
		Name:   spec.Name,
		ID:     id,
		Values: store,
		Log:    log,
		Stdout: a.stdout,
		Stderr: a.stderr,
		Runner: a,
		Depth:  depth,
	}
	if err := spec.Run(context.WithValue(ctx, depthKey{}, depth+1), inv); err != nil {
		log.Debug("failed", "err", err)
		display.PrintError(a.stderr, a.opts.Color, err)
		return &ExitError{Code: ExitFailure, Err: err}
	}
	return nil
}

func (a *App) newStore(id string) *values.Store {
	store := values.New()
	for _, k := range a.opts.Config.Seed(store) {
		a.log.Warn("ignoring reserved key in config", "key", k, "path", a.opts.Config.Path)
	}
	store.Set(values.KeyInvocation, id)
	if a.opts.Debug {
		store.Set(values.KeyDebug, "true")
	}
	return store
}

func orDefault(w, def io.Writer) io.Writer {
	if w == nil {
		return def
	}
	return w
}

type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}
