// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cli declares the ai commands: their option tables, their help
// text and the handlers that run them.
package cli

import (
	"os"

	"github.com/aicli/ai/pkg/command"
	"github.com/aicli/ai/pkg/display"
	"github.com/shayne/yargs"
)

// GlobalFlags are accepted anywhere on the command line and removed
// before command resolution.
type GlobalFlags struct {
	Config  string `flag:"config" help:"Use this config file instead of searching for .ai/config.toml"`
	Debug   bool   `flag:"debug" help:"Log at debug level"`
	NoColor bool   `flag:"no-color" help:"Disable colored output"`
	Color   string `flag:"color" help:"Color output (auto|always|never)"`
}

// ParseGlobals pulls the global flags out of args.
func ParseGlobals(args []string) (GlobalFlags, []string, error) {
	result, err := yargs.ParseKnownFlags[GlobalFlags](args, yargs.KnownFlagsOptions{})
	if err != nil {
		return GlobalFlags{}, nil, err
	}
	return result.Flags, result.RemainingArgs, nil
}

// Options configure the command handlers.
type Options struct {
	Version string
	// WorkDir is where init and config read and write .ai/config.toml.
	// Empty means the process working directory.
	WorkDir string
	Color   display.Colorizer
	// Getenv overrides os.Getenv when building environments.
	Getenv func(string) string
}

type commands struct {
	opts Options
	reg  *command.Registry
}

func (c *commands) workDir() string {
	if c.opts.WorkDir != "" {
		return c.opts.WorkDir
	}
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

// NewRegistry returns the registry of every ai command.
func NewRegistry(opts Options) *command.Registry {
	c := &commands{opts: opts, reg: command.NewRegistry()}
	c.reg.Partial("dialog", "init", "service", "service.resource", "service.project", "dev")

	var specs []command.Spec
	specs = append(specs, c.builtinCommands()...)
	specs = append(specs, dialogCommands()...)
	specs = append(specs, c.initCommands()...)
	specs = append(specs, serviceCommands()...)
	specs = append(specs, c.devCommands()...)
	for _, s := range specs {
		c.reg.Register(s)
	}
	return c.reg
}
