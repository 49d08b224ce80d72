// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/aicli/ai/pkg/command"
	"github.com/aicli/ai/pkg/env"
	"github.com/aicli/ai/pkg/parser"
)

const (
	keyTemplate = "dev.new.template"
	keyEnvFile  = "dev.new.env.file"
)

func (c *commands) devCommands() []command.Spec {
	return []command.Spec{
		{
			Name:     "dev.new",
			Summary:  "Create a new project file from a template",
			Usage:    "TEMPLATE [--file FILE]",
			Examples: []string{"ai dev new env", "ai dev new env --file app/.env"},
			Table: table("dev.new", []*parser.Descriptor{
				parser.New("--file", keyEnvFile, "0001", "1", parser.Example("--file FILE")),
			}).WithPositional(keyTemplate),
			Run: c.runDevNew,
		},
		{
			Name:     "dev.shell",
			Summary:  "Print the environment for the configured services",
			Examples: []string{`eval "$(ai dev shell)"`},
			Table:    table("dev.shell"),
			Run:      c.runDevShell,
		},
	}
}

func (c *commands) runDevNew(ctx context.Context, inv *command.Invocation) error {
	v := inv.Values
	template, err := v.Demand(keyTemplate, "template", "env", "Creating a new project file", "dev new")
	if err != nil {
		return err
	}
	if template != "env" {
		return &NotLinkedError{Command: inv.Name, What: fmt.Sprintf("template %q", template)}
	}
	file := v.GetOrDefault(keyEnvFile, ".env")
	if !filepath.IsAbs(file) {
		file = filepath.Join(c.workDir(), file)
	}
	e := env.FromValues(v, c.opts.Getenv)
	if err := env.Write(file, e); err != nil {
		return err
	}
	inv.Log.Info("wrote environment", "path", file, "variables", len(env.Pairs(e)))
	if !quiet(v) {
		fmt.Fprintf(inv.Stdout, "Saved %s\n\n", file)
		env.Print(inv.Stdout, e)
	}
	return nil
}

func (c *commands) runDevShell(ctx context.Context, inv *command.Invocation) error {
	e := env.FromValues(inv.Values, c.opts.Getenv)
	if !quiet(inv.Values) {
		fmt.Fprintln(inv.Stderr, "Environment populated:")
		fmt.Fprintln(inv.Stderr)
		env.Print(inv.Stderr, e)
	}
	env.Exports(inv.Stdout, e)
	return nil
}
