// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/aicli/ai/pkg/batch"
	"github.com/aicli/ai/pkg/command"
	"github.com/aicli/ai/pkg/config"
	"github.com/aicli/ai/pkg/display"
	"github.com/aicli/ai/pkg/parser"
	"github.com/aicli/ai/pkg/values"
)

const (
	keyShow    = "config.show"
	keyFormat  = "config.format"
	keySet     = "config.set"
	keyClear   = "config.clear"
	keyJobs    = "batch.jobs.file"
	keyThreads = "batch.threads"
)

func (c *commands) builtinCommands() []command.Spec {
	return []command.Spec{
		{
			Name:     command.HelpCommand,
			Summary:  "Show help for a command",
			Usage:    "[COMMAND]",
			Examples: []string{"ai help", "ai help dialog", "ai help service resource create"},
			Table:    table(command.HelpCommand).WithPositional(values.KeyHelpTopic),
			Run:      c.runHelp,
		},
		{
			Name:    "version",
			Summary: "Print the version",
			Table:   table("version"),
			Run: func(ctx context.Context, inv *command.Invocation) error {
				fmt.Fprintf(inv.Stdout, "%s version %s\n", display.Program, c.opts.Version)
				return nil
			},
		},
		{
			Name:    "config",
			Summary: "Show or change the defaults in .ai/config.toml",
			Usage:   "[--show] [--format table|yaml|toml] [--set NAME VALUE] [--clear NAME]",
			Examples: []string{
				"ai config --set subscription 00000000-0000-0000-0000-000000000000",
				"ai config --clear group",
				"ai config --show --format yaml",
			},
			Table: table("config", []*parser.Descriptor{
				parser.TrueFalse("--show", keyShow, "01"),
				parser.New("--format", keyFormat, "01", "1", parser.OneOf(display.FormatTable, display.FormatYAML, display.FormatTOML)),
				parser.New("--set", keySet, "01", "2", parser.Example("--set NAME VALUE")),
				parser.New("--clear", keyClear, "01", "+", parser.Example("--clear NAME [...]")),
			}),
			Run: c.runConfig,
		},
		{
			Name:           "batch",
			Summary:        "Run the command lines in a job file",
			Usage:          "--jobs FILE [--threads N]",
			Examples:       []string{"ai batch --jobs jobs.toml --threads 4"},
			ValuesRequired: true,
			Table: table("batch", []*parser.Descriptor{
				parser.New("--jobs", keyJobs, "010", "1", parser.Example("--jobs FILE")),
				parser.New("--threads", keyThreads, "01", "1", parser.Example("--threads N")),
			}),
			Run: c.runBatch,
		},
	}
}

func (c *commands) runHelp(ctx context.Context, inv *command.Invocation) error {
	words := strings.Fields(inv.Values.GetOrDefault(values.KeyHelpTopic, ""))
	if len(words) == 0 {
		display.Overview(inv.Stdout, c.opts.Color, c.reg, "")
		return nil
	}
	if prefix := strings.ToLower(strings.Join(words, ".")); c.reg.IsPartial(prefix) {
		display.Overview(inv.Stdout, c.opts.Color, c.reg, prefix)
		return nil
	}
	name, _, err := c.reg.Resolve(words)
	if err != nil {
		return err
	}
	spec, _ := c.reg.Lookup(name)
	display.CommandHelp(inv.Stdout, c.opts.Color, spec)
	return nil
}

func (c *commands) runConfig(ctx context.Context, inv *command.Invocation) error {
	v := inv.Values
	loc, err := config.LoadOrCreate(c.workDir())
	if err != nil {
		return err
	}

	changed := false
	for _, k := range v.NamesWithPrefix(keySet + ".") {
		key := ExpandShort(strings.TrimPrefix(k, keySet+"."))
		if values.Reserved(key) {
			return fmt.Errorf("ERROR: %q cannot be set in config", key)
		}
		val, _ := v.Get(k)
		loc.Config.Set(key, val)
		changed = true
	}
	if clear := v.GetOrDefault(keyClear, ""); clear != "" {
		for _, name := range strings.Split(clear, ";") {
			key := ExpandShort(name)
			if !loc.Config.Clear(key) && !quiet(v) {
				fmt.Fprintf(inv.Stderr, "WARNING: %s is not set\n", key)
			}
		}
		changed = true
	}
	if changed {
		if err := config.Save(loc); err != nil {
			return err
		}
		inv.Log.Info("saved config", "path", loc.Path)
		if !quiet(v) {
			fmt.Fprintf(inv.Stdout, "Saved %s\n", loc.Path)
		}
	}
	if changed && !v.Bool(keyShow, false) {
		return nil
	}

	pairs := make([]values.Pair, 0, len(loc.Config.Values))
	for k, val := range loc.Config.Values {
		pairs = append(pairs, values.Pair{Key: k, Value: val})
	}
	return display.Values(inv.Stdout, values.FromPairs(pairs...), v.GetOrDefault(keyFormat, display.FormatTable))
}

func (c *commands) runBatch(ctx context.Context, inv *command.Invocation) error {
	if inv.Depth > 0 {
		return errors.New("ERROR: batch cannot run inside another command")
	}
	v := inv.Values
	path, err := v.Demand(keyJobs, "job file", "--jobs FILE", "Running batch", "batch")
	if err != nil {
		return err
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(c.workDir(), path)
	}
	f, err := batch.Load(path)
	if err != nil {
		return err
	}
	threads, err := c.threads(v, f.Threads)
	if err != nil {
		return err
	}
	if inv.Runner == nil {
		return errors.New("ERROR: batch needs a runner")
	}

	inv.Log.Info("batch start", "jobs", len(f.Jobs), "threads", threads)
	results := batch.Run(ctx, f.Jobs, threads, func(ctx context.Context, job batch.Job) error {
		return inv.Runner.RunInternal(ctx, job.Argv()...)
	})
	if !quiet(v) {
		for i, r := range results {
			status := c.opts.Color.OK("PASS")
			if r.Err != nil {
				status = c.opts.Color.Error("FAIL")
			}
			fmt.Fprintf(inv.Stdout, "%s  %s (%s)\n", status, r.Job.Label(i), r.Duration.Round(1e6))
		}
	}
	return batch.Err(results)
}

func (c *commands) threads(v *values.Store, fromFile int) (int, error) {
	if v.Contains(keyThreads) {
		n, err := v.DemandInt(keyThreads)
		if err != nil {
			return 0, err
		}
		if n < 1 {
			return 0, fmt.Errorf("ERROR: --threads must be at least 1, got %d", n)
		}
		return n, nil
	}
	if fromFile > 0 {
		return fromFile, nil
	}
	return runtime.GOMAXPROCS(0), nil
}

// tableKeys returns the sorted keys a table can bind.
func tableKeys(t *parser.Table) []string {
	var keys []string
	for _, d := range t.Descriptors() {
		if !slices.Contains(keys, d.Key()) {
			keys = append(keys, d.Key())
		}
	}
	slices.Sort(keys)
	return keys
}
