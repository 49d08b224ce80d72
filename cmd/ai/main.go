// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command ai is the command line for Azure AI services.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/aicli/ai/pkg/app"
	"github.com/aicli/ai/pkg/cli"
	"github.com/aicli/ai/pkg/config"
	"github.com/aicli/ai/pkg/display"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string) int {
	stderrColor := display.NewColorizer(display.ColorAuto, app.IsTerminal(os.Stderr))
	globals, rest, err := cli.ParseGlobals(args)
	if err != nil {
		display.PrintError(os.Stderr, stderrColor, fmt.Errorf("ERROR: %w", err))
		return app.ExitParseError
	}

	cwd, err := os.Getwd()
	if err != nil {
		display.PrintError(os.Stderr, stderrColor, fmt.Errorf("ERROR: %w", err))
		return app.ExitFailure
	}
	loc, err := loadConfig(globals.Config, cwd)
	if err != nil {
		display.PrintError(os.Stderr, stderrColor, err)
		return app.ExitFailure
	}
	version := app.Version()
	if err := loc.CheckVersion(version); err != nil {
		display.PrintError(os.Stderr, stderrColor, err)
		return app.ExitFailure
	}

	mode, err := colorMode(globals, loc)
	if err != nil {
		display.PrintError(os.Stderr, stderrColor, err)
		return app.ExitParseError
	}
	color := display.NewColorizer(mode, app.IsTerminal(os.Stderr))
	debug := globals.Debug || os.Getenv("AI_DEBUG") != ""

	workDir := cwd
	if loc != nil {
		workDir = filepath.Dir(loc.Dir)
	}
	reg := cli.NewRegistry(cli.Options{
		Version: version,
		WorkDir: workDir,
		Color:   color,
	})
	a := app.New(reg, app.Options{
		Config:     loc,
		SearchPath: searchPath(loc, os.Getenv("AI_PATH")),
		Color:      color,
		Debug:      debug,
	})
	return a.Run(ctx, rest)
}

func loadConfig(path, cwd string) (*config.Location, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.LoadFromDir(cwd)
}

func colorMode(g cli.GlobalFlags, loc *config.Location) (string, error) {
	switch {
	case g.NoColor:
		return display.ColorNever, nil
	case g.Color != "":
		if !display.ValidColorMode(g.Color) {
			return "", fmt.Errorf("ERROR: invalid --color %q (want auto, always or never)", g.Color)
		}
		return g.Color, nil
	case loc != nil && loc.Config.Color != "":
		if !display.ValidColorMode(loc.Config.Color) {
			return "", fmt.Errorf("ERROR: invalid color %q in %s", loc.Config.Color, loc.Path)
		}
		return loc.Config.Color, nil
	}
	return display.ColorAuto, nil
}

// searchPath orders @file lookups: the config's search_path, then
// AI_PATH, then the config directory itself.
func searchPath(loc *config.Location, aiPath string) []string {
	var out []string
	if sp := loc.SearchPath(); len(sp) > 0 {
		out = sp[:len(sp)-1]
	}
	for _, p := range filepath.SplitList(aiPath) {
		if p != "" {
			out = append(out, p)
		}
	}
	if loc != nil {
		out = append(out, loc.Dir)
	}
	return out
}
