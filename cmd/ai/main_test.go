// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/aicli/ai/pkg/cli"
	"github.com/aicli/ai/pkg/config"
	"github.com/aicli/ai/pkg/display"
	"github.com/google/go-cmp/cmp"
)

func TestSearchPath(t *testing.T) {
	root := t.TempDir()
	loc := &config.Location{
		Path:   filepath.Join(root, ".ai", "config.toml"),
		Dir:    filepath.Join(root, ".ai"),
		Config: &config.Config{SearchPath: []string{"prompts"}},
	}
	got := searchPath(loc, strings.Join([]string{"/opt/a", "", "/opt/b"}, string(filepath.ListSeparator)))
	want := []string{filepath.Join(root, "prompts"), "/opt/a", "/opt/b", filepath.Join(root, ".ai")}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("searchPath mismatch (-want +got):\n%s", diff)
	}

	if got := searchPath(nil, ""); len(got) != 0 {
		t.Errorf("searchPath(nil) = %q, want empty", got)
	}
}

func TestColorMode(t *testing.T) {
	withColor := &config.Location{Path: "c.toml", Config: &config.Config{Color: "always"}}
	tests := []struct {
		name    string
		flags   cli.GlobalFlags
		loc     *config.Location
		want    string
		wantErr bool
	}{
		{"default", cli.GlobalFlags{}, nil, display.ColorAuto, false},
		{"config", cli.GlobalFlags{}, withColor, display.ColorAlways, false},
		{"flag wins", cli.GlobalFlags{Color: "never"}, withColor, display.ColorNever, false},
		{"no-color wins", cli.GlobalFlags{NoColor: true, Color: "always"}, withColor, display.ColorNever, false},
		{"bad flag", cli.GlobalFlags{Color: "purple"}, nil, "", true},
		{"bad config", cli.GlobalFlags{}, &config.Location{Config: &config.Config{Color: "purple"}}, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := colorMode(tt.flags, tt.loc)
			if (err != nil) != tt.wantErr {
				t.Fatalf("colorMode err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("colorMode = %q, want %q", got, tt.want)
			}
		})
	}
}
