// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads and saves the .ai/config.toml file that seeds
// default values for every invocation.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"
	"github.com/aicli/ai/pkg/fileutil"
	"github.com/aicli/ai/pkg/values"
)

const (
	DirName  = ".ai"
	FileName = "config.toml"
	Version  = 1

	// KeyFile records which config file seeded the store.
	KeyFile = "x.config.file"
)

type Config struct {
	Version    int               `toml:"version,omitempty"`
	Requires   string            `toml:"requires,omitempty"`
	SearchPath []string          `toml:"search_path,omitempty"`
	Color      string            `toml:"color,omitempty"`
	Values     map[string]string `toml:"values,omitempty"`
}

// fileConfig is the on-disk shape. Values may be written either as quoted
// dotted keys or as nested tables; both flatten to dotted names.
type fileConfig struct {
	Version    int            `toml:"version"`
	Requires   string         `toml:"requires"`
	SearchPath []string       `toml:"search_path"`
	Color      string         `toml:"color"`
	Values     map[string]any `toml:"values"`
}

// Location is a config together with where it lives. Dir is the .ai
// directory holding the file.
type Location struct {
	Path   string
	Dir    string
	Config *Config
}

// VersionError reports a binary that does not satisfy the config's
// requires constraint.
type VersionError struct {
	Path     string
	Requires string
	Running  string
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("ERROR: %s requires ai %s; this is ai %s", e.Path, e.Requires, e.Running)
}

// Find walks up from startDir looking for .ai/config.toml. It returns
// os.ErrNotExist when there is none.
func Find(startDir string) (string, error) {
	dir := filepath.Clean(startDir)
	for {
		path := filepath.Join(dir, DirName, FileName)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		} else if !os.IsNotExist(err) {
			return "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", os.ErrNotExist
}

// Load reads the config at path.
func Load(path string) (*Location, error) {
	var raw fileConfig
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	cfg := &Config{
		Version:    raw.Version,
		Requires:   raw.Requires,
		SearchPath: raw.SearchPath,
		Color:      raw.Color,
		Values:     make(map[string]string),
	}
	if cfg.Version == 0 {
		cfg.Version = Version
	}
	flatten("", raw.Values, cfg.Values)
	return &Location{Path: path, Dir: filepath.Dir(path), Config: cfg}, nil
}

func flatten(prefix string, in map[string]any, out map[string]string) {
	for k, v := range in {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch v := v.(type) {
		case map[string]any:
			flatten(key, v, out)
		case []any:
			parts := make([]string, len(v))
			for i, p := range v {
				parts[i] = fmt.Sprint(p)
			}
			out[key] = strings.Join(parts, ";")
		default:
			out[key] = fmt.Sprint(v)
		}
	}
}

// LoadFromDir finds and loads the config above startDir. It returns nil
// without error when there is no config.
func LoadFromDir(startDir string) (*Location, error) {
	path, err := Find(startDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return Load(path)
}

// LoadOrCreate is LoadFromDir, except that a missing config yields an
// empty one located in startDir, ready for Save.
func LoadOrCreate(startDir string) (*Location, error) {
	loc, err := LoadFromDir(startDir)
	if err != nil || loc != nil {
		return loc, err
	}
	dir := filepath.Join(startDir, DirName)
	return &Location{
		Path:   filepath.Join(dir, FileName),
		Dir:    dir,
		Config: &Config{Version: Version},
	}, nil
}

// Save writes loc.Config to loc.Path, creating the directory if needed.
func Save(loc *Location) error {
	if loc == nil || loc.Config == nil {
		return nil
	}
	if loc.Config.Version == 0 {
		loc.Config.Version = Version
	}
	err := fileutil.WriteFile(loc.Path, 0o644, func(w io.Writer) error {
		return toml.NewEncoder(w).Encode(loc.Config)
	})
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", loc.Path, err)
	}
	return nil
}

// CheckVersion checks the binary version against Requires. Builds whose
// version is not semver (such as "dev") are not checked.
func (loc *Location) CheckVersion(running string) error {
	if loc == nil || loc.Config == nil || strings.TrimSpace(loc.Config.Requires) == "" {
		return nil
	}
	c, err := semver.NewConstraint(loc.Config.Requires)
	if err != nil {
		return fmt.Errorf("ERROR: invalid requires %q in %s: %w", loc.Config.Requires, loc.Path, err)
	}
	v, err := semver.NewVersion(running)
	if err != nil {
		return nil
	}
	if !c.Check(v) {
		return &VersionError{Path: loc.Path, Requires: loc.Config.Requires, Running: running}
	}
	return nil
}

// Seed writes the configured defaults into store, in key order. Values
// already in the store are overwritten, so seed before parsing. Reserved
// keys are never seeded; Seed returns the ones it skipped.
func (loc *Location) Seed(store *values.Store) (skipped []string) {
	if loc == nil || loc.Config == nil {
		return nil
	}
	keys := make([]string, 0, len(loc.Config.Values))
	for k := range loc.Config.Values {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		if values.Reserved(k) {
			skipped = append(skipped, k)
			continue
		}
		store.Set(k, loc.Config.Values[k])
	}
	store.Set(KeyFile, loc.Path)
	return skipped
}

// SearchPath returns the configured search path with relative entries
// resolved against the config's parent directory, followed by the .ai
// directory itself.
func (loc *Location) SearchPath() []string {
	if loc == nil || loc.Config == nil {
		return nil
	}
	base := filepath.Dir(loc.Dir)
	var out []string
	for _, p := range loc.Config.SearchPath {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !filepath.IsAbs(p) {
			p = filepath.Join(base, p)
		}
		out = append(out, p)
	}
	return append(out, loc.Dir)
}

// Set stores a default value.
func (c *Config) Set(key, value string) {
	if c.Values == nil {
		c.Values = make(map[string]string)
	}
	c.Values[key] = value
}

// Clear removes a default value and reports whether it was present.
func (c *Config) Clear(key string) bool {
	if _, ok := c.Values[key]; !ok {
		return false
	}
	delete(c.Values, key)
	return true
}
