// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tokens

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/aicli/ai/pkg/codecutil"
)

// ErrIncludeCycle is wrapped by IncludeError when a response file
// includes itself, directly or through other files.
var ErrIncludeCycle = errors.New("include cycle")

// IncludeError is returned when an @file reference cannot be expanded.
type IncludeError struct {
	Name     string   // the reference without its leading '@'
	Pos      int      // argv position of the outermost @file
	Chain    []string // include stack when the error happened
	Searched []string // directories searched for a missing file
	Err      error
}

func (e *IncludeError) Error() string {
	switch {
	case errors.Is(e.Err, ErrIncludeCycle):
		return fmt.Sprintf("ERROR: @%s includes itself: %s", e.Name, strings.Join(e.Chain, " -> "))
	case errors.Is(e.Err, fs.ErrNotExist):
		if len(e.Searched) > 0 {
			return fmt.Sprintf("ERROR: cannot find file @%s (searched: %s)", e.Name, strings.Join(e.Searched, ", "))
		}
		return fmt.Sprintf("ERROR: cannot find file @%s", e.Name)
	default:
		return fmt.Sprintf("ERROR: cannot read file @%s: %v", e.Name, e.Err)
	}
}

func (e *IncludeError) Unwrap() error {
	return e.Err
}

type expander struct {
	opts  Options
	stack []string
}

func (e *expander) appendToken(out []Token, t Token) ([]Token, error) {
	switch {
	case strings.HasPrefix(t.Text, "@@"):
		t.Text = t.Text[1:]
		return append(out, t), nil
	case len(t.Text) > 1 && t.Text[0] == '@':
		return e.include(out, t)
	}
	return append(out, t), nil
}

func (e *expander) include(out []Token, t Token) ([]Token, error) {
	name := t.Text[1:]
	path, err := e.find(name)
	if err != nil {
		return nil, &IncludeError{Name: name, Pos: t.Pos, Chain: e.chain(), Searched: e.opts.SearchPath, Err: err}
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = filepath.Clean(path)
	}
	if slices.Contains(e.stack, abs) {
		chain := append(e.chain(), abs)
		return nil, &IncludeError{Name: name, Pos: t.Pos, Chain: chain, Err: ErrIncludeCycle}
	}
	lines, err := readLines(path)
	if err != nil {
		return nil, &IncludeError{Name: name, Pos: t.Pos, Chain: e.chain(), Err: err}
	}

	e.stack = append(e.stack, abs)
	defer func() { e.stack = e.stack[:len(e.stack)-1] }()
	for _, line := range lines {
		out, err = e.appendToken(out, Token{Text: line, Pos: t.Pos, Source: path})
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (e *expander) chain() []string {
	return append([]string(nil), e.stack...)
}

// find resolves name as given, then against each search path entry.
func (e *expander) find(name string) (string, error) {
	if isRegularFile(name) {
		return name, nil
	}
	if filepath.IsAbs(name) {
		return "", fs.ErrNotExist
	}
	for _, dir := range e.opts.SearchPath {
		if dir == "" {
			continue
		}
		p := filepath.Join(dir, name)
		if isRegularFile(p) {
			return p, nil
		}
	}
	return "", fs.ErrNotExist
}

func isRegularFile(p string) bool {
	st, err := os.Stat(p)
	return err == nil && st.Mode().IsRegular()
}

// readLines returns the trimmed, non-blank lines of the file at path.
// Files ending in .zst are decompressed first.
func readLines(path string) ([]string, error) {
	data, err := codecutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	text := strings.TrimPrefix(string(data), "\ufeff")
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines, nil
}
