// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tokens

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/aicli/ai/pkg/codecutil"
	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile(%s): %v", p, err)
	}
	return p
}

func TestStreamCursor(t *testing.T) {
	s, err := New([]string{"dialog.bot", "--once", "x"}, Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := s.Remaining(); got != 3 {
		t.Fatalf("Remaining = %d, want 3", got)
	}
	if tok, ok := s.Peek(1); !ok || tok.Text != "--once" || tok.Pos != 1 {
		t.Fatalf("Peek(1) = %+v, %v", tok, ok)
	}
	if _, ok := s.Peek(3); ok {
		t.Fatalf("Peek(3) ok, want past end")
	}
	if tok, _ := s.Next(); tok.Text != "dialog.bot" {
		t.Fatalf("Next = %q", tok.Text)
	}
	s.Advance(10)
	if !s.Done() || s.Remaining() != 0 {
		t.Fatalf("Advance past end: Done=%v Remaining=%d", s.Done(), s.Remaining())
	}
}

func TestIncludeExpandsInPlace(t *testing.T) {
	dir := t.TempDir()
	list := writeFile(t, dir, "list.txt", "a.wav\r\n\nb.wav\n")

	s, err := New([]string{"--urls", "@" + list, "--once"}, Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	want := []string{"--urls", "a.wav", "b.wav", "--once"}
	if diff := cmp.Diff(want, s.Texts()); diff != "" {
		t.Fatalf("Texts mismatch (-want +got):\n%s", diff)
	}
	tok, _ := s.Peek(2)
	if tok.Pos != 1 || tok.Source != list {
		t.Fatalf("expanded token = %+v, want Pos 1 Source %s", tok, list)
	}
	last, _ := s.Peek(3)
	if last.Pos != 2 || last.Source != "" {
		t.Fatalf("trailing token = %+v, want Pos 2 from argv", last)
	}
}

func TestIncludeSearchPath(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "opts.txt", "--group\nrg1\n")

	s, err := New([]string{"@opts.txt"}, Options{SearchPath: []string{"", dir}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if diff := cmp.Diff([]string{"--group", "rg1"}, s.Texts()); diff != "" {
		t.Fatalf("Texts mismatch (-want +got):\n%s", diff)
	}
}

func TestIncludeRecursive(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "inner.txt", "b\nc\n")
	writeFile(t, dir, "outer.txt", "a\n@inner.txt\nd\n")

	s, err := New([]string{"@outer.txt", "e"}, Options{SearchPath: []string{dir}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if diff := cmp.Diff([]string{"a", "b", "c", "d", "e"}, s.Texts()); diff != "" {
		t.Fatalf("Texts mismatch (-want +got):\n%s", diff)
	}
}

func TestIncludeCycle(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "x\n@b.txt\n")
	writeFile(t, dir, "b.txt", "@a.txt\n")

	_, err := New([]string{"@a.txt"}, Options{SearchPath: []string{dir}})
	if !errors.Is(err, ErrIncludeCycle) {
		t.Fatalf("err = %v, want ErrIncludeCycle", err)
	}
	var ie *IncludeError
	if !errors.As(err, &ie) {
		t.Fatalf("err = %T, want *IncludeError", err)
	}
	if len(ie.Chain) != 3 {
		t.Fatalf("Chain = %v, want a -> b -> a", ie.Chain)
	}
}

func TestIncludeMissing(t *testing.T) {
	_, err := New([]string{"--urls", "@does-not-exist.txt"}, Options{SearchPath: []string{t.TempDir()}})
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("err = %v, want fs.ErrNotExist", err)
	}
	var ie *IncludeError
	if !errors.As(err, &ie) || ie.Name != "does-not-exist.txt" || ie.Pos != 1 {
		t.Fatalf("err = %#v", err)
	}
}

func TestIncludeLiteralAt(t *testing.T) {
	s, err := New([]string{"@@handle", "@"}, Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if diff := cmp.Diff([]string{"@handle", "@"}, s.Texts()); diff != "" {
		t.Fatalf("Texts mismatch (-want +got):\n%s", diff)
	}
}

func TestIncludeZstd(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "list.txt.zst")
	if err := codecutil.WriteFile(p, []byte("one\ntwo\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := New([]string{"@" + p}, Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if diff := cmp.Diff([]string{"one", "two"}, s.Texts()); diff != "" {
		t.Fatalf("Texts mismatch (-want +got):\n%s", diff)
	}
}

func TestIsFlag(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"--group", true},
		{"-h", true},
		{"-?", true},
		{"--a=b", true},
		{"-", false},
		{"-5", false},
		{"-1.5", false},
		{"value", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsFlag(tt.in); got != tt.want {
			t.Errorf("IsFlag(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFlagName(t *testing.T) {
	name, inline, ok := FlagName("--group=rg1")
	if name != "group" || inline != "rg1" || !ok {
		t.Fatalf("FlagName = %q %q %v", name, inline, ok)
	}
	name, _, ok = FlagName("-h")
	if name != "h" || ok {
		t.Fatalf("FlagName(-h) = %q %v", name, ok)
	}
}
