// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parser

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aicli/ai/pkg/tokens"
	"github.com/aicli/ai/pkg/values"
	"github.com/google/go-cmp/cmp"
)

func botTable() *Table {
	return NewTable("dialog.bot",
		New("", "x.command.expand.file.name", "11111", "1"),
		New("--embedded", "embedded.config.embedded", "001", "1;0", OneOf("true", "false"), Default("true")),
		New("--group", "service.resource.group.name", "0010", "1"),
		New("--property", "config.string.property", "001", "2;1"),
		New("--url", "audio.input.file", "001", "1", Implies("audio.input.type", "file")),
		New("--urls", "audio.input.files", "001", "+", Implies("x.command.expand.file.name", "audio.input.file")),
		New("--recognize", "recognize.method", "10", "1", OneOf("keyword", "continuous", "once")),
		New("--continuous", "recognize.method", "10", "0", Default("continuous")),
		New("--once", "recognize.method", "10", "0", Default("once")),
		TrueFalse("", "x.quiet", "01"),
		New("", "check.sr.transcript.text.contains", "10011", "1", Implies("output.all.recognizer.recognized.result.text", "true")),
		New("", "check.sr.transcript.text", "1001", "2;1", Implies("output.all.recognizer.recognized.result.text", "true")),
	)
}

func parse(t *testing.T, table *Table, args ...string) (*values.Store, error) {
	t.Helper()
	s, err := tokens.New(args, tokens.Options{})
	if err != nil {
		t.Fatalf("tokens.New: %v", err)
	}
	store := values.New()
	return store, Parse(s, table, store)
}

func mustParse(t *testing.T, table *Table, args ...string) *values.Store {
	t.Helper()
	store, err := parse(t, table, args...)
	if err != nil {
		t.Fatalf("Parse(%q): %v", args, err)
	}
	return store
}

func TestPatternMatches(t *testing.T) {
	tests := []struct {
		key, pattern, name string
		want               bool
	}{
		{"service.resource.group.name", "0010", "group", true},
		{"service.resource.group.name", "0010", "GROUP", true},
		{"service.resource.group.name", "0010", "resource.group", true},
		{"service.resource.group.name", "0010", "service.resource.group.name", true},
		{"service.resource.group.name", "0010", "name", false},
		{"service.resource.group.name", "0010", "group.resource", false},
		{"service.resource.group.name", "0010", "group.x", false},
		{"service.resource.group.name", "0010", "group..name", false},
		{"embedded.config.embedded", "001", "embedded", true},
		{"embedded.config.embedded", "001", "config", false},
		{"check.sr.transcript.itn.text.not.in", "1001011", "check.itn.not.in", true},
		{"check.sr.transcript.itn.text.not.in", "1001011", "check.itn.in", false},
		{"source.language.config", "100;010", "source", true},
		{"source.language.config", "100;010", "language", true},
		{"source.language.config", "100;010", "config", false},
		{"output.audio.input.id", "1101;1011", "output.input.id", true},
		{"output.audio.input.id", "1101;1011", "output.audio.id", true},
		{"output.audio.input.id", "1101;1011", "output.id", false},
	}
	for _, tt := range tests {
		t.Run(tt.key+"/"+tt.name, func(t *testing.T) {
			d := New("", tt.key, tt.pattern, "1")
			if got := d.Names(tt.name); got != tt.want {
				t.Errorf("Names(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestSpellings(t *testing.T) {
	d := New("--group", "service.resource.group.name", "0010", "1")
	got := d.Spellings()
	if len(got) != 8 {
		t.Fatalf("Spellings = %v, want the 8 pattern spellings", got)
	}
	if got[0] != "group" {
		t.Fatalf("first spelling = %q, want the alias", got[0])
	}
	for _, s := range got {
		if !d.Names(s) {
			t.Errorf("Names(%q) = false for its own spelling", s)
		}
	}
}

func TestConstructionPanics(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
	}{
		{"pattern length", func() { New("", "a.b", "1", "1") }},
		{"pattern alphabet", func() { New("", "a.b", "12", "1") }},
		{"empty pattern", func() { New("", "a.b", "", "1") }},
		{"empty key", func() { New("", "", "", "1") }},
		{"empty segment", func() { New("", "a..b", "111", "1") }},
		{"empty count", func() { New("", "a.b", "11", "") }},
		{"ascending count", func() { New("", "a.b", "11", "1;2") }},
		{"repeated count", func() { New("", "a.b", "11", "1;1") }},
		{"plus not first", func() { New("", "a.b", "11", "1;+") }},
		{"count too large", func() { New("", "a.b", "11", "3") }},
		{"default not legal", func() { New("", "a.b", "11", "1;0", OneOf("x", "y")) }},
		{"alias without dash", func() { New("group", "a.b", "11", "1") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				r := recover()
				if r == nil {
					t.Fatalf("no panic")
				}
				if msg, _ := r.(string); !strings.HasPrefix(msg, "parser:") {
					t.Fatalf("panic = %v, want parser: prefix", r)
				}
			}()
			tt.fn()
		})
	}
}

func TestImpliedValue(t *testing.T) {
	store := mustParse(t, botTable(), "--continuous")
	if v, _ := store.Get("recognize.method"); v != "continuous" {
		t.Fatalf("recognize.method = %q, want continuous", v)
	}
}

func TestInvalidEnumNotWritten(t *testing.T) {
	store, err := parse(t, botTable(), "--recognize", "bogus")
	var ie *InvalidValueError
	if !errors.As(err, &ie) {
		t.Fatalf("err = %v, want *InvalidValueError", err)
	}
	if ie.Value != "bogus" || ie.Key != "recognize.method" {
		t.Fatalf("InvalidValueError = %+v", ie)
	}
	if diff := cmp.Diff([]string{"keyword", "continuous", "once"}, ie.Allowed); diff != "" {
		t.Fatalf("Allowed mismatch (-want +got):\n%s", diff)
	}
	if store.Contains("recognize.method") {
		t.Fatalf("illegal value was written")
	}
	if !strings.Contains(err.Error(), "ERROR: invalid value") {
		t.Fatalf("message = %q", err.Error())
	}
}

func TestEnumCanonicalSpelling(t *testing.T) {
	store := mustParse(t, botTable(), "--recognize", "ONCE")
	if v, _ := store.Get("recognize.method"); v != "once" {
		t.Fatalf("recognize.method = %q, want once", v)
	}
}

func TestLastWriteWins(t *testing.T) {
	store := mustParse(t, botTable(), "--group", "rg1", "--group", "rg2")
	if v, _ := store.Get("service.resource.group.name"); v != "rg2" {
		t.Fatalf("group = %q, want rg2", v)
	}
}

func TestInlineValue(t *testing.T) {
	store := mustParse(t, botTable(), "--group=rg1", "--resource.group", "rg2", "--x.quiet=false")
	if v, _ := store.Get("service.resource.group.name"); v != "rg2" {
		t.Fatalf("group = %q, want rg2", v)
	}
	if v, _ := store.Get("x.quiet"); v != "false" {
		t.Fatalf("x.quiet = %q, want false", v)
	}
}

func TestMultiValueFromFile(t *testing.T) {
	dir := t.TempDir()
	list := filepath.Join(dir, "list.txt")
	if err := os.WriteFile(list, []byte("a.wav\nb.wav\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := tokens.New([]string{"--urls", "@" + list}, tokens.Options{})
	if err != nil {
		t.Fatalf("tokens.New: %v", err)
	}
	r, err := Match(s, botTable())
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if r.Consumed != 3 {
		t.Fatalf("Consumed = %d, want 3", r.Consumed)
	}
	want := []Write{
		{Key: "audio.input.files", Value: "a.wav;b.wav", Sep: ";"},
		{Key: "x.command.expand.file.name", Value: "audio.input.file"},
	}
	if diff := cmp.Diff(want, r.Writes); diff != "" {
		t.Fatalf("Writes mismatch (-want +got):\n%s", diff)
	}
	if s.Position() != 0 {
		t.Fatalf("Match moved the cursor")
	}
}

func TestValueCountPreference(t *testing.T) {
	store := mustParse(t, botTable(), "--property", "name", "value")
	if v, _ := store.Get("config.string.property.name"); v != "value" {
		t.Fatalf("two-value form: %v", store.Map())
	}
	store = mustParse(t, botTable(), "--property", "only", "--once")
	if v, _ := store.Get("config.string.property"); v != "only" {
		t.Fatalf("one-value form: %v", store.Map())
	}
}

func TestOptionalValue(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"--embedded"}, "true"},
		{[]string{"--embedded", "false"}, "false"},
		{[]string{"--embedded", "--once"}, "true"},
	}
	for _, tt := range tests {
		store := mustParse(t, botTable(), tt.args...)
		if v, _ := store.Get("embedded.config.embedded"); v != tt.want {
			t.Errorf("%q: embedded = %q, want %q", tt.args, v, tt.want)
		}
	}
}

func TestMissingValue(t *testing.T) {
	_, err := parse(t, botTable(), "--group")
	var me *MissingValueError
	if !errors.As(err, &me) {
		t.Fatalf("err = %v, want *MissingValueError", err)
	}
	if me.Example != "--group NAME" {
		t.Fatalf("Example = %q", me.Example)
	}
	_, err = parse(t, botTable(), "--group", "--once")
	if !errors.As(err, &me) {
		t.Fatalf("flag as value: err = %v, want *MissingValueError", err)
	}
}

func TestInlineValueOnSwitch(t *testing.T) {
	store, err := parse(t, botTable(), "--continuous=x")
	var ue *UnexpectedValueError
	if !errors.As(err, &ue) {
		t.Fatalf("err = %v, want *UnexpectedValueError", err)
	}
	if ue.Value != "x" || ue.Key != "recognize.method" {
		t.Fatalf("UnexpectedValueError = %+v", ue)
	}
	if want := `ERROR: --continuous (recognize.method) takes no value, got "x"`; err.Error() != want {
		t.Fatalf("Error() = %q, want %q", err.Error(), want)
	}
	if store.Contains("recognize.method") {
		t.Fatalf("recognize.method written despite the error")
	}
}

func TestEmptyValue(t *testing.T) {
	store := mustParse(t, botTable(), "--group", "")
	if v, ok := store.Get("service.resource.group.name"); !ok || v != "" {
		t.Fatalf("group = %q, %v; want empty value set", v, ok)
	}
	store = mustParse(t, botTable(), "--group", "rg1", "--group=")
	if v, ok := store.Get("service.resource.group.name"); !ok || v != "" {
		t.Fatalf("group after --group= = %q, %v; want empty value set", v, ok)
	}
	_, err := parse(t, botTable(), "--recognize", "")
	var ie *InvalidValueError
	if !errors.As(err, &ie) || ie.Value != "" {
		t.Fatalf("empty enum value: err = %v, want *InvalidValueError", err)
	}
}

func TestDeclarationOrderWins(t *testing.T) {
	first := New("", "audio.input.id", "001", "1")
	second := New("--id", "dialog.bot.id", "001", "1")
	table := NewTable("t", first, second)
	for range 10 {
		s, _ := tokens.New([]string{"--id", "x"}, tokens.Options{})
		r, err := Match(s, table)
		if err != nil || r.Descriptor != first {
			t.Fatalf("Match = %v, %v; want the first descriptor", r, err)
		}
	}
}

func TestUnrecognized(t *testing.T) {
	_, err := parse(t, botTable(), "--grop", "rg1")
	var ue *UnrecognizedOptionError
	if !errors.As(err, &ue) {
		t.Fatalf("err = %v, want *UnrecognizedOptionError", err)
	}
	if len(ue.Suggestions) == 0 || ue.Suggestions[0] != "--group" {
		t.Fatalf("Suggestions = %v, want --group first", ue.Suggestions)
	}

	_, err = parse(t, botTable(), "stray")
	if !errors.As(err, &ue) || ue.Option != "stray" {
		t.Fatalf("bare value: err = %v", err)
	}
}

func TestPositional(t *testing.T) {
	table := botTable().WithPositional(values.KeyArgs)
	store := mustParse(t, table, "a", "--once", "b")
	if v, _ := store.Get(values.KeyArgs); v != "a b" {
		t.Fatalf("positional = %q, want %q", v, "a b")
	}
	if botTable().Positional() != "" {
		t.Fatalf("WithPositional changed the original table")
	}
}

func TestNegativeNumberIsValue(t *testing.T) {
	table := NewTable("t", New("--offset", "audio.offset", "01", "1"))
	store := mustParse(t, table, "--offset", "-5")
	if v, _ := store.Get("audio.offset"); v != "-5" {
		t.Fatalf("offset = %q", v)
	}
}

func TestShadowedAndUnreachable(t *testing.T) {
	owner := New("", "dialog.bot.id", "001", "1")
	partly := New("--id", "audio.input.id", "001", "1")
	dead := New("", "dialog.bot.id", "111", "1")
	table := NewTable("t", owner, partly, dead)

	shadows := table.Shadowed()
	var sawID bool
	for _, s := range shadows {
		if s.Shadowed == partly && s.Spelling == "id" && s.Owner == owner {
			sawID = true
		}
	}
	if !sawID {
		t.Fatalf("Shadowed = %v, want --id captured by dialog.bot.id", shadows)
	}
	if diff := cmp.Diff([]*Descriptor{dead}, table.Unreachable(), cmp.Comparer(func(a, b *Descriptor) bool { return a == b })); diff != "" {
		t.Fatalf("Unreachable mismatch (-want +got):\n%s", diff)
	}
	if got := botTable().Unreachable(); len(got) != 0 {
		t.Fatalf("botTable Unreachable = %v", got)
	}
}

func TestReparseIsIdempotent(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"values and switches", []string{"--group", "rg1", "--urls", "a.wav", "b.wav", "--continuous", "--embedded", "false", "--x.quiet"}},
		{"two values", []string{"--property", "name", "value", "--property", "other", "v2"}},
		{"two value option given one", []string{"--property", "only"}},
		{"implied output", []string{"--check.sr.transcript.text.contains", "hello"}},
		{"nested two value keys", []string{"--check.transcript.text", "wer", "5", "--check.transcript.text", "itn", "x"}},
		{"empty and at values", []string{"--group", "", "--url", "@@raw", "--property", "p", "@@v"}},
		{"flag-like value", []string{"--group=-rg", "--continuous"}},
		{"explicit implied key", []string{"--urls", "a.wav", "--x.command.expand.file.name", "other"}},
	}
	table := botTable()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first := mustParse(t, table, tt.args...)
			args := table.Args(first)
			second := mustParse(t, table, args...)
			if diff := cmp.Diff(first.Map(), second.Map()); diff != "" {
				t.Fatalf("re-parse of %q changed the store (-first +second):\n%s", args, diff)
			}
		})
	}
}

func TestArgsSpelling(t *testing.T) {
	table := botTable()
	store := mustParse(t, table, "--property", "name", "value", "--group", "rg1")
	want := []string{"--config.string.property", "name", "value", "--service.resource.group.name", "rg1"}
	if diff := cmp.Diff(want, table.Args(store)); diff != "" {
		t.Fatalf("Args mismatch (-want +got):\n%s", diff)
	}
	store.Set(values.KeyCommand, "dialog.bot")
	store.Set("unbound.key", "x")
	if diff := cmp.Diff([]string{"--service.resource.group.name", "rg1"}, table.Args(store, values.KeyCommand, "unbound.key", "service.resource.group.name")); diff != "" {
		t.Fatalf("Args(keys) mismatch (-want +got):\n%s", diff)
	}
}

func TestSuggest(t *testing.T) {
	cands := []string{"--group", "--subscription", "--location"}
	if got := Suggest("--grp", cands, 3); len(got) == 0 || got[0] != "--group" {
		t.Fatalf("Suggest(--grp) = %v", got)
	}
	if got := Suggest("--zzzzzzzz", cands, 3); len(got) != 0 {
		t.Fatalf("Suggest(--zzzzzzzz) = %v", got)
	}
}
