// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tokens turns a command line into a cursor over tokens.
//
// Arguments of the form @name are response files: the file's non-blank
// lines replace the argument in place, in file order. Expansion happens
// once, when the Stream is built, so a missing or cyclic include fails
// before any value has been bound.
package tokens

import (
	"strconv"
	"strings"
)

// Token is one unit of the command line.
type Token struct {
	// Text is the token as typed (or as read from a response file).
	Text string
	// Pos is the index of the argv entry that produced the token. Tokens
	// expanded from a response file share the position of their @file.
	Pos int
	// Source is the response file the token was read from, or "" for argv.
	Source string
}

// IsFlag reports whether the token is spelled like an option.
func (t Token) IsFlag() bool {
	return IsFlag(t.Text)
}

// Options controls how a Stream is built.
type Options struct {
	// SearchPath lists directories searched, in order, for @file
	// references that do not resolve relative to the working directory.
	SearchPath []string
}

// Stream is a read cursor over an expanded token list.
// It is not safe for concurrent use.
type Stream struct {
	toks []Token
	next int
}

// New expands args into a Stream.
func New(args []string, opts Options) (*Stream, error) {
	e := &expander{opts: opts}
	toks := make([]Token, 0, len(args))
	for i, arg := range args {
		var err error
		toks, err = e.appendToken(toks, Token{Text: arg, Pos: i})
		if err != nil {
			return nil, err
		}
	}
	return &Stream{toks: toks}, nil
}

// FromTokens returns a Stream over already expanded tokens.
func FromTokens(toks []Token) *Stream {
	return &Stream{toks: append([]Token(nil), toks...)}
}

// Peek returns the token skip positions past the cursor.
func (s *Stream) Peek(skip int) (Token, bool) {
	i := s.next + skip
	if skip < 0 || i >= len(s.toks) {
		return Token{}, false
	}
	return s.toks[i], true
}

// Next returns the token at the cursor and advances past it.
func (s *Stream) Next() (Token, bool) {
	t, ok := s.Peek(0)
	if ok {
		s.next++
	}
	return t, ok
}

// Advance moves the cursor n tokens forward, stopping at the end.
func (s *Stream) Advance(n int) {
	s.next = min(s.next+max(n, 0), len(s.toks))
}

// Done reports whether every token has been consumed.
func (s *Stream) Done() bool {
	return s.next >= len(s.toks)
}

// Remaining returns the number of unconsumed tokens.
func (s *Stream) Remaining() int {
	return len(s.toks) - s.next
}

// Position returns the index of the cursor in the expanded token list.
func (s *Stream) Position() int {
	return s.next
}

// Rest returns a copy of the unconsumed tokens.
func (s *Stream) Rest() []Token {
	return append([]Token(nil), s.toks[s.next:]...)
}

// Texts returns the text of every token, consumed or not.
func (s *Stream) Texts() []string {
	out := make([]string, len(s.toks))
	for i, t := range s.toks {
		out[i] = t.Text
	}
	return out
}

// IsFlag reports whether text is spelled like an option: a leading dash,
// at least one more character, and not a negative number.
func IsFlag(text string) bool {
	if len(text) < 2 || text[0] != '-' {
		return false
	}
	return !isNegativeNumber(text)
}

// FlagName strips the leading dashes from an option and splits off an
// inline "=value".
func FlagName(text string) (name, inline string, hasInline bool) {
	name = strings.TrimLeft(text, "-")
	if idx := strings.Index(name, "="); idx > 0 {
		return name[:idx], name[idx+1:], true
	}
	return name, "", false
}

func isNegativeNumber(s string) bool {
	if !strings.HasPrefix(s, "-") {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}
