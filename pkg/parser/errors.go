// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parser

import (
	"fmt"
	"strings"
)

// UnrecognizedOptionError is returned when no descriptor owns a token.
type UnrecognizedOptionError struct {
	Option      string // the token as typed
	Pos         int    // argv position
	Command     string
	Suggestions []string
}

func (e *UnrecognizedOptionError) Error() string {
	var b strings.Builder
	if strings.HasPrefix(e.Option, "-") {
		fmt.Fprintf(&b, "ERROR: unrecognized option %q", e.Option)
	} else {
		fmt.Fprintf(&b, "ERROR: unexpected argument %q", e.Option)
	}
	if e.Command != "" {
		fmt.Fprintf(&b, " for %q", e.Command)
	}
	switch len(e.Suggestions) {
	case 0:
	case 1:
		fmt.Fprintf(&b, " (did you mean %s?)", e.Suggestions[0])
	default:
		fmt.Fprintf(&b, " (did you mean one of: %s?)", strings.Join(e.Suggestions, ", "))
	}
	return b.String()
}

// MissingValueError is returned when an option needs more values than
// follow it.
type MissingValueError struct {
	Option  string
	Key     string
	Pos     int
	Example string
}

func (e *MissingValueError) Error() string {
	return fmt.Sprintf("ERROR: missing value for %s (%s)\n\n  TRY: %s", e.Option, e.Key, e.Example)
}

// InvalidValueError is returned when a value is not in the option's
// allowed set. The value is never written.
type InvalidValueError struct {
	Option  string
	Key     string
	Value   string
	Pos     int
	Allowed []string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("ERROR: invalid value %q for %s (%s); allowed: %s", e.Value, e.Key, e.Option, strings.Join(e.Allowed, ", "))
}

// UnexpectedValueError is returned when an option that takes no value is
// given one inline, as in --continuous=x.
type UnexpectedValueError struct {
	Option string
	Key    string
	Value  string
	Pos    int
}

func (e *UnexpectedValueError) Error() string {
	name, _, _ := strings.Cut(e.Option, "=")
	return fmt.Sprintf("ERROR: %s (%s) takes no value, got %q", name, e.Key, e.Value)
}
