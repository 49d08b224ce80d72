// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package command

import (
	"fmt"
	"strings"
)

// UnknownCommandError is returned when no command matches.
type UnknownCommandError struct {
	Command     string
	Suggestions []string
}

func (e *UnknownCommandError) Error() string {
	if e.Command == "" {
		return "ERROR: no command given"
	}
	switch len(e.Suggestions) {
	case 0:
		return fmt.Sprintf("ERROR: unknown command %q", e.Command)
	case 1:
		return fmt.Sprintf("ERROR: unknown command %q (did you mean %q?)", e.Command, e.Suggestions[0])
	}
	return fmt.Sprintf("ERROR: unknown command %q (did you mean one of: %s?)", e.Command, strings.Join(e.Suggestions, ", "))
}

// AmbiguousCommandError is returned when a partial command matches more
// than one full command. No command runs.
type AmbiguousCommandError struct {
	Command    string
	Candidates []string // sorted
}

func (e *AmbiguousCommandError) Error() string {
	return fmt.Sprintf("ERROR: command %q is ambiguous; it matches: %s", e.Command, strings.Join(e.Candidates, ", "))
}
