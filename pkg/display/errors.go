// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package display

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aicli/ai/pkg/command"
)

// PrintError writes err for the user. Warnings are yellow, everything
// else red. An ambiguous command also lists its candidates the way they
// would be typed.
func PrintError(w io.Writer, c Colorizer, err error) {
	if err == nil {
		return
	}
	msg := err.Error()
	if strings.HasPrefix(msg, "WARNING:") {
		fmt.Fprintln(w, c.Warn(msg))
	} else {
		fmt.Fprintln(w, c.Error(msg))
	}

	var ae *command.AmbiguousCommandError
	if errors.As(err, &ae) {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "  TRY:")
		for _, name := range ae.Candidates {
			fmt.Fprintf(w, "    %s %s\n", Program, Words(name))
		}
	}
}

// Words spells a dotted command name the way it is typed.
func Words(name string) string {
	return strings.ReplaceAll(name, ".", " ")
}
