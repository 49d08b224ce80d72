// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package display

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/aicli/ai/pkg/command"
)

// Program is the name help text uses for the binary.
const Program = "ai"

// CommandHelp writes the help page for one command.
func CommandHelp(w io.Writer, c Colorizer, spec *command.Spec) {
	usage := spec.Usage
	if usage == "" {
		usage = "[...]"
	}
	fmt.Fprintf(w, "%s %s %s %s\n", c.Bold("USAGE:"), Program, Words(spec.Name), usage)
	if spec.Summary != "" {
		fmt.Fprintf(w, "\n  %s\n", spec.Summary)
	}

	var rows [][2]string
	for _, d := range spec.Table.Descriptors() {
		if d.IsHidden() {
			continue
		}
		rows = append(rows, [2]string{d.Example(), d.Key()})
	}
	if len(rows) > 0 {
		fmt.Fprintf(w, "\n%s\n", c.Bold("OPTIONS"))
		tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
		for _, r := range rows {
			fmt.Fprintf(tw, "  %s\t%s\n", r[0], c.Dim(r[1]))
		}
		tw.Flush()
	}

	if len(spec.Examples) > 0 {
		fmt.Fprintf(w, "\n%s\n", c.Bold("EXAMPLES"))
		for _, ex := range spec.Examples {
			fmt.Fprintf(w, "  %s\n", ex)
		}
	}
}

// Overview lists the visible commands under prefix, or every visible
// command when prefix is empty.
func Overview(w io.Writer, c Colorizer, reg *command.Registry, prefix string) {
	if prefix == "" {
		fmt.Fprintf(w, "%s %s <command> [...]\n", c.Bold("USAGE:"), Program)
	} else {
		fmt.Fprintf(w, "%s %s %s <command> [...]\n", c.Bold("USAGE:"), Program, Words(prefix))
	}
	fmt.Fprintf(w, "\n%s\n", c.Bold("COMMANDS"))
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	for _, name := range reg.Visible(prefix) {
		spec, _ := reg.Lookup(name)
		fmt.Fprintf(tw, "  %s\t%s\n", Words(name), spec.Summary)
	}
	tw.Flush()
	fmt.Fprintf(w, "\nSee '%s help <command>' for more about a command.\n", Program)
}

// Mask hides all but the first four characters of secrets: values whose
// key ends in "key" or "_KEY".
func Mask(key, value string) string {
	lower := strings.ToLower(key)
	if !strings.HasSuffix(lower, ".key") && !strings.HasSuffix(lower, "_key") && lower != "key" {
		return value
	}
	if len(value) <= 4 {
		return strings.Repeat("*", len(value))
	}
	return value[:4] + strings.Repeat("*", 28)
}
