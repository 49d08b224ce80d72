// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"fmt"

	"github.com/aicli/ai/pkg/display"
	"github.com/aicli/ai/pkg/parser"
	"github.com/aicli/ai/pkg/values"
)

// NotLinkedError reports a command whose backend is not part of this
// build. Its values were parsed and validated.
type NotLinkedError struct {
	Command string
	What    string
}

func (e *NotLinkedError) Error() string {
	if e.What != "" {
		return fmt.Sprintf("WARNING: '%s' NOT YET IMPLEMENTED (%s)", display.Words(e.Command), e.What)
	}
	return fmt.Sprintf("WARNING: '%s' NOT YET IMPLEMENTED", display.Words(e.Command))
}

// common returns the options every command accepts.
func common() []*parser.Descriptor {
	return []*parser.Descriptor{
		parser.TrueFalse("--help", values.KeyHelp, "01", parser.Alias("-h", "-?"), parser.Hidden()),
		parser.TrueFalse("--quiet", values.KeyQuiet, "01"),
		parser.TrueFalse("--verbose", values.KeyVerbose, "01"),
		parser.TrueFalse("--debug", values.KeyDebug, "01", parser.Hidden()),
		parser.TrueFalse("--pause", "x.pause", "01", parser.Hidden()),
		parser.TrueFalse("--cls", "x.cls", "01", parser.Hidden()),
	}
}

// speechConnection binds the speech service connection.
func speechConnection() []*parser.Descriptor {
	return []*parser.Descriptor{
		parser.New("--key", "service.config.key", "001", "1", parser.Display("speech key")),
		parser.New("--region", "service.config.region", "001", "1", parser.Display("speech region")),
		parser.New("--endpoint", "service.config.endpoint.uri", "0010", "1", parser.Example("--endpoint URI")),
		parser.New("--host", "service.config.host.uri", "0010", "1", parser.Example("--host URI")),
		parser.New("--token", "service.config.token.value", "0010", "1", parser.Example("--token TOKEN")),
	}
}

// diagnostics binds the diagnostic log and the expected output checks.
func diagnostics() []*parser.Descriptor {
	return []*parser.Descriptor{
		parser.New("--expect", "x.command.expect", "001", "+"),
		parser.New("--not-expect", "x.command.not.expect", "0011", "+"),
		parser.New("--log", "diagnostics.config.log.file", "0010", "1", parser.Example("--log FILE")),
	}
}

// table declares a command's table with the common options first.
func table(name string, groups ...[]*parser.Descriptor) *parser.Table {
	descs := common()
	for _, g := range groups {
		descs = append(descs, g...)
	}
	return parser.NewTable(name, descs...)
}

func quiet(v *values.Store) bool {
	return v.Bool(values.KeyQuiet, false)
}
