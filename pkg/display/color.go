// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package display renders diagnostics, help and bound values for humans.
package display

import (
	"os"
	"strings"

	"github.com/fatih/color"
)

// Color modes accepted by NewColorizer.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

type Colorizer struct {
	Enabled bool
}

// NewColorizer decides whether output is colored. In auto mode color is
// used only on a terminal, and NO_COLOR or a dumb TERM turn it off.
func NewColorizer(mode string, isTerminal bool) Colorizer {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case ColorNever:
		return Colorizer{}
	case ColorAlways:
		return Colorizer{Enabled: true}
	}
	if !isTerminal || os.Getenv("NO_COLOR") != "" {
		return Colorizer{}
	}
	term := os.Getenv("TERM")
	if term == "" || term == "dumb" {
		return Colorizer{}
	}
	return Colorizer{Enabled: true}
}

// ValidColorMode reports whether mode is auto, always, never or empty.
func ValidColorMode(mode string) bool {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", ColorAuto, ColorAlways, ColorNever:
		return true
	}
	return false
}

func (c Colorizer) paint(text string, attrs ...color.Attribute) string {
	if !c.Enabled || text == "" {
		return text
	}
	p := color.New(attrs...)
	p.EnableColor()
	return p.Sprint(text)
}

func (c Colorizer) Error(text string) string { return c.paint(text, color.FgRed) }
func (c Colorizer) Warn(text string) string  { return c.paint(text, color.FgYellow) }
func (c Colorizer) OK(text string) string    { return c.paint(text, color.FgGreen) }
func (c Colorizer) Dim(text string) string   { return c.paint(text, color.FgHiBlack) }
func (c Colorizer) Bold(text string) string  { return c.paint(text, color.Bold) }
