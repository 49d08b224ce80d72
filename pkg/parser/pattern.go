// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parser

import (
	"fmt"
	"strconv"
	"strings"
)

// pattern is one compiled alternative of a requirement pattern. It holds
// one entry per dotted segment of the destination key: true when the
// segment must be spelled in the option, false when it may be left out.
type pattern struct {
	required []bool
}

// compilePatterns parses a ';'-separated requirement pattern for key.
// Each alternative must have exactly one '0' or '1' per key segment.
func compilePatterns(key string, segs []string, spec string) []pattern {
	if spec == "" {
		panic(fmt.Sprintf("parser: %s: empty requirement pattern", key))
	}
	var out []pattern
	for _, alt := range strings.Split(spec, ";") {
		if len(alt) != len(segs) {
			panic(fmt.Sprintf("parser: %s: pattern %q has %d positions, key has %d segments", key, alt, len(alt), len(segs)))
		}
		p := pattern{required: make([]bool, len(alt))}
		for i, c := range alt {
			switch c {
			case '0':
			case '1':
				p.required[i] = true
			default:
				panic(fmt.Sprintf("parser: %s: pattern %q has invalid character %q", key, alt, c))
			}
		}
		out = append(out, p)
	}
	return out
}

// matches reports whether parts, the dot-separated pieces of an option
// name, spell the key segs under this pattern. Parts must map onto
// segments in order, each required segment must be covered, and optional
// segments may be skipped.
func (p pattern) matches(segs, parts []string) bool {
	for _, part := range parts {
		if part == "" {
			return false
		}
	}
	return p.matchFrom(segs, parts, 0, 0)
}

func (p pattern) matchFrom(segs, parts []string, si, pi int) bool {
	if pi == len(parts) {
		for ; si < len(segs); si++ {
			if p.required[si] {
				return false
			}
		}
		return true
	}
	if si == len(segs) {
		return false
	}
	if strings.EqualFold(segs[si], parts[pi]) && p.matchFrom(segs, parts, si+1, pi+1) {
		return true
	}
	if p.required[si] {
		return false
	}
	return p.matchFrom(segs, parts, si+1, pi)
}

// spellings returns every option name this pattern accepts, shortest
// first within each length.
func (p pattern) spellings(segs []string) []string {
	var out []string
	var walk func(i int, picked []string)
	walk = func(i int, picked []string) {
		if i == len(segs) {
			if len(picked) > 0 {
				out = append(out, strings.Join(picked, "."))
			}
			return
		}
		if !p.required[i] {
			walk(i+1, picked)
		}
		walk(i+1, append(picked[:len(picked):len(picked)], segs[i]))
	}
	walk(0, nil)
	return out
}

// countMany is the value count spelled "+": every following bare value,
// at least one.
const countMany = -1

// compileCounts parses a value count spec such as "2;1" or "+".
// Entries must be strictly descending; "+" may only appear first.
func compileCounts(key, spec string) []int {
	if spec == "" {
		panic(fmt.Sprintf("parser: %s: empty value count", key))
	}
	var out []int
	for i, entry := range strings.Split(spec, ";") {
		if entry == "+" {
			if i != 0 {
				panic(fmt.Sprintf("parser: %s: value count %q: '+' must come first", key, spec))
			}
			out = append(out, countMany)
			continue
		}
		n, err := strconv.Atoi(entry)
		if err != nil || n < 0 || n > 2 {
			panic(fmt.Sprintf("parser: %s: value count %q: invalid entry %q", key, spec, entry))
		}
		if i > 0 {
			if prev := out[i-1]; prev != countMany && prev <= n {
				panic(fmt.Sprintf("parser: %s: value count %q is not in descending order", key, spec))
			}
		}
		out = append(out, n)
	}
	return out
}
