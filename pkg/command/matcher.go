// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package command

import (
	"slices"
	"strings"

	"github.com/aicli/ai/pkg/parser"
	"github.com/aicli/ai/pkg/tokens"
)

// Resolve finds the command named by the leading words of args. Words are
// joined with dots while the name so far is a declared partial, so
// "service resource create" and "service.resource.create" are the same
// command. It returns the command and the number of words it used.
//
// A name that is exactly a registered command (case-sensitive) wins.
// Otherwise the name is matched as a case-insensitive prefix of the
// commands under a declared partial: one candidate is selected, more than
// one is an AmbiguousCommandError.
func (r *Registry) Resolve(args []string) (string, int, error) {
	var (
		probe  string
		n      int
		exact  string
		exactN int
	)
	for n < len(args) && args[n] != "" && !tokens.IsFlag(args[n]) {
		if n == 0 {
			probe = args[0]
		} else {
			probe += "." + args[n]
		}
		n++
		if _, ok := r.specs[probe]; ok {
			exact, exactN = probe, n
		}
		if !r.IsPartial(probe) {
			break
		}
	}
	if n == 0 {
		if len(args) == 0 {
			return "", 0, &UnknownCommandError{}
		}
		return "", 0, &UnknownCommandError{Command: args[0], Suggestions: r.suggest(args[0])}
	}
	if exactN == n {
		return exact, n, nil
	}

	candidates := r.prefixed(probe)
	switch {
	case len(candidates) == 1:
		return candidates[0], n, nil
	case len(candidates) > 1:
		return "", 0, &AmbiguousCommandError{Command: probe, Candidates: candidates}
	case exact != "":
		return exact, exactN, nil
	}
	return "", 0, &UnknownCommandError{Command: probe, Suggestions: r.suggest(probe)}
}

// prefixed returns the sorted commands under a declared partial that start
// with probe, ignoring case.
func (r *Registry) prefixed(probe string) []string {
	lower := strings.ToLower(probe)
	var out []string
	for _, name := range r.order {
		if r.underPartial(name) && strings.HasPrefix(strings.ToLower(name), lower) {
			out = append(out, name)
		}
	}
	slices.Sort(out)
	return out
}

func (r *Registry) suggest(name string) []string {
	return parser.Suggest(name, r.Visible(""), 3)
}
