// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parser

import (
	"slices"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// maxEditDistance bounds how far a typo may be from a suggestion.
const maxEditDistance = 3

// Suggest returns up to limit candidates close to target: first the
// candidates that contain target's characters in order, best ranked
// first, then any within a small edit distance.
func Suggest(target string, candidates []string, limit int) []string {
	if target == "" || limit <= 0 {
		return nil
	}
	ranks := fuzzy.RankFindFold(target, candidates)
	sort.Sort(ranks)
	var out []string
	for _, r := range ranks {
		if !slices.Contains(out, r.Target) {
			out = append(out, r.Target)
		}
	}

	type near struct {
		s    string
		dist int
	}
	var nears []near
	lower := strings.ToLower(target)
	for _, c := range candidates {
		if d := fuzzy.LevenshteinDistance(lower, strings.ToLower(c)); d <= maxEditDistance {
			nears = append(nears, near{c, d})
		}
	}
	sort.SliceStable(nears, func(i, j int) bool { return nears[i].dist < nears[j].dist })
	for _, n := range nears {
		if !slices.Contains(out, n.s) {
			out = append(out, n.s)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
