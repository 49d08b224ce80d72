// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package app

import (
	"runtime/debug"
	"strings"
)

// buildVersion is injected at build time via -ldflags.
var buildVersion string

var readBuildInfo = debug.ReadBuildInfo

// Version returns the release version if set, then the module version of
// an installed binary, then the commit hash.
func Version() string {
	if v := strings.TrimSpace(buildVersion); v != "" {
		return strings.TrimPrefix(v, "v")
	}
	bi, ok := readBuildInfo()
	if !ok {
		return "unknown"
	}
	if v := bi.Main.Version; v != "" && v != "(devel)" {
		return strings.TrimPrefix(v, "v")
	}
	return commit(bi)
}

func commit(bi *debug.BuildInfo) string {
	var dirty bool
	var rev string
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if rev == "" {
		return "dev"
	}
	if len(rev) >= 9 {
		rev = rev[:9]
	}
	if dirty {
		rev += "+dirty"
	}
	return rev
}
