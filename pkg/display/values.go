// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package display

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/BurntSushi/toml"
	"github.com/aicli/ai/pkg/values"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by Values.
const (
	FormatTable = "table"
	FormatYAML  = "yaml"
	FormatTOML  = "toml"
)

// Values writes the store in the given format. The table format masks
// secrets; yaml and toml are meant to be read back and print values as is.
func Values(w io.Writer, store *values.Store, format string) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(store); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(store.Map()); err != nil {
			return fmt.Errorf("failed to encode toml: %w", err)
		}
		return nil
	case FormatTable, "":
		tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
		for _, p := range store.Pairs() {
			fmt.Fprintf(tw, "%s\t%s\n", p.Key, Mask(p.Key, p.Value))
		}
		return tw.Flush()
	}
	return fmt.Errorf("unknown format %q (want %s, %s or %s)", format, FormatTable, FormatYAML, FormatTOML)
}
