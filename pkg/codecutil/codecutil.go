// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package codecutil reads and writes files that may be zstd compressed.
// A file is compressed when its name ends in ".zst".
package codecutil

import (
	"fmt"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// Ext marks compressed files.
const Ext = ".zst"

// IsCompressed reports whether name is treated as zstd compressed.
func IsCompressed(name string) bool {
	return strings.HasSuffix(name, Ext)
}

// ReadFile returns the contents of name, decompressed when name ends in
// ".zst".
func ReadFile(name string) ([]byte, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	if !IsCompressed(name) {
		return data, nil
	}
	out, err := ZstdDecode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress %s: %w", name, err)
	}
	return out, nil
}

// WriteFile writes data to name, compressed when name ends in ".zst".
func WriteFile(name string, data []byte, perm os.FileMode) error {
	if IsCompressed(name) {
		var err error
		if data, err = ZstdEncode(data); err != nil {
			return fmt.Errorf("failed to compress %s: %w", name, err)
		}
	}
	return os.WriteFile(name, data, perm)
}

func ZstdDecode(data []byte) ([]byte, error) {
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}
	defer decoder.Close()
	return decoder.DecodeAll(data, nil)
}

func ZstdEncode(data []byte) ([]byte, error) {
	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	defer encoder.Close()
	return encoder.EncodeAll(data, nil), nil
}
