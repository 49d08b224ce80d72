// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fileutil writes files in place without exposing partial
// content.
package fileutil

import (
	"io"
	"os"
	"path/filepath"
)

// WriteFile writes dst with the output of write. It writes to a temporary
// file next to dst and moves it into place, so readers never see a
// partial file. Parent directories are created as needed.
func WriteFile(dst string, perm os.FileMode, write func(io.Writer) error) (err error) {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".*.tmp")
	if err != nil {
		return err
	}
	tempDst := tmp.Name()
	defer func() {
		tmp.Close()
		if err == nil {
			err = os.Rename(tempDst, dst)
		}
		if err != nil {
			os.Remove(tempDst)
		}
	}()
	if err = tmp.Chmod(perm); err != nil {
		return err
	}
	if err = write(tmp); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	return tmp.Close()
}
