// Copyright (c) 2026, Cursorforge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fsutil provides small filesystem helpers: atomic file writes and
// directory listing, in the spirit of cogentcore's base/fsx package.
package fsutil

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// WriteAtomic writes data to path by first writing to a temporary sibling
// file and then renaming it into place, per spec §5's "temp file in the
// same directory, ATOMIC_MOVE; fall back to REPLACE_EXISTING" policy.
// On most filesystems os.Rename is already atomic and always replaces an
// existing target, which is the REPLACE_EXISTING fallback behavior.
func WriteAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

// SVGFiles returns the sorted base names of all *.svg files directly within
// dir (non-recursive; the theme driver groups by source sub-directory so
// each directory is walked individually).
func SVGFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".svg") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Subdirs returns the sorted base names of all immediate subdirectories of dir.
func Subdirs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Exists reports whether path exists and is a regular file.
func Exists(path string) (bool, error) {
	fi, err := os.Stat(path)
	if err == nil {
		return !fi.IsDir(), nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// EnsureDir creates dir and all parents if they do not already exist.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0o777)
}
