// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// pythonExt is the extension collected from directories.
const pythonExt = ".py"

// skipDirs are directory names never descended into.
var skipDirs = map[string]bool{
	".git":        true,
	"__pycache__": true,
	".venv":       true,
	".tox":        true,
}

// expandPaths replaces each directory in paths with the Python files beneath
// it, in lexical order. Other paths, including ones that do not exist, are
// kept as given so the linter can report them.
func expandPaths(paths []string) ([]string, error) {
	files := make([]string, 0, len(paths))
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil || !info.IsDir() {
			files = append(files, path)
			continue
		}
		found, err := collectFiles(path)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	return files, nil
}

// collectFiles walks root and returns its .py files. WalkDir visits entries
// in lexical order, so the result is sorted per directory.
func collectFiles(root string) ([]string, error) {
	var files []string

	walkFn := func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // Continue on error
		}
		if d.IsDir() {
			if path != root && skipDirs[d.Name()] {
				return fs.SkipDir
			}
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), pythonExt) && d.Type().IsRegular() {
			files = append(files, path)
		}
		return nil
	}

	if err := filepath.WalkDir(root, walkFn); err != nil {
		return nil, err
	}
	return files, nil
}
