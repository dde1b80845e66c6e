// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package lint

import (
	"errors"
	"fmt"
)

// Sentinel errors for the lint package.
var (
	// ErrInvalidConfig indicates a Config the engine cannot run with.
	ErrInvalidConfig = errors.New("invalid config")

	// ErrUnknownClassification indicates an unrecognized classification name.
	ErrUnknownClassification = errors.New("unknown classification")

	// ErrFileNotFound indicates a configured file does not exist.
	ErrFileNotFound = errors.New("file does not exist")

	// ErrFileTooLarge indicates a file exceeds Config.MaxFileSize.
	ErrFileTooLarge = errors.New("file too large")

	// ErrNotText indicates a file is not valid UTF-8 text.
	ErrNotText = errors.New("file is not valid UTF-8 text")
)

// FileAccessError reports a file that could not be read for analysis.
//
// Thread Safety: Immutable after creation.
type FileAccessError struct {
	// Path is the configured path.
	Path string

	// Name is the base name used in reports.
	Name string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *FileAccessError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *FileAccessError) Unwrap() error {
	return e.Err
}

// noticeMessage renders the side-channel line for an unreadable file.
func noticeMessage(name string, err error) string {
	switch {
	case errors.Is(err, ErrFileNotFound):
		return fmt.Sprintf("Error: The file '%s' does not exist.", name)
	case errors.Is(err, ErrFileTooLarge):
		return fmt.Sprintf("Error: The file '%s' is too large to analyze.", name)
	case errors.Is(err, ErrNotText):
		return fmt.Sprintf("Error: The file '%s' is not valid UTF-8 text.", name)
	default:
		var access *FileAccessError
		if errors.As(err, &access) {
			err = access.Err
		}
		return fmt.Sprintf("Error: The file '%s' could not be read: %v", name, err)
	}
}
