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
	"errors"
	"fmt"
	"io"
)

// Exit codes for the check command.
const (
	ExitSuccess = 0
	ExitIssues  = 1
	ExitFailure = 2
)

// ExitError carries the process exit code out of a command.
type ExitError struct {
	// Code is the process exit code.
	Code int

	// Wrapped is the underlying error, nil when the code alone is the result.
	Wrapped error
}

func (e *ExitError) Error() string {
	if e.Wrapped != nil {
		return e.Wrapped.Error()
	}
	return fmt.Sprintf("exit %d", e.Code)
}

func (e *ExitError) Unwrap() error {
	return e.Wrapped
}

// usageError builds a usage or configuration failure.
func usageError(format string, args ...any) *ExitError {
	return &ExitError{Code: ExitFailure, Wrapped: fmt.Errorf(format, args...)}
}

// exitCode maps a command error to a process exit code, writing the
// message of any failure to stderr.
func exitCode(err error, stderr io.Writer) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Wrapped == nil {
		return exitErr.Code
	}

	fmt.Fprintf(stderr, "Error: %v\n", err)
	if exitErr != nil {
		return exitErr.Code
	}
	// Flag parsing and argument errors from cobra.
	return ExitFailure
}
