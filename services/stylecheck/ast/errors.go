// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package ast

import (
	"errors"
)

// Sentinel errors for complete parse failures.
//
// A syntax error in the source is not one of these: it is reported through
// ParseResult.Syntax. These errors mean no result could be produced at all.
var (
	// ErrFileTooLarge indicates the content exceeds the parser's size limit.
	ErrFileTooLarge = errors.New("file too large")

	// ErrInvalidContent indicates the content is not valid UTF-8 text.
	ErrInvalidContent = errors.New("invalid content")

	// ErrParseFailed indicates tree-sitter returned no tree.
	ErrParseFailed = errors.New("parse failed")
)
