// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package lint is the rule engine of stylecheck.
//
// It runs a fixed set of style rules over Python source files and collects
// the findings as Issues:
//
//   - Line rules look at one raw line at a time (long lines, tabs and spaces
//     mixed in the leading whitespace).
//   - Structure rules walk the block tree produced by the ast package
//     (a block header followed by a line that is not indented further).
//   - A file that does not parse contributes one High severity syntax-error
//     issue in place of its structure issues.
//
// # Pipeline
//
//	path → lines → line rules → parse → structure rules | syntax issue → IssueSink
//
// # Rules
//
//	| Rule                      | Classification | Severity |
//	|---------------------------|----------------|----------|
//	| long-line                 | long_lines     | Low      |
//	| mixed-indentation         | indentation    | Medium   |
//	| missing-block-indentation | indentation    | Medium   |
//	| syntax-error              | (always)       | High     |
//
// # Ordering
//
// Issues are grouped by file in configured order. Within a file, line issues
// come first in line order (long-line before mixed-indentation on the same
// line), then structure issues in tree pre-order. Parallel analysis keeps
// this order.
//
// # Usage
//
//	linter, err := lint.NewLinter(lint.Config{
//	    Files:           []string{"app.py"},
//	    MaxLineLength:   80,
//	    Classifications: lint.AllClassifications(),
//	})
//	if err != nil {
//	    return err
//	}
//	if err := linter.Analyze(ctx); err != nil {
//	    return err
//	}
//	linter.Report(os.Stdout)
//
// # Thread Safety
//
// Rules, FileAnalyzer and reporters are safe for concurrent use. A Linter
// must not be analyzed from two goroutines at once.
package lint
