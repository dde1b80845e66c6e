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
	"strings"

	"github.com/AleutianAI/stylecheck/services/stylecheck/ast"
)

// StructureRule checks a whole parsed file.
type StructureRule interface {
	// Name returns the rule name carried on its Issues.
	Name() string

	// Classification returns the group that enables the rule.
	Classification() Classification

	// Check inspects the tree and returns Issues in traversal order.
	//
	// lines are the file's lines without terminators, index 0 is line 1.
	Check(file string, tree *ast.ParsedFile, lines []string) []Issue
}

// MissingBlockIndentationRule reports block headers whose next line is not
// indented further than the header.
//
// Description:
//
//	For every def, if, for, while and with statement, the line right after
//	the header must be indented strictly more than the header line. Class
//	bodies and else/elif/except clauses are not checked.
//
// Limitations:
//
//	Only the single next line is inspected. When it is blank or a comment
//	the block is skipped, never scanned forward to its first statement.
type MissingBlockIndentationRule struct{}

// Name implements StructureRule.
func (MissingBlockIndentationRule) Name() string { return RuleMissingBlockIndentation }

// Classification implements StructureRule.
func (MissingBlockIndentationRule) Classification() Classification { return ClassIndentation }

// Check implements StructureRule.
func (r MissingBlockIndentationRule) Check(file string, tree *ast.ParsedFile, lines []string) []Issue {
	issues := make([]Issue, 0)
	if tree == nil || tree.Root == nil {
		return issues
	}
	return r.visit(tree.Root, file, lines, issues)
}

// visit checks n and then its children, appending to acc in pre-order.
func (r MissingBlockIndentationRule) visit(n *ast.Node, file string, lines []string, acc []Issue) []Issue {
	switch n.Kind {
	case ast.NodeFunction, ast.NodeIf, ast.NodeFor, ast.NodeWhile, ast.NodeWith:
		if issue, ok := checkBlockIndentation(n.StartLine, file, lines); ok {
			acc = append(acc, issue)
		}
	case ast.NodeModule, ast.NodeClass:
		// Not block headers for this rule.
	}

	for _, child := range n.Children {
		acc = r.visit(child, file, lines, acc)
	}
	return acc
}

// checkBlockIndentation compares the header line with the line after it.
func checkBlockIndentation(startLine int, file string, lines []string) (Issue, bool) {
	if startLine < 1 || startLine >= len(lines) {
		return Issue{}, false
	}

	header := lines[startLine-1]
	next := lines[startLine]

	trimmed := strings.TrimSpace(next)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return Issue{}, false
	}

	if indentWidth(next) > indentWidth(header) {
		return Issue{}, false
	}

	return Issue{
		File:     file,
		Line:     startLine + 1,
		Message:  "Missing indentation for code block",
		Severity: SeverityMedium,
		Rule:     RuleMissingBlockIndentation,
	}, true
}
