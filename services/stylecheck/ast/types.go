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
	"fmt"
)

// Size limits applied before parsing.
const (
	// DefaultMaxFileSize is the largest file the parser accepts (1MB).
	DefaultMaxFileSize int64 = 1024 * 1024

	// WarnFileSize is the size above which a warning is logged (256KB).
	WarnFileSize = 256 * 1024
)

// =============================================================================
// NODE KIND
// =============================================================================

// NodeKind identifies the statement variant a Node represents.
//
// The set is closed: the block tree only ever contains these kinds. Any
// other grammar construct is flattened away during conversion.
type NodeKind int

const (
	// NodeModule is the root of every ParsedFile.
	NodeModule NodeKind = iota

	// NodeFunction is a `def` statement.
	NodeFunction

	// NodeClass is a `class` statement.
	NodeClass

	// NodeIf is an `if` statement. Its elif/else clauses are not nodes.
	NodeIf

	// NodeFor is a `for` statement.
	NodeFor

	// NodeWhile is a `while` statement.
	NodeWhile

	// NodeWith is a `with` statement (resource scope).
	NodeWith
)

// String returns the lowercase name of the kind.
func (k NodeKind) String() string {
	switch k {
	case NodeModule:
		return "module"
	case NodeFunction:
		return "function"
	case NodeClass:
		return "class"
	case NodeIf:
		return "if"
	case NodeFor:
		return "for"
	case NodeWhile:
		return "while"
	case NodeWith:
		return "with"
	default:
		return fmt.Sprintf("NodeKind(%d)", int(k))
	}
}

// =============================================================================
// NODE / PARSED FILE
// =============================================================================

// Node is one block-introducing statement in a ParsedFile.
//
// Thread Safety: Immutable after the parser returns it.
type Node struct {
	// Kind is the statement variant.
	Kind NodeKind

	// StartLine is the 1-indexed line of the statement header.
	StartLine int

	// EndLine is the 1-indexed last line of the statement.
	EndLine int

	// Children are the block statements nested in this one, in source order.
	Children []*Node
}

// ParsedFile is the block tree of one source file.
//
// Thread Safety: Immutable after the parser returns it.
type ParsedFile struct {
	// FilePath is the path the content was parsed under.
	FilePath string

	// Root is the module node. Never nil.
	Root *Node
}

// Walk visits every node of the tree in pre-order, root first.
// Returning false from fn skips that node's children.
func (f *ParsedFile) Walk(fn func(n *Node) bool) {
	if f == nil || f.Root == nil {
		return
	}
	walkNode(f.Root, fn)
}

func walkNode(n *Node, fn func(n *Node) bool) {
	if !fn(n) {
		return
	}
	for _, child := range n.Children {
		walkNode(child, fn)
	}
}

// Count returns the number of nodes of the given kind.
func (f *ParsedFile) Count(kind NodeKind) int {
	count := 0
	f.Walk(func(n *Node) bool {
		if n.Kind == kind {
			count++
		}
		return true
	})
	return count
}

// =============================================================================
// PARSE RESULT
// =============================================================================

// SyntaxError describes why a file did not parse.
type SyntaxError struct {
	// Line is the 1-indexed line of the first error. 0 if unknown.
	Line int `json:"line"`

	// Column is the 0-indexed column of the first error.
	Column int `json:"column"`

	// Message is a short description, e.g. "invalid syntax".
	Message string `json:"message"`
}

// ParseResult is a tagged result: exactly one of File or Syntax is set.
type ParseResult struct {
	// File is the block tree when the source parsed cleanly.
	File *ParsedFile

	// Syntax is set when the source contains a syntax error.
	Syntax *SyntaxError
}

// OK reports whether the source parsed cleanly.
func (r *ParseResult) OK() bool {
	return r != nil && r.File != nil && r.Syntax == nil
}
