// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package ast parses Python source into a small block tree used by the
// structural lint rules.
package ast

import (
	"context"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// maxSyntaxScanDepth bounds the recursion when searching for error nodes.
const maxSyntaxScanDepth = 1000

// PythonParserOption configures a PythonParser instance.
type PythonParserOption func(*PythonParser)

// WithPythonMaxFileSize sets the maximum file size the parser will accept.
//
// Parameters:
//   - bytes: Maximum file size in bytes. Non-positive values are ignored.
func WithPythonMaxFileSize(bytes int64) PythonParserOption {
	return func(p *PythonParser) {
		if bytes > 0 {
			p.maxFileSize = bytes
		}
	}
}

// WithPythonLogger sets the logger used for parser warnings.
func WithPythonLogger(logger *slog.Logger) PythonParserOption {
	return func(p *PythonParser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// PythonParser converts Python source into a ParsedFile.
//
// Description:
//
//	PythonParser uses tree-sitter to parse the source, then keeps only the
//	block-introducing statements (def, class, if, for, while, with) as a
//	tree of Nodes. A source containing ERROR or MISSING nodes produces a
//	SyntaxError instead of a tree.
//
// Thread Safety:
//
//	PythonParser instances are safe for concurrent use. Each Parse call
//	creates its own tree-sitter parser internally.
type PythonParser struct {
	maxFileSize int64
	logger      *slog.Logger
}

// NewPythonParser creates a new PythonParser with the given options.
//
// Outputs:
//   - *PythonParser: Configured parser instance, never nil
func NewPythonParser(opts ...PythonParserOption) *PythonParser {
	p := &PythonParser{
		maxFileSize: DefaultMaxFileSize,
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Parse builds the block tree for Python source code.
//
// Description:
//
//	Parse runs tree-sitter over content. If the tree contains a syntax
//	error, the result carries the first error in source order and no tree.
//	Otherwise the result carries the block tree.
//
// Inputs:
//   - ctx: Context for cancellation. Checked before and after parsing.
//   - content: Raw Python source bytes. Must be valid UTF-8.
//   - filePath: Path used for logging and ParsedFile.FilePath.
//
// Outputs:
//   - *ParseResult: Tagged result. Never nil when error is nil.
//   - error: Non-nil only for complete failures:
//   - ErrFileTooLarge: Content exceeds maxFileSize
//   - ErrInvalidContent: Content is not valid UTF-8
//   - ErrParseFailed: tree-sitter produced no tree
//   - Context errors: Context was canceled or timed out
//
// Limitations:
//   - tree-sitter is error tolerant, so some programs Python itself rejects
//     (for example `return` outside a function) parse cleanly here.
//   - A header followed by an unindented line parses as an empty block,
//     which is what lets the indentation rule report it.
func (p *PythonParser) Parse(ctx context.Context, content []byte, filePath string) (*ParseResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse canceled before start: %w", err)
	}

	if int64(len(content)) > p.maxFileSize {
		return nil, fmt.Errorf("%w: size %d exceeds limit %d", ErrFileTooLarge, len(content), p.maxFileSize)
	}

	if len(content) > WarnFileSize {
		p.logger.Warn("parsing large file",
			slog.String("file", filePath),
			slog.Int("size_bytes", len(content)))
	}

	if !utf8.Valid(content) {
		return nil, fmt.Errorf("%w: content is not valid UTF-8", ErrInvalidContent)
	}

	ctx, span := startParseSpan(ctx, filePath, len(content))
	defer span.End()
	start := time.Now()

	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "tree-sitter parse failed")
		return nil, fmt.Errorf("%w: %v", ErrParseFailed, err)
	}
	defer tree.Close()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse canceled after tree-sitter: %w", err)
	}

	root := tree.RootNode()
	if root == nil {
		return nil, fmt.Errorf("%w: tree-sitter returned nil root node", ErrParseFailed)
	}

	if root.HasError() {
		syntax := firstSyntaxError(root, 0)
		if syntax == nil {
			// HasError without a locatable node; report it unlocalized.
			syntax = &SyntaxError{Message: "invalid syntax"}
		}
		span.SetAttributes(attribute.Int("ast.syntax_error_line", syntax.Line))
		recordParseMetrics(ctx, time.Since(start), false)
		return &ParseResult{Syntax: syntax}, nil
	}

	file := &ParsedFile{
		FilePath: filePath,
		Root: &Node{
			Kind:      NodeModule,
			StartLine: int(root.StartPoint().Row) + 1,
			EndLine:   int(root.EndPoint().Row) + 1,
		},
	}
	p.collectBlocks(root, file.Root)

	recordParseMetrics(ctx, time.Since(start), true)
	return &ParseResult{File: file}, nil
}

// Language returns the canonical language name for this parser.
func (p *PythonParser) Language() string {
	return "python"
}

// Extensions returns the file extensions this parser handles.
func (p *PythonParser) Extensions() []string {
	return []string{".py", ".pyi"}
}

// collectBlocks appends the block statements below node to parent.
//
// Nodes that are not block statements are descended through, so a block
// nested in an expression or a decorated definition still attaches to the
// nearest block ancestor.
func (p *PythonParser) collectBlocks(node *sitter.Node, parent *Node) {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child == nil {
			continue
		}

		kind, ok := blockKind(child)
		if !ok {
			p.collectBlocks(child, parent)
			continue
		}

		block := &Node{
			Kind:      kind,
			StartLine: int(child.StartPoint().Row) + 1,
			EndLine:   int(child.EndPoint().Row) + 1,
		}
		parent.Children = append(parent.Children, block)
		p.collectBlocks(child, block)
	}
}

// blockKind maps a tree-sitter node to a block kind.
//
// Async definitions, loops and with statements are not block nodes.
func blockKind(node *sitter.Node) (NodeKind, bool) {
	kind, ok := pythonBlockKinds[node.Type()]
	if !ok {
		return 0, false
	}
	if kind == NodeClass {
		return kind, true
	}
	if isAsync(node) {
		return 0, false
	}
	return kind, true
}

// isAsync reports whether a statement carries a leading `async` keyword.
func isAsync(node *sitter.Node) bool {
	if node.Type() == pyNodeAsyncFunctionDefine {
		return true
	}
	if node.ChildCount() == 0 {
		return false
	}
	first := node.Child(0)
	return first != nil && first.Type() == pyNodeAsyncKeyword
}

// firstSyntaxError returns the first ERROR or MISSING node in pre-order.
func firstSyntaxError(node *sitter.Node, depth int) *SyntaxError {
	if node == nil || depth > maxSyntaxScanDepth {
		return nil
	}

	if node.IsError() || node.IsMissing() {
		point := node.StartPoint()
		msg := "invalid syntax"
		if node.IsMissing() {
			msg = fmt.Sprintf("expected '%s'", node.Type())
		}
		return &SyntaxError{
			Line:    int(point.Row) + 1,
			Column:  int(point.Column),
			Message: msg,
		}
	}

	if !node.HasError() {
		return nil
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		if found := firstSyntaxError(node.Child(i), depth+1); found != nil {
			return found
		}
	}
	return nil
}
