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
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/AleutianAI/stylecheck/services/stylecheck/ast"
)

// AnalyzerOption configures a FileAnalyzer.
type AnalyzerOption func(*FileAnalyzer)

// WithAnalyzerLogger sets the logger for per-file diagnostics.
func WithAnalyzerLogger(logger *slog.Logger) AnalyzerOption {
	return func(a *FileAnalyzer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// FileAnalyzer runs the enabled rules over one file at a time.
//
// Description:
//
//	For each file it reads the text, runs every enabled LineRule over
//	every line, parses the text once, and then either runs the enabled
//	StructureRules over the tree or, if the text does not parse, emits a
//	single High severity syntax-error issue.
//
// Thread Safety: Safe for concurrent use. Analyze holds no state between
// calls.
type FileAnalyzer struct {
	parser         *ast.PythonParser
	lineRules      []LineRule
	structureRules []StructureRule
	maxFileSize    int64
	logger         *slog.Logger
}

// NewFileAnalyzer builds an analyzer for the rules enabled in cfg.
//
// Inputs:
//
//	cfg - Run configuration. MaxLineLength and Classifications select the
//	      rules; MaxFileSize bounds what is read.
//	opts - Optional configuration functions
//
// Outputs:
//
//	*FileAnalyzer - The analyzer, never nil
func NewFileAnalyzer(cfg Config, opts ...AnalyzerOption) *FileAnalyzer {
	cfg = cfg.withDefaults()
	a := &FileAnalyzer{
		lineRules:      lineRulesFor(cfg),
		structureRules: structureRulesFor(cfg),
		maxFileSize:    cfg.MaxFileSize,
		logger:         slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.parser = ast.NewPythonParser(
		ast.WithPythonMaxFileSize(a.maxFileSize),
		ast.WithPythonLogger(a.logger),
	)
	return a
}

// lineRulesFor returns the enabled line rules in their fixed run order.
func lineRulesFor(cfg Config) []LineRule {
	all := []LineRule{
		LongLineRule{MaxLength: cfg.MaxLineLength},
		MixedIndentationRule{},
	}
	rules := make([]LineRule, 0, len(all))
	for _, r := range all {
		if cfg.Classifications.Has(r.Classification()) {
			rules = append(rules, r)
		}
	}
	return rules
}

// structureRulesFor returns the enabled structure rules.
func structureRulesFor(cfg Config) []StructureRule {
	all := []StructureRule{
		MissingBlockIndentationRule{},
	}
	rules := make([]StructureRule, 0, len(all))
	for _, r := range all {
		if cfg.Classifications.Has(r.Classification()) {
			rules = append(rules, r)
		}
	}
	return rules
}

// Analyze reads and checks the file at path.
//
// Outputs:
//
//	[]Issue - Line issues in line order, then structure issues in
//	          traversal order or the single syntax-error issue.
//	error - *FileAccessError if the file could not be read (no issues are
//	        returned), or a context error.
func (a *FileAnalyzer) Analyze(ctx context.Context, path string) ([]Issue, error) {
	ctx, span := startAnalyzeSpan(ctx, path)
	defer span.End()

	name := filepath.Base(path)
	content, err := a.readSource(path, name)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "file not readable")
		recordSkippedFile(ctx)
		return nil, err
	}

	return a.AnalyzeContent(ctx, name, content)
}

// AnalyzeContent checks source text that is already in memory.
//
// Inputs:
//
//	ctx - Context for cancellation
//	name - Display name used in every Issue
//	content - Source text; must be valid UTF-8
func (a *FileAnalyzer) AnalyzeContent(ctx context.Context, name string, content []byte) ([]Issue, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if int64(len(content)) > a.maxFileSize {
		return nil, &FileAccessError{Path: name, Name: name,
			Err: fmt.Errorf("%w: size %d exceeds limit %d", ErrFileTooLarge, len(content), a.maxFileSize)}
	}
	if !utf8.Valid(content) {
		return nil, &FileAccessError{Path: name, Name: name, Err: ErrNotText}
	}
	start := time.Now()
	span := trace.SpanFromContext(ctx)

	lines := splitLines(string(content))
	issues := make([]Issue, 0)

	for i, line := range lines {
		for _, rule := range a.lineRules {
			if issue, ok := rule.Check(name, i+1, line); ok {
				issues = append(issues, issue)
			}
		}
	}

	result, err := a.parser.Parse(ctx, content, name)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		// No tree at all: report it like any other syntax failure.
		result = &ast.ParseResult{Syntax: &ast.SyntaxError{Line: NoLine, Message: err.Error()}}
	}

	if result.OK() {
		for _, rule := range a.structureRules {
			issues = append(issues, rule.Check(name, result.File, lines)...)
		}
	} else {
		issues = append(issues, syntaxIssue(name, result.Syntax))
	}

	duration := time.Since(start)
	setAnalyzeSpanResult(span, len(issues), result.OK())
	recordFileMetrics(ctx, duration, issues)
	a.logger.Debug("analyzed file",
		slog.String("file", name),
		slog.Int("lines", len(lines)),
		slog.Int("issues", len(issues)),
		slog.Bool("syntax_ok", result.OK()),
		slog.Duration("duration", duration))

	return issues, nil
}

// syntaxIssue converts a parse failure into its High severity Issue.
func syntaxIssue(name string, syntax *ast.SyntaxError) Issue {
	line, msg := NoLine, "invalid syntax"
	if syntax != nil {
		line, msg = syntax.Line, syntax.Message
	}
	return Issue{
		File:     name,
		Line:     line,
		Message:  "SyntaxError: " + msg,
		Severity: SeverityHigh,
		Rule:     RuleSyntaxError,
	}
}

// readSource reads a whole file as UTF-8 text.
//
// The handle is closed on every return path.
func (a *FileAnalyzer) readSource(path, name string) ([]byte, error) {
	fail := func(err error) error {
		return &FileAccessError{Path: path, Name: name, Err: err}
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fail(fmt.Errorf("%w: %w", ErrFileNotFound, err))
		}
		return nil, fail(err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fail(err)
	}
	if info.IsDir() {
		return nil, fail(fmt.Errorf("%s is a directory", path))
	}
	if info.Size() > a.maxFileSize {
		return nil, fail(fmt.Errorf("%w: size %d exceeds limit %d", ErrFileTooLarge, info.Size(), a.maxFileSize))
	}

	content, err := io.ReadAll(io.LimitReader(f, a.maxFileSize+1))
	if err != nil {
		return nil, fail(err)
	}
	if int64(len(content)) > a.maxFileSize {
		return nil, fail(fmt.Errorf("%w: exceeds limit %d", ErrFileTooLarge, a.maxFileSize))
	}
	if !utf8.Valid(content) {
		return nil, fail(ErrNotText)
	}
	return content, nil
}

// splitLines splits text into lines without their terminators.
//
// "\r\n" and "\n" both end a line. A trailing terminator does not start an
// extra empty line, and empty text has no lines.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
