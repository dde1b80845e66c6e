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
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"
)

// Option configures a Linter.
type Option func(*Linter)

// WithLogger sets the logger used by the Linter and its FileAnalyzer.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Linter) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithNoticeWriter sets where unreadable-file notices are written.
// Defaults to os.Stdout. A nil writer discards notices.
func WithNoticeWriter(w io.Writer) Option {
	return func(l *Linter) {
		if w == nil {
			w = io.Discard
		}
		l.notices = w
	}
}

// Linter is the top-level orchestrator of a lint run.
//
// Description:
//
//	Linter holds a fixed Config, owns the IssueSink for the run, and drives
//	a FileAnalyzer over each configured file. Files are reported in
//	configured order whether they are analyzed one at a time or
//	concurrently.
//
// Thread Safety: Analyze must not run concurrently with itself or with the
// accessors. Once Analyze returns, Issues, Notices and Report are safe to
// call from any goroutine.
type Linter struct {
	cfg      Config
	analyzer *FileAnalyzer
	sink     *IssueSink
	skipped  []FileNotice
	notices  io.Writer
	logger   *slog.Logger
}

// NewLinter validates cfg and builds a Linter.
//
// Outputs:
//
//	*Linter - The linter, never nil on success
//	error - ErrInvalidConfig if cfg fails validation
func NewLinter(cfg Config, opts ...Option) (*Linter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	l := &Linter{
		cfg:     cfg.withDefaults(),
		sink:    NewIssueSink(),
		skipped: make([]FileNotice, 0),
		notices: os.Stdout,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.analyzer = NewFileAnalyzer(l.cfg, WithAnalyzerLogger(l.logger))
	return l, nil
}

// Config returns the configuration the Linter runs with.
func (l *Linter) Config() Config {
	return l.cfg
}

// fileResult is the outcome of analyzing one configured file.
type fileResult struct {
	issues []Issue
	notice *FileNotice
}

// Analyze runs every configured file through the FileAnalyzer.
//
// Description:
//
//	Analyze replaces the previous run's issues, so calling it twice on
//	unchanged files yields the same sequence. Unreadable files are
//	reported as one notice line each on the notice writer and contribute
//	no issues.
//
// Outputs:
//
//	error - Non-nil only if ctx is canceled. File and syntax problems never
//	        fail the run.
func (l *Linter) Analyze(ctx context.Context) error {
	start := time.Now()
	l.sink.reset()
	l.skipped = make([]FileNotice, 0)

	results, err := l.analyzeAll(ctx)
	if err != nil {
		return err
	}

	for _, res := range results {
		if res.notice != nil {
			l.skipped = append(l.skipped, *res.notice)
			if _, err := fmt.Fprintln(l.notices, res.notice.Message()); err != nil {
				l.logger.Warn("failed to write notice", slog.String("error", err.Error()))
			}
			continue
		}
		l.sink.Append(res.issues...)
	}

	l.logger.Debug("analysis complete",
		slog.Int("files", len(l.cfg.Files)),
		slog.Int("skipped", len(l.skipped)),
		slog.Int("issues", l.sink.Len()),
		slog.Duration("duration", time.Since(start)))
	return nil
}

// analyzeAll returns one result per configured file, in configured order.
func (l *Linter) analyzeAll(ctx context.Context) ([]fileResult, error) {
	results := make([]fileResult, len(l.cfg.Files))

	if l.cfg.Workers <= 1 || len(l.cfg.Files) <= 1 {
		for i, path := range l.cfg.Files {
			res, err := l.analyzeOne(ctx, path)
			if err != nil {
				return nil, err
			}
			results[i] = res
		}
		return results, nil
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(l.cfg.Workers)
	for i, path := range l.cfg.Files {
		g.Go(func() error {
			res, err := l.analyzeOne(gCtx, path)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// analyzeOne analyzes a single file, turning access failures into notices.
func (l *Linter) analyzeOne(ctx context.Context, path string) (fileResult, error) {
	if err := ctx.Err(); err != nil {
		return fileResult{}, err
	}

	issues, err := l.analyzer.Analyze(ctx, path)
	if err == nil {
		return fileResult{issues: issues}, nil
	}

	var access *FileAccessError
	if !errors.As(err, &access) {
		return fileResult{}, err
	}

	l.logger.Warn("skipping unreadable file",
		slog.String("path", path),
		slog.String("error", access.Err.Error()))
	return fileResult{notice: &FileNotice{
		File: filepath.Base(path),
		Path: path,
		Err:  access.Err,
	}}, nil
}

// Issues returns the issues of the last Analyze, in report order.
func (l *Linter) Issues() []Issue {
	return l.sink.Issues()
}

// Notices returns the files the last Analyze could not read.
func (l *Linter) Notices() []FileNotice {
	out := make([]FileNotice, len(l.skipped))
	copy(out, l.skipped)
	return out
}

// HasIssues reports whether the last Analyze found any issue.
func (l *Linter) HasIssues() bool {
	return l.sink.Len() > 0
}

// CountBySeverity returns the issue count per severity of the last Analyze.
func (l *Linter) CountBySeverity() map[Severity]int {
	return l.sink.CountBySeverity()
}

// Report writes the plain text report of the last Analyze to w.
func (l *Linter) Report(w io.Writer) error {
	return TextReporter{}.Render(w, l.Summary())
}
