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
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Package-level tracer and meter for lint operations.
var (
	tracer = otel.Tracer("stylecheck.lint")
	meter  = otel.Meter("stylecheck.lint")
)

// Metrics for lint operations.
var (
	fileLatency   metric.Float64Histogram
	filesAnalyzed metric.Int64Counter
	filesSkipped  metric.Int64Counter
	issuesFound   metric.Int64Counter

	metricsOnce sync.Once
	metricsErr  error
)

// initMetrics initializes the metrics. Safe to call multiple times.
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		fileLatency, err = meter.Float64Histogram(
			"lint_file_duration_seconds",
			metric.WithDescription("Duration of single-file analysis"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		filesAnalyzed, err = meter.Int64Counter(
			"lint_files_analyzed_total",
			metric.WithDescription("Total number of files analyzed"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		filesSkipped, err = meter.Int64Counter(
			"lint_files_skipped_total",
			metric.WithDescription("Total number of files that could not be read"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		issuesFound, err = meter.Int64Counter(
			"lint_issues_found_total",
			metric.WithDescription("Total number of issues found, by rule and severity"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})
	return metricsErr
}

// startAnalyzeSpan creates a span for a single-file analysis.
func startAnalyzeSpan(ctx context.Context, path string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "FileAnalyzer.Analyze",
		trace.WithAttributes(
			attribute.String("lint.file_path", path),
		),
	)
}

// setAnalyzeSpanResult sets the result attributes on an analysis span.
func setAnalyzeSpanResult(span trace.Span, issueCount int, syntaxOK bool) {
	span.SetAttributes(
		attribute.Int("lint.issue_count", issueCount),
		attribute.Bool("lint.syntax_ok", syntaxOK),
	)
}

// recordFileMetrics records metrics for one analyzed file.
func recordFileMetrics(ctx context.Context, duration time.Duration, issues []Issue) {
	if err := initMetrics(); err != nil {
		return
	}

	fileLatency.Record(ctx, duration.Seconds())
	filesAnalyzed.Add(ctx, 1)

	for _, issue := range issues {
		issuesFound.Add(ctx, 1, metric.WithAttributes(
			attribute.String("rule", issue.Rule),
			attribute.String("severity", issue.Severity.String()),
		))
	}
}

// recordSkippedFile records a file that could not be read.
func recordSkippedFile(ctx context.Context) {
	if err := initMetrics(); err != nil {
		return
	}
	filesSkipped.Add(ctx, 1)
}
