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
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Package-level tracer and meter for AST parsing.
var (
	tracer = otel.Tracer("stylecheck.ast")
	meter  = otel.Meter("stylecheck.ast")
)

// Metrics for AST parsing operations.
var (
	parseLatency metric.Float64Histogram
	parseTotal   metric.Int64Counter
	syntaxErrors metric.Int64Counter

	metricsOnce sync.Once
	metricsErr  error
)

// initMetrics initializes the metrics. Safe to call multiple times.
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		parseLatency, err = meter.Float64Histogram(
			"ast_parse_duration_seconds",
			metric.WithDescription("Duration of AST parsing operations"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		parseTotal, err = meter.Int64Counter(
			"ast_parse_total",
			metric.WithDescription("Total number of parse operations"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		syntaxErrors, err = meter.Int64Counter(
			"ast_syntax_errors_total",
			metric.WithDescription("Total number of files with syntax errors"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})
	return metricsErr
}

// startParseSpan creates a span for a parse operation.
func startParseSpan(ctx context.Context, filePath string, size int) (context.Context, trace.Span) {
	return tracer.Start(ctx, "PythonParser.Parse",
		trace.WithAttributes(
			attribute.String("ast.file_path", filePath),
			attribute.Int("ast.size_bytes", size),
		),
	)
}

// recordParseMetrics records metrics for a parse operation.
func recordParseMetrics(ctx context.Context, duration time.Duration, syntaxOK bool) {
	if err := initMetrics(); err != nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String("language", "python"),
		attribute.Bool("syntax_ok", syntaxOK),
	)

	parseLatency.Record(ctx, duration.Seconds(), attrs)
	parseTotal.Add(ctx, 1, attrs)

	if !syntaxOK {
		syntaxErrors.Add(ctx, 1, metric.WithAttributes(attribute.String("language", "python")))
	}
}
