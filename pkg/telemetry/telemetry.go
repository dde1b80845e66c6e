// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package telemetry installs OpenTelemetry providers for stylecheck commands.
//
// The lint and ast packages record spans and metrics through the global otel
// API. Until Init installs a provider those calls are no-ops. With the stdout
// exporters, spans and metrics are written as JSON when the run shuts down.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
)

// Exporter names.
const (
	ExporterNone   = "none"
	ExporterStdout = "stdout"
)

var (
	// ErrNilContext indicates Init was called without a context.
	ErrNilContext = errors.New("telemetry: nil context")

	// ErrUnknownExporter indicates an exporter name Init does not support.
	ErrUnknownExporter = errors.New("telemetry: unknown exporter")
)

// Config selects the exporters installed by Init.
type Config struct {
	// ServiceName is the service.name resource attribute.
	ServiceName string

	// ServiceVersion is the service.version resource attribute.
	ServiceVersion string

	// TraceExporter is "none" or "stdout".
	TraceExporter string

	// MetricExporter is "none" or "stdout".
	MetricExporter string

	// Output receives stdout exporter data. Nil means os.Stderr.
	Output io.Writer
}

// DefaultConfig returns a Config with every exporter disabled.
func DefaultConfig() Config {
	return Config{
		ServiceName:    "stylecheck",
		ServiceVersion: "1.0.0",
		TraceExporter:  ExporterNone,
		MetricExporter: ExporterNone,
	}
}

// Init installs the configured global providers.
//
// Outputs:
//
//	shutdown - Flushes and stops every installed provider. Always non-nil on
//	           success, a no-op when nothing was installed.
//	error - ErrUnknownExporter for an unsupported exporter name
func Init(ctx context.Context, cfg Config) (shutdown func(context.Context) error, err error) {
	if ctx == nil {
		return nil, ErrNilContext
	}
	if err := validateExporter(cfg.TraceExporter); err != nil {
		return nil, err
	}
	if err := validateExporter(cfg.MetricExporter); err != nil {
		return nil, err
	}

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	var shutdownFuncs []func(context.Context) error
	shutdown = func(ctx context.Context) error {
		var errs []error
		for _, fn := range shutdownFuncs {
			if err := fn(ctx); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	}

	res := resource.NewWithAttributes(
		"",
		attribute.String("service.name", cfg.ServiceName),
		attribute.String("service.version", cfg.ServiceVersion),
	)

	if cfg.TraceExporter == ExporterStdout {
		exporter, err := stdouttrace.New(stdouttrace.WithWriter(out))
		if err != nil {
			return nil, fmt.Errorf("create trace exporter: %w", err)
		}
		tp := trace.NewTracerProvider(
			trace.WithSyncer(exporter),
			trace.WithResource(res),
			trace.WithSampler(trace.AlwaysSample()),
		)
		otel.SetTracerProvider(tp)
		shutdownFuncs = append(shutdownFuncs, tp.Shutdown)
	}

	if cfg.MetricExporter == ExporterStdout {
		exporter, err := stdoutmetric.New(stdoutmetric.WithWriter(out))
		if err != nil {
			// Undo the tracer provider installed above.
			_ = shutdown(ctx)
			return nil, fmt.Errorf("create metric exporter: %w", err)
		}
		mp := metric.NewMeterProvider(
			metric.WithResource(res),
			metric.WithReader(metric.NewPeriodicReader(exporter)),
		)
		otel.SetMeterProvider(mp)
		shutdownFuncs = append(shutdownFuncs, mp.Shutdown)
	}

	return shutdown, nil
}

func validateExporter(name string) error {
	switch name {
	case ExporterNone, ExporterStdout:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownExporter, name)
	}
}
