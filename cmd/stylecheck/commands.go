// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"context"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/AleutianAI/stylecheck/cmd/stylecheck/config"
	"github.com/AleutianAI/stylecheck/pkg/logging"
	"github.com/AleutianAI/stylecheck/pkg/telemetry"
	"github.com/AleutianAI/stylecheck/services/stylecheck/lint"
)

// Color modes for --color.
const (
	colorAuto   = "auto"
	colorAlways = "always"
	colorNever  = "never"
)

// checkFlags holds the parsed command line of one invocation.
type checkFlags struct {
	maxLineLength  int
	checks         []string
	configPath     string
	format         string
	color          string
	workers        int
	maxFileSize    int64
	exitZero       bool
	verbose        bool
	logDir         string
	traceExporter  string
	metricExporter string
}

// execute runs the command line args and returns the process exit code.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	// A nil slice makes cobra fall back to os.Args.
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	return exitCode(cmd.ExecuteContext(ctx), stderr)
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "stylecheck [path...]",
		Short: "Report style issues in Python source files",
		Long: `Check Python files for long lines, mixed tabs and spaces,
unindented block bodies, and syntax errors.

Directories are expanded to the .py files beneath them in lexical order.
With no paths, the files listed in the configuration file are checked.

Examples:
  stylecheck app.py
  stylecheck --max-line-length 100 src/
  stylecheck --checks indentation --format json src/

Exit Codes:
  0 = No issues found (or --exit-zero)
  1 = Issues found
  2 = Error (invalid flags or configuration)`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, flags, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	defaults := config.Default()
	f := cmd.Flags()
	f.IntVar(&flags.maxLineLength, "max-line-length", defaults.MaxLineLength,
		"Longest line, in characters, that is not reported")
	f.StringSliceVar(&flags.checks, "checks", defaults.Checks,
		"Rule groups to run: long_lines, indentation")
	f.StringVar(&flags.configPath, "config", "",
		"Path to a YAML configuration file")
	f.StringVar(&flags.format, "format", defaults.Format,
		"Report format: text or json")
	f.StringVar(&flags.color, "color", colorAuto,
		"Color the text report: auto, always or never")
	f.IntVar(&flags.workers, "workers", defaults.Workers,
		"Number of files analyzed in parallel")
	f.Int64Var(&flags.maxFileSize, "max-file-size", defaults.MaxFileSize,
		"Skip files larger than this size in bytes")
	f.BoolVar(&flags.exitZero, "exit-zero", false,
		"Exit with status 0 even when issues are found")
	f.BoolVar(&flags.verbose, "verbose", false,
		"Log debug output to stderr")
	f.StringVar(&flags.logDir, "log-dir", "",
		"Also write JSON logs to a daily file in this directory")
	f.StringVar(&flags.traceExporter, "trace-exporter", telemetry.ExporterNone,
		"Span exporter: none or stdout (written to stderr)")
	f.StringVar(&flags.metricExporter, "metric-exporter", telemetry.ExporterNone,
		"Metric exporter: none or stdout (written to stderr)")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string, flags *checkFlags, stdout, stderr io.Writer) error {
	level := logging.LevelWarn
	if flags.verbose {
		level = logging.LevelDebug
	}
	logger, err := logging.New(logging.Config{
		Level:   level,
		Output:  stderr,
		LogDir:  flags.logDir,
		Service: "stylecheck",
	})
	if err != nil {
		return usageError("failed to set up logging: %v", err)
	}
	defer logger.Close()

	telCfg := telemetry.DefaultConfig()
	telCfg.TraceExporter = flags.traceExporter
	telCfg.MetricExporter = flags.metricExporter
	telCfg.Output = stderr
	shutdown, err := telemetry.Init(cmd.Context(), telCfg)
	if err != nil {
		return usageError("failed to set up telemetry: %v", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			logger.Slog().Warn("telemetry shutdown failed", "error", err)
		}
	}()

	cfg, err := resolveConfig(cmd, flags)
	if err != nil {
		return &ExitError{Code: ExitFailure, Wrapped: err}
	}

	useColor, err := colorEnabled(flags.color, stdout)
	if err != nil {
		return err
	}

	paths := args
	if len(paths) == 0 {
		paths = cfg.Files
	}
	if len(paths) == 0 {
		return usageError("no paths given")
	}

	files, err := expandPaths(paths)
	if err != nil {
		return usageError("failed to collect files: %v", err)
	}

	lintCfg, err := cfg.ToLintConfig(files)
	if err != nil {
		return &ExitError{Code: ExitFailure, Wrapped: err}
	}

	// Keep notices off stdout when it carries JSON.
	noticeWriter := stdout
	if cfg.Format == config.FormatJSON {
		noticeWriter = stderr
	}

	linter, err := lint.NewLinter(lintCfg, lint.WithLogger(logger.Slog()), lint.WithNoticeWriter(noticeWriter))
	if err != nil {
		return &ExitError{Code: ExitFailure, Wrapped: err}
	}
	if err := linter.Analyze(cmd.Context()); err != nil {
		return &ExitError{Code: ExitFailure, Wrapped: err}
	}

	var reporter lint.Reporter = lint.TextReporter{Color: useColor}
	if cfg.Format == config.FormatJSON {
		reporter = lint.JSONReporter{}
	}
	if err := reporter.Render(stdout, linter.Summary()); err != nil {
		return &ExitError{Code: ExitFailure, Wrapped: err}
	}

	if linter.HasIssues() && !flags.exitZero {
		return &ExitError{Code: ExitIssues}
	}
	return nil
}

// resolveConfig layers the configuration file and the flags the user set
// over the defaults, then validates the result.
func resolveConfig(cmd *cobra.Command, flags *checkFlags) (config.FileConfig, error) {
	cfg := config.Default()
	if flags.configPath != "" {
		loaded, err := config.Load(flags.configPath)
		if err != nil {
			return config.FileConfig{}, err
		}
		cfg = loaded
	}

	f := cmd.Flags()
	if f.Changed("max-line-length") {
		cfg.MaxLineLength = flags.maxLineLength
	}
	if f.Changed("checks") {
		cfg.Checks = flags.checks
	}
	if f.Changed("format") {
		cfg.Format = flags.format
	}
	if f.Changed("workers") {
		cfg.Workers = flags.workers
	}
	if f.Changed("max-file-size") {
		cfg.MaxFileSize = flags.maxFileSize
	}

	if err := cfg.Validate(); err != nil {
		return config.FileConfig{}, err
	}
	return cfg, nil
}

// colorEnabled resolves --color against the output writer.
func colorEnabled(mode string, w io.Writer) (bool, error) {
	switch mode {
	case colorAlways:
		return true, nil
	case colorNever:
		return false, nil
	case colorAuto:
		f, ok := w.(*os.File)
		if !ok {
			return false, nil
		}
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()), nil
	default:
		return false, usageError("invalid --color %q: want auto, always or never", mode)
	}
}
