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
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/muesli/termenv"
)

// NoIssuesMessage is the whole text report of a clean run.
const NoIssuesMessage = "No issues found."

// Severity colors for the text report.
var (
	colorLow    = lipgloss.Color("#7F8C8D")
	colorMedium = lipgloss.Color("#F4D03F")
	colorHigh   = lipgloss.Color("#E74C3C")
)

// Summary is everything a reporter can render about one run.
type Summary struct {
	// RunID identifies the run in machine-readable output.
	RunID string

	// Files are the configured paths.
	Files []string

	// Issues are the findings, in report order.
	Issues []Issue

	// Notices are the files that could not be read.
	Notices []FileNotice
}

// NewSummary builds a Summary with a fresh run ID.
func NewSummary(files []string, issues []Issue, notices []FileNotice) Summary {
	return Summary{
		RunID:   uuid.NewString(),
		Files:   files,
		Issues:  issues,
		Notices: notices,
	}
}

// Summary returns the Summary of the last Analyze.
func (l *Linter) Summary() Summary {
	return NewSummary(l.cfg.Files, l.Issues(), l.Notices())
}

// Reporter renders a run summary.
type Reporter interface {
	Render(w io.Writer, s Summary) error
}

// TextReporter writes one line per issue in stored order.
//
// Description:
//
//	An empty run produces the single line NoIssuesMessage. Otherwise each
//	issue is written as
//
//	    File: {name}, Line: {line}, Severity: {severity}, Issue: {message}
//
//	with no sorting, grouping or deduplication. Notices are not part of
//	the report; the Linter writes them while analyzing.
type TextReporter struct {
	// Color styles the severity token with ANSI colors.
	Color bool
}

// Render implements Reporter.
func (r TextReporter) Render(w io.Writer, s Summary) error {
	bw := bufio.NewWriter(w)

	if len(s.Issues) == 0 {
		fmt.Fprintln(bw, NoIssuesMessage)
		return bw.Flush()
	}

	var styles map[Severity]lipgloss.Style
	if r.Color {
		styles = severityStyles(w)
	}

	for _, issue := range s.Issues {
		severity := issue.Severity.String()
		if style, ok := styles[issue.Severity]; ok {
			severity = style.Render(severity)
		}
		fmt.Fprintf(bw, "File: %s, Line: %d, Severity: %s, Issue: %s\n",
			issue.File, issue.Line, severity, issue.Message)
	}
	return bw.Flush()
}

// severityStyles returns styles bound to a renderer that always emits color,
// regardless of whether w is a terminal.
func severityStyles(w io.Writer) map[Severity]lipgloss.Style {
	renderer := lipgloss.NewRenderer(w)
	renderer.SetColorProfile(termenv.ANSI256)
	return map[Severity]lipgloss.Style{
		SeverityLow:    renderer.NewStyle().Foreground(colorLow),
		SeverityMedium: renderer.NewStyle().Foreground(colorMedium),
		SeverityHigh:   renderer.NewStyle().Foreground(colorHigh).Bold(true),
	}
}

// JSONReporter writes the summary as indented JSON.
type JSONReporter struct{}

type jsonNotice struct {
	File    string `json:"file"`
	Path    string `json:"path"`
	Message string `json:"message"`
}

type jsonReport struct {
	RunID   string           `json:"run_id"`
	Files   []string         `json:"files"`
	Issues  []Issue          `json:"issues"`
	Notices []jsonNotice     `json:"notices"`
	Counts  map[Severity]int `json:"counts"`
}

// Render implements Reporter.
func (JSONReporter) Render(w io.Writer, s Summary) error {
	report := jsonReport{
		RunID:   s.RunID,
		Files:   s.Files,
		Issues:  s.Issues,
		Notices: make([]jsonNotice, 0, len(s.Notices)),
		Counts:  make(map[Severity]int, len(Severities)),
	}
	if report.Files == nil {
		report.Files = []string{}
	}
	if report.Issues == nil {
		report.Issues = []Issue{}
	}
	for _, sev := range Severities {
		report.Counts[sev] = 0
	}
	for _, issue := range s.Issues {
		report.Counts[issue.Severity]++
	}
	for _, n := range s.Notices {
		report.Notices = append(report.Notices, jsonNotice{File: n.File, Path: n.Path, Message: n.Message()})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}
