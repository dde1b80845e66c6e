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
	"fmt"
	"strings"
)

// Defaults for Config.
const (
	DefaultMaxLineLength       = 80
	DefaultMaxFileSize   int64 = 1024 * 1024
	DefaultWorkers             = 1
)

// NoLine is the Issue line for a syntax error the parser could not localize.
const NoLine = 0

// =============================================================================
// SEVERITY
// =============================================================================

// Severity represents the severity level of a lint issue.
type Severity int

const (
	// SeverityLow is used for cosmetic issues such as long lines.
	SeverityLow Severity = iota

	// SeverityMedium is used for indentation problems.
	SeverityMedium

	// SeverityHigh is used for files that do not parse.
	SeverityHigh
)

// Severities lists every severity, lowest first.
var Severities = []Severity{SeverityLow, SeverityMedium, SeverityHigh}

// String returns the report form of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "Low"
	case SeverityMedium:
		return "Medium"
	case SeverityHigh:
		return "High"
	default:
		return "Unknown"
	}
}

// MarshalText encodes the severity as its report form.
func (s Severity) MarshalText() ([]byte, error) {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh:
		return []byte(s.String()), nil
	default:
		return nil, fmt.Errorf("unknown severity %d", int(s))
	}
}

// UnmarshalText decodes a severity, case-insensitively.
func (s *Severity) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "low":
		*s = SeverityLow
	case "medium":
		*s = SeverityMedium
	case "high":
		*s = SeverityHigh
	default:
		return fmt.Errorf("unknown severity %q", string(text))
	}
	return nil
}

// =============================================================================
// CLASSIFICATION
// =============================================================================

// Classification selects a group of rules.
type Classification int

const (
	// ClassLongLines enables the long-line rule.
	ClassLongLines Classification = iota

	// ClassIndentation enables the mixed-indentation and
	// missing-block-indentation rules.
	ClassIndentation
)

// Classifications lists every classification in a stable order.
var Classifications = []Classification{ClassLongLines, ClassIndentation}

// String returns the configuration name of the classification.
func (c Classification) String() string {
	switch c {
	case ClassLongLines:
		return "long_lines"
	case ClassIndentation:
		return "indentation"
	default:
		return fmt.Sprintf("Classification(%d)", int(c))
	}
}

// ParseClassification converts a configuration name to a Classification.
//
// Outputs:
//
//	Classification - The parsed classification
//	error - ErrUnknownClassification if the name is not recognized
func ParseClassification(name string) (Classification, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "long_lines":
		return ClassLongLines, nil
	case "indentation":
		return ClassIndentation, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownClassification, name)
	}
}

// ClassificationSet is a set of Classifications.
type ClassificationSet uint8

// NewClassificationSet builds a set from the given classifications.
func NewClassificationSet(classes ...Classification) ClassificationSet {
	var set ClassificationSet
	for _, c := range classes {
		set = set.With(c)
	}
	return set
}

// AllClassifications returns the set with every classification enabled.
func AllClassifications() ClassificationSet {
	return NewClassificationSet(Classifications...)
}

// ParseClassificationSet parses configuration names into a set.
// An empty list yields the empty set.
func ParseClassificationSet(names []string) (ClassificationSet, error) {
	var set ClassificationSet
	for _, name := range names {
		c, err := ParseClassification(name)
		if err != nil {
			return 0, err
		}
		set = set.With(c)
	}
	return set, nil
}

// With returns the set with c added.
func (s ClassificationSet) With(c Classification) ClassificationSet {
	return s | 1<<uint(c)
}

// Has reports whether c is in the set.
func (s ClassificationSet) Has(c Classification) bool {
	return s&(1<<uint(c)) != 0
}

// Names returns the configuration names of the members, in stable order.
func (s ClassificationSet) Names() []string {
	names := make([]string, 0, len(Classifications))
	for _, c := range Classifications {
		if s.Has(c) {
			names = append(names, c.String())
		}
	}
	return names
}

// String returns the members joined by commas.
func (s ClassificationSet) String() string {
	return strings.Join(s.Names(), ",")
}

// =============================================================================
// CONFIG
// =============================================================================

// Config configures a Linter run.
//
// Thread Safety: Treat as immutable after passing to NewLinter.
type Config struct {
	// Files are the paths to analyze, in report order.
	Files []string

	// MaxLineLength is the longest line, in characters, that does not
	// trigger the long-line rule. Must be positive.
	MaxLineLength int

	// Classifications selects the rule groups to run.
	Classifications ClassificationSet

	// MaxFileSize is the largest file, in bytes, that is analyzed.
	// Larger files are reported as unreadable. Zero means DefaultMaxFileSize.
	MaxFileSize int64

	// Workers is the number of files analyzed concurrently. Values below
	// one mean one.
	Workers int
}

// DefaultConfig returns a Config with every rule enabled and no files.
func DefaultConfig() Config {
	return Config{
		MaxLineLength:   DefaultMaxLineLength,
		Classifications: AllClassifications(),
		MaxFileSize:     DefaultMaxFileSize,
		Workers:         DefaultWorkers,
	}
}

// Validate checks the config for values the engine cannot run with.
func (c *Config) Validate() error {
	if c.MaxLineLength <= 0 {
		return fmt.Errorf("%w: max line length must be positive, got %d", ErrInvalidConfig, c.MaxLineLength)
	}
	if c.MaxFileSize < 0 {
		return fmt.Errorf("%w: max file size must not be negative, got %d", ErrInvalidConfig, c.MaxFileSize)
	}
	for i, f := range c.Files {
		if strings.TrimSpace(f) == "" {
			return fmt.Errorf("%w: file %d has an empty path", ErrInvalidConfig, i)
		}
	}
	return nil
}

// withDefaults fills zero values with their defaults.
func (c Config) withDefaults() Config {
	if c.MaxFileSize == 0 {
		c.MaxFileSize = DefaultMaxFileSize
	}
	if c.Workers < 1 {
		c.Workers = DefaultWorkers
	}
	files := make([]string, len(c.Files))
	copy(files, c.Files)
	c.Files = files
	return c
}

// =============================================================================
// ISSUE
// =============================================================================

// Rule names carried on Issues.
const (
	RuleLongLine                = "long-line"
	RuleMixedIndentation        = "mixed-indentation"
	RuleMissingBlockIndentation = "missing-block-indentation"
	RuleSyntaxError             = "syntax-error"
)

// Issue is a single finding.
//
// Thread Safety: Immutable after creation.
type Issue struct {
	// File is the base name of the file containing the issue.
	File string `json:"file"`

	// Line is the 1-indexed line of the issue, or NoLine.
	Line int `json:"line"`

	// Message is the human-readable description of the issue.
	Message string `json:"message"`

	// Severity is the severity level of the issue.
	Severity Severity `json:"severity"`

	// Rule is the name of the rule that produced the issue.
	Rule string `json:"rule"`
}

// String returns the report line for the issue.
func (i Issue) String() string {
	return fmt.Sprintf("File: %s, Line: %d, Severity: %s, Issue: %s", i.File, i.Line, i.Severity, i.Message)
}

// FileNotice records a file that could not be analyzed.
//
// Notices are reported beside the issue list, never inside it.
type FileNotice struct {
	// File is the base name of the file.
	File string `json:"file"`

	// Path is the configured path.
	Path string `json:"path"`

	// Err is the reason the file was skipped.
	Err error `json:"-"`
}

// Message returns the one-line notice written for the file.
func (n FileNotice) Message() string {
	return noticeMessage(n.File, n.Err)
}
