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
	"unicode"
	"unicode/utf8"
)

// LineRule checks one raw line in isolation.
//
// Implementations are pure: the same inputs always give the same result and
// no state is shared between calls.
type LineRule interface {
	// Name returns the rule name carried on its Issues.
	Name() string

	// Classification returns the group that enables the rule.
	Classification() Classification

	// Check inspects a line and returns an Issue when the rule fires.
	//
	// line excludes its terminator; lineNumber is 1-indexed.
	Check(file string, lineNumber int, line string) (Issue, bool)
}

// LongLineRule reports lines longer than MaxLength characters.
type LongLineRule struct {
	// MaxLength is the longest allowed line, in runes.
	MaxLength int
}

// Name implements LineRule.
func (r LongLineRule) Name() string { return RuleLongLine }

// Classification implements LineRule.
func (r LongLineRule) Classification() Classification { return ClassLongLines }

// Check implements LineRule.
func (r LongLineRule) Check(file string, lineNumber int, line string) (Issue, bool) {
	if utf8.RuneCountInString(line) <= r.MaxLength {
		return Issue{}, false
	}
	return Issue{
		File:     file,
		Line:     lineNumber,
		Message:  fmt.Sprintf("Line exceeds %d characters", r.MaxLength),
		Severity: SeverityLow,
		Rule:     RuleLongLine,
	}, true
}

// MixedIndentationRule reports lines whose leading whitespace contains both
// a tab and a space.
//
// It does not judge tab width or space counts, only literal mixing.
type MixedIndentationRule struct{}

// Name implements LineRule.
func (MixedIndentationRule) Name() string { return RuleMixedIndentation }

// Classification implements LineRule.
func (MixedIndentationRule) Classification() Classification { return ClassIndentation }

// Check implements LineRule.
func (MixedIndentationRule) Check(file string, lineNumber int, line string) (Issue, bool) {
	prefix := leadingWhitespace(line)
	if !strings.ContainsRune(prefix, '\t') || !strings.ContainsRune(prefix, ' ') {
		return Issue{}, false
	}
	return Issue{
		File:     file,
		Line:     lineNumber,
		Message:  "Inconsistent indentation (mixing tabs and spaces)",
		Severity: SeverityMedium,
		Rule:     RuleMixedIndentation,
	}, true
}

// leadingWhitespace returns everything before the first non-whitespace
// rune, or the whole line when it is blank.
func leadingWhitespace(line string) string {
	return line[:len(line)-len(strings.TrimLeftFunc(line, unicode.IsSpace))]
}

// indentWidth counts the leading whitespace runes of a line. A tab is one.
func indentWidth(line string) int {
	return utf8.RuneCountInString(leadingWhitespace(line))
}
