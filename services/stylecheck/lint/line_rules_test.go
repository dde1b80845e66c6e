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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLongLineRule_Check(t *testing.T) {
	rule := LongLineRule{MaxLength: 10}

	tests := []struct {
		name string
		line string
		want bool
	}{
		{"empty", "", false},
		{"under_limit", "short", false},
		{"at_limit", strings.Repeat("a", 10), false},
		{"one_over", strings.Repeat("a", 11), true},
		{"multibyte_at_limit", strings.Repeat("é", 10), false},
		{"multibyte_over", strings.Repeat("é", 11), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issue, ok := rule.Check("a.py", 7, tt.line)
			assert.Equal(t, tt.want, ok)
			if !ok {
				return
			}
			assert.Equal(t, Issue{
				File:     "a.py",
				Line:     7,
				Message:  "Line exceeds 10 characters",
				Severity: SeverityLow,
				Rule:     RuleLongLine,
			}, issue)
		})
	}
}

func TestMixedIndentationRule_Check(t *testing.T) {
	rule := MixedIndentationRule{}

	tests := []struct {
		name string
		line string
		want bool
	}{
		{"tab_then_space", "\t print(1)", true},
		{"space_then_tab", " \tprint(1)", true},
		{"spaces_only", "    print(1)", false},
		{"tabs_only", "\t\tprint(1)", false},
		{"no_indent", "print(1)", false},
		{"blank_mixed", "\t  ", true},
		{"blank_spaces", "   ", false},
		{"mixed_after_code", "x = 1\t \t", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issue, ok := rule.Check("a.py", 3, tt.line)
			assert.Equal(t, tt.want, ok)
			if ok {
				assert.Equal(t, SeverityMedium, issue.Severity)
				assert.Equal(t, 3, issue.Line)
				assert.Equal(t, "Inconsistent indentation (mixing tabs and spaces)", issue.Message)
				assert.Equal(t, RuleMixedIndentation, issue.Rule)
			}
		})
	}
}

func TestLineRules_Classification(t *testing.T) {
	assert.Equal(t, ClassLongLines, LongLineRule{}.Classification())
	assert.Equal(t, ClassIndentation, MixedIndentationRule{}.Classification())
	assert.Equal(t, RuleLongLine, LongLineRule{}.Name())
	assert.Equal(t, RuleMixedIndentation, MixedIndentationRule{}.Name())
}

func TestIndentWidth(t *testing.T) {
	tests := []struct {
		line string
		want int
	}{
		{"", 0},
		{"x", 0},
		{"    x", 4},
		{"\tx", 1},
		{"\t  x", 3},
		{"   ", 3},
	}

	for _, tt := range tests {
		if got := indentWidth(tt.line); got != tt.want {
			t.Errorf("indentWidth(%q) = %d, want %d", tt.line, got, tt.want)
		}
	}
}
