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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cleanSource = `def main():
    total = 0
    for i in range(3):
        if i:
            total += i
    return total


main()
`

// writeFile creates name under dir with content and returns its path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func newTestAnalyzer(maxLen int) *FileAnalyzer {
	cfg := DefaultConfig()
	cfg.MaxLineLength = maxLen
	return NewFileAnalyzer(cfg)
}

func TestFileAnalyzer_CleanFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "clean.py", cleanSource)

	issues, err := newTestAnalyzer(80).Analyze(context.Background(), path)
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestFileAnalyzer_LongLine(t *testing.T) {
	source := "x = 1\n" + "y = '" + strings.Repeat("a", 5) + "'\n" + "z = 2\n"
	// Line 2 is 11 characters long.
	path := writeFile(t, t.TempDir(), "long.py", source)

	issues, err := newTestAnalyzer(10).Analyze(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, Issue{
		File:     "long.py",
		Line:     2,
		Message:  "Line exceeds 10 characters",
		Severity: SeverityLow,
		Rule:     RuleLongLine,
	}, issues[0])
}

func TestFileAnalyzer_LineTerminatorNotCounted(t *testing.T) {
	source := strings.Repeat("x", 10) + "\r\n" + strings.Repeat("y", 10) + "\n"
	issues, err := newTestAnalyzer(10).AnalyzeContent(context.Background(), "crlf.py", []byte(source))
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestFileAnalyzer_MixedIndentation(t *testing.T) {
	source := "def f():\n\t x = 1\n\t return x\n"
	issues, err := newTestAnalyzer(80).AnalyzeContent(context.Background(), "mixed.py", []byte(source))
	require.NoError(t, err)

	require.Len(t, issues, 2)
	for i, issue := range issues {
		assert.Equal(t, RuleMixedIndentation, issue.Rule)
		assert.Equal(t, SeverityMedium, issue.Severity)
		assert.Equal(t, i+2, issue.Line)
	}
}

func TestFileAnalyzer_MissingBlockIndentation(t *testing.T) {
	t.Run("unindented", func(t *testing.T) {
		issues, err := newTestAnalyzer(80).AnalyzeContent(context.Background(), "m.py", []byte("if x:\nprint(1)\n"))
		require.NoError(t, err)
		require.Len(t, issues, 1)
		assert.Equal(t, 2, issues[0].Line)
		assert.Equal(t, SeverityMedium, issues[0].Severity)
		assert.Equal(t, "Missing indentation for code block", issues[0].Message)
	})

	t.Run("indented", func(t *testing.T) {
		issues, err := newTestAnalyzer(80).AnalyzeContent(context.Background(), "m.py", []byte("if x:\n    print(1)\n"))
		require.NoError(t, err)
		assert.Empty(t, issues)
	})
}

func TestFileAnalyzer_SyntaxError(t *testing.T) {
	issues, err := newTestAnalyzer(80).AnalyzeContent(context.Background(), "bad.py", []byte("if x:\n   print(1\n"))
	require.NoError(t, err)

	require.Len(t, issues, 1)
	issue := issues[0]
	assert.Equal(t, SeverityHigh, issue.Severity)
	assert.Equal(t, RuleSyntaxError, issue.Rule)
	assert.Equal(t, "bad.py", issue.File)
	assert.True(t, strings.HasPrefix(issue.Message, "SyntaxError: "), issue.Message)
	assert.GreaterOrEqual(t, issue.Line, 1)
}

func TestFileAnalyzer_SyntaxErrorKeepsLineIssues(t *testing.T) {
	source := "x = '" + strings.Repeat("a", 20) + "'\n" + "y = = 1\n"
	issues, err := newTestAnalyzer(10).AnalyzeContent(context.Background(), "bad.py", []byte(source))
	require.NoError(t, err)

	require.Len(t, issues, 2)
	assert.Equal(t, RuleLongLine, issues[0].Rule)
	assert.Equal(t, 1, issues[0].Line)
	assert.Equal(t, RuleSyntaxError, issues[1].Rule)
}

func TestFileAnalyzer_SameLineRuleOrder(t *testing.T) {
	source := "def f():\n\t    y = '" + strings.Repeat("a", 20) + "'\n"
	issues, err := newTestAnalyzer(10).AnalyzeContent(context.Background(), "o.py", []byte(source))
	require.NoError(t, err)

	require.Len(t, issues, 2)
	assert.Equal(t, RuleLongLine, issues[0].Rule)
	assert.Equal(t, RuleMixedIndentation, issues[1].Rule)
	assert.Equal(t, 2, issues[0].Line)
	assert.Equal(t, 2, issues[1].Line)
}

func TestFileAnalyzer_LineIssuesPrecedeStructureIssues(t *testing.T) {
	source := "if a:\nb = 1\nc = '" + strings.Repeat("x", 20) + "'\n"
	issues, err := newTestAnalyzer(10).AnalyzeContent(context.Background(), "s.py", []byte(source))
	require.NoError(t, err)

	require.Len(t, issues, 2)
	assert.Equal(t, RuleLongLine, issues[0].Rule)
	assert.Equal(t, 3, issues[0].Line)
	assert.Equal(t, RuleMissingBlockIndentation, issues[1].Rule)
	assert.Equal(t, 2, issues[1].Line)
}

func TestFileAnalyzer_Classifications(t *testing.T) {
	source := "if a:\n\t b = '" + strings.Repeat("x", 20) + "'\nc = 1\nif d:\ne = 2\n"

	tests := []struct {
		name    string
		classes ClassificationSet
		want    []string
	}{
		{"all", AllClassifications(), []string{RuleLongLine, RuleMixedIndentation, RuleMissingBlockIndentation}},
		{"long_lines_only", NewClassificationSet(ClassLongLines), []string{RuleLongLine}},
		{"indentation_only", NewClassificationSet(ClassIndentation), []string{RuleMixedIndentation, RuleMissingBlockIndentation}},
		{"none", 0, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.MaxLineLength = 10
			cfg.Classifications = tt.classes

			issues, err := NewFileAnalyzer(cfg).AnalyzeContent(context.Background(), "c.py", []byte(source))
			require.NoError(t, err)

			rules := make([]string, 0, len(issues))
			for _, issue := range issues {
				rules = append(rules, issue.Rule)
			}
			assert.Equal(t, tt.want, rules)
		})
	}
}

func TestFileAnalyzer_SyntaxErrorReportedWithNoClassifications(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Classifications = 0

	issues, err := NewFileAnalyzer(cfg).AnalyzeContent(context.Background(), "bad.py", []byte("x = = 1\n"))
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, SeverityHigh, issues[0].Severity)
}

func TestFileAnalyzer_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.py")

	issues, err := newTestAnalyzer(80).Analyze(context.Background(), path)
	assert.Nil(t, issues)

	var access *FileAccessError
	require.True(t, errors.As(err, &access))
	assert.Equal(t, "nope.py", access.Name)
	assert.Equal(t, path, access.Path)
	assert.ErrorIs(t, err, ErrFileNotFound)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFileAnalyzer_Directory(t *testing.T) {
	_, err := newTestAnalyzer(80).Analyze(context.Background(), t.TempDir())

	var access *FileAccessError
	assert.True(t, errors.As(err, &access))
}

func TestFileAnalyzer_FileTooLarge(t *testing.T) {
	path := writeFile(t, t.TempDir(), "big.py", strings.Repeat("x = 1\n", 10))

	cfg := DefaultConfig()
	cfg.MaxFileSize = 16
	_, err := NewFileAnalyzer(cfg).Analyze(context.Background(), path)

	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestFileAnalyzer_NotText(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bin.py", string([]byte{0xff, 0xfe, 'x'}))

	_, err := newTestAnalyzer(80).Analyze(context.Background(), path)
	assert.ErrorIs(t, err, ErrNotText)
}

func TestFileAnalyzer_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestAnalyzer(80).AnalyzeContent(ctx, "c.py", []byte("x = 1\n"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"empty", "", nil},
		{"single_no_newline", "a", []string{"a"}},
		{"trailing_newline", "a\nb\n", []string{"a", "b"}},
		{"no_trailing_newline", "a\nb", []string{"a", "b"}},
		{"crlf", "a\r\nb\r\n", []string{"a", "b"}},
		{"blank_lines", "a\n\n\nb\n", []string{"a", "", "", "b"}},
		{"only_newline", "\n", []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitLines(tt.text))
		})
	}
}
