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
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var reportIssues = []Issue{
	{File: "a.py", Line: 3, Message: "Line exceeds 80 characters", Severity: SeverityLow, Rule: RuleLongLine},
	{File: "a.py", Line: 1, Message: "Inconsistent indentation (mixing tabs and spaces)", Severity: SeverityMedium, Rule: RuleMixedIndentation},
	{File: "b.py", Line: 2, Message: "SyntaxError: invalid syntax", Severity: SeverityHigh, Rule: RuleSyntaxError},
}

func TestTextReporter_Render(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, TextReporter{}.Render(&out, NewSummary(nil, reportIssues, nil)))

	want := "File: a.py, Line: 3, Severity: Low, Issue: Line exceeds 80 characters\n" +
		"File: a.py, Line: 1, Severity: Medium, Issue: Inconsistent indentation (mixing tabs and spaces)\n" +
		"File: b.py, Line: 2, Severity: High, Issue: SyntaxError: invalid syntax\n"
	assert.Equal(t, want, out.String())
}

func TestTextReporter_Empty(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, TextReporter{}.Render(&out, NewSummary(nil, nil, nil)))
	assert.Equal(t, "No issues found.\n", out.String())
}

func TestTextReporter_NoticesNotRendered(t *testing.T) {
	notices := []FileNotice{{File: "x.py", Path: "x.py", Err: ErrFileNotFound}}

	var out bytes.Buffer
	require.NoError(t, TextReporter{}.Render(&out, NewSummary([]string{"x.py"}, nil, notices)))
	assert.Equal(t, "No issues found.\n", out.String())
}

func TestTextReporter_Color(t *testing.T) {
	var plain, colored bytes.Buffer
	s := NewSummary(nil, reportIssues, nil)
	require.NoError(t, TextReporter{}.Render(&plain, s))
	require.NoError(t, TextReporter{Color: true}.Render(&colored, s))

	assert.NotEqual(t, plain.String(), colored.String())
	assert.Contains(t, colored.String(), "\x1b[")

	lines := strings.Split(strings.TrimSuffix(colored.String(), "\n"), "\n")
	require.Len(t, lines, len(reportIssues))
	for i, line := range lines {
		assert.True(t, strings.HasPrefix(line, "File: "+reportIssues[i].File+", Line: "), line)
		assert.True(t, strings.HasSuffix(line, "Issue: "+reportIssues[i].Message), line)
	}
}

func TestJSONReporter_Render(t *testing.T) {
	notices := []FileNotice{{File: "nope.py", Path: "dir/nope.py", Err: ErrFileNotFound}}
	s := NewSummary([]string{"a.py", "b.py", "dir/nope.py"}, reportIssues, notices)

	var out bytes.Buffer
	require.NoError(t, JSONReporter{}.Render(&out, s))

	var got struct {
		RunID   string   `json:"run_id"`
		Files   []string `json:"files"`
		Issues  []Issue  `json:"issues"`
		Notices []struct {
			File    string `json:"file"`
			Path    string `json:"path"`
			Message string `json:"message"`
		} `json:"notices"`
		Counts map[string]int `json:"counts"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))

	_, err := uuid.Parse(got.RunID)
	assert.NoError(t, err)
	assert.Equal(t, s.RunID, got.RunID)
	assert.Equal(t, s.Files, got.Files)
	assert.Equal(t, reportIssues, got.Issues)

	require.Len(t, got.Notices, 1)
	assert.Equal(t, "nope.py", got.Notices[0].File)
	assert.Equal(t, "dir/nope.py", got.Notices[0].Path)
	assert.Equal(t, "Error: The file 'nope.py' does not exist.", got.Notices[0].Message)

	assert.Equal(t, map[string]int{"Low": 1, "Medium": 1, "High": 1}, got.Counts)
}

func TestJSONReporter_EmptyCollections(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, JSONReporter{}.Render(&out, NewSummary(nil, nil, nil)))

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(out.Bytes(), &raw))
	assert.JSONEq(t, `[]`, string(raw["files"]))
	assert.JSONEq(t, `[]`, string(raw["issues"]))
	assert.JSONEq(t, `[]`, string(raw["notices"]))
	assert.JSONEq(t, `{"Low":0,"Medium":0,"High":0}`, string(raw["counts"]))
}

func TestNewSummary_UniqueRunIDs(t *testing.T) {
	assert.NotEqual(t, NewSummary(nil, nil, nil).RunID, NewSummary(nil, nil, nil).RunID)
}
