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
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeverity_String(t *testing.T) {
	assert.Equal(t, "Low", SeverityLow.String())
	assert.Equal(t, "Medium", SeverityMedium.String())
	assert.Equal(t, "High", SeverityHigh.String())
	assert.Equal(t, "Unknown", Severity(42).String())
}

func TestSeverity_Ordering(t *testing.T) {
	assert.Less(t, SeverityLow, SeverityMedium)
	assert.Less(t, SeverityMedium, SeverityHigh)
}

func TestSeverity_Text(t *testing.T) {
	for _, sev := range Severities {
		text, err := sev.MarshalText()
		require.NoError(t, err)

		var got Severity
		require.NoError(t, got.UnmarshalText(text))
		assert.Equal(t, sev, got)
	}

	var s Severity
	require.NoError(t, s.UnmarshalText([]byte("HIGH")))
	assert.Equal(t, SeverityHigh, s)

	assert.Error(t, s.UnmarshalText([]byte("critical")))
	_, err := Severity(9).MarshalText()
	assert.Error(t, err)
}

func TestParseClassification(t *testing.T) {
	tests := []struct {
		in      string
		want    Classification
		wantErr bool
	}{
		{"long_lines", ClassLongLines, false},
		{"indentation", ClassIndentation, false},
		{" Indentation ", ClassIndentation, false},
		{"syntax", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseClassification(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownClassification)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassificationSet(t *testing.T) {
	var empty ClassificationSet
	assert.False(t, empty.Has(ClassLongLines))
	assert.Empty(t, empty.Names())
	assert.Equal(t, "", empty.String())

	all := AllClassifications()
	assert.True(t, all.Has(ClassLongLines))
	assert.True(t, all.Has(ClassIndentation))
	assert.Equal(t, "long_lines,indentation", all.String())

	only := NewClassificationSet(ClassIndentation)
	assert.False(t, only.Has(ClassLongLines))
	assert.Equal(t, []string{"indentation"}, only.Names())

	set, err := ParseClassificationSet([]string{"indentation", "long_lines", "indentation"})
	require.NoError(t, err)
	assert.Equal(t, all, set)

	_, err = ParseClassificationSet([]string{"long_lines", "bogus"})
	assert.ErrorIs(t, err, ErrUnknownClassification)
}

func TestConfig_Defaults(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 80, cfg.MaxLineLength)
	assert.Equal(t, AllClassifications(), cfg.Classifications)
	assert.NoError(t, cfg.Validate())

	filled := Config{MaxLineLength: 10}.withDefaults()
	assert.Equal(t, DefaultMaxFileSize, filled.MaxFileSize)
	assert.Equal(t, DefaultWorkers, filled.Workers)
	assert.NotNil(t, filled.Files)
}

func TestIssue_String(t *testing.T) {
	issue := Issue{File: "a.py", Line: 4, Message: "Line exceeds 80 characters", Severity: SeverityLow}
	assert.Equal(t, "File: a.py, Line: 4, Severity: Low, Issue: Line exceeds 80 characters", issue.String())
}

func TestFileNotice_Message(t *testing.T) {
	base := errors.New("permission denied")

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"not_found", fmt.Errorf("%w: boom", ErrFileNotFound), "Error: The file 'a.py' does not exist."},
		{"too_large", ErrFileTooLarge, "Error: The file 'a.py' is too large to analyze."},
		{"not_text", ErrNotText, "Error: The file 'a.py' is not valid UTF-8 text."},
		{"other", base, "Error: The file 'a.py' could not be read: permission denied"},
		{"wrapped_other", &FileAccessError{Path: "x/a.py", Name: "a.py", Err: base}, "Error: The file 'a.py' could not be read: permission denied"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FileNotice{File: "a.py", Err: tt.err}.Message())
		})
	}
}

func TestFileAccessError(t *testing.T) {
	err := &FileAccessError{Path: "dir/a.py", Name: "a.py", Err: ErrNotText}
	assert.Equal(t, "dir/a.py: file is not valid UTF-8 text", err.Error())
	assert.ErrorIs(t, err, ErrNotText)
}
