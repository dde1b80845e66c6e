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

// IssueSink is an append-only, ordered collection of Issues.
//
// No deduplication is done; insertion order is preserved.
//
// Thread Safety: Not safe for concurrent use. The Linter appends from a
// single goroutine after per-file results are collected.
type IssueSink struct {
	issues []Issue
}

// NewIssueSink returns an empty sink.
func NewIssueSink() *IssueSink {
	return &IssueSink{issues: make([]Issue, 0)}
}

// Append adds issues to the end of the sink.
func (s *IssueSink) Append(issues ...Issue) {
	s.issues = append(s.issues, issues...)
}

// Issues returns a copy of the collected issues in insertion order.
func (s *IssueSink) Issues() []Issue {
	out := make([]Issue, len(s.issues))
	copy(out, s.issues)
	return out
}

// Len returns the number of collected issues.
func (s *IssueSink) Len() int {
	return len(s.issues)
}

// CountBySeverity returns how many issues have each severity.
func (s *IssueSink) CountBySeverity() map[Severity]int {
	counts := make(map[Severity]int, len(Severities))
	for _, sev := range Severities {
		counts[sev] = 0
	}
	for _, issue := range s.issues {
		counts[issue.Severity]++
	}
	return counts
}

// reset empties the sink for a new run.
func (s *IssueSink) reset() {
	s.issues = make([]Issue, 0)
}
