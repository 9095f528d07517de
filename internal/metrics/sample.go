// Package metrics records named development metrics, persists them to disk and
// computes windowed trend statistics over them.
package metrics

import (
	"fmt"
	"time"
)

// TimestampLayout is the layout of Sample.Timestamp: RFC 3339 in UTC with second precision.
const TimestampLayout = time.RFC3339

// Well-known metric names understood by the insight rules.
const (
	TestDuration    = "test_duration"
	CoveragePercent = "coverage_percent"
	BuildTime       = "build_time"
	LintErrors      = "lint_errors"
	TestFailures    = "test_failures"
	BuildErrors     = "build_errors"
)

// IsWellKnown reports whether name is one of the metric names the insight rules read.
func IsWellKnown(name string) bool {
	switch name {
	case TestDuration, CoveragePercent, BuildTime, LintErrors, TestFailures, BuildErrors:
		return true
	}

	return false
}

// Sample is a single timestamped metric observation.
type Sample struct {
	Timestamp string   `json:"timestamp"`
	Name      string   `json:"name"`
	Value     float64  `json:"value"`
	Metadata  Metadata `json:"metadata"`
}

// Time parses the sample timestamp.
func (s Sample) Time() (time.Time, error) {
	t, err := time.Parse(TimestampLayout, s.Timestamp)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", s.Timestamp, err)
	}

	return t, nil
}

// Equal reports whether two samples carry identical fields.
func (s Sample) Equal(other Sample) bool {
	return s.Timestamp == other.Timestamp &&
		s.Name == other.Name &&
		s.Value == other.Value &&
		s.Metadata.Equal(other.Metadata)
}

func (s Sample) clone() Sample {
	s.Metadata = s.Metadata.Clone()
	return s
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Truncate(time.Second).Format(TimestampLayout)
}
