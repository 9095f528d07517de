package insight

import "github.com/ethpandaops/devmetrics/internal/metrics"

// Rule inspects the stats for one metric. It only runs once at least Window
// samples exist for Metric.
type Rule struct {
	Metric   string
	Window   int
	Evaluate func(stats metrics.TrendStats) (Insight, bool)
}

const (
	longWindow  = 5
	shortWindow = 3

	// buildTimeLimit is five minutes, in seconds.
	buildTimeLimit = 300.0
)

// DefaultRules returns the canonical rule set.
func DefaultRules() []Rule {
	return []Rule{
		{
			Metric: metrics.TestDuration,
			Window: longWindow,
			Evaluate: func(s metrics.TrendStats) (Insight, bool) {
				if s.TrendDirection <= 0.5 {
					return Insight{}, false
				}

				return Insight{
					Category:        CategoryPerformance,
					Description:     "Test execution time is increasing",
					Confidence:      0.8,
					SuggestedAction: "Review test efficiency and consider optimization",
				}, true
			},
		},
		{
			Metric: metrics.CoveragePercent,
			Window: longWindow,
			Evaluate: func(s metrics.TrendStats) (Insight, bool) {
				if s.TrendDirection >= -2.0 {
					return Insight{}, false
				}

				return Insight{
					Category:        CategoryQuality,
					Description:     "Code coverage is declining",
					Confidence:      0.85,
					SuggestedAction: "Add tests for recent changes",
				}, true
			},
		},
		{
			Metric: metrics.BuildTime,
			Window: longWindow,
			Evaluate: func(s metrics.TrendStats) (Insight, bool) {
				if s.Mean <= buildTimeLimit {
					return Insight{}, false
				}

				return Insight{
					Category:        CategoryPerformance,
					Description:     "Build time is consistently high",
					Confidence:      0.7,
					SuggestedAction: "Consider build caching or parallelization",
				}, true
			},
		},
		{
			Metric: metrics.LintErrors,
			Window: shortWindow,
			Evaluate: countRule(
				Insight{
					Category:        CategoryQuality,
					Description:     "Linting errors detected in recent runs",
					Confidence:      0.95,
					SuggestedAction: "Run the auto-fixer and resolve remaining lint findings",
				},
				&Insight{
					Category:        CategoryQuality,
					Description:     "Linting errors are trending up",
					Confidence:      0.85,
					SuggestedAction: "Tighten pre-commit lint checks",
				},
			),
		},
		{
			Metric: metrics.TestFailures,
			Window: shortWindow,
			Evaluate: countRule(
				Insight{
					Category:        CategoryReliability,
					Description:     "Test failures detected in recent runs",
					Confidence:      0.95,
					SuggestedAction: "Fix failing tests before adding new features",
				},
				&Insight{
					Category:        CategoryReliability,
					Description:     "Test failures are trending up",
					Confidence:      0.85,
					SuggestedAction: "Investigate flaky or newly failing tests",
				},
			),
		},
		{
			Metric: metrics.BuildErrors,
			Window: shortWindow,
			Evaluate: countRule(
				Insight{
					Category:        CategoryReliability,
					Description:     "Build errors detected in recent runs",
					Confidence:      0.95,
					SuggestedAction: "Restore a green build before merging further changes",
				},
				nil,
			),
		},
	}
}

// countRule fires present when any error occurred in the window, otherwise
// rising when the count trends upward. rising may be nil.
func countRule(present Insight, rising *Insight) func(metrics.TrendStats) (Insight, bool) {
	return func(s metrics.TrendStats) (Insight, bool) {
		if s.Mean > 0 {
			return present, true
		}

		if rising != nil && s.TrendDirection > 0.5 {
			return *rising, true
		}

		return Insight{}, false
	}
}
