// Package insight turns windowed metric statistics into categorised,
// confidence-scored observations.
package insight

import (
	"context"
	"fmt"

	"github.com/ethpandaops/devmetrics/internal/metrics"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Category groups insights by the concern they address.
type Category string

const (
	// CategoryPerformance covers slow tests and builds.
	CategoryPerformance Category = "performance"
	// CategoryQuality covers coverage and lint findings.
	CategoryQuality Category = "quality"
	// CategoryReliability covers test and build failures.
	CategoryReliability Category = "reliability"
)

// Insight is an observation derived from the current metric history.
type Insight struct {
	Category        Category
	Description     string
	Confidence      float64 // 0..1
	SuggestedAction string
}

func (i Insight) String() string {
	return fmt.Sprintf("[%s %.2f] %s: %s", i.Category, i.Confidence, i.Description, i.SuggestedAction)
}

// Source is the read side of a metrics store.
type Source interface {
	Values(name string) []float64
	AnalyzeTrends(name string, window int) metrics.TrendStats
}

// Generator evaluates a fixed rule set against a Source.
type Generator struct {
	log   logrus.FieldLogger
	rules []Rule
}

// NewGenerator creates a generator with the default rule set.
func NewGenerator(log logrus.FieldLogger) *Generator {
	return &Generator{
		log:   log.WithField("component", "insight_generator"),
		rules: DefaultRules(),
	}
}

// Rules returns the rules evaluated by Generate, in evaluation order.
func (g *Generator) Rules() []Rule {
	rules := make([]Rule, len(g.rules))
	copy(rules, g.rules)

	return rules
}

// Generate evaluates every rule against src and returns the triggered insights.
// Nothing is cached; each call reflects the current contents of src.
func (g *Generator) Generate(src Source) []Insight {
	insights := make([]Insight, 0, len(g.rules))

	for _, rule := range g.rules {
		if len(src.Values(rule.Metric)) < rule.Window {
			continue
		}

		stats := src.AnalyzeTrends(rule.Metric, rule.Window)

		insight, ok := rule.Evaluate(stats)
		if !ok {
			continue
		}

		g.log.WithFields(logrus.Fields{
			"metric":     rule.Metric,
			"category":   insight.Category,
			"confidence": insight.Confidence,
			"mean":       stats.Mean,
			"trend":      stats.TrendDirection,
		}).Debug("insight triggered")

		insights = append(insights, insight)
	}

	return insights
}

// AnalyzeAll computes trend statistics for every name concurrently. src must
// not be written to while AnalyzeAll runs.
func AnalyzeAll(ctx context.Context, src Source, names []string, window int) (map[string]metrics.TrendStats, error) {
	results := make([]metrics.TrendStats, len(names))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)

	for i, name := range names {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return fmt.Errorf("analyzing %s: %w", name, err)
			}

			results[i] = src.AnalyzeTrends(name, window)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[string]metrics.TrendStats, len(names))
	for i, name := range names {
		out[name] = results[i]
	}

	return out, nil
}
