// Package feedback records iteration metrics and turns the resulting insights
// and task context into prioritised optimization suggestions.
package feedback

import (
	"math"
	"sort"
	"strings"

	"github.com/ethpandaops/devmetrics/internal/insight"
	"github.com/ethpandaops/devmetrics/internal/metrics"
	"github.com/sirupsen/logrus"
)

// DefaultMinPriority is the floor applied to every suggestion, whatever its origin.
const DefaultMinPriority = 0.7

const (
	// minInsightConfidence is the confidence an insight needs to become a suggestion.
	minInsightConfidence = 0.7
	// recentLintWindow is how many of the latest lint_errors samples are summed.
	recentLintWindow = 3
)

// Suggestion categories that do not come from insights.
const (
	CategoryBestPractice  = "best_practice"
	CategoryErrorHandling = "error_handling"
)

// Suggestion is an actionable recommendation.
type Suggestion struct {
	Category    string
	Description string
	Action      string
	Priority    float64
}

// TaskContext describes the work the caller is about to do.
type TaskContext struct {
	TaskType   string
	Complexity string
}

// ParseTaskContext builds a TaskContext from loosely keyed values such as CLI
// flags or a decoded JSON object. Unknown keys are ignored.
func ParseTaskContext(values map[string]string) TaskContext {
	return TaskContext{
		TaskType:   values["task_type"],
		Complexity: values["complexity"],
	}
}

// Option configures a Loop.
type Option func(*Loop)

// WithMinPriority overrides the suggestion priority floor.
func WithMinPriority(p float64) Option {
	return func(l *Loop) {
		l.minPriority = p
	}
}

// Loop ties a metrics store to an insight generator.
type Loop struct {
	log         logrus.FieldLogger
	store       metrics.Store
	generator   *insight.Generator
	minPriority float64
}

// NewLoop creates a feedback loop over store.
func NewLoop(log logrus.FieldLogger, store metrics.Store, generator *insight.Generator, opts ...Option) *Loop {
	l := &Loop{
		log:         log.WithField("component", "feedback_loop"),
		store:       store,
		generator:   generator,
		minPriority: DefaultMinPriority,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Store returns the metrics store the loop records into.
func (l *Loop) Store() metrics.Store {
	return l.store
}

// EvaluateIteration records every value and returns the full current insight
// set, not only insights triggered by this batch.
func (l *Loop) EvaluateIteration(values map[string]float64) []insight.Insight {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}

	// Sorted so the persisted file is stable across runs.
	sort.Strings(names)

	for _, name := range names {
		l.store.Record(name, values[name])
	}

	insights := l.generator.Generate(l.store)

	l.log.WithFields(logrus.Fields{
		"recorded": len(names),
		"insights": len(insights),
	}).Debug("evaluated iteration")

	return insights
}

// SuggestOptimizations returns suggestions derived from the current insights
// and from task context, dropping anything below the priority floor.
func (l *Loop) SuggestOptimizations(task TaskContext) []Suggestion {
	suggestions := make([]Suggestion, 0)

	for _, in := range l.generator.Generate(l.store) {
		if in.Confidence < minInsightConfidence {
			continue
		}

		suggestions = append(suggestions, Suggestion{
			Category:    string(in.Category),
			Description: in.Description,
			Action:      in.SuggestedAction,
			Priority:    roundPriority(in.Confidence),
		})
	}

	suggestions = append(suggestions, contextSuggestions(task)...)

	if l.recentLintErrors() > 0 {
		suggestions = append(suggestions, Suggestion{
			Category:    string(insight.CategoryQuality),
			Description: "Recent linting errors detected",
			Action:      "Run the linter with auto-fix before committing",
			Priority:    0.9,
		})
	}

	filtered := suggestions[:0]
	for _, s := range suggestions {
		if s.Priority >= l.minPriority {
			filtered = append(filtered, s)
		}
	}

	l.log.WithFields(logrus.Fields{
		"task_type":   task.TaskType,
		"complexity":  task.Complexity,
		"suggestions": len(filtered),
		"dropped":     len(suggestions) - len(filtered),
	}).Debug("built suggestions")

	return filtered
}

func contextSuggestions(task TaskContext) []Suggestion {
	var out []Suggestion

	switch strings.ToLower(strings.TrimSpace(task.TaskType)) {
	case "refactoring":
		out = append(out, Suggestion{
			Category:    CategoryBestPractice,
			Description: "Refactoring task detected",
			Action:      "Ensure test coverage remains high after changes",
			Priority:    0.9,
		})
	case "debugging":
		out = append(out, Suggestion{
			Category:    CategoryErrorHandling,
			Description: "Debugging task detected",
			Action:      "Add explicit error handling and logging around the failing path",
			Priority:    0.85,
		})
	}

	if strings.EqualFold(strings.TrimSpace(task.Complexity), "high") {
		out = append(out, Suggestion{
			Category:    CategoryErrorHandling,
			Description: "High complexity task",
			Action:      "Cover edge cases with error handling and split the change into smaller steps",
			Priority:    0.8,
		})
	}

	return out
}

func (l *Loop) recentLintErrors() float64 {
	total := 0.0
	for _, v := range metrics.Window(l.store.Values(metrics.LintErrors), recentLintWindow) {
		total += v
	}

	return total
}

func roundPriority(p float64) float64 {
	return math.Round(p*100) / 100
}
