// Package actions contains the operations behind each devmetrics command
package actions

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/ethpandaops/devmetrics/internal/cache"
	"github.com/ethpandaops/devmetrics/internal/config"
	"github.com/ethpandaops/devmetrics/internal/feedback"
	"github.com/ethpandaops/devmetrics/internal/insight"
	"github.com/ethpandaops/devmetrics/internal/metrics"
	"github.com/ethpandaops/devmetrics/internal/output"
	"github.com/ethpandaops/devmetrics/internal/perf"
	"github.com/sirupsen/logrus"
)

// parallelThreshold is the number of metrics above which trends are computed concurrently.
const parallelThreshold = 8

// Toolkit bundles the store, analyzers and output used by the commands.
type Toolkit struct {
	log       logrus.FieldLogger
	cfg       *config.Config
	store     metrics.Store
	generator *insight.Generator
	loop      *feedback.Loop
	monitor   *perf.Monitor
	reporter  output.Reporter

	trends   *cache.Memoized[metrics.TrendStats]
	insights *cache.LRU[[]insight.Insight]
}

// NewToolkit opens the metrics store described by cfg and writes reports to w.
func NewToolkit(log logrus.FieldLogger, cfg *config.Config, w io.Writer) *Toolkit {
	log = log.WithField("component", "toolkit")

	store := metrics.NewStore(log, cfg.StoragePath)
	generator := insight.NewGenerator(log)

	var recorder perf.Recorder
	if cfg.RecordTimings {
		recorder = store
	}

	t := &Toolkit{
		log:       log,
		cfg:       cfg,
		store:     store,
		generator: generator,
		loop:      feedback.NewLoop(log, store, generator, feedback.WithMinPriority(cfg.MinPriority)),
		monitor:   perf.NewMonitor(log, recorder),
		reporter:  output.NewReporter(w, output.NewRenderer(log)),
		insights:  cache.NewLRU[[]insight.Insight](cfg.CacheSize),
	}

	// The sample count is part of the key so a new record invalidates older entries.
	t.trends = cache.Memoize("analyze_trends", func(args ...any) (metrics.TrendStats, error) {
		if len(args) < 2 {
			return metrics.TrendStats{}, fmt.Errorf("analyze_trends: expected name and window, got %d args", len(args))
		}

		name, ok := args[0].(string)
		if !ok {
			return metrics.TrendStats{}, fmt.Errorf("analyze_trends: name must be a string, got %T", args[0])
		}

		window, ok := args[1].(int)
		if !ok {
			return metrics.TrendStats{}, fmt.Errorf("analyze_trends: window must be an int, got %T", args[1])
		}

		return t.store.AnalyzeTrends(name, window), nil
	}, cache.WithMaxSize(cfg.MemoSize))

	return t
}

// Store returns the underlying metrics store.
func (t *Toolkit) Store() metrics.Store {
	return t.store
}

// Monitor returns the toolkit's timing monitor.
func (t *Toolkit) Monitor() *perf.Monitor {
	return t.monitor
}

// Record appends one sample and prints it.
func (t *Toolkit) Record(name string, value float64, fields ...metrics.Field) metrics.Sample {
	sample := t.store.Record(name, value, fields...)

	t.log.WithFields(logrus.Fields{
		"metric": name,
		"value":  value,
	}).Info("recorded metric")

	t.reporter.PrintSamples([]metrics.Sample{sample})

	return sample
}

// History prints recorded samples, optionally filtered by name.
func (t *Toolkit) History(name string) {
	t.reporter.PrintSamples(t.store.Get(name))
}

// Trends computes and prints trend statistics over the configured window.
// An empty names slice reports every recorded metric.
func (t *Toolkit) Trends(ctx context.Context, names []string) (map[string]metrics.TrendStats, error) {
	if len(names) == 0 {
		names = t.store.Names()
	}

	profiler := perf.NewProfiler("trends").Start()
	defer func() { t.monitor.RecordDuration("trends", profiler.Stop()) }()

	var (
		trends map[string]metrics.TrendStats
		err    error
	)

	if perf.ShouldParallelize(len(names), parallelThreshold) {
		trends, err = insight.AnalyzeAll(ctx, t.store, names, t.cfg.TrendWindow)
		if err != nil {
			return nil, fmt.Errorf("failed to analyze trends: %w", err)
		}
	} else {
		trends = make(map[string]metrics.TrendStats, len(names))

		for _, name := range names {
			stats, callErr := t.trends.Call(name, t.cfg.TrendWindow, t.store.Len())
			if callErr != nil {
				return nil, callErr
			}

			trends[name] = stats
		}
	}

	t.reporter.PrintTrends(trends)

	return trends, nil
}

// Insights generates and prints the current insight set.
func (t *Toolkit) Insights() []insight.Insight {
	key := strconv.Itoa(t.store.Len())

	insights, ok := t.insights.Get(key)
	if !ok {
		generate := perf.Timed("generate_insights", t.monitor, func() ([]insight.Insight, error) {
			return t.generator.Generate(t.store), nil
		})

		insights, _ = generate.Call()
		t.insights.Set(key, insights)
	}

	t.reporter.PrintInsights(insights)

	return insights
}

// Suggest prints optimization suggestions for task.
func (t *Toolkit) Suggest(task feedback.TaskContext) []feedback.Suggestion {
	suggestions := t.loop.SuggestOptimizations(task)
	t.reporter.PrintSuggestions(suggestions)

	return suggestions
}

// Evaluate records one iteration of values and prints the resulting insights.
func (t *Toolkit) Evaluate(values map[string]float64) []insight.Insight {
	evaluate := perf.Timed("evaluate_iteration", t.monitor, func() ([]insight.Insight, error) {
		return t.loop.EvaluateIteration(values), nil
	})

	insights, _ := evaluate.Call()

	t.log.WithFields(logrus.Fields{
		"metrics":  len(values),
		"insights": len(insights),
	}).Info("evaluated iteration")

	t.reporter.PrintInsights(insights)

	return insights
}

// PrintDiagnostics prints operation timings and cache statistics.
func (t *Toolkit) PrintDiagnostics() {
	t.reporter.PrintTimings(t.monitor.AllStats())
	t.reporter.PrintCacheStats("trends", t.trends.Cache().Stats())
	t.reporter.PrintCacheStats("insights", t.insights.Stats())
}
