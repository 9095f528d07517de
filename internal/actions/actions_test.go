package actions

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/ethpandaops/devmetrics/internal/config"
	"github.com/ethpandaops/devmetrics/internal/feedback"
	"github.com/ethpandaops/devmetrics/internal/metrics"
	"github.com/fatih/color"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestToolkit(t *testing.T) (*Toolkit, *bytes.Buffer) {
	t.Helper()

	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	cfg := config.Default()
	cfg.StoragePath = filepath.Join(t.TempDir(), "metrics.json")

	log, _ := logtest.NewNullLogger()
	buf := &bytes.Buffer{}

	return NewToolkit(log, cfg, buf), buf
}

func TestParseFields(t *testing.T) {
	t.Parallel()

	fields, err := ParseFields([]string{"branch=main", "shards=4", "ci=true", "note=1.2.3"})
	require.NoError(t, err)
	require.Len(t, fields, 4)

	assert.Equal(t, metrics.KindString, fields[0].Value.Kind())
	assert.Equal(t, metrics.KindNumber, fields[1].Value.Kind())
	assert.Equal(t, metrics.KindBool, fields[2].Value.Kind())
	assert.Equal(t, metrics.KindString, fields[3].Value.Kind())

	_, err = ParseFields([]string{"novalue"})
	require.ErrorIs(t, err, ErrInvalidPair)

	_, err = ParseFields([]string{"=x"})
	require.ErrorIs(t, err, ErrInvalidPair)
}

func TestParseValues(t *testing.T) {
	t.Parallel()

	values, err := ParseValues([]string{"test_duration=12.5", "lint_errors=0"})
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"test_duration": 12.5, "lint_errors": 0}, values)

	_, err = ParseValues(nil)
	require.ErrorIs(t, err, ErrNoValues)

	_, err = ParseValues([]string{"build_time=slow"})
	require.Error(t, err)

	_, err = ParseValues([]string{"build_time=NaN"})
	require.ErrorIs(t, err, ErrNotFinite)
}

func TestToolkit_RecordAndHistory(t *testing.T) {
	tk, buf := newTestToolkit(t)

	sample := tk.Record(metrics.BuildTime, 42, metrics.StringField("branch", "main"))
	assert.Equal(t, metrics.BuildTime, sample.Name)
	assert.Contains(t, buf.String(), "branch=main")

	buf.Reset()
	tk.History("")
	assert.Contains(t, buf.String(), "build_time")
	assert.Equal(t, 1, tk.Store().Len())
}

func TestToolkit_TrendsMemoized(t *testing.T) {
	tk, buf := newTestToolkit(t)

	for _, v := range []float64{1, 2, 3, 4} {
		tk.Store().Record(metrics.TestDuration, v)
	}

	trends, err := tk.Trends(context.Background(), nil)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, trends[metrics.TestDuration].TrendDirection, 1e-9)
	assert.Contains(t, buf.String(), "test_duration")

	_, err = tk.Trends(context.Background(), nil)
	require.NoError(t, err)

	stats := tk.trends.Cache().Stats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)

	// A new sample changes the key so stale stats are never served.
	tk.Store().Record(metrics.TestDuration, 10)

	trends, err = tk.Trends(context.Background(), []string{metrics.TestDuration})
	require.NoError(t, err)
	assert.Equal(t, 5, trends[metrics.TestDuration].Count)
	assert.InDelta(t, 3.0, tk.Monitor().Stats("trends").Count, 0)
}

func TestToolkit_TrendsParallel(t *testing.T) {
	tk, _ := newTestToolkit(t)

	names := make([]string, 0, parallelThreshold+2)
	for i := 0; i < parallelThreshold+2; i++ {
		name := fmt.Sprintf("metric_%02d", i)
		names = append(names, name)
		tk.Store().Record(name, float64(i))
	}

	trends, err := tk.Trends(context.Background(), names)
	require.NoError(t, err)
	require.Len(t, trends, len(names))
	assert.InDelta(t, 3.0, trends["metric_03"].Mean, 0)
	assert.Zero(t, tk.trends.Cache().Size())
}

func TestToolkit_TrendsCanceled(t *testing.T) {
	tk, _ := newTestToolkit(t)

	names := make([]string, 0, parallelThreshold)
	for i := 0; i < parallelThreshold; i++ {
		names = append(names, fmt.Sprintf("metric_%02d", i))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := tk.Trends(ctx, names)
	require.ErrorIs(t, err, context.Canceled)
}

func TestToolkit_InsightsCached(t *testing.T) {
	tk, buf := newTestToolkit(t)

	insights := tk.Insights()
	assert.Empty(t, insights)
	assert.Contains(t, buf.String(), "No issues detected")

	for i := 0; i < 3; i++ {
		tk.Store().Record(metrics.LintErrors, 2)
	}

	insights = tk.Insights()
	require.Len(t, insights, 1)
	assert.Contains(t, insights[0].Description, "Linting errors detected")

	tk.Insights()
	assert.Equal(t, int64(1), tk.insights.Stats().Hits)
	assert.InDelta(t, 2.0, tk.Monitor().Stats("generate_insights").Count, 0)
}

func TestToolkit_EvaluateAndSuggest(t *testing.T) {
	tk, buf := newTestToolkit(t)

	for i := 0; i < 3; i++ {
		tk.Evaluate(map[string]float64{metrics.TestFailures: 1, metrics.CoveragePercent: 80})
	}

	assert.Equal(t, 6, tk.Store().Len())
	assert.Contains(t, buf.String(), "Test failures detected")
	assert.InDelta(t, 3.0, tk.Monitor().Stats("evaluate_iteration").Count, 0)

	buf.Reset()
	suggestions := tk.Suggest(feedback.TaskContext{TaskType: "refactoring"})
	require.NotEmpty(t, suggestions)
	assert.Contains(t, buf.String(), "Refactoring task detected")

	buf.Reset()
	tk.PrintDiagnostics()
	assert.Contains(t, buf.String(), "evaluate_iteration")
	assert.Contains(t, buf.String(), "insights hits=0")
}

func TestToolkit_RecordTimingsIntoStore(t *testing.T) {
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	cfg := config.Default()
	cfg.StoragePath = filepath.Join(t.TempDir(), "metrics.json")
	cfg.RecordTimings = true

	log, _ := logtest.NewNullLogger()
	tk := NewToolkit(log, cfg, &bytes.Buffer{})

	tk.Evaluate(map[string]float64{metrics.BuildTime: 12})

	timings := tk.Store().Get("evaluate_iteration")
	require.Len(t, timings, 1)

	source, ok := timings[0].Metadata.Get("source")
	require.True(t, ok)
	assert.Equal(t, "perf_monitor", source.String())
	assert.Len(t, tk.Store().Get(metrics.BuildTime), 1)
}

func TestToolkit_TimingsNotRecordedByDefault(t *testing.T) {
	tk, _ := newTestToolkit(t)

	tk.Evaluate(map[string]float64{metrics.BuildTime: 12})

	assert.Empty(t, tk.Store().Get("evaluate_iteration"))
	assert.Equal(t, 1, tk.Store().Len())
}
