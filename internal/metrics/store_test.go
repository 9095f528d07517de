package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(start time.Time) func() time.Time {
	current := start

	return func() time.Time {
		t := current
		current = current.Add(time.Second)

		return t
	}
}

func TestStore_RecordAndGet(t *testing.T) {
	t.Parallel()

	log, _ := logtest.NewNullLogger()
	s := NewStore(log, "")

	sample := s.Record("coverage", 95.5, StringField("branch", "main"))
	assert.Equal(t, "coverage", sample.Name)
	assert.InDelta(t, 95.5, sample.Value, 0)

	branch, ok := sample.Metadata.Get("branch")
	require.True(t, ok)
	assert.Equal(t, "main", branch.String())

	all := s.Get("")
	require.Len(t, all, 1)
	assert.True(t, all[0].Equal(sample))
	assert.Empty(t, s.Path())
}

func TestStore_GetFiltersInCallOrder(t *testing.T) {
	t.Parallel()

	log, _ := logtest.NewNullLogger()
	s := NewStore(log, "")

	s.Record("coverage", 95)
	s.Record(TestDuration, 10.5)
	s.Record("coverage", 96)
	s.Record("coverage", 94)

	coverage := s.Get("coverage")
	require.Len(t, coverage, 3)

	for _, sample := range coverage {
		assert.Equal(t, "coverage", sample.Name)
	}

	assert.Equal(t, []float64{95, 96, 94}, s.Values("coverage"))
	assert.Equal(t, []string{"coverage", TestDuration}, s.Names())
	assert.Equal(t, 4, s.Len())
	assert.Empty(t, s.Get("missing"))
}

func TestStore_TimestampIsUTCSecondPrecision(t *testing.T) {
	t.Parallel()

	log, _ := logtest.NewNullLogger()
	loc := time.FixedZone("UTC+2", 2*60*60)
	s := NewStore(log, "", WithClock(func() time.Time {
		return time.Date(2026, 10, 19, 10, 15, 30, 999_000_000, loc)
	}))

	sample := s.Record("x", 1)
	assert.Equal(t, "2026-10-19T08:15:30Z", sample.Timestamp)

	parsed, err := sample.Time()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, parsed.Location())
}

func TestStore_ReturnedSamplesDoNotAliasState(t *testing.T) {
	t.Parallel()

	log, _ := logtest.NewNullLogger()
	s := NewStore(log, "")
	s.Record("x", 1, StringField("k", "v"))

	got := s.Get("x")
	got[0].Metadata.Set("k", String("mutated"))
	got[0].Value = 42

	again := s.Get("x")
	v, _ := again[0].Metadata.Get("k")
	assert.Equal(t, "v", v.String())
	assert.InDelta(t, 1.0, again[0].Value, 0)
}

func TestStore_PersistenceRoundTrip(t *testing.T) {
	t.Parallel()

	log, _ := logtest.NewNullLogger()
	path := filepath.Join(t.TempDir(), "nested", "metrics.json")
	clock := WithClock(fixedClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))

	first := NewStore(log, path, clock)
	first.Record("coverage", 95, StringField("branch", "main"), NumberField("run", 3), BoolField("ci", true))
	first.Record(TestDuration, 10.5)

	second := NewStore(log, path)
	require.Equal(t, 2, second.Len())
	assert.Equal(t, path, second.Path())

	want := first.Get("")
	got := second.Get("")

	require.Len(t, got, len(want))

	for i := range want {
		assert.True(t, want[i].Equal(got[i]), "sample %d differs: %+v vs %+v", i, want[i], got[i])
	}

	assert.Equal(t, []string{"branch", "run", "ci"}, got[0].Metadata.Keys())
	assert.Equal(t, "2026-01-01T00:00:00Z", got[0].Timestamp)
	assert.Equal(t, "2026-01-01T00:00:01Z", got[1].Timestamp)
}

func TestStore_FileIsRewrittenOnEveryRecord(t *testing.T) {
	t.Parallel()

	log, _ := logtest.NewNullLogger()
	path := filepath.Join(t.TempDir(), "metrics.json")

	s := NewStore(log, path)
	s.Record("a", 1)
	s.Record("b", 2)
	s.Record("a", 3)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"timestamp"`)
	assert.Contains(t, string(data), `"metadata": {}`)

	reloaded := NewStore(log, path)
	assert.Equal(t, []float64{1, 3}, reloaded.Values("a"))
	assert.Equal(t, []float64{2}, reloaded.Values("b"))
}

func TestStore_CorruptFileStartsEmpty(t *testing.T) {
	t.Parallel()

	log, hook := logtest.NewNullLogger()
	path := filepath.Join(t.TempDir(), "metrics.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	s := NewStore(log, path)
	assert.Equal(t, 0, s.Len())

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)

	// Recording overwrites the corrupt file with valid content.
	s.Record("x", 1)
	assert.Equal(t, 1, NewStore(log, path).Len())
}

func TestStore_UnsupportedMetadataIsTreatedAsCorrupt(t *testing.T) {
	t.Parallel()

	log, _ := logtest.NewNullLogger()
	path := filepath.Join(t.TempDir(), "metrics.json")
	content := `[{"timestamp":"2026-01-01T00:00:00Z","name":"x","value":1,"metadata":{"nested":{"a":1}}}]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	assert.Equal(t, 0, NewStore(log, path).Len())
}

func TestStore_LoadsLegacyMetricNameField(t *testing.T) {
	t.Parallel()

	log, _ := logtest.NewNullLogger()
	path := filepath.Join(t.TempDir(), "metrics.json")
	content := `[{"timestamp":"2025-01-01T00:00:00+00:00","metric_name":"coverage","value":95.5,"metadata":{}}]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	s := NewStore(log, path)
	require.Equal(t, 1, s.Len())
	assert.Equal(t, []float64{95.5}, s.Values("coverage"))
}

func TestStore_SaveFailureIsSwallowed(t *testing.T) {
	t.Parallel()

	log, hook := logtest.NewNullLogger()
	dir := t.TempDir()

	// A directory at the target path makes every write fail.
	path := filepath.Join(dir, "metrics.json")
	require.NoError(t, os.Mkdir(path, 0o755))

	s := NewStore(log, path)
	sample := s.Record("x", 7)

	assert.InDelta(t, 7.0, sample.Value, 0)
	assert.Equal(t, 1, s.Len())
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestStore_AnalyzeTrends(t *testing.T) {
	t.Parallel()

	log, _ := logtest.NewNullLogger()
	s := NewStore(log, "")

	for i := 0; i < 10; i++ {
		s.Record(TestDuration, float64(i))
	}

	stats := s.AnalyzeTrends(TestDuration, 10)
	assert.InDelta(t, 4.5, stats.Mean, 1e-9)
	assert.InDelta(t, 4.5, stats.Median, 1e-9)
	assert.InDelta(t, 0.0, stats.Min, 0)
	assert.InDelta(t, 9.0, stats.Max, 0)
	assert.Positive(t, stats.TrendDirection)

	window := s.AnalyzeTrends(TestDuration, 0)
	assert.Equal(t, DefaultTrendWindow, window.Count)
	assert.InDelta(t, 7.0, window.Mean, 1e-9)

	assert.Equal(t, TrendStats{}, s.AnalyzeTrends("nonexistent", 5))
}

func TestIsWellKnown(t *testing.T) {
	t.Parallel()

	for _, name := range []string{TestDuration, CoveragePercent, BuildTime, LintErrors, TestFailures, BuildErrors} {
		assert.True(t, IsWellKnown(name), name)
	}

	assert.False(t, IsWellKnown("deploy_time"))
	assert.False(t, IsWellKnown(""))
}
