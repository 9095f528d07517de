// Package perf provides timing collection, a profiler and helpers for batching work.
package perf

import (
	"sort"
	"sync"
	"time"

	"github.com/ethpandaops/devmetrics/internal/metrics"
	"github.com/sirupsen/logrus"
)

// OpStats aggregates the timings recorded for one operation, in seconds.
type OpStats struct {
	Count float64
	Min   float64
	Max   float64
	Avg   float64
	Total float64
}

// Recorder receives timings as metric samples. metrics.Store satisfies it.
type Recorder interface {
	Record(name string, value float64, fields ...metrics.Field) metrics.Sample
}

// Monitor collects operation timings. It is safe for concurrent use.
type Monitor struct {
	log      logrus.FieldLogger
	recorder Recorder

	mu      sync.Mutex
	timings map[string][]float64
}

// NewMonitor creates a monitor. recorder may be nil.
func NewMonitor(log logrus.FieldLogger, recorder Recorder) *Monitor {
	return &Monitor{
		log:      log.WithField("component", "perf_monitor"),
		recorder: recorder,
		timings:  make(map[string][]float64),
	}
}

// RecordTiming stores a duration in seconds for op and forwards it to the recorder.
func (m *Monitor) RecordTiming(op string, seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.timings[op] = append(m.timings[op], seconds)

	m.log.WithFields(logrus.Fields{
		"operation": op,
		"seconds":   seconds,
	}).Debug("recorded timing")

	// Forwarded under the lock: the recorder is not safe for concurrent writers.
	if m.recorder != nil {
		m.recorder.Record(op, seconds, metrics.StringField("source", "perf_monitor"))
	}
}

// RecordDuration is RecordTiming for a time.Duration.
func (m *Monitor) RecordDuration(op string, d time.Duration) {
	m.RecordTiming(op, d.Seconds())
}

// Stats returns the aggregate for op. Unknown operations yield zero stats.
func (m *Monitor) Stats(op string) OpStats {
	m.mu.Lock()
	defer m.mu.Unlock()

	return summarize(m.timings[op])
}

// AllStats returns the aggregate for every recorded operation.
func (m *Monitor) AllStats() map[string]OpStats {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[string]OpStats, len(m.timings))
	for op, values := range m.timings {
		out[op] = summarize(values)
	}

	return out
}

// Operations returns the recorded operation names sorted alphabetically.
func (m *Monitor) Operations() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	ops := make([]string, 0, len(m.timings))
	for op := range m.timings {
		ops = append(ops, op)
	}

	sort.Strings(ops)

	return ops
}

func summarize(values []float64) OpStats {
	if len(values) == 0 {
		return OpStats{}
	}

	stats := OpStats{
		Count: float64(len(values)),
		Min:   values[0],
		Max:   values[0],
	}

	for _, v := range values {
		stats.Total += v

		if v < stats.Min {
			stats.Min = v
		}

		if v > stats.Max {
			stats.Max = v
		}
	}

	stats.Avg = stats.Total / stats.Count

	return stats
}
