package perf

import (
	"time"
)

// Timing is one measured call.
type Timing struct {
	Name     string
	Duration time.Duration
}

// TimedFunc wraps a function and measures every call.
type TimedFunc[T any] struct {
	name    string
	fn      func() (T, error)
	monitor *Monitor
	timings []Timing
}

// Timed wraps fn so each call is timed under name. monitor may be nil.
func Timed[T any](name string, monitor *Monitor, fn func() (T, error)) *TimedFunc[T] {
	return &TimedFunc[T]{
		name:    name,
		fn:      fn,
		monitor: monitor,
	}
}

// Call invokes the wrapped function. Failed calls are timed too.
func (t *TimedFunc[T]) Call() (T, error) {
	start := time.Now()
	result, err := t.fn()
	elapsed := time.Since(start)

	t.timings = append(t.timings, Timing{Name: t.name, Duration: elapsed})

	if t.monitor != nil {
		t.monitor.RecordDuration(t.name, elapsed)
	}

	return result, err
}

// Timings returns every measurement taken so far, oldest first.
func (t *TimedFunc[T]) Timings() []Timing {
	out := make([]Timing, len(t.timings))
	copy(out, t.timings)

	return out
}

// ProfileStats describes one profiled operation.
type ProfileStats struct {
	Operation       string
	DurationSeconds float64
	DurationMillis  float64
}

// Profiler measures a single span of work between Start and Stop.
type Profiler struct {
	operation string
	start     time.Time
	end       time.Time
}

// NewProfiler creates a profiler for operation.
func NewProfiler(operation string) *Profiler {
	return &Profiler{operation: operation}
}

// Start marks the beginning of the span and returns the profiler for chaining.
func (p *Profiler) Start() *Profiler {
	p.start = time.Now()
	p.end = time.Time{}

	return p
}

// Stop marks the end of the span and returns its duration.
func (p *Profiler) Stop() time.Duration {
	p.end = time.Now()
	return p.Duration()
}

// Duration is zero until both Start and Stop have been called.
func (p *Profiler) Duration() time.Duration {
	if p.start.IsZero() || p.end.IsZero() {
		return 0
	}

	return p.end.Sub(p.start)
}

// Stats returns the measured span.
func (p *Profiler) Stats() ProfileStats {
	d := p.Duration()

	return ProfileStats{
		Operation:       p.operation,
		DurationSeconds: d.Seconds(),
		DurationMillis:  float64(d) / float64(time.Millisecond),
	}
}
