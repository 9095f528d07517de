package metrics

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Store is an append-only sequence of metric samples with optional file persistence.
//
// Store is not safe for concurrent writers. Concurrent reads are fine as long as
// nothing records at the same time.
type Store interface {
	// Record appends a sample stamped with the current UTC time and, when the
	// store is file backed, rewrites the file. Persistence errors are logged and
	// never affect the in-memory record.
	Record(name string, value float64, fields ...Field) Sample
	// Get returns all samples when name is empty, otherwise those matching name,
	// in insertion order.
	Get(name string) []Sample
	// Values returns the values of the samples matching name, in insertion order.
	Values(name string) []float64
	// Names returns the distinct metric names in first-seen order.
	Names() []string
	// AnalyzeTrends computes TrendStats over the last window samples for name.
	AnalyzeTrends(name string, window int) TrendStats
	Len() int
	Path() string
}

// StoreOption configures a Store.
type StoreOption func(*store)

// WithClock overrides the time source used to stamp samples.
func WithClock(now func() time.Time) StoreOption {
	return func(s *store) {
		s.now = now
	}
}

type store struct {
	log     logrus.FieldLogger
	backend *fileBackend
	now     func() time.Time
	samples []Sample
}

// NewStore creates a store. When path is non-empty and the file exists its
// samples are loaded; an unreadable or corrupt file is logged and treated as
// empty history.
func NewStore(log logrus.FieldLogger, path string, opts ...StoreOption) Store {
	s := &store{
		log:     log.WithField("component", "metrics_store"),
		now:     time.Now,
		samples: make([]Sample, 0, 64),
	}

	for _, opt := range opts {
		opt(s)
	}

	if path == "" {
		return s
	}

	s.backend = &fileBackend{path: path}

	samples, err := s.backend.load()
	if err != nil {
		s.log.WithError(err).WithField("path", path).Warn("failed to load metrics, starting with empty history")
		return s
	}

	if len(samples) > 0 {
		s.samples = samples
	}

	s.log.WithFields(logrus.Fields{
		"path":    path,
		"samples": len(s.samples),
	}).Debug("metrics store loaded")

	return s
}

func (s *store) Record(name string, value float64, fields ...Field) Sample {
	sample := Sample{
		Timestamp: formatTimestamp(s.now()),
		Name:      name,
		Value:     value,
		Metadata:  NewMetadata(fields...),
	}

	s.samples = append(s.samples, sample)

	s.log.WithFields(logrus.Fields{
		"metric": name,
		"value":  value,
	}).Debug("recorded metric")

	if s.backend != nil {
		if err := s.backend.save(s.samples); err != nil {
			s.log.WithError(err).WithField("path", s.backend.path).Warn("failed to persist metrics")
		}
	}

	return sample.clone()
}

func (s *store) Get(name string) []Sample {
	result := make([]Sample, 0, len(s.samples))

	for _, sample := range s.samples {
		if name == "" || sample.Name == name {
			result = append(result, sample.clone())
		}
	}

	return result
}

func (s *store) Values(name string) []float64 {
	values := make([]float64, 0)

	for _, sample := range s.samples {
		if sample.Name == name {
			values = append(values, sample.Value)
		}
	}

	return values
}

func (s *store) Names() []string {
	seen := make(map[string]struct{})
	names := make([]string, 0)

	for _, sample := range s.samples {
		if _, ok := seen[sample.Name]; ok {
			continue
		}

		seen[sample.Name] = struct{}{}
		names = append(names, sample.Name)
	}

	return names
}

func (s *store) AnalyzeTrends(name string, window int) TrendStats {
	if window <= 0 {
		window = DefaultTrendWindow
	}

	return Analyze(Window(s.Values(name), window))
}

func (s *store) Len() int {
	return len(s.samples)
}

func (s *store) Path() string {
	if s.backend == nil {
		return ""
	}

	return s.backend.path
}

// Compile-time interface compliance check
var _ Store = (*store)(nil)
