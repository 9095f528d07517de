package metrics

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// fileBackend reads and rewrites the whole metrics file. Every failure is
// returned so the store can decide to carry on without persistence.
type fileBackend struct {
	path string
}

// persistedSample accepts the legacy metric_name field on load.
type persistedSample struct {
	Timestamp  string   `json:"timestamp"`
	Name       string   `json:"name"`
	MetricName string   `json:"metric_name"`
	Value      float64  `json:"value"`
	Metadata   Metadata `json:"metadata"`
}

// load returns the persisted samples. A missing file is not an error.
func (b *fileBackend) load() ([]Sample, error) {
	data, err := os.ReadFile(b.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}

		return nil, fmt.Errorf("reading metrics file: %w", err)
	}

	var raw []persistedSample
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing metrics file: %w", err)
	}

	samples := make([]Sample, 0, len(raw))
	for _, r := range raw {
		name := r.Name
		if name == "" {
			name = r.MetricName
		}

		samples = append(samples, Sample{
			Timestamp: r.Timestamp,
			Name:      name,
			Value:     r.Value,
			Metadata:  r.Metadata,
		})
	}

	return samples, nil
}

// save overwrites the file with samples.
func (b *fileBackend) save(samples []Sample) error {
	if samples == nil {
		samples = []Sample{}
	}

	data, err := json.MarshalIndent(samples, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling metrics: %w", err)
	}

	if dir := filepath.Dir(b.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating metrics directory: %w", err)
		}
	}

	if err := os.WriteFile(b.path, data, 0o644); err != nil { //nolint:gosec // metrics history is not sensitive
		return fmt.Errorf("writing metrics file: %w", err)
	}

	return nil
}
