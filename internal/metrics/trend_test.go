package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyze(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		values []float64
		want   TrendStats
	}{
		{
			name:   "empty",
			values: nil,
			want:   TrendStats{},
		},
		{
			name:   "single sample has no trend",
			values: []float64{42},
			want:   TrendStats{Count: 1, Mean: 42, Median: 42, Min: 42, Max: 42},
		},
		{
			name:   "odd count puts extra sample in second half",
			values: []float64{1, 2, 6},
			// first half [1], second half [2, 6]
			want: TrendStats{Count: 3, Mean: 3, Median: 2, Min: 1, Max: 6, TrendDirection: 3},
		},
		{
			name:   "even count",
			values: []float64{10, 11, 12, 13},
			want:   TrendStats{Count: 4, Mean: 11.5, Median: 11.5, Min: 10, Max: 13, TrendDirection: 2},
		},
		{
			name:   "flat",
			values: []float64{5, 5, 5, 5, 5},
			want:   TrendStats{Count: 5, Mean: 5, Median: 5, Min: 5, Max: 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Analyze(tt.values)
			assert.Equal(t, tt.want.Count, got.Count)
			assert.InDelta(t, tt.want.Mean, got.Mean, 1e-9)
			assert.InDelta(t, tt.want.Median, got.Median, 1e-9)
			assert.InDelta(t, tt.want.Min, got.Min, 1e-9)
			assert.InDelta(t, tt.want.Max, got.Max, 1e-9)
			assert.InDelta(t, tt.want.TrendDirection, got.TrendDirection, 1e-9)
		})
	}
}

func TestAnalyze_Direction(t *testing.T) {
	t.Parallel()

	for n := 2; n <= 12; n++ {
		increasing := make([]float64, n)
		decreasing := make([]float64, n)

		for i := 0; i < n; i++ {
			increasing[i] = float64(i) * 1.5
			decreasing[i] = 100 - float64(i)*0.25
		}

		assert.Positive(t, Analyze(increasing).TrendDirection, "n=%d", n)
		assert.Negative(t, Analyze(decreasing).TrendDirection, "n=%d", n)
	}
}

func TestAnalyze_DoesNotReorderInput(t *testing.T) {
	t.Parallel()

	values := []float64{3, 1, 2}
	Analyze(values)

	assert.Equal(t, []float64{3, 1, 2}, values)
}

func TestWindow(t *testing.T) {
	t.Parallel()

	values := []float64{1, 2, 3, 4, 5}

	assert.Equal(t, []float64{4, 5}, Window(values, 2))
	assert.Equal(t, values, Window(values, 10))
	assert.Equal(t, values, Window(values, 0))
	assert.Empty(t, Window(nil, 3))
}
