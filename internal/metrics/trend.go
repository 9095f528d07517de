package metrics

import "sort"

// DefaultTrendWindow is the window used when AnalyzeTrends is given a non-positive size.
const DefaultTrendWindow = 5

// TrendStats summarises a window of metric values.
type TrendStats struct {
	Count          int
	Mean           float64
	Median         float64
	Min            float64
	Max            float64
	TrendDirection float64 // mean of second half minus mean of first half
}

// Analyze computes TrendStats over values in chronological order. The trend
// splits values at len/2, so an odd extra value belongs to the second half.
// Empty input yields zero stats and a single value yields zero trend.
func Analyze(values []float64) TrendStats {
	if len(values) == 0 {
		return TrendStats{}
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	stats := TrendStats{
		Count:  len(values),
		Mean:   mean(values),
		Median: median(sorted),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
	}

	if len(values) >= 2 {
		mid := len(values) / 2
		stats.TrendDirection = mean(values[mid:]) - mean(values[:mid])
	}

	return stats
}

// Window returns the last size values, or all of them when fewer exist.
func Window(values []float64, size int) []float64 {
	if size <= 0 || size >= len(values) {
		return values
	}

	return values[len(values)-size:]
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sum := 0.0
	for _, v := range values {
		sum += v
	}

	return sum / float64(len(values))
}

func median(sorted []float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}

	if n%2 == 1 {
		return sorted[n/2]
	}

	return (sorted[n/2-1] + sorted[n/2]) / 2
}
