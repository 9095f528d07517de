package perf

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"
)

// Complexity names accepted by EstimateComplexity.
const (
	ComplexityConstant    = "constant"
	ComplexityLogarithmic = "logarithmic"
	ComplexityLinear      = "linear"
	ComplexityQuadratic   = "quadratic"
)

// Batch splits items into consecutive slices of at most size elements.
func Batch[T any](items []T, size int) [][]T {
	if size <= 0 {
		size = 1
	}

	batches := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		batches = append(batches, items[start:end:end])
	}

	return batches
}

// ShouldParallelize reports whether count items justify parallel processing.
func ShouldParallelize(count, threshold int) bool {
	return count >= threshold
}

// EstimateComplexity returns a rough operation count for input size n.
// Unknown kinds are treated as linear.
func EstimateComplexity(n int, kind string) float64 {
	switch kind {
	case ComplexityConstant:
		return 1
	case ComplexityLogarithmic:
		if n <= 0 {
			return 0
		}

		return math.Log2(float64(n))
	case ComplexityQuadratic:
		return float64(n) * float64(n)
	default:
		return float64(n)
	}
}

// RunBatches splits items into batches and calls fn for each, running at most
// limit batches at once. The first error cancels the remaining work.
func RunBatches[T any](ctx context.Context, items []T, batchSize, limit int, fn func(ctx context.Context, batch []T) error) error {
	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, batch := range Batch(items, batchSize) {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			if err := fn(gctx, batch); err != nil {
				return fmt.Errorf("batch %d: %w", i, err)
			}

			return nil
		})
	}

	return g.Wait()
}
