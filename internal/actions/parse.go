package actions

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ethpandaops/devmetrics/internal/metrics"
)

var (
	// ErrInvalidPair is returned when an argument is not in key=value form.
	ErrInvalidPair = errors.New("expected key=value")
	// ErrNoValues is returned when an iteration carries no metric values.
	ErrNoValues = errors.New("no metric values given")
	// ErrNotFinite is returned for NaN and infinite metric values, which JSON cannot hold.
	ErrNotFinite = errors.New("value must be a finite number")
)

// ParseFields converts key=value arguments into metadata fields. Numeric
// values become numbers, true and false become booleans and anything else is
// kept as a string.
func ParseFields(args []string) ([]metrics.Field, error) {
	fields := make([]metrics.Field, 0, len(args))

	for _, arg := range args {
		key, raw, err := splitPair(arg)
		if err != nil {
			return nil, err
		}

		fields = append(fields, metrics.Field{Key: key, Value: parseValue(raw)})
	}

	return fields, nil
}

// ParseValues converts metric=value arguments into an iteration.
func ParseValues(args []string) (map[string]float64, error) {
	if len(args) == 0 {
		return nil, ErrNoValues
	}

	values := make(map[string]float64, len(args))

	for _, arg := range args {
		name, raw, err := splitPair(arg)
		if err != nil {
			return nil, err
		}

		v, err := ParseValue(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: %w", name, err)
		}

		values[name] = v
	}

	return values, nil
}

// ParseValue parses a single finite metric value.
func ParseValue(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, err
	}

	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrNotFinite
	}

	return v, nil
}

func splitPair(arg string) (key, value string, err error) {
	key, value, ok := strings.Cut(arg, "=")
	key = strings.TrimSpace(key)

	if !ok || key == "" {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidPair, arg)
	}

	return key, strings.TrimSpace(value), nil
}

func parseValue(raw string) metrics.Value {
	if n, err := ParseValue(raw); err == nil {
		return metrics.Number(n)
	}

	switch raw {
	case "true":
		return metrics.Bool(true)
	case "false":
		return metrics.Bool(false)
	}

	return metrics.String(raw)
}
