package cache

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// DefaultMemoSize is the capacity of a memoization cache when none is configured.
const DefaultMemoSize = 128

// Kwargs carries named arguments to a memoized function. Names are sorted when
// the cache key is built, so construction order never changes the key.
type Kwargs map[string]any

// MemoOption configures a Memoized function.
type MemoOption func(*memoConfig)

type memoConfig struct {
	maxSize int
}

// WithMaxSize sets the number of results kept by the memoization cache.
func WithMaxSize(n int) MemoOption {
	return func(c *memoConfig) {
		c.maxSize = n
	}
}

// Memoized wraps a function with a private LRU keyed by its serialized arguments.
type Memoized[T any] struct {
	name  string
	fn    func(args ...any) (T, error)
	cache *LRU[T]
}

// Memoize wraps fn so repeated calls with identical arguments return the cached
// result instead of invoking fn again. Failed calls are never cached.
func Memoize[T any](name string, fn func(args ...any) (T, error), opts ...MemoOption) *Memoized[T] {
	cfg := &memoConfig{maxSize: DefaultMemoSize}
	for _, opt := range opts {
		opt(cfg)
	}

	return &Memoized[T]{
		name:  name,
		fn:    fn,
		cache: NewLRU[T](cfg.maxSize),
	}
}

// Call returns the cached result for args, invoking the wrapped function on a miss.
func (m *Memoized[T]) Call(args ...any) (T, error) {
	key := m.Key(args...)

	if result, ok := m.cache.Get(key); ok {
		return result, nil
	}

	result, err := m.fn(args...)
	if err != nil {
		return result, err
	}

	m.cache.Set(key, result)

	return result, nil
}

// Cache exposes the underlying LRU for inspection.
func (m *Memoized[T]) Cache() *LRU[T] {
	return m.cache
}

// Key returns the cache key Call would use for args. Every part is quoted and
// the argument count is included, so separators inside values cannot make two
// different argument lists share a key.
func (m *Memoized[T]) Key(args ...any) string {
	parts := make([]string, 0, len(args))
	for _, arg := range args {
		parts = append(parts, serializeArg(arg))
	}

	return m.name + ":" + strconv.Itoa(len(args)) + ":" + strings.Join(parts, "|")
}

func serializeArg(arg any) string {
	kwargs, ok := arg.(Kwargs)
	if !ok {
		// Type-qualified so 1 and "1" produce different keys.
		return strconv.Quote(fmt.Sprintf("%T:%v", arg, arg))
	}

	names := make([]string, 0, len(kwargs))
	for name := range kwargs {
		names = append(names, name)
	}

	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		value := kwargs[name]
		parts = append(parts, strconv.Quote(name)+"="+strconv.Quote(fmt.Sprintf("%T:%v", value, value)))
	}

	return "{" + strings.Join(parts, ",") + "}"
}
