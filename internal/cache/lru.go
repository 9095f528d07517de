// Package cache provides a bounded in-memory LRU cache and a memoization wrapper built on it.
package cache

import (
	"container/list"
)

// DefaultMaxSize is the capacity used when NewLRU is given a non-positive size.
const DefaultMaxSize = 100

// Stats is a point-in-time snapshot of cache counters.
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Size      int
	MaxSize   int
}

// HitRate returns hits as a percentage of all lookups.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}

	return float64(s.Hits) / float64(total) * 100.0
}

// LRU is a fixed-capacity key/value store that evicts the least recently used
// entry when a new key is inserted at capacity.
//
// LRU is not safe for concurrent use. Callers sharing an LRU across goroutines
// must synchronise access themselves.
type LRU[V any] struct {
	maxSize int
	items   map[string]*list.Element
	order   *list.List // front = most recently used

	hits      int64
	misses    int64
	evictions int64
}

type entry[V any] struct {
	key   string
	value V
}

// NewLRU creates a new LRU cache holding at most maxSize entries.
func NewLRU[V any](maxSize int) *LRU[V] {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}

	return &LRU[V]{
		maxSize: maxSize,
		items:   make(map[string]*list.Element, maxSize),
		order:   list.New(),
	}
}

// Get returns the value stored under key and whether it was present.
// A hit promotes the key to most recently used.
func (c *LRU[V]) Get(key string) (V, bool) {
	elem, ok := c.items[key]
	if !ok {
		c.misses++

		var zero V

		return zero, false
	}

	c.order.MoveToFront(elem)
	c.hits++

	return elem.Value.(*entry[V]).value, true //nolint:forcetypeassert // only *entry[V] is ever stored
}

// Set stores value under key, replacing any previous value. The key becomes
// most recently used. Inserting a new key at capacity evicts the least recently
// used key first.
func (c *LRU[V]) Set(key string, value V) {
	if elem, ok := c.items[key]; ok {
		elem.Value.(*entry[V]).value = value //nolint:forcetypeassert // only *entry[V] is ever stored
		c.order.MoveToFront(elem)

		return
	}

	if c.order.Len() >= c.maxSize {
		c.evictOldest()
	}

	c.items[key] = c.order.PushFront(&entry[V]{key: key, value: value})
}

// Delete removes key and reports whether it was present.
func (c *LRU[V]) Delete(key string) bool {
	elem, ok := c.items[key]
	if !ok {
		return false
	}

	c.order.Remove(elem)
	delete(c.items, key)

	return true
}

// Clear drops every entry. Counters are kept.
func (c *LRU[V]) Clear() {
	c.items = make(map[string]*list.Element, c.maxSize)
	c.order.Init()
}

// Size returns the number of entries currently stored.
func (c *LRU[V]) Size() int {
	return c.order.Len()
}

// MaxSize returns the configured capacity.
func (c *LRU[V]) MaxSize() int {
	return c.maxSize
}

// Keys returns the stored keys ordered from most to least recently used.
func (c *LRU[V]) Keys() []string {
	keys := make([]string, 0, c.order.Len())
	for elem := c.order.Front(); elem != nil; elem = elem.Next() {
		keys = append(keys, elem.Value.(*entry[V]).key) //nolint:forcetypeassert // only *entry[V] is ever stored
	}

	return keys
}

// Stats returns a snapshot of the cache counters.
func (c *LRU[V]) Stats() Stats {
	return Stats{
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
		Size:      c.order.Len(),
		MaxSize:   c.maxSize,
	}
}

func (c *LRU[V]) evictOldest() {
	oldest := c.order.Back()
	if oldest == nil {
		return
	}

	c.order.Remove(oldest)
	delete(c.items, oldest.Value.(*entry[V]).key) //nolint:forcetypeassert // only *entry[V] is ever stored
	c.evictions++
}
