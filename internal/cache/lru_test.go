package cache

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLRU_GetSet(t *testing.T) {
	t.Parallel()

	c := NewLRU[string](0)
	require.Equal(t, DefaultMaxSize, c.MaxSize())

	c.Set("key1", "value1")

	value, ok := c.Get("key1")
	require.True(t, ok)
	assert.Equal(t, "value1", value)
	assert.Equal(t, 1, c.Size())
}

func TestLRU_MissIsDistinctFromStoredNil(t *testing.T) {
	t.Parallel()

	c := NewLRU[*int](4)
	c.Set("nil", nil)

	value, ok := c.Get("nil")
	require.True(t, ok)
	assert.Nil(t, value)

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestLRU_EvictsLeastRecentlyUsed(t *testing.T) {
	t.Parallel()

	const maxSize = 5

	c := NewLRU[int](maxSize)
	for i := 1; i <= maxSize+1; i++ {
		c.Set(fmt.Sprintf("k%d", i), i)
	}

	_, ok := c.Get("k1")
	assert.False(t, ok)

	for i := 2; i <= maxSize+1; i++ {
		value, ok := c.Get(fmt.Sprintf("k%d", i))
		require.True(t, ok, "k%d should still be cached", i)
		assert.Equal(t, i, value)
	}

	assert.Equal(t, maxSize, c.Size())
	assert.Equal(t, int64(1), c.Stats().Evictions)
}

func TestLRU_AccessProtectsFromEviction(t *testing.T) {
	t.Parallel()

	c := NewLRU[string](2)
	c.Set("key1", "value1")
	c.Set("key2", "value2")

	_, _ = c.Get("key1")
	c.Set("key3", "value3")

	_, ok := c.Get("key2")
	assert.False(t, ok)

	value, ok := c.Get("key1")
	require.True(t, ok)
	assert.Equal(t, "value1", value)

	value, ok = c.Get("key3")
	require.True(t, ok)
	assert.Equal(t, "value3", value)
}

func TestLRU_UpdateExisting(t *testing.T) {
	t.Parallel()

	c := NewLRU[string](2)
	c.Set("key1", "value1")
	c.Set("key2", "value2")
	c.Set("key1", "updated")

	assert.Equal(t, 2, c.Size())
	assert.Equal(t, []string{"key1", "key2"}, c.Keys())

	// key2 is now the oldest.
	c.Set("key3", "value3")

	_, ok := c.Get("key2")
	assert.False(t, ok)

	value, ok := c.Get("key1")
	require.True(t, ok)
	assert.Equal(t, "updated", value)
}

func TestLRU_ClearAndDelete(t *testing.T) {
	t.Parallel()

	c := NewLRU[string](10)
	c.Set("key1", "value1")
	c.Set("key2", "value2")

	assert.True(t, c.Delete("key1"))
	assert.False(t, c.Delete("key1"))
	assert.Equal(t, 1, c.Size())

	c.Clear()
	assert.Equal(t, 0, c.Size())

	_, ok := c.Get("key2")
	assert.False(t, ok)
	assert.Empty(t, c.Keys())
}

func TestLRU_Stats(t *testing.T) {
	t.Parallel()

	c := NewLRU[int](3)
	c.Set("a", 1)

	_, _ = c.Get("a")
	_, _ = c.Get("a")
	_, _ = c.Get("b")

	stats := c.Stats()
	assert.Equal(t, int64(2), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, 1, stats.Size)
	assert.Equal(t, 3, stats.MaxSize)
	assert.InDelta(t, 66.67, stats.HitRate(), 0.01)
	assert.Zero(t, Stats{}.HitRate())
}
