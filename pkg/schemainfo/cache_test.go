package schemainfo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	cache := NewCache(5*time.Minute, clock)
	assert.Nil(t, cache.Get(), "empty cache misses")

	schema := &Schema{DescribedAt: now}
	cache.Put(schema)
	require.NotNil(t, cache.Get())
	assert.Same(t, schema, cache.Get())

	t.Run("expires after the ttl", func(t *testing.T) {
		now = now.Add(5*time.Minute + time.Second)
		assert.Nil(t, cache.Get())
	})

	t.Run("put restarts the ttl", func(t *testing.T) {
		cache.Put(schema)
		now = now.Add(4 * time.Minute)
		assert.NotNil(t, cache.Get())
	})

	t.Run("invalidate drops immediately", func(t *testing.T) {
		cache.Put(schema)
		cache.Invalidate()
		assert.Nil(t, cache.Get())
	})
}
