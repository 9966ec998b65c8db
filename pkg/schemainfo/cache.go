// Package schemainfo describes the loaded schema for the metadata endpoint
// and the ad-hoc query assistant. Descriptions are expensive to build and
// nearly static once a load run finishes, so they sit behind an explicit
// TTL cache with an injected clock.
package schemainfo

import (
	"sync"
	"time"
)

// Cache holds one schema description for a fixed TTL. The clock is injected
// so expiry is testable without sleeping.
type Cache struct {
	mu        sync.Mutex
	ttl       time.Duration
	now       func() time.Time
	schema    *Schema
	expiresAt time.Time
}

func NewCache(ttl time.Duration, now func() time.Time) *Cache {
	if now == nil {
		now = time.Now
	}
	return &Cache{ttl: ttl, now: now}
}

// Get returns the cached schema, or nil when empty or expired.
func (c *Cache) Get() *Schema {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.schema == nil || c.now().After(c.expiresAt) {
		return nil
	}
	return c.schema
}

// Put stores a fresh description and restarts the TTL.
func (c *Cache) Put(schema *Schema) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.schema = schema
	c.expiresAt = c.now().Add(c.ttl)
}

// Invalidate drops the cached description so the next read rebuilds it.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.schema = nil
}
