package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache keeps responses in process memory for the duration of a run.
type MemoryCache struct {
	cache *gocache.Cache
}

// NewMemoryCache creates a memory cache with the given default TTL.
func NewMemoryCache(defaultTTL, cleanupInterval time.Duration) *MemoryCache {
	return &MemoryCache{
		cache: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Get retrieves a value from the cache.
func (c *MemoryCache) Get(key string) ([]byte, bool) {
	if val, found := c.cache.Get(key); found {
		return val.([]byte), true
	}
	return nil, false
}

// Set stores a value with the given TTL.
func (c *MemoryCache) Set(key string, value []byte, ttl time.Duration) error {
	c.cache.Set(key, value, ttl)
	return nil
}

// Delete removes a value.
func (c *MemoryCache) Delete(key string) error {
	c.cache.Delete(key)
	return nil
}

// Clear removes all values.
func (c *MemoryCache) Clear() error {
	c.cache.Flush()
	return nil
}
