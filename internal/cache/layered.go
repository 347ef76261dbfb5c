package cache

import "time"

// LayeredCache checks memory first, then disk, promoting disk hits.
type LayeredCache struct {
	memory Cache
	disk   Cache
}

// NewLayeredCache creates a memory+disk cache.
func NewLayeredCache(memoryTTL time.Duration, diskDir string, diskTTL time.Duration) *LayeredCache {
	return &LayeredCache{
		memory: NewMemoryCache(memoryTTL, 10*time.Minute),
		disk:   NewDiskCache(diskDir, diskTTL),
	}
}

// Get checks the memory layer, then the disk layer.
func (c *LayeredCache) Get(key string) ([]byte, bool) {
	if val, found := c.memory.Get(key); found {
		return val, true
	}

	if val, found := c.disk.Get(key); found {
		_ = c.memory.Set(key, val, 0)
		return val, true
	}

	return nil, false
}

// Set stores the value in both layers.
func (c *LayeredCache) Set(key string, value []byte, ttl time.Duration) error {
	if err := c.memory.Set(key, value, ttl); err != nil {
		return err
	}
	return c.disk.Set(key, value, ttl)
}

// Delete removes the value from both layers.
func (c *LayeredCache) Delete(key string) error {
	_ = c.memory.Delete(key)
	_ = c.disk.Delete(key)
	return nil
}

// Clear empties both layers.
func (c *LayeredCache) Clear() error {
	_ = c.memory.Clear()
	return c.disk.Clear()
}
