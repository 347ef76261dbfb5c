// Package cache provides a layered response cache so repeated downloads
// within a short window do not re-hit the upstream API.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is the interface shared by the memory, disk and layered caches.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a cache key from a source URL.
func Key(url string) string {
	hash := sha256.Sum256([]byte(url))
	return "deputes:v1:" + hex.EncodeToString(hash[:])
}
