// Package cache stores rendered check reports between runs so batch mode
// can skip files that have not changed since they were last linted.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Cache defines the interface for report caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key generates a cache key from a file's identity. Size and modification
// time are part of the key, so an edited file misses the cache instead of
// needing invalidation.
func Key(path string, sizeBytes int64, modTime time.Time) string {
	id := fmt.Sprintf("%s|%d|%d", path, sizeBytes, modTime.UnixNano())
	hash := sha256.Sum256([]byte(id))
	return "fbxlint:v1:" + hex.EncodeToString(hash[:])
}
