// Package cache stores collected profile snapshots so repeat runs for the
// same user skip the API entirely. Memory in front, disk behind.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Cache is the storage contract shared by the layers
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives the cache key for a profile fetch. The collection limits are
// part of the key so changing --max-posts never serves a smaller snapshot.
func Key(username string, maxPosts, maxComments int) string {
	sum := sha256.Sum256(fmt.Appendf(nil, "%s|%d|%d", username, maxPosts, maxComments))
	return "personify:v1:" + hex.EncodeToString(sum[:])
}
