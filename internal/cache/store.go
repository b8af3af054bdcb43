package cache

import (
	"context"
	"strconv"
	"strings"
	"time"
)

// Store is the TTL key/value store the catalog service reads through.
// Implemented by the memory store (dev) and the Redis store (prod).
//
// Get reports a miss for keys that are absent or expired; expiry is checked
// at read time, never served stale. Set stores a copy of value for ttl.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Cache keys used by the catalog service. The keyspace is bounded by the
// size of the upstream catalog, so unbounded key growth is acceptable.
const KeyIndex = "all-index"

// KeyDetail is the cache key for a summary record fetched by name or id.
func KeyDetail(nameOrID string) string {
	return "detail:" + nameOrID
}

// KeyFullDetail is the cache key for an enriched detail record.
func KeyFullDetail(id int) string {
	return "full-detail:" + strconv.Itoa(id)
}

// KeyKind returns the key's family ("all-index", "detail", "full-detail")
// for metrics labels.
func KeyKind(key string) string {
	if i := strings.IndexByte(key, ':'); i >= 0 {
		return key[:i]
	}
	return key
}
