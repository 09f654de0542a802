// Package cache stores computed results keyed by a hash of their inputs.
//
// The calculation core is cheap, so caching here is memoization rather than
// a performance necessity: the HTTP API and CLI share computed summaries and
// rendered charts across requests and invocations. Cached values are JSON,
// and because encoding/json round-trips float64 exactly, a cache hit yields
// the same bits a fresh computation would.
//
// # Backends
//
//   - [NullCache]: never stores anything (--no-cache)
//   - [MemoryCache]: in-process map, used by the HTTP server and tests
//   - [FileCache]: one JSON file per entry under ~/.cache/recipecost/
//   - [RedisCache]: shared cache for multiple server instances
//
// # Keys
//
// A [Keyer] derives keys from inputs. [DefaultKeyer] hashes a canonical JSON
// form of the ingredient rows and settings; [ScopedKeyer] adds a prefix so
// several deployments can share one Redis database.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the stored value and whether it was found.
	// A missing or expired entry is a miss, not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Default lifetimes for cached values.
const (
	TTLSummary = 7 * 24 * time.Hour
	TTLChart   = 7 * 24 * time.Hour
)
