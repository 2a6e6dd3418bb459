// Package cache memoizes computed layouts and rendered artifacts.
//
// A layout depends only on the resolved canvas, the distribution and the
// width estimator, so identical requests can reuse earlier results. Keys are
// produced by a [Keyer]; values are opaque bytes stored by a [Cache] backend:
//
//   - [NullCache]: caching disabled
//   - [FileCache]: one JSON file per entry, for the CLI
//   - [RedisCache]: shared cache for API servers
//   - [MongoCache]: shared document cache with a TTL index
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry. Implementations must be safe
// for concurrent use.
type Cache interface {
	// Get returns the value for key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// Entry lifetimes.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Key types reported to observability hooks.
const (
	KeyTypeLayout   = "layout"
	KeyTypeArtifact = "artifact"
)
