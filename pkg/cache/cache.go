// Package cache stores downloaded compose manifests between runs.
//
// The CLI fetches remote manifests (GitHub links, raw URLs) on every
// invocation. A [FileCache] under the user's cache directory keeps the body
// for a limited time so repeated renders of the same URL work offline and do
// not hammer the remote host. [NewNullCache] disables caching (--no-cache).
package cache

import (
	"context"
	"time"
)

// DefaultManifestTTL is how long a downloaded manifest stays fresh.
const DefaultManifestTTL = 24 * time.Hour

// Cache is a byte-oriented key/value store with per-entry expiration.
type Cache interface {
	// Get returns the cached data and whether it was found and fresh.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases resources held by the cache.
	Close() error
}
