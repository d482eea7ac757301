// Package cache provides content-addressed caching for pipeline stages.
//
// Boundary geometry, sampled scenes, and rendered artifacts are each cached
// under keys derived from their inputs, so repeated runs with identical
// parameters skip the expensive stages entirely.
package cache

import (
	"context"
	"time"
)

// Default TTLs per stage. Boundary files change rarely, so their parsed
// geometry is kept longest. Artifacts are cheap to regenerate from a scene.
const (
	// TTLBoundary is the lifetime of parsed boundary geometry.
	TTLBoundary = 30 * 24 * time.Hour

	// TTLScene is the lifetime of a sampled scene.
	TTLScene = 7 * 24 * time.Hour

	// TTLArtifact is the lifetime of rendered artifacts.
	TTLArtifact = 24 * time.Hour
)

// Cache is the storage interface used by the pipeline runner.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the
	// key was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A zero TTL means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}
