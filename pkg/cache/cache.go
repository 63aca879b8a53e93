// Package cache stores small byte values under string keys.
//
// The CLI keeps the digest of the last successful publish per sink and
// workspace in a [FileCache], so an unchanged model is not uploaded twice.
// The receiver in pkg/server keeps received workspaces in a [MemoryCache].
// [NullCache] disables caching.
package cache

import (
	"context"
	"time"
)

// Cache is a key/value store with optional expiry.
type Cache interface {
	// Get returns the value for key and whether it was found.
	// Expired entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// Keyer builds cache keys.
type Keyer interface {
	// PublishKey addresses the digest of the last publish of a workspace
	// to a sink ("http", "file", ...) at target (URL, directory, prefix).
	PublishKey(sink, target, workspaceID string) string

	// WorkspaceKey addresses a stored workspace document.
	WorkspaceKey(workspaceID string) string
}

// DefaultKeyer produces "publish:<hash>" and "workspace:<id>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default key scheme.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

func (DefaultKeyer) PublishKey(sink, target, workspaceID string) string {
	return hashKey("publish", sink, target, workspaceID)
}

func (DefaultKeyer) WorkspaceKey(workspaceID string) string {
	return "workspace:" + workspaceID
}

// keyType returns the namespace of a key for observability hooks.
func keyType(key string) string {
	for i := 0; i < len(key); i++ {
		if key[i] == ':' {
			return key[:i]
		}
	}
	return key
}
