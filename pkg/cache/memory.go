package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/matzehuels/archmodel/pkg/observability"
)

// MemoryCache is an in-process cache safe for concurrent use.
type MemoryCache struct {
	store *gocache.Cache
}

// NewMemoryCache creates a memory cache that purges expired entries every
// cleanup interval. A zero interval never purges; expired entries are still
// reported as misses.
func NewMemoryCache(cleanup time.Duration) *MemoryCache {
	return &MemoryCache{store: gocache.New(gocache.NoExpiration, cleanup)}
}

func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	v, ok := c.store.Get(key)
	if !ok {
		observability.Cache().OnCacheMiss(ctx, keyType(key))
		return nil, false, nil
	}
	observability.Cache().OnCacheHit(ctx, keyType(key))
	return v.([]byte), true, nil
}

func (c *MemoryCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	// Copy so later writes to data do not leak into the cache.
	c.store.Set(key, append([]byte(nil), data...), ttl)
	observability.Cache().OnCacheSet(ctx, keyType(key), len(data))
	return nil
}

// Add stores data under key only if key is absent or expired, and reports
// whether it did. Concurrent Adds of one key store it once.
func (c *MemoryCache) Add(ctx context.Context, key string, data []byte, ttl time.Duration) bool {
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	if err := c.store.Add(key, append([]byte(nil), data...), ttl); err != nil {
		observability.Cache().OnCacheHit(ctx, keyType(key))
		return false
	}
	observability.Cache().OnCacheSet(ctx, keyType(key), len(data))
	return true
}

func (c *MemoryCache) Delete(_ context.Context, key string) error {
	c.store.Delete(key)
	return nil
}

// Len returns the number of entries, including expired ones not yet purged.
func (c *MemoryCache) Len() int {
	return c.store.ItemCount()
}

func (c *MemoryCache) Close() error {
	c.store.Flush()
	return nil
}

var _ Cache = (*MemoryCache)(nil)
