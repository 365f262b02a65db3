package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/ppiankov/moodbot/internal/model"
)

// MemoryCache implements in-memory caching with expiration
type MemoryCache struct {
	cache *gocache.Cache
}

// NewMemoryCache creates a new memory cache
func NewMemoryCache(defaultTTL time.Duration, cleanupInterval time.Duration) *MemoryCache {
	return &MemoryCache{
		cache: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Get retrieves a score set from the cache
func (c *MemoryCache) Get(key string) ([]model.LabelScore, bool) {
	if val, found := c.cache.Get(key); found {
		if scores, ok := val.([]model.LabelScore); ok {
			return scores, true
		}
	}
	return nil, false
}

// Set stores a score set in the cache with the given TTL
func (c *MemoryCache) Set(key string, scores []model.LabelScore, ttl time.Duration) error {
	c.cache.Set(key, scores, ttl)
	return nil
}

// Delete removes an entry from the cache
func (c *MemoryCache) Delete(key string) error {
	c.cache.Delete(key)
	return nil
}

// Clear removes all entries from the cache
func (c *MemoryCache) Clear() error {
	c.cache.Flush()
	return nil
}
