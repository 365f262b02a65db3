package cache

import (
	"time"

	"github.com/ppiankov/moodbot/internal/model"
)

// LayeredCache combines a memory layer with a disk layer. Reads check memory
// first and promote disk hits; writes go to both.
type LayeredCache struct {
	memory Cache
	disk   Cache
}

// NewLayeredCache creates a new layered cache
func NewLayeredCache(memoryTTL time.Duration, diskDir string, diskTTL time.Duration) *LayeredCache {
	return &LayeredCache{
		memory: NewMemoryCache(memoryTTL, 10*time.Minute),
		disk:   NewDiskCache(diskDir, diskTTL),
	}
}

// Get retrieves a score set from the cache (checks memory first, then disk)
func (c *LayeredCache) Get(key string) ([]model.LabelScore, bool) {
	if scores, found := c.memory.Get(key); found {
		return scores, true
	}

	if scores, found := c.disk.Get(key); found {
		// Promote to memory cache
		_ = c.memory.Set(key, scores, 0)
		return scores, true
	}

	return nil, false
}

// Set stores a score set in both caches
func (c *LayeredCache) Set(key string, scores []model.LabelScore, ttl time.Duration) error {
	if err := c.memory.Set(key, scores, ttl); err != nil {
		return err
	}
	return c.disk.Set(key, scores, ttl)
}

// Delete removes an entry from both caches
func (c *LayeredCache) Delete(key string) error {
	_ = c.memory.Delete(key)
	return c.disk.Delete(key)
}

// Clear removes all entries from both caches
func (c *LayeredCache) Clear() error {
	_ = c.memory.Clear()
	return c.disk.Clear()
}
