package analytics

import (
	"sync"
	"time"
)

type cacheEntry struct {
	stats       []Stats
	lastRefresh time.Time
}

// statsCache holds aggregated stats per environment name ("" = all)
type statsCache struct {
	mu      sync.RWMutex
	entries map[string]*cacheEntry
	ttl     time.Duration
}

func newStatsCache(ttl time.Duration) *statsCache {
	return &statsCache{
		entries: make(map[string]*cacheEntry),
		ttl:     ttl,
	}
}

// get returns cached stats if present and fresh
func (c *statsCache) get(environmentName string) ([]Stats, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.entries[environmentName]
	if !exists || time.Since(entry.lastRefresh) > c.ttl {
		return nil, false
	}
	return entry.stats, true
}

func (c *statsCache) set(environmentName string, stats []Stats) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[environmentName] = &cacheEntry{
		stats:       stats,
		lastRefresh: time.Now(),
	}
}

// invalidate drops everything; any write can change every aggregate
func (c *statsCache) invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*cacheEntry)
}
