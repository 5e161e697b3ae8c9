package cache

import (
	"roadtrip-planner-service/internal/domain"
	"sync"
)

// MemoryRouteCache is a process-lifetime route cache.
// Concurrent writers of the same key simply overwrite each other; both hold
// the same deterministic route.
type MemoryRouteCache struct {
	mu     sync.RWMutex
	routes map[string]domain.RouteResult
	hits   int
	misses int
}

func NewMemoryRouteCache() *MemoryRouteCache {
	return &MemoryRouteCache{routes: make(map[string]domain.RouteResult)}
}

func (c *MemoryRouteCache) Get(key string) (domain.RouteResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	r, ok := c.routes[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return r, ok
}

func (c *MemoryRouteCache) Put(key string, r domain.RouteResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.routes[key] = r
}

// Stats returns the hit and miss counts since creation.
func (c *MemoryRouteCache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}

func (c *MemoryRouteCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.routes)
}
