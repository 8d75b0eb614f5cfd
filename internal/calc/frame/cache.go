package frame

import (
	"sync"

	"Pergola/internal/calc/params"
)

const DefaultCacheSize = 256

// Cache memoizes Generate by parameter value. Slices it returns are shared
// between callers and must not be modified.
type Cache struct {
	mu      sync.Mutex
	max     int
	entries map[params.Set][]Beam
	hits    uint64
	misses  uint64
}

func NewCache(max int) *Cache {
	if max <= 0 {
		max = DefaultCacheSize
	}
	return &Cache{max: max, entries: make(map[params.Set][]Beam)}
}

// Generate returns the members for p, generating them on the first request.
func (c *Cache) Generate(p params.Set) []Beam {
	c.mu.Lock()
	if beams, ok := c.entries[p]; ok {
		c.hits++
		c.mu.Unlock()
		return beams
	}
	c.misses++
	c.mu.Unlock()

	beams := Generate(p)

	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.entries) >= c.max {
		c.entries = make(map[params.Set][]Beam)
	}
	c.entries[p] = beams
	return beams
}

// Invalidate drops every cached result.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.entries = make(map[params.Set][]Beam)
	c.mu.Unlock()
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats reports cache hits and misses since creation.
func (c *Cache) Stats() (hits, misses uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
