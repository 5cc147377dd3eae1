package core

import "sync"

// MappingCache memoizes resolutions for the lifetime of one batch run. It is
// handed to workers explicitly rather than living as a process singleton, so
// two runs never see each other's entries. Unbounded: a run touches a finite
// set of ingredient strings.
type MappingCache struct {
	mu      sync.RWMutex
	entries map[string]Resolution
}

func NewMappingCache() *MappingCache {
	return &MappingCache{entries: make(map[string]Resolution)}
}

func (c *MappingCache) Get(name string) (Resolution, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	res, ok := c.entries[name]
	return res, ok
}

func (c *MappingCache) Put(name string, res Resolution) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[name] = res
}

func (c *MappingCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
