package core

import "sync"

// ExistenceCache memoizes product-existence checks keyed by canonical name.
// It lives as long as its owner keeps the handle and is dropped wholesale when
// the catalog changes underneath it.
type ExistenceCache struct {
	mu      sync.RWMutex
	entries map[string]bool
}

func NewExistenceCache() *ExistenceCache {
	return &ExistenceCache{entries: make(map[string]bool)}
}

func (c *ExistenceCache) Get(name string) (bool, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	exists, ok := c.entries[name]
	return exists, ok
}

func (c *ExistenceCache) Put(name string, exists bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[name] = exists
}

func (c *ExistenceCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]bool)
}

func (c *ExistenceCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
