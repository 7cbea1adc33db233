package session

import (
	"context"
	"sync"

	"github.com/cypher125/siwes/internal/domain"
)

// MemoryCache is an in-process Cache for tests and library consumers
// that have no Redis.
type MemoryCache struct {
	mu   sync.RWMutex
	user *domain.Identity
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{}
}

func (c *MemoryCache) Get(context.Context) (*domain.Identity, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.user == nil {
		return nil, nil
	}
	u := *c.user
	return &u, nil
}

func (c *MemoryCache) Set(_ context.Context, user *domain.Identity) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	u := *user
	c.user = &u
	return nil
}

func (c *MemoryCache) Remove(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.user = nil
	return nil
}
