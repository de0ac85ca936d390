package memory

import (
	"context"
	"sync"

	"github.com/jsamuelsen/quotevault/internal/ports"
)

// Cache is a map-backed ports.LocalCache.
type Cache struct {
	mu     sync.RWMutex
	values map[string]string
}

var _ ports.LocalCache = (*Cache)(nil)

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{values: make(map[string]string)}
}

// GetString implements ports.LocalCache.
func (c *Cache) GetString(_ context.Context, key string) (string, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	v, ok := c.values[key]

	return v, ok, nil
}

// SetString implements ports.LocalCache.
func (c *Cache) SetString(_ context.Context, key, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.values[key] = value

	return nil
}

// Name implements ports.HealthChecker.
func (c *Cache) Name() string { return "cache" }

// Check implements ports.HealthChecker.
func (c *Cache) Check(context.Context) error { return nil }
