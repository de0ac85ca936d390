package ports

import "context"

// LocalCache is the durable key-value store for device-local state such as
// the settings blob. Values are opaque strings.
type LocalCache interface {
	// GetString returns the value for key; ok is false when the key is absent.
	GetString(ctx context.Context, key string) (value string, ok bool, err error)

	// SetString stores value under key, replacing any previous value.
	SetString(ctx context.Context, key, value string) error
}

// prefixedCache namespaces keys so one backend can hold many users.
type prefixedCache struct {
	inner  LocalCache
	prefix string
}

// NewPrefixedCache returns a LocalCache that stores every key under prefix.
func NewPrefixedCache(inner LocalCache, prefix string) LocalCache {
	return &prefixedCache{inner: inner, prefix: prefix}
}

func (c *prefixedCache) GetString(ctx context.Context, key string) (string, bool, error) {
	return c.inner.GetString(ctx, c.prefix+key)
}

func (c *prefixedCache) SetString(ctx context.Context, key, value string) error {
	return c.inner.SetString(ctx, c.prefix+key, value)
}
