// Package redis provides a shared ports.LocalCache backed by Redis.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jsamuelsen/quotevault/internal/domain"
	"github.com/jsamuelsen/quotevault/internal/ports"
)

// Config holds Redis connection settings.
type Config struct {
	Addr         string
	Password     string
	DB           int
	KeyPrefix    string
	TTL          time.Duration
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	PoolSize     int
	MaxRetries   int
}

// Client is the subset of go-redis commands the cache issues.
type Client interface {
	Get(ctx context.Context, key string) *goredis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *goredis.StatusCmd
	Ping(ctx context.Context) *goredis.StatusCmd
}

// Connect dials Redis and verifies the connection.
func Connect(ctx context.Context, cfg Config) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  orDefault(cfg.DialTimeout, 10*time.Second),
		ReadTimeout:  orDefault(cfg.ReadTimeout, 30*time.Second),
		WriteTimeout: orDefault(cfg.WriteTimeout, 30*time.Second),
		PoolSize:     cfg.PoolSize,
		PoolTimeout:  30 * time.Second,
		MaxRetries:   cfg.MaxRetries,
	})

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	err := client.Ping(ctx).Err()
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}

	return client, nil
}

// Cache stores opaque strings in Redis under a fixed key prefix.
// A zero TTL keeps keys forever.
type Cache struct {
	client Client
	prefix string
	ttl    time.Duration
}

var (
	_ ports.LocalCache    = (*Cache)(nil)
	_ ports.HealthChecker = (*Cache)(nil)
)

// NewCache wraps client.
func NewCache(client Client, prefix string, ttl time.Duration) *Cache {
	return &Cache{client: client, prefix: prefix, ttl: ttl}
}

// GetString implements ports.LocalCache.
func (c *Cache) GetString(ctx context.Context, key string) (string, bool, error) {
	v, err := c.client.Get(ctx, c.prefix+key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}

	if err != nil {
		return "", false, domain.NewUnavailableError("redis", err.Error())
	}

	return v, true, nil
}

// SetString implements ports.LocalCache.
func (c *Cache) SetString(ctx context.Context, key, value string) error {
	err := c.client.Set(ctx, c.prefix+key, value, c.ttl).Err()
	if err != nil {
		return domain.NewUnavailableError("redis", err.Error())
	}

	return nil
}

// Name implements ports.HealthChecker.
func (c *Cache) Name() string { return "redis" }

// Check implements ports.HealthChecker.
func (c *Cache) Check(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func orDefault(d, fallback time.Duration) time.Duration {
	if d <= 0 {
		return fallback
	}

	return d
}
