// Package bootstrap builds the adapters selected by configuration. The
// service and vaultctl share it so both talk to the same backends.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jsamuelsen/quotevault/internal/adapters/clients"
	"github.com/jsamuelsen/quotevault/internal/adapters/clients/acl"
	"github.com/jsamuelsen/quotevault/internal/adapters/memory"
	"github.com/jsamuelsen/quotevault/internal/adapters/postgres"
	"github.com/jsamuelsen/quotevault/internal/adapters/redis"
	"github.com/jsamuelsen/quotevault/internal/adapters/sqlite"
	"github.com/jsamuelsen/quotevault/internal/platform/config"
	"github.com/jsamuelsen/quotevault/internal/ports"
)

// RecordStore is a record store that can report its health.
type RecordStore interface {
	ports.RecordStore
	ports.HealthChecker
}

// Cache is a local cache that can report its health.
type Cache interface {
	ports.LocalCache
	ports.HealthChecker
}

// CloseFunc releases a backend. It is never nil.
type CloseFunc func()

func noopClose() {}

// OpenRecordStore opens the store named by cfg.Store.Driver. The memory
// store is seeded from cfg.Store.SeedFile when one is set.
func OpenRecordStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (RecordStore, CloseFunc, error) {
	switch cfg.Store.Driver {
	case "", "memory":
		store := memory.NewRecordStore()

		if cfg.Store.SeedFile != "" {
			quotes, err := LoadSeedFile(cfg.Store.SeedFile)
			if err != nil {
				return nil, noopClose, err
			}

			if err := store.SeedQuotes(quotes...); err != nil {
				return nil, noopClose, err
			}

			logger.InfoContext(ctx, "seeded memory store",
				slog.String("file", cfg.Store.SeedFile),
				slog.Int("quotes", len(quotes)),
			)
		}

		return store, noopClose, nil

	case "postgres":
		pool, err := postgres.Open(ctx, postgres.Config{
			DSN:               cfg.Database.DSN,
			MaxConns:          cfg.Database.MaxConns,
			MinConns:          cfg.Database.MinConns,
			MaxConnLifetime:   cfg.Database.MaxConnLifetime,
			MaxConnIdleTime:   cfg.Database.MaxConnIdleTime,
			HealthCheckPeriod: cfg.Database.HealthCheckPeriod,
		})
		if err != nil {
			return nil, noopClose, err
		}

		if cfg.Database.Migrate {
			if err := postgres.Migrate(ctx, pool); err != nil {
				pool.Close()
				return nil, noopClose, err
			}

			logger.InfoContext(ctx, "database schema is up to date")
		}

		return postgres.NewStore(pool, logger), pool.Close, nil

	case "rest":
		client, err := clients.New(&clients.Config{
			BaseURL:     cfg.Rest.BaseURL,
			ServiceName: cfg.Rest.ServiceName,
			Timeout:     cfg.Client.Timeout,
			Retry:       cfg.Client.Retry,
			Circuit:     cfg.Client.CircuitBreaker,
			Transport:   cfg.Client.Transport,
			Headers:     restHeaders(cfg.Rest.APIKey),
			Logger:      logger,
		})
		if err != nil {
			return nil, noopClose, fmt.Errorf("creating rest client: %w", err)
		}

		return acl.NewRecordStore(client, acl.StoreConfig{
			ServiceName: cfg.Rest.ServiceName,
			Schema:      cfg.Rest.Schema,
			Logger:      logger,
		}), noopClose, nil

	default:
		return nil, noopClose, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

// restHeaders carries the API key both as the gateway key and as the bearer
// token PostgREST uses to pick a role.
func restHeaders(apiKey string) map[string]string {
	if apiKey == "" {
		return nil
	}

	return map[string]string{
		"apikey":        apiKey,
		"Authorization": "Bearer " + apiKey,
	}
}

// OpenCache opens the cache named by cfg.Cache.Driver.
func OpenCache(ctx context.Context, cfg *config.Config) (Cache, CloseFunc, error) {
	switch cfg.Cache.Driver {
	case "", "memory":
		return memory.NewCache(), noopClose, nil

	case "redis":
		client, err := redis.Connect(ctx, redis.Config{
			Addr:       cfg.Redis.Addr,
			Password:   cfg.Redis.Password,
			DB:         cfg.Redis.DB,
			KeyPrefix:  cfg.Redis.KeyPrefix,
			TTL:        cfg.Redis.TTL,
			PoolSize:   cfg.Redis.PoolSize,
			MaxRetries: cfg.Redis.MaxRetries,
		})
		if err != nil {
			return nil, noopClose, err
		}

		return redis.NewCache(client, cfg.Redis.KeyPrefix, cfg.Redis.TTL), func() { _ = client.Close() }, nil

	case "sqlite":
		if err := os.MkdirAll(filepath.Dir(cfg.SQLite.Path), 0o750); err != nil {
			return nil, noopClose, fmt.Errorf("creating sqlite directory: %w", err)
		}

		cache, err := sqlite.Open(ctx, cfg.SQLite.Path)
		if err != nil {
			return nil, noopClose, err
		}

		return cache, func() { _ = cache.Close() }, nil

	default:
		return nil, noopClose, fmt.Errorf("unknown cache driver %q", cfg.Cache.Driver)
	}
}
