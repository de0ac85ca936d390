// Package postgres implements the record store on PostgreSQL with pgx.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Config holds connection pool settings.
type Config struct {
	DSN               string
	MaxConns          int32
	MinConns          int32
	MaxConnLifetime   time.Duration
	MaxConnIdleTime   time.Duration
	HealthCheckPeriod time.Duration
	ConnectTimeout    time.Duration
}

// Open creates a connection pool and verifies it with a ping.
func Open(ctx context.Context, cfg Config) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parsing database DSN: %w", err)
	}

	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}

	if cfg.MinConns > 0 {
		poolCfg.MinConns = cfg.MinConns
	}

	if cfg.MaxConnLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	}

	if cfg.MaxConnIdleTime > 0 {
		poolCfg.MaxConnIdleTime = cfg.MaxConnIdleTime
	}

	if cfg.HealthCheckPeriod > 0 {
		poolCfg.HealthCheckPeriod = cfg.HealthCheckPeriod
	}

	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	err = pool.Ping(ctx)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return pool, nil
}

// schema creates every table the record store serves.
const schema = `
CREATE TABLE IF NOT EXISTS quotes (
	id BIGSERIAL PRIMARY KEY,
	quote TEXT NOT NULL,
	author TEXT,
	category TEXT
);

CREATE INDEX IF NOT EXISTS quotes_category_idx ON quotes (category);

CREATE TABLE IF NOT EXISTS user_settings (
	user_id TEXT PRIMARY KEY,
	theme TEXT,
	accent TEXT,
	font_scale DOUBLE PRECISION,
	notify_time TEXT,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS user_favorites (
	user_id TEXT NOT NULL,
	quote_id BIGINT NOT NULL REFERENCES quotes (id) ON DELETE CASCADE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (user_id, quote_id)
);

CREATE TABLE IF NOT EXISTS collections (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	name TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS collections_user_idx ON collections (user_id, created_at DESC);

CREATE TABLE IF NOT EXISTS collection_quotes (
	collection_id TEXT NOT NULL REFERENCES collections (id) ON DELETE CASCADE,
	quote_id BIGINT NOT NULL REFERENCES quotes (id) ON DELETE CASCADE,
	user_id TEXT NOT NULL,
	PRIMARY KEY (collection_id, quote_id)
);

CREATE TABLE IF NOT EXISTS user_devices (
	user_id TEXT NOT NULL,
	token TEXT NOT NULL,
	platform TEXT,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (user_id, token)
);
`

// Migrate creates the tables if they do not exist.
func Migrate(ctx context.Context, db DB) error {
	_, err := db.Exec(ctx, schema)
	if err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}

	return nil
}
