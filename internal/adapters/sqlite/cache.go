// Package sqlite provides a file-backed ports.LocalCache for single-node
// deployments.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/jsamuelsen/quotevault/internal/domain"
	"github.com/jsamuelsen/quotevault/internal/ports"
)

const createTablesSQL = `
CREATE TABLE IF NOT EXISTS settings (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL,
	updated_at INTEGER NOT NULL
);
`

// Cache persists key-value pairs in a SQLite settings table.
type Cache struct {
	db  *sql.DB
	now func() time.Time
}

var (
	_ ports.LocalCache    = (*Cache)(nil)
	_ ports.HealthChecker = (*Cache)(nil)
)

// Open opens the database at path, enables WAL mode and creates the table.
func Open(ctx context.Context, path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open database: %w", err)
	}

	_, err = db.ExecContext(ctx, "PRAGMA journal_mode=WAL")
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: set WAL mode: %w", err)
	}

	_, err = db.ExecContext(ctx, createTablesSQL)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: create tables: %w", err)
	}

	return &Cache{db: db, now: time.Now}, nil
}

// Close closes the database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// GetString implements ports.LocalCache.
func (c *Cache) GetString(ctx context.Context, key string) (string, bool, error) {
	var value string

	err := c.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}

	if err != nil {
		return "", false, domain.NewUnavailableError("sqlite", fmt.Sprintf("get %q: %v", key, err))
	}

	return value, true, nil
}

// SetString implements ports.LocalCache.
func (c *Cache) SetString(ctx context.Context, key, value string) error {
	_, err := c.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO settings (key, value, updated_at) VALUES (?, ?, ?)`,
		key, value, c.now().Unix(),
	)
	if err != nil {
		return domain.NewUnavailableError("sqlite", fmt.Sprintf("set %q: %v", key, err))
	}

	return nil
}

// Name implements ports.HealthChecker.
func (c *Cache) Name() string { return "sqlite" }

// Check implements ports.HealthChecker.
func (c *Cache) Check(ctx context.Context) error {
	return c.db.PingContext(ctx)
}
