package postgres

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotevault/internal/domain"
	"github.com/jsamuelsen/quotevault/internal/ports"
)

// fakeDB records the last statement and fails with err.
type fakeDB struct {
	err     error
	lastSQL string
	args    []any
}

func (f *fakeDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.lastSQL, f.args = sql, args
	return pgconn.CommandTag{}, f.err
}

func (f *fakeDB) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	f.lastSQL, f.args = sql, args
	return nil, f.err
}

func (f *fakeDB) QueryRow(context.Context, string, ...any) pgx.Row { return nil }

func (f *fakeDB) Ping(context.Context) error { return f.err }

func newTestStore(db DB) *Store {
	return NewStore(db, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestStore_UniqueViolationIsConflict(t *testing.T) {
	db := &fakeDB{err: &pgconn.PgError{Code: uniqueViolation, ConstraintName: "collections_pkey"}}
	store := newTestStore(db)

	err := store.UpsertRow(context.Background(), ports.TableCollections, ports.Record{"id": "c1"}, "id")

	require.Error(t, err)
	assert.True(t, domain.IsConflict(err))
	assert.Contains(t, db.lastSQL, `ON CONFLICT ("id") DO NOTHING`)
}

func TestStore_DriverFailureIsUnavailable(t *testing.T) {
	store := newTestStore(&fakeDB{err: errors.New("connection reset")})

	_, err := store.QueryRows(context.Background(), ports.TableQuotes, ports.Query{Limit: 15})

	require.Error(t, err)
	assert.True(t, domain.IsUnavailable(err))
}

func TestStore_ContextErrorsPassThrough(t *testing.T) {
	store := newTestStore(&fakeDB{err: context.Canceled})

	err := store.DeleteRow(context.Background(), ports.TableUserFavorites, ports.Where("user_id", "u1"))

	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, domain.IsUnavailable(err))
}

func TestStore_UpsertNeedsConflictColumns(t *testing.T) {
	db := &fakeDB{}
	store := newTestStore(db)

	err := store.UpsertRow(context.Background(), ports.TableUserSettings, ports.Record{"user_id": "u1"})

	assert.True(t, domain.IsValidation(err))
	assert.Empty(t, db.lastSQL)
}

func TestStore_Check(t *testing.T) {
	assert.Equal(t, "postgres", newTestStore(&fakeDB{}).Name())
	assert.NoError(t, newTestStore(&fakeDB{}).Check(context.Background()))
	assert.Error(t, newTestStore(&fakeDB{err: errors.New("down")}).Check(context.Background()))
}

func TestMigrate(t *testing.T) {
	db := &fakeDB{}
	require.NoError(t, Migrate(context.Background(), db))
	assert.Contains(t, db.lastSQL, "CREATE TABLE IF NOT EXISTS user_settings")

	db.err = errors.New("permission denied")
	assert.Error(t, Migrate(context.Background(), db))
}
