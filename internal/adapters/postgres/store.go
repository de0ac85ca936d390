package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jsamuelsen/quotevault/internal/domain"
	"github.com/jsamuelsen/quotevault/internal/ports"
)

// uniqueViolation is the SQLSTATE for unique_violation.
const uniqueViolation = "23505"

// DB is the subset of *pgxpool.Pool the store uses.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
}

// Store implements ports.RecordStore on PostgreSQL.
type Store struct {
	db     DB
	logger *slog.Logger
}

var (
	_ ports.RecordStore   = (*Store)(nil)
	_ ports.HealthChecker = (*Store)(nil)
)

// NewStore wraps db. A nil logger falls back to slog.Default.
func NewStore(db DB, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}

	return &Store{db: db, logger: logger.With(slog.String("component", "postgres"))}
}

// GetRow implements ports.RecordStore.
func (s *Store) GetRow(ctx context.Context, table string, filter ports.Filter) (ports.Record, error) {
	rows, err := s.QueryRows(ctx, table, ports.Query{Filter: filter, Limit: 1})
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, nil
	}

	return rows[0], nil
}

// InsertRow implements ports.RecordStore.
func (s *Store) InsertRow(ctx context.Context, table string, rec ports.Record) (ports.Record, error) {
	st, err := buildInsert(table, rec, nil, true)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(ctx, st.sql(), st.args...)
	if err != nil {
		return nil, s.translate(table, "insert", err)
	}

	out, err := pgx.CollectExactlyOneRow(rows, pgx.RowToMap)
	if err != nil {
		return nil, s.translate(table, "insert", err)
	}

	return ports.Record(out), nil
}

// UpsertRow implements ports.RecordStore.
func (s *Store) UpsertRow(ctx context.Context, table string, rec ports.Record, conflictColumns ...string) error {
	if len(conflictColumns) == 0 {
		return domain.NewValidationError("conflictColumns", "upsert needs at least one conflict column")
	}

	st, err := buildInsert(table, rec, conflictColumns, false)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(ctx, st.sql(), st.args...)
	if err != nil {
		return s.translate(table, "upsert", err)
	}

	return nil
}

// DeleteRow implements ports.RecordStore.
func (s *Store) DeleteRow(ctx context.Context, table string, filter ports.Filter) error {
	st, err := buildDelete(table, filter)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(ctx, st.sql(), st.args...)
	if err != nil {
		return s.translate(table, "delete", err)
	}

	return nil
}

// QueryRows implements ports.RecordStore.
func (s *Store) QueryRows(ctx context.Context, table string, q ports.Query) ([]ports.Record, error) {
	st, err := buildSelect(table, q)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(ctx, st.sql(), st.args...)
	if err != nil {
		return nil, s.translate(table, "query", err)
	}

	maps, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, s.translate(table, "query", err)
	}

	out := make([]ports.Record, len(maps))
	for i, m := range maps {
		out[i] = ports.Record(m)
	}

	return out, nil
}

// CountRows implements ports.RecordStore.
func (s *Store) CountRows(ctx context.Context, table string, filter ports.Filter) (int64, error) {
	st, err := buildCount(table, filter)
	if err != nil {
		return 0, err
	}

	var n int64

	err = s.db.QueryRow(ctx, st.sql(), st.args...).Scan(&n)
	if err != nil {
		return 0, s.translate(table, "count", err)
	}

	return n, nil
}

// Name implements ports.HealthChecker.
func (s *Store) Name() string { return "postgres" }

// Check implements ports.HealthChecker.
func (s *Store) Check(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *Store) translate(table, op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return domain.NewConflictErrorWithDetails(table, "duplicate key", pgErr.ConstraintName)
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s %s: %w", op, table, err)
	}

	s.logger.Error("database operation failed",
		slog.String("op", op),
		slog.String("table", table),
		slog.Any("error", err),
	)

	return fmt.Errorf("%s %s: %w", op, table, domain.NewUnavailableError("postgres", err.Error()))
}
