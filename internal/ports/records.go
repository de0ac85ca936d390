// Package ports defines the interfaces the application layer depends on.
// Adapters (Postgres, PostgREST, Redis, SQLite, Firebase, cron) implement
// them and are wired together in cmd/service.
//
// Port conventions:
//   - Context is always the first parameter
//   - Adapters translate infrastructure failures into domain errors
//   - Absence is not an error: lookups return nil values with a nil error
package ports

import (
	"context"
)

// Table names in the record store.
const (
	TableQuotes           = "quotes"
	TableUserSettings     = "user_settings"
	TableUserFavorites    = "user_favorites"
	TableCollections      = "collections"
	TableCollectionQuotes = "collection_quotes"
	TableUserDevices      = "user_devices"
)

// Record is one row of loosely typed column values.
// Integers decode as int64 and timestamps as time.Time where the backend
// allows it; adapters document any deviation.
type Record map[string]any

// TermKind selects how a filter Term matches.
type TermKind int

// Filter term kinds.
const (
	// TermEq requires Column to equal Value.
	TermEq TermKind = iota + 1

	// TermIn requires Column to equal one of Values.
	TermIn

	// TermAnyILike requires at least one of Columns to contain Value as a
	// case-insensitive substring.
	TermAnyILike
)

// Term is a single filter predicate.
type Term struct {
	Kind    TermKind
	Column  string
	Columns []string
	Value   any
	Values  []any
}

// Filter is a conjunction of terms. The zero Filter matches every row.
type Filter []Term

// Eq appends an equality term.
func (f Filter) Eq(column string, value any) Filter {
	return append(f, Term{Kind: TermEq, Column: column, Value: value})
}

// In appends a membership term.
func (f Filter) In(column string, values ...any) Filter {
	return append(f, Term{Kind: TermIn, Column: column, Values: values})
}

// AnyILike appends a case-insensitive substring match across columns.
func (f Filter) AnyILike(value string, columns ...string) Filter {
	return append(f, Term{Kind: TermAnyILike, Columns: columns, Value: value})
}

// Where starts a filter with an equality term.
func Where(column string, value any) Filter {
	return Filter{}.Eq(column, value)
}

// Order sorts query results by a single column.
type Order struct {
	Column     string
	Descending bool
}

// Query describes a filtered, ordered, offset-ranged read.
// A Limit of zero means no limit.
type Query struct {
	Filter Filter
	Order  []Order
	Offset int
	Limit  int
}

// RecordStore is the backend table store. Implementations must treat
// table and column names as identifiers, never as SQL text.
type RecordStore interface {
	// GetRow returns the first row matching filter, or nil if none.
	GetRow(ctx context.Context, table string, filter Filter) (Record, error)

	// InsertRow inserts rec and returns the stored row including generated columns.
	// Returns domain.ErrConflict on a unique violation.
	InsertRow(ctx context.Context, table string, rec Record) (Record, error)

	// UpsertRow inserts rec or updates the row that collides on conflictColumns.
	UpsertRow(ctx context.Context, table string, rec Record, conflictColumns ...string) error

	// DeleteRow removes every row matching filter. Deleting nothing is not an error.
	DeleteRow(ctx context.Context, table string, filter Filter) error

	// QueryRows returns the rows selected by q.
	QueryRows(ctx context.Context, table string, q Query) ([]Record, error)

	// CountRows counts rows matching filter.
	CountRows(ctx context.Context, table string, filter Filter) (int64, error)
}
