// Package memory provides in-process implementations of the record store
// and local cache. They back the local profile and the test suites.
package memory

import (
	"cmp"
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/jsamuelsen/quotevault/internal/domain"
	"github.com/jsamuelsen/quotevault/internal/ports"
)

// uniqueKeys lists the columns that identify a row, per table.
var uniqueKeys = map[string][]string{
	ports.TableQuotes:           {"id"},
	ports.TableUserSettings:     {"user_id"},
	ports.TableUserFavorites:    {"user_id", "quote_id"},
	ports.TableCollections:      {"id"},
	ports.TableCollectionQuotes: {"collection_id", "quote_id"},
	ports.TableUserDevices:      {"user_id", "token"},
}

// RecordStore is a mutex-guarded ports.RecordStore.
type RecordStore struct {
	mu     sync.RWMutex
	tables map[string][]ports.Record
	nextID int64
}

var _ ports.RecordStore = (*RecordStore)(nil)

// NewRecordStore creates an empty store.
func NewRecordStore() *RecordStore {
	return &RecordStore{tables: make(map[string][]ports.Record)}
}

// SeedQuotes inserts quotes, assigning ids to those without one. It stops
// at the first quote that cannot be inserted.
func (s *RecordStore) SeedQuotes(quotes ...ports.Record) error {
	for i, q := range quotes {
		if _, err := s.InsertRow(context.Background(), ports.TableQuotes, q); err != nil {
			return fmt.Errorf("seeding quote %d: %w", i, err)
		}
	}

	return nil
}

// GetRow implements ports.RecordStore.
func (s *RecordStore) GetRow(_ context.Context, table string, filter ports.Filter) (ports.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rec := range s.tables[table] {
		if matches(rec, filter) {
			return maps.Clone(rec), nil
		}
	}

	return nil, nil //nolint:nilnil // absent rows are not an error
}

// InsertRow implements ports.RecordStore.
func (s *RecordStore) InsertRow(_ context.Context, table string, rec ports.Record) (ports.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec = normalizeRecord(rec)

	if table == ports.TableQuotes {
		if _, ok := rec.Int64("id"); !ok {
			s.nextID++
			rec["id"] = s.nextID
		} else if id, _ := rec.Int64("id"); id > s.nextID {
			s.nextID = id
		}
	}

	if _, ok := rec["created_at"]; !ok && table == ports.TableCollections {
		rec["created_at"] = time.Now().UTC()
	}

	if s.indexOfKeyLocked(table, rec) >= 0 {
		return nil, domain.NewConflictError(table, "duplicate key")
	}

	s.tables[table] = append(s.tables[table], rec)

	return maps.Clone(rec), nil
}

// UpsertRow implements ports.RecordStore. Without conflict columns the
// table's natural key is used.
func (s *RecordStore) UpsertRow(_ context.Context, table string, rec ports.Record, conflictColumns ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec = normalizeRecord(rec)

	keys := conflictColumns
	if len(keys) == 0 {
		keys = uniqueKeys[table]
	}

	for i, existing := range s.tables[table] {
		if sameKey(existing, rec, keys) {
			merged := maps.Clone(existing)
			maps.Copy(merged, rec)
			s.tables[table][i] = merged

			return nil
		}
	}

	s.tables[table] = append(s.tables[table], rec)

	return nil
}

// DeleteRow implements ports.RecordStore.
func (s *RecordStore) DeleteRow(_ context.Context, table string, filter ports.Filter) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tables[table] = slices.DeleteFunc(s.tables[table], func(rec ports.Record) bool {
		return matches(rec, filter)
	})

	return nil
}

// QueryRows implements ports.RecordStore.
func (s *RecordStore) QueryRows(_ context.Context, table string, q ports.Query) ([]ports.Record, error) {
	s.mu.RLock()
	var rows []ports.Record
	for _, rec := range s.tables[table] {
		if matches(rec, q.Filter) {
			rows = append(rows, maps.Clone(rec))
		}
	}
	s.mu.RUnlock()

	if len(q.Order) > 0 {
		slices.SortStableFunc(rows, func(a, b ports.Record) int {
			for _, o := range q.Order {
				c := compareValues(a[o.Column], b[o.Column])
				if o.Descending {
					c = -c
				}

				if c != 0 {
					return c
				}
			}

			return 0
		})
	}

	if q.Offset > 0 {
		if q.Offset >= len(rows) {
			return []ports.Record{}, nil
		}

		rows = rows[q.Offset:]
	}

	if q.Limit > 0 && len(rows) > q.Limit {
		rows = rows[:q.Limit]
	}

	if rows == nil {
		rows = []ports.Record{}
	}

	return rows, nil
}

// CountRows implements ports.RecordStore.
func (s *RecordStore) CountRows(_ context.Context, table string, filter ports.Filter) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	for _, rec := range s.tables[table] {
		if matches(rec, filter) {
			n++
		}
	}

	return n, nil
}

// Name implements ports.HealthChecker.
func (s *RecordStore) Name() string { return "record-store" }

// Check implements ports.HealthChecker.
func (s *RecordStore) Check(context.Context) error { return nil }

func (s *RecordStore) indexOfKeyLocked(table string, rec ports.Record) int {
	keys := uniqueKeys[table]
	if len(keys) == 0 {
		return -1
	}

	return slices.IndexFunc(s.tables[table], func(existing ports.Record) bool {
		return sameKey(existing, rec, keys)
	})
}

func sameKey(a, b ports.Record, keys []string) bool {
	if len(keys) == 0 {
		return false
	}

	for _, k := range keys {
		if compareValues(a[k], b[k]) != 0 {
			return false
		}
	}

	return true
}

func matches(rec ports.Record, filter ports.Filter) bool {
	for _, t := range filter {
		switch t.Kind {
		case ports.TermEq:
			if compareValues(rec[t.Column], normalizeValue(t.Value)) != 0 {
				return false
			}
		case ports.TermIn:
			found := slices.ContainsFunc(t.Values, func(v any) bool {
				return compareValues(rec[t.Column], normalizeValue(v)) == 0
			})
			if !found {
				return false
			}
		case ports.TermAnyILike:
			needle := strings.ToLower(fmt.Sprint(t.Value))
			hit := slices.ContainsFunc(t.Columns, func(col string) bool {
				return strings.Contains(strings.ToLower(rec.String(col)), needle)
			})
			if !hit {
				return false
			}
		default:
			return false
		}
	}

	return true
}

func normalizeRecord(rec ports.Record) ports.Record {
	out := make(ports.Record, len(rec))
	for k, v := range rec {
		out[k] = normalizeValue(v)
	}

	return out
}

// normalizeValue widens integers to int64 so equality does not depend on
// the caller's integer type.
func normalizeValue(v any) any {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int32:
		return int64(n)
	case float32:
		return float64(n)
	case *string:
		if n == nil {
			return nil
		}

		return *n
	default:
		return v
	}
}

func compareValues(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}

	switch av := a.(type) {
	case int64:
		switch bv := b.(type) {
		case int64:
			return cmp.Compare(av, bv)
		case float64:
			return cmp.Compare(float64(av), bv)
		}
	case float64:
		switch bv := b.(type) {
		case float64:
			return cmp.Compare(av, bv)
		case int64:
			return cmp.Compare(av, float64(bv))
		}
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			return av.Compare(bv)
		}
	case bool:
		if bv, ok := b.(bool); ok {
			switch {
			case av == bv:
				return 0
			case !av:
				return -1
			default:
				return 1
			}
		}
	}

	return cmp.Compare(fmt.Sprint(a), fmt.Sprint(b))
}
