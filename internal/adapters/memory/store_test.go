package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotevault/internal/domain"
	"github.com/jsamuelsen/quotevault/internal/ports"
)

func seeded(t *testing.T) *RecordStore {
	t.Helper()

	s := NewRecordStore()
	require.NoError(t, s.SeedQuotes(
		ports.Record{"quote": "Hope is a waking dream.", "author": "Aristotle", "category": "Wisdom"},
		ports.Record{"quote": "Love all, trust a few.", "author": "Shakespeare", "category": "Love"},
		ports.Record{"quote": "Keep going.", "author": "Bob Hope", "category": "Motivation"},
		ports.Record{"quote": "Nothing to see here.", "author": nil, "category": nil},
	))

	return s
}

func TestRecordStore_InsertAssignsQuoteIDs(t *testing.T) {
	s := seeded(t)

	rec, err := s.InsertRow(context.Background(), ports.TableQuotes, ports.Record{"quote": "New"})
	require.NoError(t, err)

	id, ok := rec.Int64("id")
	require.True(t, ok)
	assert.Equal(t, int64(5), id)
}

func TestRecordStore_InsertConflict(t *testing.T) {
	s := NewRecordStore()
	ctx := context.Background()

	_, err := s.InsertRow(ctx, ports.TableUserFavorites, ports.Record{"user_id": "u1", "quote_id": 1})
	require.NoError(t, err)

	_, err = s.InsertRow(ctx, ports.TableUserFavorites, ports.Record{"user_id": "u1", "quote_id": int64(1)})
	require.ErrorIs(t, err, domain.ErrConflict)
}

func TestRecordStore_QueryRows(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		query    ports.Query
		expected []int64
	}{
		{
			name:     "order id desc",
			query:    ports.Query{Order: []ports.Order{{Column: "id", Descending: true}}},
			expected: []int64{4, 3, 2, 1},
		},
		{
			name: "category equality",
			query: ports.Query{
				Filter: ports.Where("category", "Love"),
			},
			expected: []int64{2},
		},
		{
			name: "search matches quote or author",
			query: ports.Query{
				Filter: ports.Filter{}.AnyILike("HOPE", "quote", "author"),
				Order:  []ports.Order{{Column: "id"}},
			},
			expected: []int64{1, 3},
		},
		{
			name: "in with offset and limit",
			query: ports.Query{
				Filter: ports.Filter{}.In("id", int64(1), int64(2), int64(4)),
				Order:  []ports.Order{{Column: "id"}},
				Offset: 1,
				Limit:  1,
			},
			expected: []int64{2},
		},
		{
			name:     "offset past end",
			query:    ports.Query{Offset: 10},
			expected: []int64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := s.QueryRows(ctx, ports.TableQuotes, tt.query)
			require.NoError(t, err)

			ids := make([]int64, 0, len(rows))
			for _, r := range rows {
				id, _ := r.Int64("id")
				ids = append(ids, id)
			}

			assert.Equal(t, tt.expected, ids)
		})
	}
}

func TestRecordStore_UpsertMergesOnKey(t *testing.T) {
	s := NewRecordStore()
	ctx := context.Background()

	require.NoError(t, s.UpsertRow(ctx, ports.TableUserSettings,
		ports.Record{"user_id": "u1", "theme": "dark", "accent": "#111111"}, "user_id"))
	require.NoError(t, s.UpsertRow(ctx, ports.TableUserSettings,
		ports.Record{"user_id": "u1", "theme": "light"}, "user_id"))

	n, err := s.CountRows(ctx, ports.TableUserSettings, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	rec, err := s.GetRow(ctx, ports.TableUserSettings, ports.Where("user_id", "u1"))
	require.NoError(t, err)
	assert.Equal(t, "light", rec.String("theme"))
	assert.Equal(t, "#111111", rec.String("accent"))
}

func TestRecordStore_GetRowMissing(t *testing.T) {
	rec, err := NewRecordStore().GetRow(context.Background(), ports.TableUserSettings, ports.Where("user_id", "x"))
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestRecordStore_DeleteRow(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	require.NoError(t, s.DeleteRow(ctx, ports.TableQuotes, ports.Where("category", "Love")))
	require.NoError(t, s.DeleteRow(ctx, ports.TableQuotes, ports.Where("category", "Nope")))

	n, err := s.CountRows(ctx, ports.TableQuotes, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestRecordStore_ReturnsCopies(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	rec, err := s.GetRow(ctx, ports.TableQuotes, ports.Where("id", int64(1)))
	require.NoError(t, err)
	rec["quote"] = "mutated"

	again, err := s.GetRow(ctx, ports.TableQuotes, ports.Where("id", 1))
	require.NoError(t, err)
	assert.Equal(t, "Hope is a waking dream.", again.String("quote"))
}

func TestCache(t *testing.T) {
	c := NewCache()
	ctx := context.Background()

	_, ok, err := c.GetString(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.SetString(ctx, "k", "v"))

	v, ok, err := c.GetString(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}

func TestRecordStore_SeedQuotesReportsConflicts(t *testing.T) {
	s := NewRecordStore()

	err := s.SeedQuotes(
		ports.Record{"id": int64(1), "quote": "First."},
		ports.Record{"id": int64(1), "quote": "Same id."},
		ports.Record{"id": int64(2), "quote": "Never reached."},
	)
	require.Error(t, err)
	assert.True(t, domain.IsConflict(err))
	assert.Contains(t, err.Error(), "seeding quote 1")

	n, err := s.CountRows(context.Background(), ports.TableQuotes, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
