package dto

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginationRequest_GetLimit(t *testing.T) {
	tests := []struct {
		limit int
		want  int
	}{
		{0, DefaultLimit},
		{-3, DefaultLimit},
		{1, 1},
		{MaxLimit, MaxLimit},
		{MaxLimit + 1, MaxLimit},
	}

	for _, tt := range tests {
		p := PaginationRequest{Limit: tt.limit}
		assert.Equal(t, tt.want, p.GetLimit(), "limit %d", tt.limit)
	}
}

func TestPaginationRequest_After(t *testing.T) {
	first := PaginationRequest{}
	_, ok, err := first.After()
	require.NoError(t, err)
	assert.False(t, ok)

	next := PaginationRequest{Cursor: EncodeCursor(42)}
	id, ok, err := next.After()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)

	bad := PaginationRequest{Cursor: "%%%"}
	_, _, err = bad.After()
	assert.ErrorIs(t, err, ErrInvalidCursor)
}

func TestCursorRoundTrip(t *testing.T) {
	for _, id := range []int64{1, 15, 1 << 40} {
		got, err := DecodeCursor(EncodeCursor(id))
		require.NoError(t, err)
		assert.Equal(t, id, got)
	}

	_, err := DecodeCursor("")
	assert.ErrorIs(t, err, ErrInvalidCursor)
}

func TestPaginate(t *testing.T) {
	key := func(v int64) int64 { return v }

	tests := []struct {
		name      string
		items     []int64
		limit     int
		want      []int64
		wantMore  bool
		wantAfter int64
	}{
		{"nil encodes as empty", nil, 3, []int64{}, false, 0},
		{"short page", []int64{5, 4}, 3, []int64{5, 4}, false, 0},
		{"exact page", []int64{5, 4, 3}, 3, []int64{5, 4, 3}, false, 0},
		{"one extra", []int64{5, 4, 3, 2}, 3, []int64{5, 4, 3}, true, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := Paginate(tt.items, tt.limit, key)

			if diff := cmp.Diff(tt.want, page.Items); diff != "" {
				t.Errorf("items mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, tt.wantMore, page.HasMore)

			if !tt.wantMore {
				assert.Empty(t, page.NextCursor)
				return
			}

			after, err := DecodeCursor(page.NextCursor)
			require.NoError(t, err)
			assert.Equal(t, tt.wantAfter, after)
		})
	}
}

func TestPaginate_EmptyItemsMarshalAsArray(t *testing.T) {
	raw, err := json.Marshal(Paginate[int64](nil, 5, func(v int64) int64 { return v }))
	require.NoError(t, err)

	assert.JSONEq(t, `{"items":[],"hasMore":false}`, string(raw))
}
