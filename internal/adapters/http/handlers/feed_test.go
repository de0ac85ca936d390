package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotevault/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotevault/internal/domain"
)

func TestFeedHandler_SnapshotBeforeReset(t *testing.T) {
	api := newTestAPI(t, 5)

	w := api.do(t, http.MethodGet, "/api/v1/feed", nil)
	require.Equal(t, http.StatusOK, w.Code)

	got := decode[dto.FeedResponse](t, w)
	assert.False(t, got.Initialized)
	assert.Empty(t, got.Quotes)
}

func TestFeedHandler_ResetAndLoadMore(t *testing.T) {
	api := newTestAPI(t, 40)

	w := api.do(t, http.MethodPost, "/api/v1/feed/reset", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	feed := decode[dto.FeedResponse](t, w)
	assert.True(t, feed.Initialized)
	assert.Len(t, feed.Quotes, domain.FeedPageSize)
	assert.True(t, feed.HasMore)
	assert.Equal(t, domain.CategoryAll, feed.Category)

	more := decode[dto.LoadMoreResponse](t, api.do(t, http.MethodPost, "/api/v1/feed/more", nil))
	assert.True(t, more.Fetched)
	assert.Len(t, more.Feed.Quotes, 2*domain.FeedPageSize)

	more = decode[dto.LoadMoreResponse](t, api.do(t, http.MethodPost, "/api/v1/feed/more", nil))
	assert.True(t, more.Fetched)
	assert.Len(t, more.Feed.Quotes, 40)
	assert.False(t, more.Feed.HasMore)

	more = decode[dto.LoadMoreResponse](t, api.do(t, http.MethodPost, "/api/v1/feed/more", nil))
	assert.False(t, more.Fetched)
	assert.Len(t, more.Feed.Quotes, 40)
}

func TestFeedHandler_ResetWithFilter(t *testing.T) {
	api := newTestAPI(t, 40)

	w := api.do(t, http.MethodPost, "/api/v1/feed/reset", map[string]string{"category": "Love"})
	require.Equal(t, http.StatusOK, w.Code)

	feed := decode[dto.FeedResponse](t, w)
	assert.Equal(t, "Love", feed.Category)
	assert.Len(t, feed.Quotes, 13)
	assert.False(t, feed.HasMore)

	for _, q := range feed.Quotes {
		assert.Equal(t, "Love", q.Category)
	}
}

func TestFeedHandler_ResetRejectsUnknownCategory(t *testing.T) {
	api := newTestAPI(t, 5)

	w := api.do(t, http.MethodPost, "/api/v1/feed/reset", map[string]string{"category": "Sports"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "category")
}

func TestFeedHandler_ToggleFavorite(t *testing.T) {
	api := newTestAPI(t, 5)
	api.do(t, http.MethodPost, "/api/v1/feed/reset", nil)

	w := api.do(t, http.MethodPost, "/api/v1/feed/favorites/2/toggle", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, dto.FavoriteToggleResponse{QuoteID: 2, Favorite: true}, decode[dto.FavoriteToggleResponse](t, w))

	feed := decode[dto.FeedResponse](t, api.do(t, http.MethodGet, "/api/v1/feed", nil))
	assert.Equal(t, []int64{2}, feed.FavoriteIDs)

	for _, q := range feed.Quotes {
		assert.Equal(t, q.ID == 2, q.Favorite, "quote %d", q.ID)
	}

	w = api.do(t, http.MethodPost, "/api/v1/feed/favorites/2/toggle", nil)
	assert.False(t, decode[dto.FavoriteToggleResponse](t, w).Favorite)
}

func TestFeedHandler_ToggleFavoriteBadID(t *testing.T) {
	api := newTestAPI(t, 5)

	w := api.do(t, http.MethodPost, "/api/v1/feed/favorites/zero/toggle", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
