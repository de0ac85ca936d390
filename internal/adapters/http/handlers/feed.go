package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotevault/internal/adapters/http/dto"
)

// FeedHandler drives the paginated quote feed of the signed-in user.
type FeedHandler struct {
	sessions SessionSource
}

// NewFeedHandler creates a feed handler.
func NewFeedHandler(sessions SessionSource) *FeedHandler {
	return &FeedHandler{sessions: sessions}
}

// Snapshot handles GET /feed.
func (h *FeedHandler) Snapshot(c *gin.Context) {
	s, ok := userSession(c, h.sessions)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, dto.NewFeedResponse(s.Feed.Snapshot()))
}

// Reset handles POST /feed/reset. An empty body resets to all categories
// without a search term.
func (h *FeedHandler) Reset(c *gin.Context) {
	var req dto.FeedResetRequest
	if c.Request.ContentLength != 0 && !bind(c, &req) {
		return
	}

	s, ok := userSession(c, h.sessions)
	if !ok {
		return
	}

	snap := s.Feed.ResetAndFetch(c.Request.Context(), req.Category, req.Search)
	c.JSON(http.StatusOK, dto.NewFeedResponse(snap))
}

// More handles POST /feed/more. A call that does not fetch (feed not
// reset yet, fetch in flight, last page reached) still returns the feed.
func (h *FeedHandler) More(c *gin.Context) {
	s, ok := userSession(c, h.sessions)
	if !ok {
		return
	}

	fetched := s.Feed.LoadMore(c.Request.Context())
	c.JSON(http.StatusOK, dto.LoadMoreResponse{
		Fetched: fetched,
		Feed:    dto.NewFeedResponse(s.Feed.Snapshot()),
	})
}

// ToggleFavorite handles POST /feed/favorites/:id/toggle.
func (h *FeedHandler) ToggleFavorite(c *gin.Context) {
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}

	s, ok := userSession(c, h.sessions)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, dto.FavoriteToggleResponse{
		QuoteID:  id,
		Favorite: s.Feed.ToggleFavorite(c.Request.Context(), id),
	})
}

// RegisterFeedRoutes registers feed routes on rg.
func (h *FeedHandler) RegisterFeedRoutes(rg *gin.RouterGroup) {
	feed := rg.Group("/feed")
	feed.GET("", h.Snapshot)
	feed.POST("/reset", h.Reset)
	feed.POST("/more", h.More)
	feed.POST("/favorites/:id/toggle", h.ToggleFavorite)
}
