package dto

import (
	"slices"

	"github.com/jsamuelsen/quotevault/internal/app"
	"github.com/jsamuelsen/quotevault/internal/domain"
)

// QuoteResponse is a quote as rendered by the API. Nullable fields are
// resolved to their display fallbacks.
type QuoteResponse struct {
	ID       int64  `json:"id"`
	Text     string `json:"text"`
	Author   string `json:"author"`
	Category string `json:"category"`
	Favorite bool   `json:"favorite,omitempty"`
}

// NewQuoteResponse converts a domain quote.
func NewQuoteResponse(q *domain.Quote) QuoteResponse {
	return QuoteResponse{
		ID:       q.ID,
		Text:     q.Text,
		Author:   q.DisplayAuthor(),
		Category: q.DisplayCategory(),
	}
}

// NewQuoteResponses converts a slice, skipping nil entries.
func NewQuoteResponses(quotes []*domain.Quote) []QuoteResponse {
	out := make([]QuoteResponse, 0, len(quotes))
	for _, q := range quotes {
		if q != nil {
			out = append(out, NewQuoteResponse(q))
		}
	}

	return out
}

// FeedResetRequest selects the feed filter.
type FeedResetRequest struct {
	Category string `json:"category" validate:"omitempty,category"`
	Search   string `json:"search"   validate:"max=200"`
}

// FeedResponse is a snapshot of a user's feed.
type FeedResponse struct {
	Quotes      []QuoteResponse `json:"quotes"`
	Page        int             `json:"page"`
	Category    string          `json:"category"`
	Search      string          `json:"search"`
	HasMore     bool            `json:"hasMore"`
	Loading     bool            `json:"loading"`
	Initialized bool            `json:"initialized"`
	FavoriteIDs []int64         `json:"favoriteIds"`
	Error       string          `json:"error,omitempty"`
}

// NewFeedResponse converts a feed snapshot and marks favorites.
func NewFeedResponse(s app.FeedSnapshot) FeedResponse {
	quotes := NewQuoteResponses(s.Quotes)
	for i := range quotes {
		quotes[i].Favorite = s.IsFavorite(quotes[i].ID)
	}

	ids := s.FavoriteIDs
	if ids == nil {
		ids = []int64{}
	}

	return FeedResponse{
		Quotes:      quotes,
		Page:        s.Page,
		Category:    s.Filter.Category,
		Search:      s.Filter.Search,
		HasMore:     s.HasMore,
		Loading:     s.Loading,
		Initialized: s.Initialized,
		FavoriteIDs: ids,
		Error:       s.LastError,
	}
}

// LoadMoreResponse reports whether a fetch ran and the resulting feed.
type LoadMoreResponse struct {
	Fetched bool         `json:"fetched"`
	Feed    FeedResponse `json:"feed"`
}

// FavoriteToggleResponse reports the new favorite state of a quote.
type FavoriteToggleResponse struct {
	QuoteID  int64 `json:"quoteId"`
	Favorite bool  `json:"favorite"`
}

// CategoriesResponse lists the feed categories in display order.
type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

// PageQuotes returns the page of quotes after the request's cursor,
// preserving the input order. The cursor carries the last quote id served;
// a cursor whose quote is gone is rejected.
func PageQuotes(quotes []*domain.Quote, req *PaginationRequest) (*PaginatedResponse[QuoteResponse], error) {
	items := slices.DeleteFunc(slices.Clone(quotes), func(q *domain.Quote) bool { return q == nil })

	after, ok, err := req.After()
	if err != nil {
		return nil, err
	}

	if ok {
		idx := slices.IndexFunc(items, func(q *domain.Quote) bool { return q.ID == after })
		if idx < 0 {
			return nil, ErrInvalidCursor
		}
		items = items[idx+1:]
	}

	limit := req.GetLimit()
	if len(items) > limit+1 {
		items = items[:limit+1]
	}

	return Paginate(NewQuoteResponses(items), limit, func(q QuoteResponse) int64 { return q.ID }), nil
}
