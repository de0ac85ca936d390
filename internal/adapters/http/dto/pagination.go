package dto

import (
	"encoding/base64"
	"encoding/json"
	"errors"
)

// Page size bounds for the list endpoints.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// ErrInvalidCursor is returned when a cursor cannot be decoded or no longer
// points into the list.
var ErrInvalidCursor = errors.New("invalid cursor")

// PaginationRequest holds the list query parameters.
type PaginationRequest struct {
	// Cursor is the opaque NextCursor of the previous page.
	Cursor string `form:"cursor"`

	Limit int `form:"limit" validate:"omitempty,gte=1,lte=100"`
}

// GetLimit returns the limit with defaults applied.
func (p *PaginationRequest) GetLimit() int {
	if p.Limit <= 0 {
		return DefaultLimit
	}

	return min(p.Limit, MaxLimit)
}

// After returns the quote id the cursor points past. ok is false on the
// first page.
func (p *PaginationRequest) After() (id int64, ok bool, err error) {
	if p.Cursor == "" {
		return 0, false, nil
	}

	id, err = DecodeCursor(p.Cursor)
	if err != nil {
		return 0, false, err
	}

	return id, true, nil
}

// PaginatedResponse is one page of a list.
type PaginatedResponse[T any] struct {
	Items []T `json:"items"`

	// NextCursor is empty on the last page.
	NextCursor string `json:"nextCursor,omitempty"`

	HasMore bool `json:"hasMore"`
}

// Paginate trims items to limit. Pass up to limit+1 items so a further
// page can be detected; key yields the id the next cursor records.
func Paginate[T any](items []T, limit int, key func(T) int64) *PaginatedResponse[T] {
	if items == nil {
		items = []T{}
	}

	page := &PaginatedResponse[T]{Items: items}

	if len(items) > limit {
		page.Items = items[:limit]
		page.HasMore = true
		page.NextCursor = EncodeCursor(key(page.Items[limit-1]))
	}

	return page
}

type cursorData struct {
	After int64 `json:"after"`
}

// EncodeCursor encodes the position after quote id as an opaque string.
func EncodeCursor(id int64) string {
	raw, err := json.Marshal(cursorData{After: id})
	if err != nil {
		return ""
	}

	return base64.RawURLEncoding.EncodeToString(raw)
}

// DecodeCursor reverses EncodeCursor.
func DecodeCursor(encoded string) (int64, error) {
	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return 0, ErrInvalidCursor
	}

	var data cursorData
	if err := json.Unmarshal(raw, &data); err != nil || data.After <= 0 {
		return 0, ErrInvalidCursor
	}

	return data.After, nil
}
