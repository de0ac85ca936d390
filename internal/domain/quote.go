// Package domain contains core business entities and rules.
package domain

import (
	"fmt"
	"slices"
	"strings"
)

// FeedPageSize is the fixed number of quotes per feed page.
const FeedPageSize = 15

// Display fallbacks for nullable quote fields.
const (
	UnknownAuthor   = "Unknown"
	GeneralCategory = "General"
)

// CategoryAll is the sentinel category that disables category filtering.
const CategoryAll = "All"

// Categories is the fixed, ordered set of feed categories.
var Categories = []string{CategoryAll, "Motivation", "Love", "Success", "Wisdom", "Humor"}

// IsValidCategory reports whether c is one of Categories.
func IsValidCategory(c string) bool {
	return slices.Contains(Categories, c)
}

// Quote is a read-only quotation record from the corpus.
type Quote struct {
	// ID is stable and doubles as the sort key.
	ID int64

	Text string

	// Author is nil when the quotation is unattributed.
	Author *string

	// Category is nil for uncategorized quotes.
	Category *string
}

// DisplayAuthor returns the author or UnknownAuthor.
func (q *Quote) DisplayAuthor() string {
	if q.Author == nil || strings.TrimSpace(*q.Author) == "" {
		return UnknownAuthor
	}

	return *q.Author
}

// DisplayCategory returns the category or GeneralCategory.
func (q *Quote) DisplayCategory() string {
	if q.Category == nil || *q.Category == "" {
		return GeneralCategory
	}

	return *q.Category
}

// ShareText formats the quote the way it is handed to a share sheet.
func (q *Quote) ShareText() string {
	return fmt.Sprintf("\"%s\"\n— %s\n\nvia QuoteVault", q.Text, q.DisplayAuthor())
}

// Byline is the one-line "text — author" form used in notifications.
func (q *Quote) Byline() string {
	return fmt.Sprintf("\"%s\" — %s", q.Text, q.DisplayAuthor())
}

// FeedFilter is the category/search pair a feed page is fetched under.
type FeedFilter struct {
	Category string
	Search   string
}

// NormalizeFeedFilter trims the search term and maps an empty category to All.
func NormalizeFeedFilter(category, search string) FeedFilter {
	category = strings.TrimSpace(category)
	if category == "" {
		category = CategoryAll
	}

	return FeedFilter{Category: category, Search: strings.TrimSpace(search)}
}

// FiltersCategory reports whether the category constraint applies.
func (f FeedFilter) FiltersCategory() bool {
	return f.Category != CategoryAll
}

// FiltersSearch reports whether the search constraint applies.
func (f FeedFilter) FiltersSearch() bool {
	return f.Search != ""
}

// QuoteOfTheDayIndex returns the corpus offset for the epoch day containing
// nowMillis. It returns -1 for an empty corpus.
func QuoteOfTheDayIndex(nowMillis int64, count int64) int64 {
	if count <= 0 {
		return -1
	}

	const millisPerDay = 86_400_000

	day := nowMillis / millisPerDay
	if nowMillis < 0 && nowMillis%millisPerDay != 0 {
		day--
	}

	idx := day % count
	if idx < 0 {
		idx += count
	}

	return idx
}
