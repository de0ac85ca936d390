package app

import (
	"context"
	"log/slog"
	"maps"
	"slices"
	"strconv"
	"sync"

	"github.com/jsamuelsen/quotevault/internal/domain"
	"github.com/jsamuelsen/quotevault/internal/platform/logging"
)

// FavoriteStore persists a user's favorite quote ids.
type FavoriteStore interface {
	FavoriteIDs(ctx context.Context) ([]int64, error)
	Add(ctx context.Context, quoteID int64) error
	Remove(ctx context.Context, quoteID int64) error
}

// FeedSnapshot is a copy of the feed state taken under the feed lock.
type FeedSnapshot struct {
	Quotes      []*domain.Quote
	Page        int
	Filter      domain.FeedFilter
	HasMore     bool
	Loading     bool
	Initialized bool
	FavoriteIDs []int64

	// LastError describes the most recent failed fetch and is cleared by the
	// next successful one.
	LastError string
}

// IsFavorite reports whether id is in the snapshot's favorite set.
func (s FeedSnapshot) IsFavorite(id int64) bool {
	_, found := slices.BinarySearch(s.FavoriteIDs, id)
	return found
}

// QuoteFeed is the paginated, filterable quote list of one session.
//
// Network calls run outside the lock. Every reset bumps the generation and
// any fetch that completes under an older generation is dropped, so rows
// from different filters never mix.
type QuoteFeed struct {
	pager     QuotePager
	favorites FavoriteStore
	logger    *slog.Logger

	mu          sync.Mutex
	quotes      []*domain.Quote
	page        int
	filter      domain.FeedFilter
	hasMore     bool
	loading     bool
	initialized bool
	generation  uint64
	favoriteIDs map[int64]struct{}
	lastErr     error

	// writes orders the remote favorite changes per quote.
	writes writeQueue
}

// QuoteFeedConfig contains the dependencies of a QuoteFeed.
type QuoteFeedConfig struct {
	Pager     QuotePager
	Favorites FavoriteStore
	Logger    *slog.Logger
}

// NewQuoteFeed creates an empty feed. Nothing is fetched until ResetAndFetch.
func NewQuoteFeed(cfg QuoteFeedConfig) *QuoteFeed {
	if cfg.Pager == nil {
		panic("app: QuoteFeed requires a quote pager")
	}

	if cfg.Favorites == nil {
		panic("app: QuoteFeed requires a favorite store")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &QuoteFeed{
		pager:       cfg.Pager,
		favorites:   cfg.Favorites,
		logger:      logger.With(slog.String("component", "app.QuoteFeed")),
		filter:      domain.NormalizeFeedFilter("", ""),
		hasMore:     true,
		favoriteIDs: make(map[int64]struct{}),
	}
}

// ResetAndFetch replaces the feed with page 0 under a new filter. A failed
// fetch leaves the feed empty with no further pages.
func (f *QuoteFeed) ResetAndFetch(ctx context.Context, category, search string) FeedSnapshot {
	filter := domain.NormalizeFeedFilter(category, search)

	f.mu.Lock()
	f.generation++
	gen := f.generation
	f.filter = filter
	f.page = 0
	f.hasMore = true
	f.loading = true
	f.mu.Unlock()

	quotes, err := f.pager.FetchPage(ctx, 0, filter)

	f.mu.Lock()
	defer f.mu.Unlock()

	if gen != f.generation {
		return f.snapshotLocked()
	}

	f.loading = false
	f.initialized = true
	f.lastErr = err

	if err != nil {
		logging.FromContextOr(ctx, f.logger).WarnContext(ctx, "refreshing feed failed",
			slog.String("category", filter.Category),
			slog.Any("error", err),
		)

		f.quotes = nil
		f.hasMore = false

		return f.snapshotLocked()
	}

	f.quotes = quotes
	f.hasMore = len(quotes) >= domain.FeedPageSize

	return f.snapshotLocked()
}

// LoadMore appends the next page. It reports whether a fetch was issued;
// nothing happens before the first reset completes, while another fetch is
// running, or once the last page has been seen. A failed fetch keeps the
// rows already loaded and ends pagination until the next reset.
func (f *QuoteFeed) LoadMore(ctx context.Context) bool {
	f.mu.Lock()
	if !f.initialized || f.loading || !f.hasMore {
		f.mu.Unlock()
		return false
	}

	f.loading = true
	gen := f.generation
	next := f.page + 1
	filter := f.filter
	f.mu.Unlock()

	quotes, err := f.pager.FetchPage(ctx, next, filter)

	f.mu.Lock()
	defer f.mu.Unlock()

	if gen != f.generation {
		return true
	}

	f.loading = false
	f.lastErr = err

	if err != nil {
		logging.FromContextOr(ctx, f.logger).WarnContext(ctx, "loading more quotes failed",
			slog.Int("page", next),
			slog.Any("error", err),
		)

		f.hasMore = false

		return true
	}

	f.quotes = append(f.quotes, quotes...)
	f.page = next

	if len(quotes) < domain.FeedPageSize {
		f.hasMore = false
	}

	return true
}

// ToggleFavorite flips id in the favorite set immediately and writes the
// change to the store in the background. Writes reach the store in toggle
// order, and a queued write for id is superseded by a newer toggle. A failed
// write is logged and the local set is not reverted. It returns whether id
// is now a favorite.
func (f *QuoteFeed) ToggleFavorite(ctx context.Context, id int64) bool {
	f.mu.Lock()
	_, wasFavorite := f.favoriteIDs[id]
	if wasFavorite {
		delete(f.favoriteIDs, id)
	} else {
		f.favoriteIDs[id] = struct{}{}
	}
	f.mu.Unlock()

	bg := context.WithoutCancel(ctx)
	logger := logging.FromContextOr(ctx, f.logger).With(slog.Int64("quote_id", id))

	f.writes.Submit(strconv.FormatInt(id, 10), func() {
		var err error
		if wasFavorite {
			err = f.favorites.Remove(bg, id)
		} else {
			err = f.favorites.Add(bg, id)
		}

		if err != nil {
			logger.WarnContext(bg, "syncing favorite failed",
				slog.Bool("favorite", !wasFavorite),
				slog.Any("error", err),
			)
		}
	})

	return !wasFavorite
}

// LoadFavorites replaces the favorite set with the stored one. On failure
// the current set is kept.
func (f *QuoteFeed) LoadFavorites(ctx context.Context) {
	ids, err := f.favorites.FavoriteIDs(ctx)
	if err != nil {
		logging.FromContextOr(ctx, f.logger).WarnContext(ctx, "loading favorites failed", slog.Any("error", err))
		return
	}

	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}

	f.mu.Lock()
	f.favoriteIDs = set
	f.mu.Unlock()
}

// Snapshot returns a copy of the current state.
func (f *QuoteFeed) Snapshot() FeedSnapshot {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.snapshotLocked()
}

// Wait blocks until background favorite writes have finished.
func (f *QuoteFeed) Wait() {
	f.writes.Wait()
}

func (f *QuoteFeed) snapshotLocked() FeedSnapshot {
	snap := FeedSnapshot{
		Quotes:      slices.Clone(f.quotes),
		Page:        f.page,
		Filter:      f.filter,
		HasMore:     f.hasMore,
		Loading:     f.loading,
		Initialized: f.initialized,
		FavoriteIDs: slices.Sorted(maps.Keys(f.favoriteIDs)),
	}

	if snap.Quotes == nil {
		snap.Quotes = []*domain.Quote{}
	}

	if f.lastErr != nil {
		snap.LastError = f.lastErr.Error()
	}

	return snap
}
