// Package app contains the application services of QuoteVault: the
// per-session settings store and feed controller, and the stateless
// services for quotes, favorites, collections, notifications and sharing.
//
// Services depend on ports only. Adapters are chosen and wired in
// cmd/service.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/jsamuelsen/quotevault/internal/domain"
	"github.com/jsamuelsen/quotevault/internal/platform/logging"
	"github.com/jsamuelsen/quotevault/internal/ports"
)

// QuotePager fetches one page of the feed.
type QuotePager interface {
	FetchPage(ctx context.Context, page int, filter domain.FeedFilter) ([]*domain.Quote, error)
}

// QuoteService reads the quote corpus.
type QuoteService struct {
	records ports.RecordStore
	logger  *slog.Logger
	now     func() time.Time
}

// QuoteServiceConfig contains configuration for the quote service.
type QuoteServiceConfig struct {
	Records ports.RecordStore
	Logger  *slog.Logger

	// Now overrides the clock used for the quote of the day.
	Now func() time.Time
}

// NewQuoteService creates a new quote service with the provided dependencies.
func NewQuoteService(cfg QuoteServiceConfig) *QuoteService {
	if cfg.Records == nil {
		panic("app: QuoteService requires a record store")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &QuoteService{
		records: cfg.Records,
		logger:  logger.With(slog.String("component", "app.QuoteService")),
		now:     now,
	}
}

// GetQuoteByID retrieves a specific quote by its identifier.
func (s *QuoteService) GetQuoteByID(ctx context.Context, id int64) (*domain.Quote, error) {
	rec, err := s.records.GetRow(ctx, ports.TableQuotes, ports.Where(colID, id))
	if err != nil {
		return nil, fmt.Errorf("fetching quote %d: %w", id, err)
	}

	if rec == nil {
		return nil, domain.NewNotFoundError("quote", strconv.FormatInt(id, 10))
	}

	q, ok := quoteFromRecord(rec)
	if !ok {
		return nil, domain.NewNotFoundError("quote", strconv.FormatInt(id, 10))
	}

	return q, nil
}

// FetchPage returns page (zero-based) of the feed under filter, newest first.
// A category of All and an empty search do not constrain the result.
func (s *QuoteService) FetchPage(ctx context.Context, page int, filter domain.FeedFilter) ([]*domain.Quote, error) {
	var f ports.Filter

	if filter.FiltersCategory() {
		f = f.Eq(colCategory, filter.Category)
	}

	if filter.FiltersSearch() {
		f = f.AnyILike(filter.Search, colQuote, colAuthor)
	}

	recs, err := s.records.QueryRows(ctx, ports.TableQuotes, ports.Query{
		Filter: f,
		Order:  []ports.Order{{Column: colID, Descending: true}},
		Offset: page * domain.FeedPageSize,
		Limit:  domain.FeedPageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("fetching feed page %d: %w", page, err)
	}

	logging.FromContextOr(ctx, s.logger).DebugContext(ctx, "fetched feed page",
		slog.Int("page", page),
		slog.String("category", filter.Category),
		slog.Int("count", len(recs)),
	)

	return quotesFromRecords(recs), nil
}

// FetchByIDs returns the quotes with the given ids, newest first.
func (s *QuoteService) FetchByIDs(ctx context.Context, ids []int64) ([]*domain.Quote, error) {
	if len(ids) == 0 {
		return []*domain.Quote{}, nil
	}

	recs, err := s.records.QueryRows(ctx, ports.TableQuotes, ports.Query{
		Filter: ports.Filter{}.In(colID, int64sToAny(ids)...),
		Order:  []ports.Order{{Column: colID, Descending: true}},
	})
	if err != nil {
		return nil, fmt.Errorf("fetching quotes by id: %w", err)
	}

	return quotesFromRecords(recs), nil
}

// QuoteOfTheDay picks one quote per epoch day by indexing the corpus in id
// order. It returns nil when the corpus is empty or cannot be read.
//
// The count and the indexed read are separate queries, so a concurrent
// insert or delete can shift which quote a day maps to.
func (s *QuoteService) QuoteOfTheDay(ctx context.Context) (*domain.Quote, error) { //nolint:nilnil // no quote of the day is not an error
	logger := logging.FromContextOr(ctx, s.logger)

	count, err := s.records.CountRows(ctx, ports.TableQuotes, nil)
	if err != nil {
		logger.WarnContext(ctx, "counting quotes failed", slog.Any("error", err))
		return nil, nil
	}

	idx := domain.QuoteOfTheDayIndex(s.now().UnixMilli(), count)
	if idx < 0 {
		return nil, nil
	}

	recs, err := s.records.QueryRows(ctx, ports.TableQuotes, ports.Query{
		Order:  []ports.Order{{Column: colID}},
		Offset: int(idx),
		Limit:  1,
	})
	if err != nil {
		logger.WarnContext(ctx, "fetching quote of the day failed", slog.Any("error", err))
		return nil, nil
	}

	quotes := quotesFromRecords(recs)
	if len(quotes) == 0 {
		return nil, nil
	}

	return quotes[0], nil
}
