package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jsamuelsen/quotevault/internal/domain"
	"github.com/jsamuelsen/quotevault/internal/platform/logging"
	"github.com/jsamuelsen/quotevault/internal/ports"
)

// CollectionService manages named quote collections.
type CollectionService struct {
	records ports.RecordStore
	auth    ports.AuthProvider
	quotes  *QuoteService
	logger  *slog.Logger
	now     func() time.Time
	newID   func() string
}

// CollectionServiceConfig contains the dependencies of a CollectionService.
type CollectionServiceConfig struct {
	Records ports.RecordStore
	Auth    ports.AuthProvider
	Quotes  *QuoteService
	Logger  *slog.Logger
}

// NewCollectionService creates a collection service.
func NewCollectionService(cfg CollectionServiceConfig) *CollectionService {
	if cfg.Records == nil || cfg.Auth == nil || cfg.Quotes == nil {
		panic("app: CollectionService requires records, auth and quotes")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &CollectionService{
		records: cfg.Records,
		auth:    cfg.Auth,
		quotes:  cfg.Quotes,
		logger:  logger.With(slog.String("component", "app.CollectionService")),
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// List returns the user's collections, most recent first.
func (s *CollectionService) List(ctx context.Context) ([]domain.Collection, error) {
	userID, ok := s.auth.CurrentUserID(ctx)
	if !ok {
		return []domain.Collection{}, nil
	}

	recs, err := s.records.QueryRows(ctx, ports.TableCollections, ports.Query{
		Filter: ports.Where(colUserID, userID),
		Order:  []ports.Order{{Column: colCreatedAt, Descending: true}},
	})
	if err != nil {
		return nil, fmt.Errorf("listing collections: %w", err)
	}

	out := make([]domain.Collection, 0, len(recs))
	for _, rec := range recs {
		out = append(out, collectionFromRecord(rec))
	}

	return out, nil
}

// Create adds a collection with a trimmed name of 1 to 60 characters.
func (s *CollectionService) Create(ctx context.Context, name string) (domain.Collection, error) {
	userID, ok := s.auth.CurrentUserID(ctx)
	if !ok {
		return domain.Collection{}, domain.NewUnauthenticatedError("create collection")
	}

	name, err := domain.NormalizeCollectionName(name)
	if err != nil {
		return domain.Collection{}, fmt.Errorf("creating collection: %w", err)
	}

	c := domain.Collection{
		ID:        s.newID(),
		UserID:    userID,
		Name:      name,
		CreatedAt: s.now().UTC(),
	}

	rec, err := s.records.InsertRow(ctx, ports.TableCollections, ports.Record{
		colID:        c.ID,
		colUserID:    c.UserID,
		colName:      c.Name,
		colCreatedAt: c.CreatedAt,
	})
	if err != nil {
		return domain.Collection{}, fmt.Errorf("creating collection: %w", err)
	}

	if rec != nil {
		stored := collectionFromRecord(rec)
		if stored.ID != "" {
			c = stored
		}
	}

	logging.FromContextOr(ctx, s.logger).InfoContext(ctx, "created collection",
		slog.String("collection_id", c.ID),
		slog.String("user_id", userID),
	)

	return c, nil
}

// Delete removes a collection owned by the user along with its memberships.
func (s *CollectionService) Delete(ctx context.Context, collectionID string) error {
	userID, ok := s.auth.CurrentUserID(ctx)
	if !ok {
		return domain.NewUnauthenticatedError("delete collection")
	}

	err := s.records.DeleteRow(ctx, ports.TableCollectionQuotes,
		ports.Where(colUserID, userID).Eq(colCollectionID, collectionID))
	if err != nil {
		return fmt.Errorf("deleting collection quotes: %w", err)
	}

	err = s.records.DeleteRow(ctx, ports.TableCollections,
		ports.Where(colID, collectionID).Eq(colUserID, userID))
	if err != nil {
		return fmt.Errorf("deleting collection: %w", err)
	}

	return nil
}

// QuoteIDs returns the ids of the quotes in a collection.
func (s *CollectionService) QuoteIDs(ctx context.Context, collectionID string) ([]int64, error) {
	userID, ok := s.auth.CurrentUserID(ctx)
	if !ok {
		return []int64{}, nil
	}

	recs, err := s.records.QueryRows(ctx, ports.TableCollectionQuotes, ports.Query{
		Filter: ports.Where(colUserID, userID).Eq(colCollectionID, collectionID),
	})
	if err != nil {
		return nil, fmt.Errorf("listing collection quotes: %w", err)
	}

	return quoteIDsFromRecords(recs), nil
}

// AddQuote puts a quote into a collection. Adding it twice is not an error.
func (s *CollectionService) AddQuote(ctx context.Context, collectionID string, quoteID int64) error {
	userID, ok := s.auth.CurrentUserID(ctx)
	if !ok {
		return domain.NewUnauthenticatedError("add quote to collection")
	}

	owned, err := s.records.CountRows(ctx, ports.TableCollections,
		ports.Where(colID, collectionID).Eq(colUserID, userID))
	if err != nil {
		return fmt.Errorf("checking collection: %w", err)
	}

	if owned == 0 {
		return domain.NewNotFoundError("collection", collectionID)
	}

	err = s.records.UpsertRow(ctx, ports.TableCollectionQuotes, ports.Record{
		colCollectionID: collectionID,
		colQuoteID:      quoteID,
		colUserID:       userID,
	}, colCollectionID, colQuoteID)
	if err != nil {
		return fmt.Errorf("adding quote %d to collection: %w", quoteID, err)
	}

	return nil
}

// RemoveQuote takes a quote out of a collection.
func (s *CollectionService) RemoveQuote(ctx context.Context, collectionID string, quoteID int64) error {
	userID, ok := s.auth.CurrentUserID(ctx)
	if !ok {
		return domain.NewUnauthenticatedError("remove quote from collection")
	}

	err := s.records.DeleteRow(ctx, ports.TableCollectionQuotes,
		ports.Where(colUserID, userID).Eq(colCollectionID, collectionID).Eq(colQuoteID, quoteID))
	if err != nil {
		return fmt.Errorf("removing quote %d from collection: %w", quoteID, err)
	}

	return nil
}

// Quotes returns the quotes in a collection, newest first.
func (s *CollectionService) Quotes(ctx context.Context, collectionID string) ([]*domain.Quote, error) {
	ids, err := s.QuoteIDs(ctx, collectionID)
	if err != nil {
		return nil, err
	}

	return s.quotes.FetchByIDs(ctx, ids)
}
