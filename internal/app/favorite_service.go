package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jsamuelsen/quotevault/internal/domain"
	"github.com/jsamuelsen/quotevault/internal/ports"
)

// FavoriteService stores favorite quotes in the user_favorites table.
type FavoriteService struct {
	records ports.RecordStore
	auth    ports.AuthProvider
	quotes  *QuoteService
	logger  *slog.Logger
}

// FavoriteServiceConfig contains the dependencies of a FavoriteService.
type FavoriteServiceConfig struct {
	Records ports.RecordStore
	Auth    ports.AuthProvider
	Quotes  *QuoteService
	Logger  *slog.Logger
}

// NewFavoriteService creates a favorite service.
func NewFavoriteService(cfg FavoriteServiceConfig) *FavoriteService {
	if cfg.Records == nil || cfg.Auth == nil || cfg.Quotes == nil {
		panic("app: FavoriteService requires records, auth and quotes")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &FavoriteService{
		records: cfg.Records,
		auth:    cfg.Auth,
		quotes:  cfg.Quotes,
		logger:  logger.With(slog.String("component", "app.FavoriteService")),
	}
}

// FavoriteIDs returns the favorite quote ids. Signed out users have none.
func (s *FavoriteService) FavoriteIDs(ctx context.Context) ([]int64, error) {
	userID, ok := s.auth.CurrentUserID(ctx)
	if !ok {
		return []int64{}, nil
	}

	recs, err := s.records.QueryRows(ctx, ports.TableUserFavorites, ports.Query{
		Filter: ports.Where(colUserID, userID),
	})
	if err != nil {
		return nil, fmt.Errorf("listing favorites: %w", err)
	}

	return quoteIDsFromRecords(recs), nil
}

// Add marks a quote as favorite. Adding an existing favorite is not an error.
func (s *FavoriteService) Add(ctx context.Context, quoteID int64) error {
	userID, ok := s.auth.CurrentUserID(ctx)
	if !ok {
		return domain.NewUnauthenticatedError("add favorite")
	}

	err := s.records.UpsertRow(ctx, ports.TableUserFavorites, ports.Record{
		colUserID:  userID,
		colQuoteID: quoteID,
	}, colUserID, colQuoteID)
	if err != nil {
		return fmt.Errorf("adding favorite %d: %w", quoteID, err)
	}

	return nil
}

// Remove unmarks a favorite quote.
func (s *FavoriteService) Remove(ctx context.Context, quoteID int64) error {
	userID, ok := s.auth.CurrentUserID(ctx)
	if !ok {
		return domain.NewUnauthenticatedError("remove favorite")
	}

	err := s.records.DeleteRow(ctx, ports.TableUserFavorites,
		ports.Where(colUserID, userID).Eq(colQuoteID, quoteID))
	if err != nil {
		return fmt.Errorf("removing favorite %d: %w", quoteID, err)
	}

	return nil
}

// FavoriteQuotes returns the favorite quotes, newest first.
func (s *FavoriteService) FavoriteQuotes(ctx context.Context) ([]*domain.Quote, error) {
	ids, err := s.FavoriteIDs(ctx)
	if err != nil {
		return nil, err
	}

	return s.quotes.FetchByIDs(ctx, ids)
}
