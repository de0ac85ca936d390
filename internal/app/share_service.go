package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/jsamuelsen/quotevault/internal/domain"
	"github.com/jsamuelsen/quotevault/internal/platform/logging"
	"github.com/jsamuelsen/quotevault/internal/ports"
)

// ShareService turns quotes into share text and card images and hands them
// to the share targets.
type ShareService struct {
	capturer ports.ImageCapturer
	renderer ports.CardRenderer
	sheet    ports.ShareSheet
	logger   *slog.Logger
}

// ShareServiceConfig contains the dependencies of a ShareService.
// Every capability is optional; a missing one surfaces as
// domain.ErrCapabilityUnavailable when it is needed.
type ShareServiceConfig struct {
	Capturer ports.ImageCapturer
	Renderer ports.CardRenderer
	Sheet    ports.ShareSheet
	Logger   *slog.Logger
}

// NewShareService creates a share service.
func NewShareService(cfg ShareServiceConfig) *ShareService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &ShareService{
		capturer: cfg.Capturer,
		renderer: cfg.Renderer,
		sheet:    cfg.Sheet,
		logger:   logger.With(slog.String("component", "app.ShareService")),
	}
}

// Card builds the card content for q in the given accent.
func Card(q *domain.Quote, accent domain.AccentColor) ports.QuoteCard {
	return ports.QuoteCard{
		QuoteID:   q.ID,
		Text:      q.Text,
		Author:    q.DisplayAuthor(),
		AccentHex: accent.Hex(),
	}
}

// ShareText formats q and offers it to the share sheet when one is
// configured. The text is returned either way.
func (s *ShareService) ShareText(ctx context.Context, q *domain.Quote) (string, error) {
	text := q.ShareText()

	if s.sheet == nil {
		return text, nil
	}

	err := s.sheet.ShareText(ctx, text)
	if err != nil {
		return text, fmt.Errorf("sharing quote %d: %w", q.ID, err)
	}

	return text, nil
}

// ExportImage renders q as a card image and returns its file URI.
func (s *ShareService) ExportImage(ctx context.Context, q *domain.Quote, accent domain.AccentColor) (string, error) {
	if s.capturer == nil {
		return "", domain.NewCapabilityError("image export", "no image capturer configured")
	}

	uri, err := s.capturer.CaptureViewAsImage(ctx, Card(q, accent))
	if err != nil {
		return "", fmt.Errorf("exporting quote %d: %w", q.ID, err)
	}

	logging.FromContextOr(ctx, s.logger).DebugContext(ctx, "exported quote card",
		slog.Int64("quote_id", q.ID),
		slog.String("uri", uri),
	)

	return uri, nil
}

// ShareImage exports q and hands the file to the share sheet.
func (s *ShareService) ShareImage(ctx context.Context, q *domain.Quote, accent domain.AccentColor) (string, error) {
	if s.sheet == nil {
		return "", domain.NewCapabilityError("sharing", "no share sheet configured")
	}

	uri, err := s.ExportImage(ctx, q, accent)
	if err != nil {
		return "", err
	}

	err = s.sheet.ShareFile(ctx, uri)
	if err != nil {
		return uri, fmt.Errorf("sharing quote card: %w", err)
	}

	return uri, nil
}

// SaveImage exports q and saves the file to the gallery.
func (s *ShareService) SaveImage(ctx context.Context, q *domain.Quote, accent domain.AccentColor) (string, error) {
	if s.sheet == nil {
		return "", domain.NewCapabilityError("gallery", "no gallery configured")
	}

	uri, err := s.ExportImage(ctx, q, accent)
	if err != nil {
		return "", err
	}

	err = s.sheet.SaveToGallery(ctx, uri)
	if err != nil {
		return uri, fmt.Errorf("saving quote card: %w", err)
	}

	return uri, nil
}

// RenderCard writes q as a PNG card to w.
func (s *ShareService) RenderCard(ctx context.Context, q *domain.Quote, accent domain.AccentColor, w io.Writer) error {
	if s.renderer == nil {
		return domain.NewCapabilityError("image export", "no card renderer configured")
	}

	err := s.renderer.RenderCard(ctx, Card(q, accent), w)
	if err != nil {
		return fmt.Errorf("rendering quote %d: %w", q.ID, err)
	}

	return nil
}
