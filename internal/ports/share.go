package ports

import (
	"context"
	"io"
)

// QuoteCard is the content rendered into a shareable image.
type QuoteCard struct {
	QuoteID int64
	Text    string
	Author  string

	// AccentHex colors the border and badge, e.g. "#2563EB".
	AccentHex string
}

// ImageCapturer renders a card to an image file.
type ImageCapturer interface {
	// CaptureViewAsImage returns a file URI for the rendered card.
	CaptureViewAsImage(ctx context.Context, card QuoteCard) (fileURI string, err error)
}

// ShareSheet hands content to the platform's sharing targets.
// Implementations return domain.ErrCapabilityUnavailable when a target is
// not supported or permission was denied.
type ShareSheet interface {
	ShareFile(ctx context.Context, fileURI string) error
	SaveToGallery(ctx context.Context, fileURI string) error
	ShareText(ctx context.Context, text string) error
}

// CardRenderer encodes a card as PNG without touching the file system.
type CardRenderer interface {
	RenderCard(ctx context.Context, card QuoteCard, w io.Writer) error
}
