package share

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/jsamuelsen/quotevault/internal/domain"
	"github.com/jsamuelsen/quotevault/internal/ports"
)

// Exporter writes rendered cards into a directory and returns file URIs.
type Exporter struct {
	renderer ports.CardRenderer
	dir      string
}

var _ ports.ImageCapturer = (*Exporter)(nil)

// NewExporter creates dir if needed.
func NewExporter(renderer ports.CardRenderer, dir string) (*Exporter, error) {
	abs, err := ensureDir(dir)
	if err != nil {
		return nil, err
	}

	return &Exporter{renderer: renderer, dir: abs}, nil
}

// CaptureViewAsImage implements ports.ImageCapturer.
func (e *Exporter) CaptureViewAsImage(ctx context.Context, card ports.QuoteCard) (string, error) {
	var buf bytes.Buffer

	err := e.renderer.RenderCard(ctx, card, &buf)
	if err != nil {
		return "", err
	}

	f, err := os.CreateTemp(e.dir, fmt.Sprintf("quote-%d-*.png", card.QuoteID))
	if err != nil {
		return "", fmt.Errorf("creating card file: %w", err)
	}

	_, err = f.Write(buf.Bytes())
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}

	if err != nil {
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("writing card file: %w", err)
	}

	return fileURI(f.Name()), nil
}

// Name implements ports.HealthChecker.
func (e *Exporter) Name() string { return "share-exporter" }

// Check implements ports.HealthChecker.
func (e *Exporter) Check(context.Context) error {
	return writable(e.dir)
}

// SheetConfig configures a DirectorySheet. An empty directory disables the
// matching target.
type SheetConfig struct {
	OutboxDir  string
	GalleryDir string
	Logger     *slog.Logger
}

// DirectorySheet shares by copying into an outbox directory and saves by
// copying into a gallery directory.
type DirectorySheet struct {
	outbox  string
	gallery string
	now     func() time.Time
	logger  *slog.Logger
}

var _ ports.ShareSheet = (*DirectorySheet)(nil)

// NewDirectorySheet creates the configured directories.
func NewDirectorySheet(cfg SheetConfig) (*DirectorySheet, error) {
	s := &DirectorySheet{now: time.Now, logger: cfg.Logger}
	if s.logger == nil {
		s.logger = slog.Default()
	}

	var err error

	if cfg.OutboxDir != "" {
		s.outbox, err = ensureDir(cfg.OutboxDir)
		if err != nil {
			return nil, err
		}
	}

	if cfg.GalleryDir != "" {
		s.gallery, err = ensureDir(cfg.GalleryDir)
		if err != nil {
			return nil, err
		}
	}

	return s, nil
}

// ShareFile implements ports.ShareSheet.
func (s *DirectorySheet) ShareFile(ctx context.Context, uri string) error {
	if s.outbox == "" {
		return domain.NewCapabilityError("sharing", "no outbox configured")
	}

	dst, err := copyInto(uri, s.outbox)
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "shared file", slog.String("path", dst))

	return nil
}

// SaveToGallery implements ports.ShareSheet.
func (s *DirectorySheet) SaveToGallery(ctx context.Context, uri string) error {
	if s.gallery == "" {
		return domain.NewCapabilityError("gallery", "no gallery configured")
	}

	dst, err := copyInto(uri, s.gallery)
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "saved to gallery", slog.String("path", dst))

	return nil
}

// ShareText implements ports.ShareSheet.
func (s *DirectorySheet) ShareText(ctx context.Context, text string) error {
	if s.outbox == "" {
		return domain.NewCapabilityError("sharing", "no outbox configured")
	}

	name := filepath.Join(s.outbox, fmt.Sprintf("share-%d.txt", s.now().UnixNano()))

	err := os.WriteFile(name, []byte(text), 0o600)
	if err != nil {
		return fmt.Errorf("writing shared text: %w", err)
	}

	s.logger.InfoContext(ctx, "shared text", slog.String("path", name))

	return nil
}

// Name implements ports.HealthChecker.
func (s *DirectorySheet) Name() string { return "share-sheet" }

// Check implements ports.HealthChecker.
func (s *DirectorySheet) Check(context.Context) error {
	for _, dir := range []string{s.outbox, s.gallery} {
		if dir == "" {
			continue
		}

		if err := writable(dir); err != nil {
			return err
		}
	}

	return nil
}

func ensureDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", dir, err)
	}

	err = os.MkdirAll(abs, 0o750)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", abs, err)
	}

	return abs, nil
}

func writable(dir string) error {
	f, err := os.CreateTemp(dir, ".health-*")
	if err != nil {
		return domain.NewUnavailableError("share", err.Error())
	}

	err = errors.Join(f.Close(), os.Remove(f.Name()))
	if err != nil {
		return domain.NewUnavailableError("share", err.Error())
	}

	return nil
}

func fileURI(path string) string {
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(path)}).String()
}

// pathFromURI accepts file URIs only.
func pathFromURI(uri string) (string, error) {
	u, err := url.Parse(uri)
	if err != nil || u.Scheme != "file" || u.Path == "" {
		return "", domain.NewValidationErrorWithValue("uri", "must be a file URI", uri)
	}

	return filepath.FromSlash(u.Path), nil
}

func copyInto(uri, dir string) (string, error) {
	src, err := pathFromURI(uri)
	if err != nil {
		return "", err
	}

	in, err := os.Open(src)
	if err != nil {
		if os.IsNotExist(err) {
			return "", domain.NewNotFoundError("file", uri)
		}

		return "", fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	dst := filepath.Join(dir, filepath.Base(src))

	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", dst, err)
	}

	_, err = io.Copy(out, in)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}

	if err != nil {
		return "", fmt.Errorf("copying to %s: %w", dst, err)
	}

	return dst, nil
}
