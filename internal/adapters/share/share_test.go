package share

import (
	"bytes"
	"context"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotevault/internal/domain"
	"github.com/jsamuelsen/quotevault/internal/ports"
)

func testCard() ports.QuoteCard {
	return ports.QuoteCard{
		QuoteID:   7,
		Text:      "The obstacle is the way.",
		Author:    "Marcus Aurelius",
		AccentHex: domain.AccentPurple.Hex(),
	}
}

func TestRenderer_RenderCard(t *testing.T) {
	r := NewRenderer(2)

	var buf bytes.Buffer
	require.NoError(t, r.RenderCard(context.Background(), testCard(), &buf))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 720, img.Bounds().Dx())
	assert.Equal(t, 720, img.Bounds().Dy())

	// The border carries the accent color.
	got := img.At(1, 1)
	assert.Equal(t, parseHex(domain.AccentPurple.Hex()), got)
}

func TestRenderer_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewRenderer(1).RenderCard(ctx, testCard(), &bytes.Buffer{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWrap(t *testing.T) {
	face := NewRenderer(1).face
	width := baseSize - 2*margin

	lines := wrap(face, strings.Repeat("persevere ", 40), width)
	require.Greater(t, len(lines), 1)

	for _, l := range lines {
		assert.LessOrEqual(t, len(l)*7, width, l)
	}

	long := wrap(face, strings.Repeat("x", 100), width)
	assert.Equal(t, strings.Repeat("x", 100), strings.Join(long, ""))
}

func TestAsciiOnly(t *testing.T) {
	assert.Equal(t, `"Go" - 'now'?`, asciiOnly("“Go” — ‘now’é"))
}

func TestParseHex(t *testing.T) {
	assert.Equal(t, uint8(0x25), parseHex("#2563EB").R)
	assert.Equal(t, cardText, parseHex("blue"))
	assert.Equal(t, cardText, parseHex("#GGGGGG"))
}

func TestExporterAndSheet(t *testing.T) {
	root := t.TempDir()
	ctx := context.Background()

	exporter, err := NewExporter(NewRenderer(1), filepath.Join(root, "exports"))
	require.NoError(t, err)

	uri, err := exporter.CaptureViewAsImage(ctx, testCard())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(uri, "file://"), uri)
	assert.Contains(t, uri, "quote-7-")

	sheet, err := NewDirectorySheet(SheetConfig{
		OutboxDir:  filepath.Join(root, "outbox"),
		GalleryDir: filepath.Join(root, "gallery"),
	})
	require.NoError(t, err)

	require.NoError(t, sheet.SaveToGallery(ctx, uri))
	require.NoError(t, sheet.ShareFile(ctx, uri))
	require.NoError(t, sheet.ShareText(ctx, "\"Go.\"\n— Unknown\n\nvia QuoteVault"))

	gallery, err := os.ReadDir(filepath.Join(root, "gallery"))
	require.NoError(t, err)
	assert.Len(t, gallery, 1)

	outbox, err := os.ReadDir(filepath.Join(root, "outbox"))
	require.NoError(t, err)
	assert.Len(t, outbox, 2)

	require.NoError(t, exporter.Check(ctx))
	require.NoError(t, sheet.Check(ctx))
}

func TestDirectorySheet_Errors(t *testing.T) {
	ctx := context.Background()

	sheet, err := NewDirectorySheet(SheetConfig{})
	require.NoError(t, err)

	assert.True(t, domain.IsCapabilityUnavailable(sheet.ShareText(ctx, "x")))
	assert.True(t, domain.IsCapabilityUnavailable(sheet.SaveToGallery(ctx, "file:///tmp/x.png")))

	sheet, err = NewDirectorySheet(SheetConfig{GalleryDir: t.TempDir()})
	require.NoError(t, err)

	assert.True(t, domain.IsValidation(sheet.SaveToGallery(ctx, "https://example.com/card.png")))
	assert.True(t, domain.IsNotFound(sheet.SaveToGallery(ctx, "file:///does/not/exist.png")))
}

func TestWritable(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, writable(dir))

	left, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, left, "the check removes its temp file")

	err = writable(filepath.Join(dir, "missing"))
	require.Error(t, err)
	assert.True(t, domain.IsUnavailable(err))
}
