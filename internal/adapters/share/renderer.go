// Package share renders quote cards to PNG and delivers them to
// directory-backed share targets.
package share

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"strconv"
	"strings"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/jsamuelsen/quotevault/internal/ports"
)

// Card geometry at base resolution. The output is scaled by Renderer.scale.
const (
	baseSize    = 360
	border      = 6
	margin      = 24
	lineHeight  = 16
	textTop     = 84
	maxLines    = 14
	brandLabel  = "QuoteVault"
	ellipsis    = "..."
	defaultZoom = 3
)

var (
	cardBackground = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	cardText       = color.RGBA{R: 0x11, G: 0x11, B: 0x11, A: 0xFF}
	cardSubtext    = color.RGBA{R: 0x6B, G: 0x72, B: 0x80, A: 0xFF}
)

// Renderer draws quote cards with the built-in bitmap face.
type Renderer struct {
	face  font.Face
	scale int
}

var _ ports.CardRenderer = (*Renderer)(nil)

// NewRenderer returns a renderer producing square cards of 360*scale pixels.
// A scale below 1 uses the default of 3.
func NewRenderer(scale int) *Renderer {
	if scale < 1 {
		scale = defaultZoom
	}

	return &Renderer{face: basicfont.Face7x13, scale: scale}
}

// Size reports the edge length of rendered cards in pixels.
func (r *Renderer) Size() int {
	return baseSize * r.scale
}

// RenderCard implements ports.CardRenderer.
func (r *Renderer) RenderCard(ctx context.Context, card ports.QuoteCard, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := png.Encode(w, r.Compose(card))
	if err != nil {
		return fmt.Errorf("encoding card: %w", err)
	}

	return nil
}

// Compose draws card into a new image.
func (r *Renderer) Compose(card ports.QuoteCard) *image.RGBA {
	accent := parseHex(card.AccentHex)

	base := image.NewRGBA(image.Rect(0, 0, baseSize, baseSize))
	draw.Draw(base, base.Bounds(), image.NewUniform(accent), image.Point{}, draw.Src)
	inner := image.Rect(border, border, baseSize-border, baseSize-border)
	draw.Draw(base, inner, image.NewUniform(cardBackground), image.Point{}, draw.Src)

	r.text(base, accent, margin, margin+lineHeight, brandLabel)

	lines := wrap(r.face, asciiOnly(`"`+card.Text+`"`), baseSize-2*margin)
	if len(lines) > maxLines {
		lines = lines[:maxLines]
		lines[maxLines-1] = truncate(r.face, lines[maxLines-1]+" "+ellipsis, baseSize-2*margin)
	}

	y := textTop
	for _, line := range lines {
		r.text(base, cardText, margin, y, line)
		y += lineHeight
	}

	r.text(base, cardSubtext, margin, y+lineHeight, "- "+asciiOnly(card.Author))

	if r.scale == 1 {
		return base
	}

	out := image.NewRGBA(image.Rect(0, 0, r.Size(), r.Size()))
	xdraw.NearestNeighbor.Scale(out, out.Bounds(), base, base.Bounds(), xdraw.Src, nil)

	return out
}

func (r *Renderer) text(dst draw.Image, c color.Color, x, y int, s string) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: r.face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// wrap breaks s into lines no wider than width pixels. Words longer than
// a line are split.
func wrap(face font.Face, s string, width int) []string {
	limit := fixed.I(width)

	var (
		lines   []string
		current string
	)

	for _, word := range strings.Fields(s) {
		for font.MeasureString(face, word) > limit {
			cut := fit(face, word, limit)
			if current != "" {
				lines = append(lines, current)
				current = ""
			}

			lines = append(lines, word[:cut])
			word = word[cut:]
		}

		candidate := word
		if current != "" {
			candidate = current + " " + word
		}

		if font.MeasureString(face, candidate) <= limit {
			current = candidate
			continue
		}

		lines = append(lines, current)
		current = word
	}

	if current != "" {
		lines = append(lines, current)
	}

	return lines
}

// fit returns how many leading bytes of s fit within limit. At least one.
func fit(face font.Face, s string, limit fixed.Int26_6) int {
	n := 1
	for n < len(s) && font.MeasureString(face, s[:n+1]) <= limit {
		n++
	}

	return n
}

func truncate(face font.Face, s string, width int) string {
	limit := fixed.I(width)
	for len(s) > len(ellipsis) && font.MeasureString(face, s) > limit {
		s = s[:len(s)-len(ellipsis)-1] + ellipsis
	}

	return s
}

// asciiOnly replaces runes the bitmap face cannot draw.
func asciiOnly(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\u2014' || r == '\u2013':
			return '-'
		case r == '\u201c' || r == '\u201d':
			return '"'
		case r == '\u2018' || r == '\u2019':
			return '\''
		case r == '\n' || r == '\t':
			return ' '
		case r < 0x20 || r > 0x7e:
			return '?'
		default:
			return r
		}
	}, s)
}

// parseHex decodes "#RRGGBB"; anything else yields the default text color.
func parseHex(hex string) color.RGBA {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return cardText
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return cardText
	}

	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xFF}
}
