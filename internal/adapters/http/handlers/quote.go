package handlers

import (
	"bytes"
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotevault/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotevault/internal/app"
	"github.com/jsamuelsen/quotevault/internal/domain"
)

// QuoteHandler serves single quotes, the quote of the day, categories and
// the share endpoints.
type QuoteHandler struct {
	quotes   *app.QuoteService
	share    *app.ShareService
	sessions SessionSource
}

// NewQuoteHandler creates a quote handler. share and sessions may be nil
// when only the public routes are registered.
func NewQuoteHandler(quotes *app.QuoteService, share *app.ShareService, sessions SessionSource) *QuoteHandler {
	return &QuoteHandler{
		quotes:   quotes,
		share:    share,
		sessions: sessions,
	}
}

// Today handles GET /quotes/today. It returns 204 when the corpus is empty.
func (h *QuoteHandler) Today(c *gin.Context) {
	q, err := h.quotes.QuoteOfTheDay(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	if q == nil {
		c.Status(http.StatusNoContent)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuoteResponse(q))
}

// Categories handles GET /categories.
func (h *QuoteHandler) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, dto.CategoriesResponse{Categories: domain.Categories})
}

// GetQuoteByID handles GET /quotes/:id.
func (h *QuoteHandler) GetQuoteByID(c *gin.Context) {
	q, ok := h.quote(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, dto.NewQuoteResponse(q))
}

// ShareText handles POST /quotes/:id/share/text.
func (h *QuoteHandler) ShareText(c *gin.Context) {
	q, ok := h.quote(c)
	if !ok {
		return
	}

	text, err := h.share.ShareText(c.Request.Context(), q)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ShareTextResponse{Text: text})
}

// ShareImage handles POST /quotes/:id/share/image.
func (h *QuoteHandler) ShareImage(c *gin.Context) {
	h.exportWith(c, h.share.ShareImage)
}

// SaveImage handles POST /quotes/:id/share/save.
func (h *QuoteHandler) SaveImage(c *gin.Context) {
	h.exportWith(c, h.share.SaveImage)
}

// Card handles GET /quotes/:id/card.png. The accent defaults to the
// caller's setting and can be overridden with ?accent=.
func (h *QuoteHandler) Card(c *gin.Context) {
	var req dto.ShareRequest
	if err := dto.BindQueryAndValidate(c, &req); err != nil {
		dto.HandleBindError(c, err)
		return
	}

	q, ok := h.quote(c)
	if !ok {
		return
	}

	accent, ok := h.accent(c, req.Accent)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.share.RenderCard(c.Request.Context(), q, accent, &buf); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Header("Cache-Control", "private, max-age=300")
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

type exportFunc func(ctx context.Context, q *domain.Quote, accent domain.AccentColor) (string, error)

func (h *QuoteHandler) exportWith(c *gin.Context, export exportFunc) {
	var req dto.ShareRequest
	if c.Request.ContentLength != 0 && !bind(c, &req) {
		return
	}

	q, ok := h.quote(c)
	if !ok {
		return
	}

	accent, ok := h.accent(c, req.Accent)
	if !ok {
		return
	}

	uri, err := export(c.Request.Context(), q, accent)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ShareFileResponse{URI: uri})
}

func (h *QuoteHandler) quote(c *gin.Context) (*domain.Quote, bool) {
	id, ok := int64Param(c, "id")
	if !ok {
		return nil, false
	}

	q, err := h.quotes.GetQuoteByID(c.Request.Context(), id)
	if err != nil {
		dto.HandleError(c, err)
		return nil, false
	}

	return q, true
}

// accent returns override when set, else the caller's accent setting.
func (h *QuoteHandler) accent(c *gin.Context, override string) (domain.AccentColor, bool) {
	if override != "" {
		return domain.AccentColor(override), true
	}

	s, ok := userSession(c, h.sessions)
	if !ok {
		return "", false
	}

	return s.Settings.Load(c.Request.Context()).AccentColor, true
}

// RegisterPublicRoutes registers routes that need no authentication.
func (h *QuoteHandler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/quotes/today", h.Today)
	rg.GET("/categories", h.Categories)
}

// RegisterQuoteRoutes registers the authenticated quote routes.
func (h *QuoteHandler) RegisterQuoteRoutes(rg *gin.RouterGroup) {
	quotes := rg.Group("/quotes")
	quotes.GET("/:id", h.GetQuoteByID)
	quotes.GET("/:id/card.png", h.Card)
	quotes.POST("/:id/share/text", h.ShareText)
	quotes.POST("/:id/share/image", h.ShareImage)
	quotes.POST("/:id/share/save", h.SaveImage)
}
