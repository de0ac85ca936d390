package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotevault/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotevault/internal/app"
	"github.com/jsamuelsen/quotevault/internal/domain"
)

// LibraryHandler serves favorites and collections.
type LibraryHandler struct {
	favorites   *app.FavoriteService
	collections *app.CollectionService
}

// NewLibraryHandler creates a library handler.
func NewLibraryHandler(favorites *app.FavoriteService, collections *app.CollectionService) *LibraryHandler {
	return &LibraryHandler{favorites: favorites, collections: collections}
}

// Favorites handles GET /favorites?limit=&cursor=.
func (h *LibraryHandler) Favorites(c *gin.Context) {
	var page dto.PaginationRequest
	if err := dto.BindQueryAndValidate(c, &page); err != nil {
		dto.HandleBindError(c, err)
		return
	}

	quotes, err := h.favorites.FavoriteQuotes(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	h.respondPage(c, quotes, &page)
}

// ListCollections handles GET /collections.
func (h *LibraryHandler) ListCollections(c *gin.Context) {
	cs, err := h.collections.List(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCollectionResponses(cs))
}

// CreateCollection handles POST /collections.
func (h *LibraryHandler) CreateCollection(c *gin.Context) {
	var req dto.CollectionRequest
	if !bind(c, &req) {
		return
	}

	created, err := h.collections.Create(c.Request.Context(), req.Name)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.CollectionResponse{
		ID:        created.ID,
		Name:      created.Name,
		CreatedAt: created.CreatedAt,
	})
}

// DeleteCollection handles DELETE /collections/:id.
func (h *LibraryHandler) DeleteCollection(c *gin.Context) {
	if err := h.collections.Delete(c.Request.Context(), c.Param("id")); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// CollectionQuotes handles GET /collections/:id/quotes?limit=&cursor=.
func (h *LibraryHandler) CollectionQuotes(c *gin.Context) {
	var page dto.PaginationRequest
	if err := dto.BindQueryAndValidate(c, &page); err != nil {
		dto.HandleBindError(c, err)
		return
	}

	quotes, err := h.collections.Quotes(c.Request.Context(), c.Param("id"))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	h.respondPage(c, quotes, &page)
}

// AddToCollection handles PUT /collections/:id/quotes/:quoteId.
func (h *LibraryHandler) AddToCollection(c *gin.Context) {
	quoteID, ok := int64Param(c, "quoteId")
	if !ok {
		return
	}

	if err := h.collections.AddQuote(c.Request.Context(), c.Param("id"), quoteID); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// RemoveFromCollection handles DELETE /collections/:id/quotes/:quoteId.
func (h *LibraryHandler) RemoveFromCollection(c *gin.Context) {
	quoteID, ok := int64Param(c, "quoteId")
	if !ok {
		return
	}

	if err := h.collections.RemoveQuote(c.Request.Context(), c.Param("id"), quoteID); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *LibraryHandler) respondPage(c *gin.Context, quotes []*domain.Quote, page *dto.PaginationRequest) {
	resp, err := dto.PageQuotes(quotes, page)
	if err != nil {
		dto.BadRequest(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, resp)
}

// RegisterLibraryRoutes registers favorites and collection routes on rg.
func (h *LibraryHandler) RegisterLibraryRoutes(rg *gin.RouterGroup) {
	rg.GET("/favorites", h.Favorites)

	collections := rg.Group("/collections")
	collections.GET("", h.ListCollections)
	collections.POST("", h.CreateCollection)
	collections.DELETE("/:id", h.DeleteCollection)
	collections.GET("/:id/quotes", h.CollectionQuotes)
	collections.PUT("/:id/quotes/:quoteId", h.AddToCollection)
	collections.DELETE("/:id/quotes/:quoteId", h.RemoveFromCollection)
}
