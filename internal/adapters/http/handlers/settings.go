package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotevault/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotevault/internal/app"
	"github.com/jsamuelsen/quotevault/internal/domain"
)

// SettingsHandler serves the signed-in user's appearance and reminder
// settings.
type SettingsHandler struct {
	sessions SessionSource
}

// NewSettingsHandler creates a settings handler.
func NewSettingsHandler(sessions SessionSource) *SettingsHandler {
	return &SettingsHandler{sessions: sessions}
}

// Get handles GET /settings. With ?sync=true the remote row is merged into
// the local settings first.
func (h *SettingsHandler) Get(c *gin.Context) {
	s, ok := userSession(c, h.sessions)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	settings := s.Settings.Load(ctx)

	if c.Query("sync") == "true" {
		settings = s.Settings.ReconcileWithRemote(ctx, settings)
	}

	c.JSON(http.StatusOK, dto.NewSettingsResponse(settings))
}

// Put handles PUT /settings.
func (h *SettingsHandler) Put(c *gin.Context) {
	var req dto.SettingsRequest
	if !bind(c, &req) {
		return
	}

	settings := req.ToDomain()
	if err := settings.Validate(); err != nil {
		dto.HandleError(c, err)
		return
	}

	s, ok := userSession(c, h.sessions)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, dto.NewSettingsResponse(s.Settings.Update(c.Request.Context(), settings)))
}

// Palette handles GET /settings/palette.
func (h *SettingsHandler) Palette(c *gin.Context) {
	s, ok := userSession(c, h.sessions)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, s.Settings.Load(c.Request.Context()).Palette())
}

// SetNotificationTime handles PUT /settings/notification-time.
func (h *SettingsHandler) SetNotificationTime(c *gin.Context) {
	var req dto.NotificationTimeRequest
	if !bind(c, &req) {
		return
	}

	s, ok := userSession(c, h.sessions)
	if !ok {
		return
	}

	settings, err := s.Settings.SetNotificationTime(c.Request.Context(), req.Time)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSettingsResponse(settings))
}

// step adapts a one-shot settings mutation into a handler.
func (h *SettingsHandler) step(apply func(*app.SettingsStore, context.Context) domain.UserSettings) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := userSession(c, h.sessions)
		if !ok {
			return
		}

		c.JSON(http.StatusOK, dto.NewSettingsResponse(apply(s.Settings, c.Request.Context())))
	}
}

// RegisterSettingsRoutes registers settings routes on rg.
func (h *SettingsHandler) RegisterSettingsRoutes(rg *gin.RouterGroup) {
	settings := rg.Group("/settings")
	settings.GET("", h.Get)
	settings.PUT("", h.Put)
	settings.GET("/palette", h.Palette)
	settings.PUT("/notification-time", h.SetNotificationTime)
	settings.POST("/font/increase", h.step((*app.SettingsStore).IncreaseFont))
	settings.POST("/font/decrease", h.step((*app.SettingsStore).DecreaseFont))
	settings.POST("/accent/cycle", h.step((*app.SettingsStore).CycleAccent))
	settings.POST("/theme/toggle", h.step((*app.SettingsStore).ToggleTheme))
}
