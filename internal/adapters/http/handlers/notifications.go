package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotevault/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotevault/internal/app"
)

// NotificationHandler schedules daily reminders and registers push devices.
type NotificationHandler struct {
	notifications *app.NotificationService
	devices       *app.DeviceService
	sessions      SessionSource
}

// NewNotificationHandler creates a notification handler.
func NewNotificationHandler(notifications *app.NotificationService, devices *app.DeviceService, sessions SessionSource) *NotificationHandler {
	return &NotificationHandler{
		notifications: notifications,
		devices:       devices,
		sessions:      sessions,
	}
}

// Schedule handles POST /notifications/schedule. Without a time in the body
// the user's saved notification time is used.
func (h *NotificationHandler) Schedule(c *gin.Context) {
	var req dto.ScheduleRequest
	if c.Request.ContentLength != 0 && !bind(c, &req) {
		return
	}

	at := req.Time
	if at == "" {
		s, ok := userSession(c, h.sessions)
		if !ok {
			return
		}
		at = s.Settings.Load(c.Request.Context()).NotificationTime
	}

	n, err := h.notifications.ScheduleDaily(c.Request.Context(), at)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewNotificationResponse(n))
}

// Cancel handles DELETE /notifications.
func (h *NotificationHandler) Cancel(c *gin.Context) {
	if err := h.notifications.Cancel(c.Request.Context()); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// RegisterDevice handles POST /devices.
func (h *NotificationHandler) RegisterDevice(c *gin.Context) {
	var req dto.DeviceRequest
	if !bind(c, &req) {
		return
	}

	d, err := h.devices.RegisterDevice(c.Request.Context(), req.Token, req.Platform)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.DeviceResponse{Platform: d.Platform, UpdatedAt: d.UpdatedAt})
}

// RegisterNotificationRoutes registers notification and device routes on rg.
func (h *NotificationHandler) RegisterNotificationRoutes(rg *gin.RouterGroup) {
	rg.POST("/notifications/schedule", h.Schedule)
	rg.DELETE("/notifications", h.Cancel)
	rg.POST("/devices", h.RegisterDevice)
}
