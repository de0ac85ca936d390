package dto

import (
	"time"

	"github.com/jsamuelsen/quotevault/internal/domain"
)

// SettingsRequest replaces the whole settings record.
type SettingsRequest struct {
	ThemeMode        string `json:"themeMode"        validate:"required,oneof=light dark"`
	AccentColor      string `json:"accentColor"      validate:"required,oneof=black blue purple"`
	FontSize         int    `json:"fontSize"         validate:"required,min=12,max=22"`
	NotificationTime string `json:"notificationTime" validate:"required,hhmm"`
}

// ToDomain converts the request to domain settings.
func (r *SettingsRequest) ToDomain() domain.UserSettings {
	return domain.UserSettings{
		ThemeMode:        domain.ThemeMode(r.ThemeMode),
		AccentColor:      domain.AccentColor(r.AccentColor),
		FontSize:         r.FontSize,
		NotificationTime: r.NotificationTime,
	}
}

// NotificationTimeRequest sets the daily reminder time.
type NotificationTimeRequest struct {
	Time string `json:"time" validate:"required,hhmm"`
}

// SettingsResponse is a user's settings with the accent rendered as hex.
type SettingsResponse struct {
	domain.UserSettings

	AccentHex string `json:"accentHex"`
}

// NewSettingsResponse converts domain settings.
func NewSettingsResponse(s domain.UserSettings) SettingsResponse {
	return SettingsResponse{UserSettings: s, AccentHex: s.AccentColor.Hex()}
}

// CollectionRequest creates a collection.
type CollectionRequest struct {
	Name string `json:"name" validate:"required,notempty,max=60"`
}

// CollectionResponse is a collection without its quotes.
type CollectionResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewCollectionResponses converts collections.
func NewCollectionResponses(cs []domain.Collection) []CollectionResponse {
	out := make([]CollectionResponse, 0, len(cs))
	for _, c := range cs {
		out = append(out, CollectionResponse{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt})
	}

	return out
}

// ScheduleRequest schedules the daily reminder. An empty time uses the
// user's saved notification time.
type ScheduleRequest struct {
	Time string `json:"time" validate:"omitempty,hhmm"`
}

// NotificationResponse describes a scheduled reminder.
type NotificationResponse struct {
	Hour   int    `json:"hour"`
	Minute int    `json:"minute"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

// NewNotificationResponse converts a scheduled notification.
func NewNotificationResponse(n domain.DailyNotification) NotificationResponse {
	return NotificationResponse{Hour: n.Hour, Minute: n.Minute, Title: n.Title, Body: n.Body}
}

// DeviceRequest registers a push token.
type DeviceRequest struct {
	Token    string `json:"token"    validate:"required,notempty,max=4096"`
	Platform string `json:"platform" validate:"required,oneof=android ios web"`
}

// DeviceResponse is a registered device.
type DeviceResponse struct {
	Platform  string    `json:"platform"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ShareRequest carries optional accent overrides for share endpoints.
type ShareRequest struct {
	Accent string `json:"accent" form:"accent" validate:"omitempty,oneof=black blue purple"`
}

// ShareTextResponse returns the formatted share text.
type ShareTextResponse struct {
	Text string `json:"text"`
}

// ShareFileResponse returns the URI of the exported card.
type ShareFileResponse struct {
	URI string `json:"uri"`
}
