package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotevault/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotevault/internal/domain"
)

func TestSettingsHandler_GetDefaults(t *testing.T) {
	api := newTestAPI(t, 3)

	w := api.do(t, http.MethodGet, "/api/v1/settings", nil)
	require.Equal(t, http.StatusOK, w.Code)

	got := decode[dto.SettingsResponse](t, w)
	assert.Equal(t, domain.DefaultSettings(), got.UserSettings)
	assert.Equal(t, "#111111", got.AccentHex)
}

func TestSettingsHandler_RequiresUser(t *testing.T) {
	api := newTestAPI(t, 3)

	w := api.doAs(t, "", http.MethodGet, "/api/v1/settings", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSettingsHandler_Put(t *testing.T) {
	api := newTestAPI(t, 3)

	tests := []struct {
		name       string
		body       map[string]any
		wantStatus int
	}{
		{
			name:       "valid settings",
			body:       map[string]any{"themeMode": "dark", "accentColor": "purple", "fontSize": 20, "notificationTime": "07:15"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "font out of range",
			body:       map[string]any{"themeMode": "dark", "accentColor": "purple", "fontSize": 40, "notificationTime": "07:15"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "bad time",
			body:       map[string]any{"themeMode": "light", "accentColor": "blue", "fontSize": 16, "notificationTime": "7:15pm"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing theme",
			body:       map[string]any{"accentColor": "blue", "fontSize": 16, "notificationTime": "07:15"},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := api.do(t, http.MethodPut, "/api/v1/settings", tt.body)
			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
		})
	}

	got := decode[dto.SettingsResponse](t, api.do(t, http.MethodGet, "/api/v1/settings", nil))
	assert.Equal(t, domain.UserSettings{
		ThemeMode:        domain.ThemeDark,
		AccentColor:      domain.AccentPurple,
		FontSize:         20,
		NotificationTime: "07:15",
	}, got.UserSettings)
}

func TestSettingsHandler_Steps(t *testing.T) {
	api := newTestAPI(t, 3)

	w := api.do(t, http.MethodPost, "/api/v1/settings/font/increase", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.DefaultFontSize+1, decode[dto.SettingsResponse](t, w).FontSize)

	w = api.do(t, http.MethodPost, "/api/v1/settings/accent/cycle", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.AccentBlue, decode[dto.SettingsResponse](t, w).AccentColor)

	w = api.do(t, http.MethodPost, "/api/v1/settings/theme/toggle", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.ThemeDark, decode[dto.SettingsResponse](t, w).ThemeMode)

	for range 20 {
		w = api.do(t, http.MethodPost, "/api/v1/settings/font/decrease", nil)
	}
	assert.Equal(t, domain.MinFontSize, decode[dto.SettingsResponse](t, w).FontSize)
}

func TestSettingsHandler_PerUser(t *testing.T) {
	api := newTestAPI(t, 3)

	api.doAs(t, "alice", http.MethodPost, "/api/v1/settings/theme/toggle", nil)

	alice := decode[dto.SettingsResponse](t, api.doAs(t, "alice", http.MethodGet, "/api/v1/settings", nil))
	bob := decode[dto.SettingsResponse](t, api.doAs(t, "bob", http.MethodGet, "/api/v1/settings", nil))

	assert.Equal(t, domain.ThemeDark, alice.ThemeMode)
	assert.Equal(t, domain.ThemeLight, bob.ThemeMode)
}

func TestSettingsHandler_Palette(t *testing.T) {
	api := newTestAPI(t, 3)
	api.do(t, http.MethodPost, "/api/v1/settings/theme/toggle", nil)

	w := api.do(t, http.MethodGet, "/api/v1/settings/palette", nil)
	require.Equal(t, http.StatusOK, w.Code)

	got := decode[domain.Palette](t, w)
	assert.True(t, got.IsDark)
	assert.Equal(t, "#0B0B0B", got.Background)
	assert.Equal(t, domain.DefaultFontSize, got.FontSize)
}

func TestSettingsHandler_SetNotificationTime(t *testing.T) {
	api := newTestAPI(t, 3)

	w := api.do(t, http.MethodPut, "/api/v1/settings/notification-time", map[string]string{"time": "21:45"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "21:45", decode[dto.SettingsResponse](t, w).NotificationTime)

	w = api.do(t, http.MethodPut, "/api/v1/settings/notification-time", map[string]string{"time": "25:00"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
