package domain

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ThemeMode selects the light or dark palette.
type ThemeMode string

// Theme modes.
const (
	ThemeLight ThemeMode = "light"
	ThemeDark  ThemeMode = "dark"
)

// Toggle returns the opposite mode.
func (m ThemeMode) Toggle() ThemeMode {
	if m == ThemeDark {
		return ThemeLight
	}

	return ThemeDark
}

// Valid reports whether m is a known mode.
func (m ThemeMode) Valid() bool {
	return m == ThemeLight || m == ThemeDark
}

// AccentColor is one of a fixed, ordered set of accent colors.
type AccentColor string

// Accent colors, in cycle order.
const (
	AccentBlack  AccentColor = "black"
	AccentBlue   AccentColor = "blue"
	AccentPurple AccentColor = "purple"
)

// AccentCycle is the order Next walks through.
var AccentCycle = []AccentColor{AccentBlack, AccentBlue, AccentPurple}

var accentHex = map[AccentColor]string{
	AccentBlack:  "#111111",
	AccentBlue:   "#2563EB",
	AccentPurple: "#7C3AED",
}

// Valid reports whether c is a known accent.
func (c AccentColor) Valid() bool {
	_, ok := accentHex[c]
	return ok
}

// Next returns the accent after c. Unknown accents restart the cycle.
func (c AccentColor) Next() AccentColor {
	for i, a := range AccentCycle {
		if a == c {
			return AccentCycle[(i+1)%len(AccentCycle)]
		}
	}

	return AccentCycle[0]
}

// Hex returns the hex code stored remotely for c. Unknown accents map to black.
func (c AccentColor) Hex() string {
	if h, ok := accentHex[c]; ok {
		return h
	}

	return accentHex[AccentBlack]
}

// AccentFromHex maps a remote hex code back to an accent. Anything other than
// the blue or purple codes reads as black.
func AccentFromHex(hex string) AccentColor {
	switch strings.ToUpper(strings.TrimSpace(hex)) {
	case accentHex[AccentBlue]:
		return AccentBlue
	case accentHex[AccentPurple]:
		return AccentPurple
	default:
		return AccentBlack
	}
}

// Font size bounds applied by explicit increment and decrement.
const (
	MinFontSize     = 12
	MaxFontSize     = 22
	DefaultFontSize = 16
)

// DefaultNotificationTime is the daily notification time for new users.
const DefaultNotificationTime = "08:00"

// UserSettings is the complete preference record.
type UserSettings struct {
	ThemeMode        ThemeMode   `json:"themeMode"`
	AccentColor      AccentColor `json:"accentColor"`
	FontSize         int         `json:"fontSize"`
	NotificationTime string      `json:"notificationTime"`
}

// DefaultSettings returns the settings used before anything is persisted.
func DefaultSettings() UserSettings {
	return UserSettings{
		ThemeMode:        ThemeLight,
		AccentColor:      AccentBlack,
		FontSize:         DefaultFontSize,
		NotificationTime: DefaultNotificationTime,
	}
}

// IncreaseFont returns s with the font one step larger, saturating at MaxFontSize.
func (s UserSettings) IncreaseFont() UserSettings {
	s.FontSize = clampFont(s.FontSize + 1)
	return s
}

// DecreaseFont returns s with the font one step smaller, saturating at MinFontSize.
func (s UserSettings) DecreaseFont() UserSettings {
	s.FontSize = clampFont(s.FontSize - 1)
	return s
}

func clampFont(size int) int {
	return min(max(size, MinFontSize), MaxFontSize)
}

// Validate checks the fields a client may set directly.
func (s UserSettings) Validate() error {
	if !s.ThemeMode.Valid() {
		return NewValidationErrorWithValue("themeMode", "must be light or dark", s.ThemeMode)
	}

	if !s.AccentColor.Valid() {
		return NewValidationErrorWithValue("accentColor", "must be black, blue or purple", s.AccentColor)
	}

	if s.FontSize < MinFontSize || s.FontSize > MaxFontSize {
		return NewValidationErrorWithValue("fontSize", "must be between 12 and 22", s.FontSize)
	}

	return ValidateNotificationTime(s.NotificationTime)
}

// SettingsPatch is a partial settings record. Nil fields are absent.
type SettingsPatch struct {
	ThemeMode        *ThemeMode   `json:"themeMode,omitempty"`
	AccentColor      *AccentColor `json:"accentColor,omitempty"`
	FontSize         *int         `json:"fontSize,omitempty"`
	NotificationTime *string      `json:"notificationTime,omitempty"`
}

// Apply overlays the present fields of p onto base.
func (p SettingsPatch) Apply(base UserSettings) UserSettings {
	if p.ThemeMode != nil {
		base.ThemeMode = *p.ThemeMode
	}

	if p.AccentColor != nil {
		base.AccentColor = *p.AccentColor
	}

	if p.FontSize != nil {
		base.FontSize = *p.FontSize
	}

	if p.NotificationTime != nil {
		base.NotificationTime = *p.NotificationTime
	}

	return base
}

// FontScale converts a font size to the remote scale factor.
func FontScale(fontSize int) float64 {
	return float64(fontSize) / DefaultFontSize
}

// FontSizeFromScale converts a remote scale factor to a font size.
func FontSizeFromScale(scale float64) int {
	return int(math.Round(scale * DefaultFontSize))
}

var notificationTimePattern = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)

// ValidateNotificationTime checks a 24-hour "HH:MM" string.
func ValidateNotificationTime(t string) error {
	if !notificationTimePattern.MatchString(t) {
		return NewValidationErrorWithValue("notificationTime", "must be HH:MM in 24-hour time", t)
	}

	return nil
}

// ParseNotificationTime splits "HH:MM" leniently. An unparsable hour falls
// back to 8 and an unparsable minute to 0.
func ParseNotificationTime(t string) (hour, minute int) {
	hourPart, minutePart, _ := strings.Cut(strings.TrimSpace(t), ":")

	hour, err := strconv.Atoi(strings.TrimSpace(hourPart))
	if err != nil {
		hour = 8
	}

	minute, err = strconv.Atoi(strings.TrimSpace(minutePart))
	if err != nil {
		minute = 0
	}

	return hour, minute
}

// Palette is the color set a client renders with.
type Palette struct {
	IsDark     bool   `json:"isDark"`
	Background string `json:"bg"`
	Card       string `json:"card"`
	Border     string `json:"border"`
	Text       string `json:"text"`
	Sub        string `json:"sub"`
	Accent     string `json:"accent"`
	FontSize   int    `json:"fontSize"`
}

// Palette derives the render palette from s.
func (s UserSettings) Palette() Palette {
	p := Palette{
		IsDark:   s.ThemeMode == ThemeDark,
		Accent:   s.AccentColor.Hex(),
		FontSize: s.FontSize,
	}

	if p.IsDark {
		p.Background, p.Card, p.Border, p.Text, p.Sub = "#0B0B0B", "#141414", "#262626", "#FFFFFF", "#C7C7C7"
	} else {
		p.Background, p.Card, p.Border, p.Text, p.Sub = "#FFFFFF", "#FFFFFF", "#E5E7EB", "#111111", "#6B7280"
	}

	return p
}
