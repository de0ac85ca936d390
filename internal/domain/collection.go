package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// MaxCollectionNameLength bounds collection names, in runes.
const MaxCollectionNameLength = 60

// Collection is a user-named grouping of quotes.
type Collection struct {
	ID        string
	UserID    string
	Name      string
	CreatedAt time.Time
}

// NormalizeCollectionName trims name and checks its length.
func NormalizeCollectionName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", NewValidationError("name", "cannot be empty")
	}

	if utf8.RuneCountInString(name) > MaxCollectionNameLength {
		return "", NewValidationErrorWithValue("name", "must be at most 60 characters", name)
	}

	return name, nil
}

// Device is a push notification target registered by a user.
type Device struct {
	UserID    string
	Token     string
	Platform  string
	UpdatedAt time.Time
}
