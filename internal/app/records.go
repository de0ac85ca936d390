package app

import (
	"time"

	"github.com/jsamuelsen/quotevault/internal/domain"
	"github.com/jsamuelsen/quotevault/internal/ports"
)

// Column names shared by the record store tables.
const (
	colID           = "id"
	colUserID       = "user_id"
	colQuote        = "quote"
	colAuthor       = "author"
	colCategory     = "category"
	colQuoteID      = "quote_id"
	colCollectionID = "collection_id"
	colName         = "name"
	colCreatedAt    = "created_at"
	colUpdatedAt    = "updated_at"
	colTheme        = "theme"
	colAccent       = "accent"
	colFontScale    = "font_scale"
	colNotifyTime   = "notify_time"
	colToken        = "token"
	colPlatform     = "platform"
)

func quoteFromRecord(rec ports.Record) (*domain.Quote, bool) {
	id, ok := rec.Int64(colID)
	if !ok {
		return nil, false
	}

	return &domain.Quote{
		ID:       id,
		Text:     rec.String(colQuote),
		Author:   rec.StringPtr(colAuthor),
		Category: rec.StringPtr(colCategory),
	}, true
}

// quotesFromRecords skips rows without a usable id.
func quotesFromRecords(recs []ports.Record) []*domain.Quote {
	quotes := make([]*domain.Quote, 0, len(recs))

	for _, rec := range recs {
		if q, ok := quoteFromRecord(rec); ok {
			quotes = append(quotes, q)
		}
	}

	return quotes
}

func collectionFromRecord(rec ports.Record) domain.Collection {
	created, _ := rec.Time(colCreatedAt)

	return domain.Collection{
		ID:        rec.String(colID),
		UserID:    rec.String(colUserID),
		Name:      rec.String(colName),
		CreatedAt: created,
	}
}

func quoteIDsFromRecords(recs []ports.Record) []int64 {
	ids := make([]int64, 0, len(recs))

	for _, rec := range recs {
		if id, ok := rec.Int64(colQuoteID); ok {
			ids = append(ids, id)
		}
	}

	return ids
}

// settingsRecord is the user_settings row for s.
func settingsRecord(userID string, s domain.UserSettings, now time.Time) ports.Record {
	return ports.Record{
		colUserID:     userID,
		colTheme:      string(s.ThemeMode),
		colAccent:     s.AccentColor.Hex(),
		colFontScale:  domain.FontScale(s.FontSize),
		colNotifyTime: s.NotificationTime,
		colUpdatedAt:  now.UTC(),
	}
}

// settingsPatchFromRecord reads a user_settings row. Columns missing from rec
// stay absent in the patch; null columns read as their defaults.
func settingsPatchFromRecord(rec ports.Record) domain.SettingsPatch {
	var patch domain.SettingsPatch

	if _, ok := rec[colTheme]; ok {
		theme := domain.ThemeMode(rec.String(colTheme))
		if theme == "" {
			theme = domain.ThemeLight
		}

		patch.ThemeMode = &theme
	}

	if _, ok := rec[colAccent]; ok {
		accent := domain.AccentFromHex(rec.String(colAccent))
		patch.AccentColor = &accent
	}

	if _, ok := rec[colFontScale]; ok {
		scale, ok := rec.Float64(colFontScale)
		if !ok {
			scale = 1
		}

		size := domain.FontSizeFromScale(scale)
		patch.FontSize = &size
	}

	if _, ok := rec[colNotifyTime]; ok {
		t := rec.String(colNotifyTime)
		if t == "" {
			t = domain.DefaultNotificationTime
		}

		patch.NotificationTime = &t
	}

	return patch
}

func int64sToAny(ids []int64) []any {
	out := make([]any, len(ids))
	for i, id := range ids {
		out[i] = id
	}

	return out
}
