package app

import (
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/jsamuelsen/quotevault/internal/adapters/memory"
	"github.com/jsamuelsen/quotevault/internal/ports"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// discardLogger returns a logger that discards all output.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// seededStore returns a store holding n quotes with ids 1..n. Every third
// quote is in Love, the rest in Wisdom.
func seededStore(t *testing.T, n int) *memory.RecordStore {
	t.Helper()

	store := memory.NewRecordStore()
	for i := 1; i <= n; i++ {
		category := "Wisdom"
		if i%3 == 0 {
			category = "Love"
		}

		require.NoError(t, store.SeedQuotes(ports.Record{
			"id":       int64(i),
			"quote":    fmt.Sprintf("Quote number %d", i),
			"author":   fmt.Sprintf("Author %d", i),
			"category": category,
		}))
	}

	return store
}
