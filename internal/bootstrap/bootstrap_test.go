package bootstrap

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotevault/internal/adapters/memory"
	"github.com/jsamuelsen/quotevault/internal/platform/config"
	"github.com/jsamuelsen/quotevault/internal/ports"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadSeedFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []ports.Record
		wantErr string
	}{
		{
			name: "bare list",
			content: `
- quote: Stay hungry.
  author: Steve Jobs
  category: Motivation
- quote: Anonymous wisdom.
`,
			want: []ports.Record{
				{"quote": "Stay hungry.", "author": "Steve Jobs", "category": "Motivation"},
				{"quote": "Anonymous wisdom.", "author": "", "category": ""},
			},
		},
		{
			name: "quotes document with ids",
			content: `
quotes:
  - id: 7
    quote: Seven.
    author: A
    category: Humor
`,
			want: []ports.Record{
				{"id": int64(7), "quote": "Seven.", "author": "A", "category": "Humor"},
			},
		},
		{
			name:    "missing text",
			content: "- author: Nobody\n",
			wantErr: "entry 1 has no quote text",
		},
		{
			name:    "not yaml",
			content: "quotes: [unterminated",
			wantErr: "parse seed file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LoadSeedFile(writeFile(t, "quotes.yaml", tt.content))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadSeedFile_Missing(t *testing.T) {
	_, err := LoadSeedFile(filepath.Join(t.TempDir(), "nope.yaml"))

	assert.ErrorContains(t, err, "read seed file")
}

func TestSeed_SkipsExisting(t *testing.T) {
	store := memory.NewRecordStore()
	quotes := []ports.Record{
		{"id": int64(1), "quote": "One"},
		{"id": int64(2), "quote": "Two"},
	}

	n, err := Seed(t.Context(), store, quotes)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = Seed(t.Context(), store, quotes)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	count, err := store.CountRows(t.Context(), ports.TableQuotes, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestOpenRecordStore_MemoryWithSeed(t *testing.T) {
	cfg := &config.Config{Store: config.StoreConfig{
		Driver:   "memory",
		SeedFile: writeFile(t, "seed.yaml", "- quote: Hello\n- quote: World\n"),
	}}

	store, closeStore, err := OpenRecordStore(t.Context(), cfg, discardLogger())
	require.NoError(t, err)
	t.Cleanup(closeStore)

	count, err := store.CountRows(t.Context(), ports.TableQuotes, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.NoError(t, store.Check(t.Context()))
}

func TestOpenRecordStore_Errors(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
	}{
		{"unknown driver", config.Config{Store: config.StoreConfig{Driver: "mysql"}}},
		{"missing seed file", config.Config{Store: config.StoreConfig{Driver: "memory", SeedFile: "/does/not/exist.yaml"}}},
		{"rest without service name", config.Config{Store: config.StoreConfig{Driver: "rest"}, Rest: config.RestConfig{BaseURL: "http://localhost:3000"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, closeStore, err := OpenRecordStore(t.Context(), &tt.cfg, discardLogger())

			require.Error(t, err)
			assert.Nil(t, store)
			assert.NotNil(t, closeStore)
		})
	}
}

func TestOpenRecordStore_Rest(t *testing.T) {
	cfg := &config.Config{
		Store: config.StoreConfig{Driver: "rest"},
		Rest:  config.RestConfig{BaseURL: "http://localhost:3000", ServiceName: "postgrest", Schema: "public"},
	}

	store, closeStore, err := OpenRecordStore(t.Context(), cfg, discardLogger())
	require.NoError(t, err)
	t.Cleanup(closeStore)

	assert.Equal(t, "postgrest", store.Name())
}

func TestRestHeaders(t *testing.T) {
	assert.Nil(t, restHeaders(""))
	assert.Equal(t, map[string]string{"apikey": "k", "Authorization": "Bearer k"}, restHeaders("k"))
}

func TestOpenCache(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		cache, closeCache, err := OpenCache(ctx, &config.Config{Cache: config.CacheConfig{Driver: "memory"}})
		require.NoError(t, err)
		t.Cleanup(closeCache)

		require.NoError(t, cache.SetString(ctx, "k", "v"))
		got, ok, err := cache.GetString(ctx, "k")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "v", got)
	})

	t.Run("sqlite creates its directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "cache.db")

		cache, closeCache, err := OpenCache(ctx, &config.Config{
			Cache:  config.CacheConfig{Driver: "sqlite"},
			SQLite: config.SQLiteConfig{Path: path},
		})
		require.NoError(t, err)
		t.Cleanup(closeCache)

		require.NoError(t, cache.SetString(ctx, "k", "v"))
		assert.FileExists(t, path)
		assert.Equal(t, "sqlite", cache.Name())
	})

	t.Run("unknown driver", func(t *testing.T) {
		_, closeCache, err := OpenCache(ctx, &config.Config{Cache: config.CacheConfig{Driver: "etcd"}})

		require.Error(t, err)
		assert.NotNil(t, closeCache)
	})
}

func TestOpenFirebase_Disabled(t *testing.T) {
	fb, err := OpenFirebase(t.Context(), &config.FirebaseConfig{}, discardLogger())

	require.NoError(t, err)
	assert.Nil(t, fb)
}

func TestLogPushSender(t *testing.T) {
	sender := NewLogPushSender(nil)

	assert.NoError(t, sender.Send(t.Context(), "token", "title", "body"))
	assert.Equal(t, "push", sender.Name())
	assert.NoError(t, sender.Check(t.Context()))
}
