package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotevault/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quotevault/internal/adapters/memory"
	"github.com/jsamuelsen/quotevault/internal/adapters/share"
	"github.com/jsamuelsen/quotevault/internal/app"
	"github.com/jsamuelsen/quotevault/internal/ports"
)

const testUser = "user-1"

// scheduledEntry is one reminder recorded by recordingSchedulers.
type scheduledEntry struct {
	Hour, Minute int
	Title, Body  string
}

// recordingSchedulers records the reminders scheduled for each user.
type recordingSchedulers struct {
	mu      sync.Mutex
	entries map[string][]scheduledEntry
}

func (r *recordingSchedulers) ForUser(userID string) ports.NotificationScheduler {
	return userScheduler{parent: r, userID: userID}
}

func (r *recordingSchedulers) get(userID string) []scheduledEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]scheduledEntry(nil), r.entries[userID]...)
}

type userScheduler struct {
	parent *recordingSchedulers
	userID string
}

func (s userScheduler) ScheduleDaily(_ context.Context, hour, minute int, title, body string) error {
	s.parent.mu.Lock()
	defer s.parent.mu.Unlock()

	s.parent.entries[s.userID] = append(s.parent.entries[s.userID], scheduledEntry{hour, minute, title, body})

	return nil
}

func (s userScheduler) CancelAll(context.Context) error {
	s.parent.mu.Lock()
	defer s.parent.mu.Unlock()

	delete(s.parent.entries, s.userID)

	return nil
}

// testAPI is the full authenticated API over in-memory adapters.
type testAPI struct {
	router     *gin.Engine
	records    *memory.RecordStore
	sessions   *app.SessionManager
	schedulers *recordingSchedulers
	outboxDir  string
	galleryDir string
}

type apiOption func(*apiOptions)

type apiOptions struct {
	withoutShare         bool
	withoutNotifications bool
}

func withoutShare() apiOption { return func(o *apiOptions) { o.withoutShare = true } }

func withoutNotifications() apiOption {
	return func(o *apiOptions) { o.withoutNotifications = true }
}

// newTestAPI seeds n quotes with ids 1..n; every third is in Love, the rest in Wisdom.
func newTestAPI(t *testing.T, n int, opts ...apiOption) *testAPI {
	t.Helper()

	var o apiOptions
	for _, opt := range opts {
		opt(&o)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	records := memory.NewRecordStore()
	for i := 1; i <= n; i++ {
		category := "Wisdom"
		if i%3 == 0 {
			category = "Love"
		}

		require.NoError(t, records.SeedQuotes(ports.Record{
			"id":       int64(i),
			"quote":    fmt.Sprintf("Quote number %d", i),
			"author":   fmt.Sprintf("Author %d", i),
			"category": category,
		}))
	}

	auth := ports.ContextAuth{}
	quotes := app.NewQuoteService(app.QuoteServiceConfig{Records: records, Logger: logger})
	favorites := app.NewFavoriteService(app.FavoriteServiceConfig{Records: records, Auth: auth, Quotes: quotes, Logger: logger})
	collections := app.NewCollectionService(app.CollectionServiceConfig{Records: records, Auth: auth, Quotes: quotes, Logger: logger})
	devices := app.NewDeviceService(app.DeviceServiceConfig{Records: records, Auth: auth, Logger: logger})

	api := &testAPI{records: records, schedulers: &recordingSchedulers{entries: map[string][]scheduledEntry{}}}

	notifyCfg := app.NotificationServiceConfig{Auth: auth, Quotes: quotes, Logger: logger}
	if !o.withoutNotifications {
		notifyCfg.Schedulers = api.schedulers
	}
	notifications := app.NewNotificationService(notifyCfg)

	shareCfg := app.ShareServiceConfig{Logger: logger}
	if !o.withoutShare {
		renderer := share.NewRenderer(1)

		exporter, err := share.NewExporter(renderer, t.TempDir())
		require.NoError(t, err)

		api.outboxDir = t.TempDir()
		api.galleryDir = t.TempDir()

		sheet, err := share.NewDirectorySheet(share.SheetConfig{OutboxDir: api.outboxDir, GalleryDir: api.galleryDir, Logger: logger})
		require.NoError(t, err)

		shareCfg.Renderer = renderer
		shareCfg.Capturer = exporter
		shareCfg.Sheet = sheet
	}
	shareSvc := app.NewShareService(shareCfg)

	api.sessions = app.NewSessionManager(app.SessionManagerConfig{
		Cache:         memory.NewCache(),
		Records:       records,
		Quotes:        quotes,
		Notifications: notifications,
		Logger:        logger,
	})
	t.Cleanup(api.sessions.Close)

	router := gin.New()
	v1 := router.Group("/api/v1")

	quoteHandler := NewQuoteHandler(quotes, shareSvc, api.sessions)
	quoteHandler.RegisterPublicRoutes(v1)

	protected := v1.Group("")
	protected.Use(middleware.Authenticate(middleware.AuthOptions{}))
	quoteHandler.RegisterQuoteRoutes(protected)
	NewFeedHandler(api.sessions).RegisterFeedRoutes(protected)
	NewSettingsHandler(api.sessions).RegisterSettingsRoutes(protected)
	NewLibraryHandler(favorites, collections).RegisterLibraryRoutes(protected)
	NewNotificationHandler(notifications, devices, api.sessions).RegisterNotificationRoutes(protected)

	api.router = router

	return api
}

// do sends a request as testUser. A non-nil body is JSON encoded.
func (a *testAPI) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	return a.doAs(t, testUser, method, path, body)
}

func (a *testAPI) doAs(t *testing.T, user, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)

		r = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if user != "" {
		req.Header.Set("X-User-ID", user)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())

	return v
}

// settle waits for the background writes of testUser's session.
func (a *testAPI) settle(t *testing.T) {
	t.Helper()

	s, err := a.sessions.Get(context.Background(), testUser)
	require.NoError(t, err)

	s.Feed.Wait()
	s.Settings.Wait()
}
