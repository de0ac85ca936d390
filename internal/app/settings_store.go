package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jsamuelsen/quotevault/internal/app/events"
	"github.com/jsamuelsen/quotevault/internal/domain"
	"github.com/jsamuelsen/quotevault/internal/platform/logging"
	"github.com/jsamuelsen/quotevault/internal/ports"
)

// SettingsKey is the local cache key holding the serialized settings.
const SettingsKey = "quotevault_settings"

// defaultRemotePushTimeout bounds one background upsert of the settings row.
const defaultRemotePushTimeout = 10 * time.Second

// SettingsStore keeps the user's preferences in the local cache, mirrors
// them to the user_settings table and announces every local change on the
// change bus.
type SettingsStore struct {
	cache       ports.LocalCache
	records     ports.RecordStore
	auth        ports.AuthProvider
	bus         *events.Bus
	logger      *slog.Logger
	pushTimeout time.Duration
	now         func() time.Time

	// mu serializes read-modify-write cycles on the local copy.
	mu sync.Mutex

	// pushes sends remote upserts one at a time; only the newest pending
	// record of a user is sent.
	pushes writeQueue
}

// SettingsStoreConfig contains the dependencies of a SettingsStore.
type SettingsStoreConfig struct {
	// Cache holds the local copy. Required.
	Cache ports.LocalCache

	// Records holds the remote copy. Nil keeps settings local only.
	Records ports.RecordStore

	// Auth identifies the user owning the remote row. Required.
	Auth ports.AuthProvider

	// Bus receives a notification after every successful local write. Required.
	Bus *events.Bus

	Logger *slog.Logger

	// PushTimeout bounds each background remote write.
	PushTimeout time.Duration
}

// NewSettingsStore creates a settings store.
func NewSettingsStore(cfg SettingsStoreConfig) *SettingsStore {
	if cfg.Cache == nil {
		panic("app: SettingsStore requires a local cache")
	}

	if cfg.Auth == nil {
		panic("app: SettingsStore requires an auth provider")
	}

	if cfg.Bus == nil {
		panic("app: SettingsStore requires a change bus")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	timeout := cfg.PushTimeout
	if timeout <= 0 {
		timeout = defaultRemotePushTimeout
	}

	return &SettingsStore{
		cache:       cfg.Cache,
		records:     cfg.Records,
		auth:        cfg.Auth,
		bus:         cfg.Bus,
		logger:      logger.With(slog.String("component", "app.SettingsStore")),
		pushTimeout: timeout,
		now:         time.Now,
	}
}

// Bus returns the change bus the store publishes on.
func (s *SettingsStore) Bus() *events.Bus {
	return s.bus
}

// Load returns the local settings. Missing fields are filled from the
// defaults; a missing or unreadable blob yields the defaults.
func (s *SettingsStore) Load(ctx context.Context) domain.UserSettings {
	raw, ok, err := s.cache.GetString(ctx, SettingsKey)
	if err != nil {
		s.log(ctx).WarnContext(ctx, "reading local settings failed, using defaults",
			slog.Any("error", err),
		)

		return domain.DefaultSettings()
	}

	if !ok || raw == "" {
		return domain.DefaultSettings()
	}

	var patch domain.SettingsPatch

	err = json.Unmarshal([]byte(raw), &patch)
	if err != nil {
		s.log(ctx).WarnContext(ctx, "decoding local settings failed, using defaults",
			slog.Any("error", err),
		)

		return domain.DefaultSettings()
	}

	return patch.Apply(domain.DefaultSettings())
}

// ReconcileWithRemote overlays the remote row onto local, field by field,
// and stores the result locally. Subscribers are notified when the stored
// settings changed. Without a signed-in user, a remote store or a readable
// remote row, local is returned unchanged.
func (s *SettingsStore) ReconcileWithRemote(ctx context.Context, local domain.UserSettings) domain.UserSettings {
	if s.records == nil {
		return local
	}

	userID, ok := s.auth.CurrentUserID(ctx)
	if !ok {
		return local
	}

	logger := s.log(ctx).With(slog.String("user_id", userID))

	rec, err := s.records.GetRow(ctx, ports.TableUserSettings, ports.Where(colUserID, userID))
	if err != nil {
		logger.WarnContext(ctx, "loading remote settings failed, keeping local",
			slog.Any("error", err),
		)

		return local
	}

	if rec == nil {
		return local
	}

	merged := settingsPatchFromRecord(rec).Apply(local)

	s.mu.Lock()
	err = s.writeLocal(ctx, merged)
	s.mu.Unlock()

	if err != nil {
		logger.WarnContext(ctx, "storing reconciled settings failed", slog.Any("error", err))
		return merged
	}

	logger.DebugContext(ctx, "reconciled settings with remote")

	if merged != local {
		s.bus.Publish()
	}

	return merged
}

// Update stores settings locally, notifies subscribers and pushes the
// record to the remote store in the background.
func (s *SettingsStore) Update(ctx context.Context, settings domain.UserSettings) domain.UserSettings {
	s.mu.Lock()
	err := s.writeLocal(ctx, settings)
	s.mu.Unlock()

	s.afterWrite(ctx, settings, err)

	return settings
}

// IncreaseFont raises the font size by one step, saturating at the maximum.
func (s *SettingsStore) IncreaseFont(ctx context.Context) domain.UserSettings {
	return s.modify(ctx, domain.UserSettings.IncreaseFont)
}

// DecreaseFont lowers the font size by one step, saturating at the minimum.
func (s *SettingsStore) DecreaseFont(ctx context.Context) domain.UserSettings {
	return s.modify(ctx, domain.UserSettings.DecreaseFont)
}

// CycleAccent advances to the next accent color.
func (s *SettingsStore) CycleAccent(ctx context.Context) domain.UserSettings {
	return s.modify(ctx, func(cur domain.UserSettings) domain.UserSettings {
		cur.AccentColor = cur.AccentColor.Next()
		return cur
	})
}

// ToggleTheme flips between light and dark.
func (s *SettingsStore) ToggleTheme(ctx context.Context) domain.UserSettings {
	return s.modify(ctx, func(cur domain.UserSettings) domain.UserSettings {
		cur.ThemeMode = cur.ThemeMode.Toggle()
		return cur
	})
}

// SetNotificationTime stores a new "HH:MM" reminder time. An invalid time
// returns a validation error and leaves the settings untouched.
func (s *SettingsStore) SetNotificationTime(ctx context.Context, t string) (domain.UserSettings, error) {
	err := domain.ValidateNotificationTime(t)
	if err != nil {
		return domain.UserSettings{}, fmt.Errorf("setting notification time: %w", err)
	}

	return s.modify(ctx, func(cur domain.UserSettings) domain.UserSettings {
		cur.NotificationTime = t
		return cur
	}), nil
}

// Wait blocks until every background remote push has finished.
func (s *SettingsStore) Wait() {
	s.pushes.Wait()
}

func (s *SettingsStore) modify(ctx context.Context, fn func(domain.UserSettings) domain.UserSettings) domain.UserSettings {
	s.mu.Lock()
	next := fn(s.Load(ctx))
	err := s.writeLocal(ctx, next)
	s.mu.Unlock()

	s.afterWrite(ctx, next, err)

	return next
}

func (s *SettingsStore) writeLocal(ctx context.Context, settings domain.UserSettings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}

	err = s.cache.SetString(ctx, SettingsKey, string(raw))
	if err != nil {
		return fmt.Errorf("writing local settings: %w", err)
	}

	return nil
}

// afterWrite publishes when the local write succeeded and always schedules
// the remote push.
func (s *SettingsStore) afterWrite(ctx context.Context, settings domain.UserSettings, writeErr error) {
	if writeErr != nil {
		s.log(ctx).WarnContext(ctx, "saving local settings failed", slog.Any("error", writeErr))
	} else {
		s.bus.Publish()
	}

	s.pushRemote(ctx, settings)
}

func (s *SettingsStore) pushRemote(ctx context.Context, settings domain.UserSettings) {
	if s.records == nil {
		return
	}

	userID, ok := s.auth.CurrentUserID(ctx)
	if !ok {
		return
	}

	rec := settingsRecord(userID, settings, s.now())
	bg := context.WithoutCancel(ctx)
	logger := s.log(ctx).With(slog.String("user_id", userID))

	s.pushes.Submit(userID, func() {
		pushCtx, cancel := context.WithTimeout(bg, s.pushTimeout)
		defer cancel()

		err := s.records.UpsertRow(pushCtx, ports.TableUserSettings, rec, colUserID)
		if err != nil {
			logger.WarnContext(pushCtx, "pushing settings to remote failed", slog.Any("error", err))
			return
		}

		logger.DebugContext(pushCtx, "pushed settings to remote")
	})
}

func (s *SettingsStore) log(ctx context.Context) *slog.Logger {
	return logging.FromContextOr(ctx, s.logger)
}
