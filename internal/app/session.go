package app

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jsamuelsen/quotevault/internal/app/events"
	"github.com/jsamuelsen/quotevault/internal/domain"
	"github.com/jsamuelsen/quotevault/internal/ports"
)

// Session defaults.
const (
	DefaultSessionIdleTTL       = 30 * time.Minute
	DefaultSessionSweepInterval = time.Minute
)

// Session is the per-user state: settings, feed and the change bus that
// connects the settings store to its observers.
type Session struct {
	UserID   string
	Bus      *events.Bus
	Settings *SettingsStore
	Feed     *QuoteFeed

	stopWatch func()
	lastUsed  time.Time
}

// Close stops observers and waits for background writes to finish.
func (s *Session) Close() {
	if s.stopWatch != nil {
		s.stopWatch()
	}

	s.Settings.Wait()
	s.Feed.Wait()
}

// SessionManager creates sessions on first use and evicts idle ones.
type SessionManager struct {
	cache         ports.LocalCache
	records       ports.RecordStore
	quotes        *QuoteService
	notifications *NotificationService
	logger        *slog.Logger
	idleTTL       time.Duration
	sweepInterval time.Duration
	now           func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

// SessionManagerConfig contains the dependencies shared by all sessions.
type SessionManagerConfig struct {
	// Cache is the shared local cache; each session sees its own key prefix.
	Cache ports.LocalCache

	// Records is the remote store. Required.
	Records ports.RecordStore

	Quotes *QuoteService

	// Notifications reschedules reminders on settings changes. Optional.
	Notifications *NotificationService

	Logger        *slog.Logger
	IdleTTL       time.Duration
	SweepInterval time.Duration
}

// NewSessionManager creates an empty session manager.
func NewSessionManager(cfg SessionManagerConfig) *SessionManager {
	if cfg.Cache == nil || cfg.Records == nil || cfg.Quotes == nil {
		panic("app: SessionManager requires cache, records and quotes")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ttl := cfg.IdleTTL
	if ttl <= 0 {
		ttl = DefaultSessionIdleTTL
	}

	sweep := cfg.SweepInterval
	if sweep <= 0 {
		sweep = DefaultSessionSweepInterval
	}

	return &SessionManager{
		cache:         cfg.Cache,
		records:       cfg.Records,
		quotes:        cfg.Quotes,
		notifications: cfg.Notifications,
		logger:        logger,
		idleTTL:       ttl,
		sweepInterval: sweep,
		now:           time.Now,
		sessions:      make(map[string]*Session),
	}
}

// Get returns the session of userID, creating it on first use.
func (m *SessionManager) Get(ctx context.Context, userID string) (*Session, error) {
	if userID == "" {
		return nil, domain.NewUnauthenticatedError("open session")
	}

	m.mu.Lock()
	if s, ok := m.sessions[userID]; ok {
		s.lastUsed = m.now()
		m.mu.Unlock()

		return s, nil
	}
	m.mu.Unlock()

	created := m.newSession(ctx, userID)

	m.mu.Lock()
	if s, ok := m.sessions[userID]; ok {
		s.lastUsed = m.now()
		m.mu.Unlock()
		created.Close()

		return s, nil
	}

	created.lastUsed = m.now()
	m.sessions[userID] = created
	m.mu.Unlock()

	m.logger.DebugContext(ctx, "opened session", slog.String("user_id", userID))

	return created, nil
}

func (m *SessionManager) newSession(ctx context.Context, userID string) *Session {
	auth := ports.StaticAuth(userID)
	bus := &events.Bus{}
	logger := m.logger.With(slog.String("user_id", userID))

	settings := NewSettingsStore(SettingsStoreConfig{
		Cache:   ports.NewPrefixedCache(m.cache, "user:"+userID+":"),
		Records: m.records,
		Auth:    auth,
		Bus:     bus,
		Logger:  logger,
	})

	favorites := NewFavoriteService(FavoriteServiceConfig{
		Records: m.records,
		Auth:    auth,
		Quotes:  m.quotes,
		Logger:  logger,
	})

	feed := NewQuoteFeed(QuoteFeedConfig{
		Pager:     m.quotes,
		Favorites: favorites,
		Logger:    logger,
	})

	// Both loaders log and swallow their own failures.
	_ = concurrently(ctx,
		func(ctx context.Context) error {
			feed.LoadFavorites(ctx)
			return nil
		},
		func(ctx context.Context) error {
			settings.ReconcileWithRemote(ctx, settings.Load(ctx))
			return nil
		},
	)

	s := &Session{
		UserID:   userID,
		Bus:      bus,
		Settings: settings,
		Feed:     feed,
	}

	if m.notifications != nil {
		s.stopWatch = m.notifications.Watch(ports.WithUserID(ctx, userID), bus, settings)
	}

	return s
}

// Sweep closes sessions idle for longer than the idle TTL and returns how
// many were evicted.
func (m *SessionManager) Sweep() int {
	cutoff := m.now().Add(-m.idleTTL)

	m.mu.Lock()
	var idle []*Session
	for id, s := range m.sessions {
		if s.lastUsed.Before(cutoff) {
			idle = append(idle, s)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, s := range idle {
		s.Close()
	}

	if len(idle) > 0 {
		m.logger.Debug("evicted idle sessions", slog.Int("count", len(idle)))
	}

	return len(idle)
}

// Run sweeps idle sessions until ctx is done.
func (m *SessionManager) Run(ctx context.Context) {
	ticker := time.NewTicker(m.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Sweep()
		}
	}
}

// Close closes every session.
func (m *SessionManager) Close() {
	m.mu.Lock()
	all := make([]*Session, 0, len(m.sessions))
	for id, s := range m.sessions {
		all = append(all, s)
		delete(m.sessions, id)
	}
	m.mu.Unlock()

	for _, s := range all {
		s.Close()
	}
}

// Len returns the number of open sessions.
func (m *SessionManager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.sessions)
}
