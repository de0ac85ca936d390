// Package scheduler fires per-user daily reminders on a cron clock.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jsamuelsen/quotevault/internal/domain"
	"github.com/jsamuelsen/quotevault/internal/ports"
)

// DeliverFunc sends a notification to every device of a user and reports
// how many accepted it.
type DeliverFunc func(ctx context.Context, userID, title, body string) (int, error)

// Config configures a Scheduler.
type Config struct {
	// Timezone is an IANA name. Empty means UTC.
	Timezone string

	// Deliver is invoked when an entry fires. Required.
	Deliver DeliverFunc

	// DeliverTimeout bounds one delivery. Defaults to 30s.
	DeliverTimeout time.Duration

	Logger *slog.Logger
}

// Scheduler owns one cron instance shared by every user. Each user holds
// their own set of entries.
type Scheduler struct {
	cron     *cron.Cron
	location *time.Location
	deliver  DeliverFunc
	timeout  time.Duration
	logger   *slog.Logger

	mu      sync.Mutex
	entries map[string][]cron.EntryID
	running bool
}

var (
	_ ports.SchedulerFactory = (*Scheduler)(nil)
	_ ports.HealthChecker    = (*Scheduler)(nil)
)

// New creates a stopped Scheduler.
func New(cfg Config) (*Scheduler, error) {
	if cfg.Deliver == nil {
		return nil, errors.New("scheduler: deliver func is required")
	}

	tz := cfg.Timezone
	if tz == "" {
		tz = "UTC"
	}

	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", tz, err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	timeout := cfg.DeliverTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		location: loc,
		deliver:  cfg.Deliver,
		timeout:  timeout,
		logger:   logger.With(slog.String("component", "scheduler")),
		entries:  make(map[string][]cron.EntryID),
	}, nil
}

// ForUser implements ports.SchedulerFactory.
func (s *Scheduler) ForUser(userID string) ports.NotificationScheduler {
	return &userScheduler{parent: s, userID: userID}
}

// Start begins firing entries.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cron.Start()
	s.running = true
}

// Stop halts the clock and waits for running deliveries or ctx.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	s.running = false
	s.mu.Unlock()

	done := s.cron.Stop()

	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for scheduled deliveries: %w", ctx.Err())
	}
}

// Next reports when the next entry for userID fires.
func (s *Scheduler) Next(userID string) (time.Time, bool) {
	s.mu.Lock()
	ids := s.entries[userID]
	s.mu.Unlock()

	var next time.Time

	for _, id := range ids {
		e := s.cron.Entry(id)
		if !e.Valid() {
			continue
		}

		at := e.Next
		if at.IsZero() {
			at = e.Schedule.Next(time.Now().In(s.location))
		}

		if next.IsZero() || at.Before(next) {
			next = at
		}
	}

	return next, !next.IsZero()
}

// Len reports how many entries userID holds.
func (s *Scheduler) Len(userID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.entries[userID])
}

// Name implements ports.HealthChecker.
func (s *Scheduler) Name() string { return "scheduler" }

// Check implements ports.HealthChecker.
func (s *Scheduler) Check(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return domain.NewUnavailableError("scheduler", "not running")
	}

	return nil
}

func (s *Scheduler) add(userID string, hour, minute int, title, body string) error {
	if hour < 0 || hour > 23 {
		return domain.NewValidationErrorWithValue("hour", "must be 0-23", hour)
	}

	if minute < 0 || minute > 59 {
		return domain.NewValidationErrorWithValue("minute", "must be 0-59", minute)
	}

	expr := fmt.Sprintf("%d %d * * *", minute, hour)

	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.cron.AddFunc(expr, func() { s.fire(userID, title, body) })
	if err != nil {
		return fmt.Errorf("adding cron entry: %w", err)
	}

	s.entries[userID] = append(s.entries[userID], id)

	s.logger.Info("notification scheduled",
		slog.String("user_id", userID),
		slog.String("cron", expr),
		slog.String("timezone", s.location.String()),
	)

	return nil
}

func (s *Scheduler) cancel(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range s.entries[userID] {
		s.cron.Remove(id)
	}

	delete(s.entries, userID)
}

func (s *Scheduler) fire(userID, title, body string) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	logger := s.logger.With(slog.String("user_id", userID))

	n, err := s.deliver(ctx, userID, title, body)
	if err != nil {
		if domain.IsCapabilityUnavailable(err) {
			logger.Debug("notification skipped", slog.Any("error", err))
			return
		}

		logger.Error("notification delivery failed", slog.Any("error", err))

		return
	}

	logger.Info("notification delivered", slog.Int("devices", n))
}

type userScheduler struct {
	parent *Scheduler
	userID string
}

func (u *userScheduler) ScheduleDaily(_ context.Context, hour, minute int, title, body string) error {
	return u.parent.add(u.userID, hour, minute, title, body)
}

func (u *userScheduler) CancelAll(context.Context) error {
	u.parent.cancel(u.userID)
	return nil
}
