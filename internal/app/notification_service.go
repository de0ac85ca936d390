package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jsamuelsen/quotevault/internal/app/events"
	"github.com/jsamuelsen/quotevault/internal/domain"
	"github.com/jsamuelsen/quotevault/internal/platform/logging"
	"github.com/jsamuelsen/quotevault/internal/ports"
)

// NotificationService schedules the daily quote reminder.
type NotificationService struct {
	schedulers ports.SchedulerFactory
	auth       ports.AuthProvider
	quotes     *QuoteService
	logger     *slog.Logger
}

// NotificationServiceConfig contains the dependencies of a NotificationService.
type NotificationServiceConfig struct {
	// Schedulers hands out per-user schedulers. Nil means notifications are
	// not available on this deployment.
	Schedulers ports.SchedulerFactory

	Auth   ports.AuthProvider
	Quotes *QuoteService
	Logger *slog.Logger
}

// NewNotificationService creates a notification service.
func NewNotificationService(cfg NotificationServiceConfig) *NotificationService {
	if cfg.Auth == nil || cfg.Quotes == nil {
		panic("app: NotificationService requires auth and quotes")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &NotificationService{
		schedulers: cfg.Schedulers,
		auth:       cfg.Auth,
		quotes:     cfg.Quotes,
		logger:     logger.With(slog.String("component", "app.NotificationService")),
	}
}

// ParseTime splits an "HH:MM" string. Unparsable parts fall back to 8 and 0.
func (s *NotificationService) ParseTime(t string) (hour, minute int) {
	return domain.ParseNotificationTime(t)
}

// ScheduleDaily replaces the user's reminders with one daily notification at
// t, carrying today's quote of the day.
func (s *NotificationService) ScheduleDaily(ctx context.Context, t string) (domain.DailyNotification, error) {
	sched, userID, err := s.scheduler(ctx, "schedule notifications")
	if err != nil {
		return domain.DailyNotification{}, err
	}

	err = sched.CancelAll(ctx)
	if err != nil {
		return domain.DailyNotification{}, fmt.Errorf("cancelling notifications: %w", err)
	}

	qod, err := s.quotes.QuoteOfTheDay(ctx)
	if err != nil {
		return domain.DailyNotification{}, fmt.Errorf("loading quote of the day: %w", err)
	}

	hour, minute := s.ParseTime(t)
	n := domain.NewDailyNotification(hour, minute, qod)

	err = sched.ScheduleDaily(ctx, n.Hour, n.Minute, n.Title, n.Body)
	if err != nil {
		return domain.DailyNotification{}, fmt.Errorf("scheduling notification: %w", err)
	}

	logging.FromContextOr(ctx, s.logger).InfoContext(ctx, "scheduled daily quote",
		slog.String("user_id", userID),
		slog.Int("hour", n.Hour),
		slog.Int("minute", n.Minute),
	)

	return n, nil
}

// Cancel removes every reminder of the user.
func (s *NotificationService) Cancel(ctx context.Context) error {
	sched, _, err := s.scheduler(ctx, "cancel notifications")
	if err != nil {
		return err
	}

	err = sched.CancelAll(ctx)
	if err != nil {
		return fmt.Errorf("cancelling notifications: %w", err)
	}

	return nil
}

// Watch reschedules the reminder whenever a settings change moves the
// notification time. It returns the function that stops watching.
func (s *NotificationService) Watch(ctx context.Context, bus *events.Bus, store *SettingsStore) (stop func()) {
	bg := context.WithoutCancel(ctx)

	var mu sync.Mutex

	last := store.Load(bg).NotificationTime

	return bus.Subscribe(func() {
		current := store.Load(bg).NotificationTime

		mu.Lock()
		changed := current != last
		last = current
		mu.Unlock()

		if !changed {
			return
		}

		_, err := s.ScheduleDaily(bg, current)
		if err != nil {
			logging.FromContextOr(bg, s.logger).WarnContext(bg, "rescheduling daily quote failed",
				slog.String("time", current),
				slog.Any("error", err),
			)
		}
	})
}

func (s *NotificationService) scheduler(ctx context.Context, op string) (ports.NotificationScheduler, string, error) {
	userID, ok := s.auth.CurrentUserID(ctx)
	if !ok {
		return nil, "", domain.NewUnauthenticatedError(op)
	}

	if s.schedulers == nil {
		return nil, "", domain.NewCapabilityError("notifications", "disabled")
	}

	return s.schedulers.ForUser(userID), userID, nil
}
