package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/jsamuelsen/quotevault/internal/adapters/scheduler"
	"github.com/jsamuelsen/quotevault/internal/adapters/share"
	"github.com/jsamuelsen/quotevault/internal/app"
	"github.com/jsamuelsen/quotevault/internal/platform/config"
	"github.com/jsamuelsen/quotevault/internal/ports"
)

// Services is the application layer built on top of the backends.
type Services struct {
	Quotes        *app.QuoteService
	Favorites     *app.FavoriteService
	Collections   *app.CollectionService
	Devices       *app.DeviceService
	Notifications *app.NotificationService
	Share         *app.ShareService
	Sessions      *app.SessionManager

	// Scheduler is nil when notifications are disabled. The caller starts
	// and stops it.
	Scheduler *scheduler.Scheduler
}

// NewServices builds the services and registers every backend with health.
// A nil fb falls back to logging push messages.
func NewServices(
	cfg *config.Config,
	logger *slog.Logger,
	records RecordStore,
	cache Cache,
	fb *Firebase,
	health ports.HealthRegistry,
) (*Services, error) {
	auth := ports.ContextAuth{}

	if err := health.Register(records); err != nil {
		return nil, fmt.Errorf("registering record store health check: %w", err)
	}

	if err := health.Register(cache); err != nil {
		return nil, fmt.Errorf("registering cache health check: %w", err)
	}

	var push interface {
		ports.PushSender
		ports.HealthChecker
	} = NewLogPushSender(logger)
	if fb != nil {
		push = fb.Push
	}

	if err := health.RegisterOptional(push); err != nil {
		return nil, fmt.Errorf("registering push health check: %w", err)
	}

	s := &Services{}

	s.Quotes = app.NewQuoteService(app.QuoteServiceConfig{Records: records, Logger: logger})
	s.Favorites = app.NewFavoriteService(app.FavoriteServiceConfig{
		Records: records,
		Auth:    auth,
		Quotes:  s.Quotes,
		Logger:  logger,
	})
	s.Collections = app.NewCollectionService(app.CollectionServiceConfig{
		Records: records,
		Auth:    auth,
		Quotes:  s.Quotes,
		Logger:  logger,
	})
	s.Devices = app.NewDeviceService(app.DeviceServiceConfig{
		Records: records,
		Auth:    auth,
		Push:    push,
		Logger:  logger,
	})

	notifyCfg := app.NotificationServiceConfig{Auth: auth, Quotes: s.Quotes, Logger: logger}

	if cfg.Notifications.Enabled {
		sched, err := scheduler.New(scheduler.Config{
			Timezone:       cfg.Notifications.Timezone,
			Deliver:        s.Devices.Deliver,
			DeliverTimeout: cfg.Notifications.DeliverTimeout,
			Logger:         logger,
		})
		if err != nil {
			return nil, fmt.Errorf("creating scheduler: %w", err)
		}

		if err := health.RegisterOptional(sched); err != nil {
			return nil, fmt.Errorf("registering scheduler health check: %w", err)
		}

		s.Scheduler = sched
		notifyCfg.Schedulers = sched
	}

	s.Notifications = app.NewNotificationService(notifyCfg)

	shareCfg, err := newShareConfig(&cfg.Share, logger, health)
	if err != nil {
		return nil, err
	}

	s.Share = app.NewShareService(shareCfg)

	s.Sessions = app.NewSessionManager(app.SessionManagerConfig{
		Cache:         cache,
		Records:       records,
		Quotes:        s.Quotes,
		Notifications: s.Notifications,
		Logger:        logger,
		IdleTTL:       cfg.Session.IdleTTL,
		SweepInterval: cfg.Session.SweepInterval,
	})

	return s, nil
}

// newShareConfig builds the card renderer and directory targets. With
// sharing disabled only text sharing works.
func newShareConfig(cfg *config.ShareConfig, logger *slog.Logger, health ports.HealthRegistry) (app.ShareServiceConfig, error) {
	shareCfg := app.ShareServiceConfig{Logger: logger}
	if !cfg.Enabled {
		return shareCfg, nil
	}

	renderer := share.NewRenderer(cfg.CardScale)

	exporter, err := share.NewExporter(renderer, cfg.ExportDir)
	if err != nil {
		return shareCfg, fmt.Errorf("creating card exporter: %w", err)
	}

	sheet, err := share.NewDirectorySheet(share.SheetConfig{
		OutboxDir:  cfg.OutboxDir,
		GalleryDir: cfg.GalleryDir,
		Logger:     logger,
	})
	if err != nil {
		return shareCfg, fmt.Errorf("creating share targets: %w", err)
	}

	for _, checker := range []ports.HealthChecker{exporter, sheet} {
		if err := health.RegisterOptional(checker); err != nil {
			return shareCfg, fmt.Errorf("registering %s health check: %w", checker.Name(), err)
		}
	}

	shareCfg.Renderer = renderer
	shareCfg.Capturer = exporter
	shareCfg.Sheet = sheet

	return shareCfg, nil
}
