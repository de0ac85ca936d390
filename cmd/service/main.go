// Command service runs the QuoteVault HTTP API.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jsamuelsen/quotevault/internal/adapters/http"
	"github.com/jsamuelsen/quotevault/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quotevault/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quotevault/internal/bootstrap"
	"github.com/jsamuelsen/quotevault/internal/platform/config"
	"github.com/jsamuelsen/quotevault/internal/platform/logging"
	"github.com/jsamuelsen/quotevault/internal/platform/telemetry"
	"github.com/jsamuelsen/quotevault/internal/ports"
)

// Set with -ldflags "-X main.Version=... -X main.Commit=... -X main.BuildTime=...".
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := run(ctx)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "quotevault: %v\n", err)
		os.Exit(1)
	}
}

// run serves until ctx is cancelled. Deferred cleanups run in reverse
// order of acquisition once the server has drained.
func run(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := newLogger(cfg)
	logging.SetDefault(logger)
	logger.Info("starting service",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
		slog.String("store", cfg.Store.Driver),
		slog.String("cache", cfg.Cache.Driver))

	tel, err := telemetry.New(ctx, &telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		Endpoint:     cfg.Telemetry.Endpoint,
		ServiceName:  cfg.Telemetry.ServiceName,
		Version:      cfg.App.Version,
		Environment:  cfg.App.Environment,
		SamplingRate: cfg.Telemetry.SamplingRate,
		Insecure:     cfg.Telemetry.Insecure,
	})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}
	defer logOnError(logger, "telemetry shutdown", func() error { return tel.Shutdown(ctx) })

	health := ports.NewHealthRegistry()

	records, closeRecords, err := bootstrap.OpenRecordStore(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("opening record store: %w", err)
	}
	defer closeRecords()

	cache, closeCache, err := bootstrap.OpenCache(ctx, cfg)
	if err != nil {
		return fmt.Errorf("opening cache: %w", err)
	}
	defer closeCache()

	fb, err := bootstrap.OpenFirebase(ctx, &cfg.Firebase, logger)
	if err != nil {
		return fmt.Errorf("initializing firebase: %w", err)
	}

	svc, err := bootstrap.NewServices(cfg, logger, records, cache, fb, health)
	if err != nil {
		return err
	}

	if svc.Scheduler != nil {
		svc.Scheduler.Start()
		defer logOnError(logger, "scheduler shutdown", func() error {
			return svc.Scheduler.Stop(context.WithoutCancel(ctx))
		})
	}

	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go svc.Sessions.Run(sweepCtx)
	defer svc.Sessions.Close()

	auth := middleware.AuthOptions{Config: &cfg.Auth}
	if fb != nil {
		auth.Verifier = fb.Verifier
	}

	server := http.New(&cfg.Server, logger)
	http.SetupRouter(server.Engine(), http.RouterConfig{
		Logger:        logger,
		AppConfig:     &cfg.App,
		Auth:          auth,
		CORS:          &cfg.CORS,
		HealthHandler: handlers.NewHealthHandler(health, handlers.NewBuildInfo(Version, Commit, BuildTime)),
		Quotes:        handlers.NewQuoteHandler(svc.Quotes, svc.Share, svc.Sessions),
		Feed:          handlers.NewFeedHandler(svc.Sessions),
		Settings:      handlers.NewSettingsHandler(svc.Sessions),
		Library:       handlers.NewLibraryHandler(svc.Favorites, svc.Collections),
		Notifications: handlers.NewNotificationHandler(svc.Notifications, svc.Devices, svc.Sessions),
		Timeout:       http.DefaultRequestTimeout,
	})

	if err := server.Run(ctx, nil); err != nil {
		return fmt.Errorf("running server: %w", err)
	}

	logger.Info("shutdown complete")

	return nil
}

// loadConfig reads the APP_ENVIRONMENT profile, "local" when unset, and
// refuses to start on an invalid configuration.
func loadConfig() (*config.Config, error) {
	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	cfg, err := config.Load(profile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	f := cfg.Log.File

	return logging.New(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    f.Enabled,
			Path:       f.Path,
			MaxSizeMB:  f.MaxSizeMB,
			MaxBackups: f.MaxBackups,
			MaxAgeDays: f.MaxAgeDays,
			Compress:   f.Compress,
		},
	})
}

func logOnError(logger *slog.Logger, what string, fn func() error) {
	if err := fn(); err != nil {
		logger.Error(what+" failed", slog.Any("error", err))
	}
}
