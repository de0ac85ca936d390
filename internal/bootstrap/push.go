package bootstrap

import (
	"context"
	"log/slog"

	firebaseapp "firebase.google.com/go/v4"

	"github.com/jsamuelsen/quotevault/internal/adapters/firebase"
	"github.com/jsamuelsen/quotevault/internal/platform/config"
	"github.com/jsamuelsen/quotevault/internal/platform/logging"
	"github.com/jsamuelsen/quotevault/internal/ports"
)

// Firebase holds the clients built from one Firebase app.
type Firebase struct {
	Verifier *firebase.TokenVerifier
	Push     *firebase.PushSender
}

// OpenFirebase initializes Firebase Auth and Cloud Messaging. It returns
// nil when firebase is disabled.
func OpenFirebase(ctx context.Context, cfg *config.FirebaseConfig, logger *slog.Logger) (*Firebase, error) {
	if !cfg.Enabled {
		return nil, nil //nolint:nilnil // disabled is not an error
	}

	fbApp, err := firebase.NewApp(ctx, firebase.Config{
		ProjectID:       cfg.ProjectID,
		CredentialsFile: cfg.CredentialsFile,
	})
	if err != nil {
		return nil, err
	}

	return newFirebase(ctx, fbApp, logger)
}

func newFirebase(ctx context.Context, fbApp *firebaseapp.App, logger *slog.Logger) (*Firebase, error) {
	authClient, err := fbApp.Auth(ctx)
	if err != nil {
		return nil, err
	}

	msgClient, err := fbApp.Messaging(ctx)
	if err != nil {
		return nil, err
	}

	return &Firebase{
		Verifier: firebase.NewTokenVerifier(authClient),
		Push:     firebase.NewPushSender(msgClient, logger),
	}, nil
}

// LogPushSender writes notifications to the log instead of delivering
// them. It stands in for FCM in local runs.
type LogPushSender struct {
	logger *slog.Logger
}

var (
	_ ports.PushSender    = (*LogPushSender)(nil)
	_ ports.HealthChecker = (*LogPushSender)(nil)
)

// NewLogPushSender creates a LogPushSender.
func NewLogPushSender(logger *slog.Logger) *LogPushSender {
	if logger == nil {
		logger = slog.Default()
	}

	return &LogPushSender{logger: logger.With(slog.String("component", "log_push"))}
}

// Send implements ports.PushSender.
func (s *LogPushSender) Send(ctx context.Context, token, title, body string) error {
	logging.FromContextOr(ctx, s.logger).InfoContext(ctx, "push notification",
		slog.String("token", token),
		slog.String("title", title),
		slog.String("body", body),
	)

	return nil
}

// Name implements ports.HealthChecker.
func (s *LogPushSender) Name() string { return "push" }

// Check implements ports.HealthChecker.
func (s *LogPushSender) Check(context.Context) error { return nil }
