package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/jsamuelsen/quotevault/internal/domain"
	"github.com/jsamuelsen/quotevault/internal/platform/logging"
	"github.com/jsamuelsen/quotevault/internal/ports"
)

// deliveryWorkers bounds concurrent pushes for one user's devices.
const deliveryWorkers = 4

// DeviceService keeps the push token registry and delivers notifications to
// every device of a user.
type DeviceService struct {
	records ports.RecordStore
	auth    ports.AuthProvider
	push    ports.PushSender
	logger  *slog.Logger
	now     func() time.Time
}

// DeviceServiceConfig contains the dependencies of a DeviceService.
type DeviceServiceConfig struct {
	Records ports.RecordStore
	Auth    ports.AuthProvider

	// Push delivers to a single token. Nil disables delivery.
	Push ports.PushSender

	Logger *slog.Logger
}

// NewDeviceService creates a device service.
func NewDeviceService(cfg DeviceServiceConfig) *DeviceService {
	if cfg.Records == nil || cfg.Auth == nil {
		panic("app: DeviceService requires records and auth")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &DeviceService{
		records: cfg.Records,
		auth:    cfg.Auth,
		push:    cfg.Push,
		logger:  logger.With(slog.String("component", "app.DeviceService")),
		now:     time.Now,
	}
}

// RegisterDevice records a push token for the signed-in user. Registering
// the same token again refreshes its platform and timestamp.
func (s *DeviceService) RegisterDevice(ctx context.Context, token, platform string) (domain.Device, error) {
	userID, ok := s.auth.CurrentUserID(ctx)
	if !ok {
		return domain.Device{}, domain.NewUnauthenticatedError("register device")
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return domain.Device{}, domain.NewValidationError("token", "cannot be empty")
	}

	d := domain.Device{
		UserID:    userID,
		Token:     token,
		Platform:  strings.ToLower(strings.TrimSpace(platform)),
		UpdatedAt: s.now().UTC(),
	}

	err := s.records.UpsertRow(ctx, ports.TableUserDevices, ports.Record{
		colUserID:    d.UserID,
		colToken:     d.Token,
		colPlatform:  d.Platform,
		colUpdatedAt: d.UpdatedAt,
	}, colUserID, colToken)
	if err != nil {
		return domain.Device{}, fmt.Errorf("registering device: %w", err)
	}

	return d, nil
}

// Tokens returns the push tokens registered by userID.
func (s *DeviceService) Tokens(ctx context.Context, userID string) ([]string, error) {
	recs, err := s.records.QueryRows(ctx, ports.TableUserDevices, ports.Query{
		Filter: ports.Where(colUserID, userID),
	})
	if err != nil {
		return nil, fmt.Errorf("listing devices: %w", err)
	}

	tokens := make([]string, 0, len(recs))
	for _, rec := range recs {
		if t := rec.String(colToken); t != "" {
			tokens = append(tokens, t)
		}
	}

	return tokens, nil
}

// Deliver pushes a notification to every device of userID and returns how
// many sends succeeded. Individual send failures are logged, not returned.
func (s *DeviceService) Deliver(ctx context.Context, userID, title, body string) (int, error) {
	if s.push == nil {
		return 0, domain.NewCapabilityError("push", "no push sender configured")
	}

	logger := logging.FromContextOr(ctx, s.logger).With(slog.String("user_id", userID))

	tokens, err := s.Tokens(ctx, userID)
	if err != nil {
		return 0, err
	}

	var delivered atomic.Int64

	err = FanOut(ctx, deliveryWorkers, tokens, func(ctx context.Context, token string) error {
		sendErr := s.push.Send(ctx, token, title, body)
		if domain.IsNotFound(sendErr) {
			s.prune(ctx, logger, userID, token)
			return nil
		}

		if sendErr != nil {
			logger.WarnContext(ctx, "push failed", slog.Any("error", sendErr))
			return nil
		}

		delivered.Add(1)

		return nil
	})
	if err != nil {
		return int(delivered.Load()), fmt.Errorf("delivering notification: %w", err)
	}

	logger.InfoContext(ctx, "delivered daily notification",
		slog.Int("devices", len(tokens)),
		slog.Int64("delivered", delivered.Load()),
	)

	return int(delivered.Load()), nil
}

// prune removes a token the push provider no longer recognizes.
func (s *DeviceService) prune(ctx context.Context, logger *slog.Logger, userID, token string) {
	err := s.records.DeleteRow(ctx, ports.TableUserDevices, ports.Where(colUserID, userID).Eq(colToken, token))
	if err != nil {
		logger.WarnContext(ctx, "failed to prune device token", slog.Any("error", err))
		return
	}

	logger.InfoContext(ctx, "pruned unregistered device token")
}
