package firebase

import (
	"context"
	"fmt"
	"log/slog"

	"firebase.google.com/go/v4/messaging"

	"github.com/jsamuelsen/quotevault/internal/domain"
	"github.com/jsamuelsen/quotevault/internal/ports"
)

// AndroidChannelID is the notification channel daily reminders post to.
const AndroidChannelID = "daily-quote"

// MessageSender is the part of *messaging.Client the sender needs.
type MessageSender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// PushSender delivers notifications through FCM.
type PushSender struct {
	client MessageSender
	logger *slog.Logger
}

var _ ports.PushSender = (*PushSender)(nil)

// NewPushSender wraps a messaging client.
func NewPushSender(client MessageSender, logger *slog.Logger) *PushSender {
	if logger == nil {
		logger = slog.Default()
	}

	return &PushSender{client: client, logger: logger.With(slog.String("component", "fcm"))}
}

// Send implements ports.PushSender. Unregistered tokens map to
// domain.ErrNotFound so callers can prune them.
func (p *PushSender) Send(ctx context.Context, token, title, body string) error {
	id, err := p.client.Send(ctx, newMessage(token, title, body))
	if err != nil {
		if messaging.IsUnregistered(err) {
			return domain.NewNotFoundError("device token", token)
		}

		return fmt.Errorf("sending push: %w", domain.NewUnavailableError("fcm", err.Error()))
	}

	p.logger.DebugContext(ctx, "push sent", slog.String("message_id", id))

	return nil
}

// Name implements ports.HealthChecker.
func (p *PushSender) Name() string { return "fcm" }

// Check implements ports.HealthChecker. The FCM client has no ping; a
// configured client is considered usable.
func (p *PushSender) Check(context.Context) error {
	if p.client == nil {
		return domain.NewUnavailableError("fcm", "no messaging client")
	}

	return nil
}

func newMessage(token, title, body string) *messaging.Message {
	return &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: AndroidChannelID,
				Priority:  messaging.PriorityHigh,
			},
		},
		APNS: &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Alert: &messaging.ApsAlert{
						Title: title,
						Body:  body,
					},
					Sound: "default",
				},
			},
		},
	}
}
