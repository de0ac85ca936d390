package ports

import "context"

// NotificationScheduler manages the daily reminders of one user.
type NotificationScheduler interface {
	// ScheduleDaily adds a notification fired every day at hour:minute.
	ScheduleDaily(ctx context.Context, hour, minute int, title, body string) error

	// CancelAll removes every scheduled notification.
	CancelAll(ctx context.Context) error
}

// SchedulerFactory hands out per-user schedulers.
type SchedulerFactory interface {
	ForUser(userID string) NotificationScheduler
}

// PushSender delivers a notification to a single device token.
type PushSender interface {
	Send(ctx context.Context, token, title, body string) error
}
