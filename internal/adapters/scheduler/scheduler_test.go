package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotevault/internal/domain"
)

type delivery struct {
	userID, title, body string
}

type recorder struct {
	mu    sync.Mutex
	calls []delivery
	err   error
}

func (r *recorder) deliver(_ context.Context, userID, title, body string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls = append(r.calls, delivery{userID, title, body})

	return 1, r.err
}

func newTestScheduler(t *testing.T, r *recorder) *Scheduler {
	t.Helper()

	s, err := New(Config{
		Timezone: "UTC",
		Deliver:  r.deliver,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)

	return s
}

func TestNew_Validation(t *testing.T) {
	_, err := New(Config{})
	require.Error(t, err)

	_, err = New(Config{Timezone: "Mars/Olympus", Deliver: (&recorder{}).deliver})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Mars/Olympus")
}

func TestUserScheduler_ScheduleAndCancel(t *testing.T) {
	s := newTestScheduler(t, &recorder{})
	ctx := context.Background()

	alice := s.ForUser("alice")
	bob := s.ForUser("bob")

	require.NoError(t, alice.ScheduleDaily(ctx, 8, 30, domain.DailyNotificationTitle, "Begin."))
	require.NoError(t, bob.ScheduleDaily(ctx, 21, 0, domain.DailyNotificationTitle, "Rest."))
	assert.Equal(t, 1, s.Len("alice"))

	next, ok := s.Next("alice")
	require.True(t, ok)
	assert.Equal(t, 8, next.Hour())
	assert.Equal(t, 30, next.Minute())

	require.NoError(t, alice.CancelAll(ctx))
	assert.Equal(t, 0, s.Len("alice"))
	assert.Equal(t, 1, s.Len("bob"))

	_, ok = s.Next("alice")
	assert.False(t, ok)
}

func TestUserScheduler_RejectsOutOfRange(t *testing.T) {
	s := newTestScheduler(t, &recorder{})

	err := s.ForUser("alice").ScheduleDaily(context.Background(), 24, 0, "t", "b")
	assert.True(t, domain.IsValidation(err))

	err = s.ForUser("alice").ScheduleDaily(context.Background(), 8, 60, "t", "b")
	assert.True(t, domain.IsValidation(err))
	assert.Equal(t, 0, s.Len("alice"))
}

func TestFire_Delivers(t *testing.T) {
	r := &recorder{}
	s := newTestScheduler(t, r)

	s.fire("alice", domain.DailyNotificationTitle, "Begin.")

	require.Len(t, r.calls, 1)
	assert.Equal(t, delivery{"alice", domain.DailyNotificationTitle, "Begin."}, r.calls[0])
}

func TestFire_SwallowsErrors(t *testing.T) {
	for _, err := range []error{
		errors.New("fcm down"),
		domain.NewCapabilityError("push", "no push sender configured"),
	} {
		r := &recorder{err: err}
		s := newTestScheduler(t, r)

		assert.NotPanics(t, func() { s.fire("alice", "t", "b") })
		assert.Len(t, r.calls, 1)
	}
}

func TestStartStop_Health(t *testing.T) {
	s := newTestScheduler(t, &recorder{})

	assert.True(t, domain.IsUnavailable(s.Check(context.Background())))

	s.Start()
	require.NoError(t, s.Check(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	require.NoError(t, s.Stop(ctx))
	assert.Error(t, s.Check(context.Background()))
}
