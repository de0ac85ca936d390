package clients

import (
	"sync"
	"time"

	"github.com/jsamuelsen/quotevault/internal/platform/config"
)

// State is a circuit breaker state.
type State int

// Circuit breaker states.
const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// breaker guards one downstream.
//
//   - closed: every call goes through; MaxFailures consecutive failures open it.
//   - open: calls are refused until the open window ends, then one probe is
//     let through as half-open.
//   - half-open: at most HalfOpenLimit probes are in flight; HalfOpenLimit
//     successes close it, one failure reopens it.
//
// The open window lasts Timeout, or longer when the upstream asked callers
// to back off with Retry-After.
type breaker struct {
	mu        sync.Mutex
	cfg       config.CircuitBreakerConfig
	state     State
	failures  int
	successes int
	inFlight  int
	openUntil time.Time

	onChange func(from, to State)
	now      func() time.Time
}

func newBreaker(cfg config.CircuitBreakerConfig, onChange func(from, to State)) *breaker {
	return &breaker{cfg: cfg, onChange: onChange, now: time.Now}
}

// Allow reports whether a call may proceed. A true result must be followed
// by exactly one Success or Failure.
func (b *breaker) Allow() bool {
	b.mu.Lock()

	allowed := false
	var notify func()

	switch b.state {
	case StateClosed:
		allowed = true

	case StateOpen:
		if !b.now().Before(b.openUntil) {
			notify = b.moveTo(StateHalfOpen)
			b.inFlight = 1
			allowed = true
		}

	case StateHalfOpen:
		if b.inFlight < b.cfg.HalfOpenLimit {
			b.inFlight++
			allowed = true
		}
	}

	b.mu.Unlock()
	run(notify)

	return allowed
}

// Success records a call that got a usable response.
func (b *breaker) Success() {
	b.mu.Lock()

	var notify func()

	switch b.state {
	case StateClosed:
		b.failures = 0

	case StateHalfOpen:
		b.inFlight--
		b.successes++
		if b.successes >= b.cfg.HalfOpenLimit {
			notify = b.moveTo(StateClosed)
		}
	}

	b.mu.Unlock()
	run(notify)
}

// Failure records a failed call. retryAfter is the upstream's back-off
// request, zero when it sent none.
func (b *breaker) Failure(retryAfter time.Duration) {
	b.mu.Lock()

	var notify func()

	switch b.state {
	case StateClosed:
		b.failures++
		if b.failures >= b.cfg.MaxFailures {
			notify = b.open(retryAfter)
		}

	case StateHalfOpen:
		b.inFlight--
		notify = b.open(retryAfter)
	}

	b.mu.Unlock()
	run(notify)
}

// State returns the current state without advancing it.
func (b *breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.state
}

// open must be called with mu held.
func (b *breaker) open(retryAfter time.Duration) func() {
	b.openUntil = b.now().Add(max(b.cfg.Timeout, retryAfter))
	return b.moveTo(StateOpen)
}

// moveTo must be called with mu held. The returned notification runs after
// the lock is released.
func (b *breaker) moveTo(to State) func() {
	from := b.state
	if from == to {
		return nil
	}

	b.state = to
	b.failures = 0
	b.successes = 0

	if b.onChange == nil {
		return nil
	}

	return func() { b.onChange(from, to) }
}

func run(fn func()) {
	if fn != nil {
		fn()
	}
}
