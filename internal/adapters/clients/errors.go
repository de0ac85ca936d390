// Package clients is the outbound HTTP layer: a retrying, circuit-broken,
// instrumented client per downstream. The acl subpackage translates its
// responses into domain errors.
package clients

import (
	"errors"
	"strconv"
	"time"
)

var (
	// ErrCircuitOpen means the breaker refused the call without sending it.
	ErrCircuitOpen = errors.New("circuit breaker open")

	// ErrMaxRetriesExceeded wraps the last failure once no attempt produced
	// a usable response.
	ErrMaxRetriesExceeded = errors.New("max retries exceeded")
)

// StatusError is a retryable status (5xx or 429) seen on an attempt.
type StatusError struct {
	StatusCode int

	// RetryAfter is the server's requested delay, zero if it sent none.
	RetryAfter time.Duration
}

func (e *StatusError) Error() string {
	return "server returned status " + strconv.Itoa(e.StatusCode)
}
