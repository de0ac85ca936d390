package clients

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/jsamuelsen/quotevault/internal/platform/config"
)

const (
	// defaultJitter spreads each back-off over ±25% of its nominal value
	// when Retry.JitterFactor is unset.
	defaultJitter = 0.25

	// maxRetryAfter caps how long a Retry-After header may delay us.
	maxRetryAfter = 30 * time.Second
)

// call is one Do invocation across all of its attempts.
type call struct {
	client *Client
	req    *http.Request
	start  time.Time
	logger *slog.Logger
}

// run performs the attempts. It returns the first non-retryable outcome or
// the last retryable failure.
func (k *call) run(ctx context.Context) (*http.Response, error) {
	retry := k.client.cfg.Retry

	var lastErr error
	for attempt := range retry.MaxAttempts {
		if attempt > 0 {
			wait := max(backoff(retry, attempt), retryAfterOf(lastErr))
			k.logger.Debug("retrying request",
				slog.Int("attempt", attempt+1),
				slog.Duration("backoff", wait),
				slog.Any("after", lastErr))

			if err := sleep(ctx, wait); err != nil {
				return nil, err
			}

			if k.client.cfg.AuthFunc != nil {
				k.client.cfg.AuthFunc(k.req)
			}
		}

		req, err := replay(ctx, k.req, attempt)
		if err != nil {
			return nil, err
		}

		resp, err := k.client.http.Do(req)
		switch {
		case err != nil && !isRetryableError(err):
			return nil, err
		case err != nil:
			lastErr = err
		case retryableStatus(resp.StatusCode):
			lastErr = &StatusError{
				StatusCode: resp.StatusCode,
				RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
			}
			if cerr := resp.Body.Close(); cerr != nil {
				k.logger.Debug("closing discarded response body", slog.Any("error", cerr))
			}
		default:
			return resp, nil
		}
	}

	return nil, lastErr
}

// observe records the call's duration and outcome.
func (k *call) observe(ctx context.Context, status int, result string) {
	attrs := []attribute.KeyValue{
		attribute.String("http.request.method", k.req.Method),
		attribute.String("peer.service", k.client.cfg.ServiceName),
		attribute.String("result", result),
	}
	if status > 0 {
		attrs = append(attrs, attribute.Int("http.response.status_code", status))
	}

	set := metric.WithAttributes(attrs...)
	k.client.duration.Record(ctx, time.Since(k.start).Seconds(), set)
	k.client.total.Add(ctx, 1, set)
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func retryableStatus(code int) bool {
	return code >= http.StatusInternalServerError || code == http.StatusTooManyRequests
}

// backoff grows InitialInterval by Multiplier per attempt, caps it at
// MaxInterval and applies JitterFactor. The cap is applied before jitter, so
// the result can exceed MaxInterval by up to the jitter fraction.
func backoff(r config.RetryConfig, attempt int) time.Duration {
	d := min(float64(r.InitialInterval)*math.Pow(r.Multiplier, float64(attempt)), float64(r.MaxInterval))
	d += d * r.JitterFactor * (2*rand.Float64() - 1) //nolint:gosec // jitter needs no crypto randomness

	return time.Duration(d)
}

// isRetryableError accepts transport failures. Cancellation and deadlines
// belong to the caller and are never retried.
func isRetryableError(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var opErr *net.OpError
	return errors.As(err, &opErr)
}

// replay returns the request for an attempt, refreshing the body from
// GetBody after the first one.
func replay(ctx context.Context, req *http.Request, attempt int) (*http.Request, error) {
	out := req.WithContext(ctx)
	if attempt == 0 || req.Body == nil || req.Body == http.NoBody {
		return out, nil
	}
	if req.GetBody == nil {
		return nil, errors.New("request body cannot be replayed for retry")
	}

	body, err := req.GetBody()
	if err != nil {
		return nil, fmt.Errorf("rewinding request body: %w", err)
	}
	out.Body = body

	return out, nil
}

func retryAfterOf(err error) time.Duration {
	var se *StatusError
	if errors.As(err, &se) {
		return se.RetryAfter
	}

	return 0
}

// parseRetryAfter reads the delay-seconds form of Retry-After.
func parseRetryAfter(v string) time.Duration {
	secs, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || secs <= 0 {
		return 0
	}

	return min(time.Duration(secs)*time.Second, maxRetryAfter)
}
