package clients

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/quotevault/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quotevault/internal/platform/config"
	"github.com/jsamuelsen/quotevault/internal/platform/logging"
)

const scope = "github.com/jsamuelsen/quotevault/internal/adapters/clients"

// Pool and timeout defaults used when Config leaves a field zero.
const (
	defaultTimeout             = 30 * time.Second
	defaultMaxIdleConns        = 100
	defaultMaxIdleConnsPerHost = 10
	defaultIdleConnTimeout     = 90 * time.Second
)

// Config configures a Client.
type Config struct {
	// BaseURL prefixes every request path, e.g. "https://xyz.supabase.co/rest/v1".
	BaseURL string

	// ServiceName names the downstream in logs, spans and metrics.
	ServiceName string

	// Timeout bounds a single attempt. Retries and back-off come on top.
	Timeout time.Duration

	Retry     config.RetryConfig
	Circuit   config.CircuitBreakerConfig
	Transport config.TransportConfig

	// Headers are set on every request, e.g. the PostgREST apikey.
	Headers map[string]string

	// AuthFunc, when set, runs before every attempt so a refreshed token is
	// picked up by retries.
	AuthFunc func(*http.Request)

	Logger *slog.Logger
}

// Client calls one downstream over HTTP with retries, a circuit breaker,
// tracing and request metrics.
type Client struct {
	cfg     Config
	base    string
	http    *http.Client
	breaker *breaker
	logger  *slog.Logger
	tracer  trace.Tracer

	duration metric.Float64Histogram
	total    metric.Int64Counter
}

// New validates cfg and builds a Client. cfg is copied.
func New(cfg *Config) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if cfg.ServiceName == "" {
		return nil, errors.New("service name is required")
	}

	c := &Client{cfg: *cfg, base: strings.TrimSuffix(cfg.BaseURL, "/")}
	c.cfg.Timeout = orDefault(c.cfg.Timeout, defaultTimeout)
	c.cfg.Retry.MaxAttempts = max(c.cfg.Retry.MaxAttempts, 1)
	if c.cfg.Retry.JitterFactor <= 0 {
		c.cfg.Retry.JitterFactor = defaultJitter
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	c.logger = logger.With(slog.String("component", "clients"), slog.String("downstream", cfg.ServiceName))

	c.breaker = newBreaker(cfg.Circuit, func(from, to State) {
		c.logger.Warn("circuit breaker state changed",
			slog.String("from", from.String()),
			slog.String("to", to.String()))
	})

	meter := otel.Meter(scope)
	var err error
	if c.duration, err = meter.Float64Histogram("http.client.request.duration",
		metric.WithDescription("Duration of downstream HTTP calls including retries"),
		metric.WithUnit("s")); err != nil {
		return nil, fmt.Errorf("creating duration histogram: %w", err)
	}
	if c.total, err = meter.Int64Counter("http.client.request.total",
		metric.WithDescription("Downstream HTTP calls by outcome")); err != nil {
		return nil, fmt.Errorf("creating request counter: %w", err)
	}

	c.tracer = otel.Tracer(scope)
	c.http = &http.Client{
		Timeout: c.cfg.Timeout,
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        orDefault(cfg.Transport.MaxIdleConns, defaultMaxIdleConns),
			MaxIdleConnsPerHost: orDefault(cfg.Transport.MaxIdleConnsPerHost, defaultMaxIdleConnsPerHost),
			IdleConnTimeout:     orDefault(cfg.Transport.IdleConnTimeout, defaultIdleConnTimeout),
		},
	}

	return c, nil
}

// Request describes a call relative to the base URL.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header

	// Body is sent as application/json when non-nil and replayed on retries.
	Body []byte
}

// Send builds r and executes it with Do.
func (c *Client) Send(ctx context.Context, r Request) (*http.Response, error) {
	target := c.url(r.Path)
	if len(r.Query) > 0 {
		target += "?" + r.Query.Encode()
	}

	var body io.Reader = http.NoBody
	if r.Body != nil {
		body = bytes.NewReader(r.Body)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, target, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	if r.Body != nil {
		payload := r.Body
		req.GetBody = func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(payload)), nil
		}
		req.Header.Set("Content-Type", "application/json")
	}

	for name, values := range r.Header {
		for _, v := range values {
			req.Header.Add(name, v)
		}
	}

	return c.Do(ctx, req)
}

// Get fetches path.
func (c *Client) Get(ctx context.Context, path string) (*http.Response, error) {
	return c.Send(ctx, Request{Method: http.MethodGet, Path: path})
}

// CircuitState reports the breaker state.
func (c *Client) CircuitState() State {
	return c.breaker.State()
}

// Do executes req. A 5xx, a 429 or a transport error is retried up to
// Retry.MaxAttempts; the last failure is returned wrapped in
// ErrMaxRetriesExceeded. Any other response, 4xx included, is returned to
// the caller, who owns its body. A body is only replayed when req.GetBody is
// set.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	call := &call{
		client: c,
		req:    req,
		start:  time.Now(),
		logger: logging.FromContext(ctx).With(
			slog.String("downstream", c.cfg.ServiceName),
			slog.String("method", req.Method),
			slog.String("path", req.URL.Path)),
	}

	if !c.breaker.Allow() {
		call.observe(ctx, 0, "circuit_open")
		call.logger.Warn("request blocked by circuit breaker")
		return nil, ErrCircuitOpen
	}

	ctx, span := c.tracer.Start(ctx, "HTTP "+req.Method+" "+c.cfg.ServiceName,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", req.Method),
			attribute.String("url.full", req.URL.String()),
			attribute.String("peer.service", c.cfg.ServiceName)))
	defer span.End()

	c.decorate(ctx, req)
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := call.run(ctx)
	if err != nil {
		c.breaker.Failure(retryAfterOf(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		if ctx.Err() != nil {
			call.observe(ctx, 0, "context_canceled")
			return nil, err
		}

		call.observe(ctx, 0, "error")
		call.logger.Error("request failed",
			slog.Duration("duration", time.Since(call.start)),
			slog.Any("error", err))

		return nil, fmt.Errorf("%w: %w", ErrMaxRetriesExceeded, err)
	}

	c.breaker.Success()
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	if resp.StatusCode >= http.StatusBadRequest {
		span.SetStatus(codes.Error, "HTTP "+strconv.Itoa(resp.StatusCode))
	}

	call.observe(ctx, resp.StatusCode, strconv.Itoa(resp.StatusCode/100)+"xx")
	call.logger.Debug("request completed",
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(call.start)))

	return resp, nil
}

// decorate sets the propagated IDs, the static headers and auth.
func (c *Client) decorate(ctx context.Context, req *http.Request) {
	if id := middleware.RequestIDFromContext(ctx); id != "" {
		req.Header.Set(middleware.HeaderRequestID, id)
	}
	if id := middleware.CorrelationIDFromContext(ctx); id != "" {
		req.Header.Set(middleware.HeaderCorrelationID, id)
	}

	for name, v := range c.cfg.Headers {
		req.Header.Set(name, v)
	}

	if c.cfg.AuthFunc != nil {
		c.cfg.AuthFunc(req)
	}
}

func (c *Client) url(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return c.base + path
}

func orDefault[T int | time.Duration](v, fallback T) T {
	if v <= 0 {
		return fallback
	}

	return v
}
