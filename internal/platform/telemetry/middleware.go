package telemetry

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const (
	instrumentationName = "github.com/jsamuelsen/quotevault/telemetry"

	// HeaderTraceID carries the request's trace id back to the app so a
	// user report can be matched with the server trace.
	HeaderTraceID = "X-Trace-ID"

	// unmatchedRoute labels requests that hit no registered route, keeping
	// the route attribute's cardinality bounded.
	unmatchedRoute = "unmatched"
)

type options struct {
	meters  metric.MeterProvider
	tracers trace.TracerProvider
}

// Option overrides the global OpenTelemetry providers.
type Option func(*options)

func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *options) { o.meters = mp }
}

func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) { o.tracers = tp }
}

// Middleware returns the otelgin tracing handler followed by the request
// metrics handler.
func Middleware(serviceName string, opts ...Option) []gin.HandlerFunc {
	o := options{meters: otel.GetMeterProvider(), tracers: otel.GetTracerProvider()}
	for _, opt := range opts {
		opt(&o)
	}

	return []gin.HandlerFunc{
		otelgin.Middleware(serviceName, otelgin.WithTracerProvider(o.tracers)),
		requestMetrics(o.meters.Meter(instrumentationName)),
	}
}

type httpInstruments struct {
	duration metric.Float64Histogram
	total    metric.Int64Counter
	active   metric.Int64UpDownCounter
}

func newHTTPInstruments(meter metric.Meter) (*httpInstruments, error) {
	var (
		in  httpInstruments
		err error
	)

	if in.duration, err = meter.Float64Histogram("http.server.request.duration",
		metric.WithDescription("HTTP request duration"), metric.WithUnit("s")); err != nil {
		return nil, err
	}
	if in.total, err = meter.Int64Counter("http.server.request.total",
		metric.WithDescription("HTTP requests served")); err != nil {
		return nil, err
	}
	if in.active, err = meter.Int64UpDownCounter("http.server.active_requests",
		metric.WithDescription("HTTP requests in flight")); err != nil {
		return nil, err
	}

	return &in, nil
}

// requestMetrics records duration, count and in-flight requests per route
// and sets HeaderTraceID when a span is active.
func requestMetrics(meter metric.Meter) gin.HandlerFunc {
	in, err := newHTTPInstruments(meter)
	if err != nil {
		// Requests keep flowing without metrics.
		otel.Handle(err)
	}

	return func(c *gin.Context) {
		start := time.Now()
		ctx := c.Request.Context()

		base := []attribute.KeyValue{
			attribute.String("http.request.method", c.Request.Method),
			attribute.String("http.route", routeOf(c)),
		}

		if in != nil {
			in.active.Add(ctx, 1, metric.WithAttributes(base...))
			defer in.active.Add(ctx, -1, metric.WithAttributes(base...))
		}

		if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
			c.Header(HeaderTraceID, sc.TraceID().String())
		}

		c.Next()

		if in == nil {
			return
		}

		done := metric.WithAttributes(append(base, attribute.Int("http.response.status_code", c.Writer.Status()))...)
		in.duration.Record(ctx, time.Since(start).Seconds(), done)
		in.total.Add(ctx, 1, done)
	}
}

func routeOf(c *gin.Context) string {
	if r := c.FullPath(); r != "" {
		return r
	}

	return unmatchedRoute
}
