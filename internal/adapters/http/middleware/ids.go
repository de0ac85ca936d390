// Package middleware holds the gin middleware of the QuoteVault API:
// request and correlation IDs, access logging, panic recovery, request
// deadlines and subject authentication.
package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jsamuelsen/quotevault/internal/platform/logging"
)

// Propagated headers. The request ID names one HTTP exchange; the
// correlation ID is kept across the PostgREST and push calls it triggers.
const (
	HeaderRequestID     = "X-Request-ID"
	HeaderCorrelationID = "X-Correlation-ID"
)

// Gin context keys.
const (
	ContextKeyRequestID     = "request_id"
	ContextKeyCorrelationID = "correlation_id"
)

// maxIDLen bounds inbound IDs; longer or non-printable values are replaced.
const maxIDLen = 128

type idKey int

const (
	requestIDKey idKey = iota
	correlationIDKey
)

type idKind struct {
	header  string
	ginKey  string
	ctxKey  idKey
	logAttr func(context.Context, string) context.Context
}

var (
	requestIDKind     = idKind{HeaderRequestID, ContextKeyRequestID, requestIDKey, logging.WithRequestID}
	correlationIDKind = idKind{HeaderCorrelationID, ContextKeyCorrelationID, correlationIDKey, logging.WithCorrelationID}
)

// RequestID accepts the caller's X-Request-ID or mints a UUID, echoes it
// back, and makes it available to handlers, logs and outgoing clients.
func RequestID() gin.HandlerFunc { return propagate(requestIDKind) }

// CorrelationID is RequestID for X-Correlation-ID.
func CorrelationID() gin.HandlerFunc { return propagate(correlationIDKind) }

func propagate(kind idKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(kind.header)
		if !validID(id) {
			id = uuid.NewString()
		}

		c.Set(kind.ginKey, id)
		c.Header(kind.header, id)

		ctx := context.WithValue(c.Request.Context(), kind.ctxKey, id)
		c.Request = c.Request.WithContext(kind.logAttr(ctx, id))

		c.Next()
	}
}

func validID(id string) bool {
	if id == "" || len(id) > maxIDLen {
		return false
	}

	for i := range len(id) {
		if id[i] < 0x21 || id[i] > 0x7e {
			return false
		}
	}

	return true
}

// GetRequestID returns the request ID set by RequestID, or "".
func GetRequestID(c *gin.Context) string { return c.GetString(ContextKeyRequestID) }

// GetCorrelationID returns the correlation ID set by CorrelationID, or "".
func GetCorrelationID(c *gin.Context) string { return c.GetString(ContextKeyCorrelationID) }

// RequestIDFromContext is read by the outbound clients.
func RequestIDFromContext(ctx context.Context) string { return idFrom(ctx, requestIDKey) }

func CorrelationIDFromContext(ctx context.Context) string { return idFrom(ctx, correlationIDKey) }

// ContextWithRequestID attaches a request ID outside of an HTTP request,
// for example to a scheduler run.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func ContextWithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey, id)
}

func idFrom(ctx context.Context, key idKey) string {
	if ctx == nil {
		return ""
	}

	id, _ := ctx.Value(key).(string)

	return id
}
