package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/quotevault/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotevault/internal/platform/logging"
)

// Recovery turns a handler panic into a logged 500 with the standard error
// envelope. It must be the first middleware so it covers the whole chain.
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			if r == http.ErrAbortHandler {
				panic(r)
			}

			ctx := c.Request.Context()
			traceID := traceIDFrom(ctx, c)

			logging.FromContextOr(ctx, logger).ErrorContext(ctx, "panic recovered",
				slog.String("error", fmt.Sprint(r)),
				slog.String("route", c.FullPath()),
				slog.String("method", c.Request.Method),
				slog.String("trace_id", traceID),
				slog.String("stack", string(debug.Stack())),
			)

			abortWith(c, dto.ErrorCodeInternal, "an internal error occurred", traceID)
		}()

		c.Next()
	}
}

// traceIDFrom prefers the active span and falls back to the request ID.
func traceIDFrom(ctx context.Context, c *gin.Context) string {
	if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
		return sc.TraceID().String()
	}

	return GetRequestID(c)
}

// abortWith stops the chain and, unless a response is already on the wire,
// writes the error envelope for code.
func abortWith(c *gin.Context, code, message, traceID string) {
	if c.Writer.Written() {
		c.Abort()
		return
	}

	c.AbortWithStatusJSON(dto.StatusForCode(code), dto.NewErrorResponse(code, message).WithTraceID(traceID))
}
