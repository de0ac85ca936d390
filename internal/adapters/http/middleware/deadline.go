package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotevault/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotevault/internal/platform/logging"
)

// Deadline bounds each request's context by timeout. Handlers run on the
// request goroutine and are expected to honor ctx; if one returns after the
// deadline without writing a response, a 504 envelope is written for it.
func Deadline(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		if !errors.Is(ctx.Err(), context.DeadlineExceeded) || c.Writer.Written() {
			return
		}

		logging.FromContext(ctx).WarnContext(ctx, "request deadline exceeded",
			slog.String("route", c.FullPath()),
			slog.Duration("timeout", timeout),
		)

		abortWith(c, dto.ErrorCodeTimeout, "request deadline exceeded", traceIDFrom(ctx, c))
	}
}
