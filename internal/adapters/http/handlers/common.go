package handlers

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotevault/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotevault/internal/app"
	"github.com/jsamuelsen/quotevault/internal/ports"
)

// SessionSource returns the session of an authenticated user.
// *app.SessionManager implements it.
type SessionSource interface {
	Get(ctx context.Context, userID string) (*app.Session, error)
}

// userSession resolves the caller's session, writing the error response
// when there is none.
func userSession(c *gin.Context, sessions SessionSource) (*app.Session, bool) {
	ctx := c.Request.Context()
	userID, _ := ports.ContextAuth{}.CurrentUserID(ctx)

	s, err := sessions.Get(ctx, userID)
	if err != nil {
		dto.HandleError(c, err)
		return nil, false
	}

	return s, true
}

// int64Param parses a positive integer path parameter.
func int64Param(c *gin.Context, name string) (int64, bool) {
	v, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || v <= 0 {
		dto.BadRequest(c, name+" must be a positive integer")
		return 0, false
	}

	return v, true
}

// bind decodes and validates a JSON body, writing the error response on
// failure.
func bind(c *gin.Context, v any) bool {
	if err := dto.BindAndValidate(c, v); err != nil {
		dto.HandleBindError(c, err)
		return false
	}

	return true
}
