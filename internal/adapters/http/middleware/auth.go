package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotevault/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotevault/internal/domain"
	"github.com/jsamuelsen/quotevault/internal/platform/config"
	"github.com/jsamuelsen/quotevault/internal/platform/logging"
	"github.com/jsamuelsen/quotevault/internal/ports"
)

const (
	// ContextKeyClaims is the gin context key for storing extracted claims.
	ContextKeyClaims = "claims"

	// AuthModeHeader trusts a subject header set by the gateway.
	AuthModeHeader = "header"

	// AuthModeFirebase verifies a Firebase ID token from the Authorization header.
	AuthModeFirebase = "firebase"

	defaultSubjectHeader = "X-User-ID"
	bearerPrefix         = "Bearer "
)

// TokenVerifier resolves a bearer token to a user id.
// The Firebase adapter implements it.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, idToken string) (uid string, err error)
}

// Claims identifies the caller of a request.
type Claims struct {
	// Subject is the user id.
	Subject string

	// Mode records how the subject was established.
	Mode string
}

// AuthOptions configures Authenticate.
type AuthOptions struct {
	Config *config.AuthConfig

	// Verifier is required in firebase mode.
	Verifier TokenVerifier
}

// GetClaims retrieves claims from the gin context.
// Returns nil if claims are not present.
func GetClaims(c *gin.Context) *Claims {
	if claims, exists := c.Get(ContextKeyClaims); exists {
		if cl, ok := claims.(*Claims); ok {
			return cl
		}
	}

	return nil
}

// Authenticate rejects requests without a user and stores the user id in
// the request context (ports.WithUserID) and the context logger.
func Authenticate(opts AuthOptions) gin.HandlerFunc {
	mode := AuthModeHeader
	header := defaultSubjectHeader

	if opts.Config != nil {
		if opts.Config.Mode != "" {
			mode = opts.Config.Mode
		}

		if opts.Config.SubjectHeader != "" {
			header = opts.Config.SubjectHeader
		}
	}

	if mode == AuthModeFirebase && opts.Verifier == nil {
		panic("middleware: firebase auth requires a token verifier")
	}

	return func(c *gin.Context) {
		var (
			subject string
			err     error
		)

		switch mode {
		case AuthModeFirebase:
			subject, err = verifyBearer(c, opts.Verifier)
		default:
			subject = strings.TrimSpace(c.GetHeader(header))
			if subject == "" {
				err = domain.NewUnauthenticatedError(c.Request.Method + " " + c.FullPath())
			}
		}

		if err != nil {
			dto.AbortWithError(c, err)
			return
		}

		c.Set(ContextKeyClaims, &Claims{Subject: subject, Mode: mode})

		ctx := ports.WithUserID(c.Request.Context(), subject)
		ctx = logging.WithUserID(ctx, subject)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func verifyBearer(c *gin.Context, verifier TokenVerifier) (string, error) {
	raw := c.GetHeader("Authorization")
	if !strings.HasPrefix(raw, bearerPrefix) {
		return "", domain.NewUnauthenticatedError(c.Request.Method + " " + c.FullPath())
	}

	token := strings.TrimSpace(strings.TrimPrefix(raw, bearerPrefix))
	if token == "" {
		return "", domain.NewUnauthenticatedError(c.Request.Method + " " + c.FullPath())
	}

	return verifier.VerifyToken(c.Request.Context(), token)
}
