package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotevault/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quotevault/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quotevault/internal/platform/config"
	"github.com/jsamuelsen/quotevault/internal/platform/telemetry"
)

// DefaultRequestTimeout is the default timeout for API requests.
const DefaultRequestTimeout = 30 * time.Second

// RouterConfig contains configuration for setting up the router.
type RouterConfig struct {
	// Logger is the structured logger for request logging.
	Logger *slog.Logger

	// AppConfig contains application configuration.
	AppConfig *config.AppConfig

	// Auth configures the authentication middleware for /api/v1 routes
	// other than the public ones.
	Auth middleware.AuthOptions

	// CORS enables cross-origin access when CORS.Enabled is set.
	CORS *config.CORSConfig

	// HealthHandler handles health check endpoints.
	HealthHandler *handlers.HealthHandler

	Quotes        *handlers.QuoteHandler
	Feed          *handlers.FeedHandler
	Settings      *handlers.SettingsHandler
	Library       *handlers.LibraryHandler
	Notifications *handlers.NotificationHandler

	// Timeout is the default request timeout.
	Timeout time.Duration
}

// SetupRouter configures all routes and middleware on the Gin engine.
// Middleware order (first to last):
//  1. Recovery
//  2. Logging, which seeds the request logger the next steps enrich
//  3. Request ID and correlation ID
//  4. OpenTelemetry tracing and metrics
//  5. CORS, when enabled
//  6. Deadline on /api/v1
//  7. Authenticate on every /api/v1 route except the public ones
//
// Route groups:
//   - /-/ (internal): Health endpoints, no auth required
//   - /api/v1/ (public): quote of the day and categories
//   - /api/v1/ (protected): settings, feed, quotes, library, notifications
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	name := "quotevault"
	if cfg.AppConfig != nil && cfg.AppConfig.Name != "" {
		name = cfg.AppConfig.Name
	}

	engine.Use(
		middleware.Recovery(cfg.Logger),
		middleware.Logging(cfg.Logger),
		middleware.RequestID(),
		middleware.CorrelationID(),
	)
	engine.Use(telemetry.Middleware(name)...)

	if cfg.CORS != nil && cfg.CORS.Enabled {
		engine.Use(corsMiddleware(cfg.CORS, cfg.Auth.Config))
	}

	// Health endpoints are registered without timeout for probes.
	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterRoutes(engine)
	}

	apiV1 := engine.Group("/api/v1")
	if cfg.Timeout > 0 {
		apiV1.Use(middleware.Deadline(cfg.Timeout))
	}

	setupAPIRoutes(apiV1, cfg)
}

func setupAPIRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	if cfg.Quotes != nil {
		cfg.Quotes.RegisterPublicRoutes(rg)
	}

	protected := rg.Group("")
	protected.Use(middleware.Authenticate(cfg.Auth))

	if cfg.Quotes != nil {
		cfg.Quotes.RegisterQuoteRoutes(protected)
	}

	if cfg.Feed != nil {
		cfg.Feed.RegisterFeedRoutes(protected)
	}

	if cfg.Settings != nil {
		cfg.Settings.RegisterSettingsRoutes(protected)
	}

	if cfg.Library != nil {
		cfg.Library.RegisterLibraryRoutes(protected)
	}

	if cfg.Notifications != nil {
		cfg.Notifications.RegisterNotificationRoutes(protected)
	}
}

func corsMiddleware(cfg *config.CORSConfig, auth *config.AuthConfig) gin.HandlerFunc {
	headers := []string{"Authorization", "Content-Type", middleware.HeaderRequestID, middleware.HeaderCorrelationID}
	if auth != nil && auth.SubjectHeader != "" {
		headers = append(headers, auth.SubjectHeader)
	}

	c := cors.Config{
		AllowOrigins: cfg.AllowOrigins,
		AllowMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions,
		},
		AllowHeaders:  headers,
		ExposeHeaders: []string{middleware.HeaderRequestID},
		MaxAge:        cfg.MaxAge,
	}
	if c.MaxAge == 0 {
		c.MaxAge = 12 * time.Hour
	}

	return cors.New(c)
}
