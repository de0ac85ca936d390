package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"runtime"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotevault/internal/ports"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func checker(name string, err error) ports.HealthChecker {
	return ports.CheckFunc{CheckName: name, Fn: func(context.Context) error { return err }}
}

func probeRouter(registry ports.HealthRegistry, bi BuildInfo) *gin.Engine {
	router := gin.New()
	NewHealthHandler(registry, bi).RegisterRoutes(router)

	return router
}

func probe(t *testing.T, router *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

	return w
}

func TestNewBuildInfo(t *testing.T) {
	bi := NewBuildInfo("0.3.0", "9f1c2ab", "2026-03-01T08:00:00Z")

	assert.Equal(t, BuildInfo{
		Version:   "0.3.0",
		Commit:    "9f1c2ab",
		BuildTime: "2026-03-01T08:00:00Z",
		GoVersion: runtime.Version(),
	}, bi)
}

func TestLiveness_IgnoresFailingDependencies(t *testing.T) {
	registry := ports.NewHealthRegistry()
	require.NoError(t, registry.Register(checker("records", errors.New("connection refused"))))

	w := probe(t, probeRouter(registry, BuildInfo{}), "/-/live")
	require.Equal(t, http.StatusOK, w.Code)

	var resp liveness
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.GreaterOrEqual(t, resp.UptimeSeconds, int64(0))
}

func TestReadiness(t *testing.T) {
	refused := errors.New("connection refused")

	tests := []struct {
		name       string
		critical   []ports.HealthChecker
		optional   []ports.HealthChecker
		wantStatus int
		wantHealth ports.HealthStatus
	}{
		{
			name:       "all healthy",
			critical:   []ports.HealthChecker{checker("records", nil), checker("cache", nil)},
			optional:   []ports.HealthChecker{checker("push", nil)},
			wantStatus: http.StatusOK,
			wantHealth: ports.HealthStatusHealthy,
		},
		{
			name:       "record store down",
			critical:   []ports.HealthChecker{checker("records", refused), checker("cache", nil)},
			wantStatus: http.StatusServiceUnavailable,
			wantHealth: ports.HealthStatusUnhealthy,
		},
		{
			name:       "push sender down degrades",
			critical:   []ports.HealthChecker{checker("records", nil)},
			optional:   []ports.HealthChecker{checker("push", refused), checker("scheduler", nil)},
			wantStatus: http.StatusOK,
			wantHealth: ports.HealthStatusDegraded,
		},
		{
			name:       "nothing registered",
			wantStatus: http.StatusOK,
			wantHealth: ports.HealthStatusHealthy,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := ports.NewHealthRegistry()
			for _, c := range tt.critical {
				require.NoError(t, registry.Register(c))
			}
			for _, c := range tt.optional {
				require.NoError(t, registry.RegisterOptional(c))
			}

			w := probe(t, probeRouter(registry, BuildInfo{}), "/-/ready")
			assert.Equal(t, tt.wantStatus, w.Code)

			var resp readiness
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantHealth, resp.Status)
			assert.Len(t, resp.Checks, len(tt.critical)+len(tt.optional))

			for _, c := range tt.optional {
				assert.True(t, resp.Checks[c.Name()].Optional, c.Name())
			}
		})
	}
}

func TestReadiness_FailureMessage(t *testing.T) {
	registry := ports.NewHealthRegistry()
	require.NoError(t, registry.Register(checker("records", errors.New("connection refused"))))

	w := probe(t, probeRouter(registry, BuildInfo{}), "/-/ready")
	assert.Contains(t, w.Body.String(), "connection refused")
}

func TestReadiness_NilRegistry(t *testing.T) {
	w := probe(t, probeRouter(nil, BuildInfo{}), "/-/ready")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, w.Body.String())
}

func TestBuild(t *testing.T) {
	bi := BuildInfo{Version: "0.3.0", Commit: "9f1c2ab", BuildTime: "2026-03-01T08:00:00Z", GoVersion: "go1.25.7"}

	w := probe(t, probeRouter(nil, bi), "/-/build")
	require.Equal(t, http.StatusOK, w.Code)

	var resp BuildInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, bi, resp)
}

func TestMetrics(t *testing.T) {
	w := probe(t, probeRouter(nil, BuildInfo{}), "/-/metrics")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
	assert.Contains(t, w.Body.String(), "go_goroutines")
}
