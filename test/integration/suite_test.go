//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"

	httpadapter "github.com/jsamuelsen/quotevault/internal/adapters/http"
	"github.com/jsamuelsen/quotevault/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quotevault/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quotevault/internal/bootstrap"
	"github.com/jsamuelsen/quotevault/internal/platform/config"
	"github.com/jsamuelsen/quotevault/internal/ports"
)

// starterQuotes is the corpus every in-process scenario starts with.
var starterQuotes = filepath.Join("..", "..", "configs", "quotes.yaml")

// subjectHeader carries the user in header auth mode.
const subjectHeader = "X-User-ID"

var placeholder = regexp.MustCompile(`\{([a-zA-Z_]+)\}`)

// testContext holds state shared across step definitions within a scenario.
type testContext struct {
	baseURL      string
	client       *http.Client
	user         string
	response     *http.Response
	responseBody []byte
	remembered   map[string]string

	// stop tears down the in-process service; nil when BASE_URL is set.
	stop func()
}

// newTestContext creates a new test context with sensible defaults.
func newTestContext() *testContext {
	return &testContext{
		baseURL: os.Getenv("BASE_URL"),
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// reset clears scenario state and stops any in-process service.
func (tc *testContext) reset() {
	if tc.response != nil && tc.response.Body != nil {
		tc.response.Body.Close()
	}
	tc.response = nil
	tc.responseBody = nil
	tc.user = ""
	tc.remembered = map[string]string{}

	if tc.stop != nil {
		tc.stop()
		tc.stop = nil
		tc.baseURL = ""
	}
}

// startInProcess runs the full router over memory backends seeded with the
// starter quotes.
func startInProcess() (string, func(), error) {
	cfg, err := config.Load("test")
	if err != nil {
		return "", nil, fmt.Errorf("loading config: %w", err)
	}

	dataDir, err := os.MkdirTemp("", "quotevault-features-")
	if err != nil {
		return "", nil, err
	}

	cfg.Auth.Mode = middleware.AuthModeHeader
	cfg.Auth.SubjectHeader = subjectHeader
	cfg.Store.Driver = "memory"
	cfg.Store.SeedFile = starterQuotes
	cfg.Cache.Driver = "memory"
	cfg.Notifications.Enabled = true
	cfg.Notifications.Timezone = "UTC"
	cfg.Share.Enabled = true
	cfg.Share.ExportDir = filepath.Join(dataDir, "cards")
	cfg.Share.OutboxDir = filepath.Join(dataDir, "outbox")
	cfg.Share.GalleryDir = filepath.Join(dataDir, "gallery")

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.Background()

	records, closeRecords, err := bootstrap.OpenRecordStore(ctx, cfg, logger)
	if err != nil {
		return "", nil, err
	}

	cache, closeCache, err := bootstrap.OpenCache(ctx, cfg)
	if err != nil {
		closeRecords()
		return "", nil, err
	}

	health := ports.NewHealthRegistry()

	svc, err := bootstrap.NewServices(cfg, logger, records, cache, nil, health)
	if err != nil {
		closeCache()
		closeRecords()
		return "", nil, err
	}
	svc.Scheduler.Start()

	gin.SetMode(gin.TestMode)
	engine := gin.New()
	httpadapter.SetupRouter(engine, httpadapter.RouterConfig{
		Logger:        logger,
		AppConfig:     &cfg.App,
		Auth:          middleware.AuthOptions{Config: &cfg.Auth},
		HealthHandler: handlers.NewHealthHandler(health, handlers.NewBuildInfo("test", "none", "now")),
		Quotes:        handlers.NewQuoteHandler(svc.Quotes, svc.Share, svc.Sessions),
		Feed:          handlers.NewFeedHandler(svc.Sessions),
		Settings:      handlers.NewSettingsHandler(svc.Sessions),
		Library:       handlers.NewLibraryHandler(svc.Favorites, svc.Collections),
		Notifications: handlers.NewNotificationHandler(svc.Notifications, svc.Devices, svc.Sessions),
		Timeout:       httpadapter.DefaultRequestTimeout,
	})

	srv := httptest.NewServer(engine)

	stop := func() {
		srv.Close()
		svc.Sessions.Close()
		_ = svc.Scheduler.Stop(context.Background())
		closeCache()
		closeRecords()
		_ = os.RemoveAll(dataDir)
	}

	return srv.URL, stop, nil
}

// InitializeScenario registers step definitions for each scenario.
func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := newTestContext()

	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		tc.reset()

		if tc.baseURL != "" {
			return ctx, nil
		}

		url, stop, err := startInProcess()
		if err != nil {
			return ctx, fmt.Errorf("starting service: %w", err)
		}
		tc.baseURL, tc.stop = url, stop

		return ctx, nil
	})

	ctx.After(func(ctx context.Context, _ *godog.Scenario, _ error) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	ctx.Step(`^the service is running$`, tc.theServiceIsRunning)
	ctx.Step(`^I am signed in as "([^"]*)"$`, tc.iAmSignedInAs)
	ctx.Step(`^I request (GET|POST|PUT|DELETE) "([^"]*)"$`, tc.iRequest)
	ctx.Step(`^I request (POST|PUT) "([^"]*)" with body:$`, tc.iRequestWithBody)
	ctx.Step(`^the response status should be (\d+)$`, tc.theResponseStatusShouldBe)
	ctx.Step(`^the response should contain "([^"]*)"$`, tc.theResponseShouldContain)
	ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, tc.theResponseFieldShouldBe)
	ctx.Step(`^the response field "([^"]*)" should have (\d+) items?$`, tc.theResponseFieldShouldHaveItems)
	ctx.Step(`^I remember the response field "([^"]*)" as "([^"]*)"$`, tc.iRememberTheResponseField)
}

// theServiceIsRunning verifies the service is reachable.
func (tc *testContext) theServiceIsRunning() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, tc.baseURL+"/-/live", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := tc.client.Do(req)
	if err != nil {
		return fmt.Errorf("service is not running at %s: %w", tc.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("service health check failed with status %d", resp.StatusCode)
	}

	return nil
}

func (tc *testContext) iAmSignedInAs(user string) error {
	tc.user = user
	return nil
}

func (tc *testContext) iRequest(method, path string) error {
	return tc.send(method, path, nil)
}

func (tc *testContext) iRequestWithBody(method, path string, body *godog.DocString) error {
	return tc.send(method, path, []byte(tc.expand(body.Content)))
}

// send issues a request as the signed-in user and buffers the response.
func (tc *testContext) send(method, path string, body []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, tc.baseURL+tc.expand(path), r)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tc.user != "" {
		req.Header.Set(subjectHeader, tc.user)
	}

	if tc.response != nil {
		tc.response.Body.Close()
	}

	tc.response, err = tc.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	tc.responseBody, err = io.ReadAll(tc.response.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	return nil
}

// expand substitutes {name} with a remembered value.
func (tc *testContext) expand(s string) string {
	return placeholder.ReplaceAllStringFunc(s, func(m string) string {
		if v, ok := tc.remembered[m[1:len(m)-1]]; ok {
			return v
		}
		return m
	})
}

// theResponseStatusShouldBe asserts the response status code.
func (tc *testContext) theResponseStatusShouldBe(expectedCode int) error {
	if tc.response == nil {
		return fmt.Errorf("no response received")
	}

	if tc.response.StatusCode != expectedCode {
		return fmt.Errorf("expected status %d, got %d. Body: %s",
			expectedCode, tc.response.StatusCode, string(tc.responseBody))
	}

	return nil
}

// theResponseShouldContain asserts the response body contains the given text.
func (tc *testContext) theResponseShouldContain(text string) error {
	if tc.responseBody == nil {
		return fmt.Errorf("no response body")
	}

	if !strings.Contains(string(tc.responseBody), text) {
		return fmt.Errorf("response body does not contain %q.\nBody: %s", text, tc.responseBody)
	}

	return nil
}

func (tc *testContext) theResponseFieldShouldBe(path, want string) error {
	v, err := tc.field(path)
	if err != nil {
		return err
	}

	if got := fmt.Sprint(v); got != want {
		return fmt.Errorf("field %s: expected %q, got %q", path, want, got)
	}

	return nil
}

func (tc *testContext) theResponseFieldShouldHaveItems(path string, n int) error {
	v, err := tc.field(path)
	if err != nil {
		return err
	}

	items, ok := v.([]any)
	if !ok && v != nil {
		return fmt.Errorf("field %s is %T, not a list", path, v)
	}

	if len(items) != n {
		return fmt.Errorf("field %s: expected %d items, got %d", path, n, len(items))
	}

	return nil
}

func (tc *testContext) iRememberTheResponseField(path, name string) error {
	v, err := tc.field(path)
	if err != nil {
		return err
	}

	tc.remembered[name] = fmt.Sprint(v)

	return nil
}

// field walks a dotted path such as "feed.quotes.0.id" through the JSON
// body. "." is the whole document.
func (tc *testContext) field(path string) (any, error) {
	var doc any
	if err := json.Unmarshal(tc.responseBody, &doc); err != nil {
		return nil, fmt.Errorf("response is not JSON: %w. Body: %s", err, tc.responseBody)
	}

	if path == "." {
		return doc, nil
	}

	cur := doc
	for _, part := range strings.Split(path, ".") {
		switch node := cur.(type) {
		case map[string]any:
			v, ok := node[part]
			if !ok {
				return nil, fmt.Errorf("field %s: no key %q", path, part)
			}
			cur = v
		case []any:
			i, err := strconv.Atoi(part)
			if err != nil || i < 0 || i >= len(node) {
				return nil, fmt.Errorf("field %s: bad index %q", path, part)
			}
			cur = node[i]
		default:
			return nil, fmt.Errorf("field %s: cannot descend into %T", path, cur)
		}
	}

	return cur, nil
}

// TestFeatures runs the GoDog BDD test suite.
func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"../features"},
			TestingT: t,
			Tags:     os.Getenv("GODOG_TAGS"),
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
