package ports

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"
)

// ErrDuplicateChecker is returned when a checker name is registered twice.
var ErrDuplicateChecker = errors.New("duplicate health checker")

// DefaultCheckTimeout bounds a single check when the caller's context has no
// earlier deadline.
const DefaultCheckTimeout = 2 * time.Second

// HealthChecker is implemented by adapters that can report their health
// (record store, cache, push sender, scheduler).
type HealthChecker interface {
	// Name identifies the component in readiness responses.
	Name() string

	// Check returns nil when the component is usable.
	Check(ctx context.Context) error
}

// HealthRegistry aggregates health checks.
type HealthRegistry interface {
	// Register adds a critical checker. Its failure makes the service unhealthy.
	Register(checker HealthChecker) error

	// RegisterOptional adds a checker whose failure only degrades the service.
	RegisterOptional(checker HealthChecker) error

	// CheckAll runs every checker concurrently.
	CheckAll(ctx context.Context) *HealthResult
}

// HealthStatus is the outcome of one check or of the whole registry.
type HealthStatus string

// Health outcomes, ordered from best to worst.
const (
	HealthStatusHealthy HealthStatus = "healthy"

	// HealthStatusDegraded means only optional checks failed.
	HealthStatusDegraded HealthStatus = "degraded"

	// HealthStatusUnhealthy means a critical check failed.
	HealthStatusUnhealthy HealthStatus = "unhealthy"
)

// HealthResult is a CheckAll snapshot.
type HealthResult struct {
	Status    HealthStatus            `json:"status"`
	Checks    map[string]*CheckResult `json:"checks"`
	Timestamp time.Time               `json:"timestamp"`
}

// CheckResult is the outcome of one checker.
type CheckResult struct {
	Status   HealthStatus  `json:"status"`
	Optional bool          `json:"optional,omitempty"`
	Message  string        `json:"message,omitempty"`
	Duration time.Duration `json:"duration"`
}

type entry struct {
	checker  HealthChecker
	optional bool
}

// DefaultHealthRegistry is safe for concurrent registration and checking.
type DefaultHealthRegistry struct {
	mu      sync.RWMutex
	entries []entry
	timeout time.Duration
}

// NewHealthRegistry returns an empty registry using DefaultCheckTimeout.
func NewHealthRegistry() *DefaultHealthRegistry {
	return &DefaultHealthRegistry{timeout: DefaultCheckTimeout}
}

// Register implements HealthRegistry.
func (r *DefaultHealthRegistry) Register(checker HealthChecker) error {
	return r.add(entry{checker: checker})
}

// RegisterOptional implements HealthRegistry.
func (r *DefaultHealthRegistry) RegisterOptional(checker HealthChecker) error {
	return r.add(entry{checker: checker, optional: true})
}

func (r *DefaultHealthRegistry) add(e entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := e.checker.Name()
	if slices.ContainsFunc(r.entries, func(x entry) bool { return x.checker.Name() == name }) {
		return fmt.Errorf("%w: %s", ErrDuplicateChecker, name)
	}

	r.entries = append(r.entries, e)

	return nil
}

// CheckAll implements HealthRegistry. Each checker gets its own timeout.
func (r *DefaultHealthRegistry) CheckAll(ctx context.Context) *HealthResult {
	r.mu.RLock()
	entries := slices.Clone(r.entries)
	r.mu.RUnlock()

	results := make([]*CheckResult, len(entries))

	var wg sync.WaitGroup
	for i, e := range entries {
		wg.Go(func() { results[i] = r.check(ctx, e) })
	}
	wg.Wait()

	out := &HealthResult{
		Status:    HealthStatusHealthy,
		Checks:    make(map[string]*CheckResult, len(entries)),
		Timestamp: time.Now(),
	}
	for i, e := range entries {
		res := results[i]
		out.Checks[e.checker.Name()] = res
		out.Status = worse(out.Status, effective(res))
	}

	return out
}

// effective is how much a result weighs on the overall status.
func effective(res *CheckResult) HealthStatus {
	if res.Status != HealthStatusHealthy && res.Optional {
		return HealthStatusDegraded
	}

	return res.Status
}

func worse(a, b HealthStatus) HealthStatus {
	rank := map[HealthStatus]int{HealthStatusHealthy: 0, HealthStatusDegraded: 1, HealthStatusUnhealthy: 2}
	if rank[b] > rank[a] {
		return b
	}

	return a
}

func (r *DefaultHealthRegistry) check(ctx context.Context, e entry) *CheckResult {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := time.Now()
	err := e.checker.Check(ctx)

	res := &CheckResult{Status: HealthStatusHealthy, Optional: e.optional, Duration: time.Since(start)}
	if err != nil {
		res.Status = HealthStatusUnhealthy
		res.Message = err.Error()
	}

	return res
}

// CheckFunc adapts a function into a HealthChecker.
type CheckFunc struct {
	CheckName string
	Fn        func(ctx context.Context) error
}

// Name implements HealthChecker.
func (c CheckFunc) Name() string { return c.CheckName }

// Check implements HealthChecker.
func (c CheckFunc) Check(ctx context.Context) error { return c.Fn(ctx) }
