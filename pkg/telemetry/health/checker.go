package health

import (
	"context"
	"errors"
	"maps"
	"slices"
	"sync"
	"time"
)

// Status values reported by checks and by the aggregate.
const (
	StatusOK        = "ok"
	StatusUnhealthy = "unhealthy"
	StatusReady     = "ready"
	StatusDegraded  = "degraded"
)

// DefaultCheckTimeout bounds a single check when New is given zero.
const DefaultCheckTimeout = 5 * time.Second

// ErrCheckTimeout is reported when a check does not finish in time.
var ErrCheckTimeout = errors.New("health check timeout")

// CheckFunc checks one component. It returns nil when the component is healthy.
type CheckFunc func(ctx context.Context) error

// CheckResult is the outcome of a single check.
type CheckResult struct {
	Status   string        `json:"status"`
	Message  string        `json:"message,omitempty"`
	Duration time.Duration `json:"duration_ns,omitempty"`
}

// Report is the aggregate status returned by the probes.
type Report struct {
	Status    string                 `json:"status"`
	Checks    map[string]CheckResult `json:"checks,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

// Ready reports whether every check passed.
func (r Report) Ready() bool {
	return r.Status == StatusOK || r.Status == StatusReady
}

// Checker runs named component checks.
type Checker struct {
	mu      sync.RWMutex
	checks  map[string]CheckFunc
	timeout time.Duration
	now     func() time.Time
}

// New creates a checker. A zero timeout means DefaultCheckTimeout.
func New(timeout time.Duration) *Checker {
	if timeout <= 0 {
		timeout = DefaultCheckTimeout
	}
	return &Checker{
		checks:  make(map[string]CheckFunc),
		timeout: timeout,
		now:     time.Now,
	}
}

// Register adds or replaces the check for name.
func (c *Checker) Register(name string, check CheckFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.checks[name] = check
}

// Unregister removes the check for name.
func (c *Checker) Unregister(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.checks, name)
}

// Names returns the registered check names in sorted order.
func (c *Checker) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Sorted(maps.Keys(c.checks))
}

// Liveness reports that the process is up. It runs no checks.
func (c *Checker) Liveness(ctx context.Context) Report {
	return Report{Status: StatusOK, Timestamp: c.now()}
}

// Readiness runs every registered check concurrently and aggregates them.
// With no checks registered the process is ready.
func (c *Checker) Readiness(ctx context.Context) Report {
	c.mu.RLock()
	checks := maps.Clone(c.checks)
	c.mu.RUnlock()

	results := make(map[string]CheckResult, len(checks))
	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for name, check := range checks {
		wg.Go(func() {
			res := c.run(ctx, check)
			mu.Lock()
			results[name] = res
			mu.Unlock()
		})
	}
	wg.Wait()

	status := StatusReady
	for _, res := range results {
		if res.Status != StatusOK {
			status = StatusDegraded
			break
		}
	}

	return Report{Status: status, Checks: results, Timestamp: c.now()}
}

func (c *Checker) run(ctx context.Context, check CheckFunc) CheckResult {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	done := make(chan error, 1)
	go func() {
		done <- check(ctx)
	}()

	select {
	case err := <-done:
		if err != nil {
			return CheckResult{Status: StatusUnhealthy, Message: err.Error(), Duration: time.Since(start)}
		}
		return CheckResult{Status: StatusOK, Duration: time.Since(start)}
	case <-ctx.Done():
		return CheckResult{Status: StatusUnhealthy, Message: ErrCheckTimeout.Error(), Duration: time.Since(start)}
	}
}
