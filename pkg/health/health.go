// Package health runs named preflight checks concurrently and aggregates
// them into a Report. A run is only worth starting when every check is up.
package health

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Status represents the state of one checked dependency or of the whole set.
type Status string

const (
	StatusUp   Status = "up"
	StatusDown Status = "down"
)

// Check probes a single dependency. A nil error means it is usable.
type Check func(ctx context.Context) error

// Result is the outcome of one check.
type Result struct {
	Name    string        `json:"name"`
	Status  Status        `json:"status"`
	Message string        `json:"message,omitempty"`
	Latency time.Duration `json:"latency"`
}

// Report lists results in registration order. Status is down when any
// result is down.
type Report struct {
	Status    Status    `json:"status"`
	Results   []Result  `json:"results"`
	Timestamp time.Time `json:"timestamp"`
}

// Checker holds checks in the order they were registered.
type Checker struct {
	names  []string
	checks map[string]Check
	mu     sync.RWMutex
	logger *slog.Logger
}

// NewChecker creates an empty Checker.
func NewChecker() *Checker {
	return &Checker{
		checks: make(map[string]Check),
		logger: slog.Default().With("component", "health"),
	}
}

// Register adds a named check. Registering a name twice replaces the check
// and keeps its original position.
func (c *Checker) Register(name string, check Check) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.checks[name]; !ok {
		c.names = append(c.names, name)
	}
	c.checks[name] = check
}

// Run executes all registered checks concurrently.
func (c *Checker) Run(ctx context.Context) Report {
	c.mu.RLock()
	names := append([]string(nil), c.names...)
	checks := make([]Check, len(names))
	for i, name := range names {
		checks[i] = c.checks[name]
	}
	c.mu.RUnlock()

	report := Report{
		Status:    StatusUp,
		Results:   make([]Result, len(names)),
		Timestamp: time.Now().UTC(),
	}

	var wg sync.WaitGroup
	for i := range checks {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			start := time.Now()
			err := checks[i](ctx)
			result := Result{
				Name:    names[i],
				Status:  StatusUp,
				Latency: time.Since(start).Round(time.Millisecond),
			}
			if err != nil {
				result.Status = StatusDown
				result.Message = err.Error()
			}
			report.Results[i] = result
		}(i)
	}
	wg.Wait()

	for _, r := range report.Results {
		if r.Status == StatusDown {
			report.Status = StatusDown
			c.logger.Warn("check failed", "check", r.Name, "error", r.Message)
		}
	}
	return report
}
