// Package healthcheck probes the service's dependencies.
//
// The same checks back the /status endpoint and a cron schedule that
// refreshes the dependency gauges between scrapes.
package healthcheck

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

// Check probes one dependency.
type Check struct {
	Name string
	// Required checks make the whole service unhealthy when they fail.
	Required bool
	Probe    func(ctx context.Context) error
}

// Result is the outcome of one probe.
type Result struct {
	Status       string    `json:"status"`
	ResponseTime string    `json:"response_time"`
	Error        string    `json:"error,omitempty"`
	CheckedAt    time.Time `json:"checked_at"`
}

// Report is the outcome of a full run.
type Report struct {
	Healthy bool
	Checks  map[string]Result
}

// Reporter publishes dependency status, e.g. as a metric.
type Reporter interface {
	SetDependencyUp(dependency string, up bool)
}

// Options configures a Checker.
type Options struct {
	Interval    time.Duration
	Timeout     time.Duration
	Logger      *zerolog.Logger
	Reporter    Reporter
	Application *newrelic.Application
}

// Checker runs a fixed set of checks on demand or on a schedule.
type Checker struct {
	checks []Check
	opts   Options

	mu      sync.Mutex
	last    map[string]Result
	cron    *cron.Cron
	running bool
}

// New returns a Checker for checks.
func New(checks []Check, opts Options) *Checker {
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Second
	}
	if opts.Logger == nil {
		nop := zerolog.Nop()
		opts.Logger = &nop
	}
	return &Checker{
		checks: checks,
		opts:   opts,
		last:   make(map[string]Result, len(checks)),
	}
}

// Run probes every dependency once, each under its own timeout.
func (c *Checker) Run(ctx context.Context) Report {
	report := Report{Healthy: true, Checks: make(map[string]Result, len(c.checks))}

	for _, check := range c.checks {
		result := c.probe(ctx, check)
		report.Checks[check.Name] = result
		if result.Status != StatusHealthy && check.Required {
			report.Healthy = false
		}
	}

	c.mu.Lock()
	for name, result := range report.Checks {
		c.last[name] = result
	}
	c.mu.Unlock()

	return report
}

func (c *Checker) probe(ctx context.Context, check Check) Result {
	ctx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
	defer cancel()

	start := time.Now()
	err := check.Probe(ctx)
	elapsed := time.Since(start)

	result := Result{
		Status:       StatusHealthy,
		ResponseTime: elapsed.String(),
		CheckedAt:    time.Now().UTC(),
	}

	if c.opts.Reporter != nil {
		c.opts.Reporter.SetDependencyUp(check.Name, err == nil)
	}

	if err == nil {
		c.opts.Logger.Debug().
			Str("check", check.Name).
			Dur("response_time", elapsed).
			Msg("health check passed")
		return result
	}

	result.Status = StatusUnhealthy
	result.Error = err.Error()

	c.opts.Logger.Error().
		Err(err).
		Str("check", check.Name).
		Dur("response_time", elapsed).
		Msg("health check failed")

	if c.opts.Application != nil {
		c.opts.Application.RecordCustomEvent("HealthCheckError", map[string]any{
			"check_type":       check.Name,
			"operation":        "health_check",
			"error_type":       check.Name + "_unhealthy",
			"response_time_ms": elapsed.Milliseconds(),
			"error_message":    err.Error(),
		})
	}

	return result
}

// Last returns the most recent result of every check that has run.
func (c *Checker) Last() map[string]Result {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make(map[string]Result, len(c.last))
	for name, result := range c.last {
		out[name] = result
	}
	return out
}

// Start runs the checks every Interval until Stop is called or ctx ends.
func (c *Checker) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running {
		return nil
	}
	if c.opts.Interval < time.Second {
		return fmt.Errorf("health check interval must be at least 1s, got %s", c.opts.Interval)
	}

	c.cron = cron.New()
	schedule := "@every " + c.opts.Interval.String()
	if _, err := c.cron.AddFunc(schedule, func() { c.Run(ctx) }); err != nil {
		return fmt.Errorf("failed to schedule health checks %q: %w", schedule, err)
	}

	c.cron.Start()
	c.running = true

	c.opts.Logger.Info().
		Str("schedule", schedule).
		Int("checks", len(c.checks)).
		Msg("health check scheduler started")

	go func() {
		<-ctx.Done()
		c.Stop()
	}()

	return nil
}

// Stop stops the schedule and waits for a running check to finish.
func (c *Checker) Stop() {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return
	}
	c.running = false
	scheduler := c.cron
	c.mu.Unlock()

	<-scheduler.Stop().Done()
	c.opts.Logger.Info().Msg("health check scheduler stopped")
}

// Running reports whether the schedule is active.
func (c *Checker) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}
