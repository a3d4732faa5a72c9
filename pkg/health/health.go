// Copyright (c) The lighttp Authors
// SPDX-License-Identifier: MIT

// Package health provides health check and readiness routes served through
// the lighttp router.
package health

import (
	"context"
	"sync"
	"time"

	"github.com/shove70/lighttp/pkg/conn"
	"github.com/shove70/lighttp/pkg/message"
	"github.com/shove70/lighttp/pkg/router"
)

// Status represents the health status.
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusDegraded  Status = "degraded"
	StatusUnhealthy Status = "unhealthy"
)

// Check represents a single health check result.
type Check struct {
	Name        string        `json:"name"`
	Status      Status        `json:"status"`
	Message     string        `json:"message,omitempty"`
	LastChecked time.Time     `json:"last_checked"`
	Duration    time.Duration `json:"duration_ms"`
}

// CheckFunc is a function that performs a health check.
type CheckFunc func(ctx context.Context) error

// Checker manages health checks with result caching.
type Checker struct {
	mu     sync.Mutex
	checks map[string]CheckFunc
	cache  map[string]*Check
	ttl    time.Duration
}

// NewChecker creates a new health checker.
func NewChecker(cacheTTL time.Duration) *Checker {
	if cacheTTL == 0 {
		cacheTTL = 10 * time.Second
	}
	return &Checker{
		checks: make(map[string]CheckFunc),
		cache:  make(map[string]*Check),
		ttl:    cacheTTL,
	}
}

// Register adds a health check.
func (c *Checker) Register(name string, check CheckFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.checks[name] = check
}

// Health runs all registered checks (or serves cached results) and returns
// the overall status.
func (c *Checker) Health(ctx context.Context) (Status, []Check) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var checks []Check
	overall := StatusHealthy

	for name, fn := range c.checks {
		if cached, ok := c.cache[name]; ok && time.Since(cached.LastChecked) < c.ttl {
			checks = append(checks, *cached)
			if cached.Status != StatusHealthy {
				overall = StatusDegraded
			}
			continue
		}

		start := time.Now()
		err := fn(ctx)

		check := &Check{
			Name:        name,
			LastChecked: time.Now(),
			Duration:    time.Since(start),
		}
		if err != nil {
			check.Status = StatusUnhealthy
			check.Message = err.Error()
			overall = StatusDegraded
		} else {
			check.Status = StatusHealthy
		}

		c.cache[name] = check
		checks = append(checks, *check)
	}

	return overall, checks
}

// RegisterRoutes adds liveness and readiness routes to the mux.
func (c *Checker) RegisterRoutes(m *router.Mux) {
	m.Get("/livez", LivenessHandler())
	m.Get("/healthz", c.ReadinessHandler())
}

// LivenessHandler returns a simple liveness probe.
func LivenessHandler() router.HandlerFunc {
	return func(ctx context.Context, result *conn.HandleResult, t conn.Transport, req *message.Request, resp *message.Response) error {
		resp.SetStatus(message.StatusOK)
		return resp.SetJSON(map[string]string{"status": "alive"})
	}
}

// ReadinessHandler returns a readiness probe handler. Degraded or unhealthy
// checks yield 503.
func (c *Checker) ReadinessHandler() router.HandlerFunc {
	return func(ctx context.Context, result *conn.HandleResult, t conn.Transport, req *message.Request, resp *message.Response) error {
		status, checks := c.Health(ctx)

		if status == StatusHealthy {
			resp.SetStatus(message.StatusOK)
		} else {
			resp.SetStatus(message.StatusServiceUnavailable)
		}
		return resp.SetJSON(map[string]any{
			"status": status,
			"checks": checks,
		})
	}
}
