// Copyright (c) The lighttp Authors
// SPDX-License-Identifier: MIT

// Package metrics provides Prometheus instrumentation for lighttp.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for lighttp. All helper methods are
// nil-safe so instrumentation can be left unwired in tests.
type Metrics struct {
	// Connection metrics
	ActiveConnections  prometheus.Gauge
	ConnectionsTotal   *prometheus.CounterVec
	ConnectionDuration prometheus.Histogram

	// Request metrics
	RequestsTotal *prometheus.CounterVec
	ResponseSize  prometheus.Histogram

	// Upgrade metrics
	UpgradesTotal *prometheus.CounterVec

	// WebSocket metrics
	FramesTotal        *prometheus.CounterVec
	FramesDroppedTotal prometheus.Counter

	// Admission metrics
	RateLimitedTotal prometheus.Counter
}

// New creates a new Metrics instance registered on the default registry.
func New(namespace string) *Metrics {
	if namespace == "" {
		namespace = "lighttp"
	}

	return &Metrics{
		ActiveConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_connections",
			Help:      "Number of currently active connections",
		}),
		ConnectionsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "connections_total",
			Help:      "Total number of accepted connections",
		}, []string{"status"}),
		ConnectionDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "connection_duration_seconds",
			Help:      "Connection duration in seconds",
			Buckets:   []float64{.01, .05, .1, .5, 1, 5, 10, 30, 60, 300, 600},
		}),
		RequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Total number of HTTP requests processed",
		}, []string{"method", "status"}),
		ResponseSize: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "response_size_bytes",
			Help:      "Response size in bytes",
			Buckets:   []float64{100, 1000, 10000, 100000, 1000000, 10000000},
		}),
		UpgradesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upgrades_total",
			Help:      "Total number of connection upgrades",
		}, []string{"protocol"}),
		FramesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "websocket_frames_total",
			Help:      "Total number of WebSocket frames",
		}, []string{"direction"}),
		FramesDroppedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "websocket_frames_dropped_total",
			Help:      "Total number of WebSocket frames dropped during decode",
		}),
		RateLimitedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_connections_total",
			Help:      "Total number of connections rejected by the rate limiter",
		}),
	}
}

// ObserveConnection tracks one connection lifecycle around f.
func (m *Metrics) ObserveConnection(f func() error) error {
	if m == nil {
		return f()
	}

	m.ActiveConnections.Inc()
	defer m.ActiveConnections.Dec()

	start := time.Now()
	err := f()
	m.ConnectionDuration.Observe(time.Since(start).Seconds())

	status := "success"
	if err != nil {
		status = "error"
	}
	m.ConnectionsTotal.WithLabelValues(status).Inc()

	return err
}

// Request records one dispatched request and its response size.
func (m *Metrics) Request(method string, status uint16, responseBytes int) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(method, strconv.Itoa(int(status))).Inc()
	m.ResponseSize.Observe(float64(responseBytes))
}

// Upgrade records a handler substitution to the given protocol.
func (m *Metrics) Upgrade(protocol string) {
	if m == nil {
		return
	}
	m.UpgradesTotal.WithLabelValues(protocol).Inc()
}

// FrameIn records one decoded incoming frame.
func (m *Metrics) FrameIn() {
	if m == nil {
		return
	}
	m.FramesTotal.WithLabelValues("in").Inc()
}

// FrameOut records one encoded outgoing frame.
func (m *Metrics) FrameOut() {
	if m == nil {
		return
	}
	m.FramesTotal.WithLabelValues("out").Inc()
}

// FrameDropped records a frame abandoned during decode.
func (m *Metrics) FrameDropped() {
	if m == nil {
		return
	}
	m.FramesDroppedTotal.Inc()
}

// RateLimited records a connection rejected at the accept path.
func (m *Metrics) RateLimited() {
	if m == nil {
		return
	}
	m.RateLimitedTotal.Inc()
}
