// Copyright (c) The lighttp Authors
// SPDX-License-Identifier: MIT

// Package router provides a reference implementation of the dispatch
// boundary consumed by pkg/conn: a method+path table with default 404/405
// handling and a descriptive error page for failed requests.
package router

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shove70/lighttp/pkg/conn"
	"github.com/shove70/lighttp/pkg/message"
)

// HandlerFunc handles one matched request. It may mutate resp and populate
// result with an upgraded connection; a returned error is mapped to a 500
// response by the connection.
type HandlerFunc func(ctx context.Context, result *conn.HandleResult, t conn.Transport, req *message.Request, resp *message.Response) error

type route struct {
	method string
	path   string
	fn     HandlerFunc
}

// Mux dispatches requests by exact path and case-insensitive method.
type Mux struct {
	routes []route
	logger *slog.Logger
}

var _ conn.Router = (*Mux)(nil)

// NewMux creates an empty mux.
func NewMux(logger *slog.Logger) *Mux {
	if logger == nil {
		logger = slog.Default()
	}
	return &Mux{logger: logger}
}

// Route registers fn for the given method and path. Registration is not
// safe for concurrent use with dispatch; register everything before the
// server starts.
func (m *Mux) Route(method, path string, fn HandlerFunc) {
	m.routes = append(m.routes, route{method: method, path: path, fn: fn})
}

// Get registers a GET route.
func (m *Mux) Get(path string, fn HandlerFunc) {
	m.Route("GET", path, fn)
}

// Post registers a POST route.
func (m *Mux) Post(path string, fn HandlerFunc) {
	m.Route("POST", path, fn)
}

// Handle implements conn.Router. Unmatched paths yield 404; a matched path
// with the wrong method yields 405.
func (m *Mux) Handle(ctx context.Context, result *conn.HandleResult, t conn.Transport, req *message.Request, resp *message.Response) error {
	pathKnown := false
	for _, rt := range m.routes {
		if rt.path != req.Path {
			continue
		}
		pathKnown = true
		if strings.EqualFold(rt.method, req.Method) {
			return rt.fn(ctx, result, t, req, resp)
		}
	}

	if pathKnown {
		resp.SetStatus(message.StatusMethodNotAllowed)
	} else {
		resp.SetStatus(message.StatusNotFound)
	}
	return nil
}

// HandleError implements conn.Router: it fills in a minimal HTML error page
// for an already-set error status with no body.
func (m *Mux) HandleError(ctx context.Context, req *message.Request, resp *message.Response) {
	m.logger.Debug("serving error page",
		slog.String("path", req.Path),
		slog.Int("status", int(resp.Status.Code)))

	resp.Headers.Set("content-type", "text/html; charset=utf-8")
	resp.Body = []byte(fmt.Sprintf(
		"<html><head><title>%[1]d %[2]s</title></head><body><h1>%[1]d %[2]s</h1></body></html>",
		resp.Status.Code, resp.Status.Reason))
}

// Noop is a Router that matches nothing and serves empty error bodies.
// Useful for tests.
type Noop struct{}

var _ conn.Router = (*Noop)(nil)

func (Noop) Handle(ctx context.Context, result *conn.HandleResult, t conn.Transport, req *message.Request, resp *message.Response) error {
	resp.SetStatus(message.StatusNotFound)
	return nil
}

func (Noop) HandleError(ctx context.Context, req *message.Request, resp *message.Response) {
}
