// Copyright (c) The lighttp Authors
// SPDX-License-Identifier: MIT

package conn

import (
	"context"
	"log/slog"

	"github.com/shove70/lighttp/pkg/errors"
	"github.com/shove70/lighttp/pkg/message"
	"github.com/shove70/lighttp/pkg/metrics"
)

// DefaultBufferSize is the initial receive buffer capacity.
const DefaultBufferSize = 4096

// Options carries the per-connection construction parameters shared by all
// connection variants. The Server header value is configuration, not
// process-wide state.
type Options struct {
	// ServerHeader is the Server response header value.
	ServerHeader string

	// SessionID identifies the connection in logs and errors.
	SessionID string

	// Logger for connection events.
	Logger *slog.Logger

	// Metrics is optional instrumentation.
	Metrics *metrics.Metrics
}

func (o *Options) fill() {
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.ServerHeader == "" {
		o.ServerHeader = "lighttp"
	}
}

// HTTPConn is the default connection variant: it parses one HTTP request
// per delivered chunk, dispatches it to the router, writes the serialized
// response, and either closes the transport or substitutes the active
// handler with an upgraded connection.
type HTTPConn struct {
	transport Transport
	router    Router
	buf       *Buffer
	opts      Options

	// delegate is the handler-substitution indirection. It is written only
	// from Handle on the connection's own goroutine; once set, no HTTP
	// parse ever happens on this transport again.
	delegate Conn
}

var _ Conn = (*HTTPConn)(nil)

// NewHTTP creates the default HTTP connection for a freshly accepted
// transport.
func NewHTTP(t Transport, r Router, opts Options) *HTTPConn {
	opts.fill()
	return &HTTPConn{
		transport: t,
		router:    r,
		buf:       NewBuffer(DefaultBufferSize),
		opts:      opts,
	}
}

// Start implements Conn.
func (c *HTTPConn) Start(ctx context.Context) error {
	return nil
}

// Handle processes one delivered chunk as a complete HTTP request.
// Cross-chunk reassembly of the request line and headers is not attempted;
// only an upgraded multipart connection reassembles across chunks.
func (c *HTTPConn) Handle(ctx context.Context, chunk []byte) error {
	if c.delegate != nil {
		return c.delegate.Handle(ctx, chunk)
	}

	c.buf.Set(chunk)

	req := message.NewRequest()
	resp := message.NewResponse()
	resp.Headers.Set("server", c.opts.ServerHeader)

	var result HandleResult
	if err := req.Parse(c.buf.Bytes()); err != nil {
		c.opts.Logger.Debug("malformed request",
			slog.String("session", c.opts.SessionID),
			slog.String("error", err.Error()))
		resp.SetStatus(message.StatusBadRequest)
	} else if err := c.router.Handle(ctx, &result, c.transport, req, resp); err != nil {
		// The only place a dispatch fault is caught; it never closes the
		// connection by itself and never propagates.
		c.opts.Logger.Error("dispatch failed",
			slog.String("session", c.opts.SessionID),
			slog.String("method", req.Method),
			slog.String("path", req.Path),
			slog.String("error", err.Error()))
		resp.SetStatus(message.StatusInternalServerError)
	}

	if resp.Status.Code >= 400 && len(resp.Body) == 0 {
		c.router.HandleError(ctx, req, resp)
	}

	wire := resp.Encode()
	c.opts.Metrics.Request(req.Method, resp.Status.Code, len(wire))
	if _, err := c.transport.Write(wire); err != nil {
		c.transport.Close()
		return errors.New("write", "http", c.opts.SessionID, c.transport.RemoteAddr().String(), err)
	}

	if result.Next == nil {
		return c.transport.Close()
	}

	// Handler substitution: redirect every later chunk on this transport to
	// the upgraded connection, then run its start hook.
	c.delegate = result.Next
	return c.delegate.Start(ctx)
}

// Closed implements Conn. The notification is forwarded to the upgraded
// connection when one took over the transport.
func (c *HTTPConn) Closed(ctx context.Context) {
	if c.delegate != nil {
		c.delegate.Closed(ctx)
	}
	c.buf.Release()
}
