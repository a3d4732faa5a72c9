// Copyright (c) The lighttp Authors
// SPDX-License-Identifier: MIT

package conn

import (
	"context"
	"log/slog"

	"github.com/shove70/lighttp/pkg/message"
)

// CompletionFunc is invoked exactly once when a multipart body reaches its
// declared length.
type CompletionFunc func(req *message.Request)

// MultipartConn accumulates raw chunks into a pending request body until a
// declared length is reached, then invokes its completion callback and
// closes the transport. Accumulation is amortized through the connection
// buffer; bytes beyond the declared length are retained as-is.
type MultipartConn struct {
	transport Transport
	req       *message.Request
	target    int
	done      CompletionFunc
	buf       *Buffer
	fired     bool
	opts      Options
}

var _ Conn = (*MultipartConn)(nil)

// NewMultipart creates a multipart connection collecting req's body up to
// target bytes. The buffer is seeded with whatever body bytes arrived with
// the initial request.
func NewMultipart(t Transport, req *message.Request, target int, done CompletionFunc, opts Options) *MultipartConn {
	opts.fill()
	buf := NewBuffer(target)
	buf.Set(req.Body)
	return &MultipartConn{
		transport: t,
		req:       req,
		target:    target,
		done:      done,
		buf:       buf,
		opts:      opts,
	}
}

// Start implements Conn.
func (c *MultipartConn) Start(ctx context.Context) error {
	return nil
}

// Handle appends the chunk to the accumulated body and fires the completion
// callback once the declared length is reached or exceeded.
func (c *MultipartConn) Handle(ctx context.Context, chunk []byte) error {
	c.buf.Append(chunk)
	c.req.Body = c.buf.Bytes()

	if c.fired || c.buf.Len() < c.target {
		return nil
	}

	c.fired = true
	c.opts.Logger.Debug("multipart body complete",
		slog.String("session", c.opts.SessionID),
		slog.Int("declared", c.target),
		slog.Int("received", c.buf.Len()))
	c.done(c.req)
	return c.transport.Close()
}

// Closed implements Conn.
func (c *MultipartConn) Closed(ctx context.Context) {
	c.buf.Release()
}
