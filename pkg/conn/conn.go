// Copyright (c) The lighttp Authors
// SPDX-License-Identifier: MIT

package conn

import (
	"context"
	"net"

	"github.com/shove70/lighttp/pkg/message"
)

// Transport is the write side of one accepted byte stream. The read side is
// driven externally: whoever owns the transport delivers chunks to a Conn.
// *net.TCPConn and net.Conn implementations satisfy it.
type Transport interface {
	Write(p []byte) (int, error)
	Close() error
	RemoteAddr() net.Addr
}

// Conn is a protocol handler bound to one transport.
//
// Start is invoked once when the connection takes ownership of the
// transport. Handle processes one delivered chunk and runs to completion
// before the next delivery. Closed notifies that the transport is gone and
// releases per-connection resources. A Conn is owned by a single goroutine
// for its whole lifetime; none of its methods are called concurrently.
type Conn interface {
	Start(ctx context.Context) error
	Handle(ctx context.Context, chunk []byte) error
	Closed(ctx context.Context)
}

// HandleResult communicates the outcome of a router dispatch back to the
// connection. A non-nil Next means the router claimed the transport for a
// different protocol: the response is flushed and every later chunk is
// delivered to Next instead of the HTTP parse path. A nil Next means the
// transport is closed after the response is flushed.
type HandleResult struct {
	Next Conn
}

// Router is the dispatch boundary consumed by the HTTP connection. Handle
// may mutate resp and populate result with an upgraded connection; a
// returned error is caught at exactly one point (the per-chunk algorithm)
// and mapped to a 500 response. HandleError fills in a descriptive body for
// an already-set error status when the router left none.
type Router interface {
	Handle(ctx context.Context, result *HandleResult, t Transport, req *message.Request, resp *message.Response) error
	HandleError(ctx context.Context, req *message.Request, resp *message.Response)
}
