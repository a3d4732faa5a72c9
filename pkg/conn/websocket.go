// Copyright (c) The lighttp Authors
// SPDX-License-Identifier: MIT

package conn

import (
	"context"
	"log/slog"

	"github.com/shove70/lighttp/pkg/errors"
	"github.com/shove70/lighttp/pkg/ws"
)

// MessageFunc receives one decoded frame payload. The payload is only valid
// for the duration of the call; retain a copy if needed longer.
type MessageFunc func(ctx context.Context, c *WebSocketConn, payload []byte)

// WebSocketHooks are the application's extension points on a websocket
// connection. OnMessage is required; OnStart and OnClose are optional.
type WebSocketHooks struct {
	OnStart   func(ctx context.Context, c *WebSocketConn) error
	OnMessage MessageFunc
	OnClose   func()
}

// WebSocketConn is a connection variant speaking single-frame WebSocket.
// Incoming chunks are decoded into payloads and handed to the application's
// message hook; Send frames a payload and writes it to the transport.
type WebSocketConn struct {
	transport Transport
	hooks     WebSocketHooks
	buf       *Buffer // outgoing frame scratch space
	opts      Options
}

var _ Conn = (*WebSocketConn)(nil)

// NewWebSocket creates a websocket connection for an upgraded transport.
func NewWebSocket(t Transport, hooks WebSocketHooks, opts Options) *WebSocketConn {
	opts.fill()
	return &WebSocketConn{
		transport: t,
		hooks:     hooks,
		buf:       NewBuffer(DefaultBufferSize),
		opts:      opts,
	}
}

// Start implements Conn.
func (c *WebSocketConn) Start(ctx context.Context) error {
	if c.hooks.OnStart == nil {
		return nil
	}
	return c.hooks.OnStart(ctx, c)
}

// Handle decodes one frame from the chunk and delivers its payload. Frames
// with an unrecognized opcode, or frames cut short by the chunk boundary,
// are dropped without error.
func (c *WebSocketConn) Handle(ctx context.Context, chunk []byte) error {
	payload, ok := ws.Decode(chunk)
	if !ok {
		c.opts.Metrics.FrameDropped()
		c.opts.Logger.Debug("frame dropped",
			slog.String("session", c.opts.SessionID),
			slog.Int("chunk_size", len(chunk)))
		return nil
	}

	c.opts.Metrics.FrameIn()
	if c.hooks.OnMessage != nil {
		c.hooks.OnMessage(ctx, c, payload)
	}
	return nil
}

// Send frames payload as a single unmasked frame and writes it to the
// transport. The connection's scratch buffer holds the assembled frame.
func (c *WebSocketConn) Send(payload []byte) error {
	c.buf.Reset()
	c.buf.Append(ws.Encode(payload))

	if _, err := c.transport.Write(c.buf.Bytes()); err != nil {
		return errors.New("send", "websocket", c.opts.SessionID, c.transport.RemoteAddr().String(), err)
	}
	c.opts.Metrics.FrameOut()
	return nil
}

// Closed implements Conn.
func (c *WebSocketConn) Closed(ctx context.Context) {
	if c.hooks.OnClose != nil {
		c.hooks.OnClose()
	}
	c.buf.Release()
}
