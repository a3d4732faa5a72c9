// Copyright (c) The lighttp Authors
// SPDX-License-Identifier: MIT

package conn

import (
	"bytes"
	"context"
	"testing"
)

func TestWebSocketConn_Send(t *testing.T) {
	tr := &mockTransport{}
	c := NewWebSocket(tr, WebSocketHooks{}, Options{})

	if err := c.Send([]byte("hello")); err != nil {
		t.Fatalf("Send: %v", err)
	}
	want := append([]byte{0x81, 0x05}, "hello"...)
	if !bytes.Equal(tr.writes.Bytes(), want) {
		t.Errorf("wire = %x, want %x", tr.writes.Bytes(), want)
	}
}

func TestWebSocketConn_HandleDeliversPayload(t *testing.T) {
	tr := &mockTransport{}
	var got []byte
	c := NewWebSocket(tr, WebSocketHooks{
		OnMessage: func(ctx context.Context, c *WebSocketConn, payload []byte) {
			got = append([]byte(nil), payload...)
		},
	}, Options{})

	// Masked client frame carrying "hi".
	mask := []byte{0x0A, 0x0B, 0x0C, 0x0D}
	frame := []byte{0x81, 0x80 | 0x02}
	frame = append(frame, mask...)
	frame = append(frame, 'h'^mask[0], 'i'^mask[1])

	if err := c.Handle(context.Background(), frame); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if string(got) != "hi" {
		t.Errorf("payload = %q, want %q", got, "hi")
	}
}

func TestWebSocketConn_TruncatedFrameDropped(t *testing.T) {
	tr := &mockTransport{}
	delivered := 0
	c := NewWebSocket(tr, WebSocketHooks{
		OnMessage: func(context.Context, *WebSocketConn, []byte) { delivered++ },
	}, Options{})

	// Declared length 5, only 2 payload bytes in the chunk.
	if err := c.Handle(context.Background(), []byte{0x81, 0x05, 0x41, 0x42}); err != nil {
		t.Fatalf("drop must be silent, got %v", err)
	}
	if delivered != 0 {
		t.Error("truncated frame was delivered")
	}
	if tr.closed {
		t.Error("transport closed on dropped frame")
	}
}

func TestWebSocketConn_Hooks(t *testing.T) {
	tr := &mockTransport{}
	started, closed := false, false
	c := NewWebSocket(tr, WebSocketHooks{
		OnStart: func(ctx context.Context, c *WebSocketConn) error {
			started = true
			return nil
		},
		OnClose: func() { closed = true },
	}, Options{})

	ctx := context.Background()
	if err := c.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	c.Closed(ctx)

	if !started || !closed {
		t.Errorf("started=%v closed=%v, want both true", started, closed)
	}
}
