// Copyright (c) The lighttp Authors
// SPDX-License-Identifier: MIT

package server

import (
	"context"
	"io"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/shove70/lighttp/pkg/conn"
	"github.com/shove70/lighttp/pkg/message"
	"github.com/shove70/lighttp/pkg/ratelimit"
	"github.com/shove70/lighttp/pkg/router"
)

// startServer runs s.Listen on an ephemeral port and returns the bound
// address plus a stop function that cancels the server and waits for
// Listen to return.
func startServer(t *testing.T, s *Server) (net.Addr, func() error) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.Listen(ctx)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for s.Addr() == nil {
		if time.Now().After(deadline) {
			cancel()
			t.Fatal("server did not bind within 2s")
		}
		time.Sleep(5 * time.Millisecond)
	}

	return s.Addr(), func() error {
		cancel()
		select {
		case err := <-errCh:
			return err
		case <-time.After(5 * time.Second):
			t.Fatal("Listen did not return after cancel")
			return nil
		}
	}
}

// roundTrip dials the server, writes raw, and reads until the server closes
// the connection.
func roundTrip(t *testing.T, addr net.Addr, raw string) string {
	t.Helper()

	nc, err := net.Dial("tcp", addr.String())
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer nc.Close()

	if _, err := nc.Write([]byte(raw)); err != nil {
		t.Fatalf("write: %v", err)
	}
	nc.SetReadDeadline(time.Now().Add(2 * time.Second))
	out, err := io.ReadAll(nc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	return string(out)
}

func testMux() *router.Mux {
	m := router.NewMux(nil)
	m.Get("/", func(ctx context.Context, result *conn.HandleResult, tr conn.Transport, req *message.Request, resp *message.Response) error {
		resp.SetStatus(message.StatusOK)
		resp.SetBody([]byte("ok"))
		return nil
	})
	return m
}

func TestServer_ServesRequest(t *testing.T) {
	s := New(Config{Address: "127.0.0.1:0", ServerHeader: "lighttp-test"}, testMux())
	addr, stop := startServer(t, s)

	got := roundTrip(t, addr, "GET / HTTP/1.1\r\n\r\n")
	if !strings.HasPrefix(got, "HTTP/1.1 200 OK\r\n") {
		t.Errorf("response = %q", got)
	}
	if !strings.Contains(got, "server: lighttp-test\r\n") {
		t.Errorf("missing server header in %q", got)
	}
	if !strings.HasSuffix(got, "\r\n\r\nok") {
		t.Errorf("missing body in %q", got)
	}

	if err := stop(); err != nil {
		t.Errorf("Listen returned %v on graceful shutdown", err)
	}
}

func TestServer_NotFound(t *testing.T) {
	s := New(Config{Address: "127.0.0.1:0"}, testMux())
	addr, stop := startServer(t, s)
	defer stop()

	got := roundTrip(t, addr, "GET /missing HTTP/1.1\r\n\r\n")
	if !strings.HasPrefix(got, "HTTP/1.1 404 Not Found\r\n") {
		t.Errorf("response = %q", got)
	}
}

func TestServer_MalformedRequest(t *testing.T) {
	s := New(Config{Address: "127.0.0.1:0"}, testMux())
	addr, stop := startServer(t, s)
	defer stop()

	got := roundTrip(t, addr, "not an http request")
	if !strings.HasPrefix(got, "HTTP/1.1 400 Bad Request\r\n") {
		t.Errorf("response = %q", got)
	}
}

func TestServer_RateLimited(t *testing.T) {
	s := New(Config{
		Address: "127.0.0.1:0",
		Limiter: ratelimit.NewLimiter(1, 1, 0),
	}, testMux())
	addr, stop := startServer(t, s)
	defer stop()

	got := roundTrip(t, addr, "GET / HTTP/1.1\r\n\r\n")
	if !strings.HasPrefix(got, "HTTP/1.1 200 OK\r\n") {
		t.Fatalf("first connection not served: %q", got)
	}

	// The host's bucket is empty now; the next connection is closed at the
	// accept path without a response.
	nc, err := net.Dial("tcp", addr.String())
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer nc.Close()
	nc.SetReadDeadline(time.Now().Add(2 * time.Second))
	out, err := io.ReadAll(nc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("rate-limited connection received %q", out)
	}
}

func TestServer_GracefulShutdown(t *testing.T) {
	s := New(Config{Address: "127.0.0.1:0", ShutdownTimeout: time.Second}, testMux())
	_, stop := startServer(t, s)

	if err := stop(); err != nil {
		t.Errorf("Listen returned %v, want nil", err)
	}
}
