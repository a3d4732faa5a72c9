// Copyright (c) The lighttp Authors
// SPDX-License-Identifier: MIT

package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/shove70/lighttp/pkg/conn"
	lerrors "github.com/shove70/lighttp/pkg/errors"
	"github.com/shove70/lighttp/pkg/metrics"
	"github.com/shove70/lighttp/pkg/ratelimit"
)

// Config holds the server configuration.
type Config struct {
	// Address is the listen address (host:port)
	Address string

	// ServerHeader is the Server response header value sent on every
	// response. Empty selects the connection-level default.
	ServerHeader string

	// ReadBufferSize is the per-connection read buffer size. One delivered
	// chunk is at most this large.
	ReadBufferSize int

	// ReadTimeout bounds each read from the transport. Zero disables it;
	// disconnect detection then relies on the peer closing.
	ReadTimeout time.Duration

	// ShutdownTimeout is the maximum time to wait for active connections to
	// drain during graceful shutdown. After this timeout, remaining
	// connections are forcefully closed.
	ShutdownTimeout time.Duration

	// Limiter optionally rate-limits accepted connections per remote host.
	Limiter *ratelimit.Limiter

	// Metrics is optional instrumentation.
	Metrics *metrics.Metrics

	// Logger for server events
	Logger *slog.Logger
}

// Server owns the listening socket and the per-connection read loops. On
// each accepted transport it instantiates the default HTTP connection and
// delivers read chunks to it until the transport closes.
type Server struct {
	config Config
	router conn.Router
	wg     sync.WaitGroup

	mu   sync.Mutex
	addr net.Addr
}

// New creates a new server with the given configuration and router.
func New(cfg Config, r conn.Router) *Server {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = 30 * time.Second
	}
	if cfg.ReadBufferSize == 0 {
		cfg.ReadBufferSize = 64 * 1024
	}

	return &Server{
		config: cfg,
		router: r,
	}
}

// Listen starts the server and blocks until the context is cancelled.
// It implements graceful shutdown with connection draining.
func (s *Server) Listen(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.config.Address, err)
	}

	s.mu.Lock()
	s.addr = listener.Addr()
	s.mu.Unlock()

	s.config.Logger.Info("server started", slog.String("address", listener.Addr().String()))

	// Separate context for active connections so forced closure can be
	// delayed past listener shutdown.
	connCtx, connCancel := context.WithCancel(context.Background())
	defer connCancel()

	acceptDone := make(chan struct{})
	go func() {
		defer close(acceptDone)
		for {
			select {
			case <-ctx.Done():
				return
			default:
			}

			nc, err := listener.Accept()
			if err != nil {
				select {
				case <-ctx.Done():
					// Expected error during shutdown
					return
				default:
					s.config.Logger.Error("failed to accept connection", slog.String("error", err.Error()))
					continue
				}
			}

			if !s.admit(nc) {
				continue
			}

			s.wg.Add(1)
			go func() {
				defer s.wg.Done()
				err := s.config.Metrics.ObserveConnection(func() error {
					return s.handleConn(connCtx, nc)
				})
				if err != nil && !errors.Is(err, io.EOF) {
					s.config.Logger.Debug("connection handler error",
						slog.String("remote", nc.RemoteAddr().String()),
						slog.String("error", err.Error()))
				}
			}()
		}
	}()

	<-ctx.Done()
	s.config.Logger.Info("shutdown signal received, closing listener")

	if err := listener.Close(); err != nil {
		s.config.Logger.Error("error closing listener", slog.String("error", err.Error()))
	}
	<-acceptDone

	// Wait for active connections to drain with timeout
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.config.Logger.Info("all connections closed gracefully")
		return nil
	case <-time.After(s.config.ShutdownTimeout):
		s.config.Logger.Warn("shutdown timeout exceeded, forcing connection closure")
		connCancel()
		select {
		case <-done:
			return lerrors.ErrShutdownTimeout
		case <-time.After(1 * time.Second):
			return lerrors.ErrShutdownTimeout
		}
	}
}

// Addr returns the bound listener address, or nil before Listen has bound
// the socket. Useful when listening on port 0.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

// admit applies accept-path rate limiting. Rejected transports are closed
// immediately.
func (s *Server) admit(nc net.Conn) bool {
	if s.config.Limiter == nil {
		return true
	}

	host, _, err := net.SplitHostPort(nc.RemoteAddr().String())
	if err != nil {
		host = nc.RemoteAddr().String()
	}
	if s.config.Limiter.Allow(host) {
		return true
	}

	s.config.Metrics.RateLimited()
	s.config.Logger.Debug("connection rate limited", slog.String("remote", nc.RemoteAddr().String()))
	nc.Close()
	return false
}

// handleConn runs one connection from accept to close: it wires the
// transport to a fresh HTTP connection, then delivers read chunks until the
// peer disconnects or the context is cancelled. The connection is pinned to
// this goroutine for its whole lifetime, so handler substitution stays
// single-writer.
func (s *Server) handleConn(ctx context.Context, nc net.Conn) error {
	defer nc.Close()

	sessionID := uuid.New().String()

	c := conn.NewHTTP(nc, s.router, conn.Options{
		ServerHeader: s.config.ServerHeader,
		SessionID:    sessionID,
		Logger:       s.config.Logger,
		Metrics:      s.config.Metrics,
	})

	s.config.Logger.Debug("connection established",
		slog.String("session", sessionID),
		slog.String("remote", nc.RemoteAddr().String()))

	if err := c.Start(ctx); err != nil {
		return lerrors.New("start", "http", sessionID, nc.RemoteAddr().String(), err)
	}

	buf := make([]byte, s.config.ReadBufferSize)
	for {
		select {
		case <-ctx.Done():
			c.Closed(ctx)
			return ctx.Err()
		default:
		}

		if s.config.ReadTimeout > 0 {
			if err := nc.SetReadDeadline(time.Now().Add(s.config.ReadTimeout)); err != nil {
				c.Closed(ctx)
				return lerrors.New("deadline", "http", sessionID, nc.RemoteAddr().String(), err)
			}
		}

		n, err := nc.Read(buf)
		if n > 0 {
			if herr := c.Handle(ctx, buf[:n]); herr != nil {
				c.Closed(ctx)
				return herr
			}
		}
		if err != nil {
			c.Closed(ctx)
			s.config.Logger.Debug("connection closed",
				slog.String("session", sessionID))
			return err
		}
	}
}
