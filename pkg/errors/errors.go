// Copyright (c) The lighttp Authors
// SPDX-License-Identifier: MIT

// Package errors provides structured error handling for lighttp.
package errors

import (
	"errors"
	"fmt"
)

// Common error types
var (
	// ErrMalformedMessage indicates wire bytes that do not form an HTTP message.
	ErrMalformedMessage = errors.New("malformed message")

	// ErrMalformedRequest indicates a request line with the wrong token count.
	ErrMalformedRequest = errors.New("malformed request line")

	// ErrMalformedResponse indicates a status line that cannot be parsed.
	ErrMalformedResponse = errors.New("malformed status line")

	// ErrConnClosed indicates the connection was closed.
	ErrConnClosed = errors.New("connection closed")

	// ErrProtocolViolation indicates a protocol-level error.
	ErrProtocolViolation = errors.New("protocol violation")

	// ErrRateLimited indicates the accept-path rate limit was exceeded.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrShutdownTimeout is returned when graceful shutdown exceeds the configured timeout.
	ErrShutdownTimeout = errors.New("shutdown timeout exceeded")
)

// ConnError wraps an error with per-connection context.
type ConnError struct {
	Op         string // Operation that failed
	Protocol   string // Protocol spoken at the time (http, websocket, multipart)
	SessionID  string // Session identifier
	RemoteAddr string // Client address
	Err        error  // Underlying error
}

// Error implements the error interface.
func (e *ConnError) Error() string {
	if e.SessionID != "" {
		return fmt.Sprintf("%s %s [%s] %s: %v", e.Protocol, e.Op, e.SessionID, e.RemoteAddr, e.Err)
	}
	return fmt.Sprintf("%s %s %s: %v", e.Protocol, e.Op, e.RemoteAddr, e.Err)
}

// Unwrap returns the underlying error.
func (e *ConnError) Unwrap() error {
	return e.Err
}

// New creates a new ConnError.
func New(op, protocol, sessionID, remoteAddr string, err error) error {
	if err == nil {
		return nil
	}
	return &ConnError{
		Op:         op,
		Protocol:   protocol,
		SessionID:  sessionID,
		RemoteAddr: remoteAddr,
		Err:        err,
	}
}

// Wrap wraps an error with context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
