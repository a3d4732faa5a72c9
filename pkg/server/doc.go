// Copyright (c) The lighttp Authors
// SPDX-License-Identifier: MIT

// Package server is the composition point: it owns the listening socket,
// accepts transports, and wires each one to a fresh HTTP connection from
// pkg/conn. Each connection gets its own goroutine, which delivers read
// chunks in order and reports transport closure — the single-owner model
// the connection state machine relies on.
package server
