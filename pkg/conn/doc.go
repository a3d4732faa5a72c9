// Copyright (c) The lighttp Authors
// SPDX-License-Identifier: MIT

// Package conn implements the per-connection protocol state machine.
//
// Every accepted transport starts life as an HTTPConn. Each delivered chunk
// is parsed as one HTTP request and dispatched to the Router; the router may
// claim the transport for another protocol by populating HandleResult with
// an upgraded connection (MultipartConn for streaming body accumulation,
// WebSocketConn for framed messaging). After the response is flushed the
// HTTPConn swaps its active handler — a single field assignment — and all
// later chunks bypass the HTTP parse path entirely. Without an upgrade the
// transport is closed after the response.
//
// A connection and its buffer are owned by exactly one goroutine from accept
// to close, which is what makes handler substitution safe without locks.
package conn
