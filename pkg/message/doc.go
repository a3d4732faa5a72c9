// Copyright (c) The lighttp Authors
// SPDX-License-Identifier: MIT

// Package message holds the HTTP message model and its wire codec.
//
// Request and Response are plain value-like entities: method, decoded path,
// query parameters, case-insensitively keyed headers, status and body bytes.
// They carry no I/O. Encode and Decode are the stateless textual codec both
// sides share:
//
//	status-line CRLF (header: value CRLF)* CRLF body
//
// Decoding is all-or-nothing: a header line without a colon, or an input
// with fewer than two CRLF-separated lines, fails the whole message rather
// than producing a partial result.
package message
