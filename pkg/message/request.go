// Copyright (c) The lighttp Authors
// SPDX-License-Identifier: MIT

package message

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/shove70/lighttp/pkg/errors"
)

// Request is one HTTP request: method, decoded path, query map,
// headers and raw body. It is created fresh per exchange.
type Request struct {
	Method  string
	Path    string
	Query   map[string]string
	Headers Headers
	Body    []byte

	// target is the raw request target as received on the wire,
	// retained so Encode round-trips exactly.
	target string
}

// NewRequest creates an empty request.
func NewRequest() *Request {
	return &Request{
		Query:   make(map[string]string),
		Headers: NewHeaders(),
	}
}

// SetTarget assigns the raw request target. Path (percent-decoded, without
// the query string) and Query are always derived together as a side effect;
// Query is never mutated independently of the target.
func (r *Request) SetTarget(target string) {
	r.target = target

	rawPath, rawQuery, _ := strings.Cut(target, "?")
	if decoded, err := url.PathUnescape(rawPath); err == nil {
		r.Path = decoded
	} else {
		r.Path = rawPath
	}
	r.Query = parseQuery(rawQuery)
}

// Target returns the raw request target.
func (r *Request) Target() string {
	return r.target
}

// parseQuery splits a raw query string on '&', then each pair on its first
// '='. Pairs without '=' and pairs with an empty key are silently dropped.
func parseQuery(raw string) map[string]string {
	query := make(map[string]string)
	if raw == "" {
		return query
	}
	for _, pair := range strings.Split(raw, "&") {
		eq := strings.Index(pair, "=")
		if eq <= 0 {
			continue
		}
		key, err := url.QueryUnescape(pair[:eq])
		if err != nil {
			continue
		}
		value, err := url.QueryUnescape(pair[eq+1:])
		if err != nil {
			continue
		}
		query[key] = value
	}
	return query
}

// Parse populates the request from wire bytes. The request line must have
// exactly three tokens (METHOD PATH VERSION); anything else fails the
// whole parse.
func (r *Request) Parse(data []byte) error {
	statusLine, headers, body, err := Decode(data)
	if err != nil {
		return err
	}

	tokens := strings.Split(statusLine, " ")
	if len(tokens) != 3 {
		return errors.ErrMalformedRequest
	}

	r.Method = tokens[0]
	r.Headers = headers
	r.Body = body
	r.SetTarget(tokens[1])
	return nil
}

// Encode serializes the request. Content-Length is set immediately before
// encoding, and only when the body is non-empty.
func (r *Request) Encode() []byte {
	if len(r.Body) > 0 {
		r.Headers.Set("content-length", strconv.Itoa(len(r.Body)))
	}
	return Encode(r.Method+" "+r.target+" "+httpVersion, r.Headers, r.Body)
}
