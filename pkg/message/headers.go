// Copyright (c) The lighttp Authors
// SPDX-License-Identifier: MIT

package message

import "strings"

// Headers holds HTTP header fields keyed by lower-cased name.
// Setting a field that already exists overwrites it.
type Headers map[string]string

// NewHeaders creates an empty header map.
func NewHeaders() Headers {
	return make(Headers)
}

// Set stores value under the lower-cased key, trimming surrounding whitespace.
func (h Headers) Set(key, value string) {
	h[strings.ToLower(key)] = strings.TrimSpace(value)
}

// Get looks up a header case-insensitively. Missing keys yield "".
func (h Headers) Get(key string) string {
	return h[strings.ToLower(key)]
}

// Has reports whether the header is present.
func (h Headers) Has(key string) bool {
	_, ok := h[strings.ToLower(key)]
	return ok
}

// Del removes a header.
func (h Headers) Del(key string) {
	delete(h, strings.ToLower(key))
}
