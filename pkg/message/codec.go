// Copyright (c) The lighttp Authors
// SPDX-License-Identifier: MIT

package message

import (
	"bytes"
	"strings"

	"github.com/shove70/lighttp/pkg/errors"
)

const (
	crlf        = "\r\n"
	httpVersion = "HTTP/1.1"
)

// Encode serializes a status line, headers and body into wire bytes.
// Header values are written verbatim; header iteration order is not stable.
// Content-Length is the caller's responsibility.
func Encode(statusLine string, headers Headers, body []byte) []byte {
	var b bytes.Buffer
	b.Grow(len(statusLine) + len(body) + 64)
	b.WriteString(statusLine)
	b.WriteString(crlf)
	for key, value := range headers {
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(value)
		b.WriteString(crlf)
	}
	b.WriteString(crlf)
	b.Write(body)
	return b.Bytes()
}

// Decode splits wire bytes into a status line, headers and body.
//
// The input is split on CRLF. Lines after the first are consumed as headers
// until the first empty line; every header line must contain a colon or the
// whole decode fails. Keys are lower-cased and trimmed, values are everything
// after the first colon, trimmed. The remainder is rejoined with CRLF so a
// body containing CRLF sequences round-trips intact.
func Decode(data []byte) (statusLine string, headers Headers, body []byte, err error) {
	lines := strings.Split(string(data), crlf)
	if len(lines) < 2 {
		return "", nil, nil, errors.ErrMalformedMessage
	}

	statusLine = lines[0]
	headers = NewHeaders()

	i := 1
	for ; i < len(lines); i++ {
		if lines[i] == "" {
			i++
			break
		}
		key, rest, ok := strings.Cut(lines[i], ":")
		if !ok {
			return "", nil, nil, errors.ErrMalformedMessage
		}
		headers[strings.ToLower(strings.TrimSpace(key))] = strings.TrimSpace(rest)
	}

	body = []byte(strings.Join(lines[i:], crlf))
	return statusLine, headers, body, nil
}
