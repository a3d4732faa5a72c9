// Copyright (c) The lighttp Authors
// SPDX-License-Identifier: MIT

package message

import (
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/shove70/lighttp/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Response is one HTTP response. The zero Status means "unset".
// Valid is true only when the response was produced by a successful parse.
type Response struct {
	Status  Status
	Headers Headers
	Body    []byte
	Valid   bool
}

// NewResponse creates an empty response.
func NewResponse() *Response {
	return &Response{Headers: NewHeaders()}
}

// SetStatus assigns the canonical status for code.
func (r *Response) SetStatus(code uint16) {
	r.Status = StatusOf(code)
}

// SetBody assigns a raw body.
func (r *Response) SetBody(body []byte) {
	r.Body = body
}

// SetJSON marshals v into the body and sets the Content-Type header
// as a side effect.
func (r *Response) SetJSON(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	r.Body = data
	r.Headers.Set("content-type", "application/json")
	return nil
}

// Parse populates the response from wire bytes. The status line needs at
// least three tokens and a numeric code; the reason phrase is the remainder
// rejoined with single spaces, preserved verbatim.
func (r *Response) Parse(data []byte) error {
	statusLine, headers, body, err := Decode(data)
	if err != nil {
		return err
	}

	tokens := strings.Split(statusLine, " ")
	if len(tokens) < 3 {
		return errors.ErrMalformedResponse
	}
	code, err := strconv.ParseUint(tokens[1], 10, 16)
	if err != nil {
		return errors.ErrMalformedResponse
	}

	r.Status = Status{Code: uint16(code), Reason: strings.Join(tokens[2:], " ")}
	r.Headers = headers
	r.Body = body
	r.Valid = true
	return nil
}

// Encode serializes the response. Content-Length is always computed from
// the body immediately before encoding.
func (r *Response) Encode() []byte {
	r.Headers.Set("content-length", strconv.Itoa(len(r.Body)))
	statusLine := httpVersion + " " + strconv.Itoa(int(r.Status.Code)) + " " + r.Status.Reason
	return Encode(statusLine, r.Headers, r.Body)
}
