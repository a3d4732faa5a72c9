// Copyright (c) The lighttp Authors
// SPDX-License-Identifier: MIT

package message

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shove70/lighttp/pkg/errors"
)

func TestResponseParse(t *testing.T) {
	t.Run("Simple", func(t *testing.T) {
		resp := NewResponse()
		err := resp.Parse([]byte("HTTP/1.1 200 OK\r\nContent-Type: text/plain\r\n\r\nhello"))
		require.NoError(t, err)
		require.True(t, resp.Valid)
		require.Equal(t, uint16(200), resp.Status.Code)
		require.Equal(t, "OK", resp.Status.Reason)
		require.Equal(t, "hello", string(resp.Body))
	})

	t.Run("ReasonPreservedVerbatim", func(t *testing.T) {
		resp := NewResponse()
		err := resp.Parse([]byte("HTTP/1.1 404 Totally Gone Forever\r\n\r\n"))
		require.NoError(t, err)
		require.Equal(t, "Totally Gone Forever", resp.Status.Reason)
	})

	t.Run("NonNumericCode", func(t *testing.T) {
		resp := NewResponse()
		err := resp.Parse([]byte("HTTP/1.1 abc OK\r\n\r\n"))
		require.ErrorIs(t, err, errors.ErrMalformedResponse)
	})

	t.Run("TooFewTokens", func(t *testing.T) {
		resp := NewResponse()
		err := resp.Parse([]byte("HTTP/1.1 200\r\n\r\n"))
		require.ErrorIs(t, err, errors.ErrMalformedResponse)
	})
}

func TestResponseRoundTrip(t *testing.T) {
	resp := NewResponse()
	resp.SetStatus(StatusCreated)
	resp.Headers.Set("X-Custom", "value")
	resp.SetBody([]byte("created"))

	parsed := NewResponse()
	require.NoError(t, parsed.Parse(resp.Encode()))

	require.True(t, parsed.Valid)
	require.Equal(t, resp.Status.Code, parsed.Status.Code)
	require.Equal(t, resp.Body, parsed.Body)
	require.Equal(t, "value", parsed.Headers["x-custom"])
}

func TestResponseEncode_ContentLengthAlwaysSet(t *testing.T) {
	resp := NewResponse()
	resp.SetStatus(StatusNoContent)

	parsed := NewResponse()
	require.NoError(t, parsed.Parse(resp.Encode()))
	require.Equal(t, "0", parsed.Headers.Get("content-length"))
}

func TestResponseSetJSON(t *testing.T) {
	resp := NewResponse()
	require.NoError(t, resp.SetJSON(map[string]int{"n": 1}))
	require.Equal(t, "application/json", resp.Headers.Get("content-type"))
	require.JSONEq(t, `{"n":1}`, string(resp.Body))
}

func TestStatusOf(t *testing.T) {
	require.Equal(t, Status{Code: 200, Reason: "OK"}, StatusOf(200))
	require.Equal(t, Status{Code: 505, Reason: "HTTP Version Not Supported"}, StatusOf(505))
	require.Equal(t, Status{Code: 999, Reason: "Unknown Status Code"}, StatusOf(999))
}

func TestStatusEqual_IgnoresReason(t *testing.T) {
	require.True(t, Status{Code: 404, Reason: "Gone Fishing"}.Equal(StatusOf(404)))
	require.False(t, StatusOf(404).Equal(StatusOf(500)))
}
