// Copyright (c) The lighttp Authors
// SPDX-License-Identifier: MIT

// Package ws implements a stateless single-frame WebSocket codec.
//
// The model is deliberately continuation-less: one self-contained data frame
// per chunk, no fragmentation, no control-frame handling. Incoming frames may
// be masked (client-to-server), outgoing frames never are. A frame that is
// split across chunk deliveries is dropped rather than buffered; callers that
// need cross-chunk reassembly must provide it themselves.
package ws
