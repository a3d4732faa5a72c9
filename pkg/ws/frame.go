// Copyright (c) The lighttp Authors
// SPDX-License-Identifier: MIT

package ws

import "encoding/binary"

const (
	// finText is the fixed first byte of every outgoing frame:
	// FIN=1, no RSV bits, opcode 1.
	finText = 0x81

	opcodeMask = 0x0F
	maskBit    = 0x80

	len16 = 126
	len64 = 127
)

// Encode wraps payload in a single unmasked data frame (server-to-client
// frames are never masked). Payloads shorter than 126 bytes carry their
// length in the second byte; payloads below 65536 use the 16-bit extended
// form, everything else the 64-bit form. 65535 still takes the 16-bit form.
func Encode(payload []byte) []byte {
	n := len(payload)
	frame := make([]byte, 0, n+10)
	frame = append(frame, finText)

	switch {
	case n < len16:
		frame = append(frame, byte(n))
	case n < 65536:
		frame = append(frame, len16)
		frame = binary.BigEndian.AppendUint16(frame, uint16(n))
	default:
		frame = append(frame, len64)
		frame = binary.BigEndian.AppendUint64(frame, uint64(n))
	}

	return append(frame, payload...)
}

// Decode reads one frame from data, which must start at a frame boundary.
//
// Only frames whose opcode nibble is 1 are recognized; any other opcode is
// ignored without error. If data runs out before the header, mask or payload
// is complete, the frame is abandoned for this chunk and nothing is
// delivered — partial payloads never escape. The second return value is
// false in both cases.
func Decode(data []byte) ([]byte, bool) {
	if len(data) < 2 {
		return nil, false
	}
	if data[0]&opcodeMask != 0x1 {
		return nil, false
	}

	masked := data[1]&maskBit != 0
	length := int(data[1] &^ maskBit)
	offset := 2

	switch length {
	case len16:
		if len(data) < offset+2 {
			return nil, false
		}
		length = int(binary.BigEndian.Uint16(data[offset:]))
		offset += 2
	case len64:
		if len(data) < offset+8 {
			return nil, false
		}
		// Truncated to the native word width.
		length = int(binary.BigEndian.Uint64(data[offset:]))
		offset += 8
	}
	if length < 0 {
		return nil, false
	}

	if masked {
		if len(data) < offset+4 {
			return nil, false
		}
		var mask [4]byte
		copy(mask[:], data[offset:offset+4])
		offset += 4

		if len(data)-offset < length {
			return nil, false
		}
		payload := make([]byte, length)
		for i := range payload {
			payload[i] = data[offset+i] ^ mask[i%4]
		}
		return payload, true
	}

	if len(data)-offset < length {
		return nil, false
	}
	return append([]byte(nil), data[offset:offset+length]...), true
}
