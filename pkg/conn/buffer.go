// Copyright (c) The lighttp Authors
// SPDX-License-Identifier: MIT

package conn

// Buffer is a growable, resettable byte container owned exclusively by one
// connection for its lifetime. It is reused across deliveries instead of
// being reallocated per message, and released when the connection is torn
// down.
type Buffer struct {
	data []byte
}

// NewBuffer creates a buffer with the given initial capacity.
func NewBuffer(capacity int) *Buffer {
	return &Buffer{data: make([]byte, 0, capacity)}
}

// Reset empties the buffer, keeping its backing storage.
func (b *Buffer) Reset() {
	b.data = b.data[:0]
}

// Set replaces the buffer contents with a copy of p.
func (b *Buffer) Set(p []byte) {
	b.data = append(b.data[:0], p...)
}

// Append appends a copy of p, growing amortized.
func (b *Buffer) Append(p []byte) {
	b.data = append(b.data, p...)
}

// Bytes returns the current contents. The slice is valid until the next
// Set, Append or Reset.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Len returns the number of buffered bytes.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Release drops the backing storage.
func (b *Buffer) Release() {
	b.data = nil
}
