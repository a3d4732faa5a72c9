// Copyright (c) The lighttp Authors
// SPDX-License-Identifier: MIT

// Package ratelimit provides token-bucket admission control for the
// accept path.
package ratelimit

import (
	"sync"
	"time"
)

// TokenBucket implements the token bucket algorithm.
type TokenBucket struct {
	mu         sync.Mutex
	capacity   int64
	tokens     int64
	refillRate int64 // tokens per second
	lastRefill time.Time
}

// NewTokenBucket creates a bucket holding at most capacity tokens, refilled
// at refillRate tokens per second.
func NewTokenBucket(capacity, refillRate int64) *TokenBucket {
	return &TokenBucket{
		capacity:   capacity,
		tokens:     capacity,
		refillRate: refillRate,
		lastRefill: time.Now(),
	}
}

// Allow consumes one token if available.
func (tb *TokenBucket) Allow() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.refill()
	if tb.tokens < 1 {
		return false
	}
	tb.tokens--
	return true
}

func (tb *TokenBucket) refill() {
	now := time.Now()
	elapsed := now.Sub(tb.lastRefill).Seconds()

	add := int64(elapsed * float64(tb.refillRate))
	if add > 0 {
		tb.tokens += add
		if tb.tokens > tb.capacity {
			tb.tokens = tb.capacity
		}
		tb.lastRefill = now
	}
}

type entry struct {
	bucket   *TokenBucket
	lastSeen time.Time
}

// Limiter tracks one token bucket per remote host.
type Limiter struct {
	mu         sync.Mutex
	entries    map[string]*entry
	capacity   int64
	refillRate int64
	maxHosts   int
	lastSweep  time.Time
}

// NewLimiter creates a per-host limiter. When more than maxHosts hosts are
// tracked, entries idle for over five minutes are swept.
func NewLimiter(capacity, refillRate int64, maxHosts int) *Limiter {
	if maxHosts == 0 {
		maxHosts = 10000
	}
	return &Limiter{
		entries:    make(map[string]*entry),
		capacity:   capacity,
		refillRate: refillRate,
		maxHosts:   maxHosts,
		lastSweep:  time.Now(),
	}
}

// Allow reports whether a connection from host should be admitted.
func (l *Limiter) Allow(host string) bool {
	l.mu.Lock()
	e, ok := l.entries[host]
	if !ok {
		if len(l.entries) >= l.maxHosts {
			l.sweep()
		}
		if len(l.entries) >= l.maxHosts {
			l.mu.Unlock()
			return false
		}
		e = &entry{bucket: NewTokenBucket(l.capacity, l.refillRate)}
		l.entries[host] = e
	}
	e.lastSeen = time.Now()
	l.mu.Unlock()

	return e.bucket.Allow()
}

// sweep drops entries idle for over five minutes. Called with l.mu held.
func (l *Limiter) sweep() {
	const idle = 5 * time.Minute
	now := time.Now()
	for host, e := range l.entries {
		if now.Sub(e.lastSeen) > idle {
			delete(l.entries, host)
		}
	}
	l.lastSweep = now
}

// Hosts returns the number of tracked hosts.
func (l *Limiter) Hosts() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
