// Copyright (c) The lighttp Authors
// SPDX-License-Identifier: MIT

package ratelimit

import "testing"

func TestTokenBucket_Exhaustion(t *testing.T) {
	tb := NewTokenBucket(3, 1)

	for i := 0; i < 3; i++ {
		if !tb.Allow() {
			t.Fatalf("request %d rejected with tokens remaining", i)
		}
	}
	if tb.Allow() {
		t.Error("request admitted from an empty bucket")
	}
}

func TestLimiter_PerHostIsolation(t *testing.T) {
	l := NewLimiter(1, 1, 0)

	if !l.Allow("10.0.0.1") {
		t.Fatal("first request from host a rejected")
	}
	if l.Allow("10.0.0.1") {
		t.Error("second request from host a admitted past capacity")
	}
	// A different host carries its own bucket.
	if !l.Allow("10.0.0.2") {
		t.Error("first request from host b rejected")
	}
	if l.Hosts() != 2 {
		t.Errorf("tracked hosts = %d, want 2", l.Hosts())
	}
}

func TestLimiter_MaxHosts(t *testing.T) {
	l := NewLimiter(1, 1, 2)

	l.Allow("a")
	l.Allow("b")
	// Both entries were just seen, so the sweep removes nothing and the
	// new host is rejected outright.
	if l.Allow("c") {
		t.Error("new host admitted past maxHosts with no sweepable entries")
	}
	if l.Hosts() != 2 {
		t.Errorf("tracked hosts = %d, want 2", l.Hosts())
	}
}
