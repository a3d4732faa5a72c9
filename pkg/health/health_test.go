// Copyright (c) The lighttp Authors
// SPDX-License-Identifier: MIT

package health

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shove70/lighttp/pkg/conn"
	"github.com/shove70/lighttp/pkg/message"
)

func TestChecker_Health(t *testing.T) {
	c := NewChecker(time.Minute)
	c.Register("ok", func(ctx context.Context) error { return nil })
	c.Register("broken", func(ctx context.Context) error { return errors.New("down") })

	status, checks := c.Health(context.Background())
	if status != StatusDegraded {
		t.Errorf("overall = %s, want degraded", status)
	}
	if len(checks) != 2 {
		t.Fatalf("got %d checks, want 2", len(checks))
	}
	for _, ch := range checks {
		switch ch.Name {
		case "ok":
			if ch.Status != StatusHealthy {
				t.Errorf("ok check = %s", ch.Status)
			}
		case "broken":
			if ch.Status != StatusUnhealthy || ch.Message != "down" {
				t.Errorf("broken check = %s %q", ch.Status, ch.Message)
			}
		}
	}
}

func TestChecker_CachesResults(t *testing.T) {
	calls := 0
	c := NewChecker(time.Minute)
	c.Register("counted", func(ctx context.Context) error {
		calls++
		return nil
	})

	ctx := context.Background()
	c.Health(ctx)
	c.Health(ctx)
	if calls != 1 {
		t.Errorf("check ran %d times within TTL, want 1", calls)
	}
}

func TestLivenessHandler(t *testing.T) {
	resp := message.NewResponse()
	var result conn.HandleResult
	if err := LivenessHandler()(context.Background(), &result, nil, message.NewRequest(), resp); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if resp.Status.Code != message.StatusOK {
		t.Errorf("status = %d, want 200", resp.Status.Code)
	}
	if string(resp.Body) != `{"status":"alive"}` {
		t.Errorf("body = %q", resp.Body)
	}
}

func TestReadinessHandler(t *testing.T) {
	t.Run("Healthy", func(t *testing.T) {
		c := NewChecker(time.Minute)
		c.Register("ok", func(ctx context.Context) error { return nil })

		resp := message.NewResponse()
		var result conn.HandleResult
		if err := c.ReadinessHandler()(context.Background(), &result, nil, message.NewRequest(), resp); err != nil {
			t.Fatalf("handler: %v", err)
		}
		if resp.Status.Code != message.StatusOK {
			t.Errorf("status = %d, want 200", resp.Status.Code)
		}
	})

	t.Run("Degraded", func(t *testing.T) {
		c := NewChecker(time.Minute)
		c.Register("broken", func(ctx context.Context) error { return errors.New("down") })

		resp := message.NewResponse()
		var result conn.HandleResult
		if err := c.ReadinessHandler()(context.Background(), &result, nil, message.NewRequest(), resp); err != nil {
			t.Fatalf("handler: %v", err)
		}
		if resp.Status.Code != message.StatusServiceUnavailable {
			t.Errorf("status = %d, want 503", resp.Status.Code)
		}
	})
}
