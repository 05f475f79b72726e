package net_test

import (
	"context"
	"testing"
	"time"

	pnet "khmerfold/internal/platform/net"
)

func TestWithRequest(t *testing.T) {
	base := context.Background()

	ctx := pnet.WithRequest(base, "req-123")
	if got := pnet.RequestID(ctx); got != "req-123" {
		t.Fatalf("RequestID got %q want %q", got, "req-123")
	}

	if pnet.WithRequest(base, "") != base {
		t.Fatalf("empty id should leave ctx untouched")
	}
	if pnet.RequestID(base) != "" {
		t.Fatalf("RequestID on bare ctx should be empty")
	}
}

func TestElapsed(t *testing.T) {
	if pnet.Elapsed(context.Background()) != 0 {
		t.Fatalf("unset start should report zero")
	}
	ctx := pnet.WithStarted(context.Background(), time.Now().Add(-time.Second))
	if d := pnet.Elapsed(ctx); d < time.Second {
		t.Fatalf("Elapsed = %v", d)
	}
}
