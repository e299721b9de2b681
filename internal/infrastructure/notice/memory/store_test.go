package memory

import (
	"context"
	"testing"
)

func TestTakeConsumesMessageOnce(t *testing.T) {
	s := New()
	ctx := context.Background()

	if err := s.Put(ctx, "sess-1", "Invoice successfully created and sent to billing@acme.test"); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	first, err := s.Take(ctx, "sess-1")
	if err != nil {
		t.Fatalf("Take() error = %v", err)
	}
	if first == "" {
		t.Fatalf("expected pending message on first read")
	}

	second, err := s.Take(ctx, "sess-1")
	if err != nil {
		t.Fatalf("second Take() error = %v", err)
	}
	if second != "" {
		t.Fatalf("expected message to be consumed, got %q", second)
	}
}

func TestTakeIsScopedPerSession(t *testing.T) {
	s := New()
	ctx := context.Background()

	if err := s.Put(ctx, "sess-1", "hello"); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	other, err := s.Take(ctx, "sess-2")
	if err != nil {
		t.Fatalf("Take() error = %v", err)
	}
	if other != "" {
		t.Fatalf("message leaked across sessions: %q", other)
	}
}

func TestPutOverwritesPending(t *testing.T) {
	s := New()
	ctx := context.Background()

	_ = s.Put(ctx, "sess-1", "first")
	_ = s.Put(ctx, "sess-1", "second")

	got, err := s.Take(ctx, "sess-1")
	if err != nil {
		t.Fatalf("Take() error = %v", err)
	}
	if got != "second" {
		t.Fatalf("expected latest message, got %q", got)
	}
}
