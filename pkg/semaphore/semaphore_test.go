package semaphore

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestAcquireRelease(t *testing.T) {
	s := New(2)
	ctx := context.Background()

	if err := s.Acquire(ctx); err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	if !s.TryAcquire() {
		t.Fatal("TryAcquire() should succeed with one free slot")
	}
	if s.TryAcquire() {
		t.Fatal("TryAcquire() should fail when full")
	}
	if s.InUse() != 2 {
		t.Errorf("InUse() = %d, want 2", s.InUse())
	}

	s.Release()
	if !s.TryAcquire() {
		t.Error("TryAcquire() should succeed after Release")
	}
}

func TestAcquireHonoursContext(t *testing.T) {
	s := New(1)
	s.TryAcquire()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := s.Acquire(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Acquire() error = %v, want deadline exceeded", err)
	}
}

func TestNewMinimumCapacity(t *testing.T) {
	s := New(0)
	if !s.TryAcquire() {
		t.Fatal("capacity should default to one")
	}
	if s.TryAcquire() {
		t.Fatal("capacity should be exactly one")
	}
}
