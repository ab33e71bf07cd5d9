package resilience

import (
	"errors"
	"testing"
	"time"
)

func TestCircuitBreakerTransitions(t *testing.T) {
	b := NewCircuitBreaker(CircuitSettings{
		FailureThreshold: 2,
		Cooldown:         5 * time.Second,
		HalfOpenProbes:   1,
	})

	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

	if err := b.Allow(); err != nil {
		t.Fatalf("expected allow in closed state: %v", err)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after first failure, got %s", state)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open after threshold failures, got %s", state)
	}

	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected circuit open error, got %v", err)
	}

	now = now.Add(6 * time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("expected half-open probe to pass, got %v", err)
	}
	if state := b.State(); state != CircuitStateHalfOpen {
		t.Fatalf("expected half-open state, got %s", state)
	}

	b.RecordSuccess()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after successful probe, got %s", state)
	}
}

func TestCircuitBreakerHalfOpenFailureReopens(t *testing.T) {
	b := NewCircuitBreaker(CircuitSettings{
		FailureThreshold: 1,
		Cooldown:         time.Second,
		HalfOpenProbes:   1,
	})

	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

	b.RecordFailure()
	now = now.Add(2 * time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("expected half-open probe to pass, got %v", err)
	}

	b.RecordFailure()
	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected circuit to reopen after probe failure, got %v", err)
	}
}

func TestCircuitSettingsNormalized(t *testing.T) {
	b := NewCircuitBreaker(CircuitSettings{})

	if b.settings.FailureThreshold != 1 {
		t.Fatalf("FailureThreshold = %d, want 1", b.settings.FailureThreshold)
	}
	if b.settings.Cooldown != 15*time.Second {
		t.Fatalf("Cooldown = %s, want 15s", b.settings.Cooldown)
	}
	if b.settings.HalfOpenProbes != 1 {
		t.Fatalf("HalfOpenProbes = %d, want 1", b.settings.HalfOpenProbes)
	}
}
