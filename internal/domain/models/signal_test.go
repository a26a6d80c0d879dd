package models

import (
	"errors"
	"testing"
	"time"
)

func freshSignal(now time.Time) *Signal {
	return &Signal{
		ID:        "AAPL-1",
		Symbol:    "AAPL",
		Type:      SignalBuy,
		Price:     100,
		Quantity:  10,
		CreatedAt: now,
		ExpiresAt: now.Add(24 * time.Hour),
	}
}

func TestExecuteTransition(t *testing.T) {
	now := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	sig := freshSignal(now)

	execAt := now.Add(time.Hour)
	if err := sig.Execute(execAt); err != nil {
		t.Fatalf("first execute: %v", err)
	}
	if !sig.Executed || !sig.ExecutedAt.Equal(execAt) {
		t.Fatalf("execute did not record the transition: %+v", sig)
	}
}

func TestExecuteTwiceFails(t *testing.T) {
	now := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	sig := freshSignal(now)

	if err := sig.Execute(now); err != nil {
		t.Fatalf("first execute: %v", err)
	}
	err := sig.Execute(now.Add(time.Minute))
	if !errors.Is(err, ErrInvalidSignalState) {
		t.Fatalf("second execute should fail with ErrInvalidSignalState, got %v", err)
	}
}

func TestExecuteExpiredFails(t *testing.T) {
	now := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	sig := freshSignal(now)

	late := now.Add(25 * time.Hour)
	if !sig.Expired(late) {
		t.Fatalf("signal should report expired at %v", late)
	}
	if err := sig.Execute(late); !errors.Is(err, ErrInvalidSignalState) {
		t.Fatalf("executing an expired signal should fail, got %v", err)
	}
	if sig.Executed {
		t.Fatalf("failed execute must not mutate the signal")
	}
}

func TestExpiredNotReportedAfterExecute(t *testing.T) {
	now := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	sig := freshSignal(now)
	if err := sig.Execute(now); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if sig.Expired(now.Add(48 * time.Hour)) {
		t.Fatalf("executed signal is terminal, not expired")
	}
}
