package repository

import (
	"errors"
	"testing"
)

// TestClaimGate проверяет условия выдачи награды.
func TestClaimGate(t *testing.T) {
	if err := claimGate(true, false); err != nil {
		t.Fatalf("expected claim allowed, got %v", err)
	}

	if err := claimGate(false, false); !errors.Is(err, ErrNotCompleted) {
		t.Fatalf("expected ErrNotCompleted, got %v", err)
	}

	if err := claimGate(true, true); !errors.Is(err, ErrAlreadyClaimed) {
		t.Fatalf("expected ErrAlreadyClaimed, got %v", err)
	}
}

// TestClaimGateNotCompletedFirst проверяет приоритет проверки завершенности.
func TestClaimGateNotCompletedFirst(t *testing.T) {
	if err := claimGate(false, true); !errors.Is(err, ErrNotCompleted) {
		t.Fatalf("expected ErrNotCompleted, got %v", err)
	}
}
