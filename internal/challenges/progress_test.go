package challenges

import (
	"testing"

	"example.com/moneyquest/backend/internal/models"
)

// TestNextProgressCounter проверяет инкремент счетных типов.
func TestNextProgressCounter(t *testing.T) {
	next, changed := NextProgress(models.ChallengeTypeTransactions, 4, 0)
	if !changed || next != 5 {
		t.Fatalf("expected 5, got %d (changed=%v)", next, changed)
	}

	next, changed = NextProgress(models.ChallengeTypeLessons, 0, 999)
	if !changed || next != 1 {
		t.Fatalf("expected amount to be ignored for counters, got %d", next)
	}
}

// TestNextProgressAmount проверяет накопление суммовых типов и no-op при нулевой сумме.
func TestNextProgressAmount(t *testing.T) {
	next, changed := NextProgress(models.ChallengeTypeSavings, 1200, 1200)
	if !changed || next != 2400 {
		t.Fatalf("expected 2400, got %d (changed=%v)", next, changed)
	}

	if _, changed := NextProgress(models.ChallengeTypeSavings, 1200, 0); changed {
		t.Fatal("expected zero amount to be a no-op")
	}

	if _, changed := NextProgress(models.ChallengeTypeBudget, 500, -100); changed {
		t.Fatal("expected negative amount to be a no-op")
	}
}

// TestNextProgressStreak проверяет, что прогресс серии не регрессирует.
func TestNextProgressStreak(t *testing.T) {
	next, changed := NextProgress(models.ChallengeTypeStreak, 3, 5)
	if !changed || next != 5 {
		t.Fatalf("expected 5, got %d", next)
	}

	// Серия сбросилась до 1, прогресс остается на максимуме.
	if _, changed := NextProgress(models.ChallengeTypeStreak, 5, 1); changed {
		t.Fatal("expected streak reset not to regress progress")
	}

	if _, changed := NextProgress(models.ChallengeTypeStreak, 5, 5); changed {
		t.Fatal("expected equal streak to be a no-op")
	}
}
