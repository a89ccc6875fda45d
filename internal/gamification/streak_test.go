package gamification

import (
	"testing"
	"time"
)

// TestNextStreakFirstActivity проверяет старт серии с единицы.
func TestNextStreakFirstActivity(t *testing.T) {
	now := time.Date(2024, time.May, 15, 10, 0, 0, 0, time.UTC)

	if got := NextStreak(nil, now, 0); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}
}

// TestNextStreakSameDay проверяет, что повторная активность в тот же день серию не меняет.
func TestNextStreakSameDay(t *testing.T) {
	last := time.Date(2024, time.May, 15, 9, 0, 0, 0, time.UTC)
	now := time.Date(2024, time.May, 15, 22, 30, 0, 0, time.UTC)

	if got := NextStreak(&last, now, 4); got != 4 {
		t.Fatalf("expected 4, got %d", got)
	}
}

// TestNextStreakConsecutiveDay проверяет инкремент на следующий день.
func TestNextStreakConsecutiveDay(t *testing.T) {
	last := time.Date(2024, time.May, 15, 23, 59, 0, 0, time.UTC)
	now := time.Date(2024, time.May, 16, 0, 5, 0, 0, time.UTC)

	if got := NextStreak(&last, now, 4); got != 5 {
		t.Fatalf("expected 5, got %d", got)
	}
}

// TestNextStreakGapResetsToOne проверяет сброс серии к 1 после пропуска.
func TestNextStreakGapResetsToOne(t *testing.T) {
	last := time.Date(2024, time.May, 13, 12, 0, 0, 0, time.UTC)
	now := time.Date(2024, time.May, 16, 12, 0, 0, 0, time.UTC)

	if got := NextStreak(&last, now, 9); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}
}
