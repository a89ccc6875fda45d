package gamification

import (
	"testing"

	"example.com/moneyquest/backend/internal/models"
)

// TestEligibleBadgesEmptyStats проверяет, что пустая статистика бейджей не дает.
func TestEligibleBadgesEmptyStats(t *testing.T) {
	earned := EligibleBadges(models.UserStats{Level: 1})
	if len(earned) != 0 {
		t.Fatalf("expected no badges, got %d", len(earned))
	}
}

// TestEligibleBadgesMilestones проверяет пороги нескольких бейджей.
func TestEligibleBadgesMilestones(t *testing.T) {
	stats := models.UserStats{
		Level:            5,
		TransactionCount: 50,
		LongestStreak:    7,
		TotalSavedCents:  10000,
		GoalsCreated:     1,
	}

	earned := EligibleBadges(stats)

	ids := make(map[string]bool, len(earned))
	for _, badge := range earned {
		ids[badge.ID] = true
	}

	for _, want := range []string{"first_transaction", "tracker_50", "streak_7", "saver_100", "first_goal", "level_5"} {
		if !ids[want] {
			t.Fatalf("expected badge %s to be earned, got %v", want, ids)
		}
	}

	if ids["tracker_250"] || ids["level_10"] {
		t.Fatal("unexpected high-tier badge earned")
	}
}

// TestBadgeByID проверяет поиск бейджа по идентификатору.
func TestBadgeByID(t *testing.T) {
	badge, ok := BadgeByID("streak_30")
	if !ok || badge.Title == "" {
		t.Fatalf("expected streak_30 badge, got %+v (ok=%v)", badge, ok)
	}

	if _, ok := BadgeByID("unknown"); ok {
		t.Fatal("expected unknown badge to be absent")
	}
}
