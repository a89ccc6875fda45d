package budget

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"example.com/moneyquest/backend/internal/models"
)

// TestHasAlertForTier проверяет дедупликацию алертов внутри периода.
func TestHasAlertForTier(t *testing.T) {
	periodStart := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	existing := []models.SpendingAlert{
		{
			ID:        uuid.New(),
			Category:  "food",
			Severity:  models.SeverityWarning,
			CreatedAt: periodStart.Add(time.Hour),
		},
	}

	if !hasAlertForTier(existing, "food", models.SeverityWarning, periodStart) {
		t.Fatal("expected duplicate for same tier within period")
	}

	if hasAlertForTier(existing, "food", models.SeverityDanger, periodStart) {
		t.Fatal("expected no duplicate for a different tier")
	}

	if hasAlertForTier(existing, "games", models.SeverityWarning, periodStart) {
		t.Fatal("expected no duplicate for a different category")
	}
}

// TestHasAlertForTierIgnoresRead проверяет, что прочитанный алерт дубль не блокирует.
func TestHasAlertForTierIgnoresRead(t *testing.T) {
	periodStart := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	existing := []models.SpendingAlert{
		{
			ID:        uuid.New(),
			Category:  "food",
			Severity:  models.SeverityWarning,
			IsRead:    true,
			CreatedAt: periodStart.Add(time.Hour),
		},
	}

	if hasAlertForTier(existing, "food", models.SeverityWarning, periodStart) {
		t.Fatal("expected read alert to not count as duplicate")
	}
}

// TestHasAlertForTierIgnoresPastPeriod проверяет, что алерт прошлого окна дубль не блокирует.
func TestHasAlertForTierIgnoresPastPeriod(t *testing.T) {
	periodStart := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	existing := []models.SpendingAlert{
		{
			ID:        uuid.New(),
			Category:  "food",
			Severity:  models.SeverityExceeded,
			CreatedAt: periodStart.Add(-time.Hour),
		},
	}

	if hasAlertForTier(existing, "food", models.SeverityExceeded, periodStart) {
		t.Fatal("expected alert from a previous window to not count")
	}
}
