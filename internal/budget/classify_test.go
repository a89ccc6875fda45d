package budget

import (
	"testing"

	"example.com/moneyquest/backend/internal/models"
)

// TestClassifyBoundaries проверяет фиксированные пороги 90% и 100%.
func TestClassifyBoundaries(t *testing.T) {
	if got := Classify(8999, 10000, 80); got != models.SeverityWarning {
		t.Fatalf("expected warning at 89.99%%, got %s", got)
	}

	if got := Classify(9000, 10000, 80); got != models.SeverityDanger {
		t.Fatalf("expected danger at 90%%, got %s", got)
	}

	if got := Classify(10000, 10000, 80); got != models.SeverityExceeded {
		t.Fatalf("expected exceeded at 100%%, got %s", got)
	}

	if got := Classify(10500, 10000, 80); got != models.SeverityExceeded {
		t.Fatalf("expected exceeded above 100%%, got %s", got)
	}
}

// TestClassifySafeBelowThreshold проверяет safe ниже пользовательского порога.
func TestClassifySafeBelowThreshold(t *testing.T) {
	if got := Classify(5000, 10000, 60); got != models.SeveritySafe {
		t.Fatalf("expected safe at 50%% with threshold 60, got %s", got)
	}

	if got := Classify(6000, 10000, 60); got != models.SeverityWarning {
		t.Fatalf("expected warning at 60%% with threshold 60, got %s", got)
	}
}

// TestClassifyZeroLimit проверяет, что нулевой лимит не делит на ноль.
func TestClassifyZeroLimit(t *testing.T) {
	if got := Classify(100, 0, 80); got != models.SeveritySafe {
		t.Fatalf("expected safe for zero limit, got %s", got)
	}
}

// TestPercentage проверяет расчет процента от лимита.
func TestPercentage(t *testing.T) {
	if got := Percentage(4500, 5000); got != 90 {
		t.Fatalf("expected 90, got %v", got)
	}

	if got := Percentage(0, 5000); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
}

// TestAlertMessage проверяет шаблоны сообщений по тирам.
func TestAlertMessage(t *testing.T) {
	got := alertMessage(models.SeverityExceeded, "Food", 105)
	if got != "You've exceeded your budget for Food!" {
		t.Fatalf("unexpected message: %s", got)
	}

	got = alertMessage(models.SeverityDanger, "Food", 92.4)
	if got != "Careful! You're at 92% of your Food budget" {
		t.Fatalf("unexpected message: %s", got)
	}

	got = alertMessage(models.SeverityWarning, "Games", 81)
	if got != "You're at 81% of your Games budget" {
		t.Fatalf("unexpected message: %s", got)
	}
}
