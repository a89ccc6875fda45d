package budget

import (
	"testing"
	"time"

	"example.com/moneyquest/backend/internal/models"
)

// TestPeriodStartWeekly проверяет, что неделя начинается в понедельник 00:00:00.
func TestPeriodStartWeekly(t *testing.T) {
	// Среда, 15 мая 2024.
	now := time.Date(2024, time.May, 15, 13, 45, 12, 0, time.UTC)

	start := PeriodStart(models.PeriodWeekly, now)

	want := time.Date(2024, time.May, 13, 0, 0, 0, 0, time.UTC)
	if !start.Equal(want) {
		t.Fatalf("expected %v, got %v", want, start)
	}
}

// TestPeriodStartWeeklyOnMonday проверяет понедельник как начало собственной недели.
func TestPeriodStartWeeklyOnMonday(t *testing.T) {
	now := time.Date(2024, time.May, 13, 0, 0, 1, 0, time.UTC)

	start := PeriodStart(models.PeriodWeekly, now)

	want := time.Date(2024, time.May, 13, 0, 0, 0, 0, time.UTC)
	if !start.Equal(want) {
		t.Fatalf("expected %v, got %v", want, start)
	}
}

// TestPeriodStartWeeklyOnSunday проверяет, что воскресенье относится к прошедшему понедельнику.
func TestPeriodStartWeeklyOnSunday(t *testing.T) {
	now := time.Date(2024, time.May, 19, 23, 59, 59, 0, time.UTC)

	start := PeriodStart(models.PeriodWeekly, now)

	want := time.Date(2024, time.May, 13, 0, 0, 0, 0, time.UTC)
	if !start.Equal(want) {
		t.Fatalf("expected %v, got %v", want, start)
	}
}

// TestPeriodStartMonthly проверяет начало месяца первого числа 00:00:00.
func TestPeriodStartMonthly(t *testing.T) {
	now := time.Date(2024, time.February, 29, 10, 0, 0, 0, time.UTC)

	start := PeriodStart(models.PeriodMonthly, now)

	want := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)
	if !start.Equal(want) {
		t.Fatalf("expected %v, got %v", want, start)
	}
}

// TestPeriodWindowWeekly проверяет границы недельного окна со среды.
func TestPeriodWindowWeekly(t *testing.T) {
	now := time.Date(2024, time.May, 15, 13, 45, 12, 0, time.UTC)

	start, end := PeriodWindow(models.PeriodWeekly, now)

	wantStart := time.Date(2024, time.May, 13, 0, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2024, time.May, 19, 23, 59, 59, 0, time.UTC)

	if !start.Equal(wantStart) {
		t.Fatalf("expected start %v, got %v", wantStart, start)
	}
	if !end.Equal(wantEnd) {
		t.Fatalf("expected end %v, got %v", wantEnd, end)
	}
}

// TestPeriodWindowMonthly проверяет границы месячного окна, включая февраль.
func TestPeriodWindowMonthly(t *testing.T) {
	now := time.Date(2024, time.February, 10, 8, 0, 0, 0, time.UTC)

	start, end := PeriodWindow(models.PeriodMonthly, now)

	wantStart := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2024, time.February, 29, 23, 59, 59, 0, time.UTC)

	if !start.Equal(wantStart) {
		t.Fatalf("expected start %v, got %v", wantStart, start)
	}
	if !end.Equal(wantEnd) {
		t.Fatalf("expected end %v, got %v", wantEnd, end)
	}
}
