package budget

import (
	"time"

	"example.com/moneyquest/backend/internal/models"
)

// PeriodStart возвращает начало текущего окна периода в локальной зоне now.
// Неделя начинается в понедельник, месяц первого числа.
func PeriodStart(period models.BudgetPeriod, now time.Time) time.Time {
	switch period {
	case models.PeriodMonthly:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	default:
		offset := (int(now.Weekday()) + 6) % 7 // Monday=0 .. Sunday=6
		day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		return day.AddDate(0, 0, -offset)
	}
}

// PeriodWindow возвращает границы текущего окна; end указывает на последнюю секунду окна.
func PeriodWindow(period models.BudgetPeriod, now time.Time) (time.Time, time.Time) {
	start := PeriodStart(period, now)

	var next time.Time
	if period == models.PeriodMonthly {
		next = start.AddDate(0, 1, 0)
	} else {
		next = start.AddDate(0, 0, 7)
	}

	return start, next.Add(-time.Second)
}
