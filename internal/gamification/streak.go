package gamification

import "time"

// NextStreak считает серию последовательных дней трекинга.
// Повторная активность в тот же день серию не меняет, следующий день увеличивает
// на единицу, пропуск сбрасывает серию к 1.
func NextStreak(lastTrackedOn *time.Time, now time.Time, current int) int {
	if lastTrackedOn == nil || current <= 0 {
		return 1
	}

	last := dateOf(*lastTrackedOn)
	today := dateOf(now)

	switch today.Sub(last) {
	case 0:
		return current
	case 24 * time.Hour:
		return current + 1
	default:
		return 1
	}
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
