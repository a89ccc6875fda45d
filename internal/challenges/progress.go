package challenges

import "example.com/moneyquest/backend/internal/models"

// NextProgress применяет правило типа челленджа к текущему прогрессу.
// Второй результат false означает, что событие прогресс не меняет.
func NextProgress(typ models.ChallengeType, current, amount int64) (int64, bool) {
	switch typ {
	case models.ChallengeTypeSavings, models.ChallengeTypeBudget:
		if amount <= 0 {
			return current, false
		}
		return current + amount, true
	case models.ChallengeTypeStreak:
		if amount <= current {
			return current, false
		}
		return amount, true
	default:
		return current + 1, true
	}
}
