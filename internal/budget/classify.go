package budget

import "example.com/moneyquest/backend/internal/models"

const (
	exceededPercent = 100.0
	dangerPercent   = 90.0
)

// Percentage возвращает долю потраченного от лимита в процентах.
func Percentage(spentCents, limitCents int64) float64 {
	if limitCents <= 0 {
		return 0
	}

	return float64(spentCents) / float64(limitCents) * 100
}

// Classify определяет тир серьезности по потраченной доле лимита.
// Пороги exceeded (100%) и danger (90%) фиксированы, warning задается пользователем.
func Classify(spentCents, limitCents int64, alertThreshold int) models.AlertSeverity {
	if spentCents <= 0 {
		return models.SeveritySafe
	}

	percent := Percentage(spentCents, limitCents)

	switch {
	case percent >= exceededPercent:
		return models.SeverityExceeded
	case percent >= dangerPercent:
		return models.SeverityDanger
	case percent >= float64(alertThreshold):
		return models.SeverityWarning
	default:
		return models.SeveritySafe
	}
}
