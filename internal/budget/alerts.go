package budget

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"example.com/moneyquest/backend/internal/models"
	"example.com/moneyquest/backend/internal/notifications"
	"example.com/moneyquest/backend/internal/repository"
)

// AlertEmitter превращает пересечения порогов в сохраненные алерты без дублей.
type AlertEmitter struct {
	Engine   *Engine
	Alerts   *repository.AlertRepository
	Notifier *notifications.Hub
	Logger   *slog.Logger
}

// NewAlertEmitter создает эмиттер алертов.
func NewAlertEmitter(engine *Engine, alerts *repository.AlertRepository, notifier *notifications.Hub, logger *slog.Logger) *AlertEmitter {
	if logger == nil {
		logger = slog.Default()
	}

	return &AlertEmitter{Engine: engine, Alerts: alerts, Notifier: notifier, Logger: logger}
}

// CheckCategory пересчитывает статус категории и создает алерт при новом пересечении тира.
// Повторное пересечение того же тира внутри периода алерт не создает.
func (a *AlertEmitter) CheckCategory(ctx context.Context, userID uuid.UUID, category string) error {
	statuses, err := a.Engine.CategoryStatuses(ctx, userID, category)
	if err != nil {
		return err
	}

	unread, err := a.Alerts.ListByUser(ctx, userID, false)
	if err != nil {
		return err
	}

	now := time.Now()
	for _, status := range statuses {
		if status.Status == models.SeveritySafe {
			continue
		}

		if hasAlertForTier(unread, status.Category, status.Status, PeriodStart(status.Period, now)) {
			continue
		}

		alert := models.SpendingAlert{
			ID:       uuid.New(),
			UserID:   userID,
			Category: status.Category,
			Period:   status.Period,
			Severity: status.Status,
			Message:  alertMessage(status.Status, status.Category, status.Percentage),
		}

		created, err := a.Alerts.CreateIfNew(ctx, alert, PeriodStart(status.Period, now))
		if err != nil {
			return err
		}

		if created {
			a.Logger.Info("spending alert created",
				slog.String("user_id", userID.String()),
				slog.String("category", status.Category),
				slog.String("severity", string(status.Status)),
			)
			notifications.PublishBudgetAlert(a.Notifier, userID, alert)
		}
	}

	return nil
}

// hasAlertForTier сообщает, есть ли у пользователя непрочитанный алерт
// того же тира по категории, созданный с начала периода.
func hasAlertForTier(alerts []models.SpendingAlert, category string, severity models.AlertSeverity, periodStart time.Time) bool {
	for _, alert := range alerts {
		if alert.IsRead {
			continue
		}
		if alert.Category != category || alert.Severity != severity {
			continue
		}
		if alert.CreatedAt.Before(periodStart) {
			continue
		}
		return true
	}

	return false
}

func alertMessage(severity models.AlertSeverity, category string, percentage float64) string {
	switch severity {
	case models.SeverityExceeded:
		return fmt.Sprintf("You've exceeded your budget for %s!", category)
	case models.SeverityDanger:
		return fmt.Sprintf("Careful! You're at %.0f%% of your %s budget", percentage, category)
	default:
		return fmt.Sprintf("You're at %.0f%% of your %s budget", percentage, category)
	}
}
