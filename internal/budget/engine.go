package budget

import (
	"context"
	"time"

	"github.com/google/uuid"

	"example.com/moneyquest/backend/internal/models"
	"example.com/moneyquest/backend/internal/repository"
)

// CategoryStatus описывает состояние одного лимита трат.
type CategoryStatus struct {
	LimitID        uuid.UUID            `json:"limit_id"`
	Category       string               `json:"category"`
	Period         models.BudgetPeriod  `json:"period"`
	LimitCents     int64                `json:"limit_cents"`
	SpentCents     int64                `json:"spent_cents"`
	RemainingCents int64                `json:"remaining_cents"`
	Percentage     float64              `json:"percentage"`
	AlertThreshold int                  `json:"alert_threshold"`
	Status         models.AlertSeverity `json:"status"`
}

type Engine struct {
	Limits       *repository.BudgetLimitRepository
	Transactions *repository.TransactionRepository
}

// NewEngine создает движок учета лимитов трат.
func NewEngine(limits *repository.BudgetLimitRepository, transactions *repository.TransactionRepository) *Engine {
	return &Engine{Limits: limits, Transactions: transactions}
}

// Overview считает траты по каждому активному лимиту пользователя за текущий период.
func (e *Engine) Overview(ctx context.Context, userID uuid.UUID) ([]CategoryStatus, error) {
	limits, err := e.Limits.ListActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return e.statuses(ctx, userID, limits, time.Now())
}

// CategoryStatuses считает статусы всех активных лимитов на указанную категорию.
func (e *Engine) CategoryStatuses(ctx context.Context, userID uuid.UUID, category string) ([]CategoryStatus, error) {
	limits, err := e.Limits.ListActiveByUserAndCategory(ctx, userID, category)
	if err != nil {
		return nil, err
	}

	return e.statuses(ctx, userID, limits, time.Now())
}

func (e *Engine) statuses(ctx context.Context, userID uuid.UUID, limits []models.BudgetLimit, now time.Time) ([]CategoryStatus, error) {
	statuses := make([]CategoryStatus, 0, len(limits))
	for _, limit := range limits {
		start := PeriodStart(limit.Period, now)

		spent, err := e.Transactions.SumExpensesSince(ctx, userID, limit.Category, start)
		if err != nil {
			return nil, err
		}

		statuses = append(statuses, CategoryStatus{
			LimitID:        limit.ID,
			Category:       limit.Category,
			Period:         limit.Period,
			LimitCents:     limit.LimitCents,
			SpentCents:     spent,
			RemainingCents: limit.LimitCents - spent,
			Percentage:     Percentage(spent, limit.LimitCents),
			AlertThreshold: limit.AlertThreshold,
			Status:         Classify(spent, limit.LimitCents, limit.AlertThreshold),
		})
	}

	return statuses, nil
}
