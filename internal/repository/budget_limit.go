package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/moneyquest/backend/internal/models"
)

type BudgetLimitRepository struct {
	db *pgxpool.Pool
}

// NewBudgetLimitRepository создает репозиторий лимитов трат.
func NewBudgetLimitRepository(db *pgxpool.Pool) *BudgetLimitRepository {
	return &BudgetLimitRepository{db: db}
}

// Upsert создает либо обновляет лимит по ключу (user, category, period).
// На пару (категория, период) действует ровно один лимит.
func (r *BudgetLimitRepository) Upsert(ctx context.Context, userID uuid.UUID, category string, limitCents int64, period models.BudgetPeriod, alertThreshold int) (models.BudgetLimit, error) {
	var limit models.BudgetLimit

	err := r.db.QueryRow(ctx,
		`INSERT INTO budget_limits (id, user_id, category, limit_cents, period, alert_threshold, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, TRUE)
		 ON CONFLICT (user_id, category, period) DO UPDATE
		 SET limit_cents = EXCLUDED.limit_cents,
		     alert_threshold = EXCLUDED.alert_threshold,
		     is_active = TRUE,
		     updated_at = NOW()
		 RETURNING id, user_id, category, limit_cents, period, alert_threshold, is_active, created_at, updated_at`,
		uuid.New(), userID, category, limitCents, period, alertThreshold,
	).Scan(&limit.ID, &limit.UserID, &limit.Category, &limit.LimitCents, &limit.Period, &limit.AlertThreshold, &limit.IsActive, &limit.CreatedAt, &limit.UpdatedAt)
	if err != nil {
		return limit, err
	}

	return limit, nil
}

// Delete удаляет лимит пользователя.
func (r *BudgetLimitRepository) Delete(ctx context.Context, userID, limitID uuid.UUID) error {
	cmd, err := r.db.Exec(ctx,
		`DELETE FROM budget_limits
		 WHERE id = $1 AND user_id = $2`,
		limitID, userID,
	)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// Toggle переключает активность лимита без удаления.
func (r *BudgetLimitRepository) Toggle(ctx context.Context, userID, limitID uuid.UUID) (models.BudgetLimit, error) {
	var limit models.BudgetLimit

	err := r.db.QueryRow(ctx,
		`UPDATE budget_limits
		 SET is_active = NOT is_active,
		     updated_at = NOW()
		 WHERE id = $1 AND user_id = $2
		 RETURNING id, user_id, category, limit_cents, period, alert_threshold, is_active, created_at, updated_at`,
		limitID, userID,
	).Scan(&limit.ID, &limit.UserID, &limit.Category, &limit.LimitCents, &limit.Period, &limit.AlertThreshold, &limit.IsActive, &limit.CreatedAt, &limit.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return limit, ErrNotFound
		}
		return limit, err
	}

	return limit, nil
}

// ListActiveByUser возвращает активные лимиты пользователя.
func (r *BudgetLimitRepository) ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]models.BudgetLimit, error) {
	return r.list(ctx,
		`SELECT id, user_id, category, limit_cents, period, alert_threshold, is_active, created_at, updated_at
		 FROM budget_limits
		 WHERE user_id = $1 AND is_active
		 ORDER BY category, period`,
		userID,
	)
}

// ListActiveByUserAndCategory возвращает активные лимиты на категорию.
func (r *BudgetLimitRepository) ListActiveByUserAndCategory(ctx context.Context, userID uuid.UUID, category string) ([]models.BudgetLimit, error) {
	return r.list(ctx,
		`SELECT id, user_id, category, limit_cents, period, alert_threshold, is_active, created_at, updated_at
		 FROM budget_limits
		 WHERE user_id = $1 AND category = $2 AND is_active
		 ORDER BY period`,
		userID, category,
	)
}

func (r *BudgetLimitRepository) list(ctx context.Context, query string, args ...interface{}) ([]models.BudgetLimit, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	limits := make([]models.BudgetLimit, 0)
	for rows.Next() {
		var limit models.BudgetLimit

		err := rows.Scan(&limit.ID, &limit.UserID, &limit.Category, &limit.LimitCents, &limit.Period, &limit.AlertThreshold, &limit.IsActive, &limit.CreatedAt, &limit.UpdatedAt)
		if err != nil {
			return nil, err
		}

		limits = append(limits, limit)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return limits, nil
}
