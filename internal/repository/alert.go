package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/moneyquest/backend/internal/models"
)

type AlertRepository struct {
	db *pgxpool.Pool
}

// NewAlertRepository создает репозиторий алертов.
func NewAlertRepository(db *pgxpool.Pool) *AlertRepository {
	return &AlertRepository{db: db}
}

// CreateIfNew вставляет алерт, только если с начала периода нет непрочитанного
// алерта того же тира по той же категории. Возвращает true при вставке.
func (r *AlertRepository) CreateIfNew(ctx context.Context, alert models.SpendingAlert, periodStart time.Time) (bool, error) {
	cmd, err := r.db.Exec(ctx,
		`INSERT INTO spending_alerts (id, user_id, category, period, severity, message)
		 SELECT $1, $2, $3, $4, $5, $6
		 WHERE NOT EXISTS (
			SELECT 1 FROM spending_alerts
			WHERE user_id = $2
			  AND category = $3
			  AND severity = $5
			  AND NOT is_read
			  AND created_at >= $7
		 )`,
		alert.ID, alert.UserID, alert.Category, alert.Period, alert.Severity, alert.Message, periodStart,
	)
	if err != nil {
		return false, err
	}

	return cmd.RowsAffected() == 1, nil
}

// ListByUser возвращает алерты пользователя, новые первыми.
func (r *AlertRepository) ListByUser(ctx context.Context, userID uuid.UUID, includeRead bool) ([]models.SpendingAlert, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, category, period, severity, message, is_read, created_at
		 FROM spending_alerts
		 WHERE user_id = $1 AND ($2 OR NOT is_read)
		 ORDER BY created_at DESC`,
		userID, includeRead,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	alerts := make([]models.SpendingAlert, 0)
	for rows.Next() {
		var alert models.SpendingAlert

		err := rows.Scan(&alert.ID, &alert.UserID, &alert.Category, &alert.Period, &alert.Severity, &alert.Message, &alert.IsRead, &alert.CreatedAt)
		if err != nil {
			return nil, err
		}

		alerts = append(alerts, alert)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return alerts, nil
}

// MarkRead помечает алерт прочитанным. Повторный вызов ничего не меняет.
func (r *AlertRepository) MarkRead(ctx context.Context, userID, alertID uuid.UUID) error {
	cmd, err := r.db.Exec(ctx,
		`UPDATE spending_alerts
		 SET is_read = TRUE
		 WHERE id = $1 AND user_id = $2`,
		alertID, userID,
	)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// MarkAllRead помечает все алерты пользователя прочитанными.
func (r *AlertRepository) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.Exec(ctx,
		`UPDATE spending_alerts
		 SET is_read = TRUE
		 WHERE user_id = $1 AND NOT is_read`,
		userID,
	)
	return err
}
