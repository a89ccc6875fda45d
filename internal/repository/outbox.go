package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/moneyquest/backend/internal/models"
)

type OutboxRepository struct {
	db *pgxpool.Pool
}

// NewOutboxRepository создает репозиторий отложенных начислений XP.
func NewOutboxRepository(db *pgxpool.Pool) *OutboxRepository {
	return &OutboxRepository{db: db}
}

// ListPending возвращает необработанные записи, старые первыми.
// Воркер один на процесс; при повторе начисление не теряется, но может задвоиться.
func (r *OutboxRepository) ListPending(ctx context.Context, limit int) ([]models.XPOutboxEntry, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, amount, reason, status, created_at, processed_at
		 FROM xp_outbox
		 WHERE status = $1
		 ORDER BY created_at
		 LIMIT $2`,
		models.OutboxStatusPending, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]models.XPOutboxEntry, 0)
	for rows.Next() {
		var entry models.XPOutboxEntry
		var processedAt *time.Time

		err := rows.Scan(&entry.ID, &entry.UserID, &entry.Amount, &entry.Reason, &entry.Status, &entry.CreatedAt, &processedAt)
		if err != nil {
			return nil, err
		}

		entry.ProcessedAt = processedAt
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// MarkDone помечает запись обработанной.
func (r *OutboxRepository) MarkDone(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.db.Exec(ctx,
		`UPDATE xp_outbox
		 SET status = $2, processed_at = NOW()
		 WHERE id = $1`,
		id, models.OutboxStatusDone,
	)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
