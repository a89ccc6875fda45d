package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/moneyquest/backend/internal/models"
)

type GoalRepository struct {
	db *pgxpool.Pool
}

// NewGoalRepository создает репозиторий целей накоплений.
func NewGoalRepository(db *pgxpool.Pool) *GoalRepository {
	return &GoalRepository{db: db}
}

// Create сохраняет новую цель.
func (r *GoalRepository) Create(ctx context.Context, userID uuid.UUID, title, emoji string, targetCents int64) (models.Goal, error) {
	var goal models.Goal
	var completedAt *time.Time

	err := r.db.QueryRow(ctx,
		`INSERT INTO goals (id, user_id, title, emoji, target_cents)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, user_id, title, emoji, target_cents, saved_cents, is_completed, completed_at, created_at`,
		uuid.New(), userID, title, emoji, targetCents,
	).Scan(&goal.ID, &goal.UserID, &goal.Title, &goal.Emoji, &goal.TargetCents, &goal.SavedCents, &goal.IsCompleted, &completedAt, &goal.CreatedAt)
	if err != nil {
		return goal, err
	}

	goal.CompletedAt = completedAt
	return goal, nil
}

// ListByUser возвращает цели пользователя, новые первыми.
func (r *GoalRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Goal, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, title, emoji, target_cents, saved_cents, is_completed, completed_at, created_at
		 FROM goals
		 WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	goals := make([]models.Goal, 0)
	for rows.Next() {
		var goal models.Goal
		var completedAt *time.Time

		err := rows.Scan(&goal.ID, &goal.UserID, &goal.Title, &goal.Emoji, &goal.TargetCents, &goal.SavedCents, &goal.IsCompleted, &completedAt, &goal.CreatedAt)
		if err != nil {
			return nil, err
		}

		goal.CompletedAt = completedAt
		goals = append(goals, goal)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return goals, nil
}

// Deposit прибавляет взнос к цели в одной транзакции.
// Возвращает обновленную цель и признак, что цель завершилась этим взносом.
func (r *GoalRepository) Deposit(ctx context.Context, userID, goalID uuid.UUID, amountCents int64) (models.Goal, bool, error) {
	var goal models.Goal

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return goal, false, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var wasCompleted bool
	err = tx.QueryRow(ctx,
		`SELECT is_completed
		 FROM goals
		 WHERE id = $1 AND user_id = $2
		 FOR UPDATE`,
		goalID, userID,
	).Scan(&wasCompleted)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return goal, false, ErrNotFound
		}
		return goal, false, err
	}

	var completedAt *time.Time
	err = tx.QueryRow(ctx,
		`UPDATE goals
		 SET saved_cents = saved_cents + $3,
		     is_completed = is_completed OR saved_cents + $3 >= target_cents,
		     completed_at = CASE
			WHEN NOT is_completed AND saved_cents + $3 >= target_cents THEN NOW()
			ELSE completed_at
		     END
		 WHERE id = $1 AND user_id = $2
		 RETURNING id, user_id, title, emoji, target_cents, saved_cents, is_completed, completed_at, created_at`,
		goalID, userID, amountCents,
	).Scan(&goal.ID, &goal.UserID, &goal.Title, &goal.Emoji, &goal.TargetCents, &goal.SavedCents, &goal.IsCompleted, &completedAt, &goal.CreatedAt)
	if err != nil {
		return goal, false, err
	}

	goal.CompletedAt = completedAt

	if err := tx.Commit(ctx); err != nil {
		return goal, false, err
	}

	return goal, goal.IsCompleted && !wasCompleted, nil
}

// Delete удаляет цель пользователя.
func (r *GoalRepository) Delete(ctx context.Context, userID, goalID uuid.UUID) error {
	cmd, err := r.db.Exec(ctx,
		`DELETE FROM goals
		 WHERE id = $1 AND user_id = $2`,
		goalID, userID,
	)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
