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

type ChallengeRepository struct {
	db *pgxpool.Pool
}

// NewChallengeRepository создает репозиторий челленджей.
func NewChallengeRepository(db *pgxpool.Pool) *ChallengeRepository {
	return &ChallengeRepository{db: db}
}

// ActiveDefinitionIDs возвращает идентификаторы определений с активным окном на момент now.
func (r *ChallengeRepository) ActiveDefinitionIDs(ctx context.Context, now time.Time) ([]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT DISTINCT definition_id
		 FROM challenges
		 WHERE is_active AND start_date <= $1 AND end_date >= $1`,
		now,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ids, nil
}

// ListActiveByPeriod возвращает активные экземпляры периода на момент now.
func (r *ChallengeRepository) ListActiveByPeriod(ctx context.Context, period models.BudgetPeriod, now time.Time) ([]models.Challenge, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, definition_id, period, start_date, end_date, is_active, created_at
		 FROM challenges
		 WHERE period = $1 AND is_active AND start_date <= $2 AND end_date >= $2
		 ORDER BY definition_id`,
		period, now,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	instances := make([]models.Challenge, 0)
	for rows.Next() {
		var instance models.Challenge

		err := rows.Scan(&instance.ID, &instance.DefinitionID, &instance.Period, &instance.StartDate, &instance.EndDate, &instance.IsActive, &instance.CreatedAt)
		if err != nil {
			return nil, err
		}

		instances = append(instances, instance)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return instances, nil
}

// HasActiveWindow проверяет, существуют ли активные экземпляры периода с данным началом окна.
func (r *ChallengeRepository) HasActiveWindow(ctx context.Context, period models.BudgetPeriod, start time.Time) (bool, error) {
	var exists bool

	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM challenges
			WHERE period = $1 AND is_active AND start_date = $2
		 )`,
		period, start,
	).Scan(&exists)
	if err != nil {
		return false, err
	}

	return exists, nil
}

// DeactivateLapsed гасит активные экземпляры периода с истекшим окном.
func (r *ChallengeRepository) DeactivateLapsed(ctx context.Context, period models.BudgetPeriod, now time.Time) error {
	_, err := r.db.Exec(ctx,
		`UPDATE challenges
		 SET is_active = FALSE
		 WHERE period = $1 AND is_active AND end_date < $2`,
		period, now,
	)
	return err
}

// CreateInstance сохраняет экземпляр челленджа на окно периода.
func (r *ChallengeRepository) CreateInstance(ctx context.Context, instance models.Challenge) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO challenges (id, definition_id, period, start_date, end_date, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		instance.ID, instance.DefinitionID, instance.Period, instance.StartDate, instance.EndDate, instance.IsActive,
	)
	return err
}

// EnsureUserChallenge лениво создает запись прогресса. Существующую не трогает.
func (r *ChallengeRepository) EnsureUserChallenge(ctx context.Context, userID uuid.UUID, definitionID string, target int64) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO user_challenges (id, user_id, definition_id, progress, target)
		 VALUES ($1, $2, $3, 0, $4)
		 ON CONFLICT (user_id, definition_id) DO NOTHING`,
		uuid.New(), userID, definitionID, target,
	)
	return err
}

// ResetUserProgress обнуляет прогресс всех пользователей по определению.
// Вызывается при ротации окна; незабранные награды прошлого окна сгорают.
func (r *ChallengeRepository) ResetUserProgress(ctx context.Context, definitionID string, target int64) error {
	_, err := r.db.Exec(ctx,
		`UPDATE user_challenges
		 SET progress = 0, target = $2, is_completed = FALSE, completed_at = NULL, claimed_reward = FALSE
		 WHERE definition_id = $1`,
		definitionID, target,
	)
	return err
}

// ListOpenByUser возвращает незавершенные записи прогресса пользователя.
func (r *ChallengeRepository) ListOpenByUser(ctx context.Context, userID uuid.UUID) ([]models.UserChallenge, error) {
	return r.listUserChallenges(ctx,
		`SELECT id, user_id, definition_id, progress, target, is_completed, completed_at, claimed_reward, created_at
		 FROM user_challenges
		 WHERE user_id = $1 AND NOT is_completed
		 ORDER BY definition_id`,
		userID,
	)
}

// ListByUser возвращает все записи прогресса пользователя.
func (r *ChallengeRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.UserChallenge, error) {
	return r.listUserChallenges(ctx,
		`SELECT id, user_id, definition_id, progress, target, is_completed, completed_at, claimed_reward, created_at
		 FROM user_challenges
		 WHERE user_id = $1
		 ORDER BY definition_id`,
		userID,
	)
}

// GetUserChallenge возвращает запись прогресса пользователя по идентификатору.
func (r *ChallengeRepository) GetUserChallenge(ctx context.Context, userID, id uuid.UUID) (models.UserChallenge, error) {
	var uc models.UserChallenge
	var completedAt *time.Time

	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, definition_id, progress, target, is_completed, completed_at, claimed_reward, created_at
		 FROM user_challenges
		 WHERE id = $1 AND user_id = $2`,
		id, userID,
	).Scan(&uc.ID, &uc.UserID, &uc.DefinitionID, &uc.Progress, &uc.Target, &uc.IsCompleted, &completedAt, &uc.ClaimedReward, &uc.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uc, ErrNotFound
		}
		return uc, err
	}

	uc.CompletedAt = completedAt
	return uc, nil
}

// UpdateProgress записывает новый прогресс. Флаг завершения односторонний:
// completed_at ставится только на переходе и дальше не перезаписывается.
func (r *ChallengeRepository) UpdateProgress(ctx context.Context, id uuid.UUID, progress int64, completed bool) error {
	cmd, err := r.db.Exec(ctx,
		`UPDATE user_challenges
		 SET progress = $2,
		     is_completed = is_completed OR $3,
		     completed_at = CASE WHEN NOT is_completed AND $3 THEN NOW() ELSE completed_at END
		 WHERE id = $1`,
		id, progress, completed,
	)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// claimGate решает, можно ли выдать награду по состоянию записи прогресса.
func claimGate(isCompleted, claimedReward bool) error {
	if !isCompleted {
		return ErrNotCompleted
	}
	if claimedReward {
		return ErrAlreadyClaimed
	}
	return nil
}

// ClaimReward в одной транзакции помечает награду полученной и пишет начисление XP в outbox.
func (r *ChallengeRepository) ClaimReward(ctx context.Context, userID, id uuid.UUID, xpAmount int64, reason string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var isCompleted, claimedReward bool
	err = tx.QueryRow(ctx,
		`SELECT is_completed, claimed_reward
		 FROM user_challenges
		 WHERE id = $1 AND user_id = $2
		 FOR UPDATE`,
		id, userID,
	).Scan(&isCompleted, &claimedReward)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	if err := claimGate(isCompleted, claimedReward); err != nil {
		return err
	}

	_, err = tx.Exec(ctx,
		`UPDATE user_challenges
		 SET claimed_reward = TRUE
		 WHERE id = $1`,
		id,
	)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO xp_outbox (id, user_id, amount, reason, status)
		 VALUES ($1, $2, $3, $4, $5)`,
		uuid.New(), userID, xpAmount, reason, models.OutboxStatusPending,
	)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// CountByUser возвращает число завершенных и незаклейменных челленджей.
func (r *ChallengeRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int, int, error) {
	var completed, unclaimed int

	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FILTER (WHERE is_completed),
		        COUNT(*) FILTER (WHERE is_completed AND NOT claimed_reward)
		 FROM user_challenges
		 WHERE user_id = $1`,
		userID,
	).Scan(&completed, &unclaimed)
	if err != nil {
		return 0, 0, err
	}

	return completed, unclaimed, nil
}

func (r *ChallengeRepository) listUserChallenges(ctx context.Context, query string, args ...interface{}) ([]models.UserChallenge, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	challenges := make([]models.UserChallenge, 0)
	for rows.Next() {
		var uc models.UserChallenge
		var completedAt *time.Time

		err := rows.Scan(&uc.ID, &uc.UserID, &uc.DefinitionID, &uc.Progress, &uc.Target, &uc.IsCompleted, &completedAt, &uc.ClaimedReward, &uc.CreatedAt)
		if err != nil {
			return nil, err
		}

		uc.CompletedAt = completedAt
		challenges = append(challenges, uc)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return challenges, nil
}
