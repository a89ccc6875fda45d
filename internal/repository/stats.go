package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/moneyquest/backend/internal/models"
)

// StatsRepository хранит счетчики геймификации и бейджи пользователя.
type StatsRepository struct {
	db *pgxpool.Pool
}

// NewStatsRepository создает репозиторий статистики пользователя.
func NewStatsRepository(db *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{db: db}
}

const userStatsColumns = `user_id, xp, level, streak, longest_streak, last_tracked_on,
	 transaction_count, total_saved_cents, goals_created, goals_completed, lessons_completed, updated_at`

// GetOrCreate возвращает статистику пользователя, создавая пустую при первом обращении.
func (r *StatsRepository) GetOrCreate(ctx context.Context, userID uuid.UUID) (models.UserStats, error) {
	_, err := r.db.Exec(ctx,
		`INSERT INTO user_stats (user_id)
		 VALUES ($1)
		 ON CONFLICT (user_id) DO NOTHING`,
		userID,
	)
	if err != nil {
		return models.UserStats{}, err
	}

	return r.scanStats(r.db.QueryRow(ctx,
		`SELECT `+userStatsColumns+`
		 FROM user_stats
		 WHERE user_id = $1`,
		userID,
	))
}

// AddXP атомарно прибавляет XP и возвращает обновленную статистику.
func (r *StatsRepository) AddXP(ctx context.Context, userID uuid.UUID, amount int64) (models.UserStats, error) {
	return r.scanStats(r.db.QueryRow(ctx,
		`INSERT INTO user_stats (user_id, xp)
		 VALUES ($1, $2)
		 ON CONFLICT (user_id) DO UPDATE
		 SET xp = user_stats.xp + EXCLUDED.xp,
		     updated_at = NOW()
		 RETURNING `+userStatsColumns,
		userID, amount,
	))
}

// SetLevel записывает пересчитанный уровень.
func (r *StatsRepository) SetLevel(ctx context.Context, userID uuid.UUID, level int) error {
	cmd, err := r.db.Exec(ctx,
		`UPDATE user_stats
		 SET level = $2, updated_at = NOW()
		 WHERE user_id = $1`,
		userID, level,
	)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// SetStreak записывает серию, ее максимум и день последнего трекинга.
func (r *StatsRepository) SetStreak(ctx context.Context, userID uuid.UUID, streak, longest int, trackedOn time.Time) error {
	cmd, err := r.db.Exec(ctx,
		`UPDATE user_stats
		 SET streak = $2,
		     longest_streak = $3,
		     last_tracked_on = $4,
		     updated_at = NOW()
		 WHERE user_id = $1`,
		userID, streak, longest, trackedOn,
	)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// IncrementTransactionCount увеличивает счетчик транзакций.
func (r *StatsRepository) IncrementTransactionCount(ctx context.Context, userID uuid.UUID) error {
	return r.bump(ctx, userID, "transaction_count", 1)
}

// AddSavedCents прибавляет сумму к накоплениям.
func (r *StatsRepository) AddSavedCents(ctx context.Context, userID uuid.UUID, amountCents int64) error {
	return r.bump(ctx, userID, "total_saved_cents", amountCents)
}

// IncrementGoalsCreated увеличивает счетчик созданных целей.
func (r *StatsRepository) IncrementGoalsCreated(ctx context.Context, userID uuid.UUID) error {
	return r.bump(ctx, userID, "goals_created", 1)
}

// IncrementGoalsCompleted увеличивает счетчик завершенных целей.
func (r *StatsRepository) IncrementGoalsCompleted(ctx context.Context, userID uuid.UUID) error {
	return r.bump(ctx, userID, "goals_completed", 1)
}

// IncrementLessonsCompleted увеличивает счетчик пройденных уроков.
func (r *StatsRepository) IncrementLessonsCompleted(ctx context.Context, userID uuid.UUID) error {
	return r.bump(ctx, userID, "lessons_completed", 1)
}

// UnlockBadge открывает бейдж. Возвращает false, если бейдж уже был открыт.
func (r *StatsRepository) UnlockBadge(ctx context.Context, userID uuid.UUID, badgeID string) (bool, error) {
	cmd, err := r.db.Exec(ctx,
		`INSERT INTO user_badges (user_id, badge_id)
		 VALUES ($1, $2)
		 ON CONFLICT (user_id, badge_id) DO NOTHING`,
		userID, badgeID,
	)
	if err != nil {
		return false, err
	}

	return cmd.RowsAffected() == 1, nil
}

// ListBadges возвращает открытые бейджи пользователя.
func (r *StatsRepository) ListBadges(ctx context.Context, userID uuid.UUID) ([]models.UserBadge, error) {
	rows, err := r.db.Query(ctx,
		`SELECT user_id, badge_id, unlocked_at
		 FROM user_badges
		 WHERE user_id = $1
		 ORDER BY unlocked_at`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	badges := make([]models.UserBadge, 0)
	for rows.Next() {
		var badge models.UserBadge

		if err := rows.Scan(&badge.UserID, &badge.BadgeID, &badge.UnlockedAt); err != nil {
			return nil, err
		}

		badges = append(badges, badge)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return badges, nil
}

// bump увеличивает числовой счетчик; колонка задается кодом, не вводом пользователя.
func (r *StatsRepository) bump(ctx context.Context, userID uuid.UUID, column string, delta int64) error {
	if _, err := r.GetOrCreate(ctx, userID); err != nil {
		return err
	}

	_, err := r.db.Exec(ctx,
		`UPDATE user_stats
		 SET `+column+` = `+column+` + $2,
		     updated_at = NOW()
		 WHERE user_id = $1`,
		userID, delta,
	)
	return err
}

func (r *StatsRepository) scanStats(row interface{ Scan(dest ...interface{}) error }) (models.UserStats, error) {
	var stats models.UserStats
	var lastTrackedOn *time.Time

	err := row.Scan(&stats.UserID, &stats.XP, &stats.Level, &stats.Streak, &stats.LongestStreak, &lastTrackedOn,
		&stats.TransactionCount, &stats.TotalSavedCents, &stats.GoalsCreated, &stats.GoalsCompleted, &stats.LessonsCompleted, &stats.UpdatedAt)
	if err != nil {
		return stats, err
	}

	stats.LastTrackedOn = lastTrackedOn
	return stats, nil
}
