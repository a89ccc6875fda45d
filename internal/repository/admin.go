package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AdminRepository struct {
	db *pgxpool.Pool
}

type AdminUser struct {
	ID        uuid.UUID
	Email     string
	Name      *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type DailyCount struct {
	Day   time.Time
	Count int
}

type UsageStats struct {
	Users             int
	Transactions      int
	Goals             int
	ActiveChallenges  int
	AlertsUnread      int
	TransactionsByDay []DailyCount
}

// NewAdminRepository создает репозиторий для админских запросов.
func NewAdminRepository(db *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{db: db}
}

// ListUsers возвращает список пользователей с пагинацией.
func (r *AdminRepository) ListUsers(ctx context.Context, limit, offset int) ([]AdminUser, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, email, name, created_at, updated_at
		 FROM users
		 ORDER BY created_at DESC
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]AdminUser, 0)
	for rows.Next() {
		var user AdminUser
		var name *string
		if err := rows.Scan(&user.ID, &user.Email, &name, &user.CreatedAt, &user.UpdatedAt); err != nil {
			return nil, err
		}
		user.Name = name
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

// CountUsers возвращает общее количество пользователей.
func (r *AdminRepository) CountUsers(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// Usage возвращает агрегированную статистику использования за N дней.
func (r *AdminRepository) Usage(ctx context.Context, days int) (UsageStats, error) {
	stats := UsageStats{}
	if days <= 0 {
		return stats, ErrInvalid
	}

	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&stats.Users); err != nil {
		return stats, err
	}

	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&stats.Transactions); err != nil {
		return stats, err
	}

	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM goals`).Scan(&stats.Goals); err != nil {
		return stats, err
	}

	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM challenges WHERE is_active`,
	).Scan(&stats.ActiveChallenges); err != nil {
		return stats, err
	}

	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM spending_alerts WHERE NOT is_read`,
	).Scan(&stats.AlertsUnread); err != nil {
		return stats, err
	}

	start := time.Now().UTC().AddDate(0, 0, -days+1)
	rows, err := r.db.Query(ctx,
		`SELECT date_trunc('day', created_at)::date AS day,
		        COUNT(*)
		 FROM transactions
		 WHERE created_at >= $1
		 GROUP BY day
		 ORDER BY day DESC`,
		start,
	)
	if err != nil {
		return stats, err
	}
	defer rows.Close()

	stats.TransactionsByDay = make([]DailyCount, 0)
	for rows.Next() {
		var row DailyCount
		if err := rows.Scan(&row.Day, &row.Count); err != nil {
			return stats, err
		}
		stats.TransactionsByDay = append(stats.TransactionsByDay, row)
	}

	if err := rows.Err(); err != nil {
		return stats, err
	}

	return stats, nil
}
