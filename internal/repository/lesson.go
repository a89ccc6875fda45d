package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/moneyquest/backend/internal/models"
)

type LessonRepository struct {
	db *pgxpool.Pool
}

// NewLessonRepository создает репозиторий прохождений уроков.
func NewLessonRepository(db *pgxpool.Pool) *LessonRepository {
	return &LessonRepository{db: db}
}

// Create фиксирует прохождение урока. Повторное прохождение возвращает ErrConflict.
func (r *LessonRepository) Create(ctx context.Context, userID uuid.UUID, worldID, lessonID, stars int) (models.LessonCompletion, error) {
	var completion models.LessonCompletion

	err := r.db.QueryRow(ctx,
		`INSERT INTO lesson_completions (id, user_id, world_id, lesson_id, stars)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, user_id, world_id, lesson_id, stars, completed_at`,
		uuid.New(), userID, worldID, lessonID, stars,
	).Scan(&completion.ID, &completion.UserID, &completion.WorldID, &completion.LessonID, &completion.Stars, &completion.CompletedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return completion, ErrConflict
		}
		return completion, err
	}

	return completion, nil
}

// CountByWorld считает пройденные уроки мира.
func (r *LessonRepository) CountByWorld(ctx context.Context, userID uuid.UUID, worldID int) (int, error) {
	var count int

	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*)
		 FROM lesson_completions
		 WHERE user_id = $1 AND world_id = $2`,
		userID, worldID,
	).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}

// GetByLesson возвращает прохождение конкретного урока.
func (r *LessonRepository) GetByLesson(ctx context.Context, userID uuid.UUID, worldID, lessonID int) (models.LessonCompletion, error) {
	var completion models.LessonCompletion

	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, world_id, lesson_id, stars, completed_at
		 FROM lesson_completions
		 WHERE user_id = $1 AND world_id = $2 AND lesson_id = $3`,
		userID, worldID, lessonID,
	).Scan(&completion.ID, &completion.UserID, &completion.WorldID, &completion.LessonID, &completion.Stars, &completion.CompletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return completion, ErrNotFound
		}
		return completion, err
	}

	return completion, nil
}
