package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"example.com/moneyquest/backend/internal/auth"
	"example.com/moneyquest/backend/internal/challenges"
	"example.com/moneyquest/backend/internal/gamification"
	"example.com/moneyquest/backend/internal/models"
	"example.com/moneyquest/backend/internal/repository"
)

// lessonsPerWorld задает число уроков в одном мире обучения.
const lessonsPerWorld = 5

type LessonHandler struct {
	Repo         *repository.LessonRepository
	Challenges   *challenges.Engine
	Gamification *gamification.Engine
	Logger       *slog.Logger
}

// NewLessonHandler создает обработчик уроков.
func NewLessonHandler(repo *repository.LessonRepository, challengeEngine *challenges.Engine, gamificationEngine *gamification.Engine, logger *slog.Logger) *LessonHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &LessonHandler{
		Repo:         repo,
		Challenges:   challengeEngine,
		Gamification: gamificationEngine,
		Logger:       logger,
	}
}

type CompleteLessonRequest struct {
	WorldID  int `json:"world_id" validate:"required,min=1,max=20"`
	LessonID int `json:"lesson_id" validate:"required,min=1,max=5"`
	Stars    int `json:"stars" validate:"required,min=1,max=3"`
}

type LessonResponse struct {
	Completion     models.LessonCompletion `json:"completion"`
	XPAwarded      int64                   `json:"xp_awarded"`
	WorldCompleted bool                    `json:"world_completed"`
}

// Complete фиксирует прохождение урока. Повторное прохождение того же
// урока возвращает конфликт и ничего не начисляет.
func (h *LessonHandler) Complete(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req CompleteLessonRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	ctx := c.Request().Context()
	completion, err := h.Repo.Create(ctx, userID, req.WorldID, req.LessonID, req.Stars)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return conflict(c, "lesson already completed")
		}
		return serverError(c)
	}

	awarded := gamification.XPLessonBase + gamification.XPLessonPerStar*int64(req.Stars)

	if err := h.Gamification.TrackLesson(ctx, userID); err != nil {
		h.Logger.Warn("lesson stats failed", slog.String("error", err.Error()))
	}

	if _, err := h.Gamification.AwardXP(ctx, userID, awarded, "lesson"); err != nil {
		h.Logger.Warn("xp award failed", slog.String("error", err.Error()))
	}

	if err := h.Challenges.UpdateProgress(ctx, userID, models.ChallengeTypeLessons, 0); err != nil {
		h.Logger.Warn("challenge progress failed", slog.String("error", err.Error()))
	}

	worldCompleted := false
	count, err := h.Repo.CountByWorld(ctx, userID, req.WorldID)
	if err != nil {
		h.Logger.Warn("world count failed", slog.String("error", err.Error()))
	} else if count >= lessonsPerWorld {
		worldCompleted = true

		if err := h.Challenges.UpdateProgress(ctx, userID, models.ChallengeTypeWorlds, 0); err != nil {
			h.Logger.Warn("challenge progress failed", slog.String("error", err.Error()))
		}
	}

	return c.JSON(http.StatusCreated, LessonResponse{
		Completion:     completion,
		XPAwarded:      awarded,
		WorldCompleted: worldCompleted,
	})
}
