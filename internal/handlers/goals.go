package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"example.com/moneyquest/backend/internal/auth"
	"example.com/moneyquest/backend/internal/challenges"
	"example.com/moneyquest/backend/internal/gamification"
	"example.com/moneyquest/backend/internal/models"
	"example.com/moneyquest/backend/internal/repository"
)

type GoalHandler struct {
	Repo         *repository.GoalRepository
	Challenges   *challenges.Engine
	Gamification *gamification.Engine
	Logger       *slog.Logger
}

// NewGoalHandler создает обработчик целей накоплений.
func NewGoalHandler(repo *repository.GoalRepository, challengeEngine *challenges.Engine, gamificationEngine *gamification.Engine, logger *slog.Logger) *GoalHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &GoalHandler{
		Repo:         repo,
		Challenges:   challengeEngine,
		Gamification: gamificationEngine,
		Logger:       logger,
	}
}

type CreateGoalRequest struct {
	Title       string `json:"title" validate:"required,max=100"`
	Emoji       string `json:"emoji" validate:"omitempty,max=8"`
	TargetCents int64  `json:"target_cents" validate:"required,gt=0"`
}

type DepositRequest struct {
	AmountCents int64 `json:"amount_cents" validate:"required,gt=0"`
}

type GoalResponse struct {
	Goal      models.Goal `json:"goal"`
	XPAwarded int64       `json:"xp_awarded"`
}

type GoalsResponse struct {
	Goals []models.Goal `json:"goals"`
}

// Create создает цель и начисляет XP за нее.
func (h *GoalHandler) Create(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req CreateGoalRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return badRequest(c, "title is required")
	}

	ctx := c.Request().Context()
	goal, err := h.Repo.Create(ctx, userID, title, strings.TrimSpace(req.Emoji), req.TargetCents)
	if err != nil {
		return serverError(c)
	}

	if err := h.Gamification.TrackGoalCreated(ctx, userID); err != nil {
		h.Logger.Warn("goal stats failed", slog.String("error", err.Error()))
	}

	if _, err := h.Gamification.AwardXP(ctx, userID, gamification.XPGoalCreated, "goal_created"); err != nil {
		h.Logger.Warn("xp award failed", slog.String("error", err.Error()))
	}

	return c.JSON(http.StatusCreated, GoalResponse{Goal: goal, XPAwarded: gamification.XPGoalCreated})
}

// List возвращает цели пользователя.
func (h *GoalHandler) List(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	goals, err := h.Repo.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, GoalsResponse{Goals: goals})
}

// Deposit пополняет цель. Взнос идет в счет челленджей типа savings,
// а завершение цели дает бонусный XP и продвигает челленджи типа goals.
func (h *GoalHandler) Deposit(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	goalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid goal id")
	}

	var req DepositRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	ctx := c.Request().Context()
	goal, completedNow, err := h.Repo.Deposit(ctx, userID, goalID, req.AmountCents)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "goal not found")
		}
		return serverError(c)
	}

	if err := h.Gamification.TrackSavings(ctx, userID, req.AmountCents); err != nil {
		h.Logger.Warn("savings stats failed", slog.String("error", err.Error()))
	}

	if err := h.Challenges.UpdateProgress(ctx, userID, models.ChallengeTypeSavings, req.AmountCents); err != nil {
		h.Logger.Warn("challenge progress failed", slog.String("error", err.Error()))
	}

	var awarded int64
	if completedNow {
		awarded = gamification.XPGoalCompleted

		if err := h.Gamification.TrackGoalCompleted(ctx, userID); err != nil {
			h.Logger.Warn("goal stats failed", slog.String("error", err.Error()))
		}

		if _, err := h.Gamification.AwardXP(ctx, userID, gamification.XPGoalCompleted, "goal_completed"); err != nil {
			h.Logger.Warn("xp award failed", slog.String("error", err.Error()))
		}

		if err := h.Challenges.UpdateProgress(ctx, userID, models.ChallengeTypeGoals, 0); err != nil {
			h.Logger.Warn("challenge progress failed", slog.String("error", err.Error()))
		}
	}

	return c.JSON(http.StatusOK, GoalResponse{Goal: goal, XPAwarded: awarded})
}

// Delete удаляет цель. Накопленный XP не отзывается.
func (h *GoalHandler) Delete(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	goalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid goal id")
	}

	if err := h.Repo.Delete(c.Request().Context(), userID, goalID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "goal not found")
		}
		return serverError(c)
	}

	return c.NoContent(http.StatusNoContent)
}
