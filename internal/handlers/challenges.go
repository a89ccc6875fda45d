package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"example.com/moneyquest/backend/internal/auth"
	"example.com/moneyquest/backend/internal/challenges"
	"example.com/moneyquest/backend/internal/models"
	"example.com/moneyquest/backend/internal/repository"
)

type ChallengeHandler struct {
	Engine *challenges.Engine
}

// NewChallengeHandler создает обработчик челленджей.
func NewChallengeHandler(engine *challenges.Engine) *ChallengeHandler {
	return &ChallengeHandler{Engine: engine}
}

type ChallengesResponse struct {
	Challenges []challenges.ChallengeView `json:"challenges"`
}

type ClaimResponse struct {
	XPReward int64 `json:"xp_reward"`
}

// List возвращает активные челленджи пользователя.
// Параметр period сужает выдачу до weekly или monthly.
func (h *ChallengeHandler) List(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	ctx := c.Request().Context()
	periods := []models.BudgetPeriod{models.PeriodWeekly, models.PeriodMonthly}

	if raw := strings.TrimSpace(c.QueryParam("period")); raw != "" {
		if raw != string(models.PeriodWeekly) && raw != string(models.PeriodMonthly) {
			return badRequest(c, "invalid period")
		}
		periods = []models.BudgetPeriod{models.BudgetPeriod(raw)}
	}

	views := make([]challenges.ChallengeView, 0)
	for _, period := range periods {
		list, err := h.Engine.Active(ctx, userID, period)
		if err != nil {
			return serverError(c)
		}
		views = append(views, list...)
	}

	return c.JSON(http.StatusOK, ChallengesResponse{Challenges: views})
}

// Stats возвращает сводку по завершенным челленджам пользователя.
func (h *ChallengeHandler) Stats(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	stats, err := h.Engine.UserStats(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, stats)
}

// Claim забирает награду за завершенный челлендж.
// XP начисляется асинхронно через outbox.
func (h *ChallengeHandler) Claim(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	challengeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid challenge id")
	}

	reward, err := h.Engine.Claim(c.Request().Context(), userID, challengeID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return notFound(c, "challenge not found")
		case errors.Is(err, repository.ErrNotCompleted):
			return badRequest(c, "challenge not completed")
		case errors.Is(err, repository.ErrAlreadyClaimed):
			return conflict(c, "reward already claimed")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusOK, ClaimResponse{XPReward: reward})
}
