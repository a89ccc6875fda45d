package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"example.com/moneyquest/backend/internal/auth"
	"example.com/moneyquest/backend/internal/gamification"
)

type GamificationHandler struct {
	Engine *gamification.Engine
}

// NewGamificationHandler создает обработчик профиля геймификации.
func NewGamificationHandler(engine *gamification.Engine) *GamificationHandler {
	return &GamificationHandler{Engine: engine}
}

// Profile возвращает XP, уровень, серию и бейджи пользователя.
func (h *GamificationHandler) Profile(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	profile, err := h.Engine.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, profile)
}
