package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"example.com/moneyquest/backend/internal/auth"
	"example.com/moneyquest/backend/internal/models"
	"example.com/moneyquest/backend/internal/repository"
)

type AlertHandler struct {
	Repo *repository.AlertRepository
}

// NewAlertHandler создает обработчик алертов по бюджету.
func NewAlertHandler(repo *repository.AlertRepository) *AlertHandler {
	return &AlertHandler{Repo: repo}
}

type AlertsResponse struct {
	Alerts []models.SpendingAlert `json:"alerts"`
}

// List возвращает алерты пользователя, по умолчанию только непрочитанные.
func (h *AlertHandler) List(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	includeRead := false
	if raw := strings.TrimSpace(c.QueryParam("include_read")); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return badRequest(c, "invalid include_read")
		}
		includeRead = parsed
	}

	alerts, err := h.Repo.ListByUser(c.Request().Context(), userID, includeRead)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, AlertsResponse{Alerts: alerts})
}

// MarkRead помечает алерт прочитанным.
func (h *AlertHandler) MarkRead(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	alertID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid alert id")
	}

	if err := h.Repo.MarkRead(c.Request().Context(), userID, alertID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "alert not found")
		}
		return serverError(c)
	}

	return c.NoContent(http.StatusNoContent)
}

// MarkAllRead помечает все алерты пользователя прочитанными.
func (h *AlertHandler) MarkAllRead(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	if err := h.Repo.MarkAllRead(c.Request().Context(), userID); err != nil {
		return serverError(c)
	}

	return c.NoContent(http.StatusNoContent)
}
