package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"example.com/moneyquest/backend/internal/auth"
	"example.com/moneyquest/backend/internal/budget"
	"example.com/moneyquest/backend/internal/models"
	"example.com/moneyquest/backend/internal/repository"
)

type BudgetHandler struct {
	Repo   *repository.BudgetLimitRepository
	Engine *budget.Engine
}

// NewBudgetHandler создает обработчик бюджетных лимитов.
func NewBudgetHandler(repo *repository.BudgetLimitRepository, engine *budget.Engine) *BudgetHandler {
	return &BudgetHandler{Repo: repo, Engine: engine}
}

type UpsertBudgetRequest struct {
	Category       string `json:"category" validate:"required,max=50"`
	LimitCents     int64  `json:"limit_cents" validate:"required,gt=0"`
	Period         string `json:"period" validate:"required,oneof=weekly monthly"`
	AlertThreshold *int   `json:"alert_threshold" validate:"omitempty,min=0,max=100"`
}

type BudgetLimitResponse struct {
	Limit models.BudgetLimit `json:"limit"`
}

type BudgetOverviewResponse struct {
	Categories []budget.CategoryStatus `json:"categories"`
}

// Overview возвращает сводку трат по всем активным лимитам.
func (h *BudgetHandler) Overview(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	statuses, err := h.Engine.Overview(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, BudgetOverviewResponse{Categories: statuses})
}

// Upsert создает лимит или обновляет существующий для той же категории и периода.
func (h *BudgetHandler) Upsert(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req UpsertBudgetRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	category := strings.ToLower(strings.TrimSpace(req.Category))
	if category == "" {
		return badRequest(c, "category is required")
	}

	threshold := 80
	if req.AlertThreshold != nil {
		threshold = *req.AlertThreshold
	}

	limit, err := h.Repo.Upsert(c.Request().Context(), userID, category, req.LimitCents, models.BudgetPeriod(req.Period), threshold)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, BudgetLimitResponse{Limit: limit})
}

// Delete удаляет лимит.
func (h *BudgetHandler) Delete(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	limitID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid limit id")
	}

	if err := h.Repo.Delete(c.Request().Context(), userID, limitID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "limit not found")
		}
		return serverError(c)
	}

	return c.NoContent(http.StatusNoContent)
}

// Toggle включает или выключает лимит.
func (h *BudgetHandler) Toggle(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	limitID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid limit id")
	}

	limit, err := h.Repo.Toggle(c.Request().Context(), userID, limitID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "limit not found")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusOK, BudgetLimitResponse{Limit: limit})
}
