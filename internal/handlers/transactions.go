package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"example.com/moneyquest/backend/internal/auth"
	"example.com/moneyquest/backend/internal/budget"
	"example.com/moneyquest/backend/internal/challenges"
	"example.com/moneyquest/backend/internal/gamification"
	"example.com/moneyquest/backend/internal/models"
	"example.com/moneyquest/backend/internal/repository"
)

type TransactionHandler struct {
	Repo         *repository.TransactionRepository
	Budget       *budget.Engine
	Alerts       *budget.AlertEmitter
	Challenges   *challenges.Engine
	Gamification *gamification.Engine
	Logger       *slog.Logger
}

// NewTransactionHandler создает обработчик транзакций.
func NewTransactionHandler(
	repo *repository.TransactionRepository,
	budgetEngine *budget.Engine,
	alerts *budget.AlertEmitter,
	challengeEngine *challenges.Engine,
	gamificationEngine *gamification.Engine,
	logger *slog.Logger,
) *TransactionHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &TransactionHandler{
		Repo:         repo,
		Budget:       budgetEngine,
		Alerts:       alerts,
		Challenges:   challengeEngine,
		Gamification: gamificationEngine,
		Logger:       logger,
	}
}

type CreateTransactionRequest struct {
	Type        string     `json:"type" validate:"required,oneof=income expense"`
	AmountCents int64      `json:"amount_cents" validate:"required,gt=0"`
	Category    string     `json:"category" validate:"required,max=50"`
	Emoji       string     `json:"emoji" validate:"omitempty,max=8"`
	Description string     `json:"description" validate:"omitempty,max=255"`
	OccurredAt  *time.Time `json:"occurred_at"`
}

type TransactionResponse struct {
	Transaction models.Transaction `json:"transaction"`
	XPAwarded   int64              `json:"xp_awarded"`
	Streak      int                `json:"streak"`
}

type TransactionsResponse struct {
	Transactions []models.Transaction `json:"transactions"`
}

// Create записывает транзакцию и запускает сопутствующие начисления:
// XP, серию дней, прогресс челленджей и проверку бюджетных лимитов.
func (h *TransactionHandler) Create(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req CreateTransactionRequest
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

	occurredAt := time.Now()
	if req.OccurredAt != nil {
		occurredAt = *req.OccurredAt
	}

	ctx := c.Request().Context()
	transaction, err := h.Repo.Create(ctx, userID, models.TransactionType(req.Type), req.AmountCents, category, strings.TrimSpace(req.Emoji), strings.TrimSpace(req.Description), occurredAt)
	if err != nil {
		return serverError(c)
	}

	streak := h.applyRewards(c, userID)

	if transaction.Type == models.TransactionTypeExpense {
		h.checkBudget(c, userID, category, transaction.AmountCents)
	}

	return c.JSON(http.StatusCreated, TransactionResponse{
		Transaction: transaction,
		XPAwarded:   gamification.XPTransactionLogged,
		Streak:      streak,
	})
}

// List возвращает транзакции пользователя с фильтрами по типу, категории и датам.
func (h *TransactionHandler) List(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	filter, err := parseTransactionFilter(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	transactions, err := h.Repo.ListByUser(c.Request().Context(), userID, filter)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, TransactionsResponse{Transactions: transactions})
}

// Delete удаляет транзакцию и пересчитывает статус бюджета ее категории.
// Уже выданные алерты и XP не отзываются.
func (h *TransactionHandler) Delete(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid transaction id")
	}

	deleted, err := h.Repo.Delete(c.Request().Context(), userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "transaction not found")
		}
		return serverError(c)
	}

	if deleted.Type == models.TransactionTypeExpense {
		if err := h.Alerts.CheckCategory(c.Request().Context(), userID, deleted.Category); err != nil {
			h.Logger.Warn("budget check failed", slog.String("category", deleted.Category), slog.String("error", err.Error()))
		}
	}

	return c.NoContent(http.StatusNoContent)
}

// applyRewards начисляет XP и продвигает серию и счетчики челленджей.
// Ошибки побочных начислений не валят запрос, транзакция уже записана.
func (h *TransactionHandler) applyRewards(c echo.Context, userID uuid.UUID) int {
	ctx := c.Request().Context()

	if err := h.Gamification.TrackTransaction(ctx, userID); err != nil {
		h.Logger.Warn("transaction stats failed", slog.String("error", err.Error()))
	}

	streak, err := h.Gamification.RecordActivity(ctx, userID, time.Now())
	if err != nil {
		h.Logger.Warn("streak update failed", slog.String("error", err.Error()))
	}

	if _, err := h.Gamification.AwardXP(ctx, userID, gamification.XPTransactionLogged, "transaction"); err != nil {
		h.Logger.Warn("xp award failed", slog.String("error", err.Error()))
	}

	if err := h.Challenges.UpdateProgress(ctx, userID, models.ChallengeTypeTransactions, 0); err != nil {
		h.Logger.Warn("challenge progress failed", slog.String("error", err.Error()))
	}

	return streak
}

// checkBudget выпускает алерты по категории и засчитывает расход
// в челленджи типа budget, если ни один лимит категории не превышен.
func (h *TransactionHandler) checkBudget(c echo.Context, userID uuid.UUID, category string, amountCents int64) {
	ctx := c.Request().Context()

	if err := h.Alerts.CheckCategory(ctx, userID, category); err != nil {
		h.Logger.Warn("budget check failed", slog.String("category", category), slog.String("error", err.Error()))
		return
	}

	statuses, err := h.Budget.CategoryStatuses(ctx, userID, category)
	if err != nil {
		h.Logger.Warn("budget status failed", slog.String("category", category), slog.String("error", err.Error()))
		return
	}

	if len(statuses) == 0 {
		return
	}

	for _, status := range statuses {
		if status.Status == models.SeverityExceeded {
			return
		}
	}

	if err := h.Challenges.UpdateProgress(ctx, userID, models.ChallengeTypeBudget, amountCents); err != nil {
		h.Logger.Warn("challenge progress failed", slog.String("error", err.Error()))
	}
}

func parseTransactionFilter(c echo.Context) (repository.TransactionFilter, error) {
	filter := repository.TransactionFilter{}

	if raw := strings.TrimSpace(c.QueryParam("type")); raw != "" {
		if raw != string(models.TransactionTypeIncome) && raw != string(models.TransactionTypeExpense) {
			return filter, errors.New("invalid type")
		}
		filter.Type = models.TransactionType(raw)
	}

	filter.Category = strings.ToLower(strings.TrimSpace(c.QueryParam("category")))

	if raw := strings.TrimSpace(c.QueryParam("from")); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, errors.New("invalid from")
		}
		filter.From = &parsed
	}

	if raw := strings.TrimSpace(c.QueryParam("to")); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, errors.New("invalid to")
		}
		filter.To = &parsed
	}

	return filter, nil
}
