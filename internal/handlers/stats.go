package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"example.com/moneyquest/backend/internal/auth"
	"example.com/moneyquest/backend/internal/repository"
)

type StatsHandler struct {
	Transactions *repository.TransactionRepository
}

// NewStatsHandler создает обработчик сводной статистики трат.
func NewStatsHandler(transactions *repository.TransactionRepository) *StatsHandler {
	return &StatsHandler{Transactions: transactions}
}

type OverviewResponse struct {
	IncomeCents  int64 `json:"income_cents"`
	ExpenseCents int64 `json:"expense_cents"`
	NetCents     int64 `json:"net_cents"`
}

type CategorySpendingItem struct {
	Category   string `json:"category"`
	SpentCents int64  `json:"spent_cents"`
}

type CategorySpendingResponse struct {
	Categories []CategorySpendingItem `json:"categories"`
}

type MonthlyComparisonItem struct {
	Month        string `json:"month"`
	IncomeCents  int64  `json:"income_cents"`
	ExpenseCents int64  `json:"expense_cents"`
}

type MonthlyComparisonResponse struct {
	Months []MonthlyComparisonItem `json:"months"`
}

// Overview возвращает суммарные доходы и расходы пользователя.
func (h *StatsHandler) Overview(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	income, expense, err := h.Transactions.Totals(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, OverviewResponse{
		IncomeCents:  income,
		ExpenseCents: expense,
		NetCents:     income - expense,
	})
}

// SpendingByCategory возвращает расходы по категориям за интервал.
func (h *StatsHandler) SpendingByCategory(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var from, to *time.Time
	if raw := strings.TrimSpace(c.QueryParam("from")); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return badRequest(c, "invalid from")
		}
		from = &parsed
	}
	if raw := strings.TrimSpace(c.QueryParam("to")); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return badRequest(c, "invalid to")
		}
		to = &parsed
	}

	totals, err := h.Transactions.ExpensesByCategory(c.Request().Context(), userID, from, to)
	if err != nil {
		return serverError(c)
	}

	categories := make([]CategorySpendingItem, 0, len(totals))
	for _, total := range totals {
		categories = append(categories, CategorySpendingItem{
			Category:   total.Category,
			SpentCents: total.SpentCents,
		})
	}

	return c.JSON(http.StatusOK, CategorySpendingResponse{Categories: categories})
}

// MonthlyComparison возвращает доходы и расходы по месяцам.
func (h *StatsHandler) MonthlyComparison(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	months := 6
	if raw := strings.TrimSpace(c.QueryParam("months")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return badRequest(c, "invalid months")
		}
		if parsed > 24 {
			parsed = 24
		}
		months = parsed
	}

	totals, err := h.Transactions.MonthlyTotals(c.Request().Context(), userID, months)
	if err != nil {
		return serverError(c)
	}

	response := make([]MonthlyComparisonItem, 0, len(totals))
	for _, total := range totals {
		response = append(response, MonthlyComparisonItem{
			Month:        total.Month.Format("2006-01"),
			IncomeCents:  total.IncomeCents,
			ExpenseCents: total.ExpenseCents,
		})
	}

	return c.JSON(http.StatusOK, MonthlyComparisonResponse{Months: response})
}
