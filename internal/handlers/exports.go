package handlers

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"example.com/moneyquest/backend/internal/auth"
	"example.com/moneyquest/backend/internal/models"
)

const timeLayout = time.RFC3339

// ExportJSON выгружает транзакции пользователя в JSON-файл.
// Поддерживает те же фильтры, что и List.
func (h *TransactionHandler) ExportJSON(c echo.Context) error {
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

	filename := "transactions-" + time.Now().Format("2006-01-02") + ".json"
	c.Response().Header().Set(echo.HeaderContentType, "application/json")
	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename=\""+filename+"\"")
	return c.JSON(http.StatusOK, TransactionsResponse{Transactions: transactions})
}

// ExportCSV выгружает транзакции пользователя в CSV-файл.
func (h *TransactionHandler) ExportCSV(c echo.Context) error {
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

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writeTransactionsCSV(writer, transactions); err != nil {
		return serverError(c)
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return serverError(c)
	}

	filename := "transactions-" + time.Now().Format("2006-01-02") + ".csv"
	c.Response().Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename=\""+filename+"\"")
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func writeTransactionsCSV(writer *csv.Writer, transactions []models.Transaction) error {
	header := []string{
		"id",
		"type",
		"amount_cents",
		"category",
		"emoji",
		"description",
		"occurred_at",
		"created_at",
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, transaction := range transactions {
		record := []string{
			transaction.ID.String(),
			string(transaction.Type),
			formatInt64(transaction.AmountCents),
			transaction.Category,
			transaction.Emoji,
			transaction.Description,
			transaction.OccurredAt.Format(timeLayout),
			transaction.CreatedAt.Format(timeLayout),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	return nil
}

func formatInt64(value int64) string {
	return strconv.FormatInt(value, 10)
}
