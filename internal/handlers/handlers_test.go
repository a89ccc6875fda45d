package handlers

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"example.com/moneyquest/backend/internal/models"
)

// TestNormalizeName проверяет обрезку пробелов и пустые имена.
func TestNormalizeName(t *testing.T) {
	name := "  Alex  "
	got := normalizeName(&name)
	if got == nil || *got != "Alex" {
		t.Fatalf("expected trimmed name, got %v", got)
	}

	empty := "   "
	if got := normalizeName(&empty); got != nil {
		t.Fatalf("expected nil for blank name, got %v", got)
	}

	if got := normalizeName(nil); got != nil {
		t.Fatalf("expected nil for nil name, got %v", got)
	}
}

// TestParseTransactionFilter проверяет разбор query-параметров фильтра.
func TestParseTransactionFilter(t *testing.T) {
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/?type=expense&category=Food&from=2024-03-01T00:00:00Z", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	filter, err := parseTransactionFilter(c)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if filter.Type != models.TransactionTypeExpense {
		t.Fatalf("expected expense type, got %q", filter.Type)
	}
	if filter.Category != "food" {
		t.Fatalf("expected lowercased category, got %q", filter.Category)
	}
	if filter.From == nil || !filter.From.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected from: %v", filter.From)
	}

	req = httptest.NewRequest(http.MethodGet, "/?type=transfer", nil)
	if _, err := parseTransactionFilter(e.NewContext(req, httptest.NewRecorder())); err == nil {
		t.Fatal("expected error for unknown type")
	}

	req = httptest.NewRequest(http.MethodGet, "/?from=yesterday", nil)
	if _, err := parseTransactionFilter(e.NewContext(req, httptest.NewRecorder())); err == nil {
		t.Fatal("expected error for malformed from")
	}
}

// TestWriteTransactionsCSV проверяет заголовок и строки выгрузки.
func TestWriteTransactionsCSV(t *testing.T) {
	occurred := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	transactions := []models.Transaction{
		{
			ID:          uuid.New(),
			Type:        models.TransactionTypeExpense,
			AmountCents: 1250,
			Category:    "food",
			Emoji:       "🍔",
			Description: "lunch",
			OccurredAt:  occurred,
			CreatedAt:   occurred,
		},
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writeTransactionsCSV(writer, transactions); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	writer.Flush()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header and one record, got %d lines", len(lines))
	}

	if !strings.HasPrefix(lines[0], "id,type,amount_cents") {
		t.Fatalf("unexpected header: %s", lines[0])
	}

	if !strings.Contains(lines[1], "expense") || !strings.Contains(lines[1], "1250") {
		t.Fatalf("unexpected record: %s", lines[1])
	}
}
