package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/moneyquest/backend/internal/models"
)

type TransactionRepository struct {
	db *pgxpool.Pool
}

// TransactionFilter задает необязательные фильтры списка транзакций.
type TransactionFilter struct {
	Type     models.TransactionType
	Category string
	From     *time.Time
	To       *time.Time
}

// NewTransactionRepository создает репозиторий транзакций.
func NewTransactionRepository(db *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// Create сохраняет транзакцию.
func (r *TransactionRepository) Create(ctx context.Context, userID uuid.UUID, txType models.TransactionType, amountCents int64, category, emoji, description string, occurredAt time.Time) (models.Transaction, error) {
	var tx models.Transaction

	err := r.db.QueryRow(ctx,
		`INSERT INTO transactions (id, user_id, type, amount_cents, category, emoji, description, occurred_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, user_id, type, amount_cents, category, emoji, description, occurred_at, created_at`,
		uuid.New(), userID, txType, amountCents, category, emoji, description, occurredAt,
	).Scan(&tx.ID, &tx.UserID, &tx.Type, &tx.AmountCents, &tx.Category, &tx.Emoji, &tx.Description, &tx.OccurredAt, &tx.CreatedAt)
	if err != nil {
		return tx, err
	}

	return tx, nil
}

// Delete удаляет транзакцию пользователя и возвращает удаленную запись.
func (r *TransactionRepository) Delete(ctx context.Context, userID, id uuid.UUID) (models.Transaction, error) {
	var tx models.Transaction

	err := r.db.QueryRow(ctx,
		`DELETE FROM transactions
		 WHERE id = $1 AND user_id = $2
		 RETURNING id, user_id, type, amount_cents, category, emoji, description, occurred_at, created_at`,
		id, userID,
	).Scan(&tx.ID, &tx.UserID, &tx.Type, &tx.AmountCents, &tx.Category, &tx.Emoji, &tx.Description, &tx.OccurredAt, &tx.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return tx, ErrNotFound
		}
		return tx, err
	}

	return tx, nil
}

// ListByUser возвращает транзакции пользователя, новые первыми.
func (r *TransactionRepository) ListByUser(ctx context.Context, userID uuid.UUID, filter TransactionFilter) ([]models.Transaction, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, type, amount_cents, category, emoji, description, occurred_at, created_at
		 FROM transactions
		 WHERE user_id = $1
		   AND ($2 = '' OR type = $2)
		   AND ($3 = '' OR category = $3)
		   AND ($4::timestamptz IS NULL OR occurred_at >= $4)
		   AND ($5::timestamptz IS NULL OR occurred_at <= $5)
		 ORDER BY occurred_at DESC, created_at DESC`,
		userID, string(filter.Type), filter.Category, filter.From, filter.To,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions := make([]models.Transaction, 0)
	for rows.Next() {
		var tx models.Transaction

		err := rows.Scan(&tx.ID, &tx.UserID, &tx.Type, &tx.AmountCents, &tx.Category, &tx.Emoji, &tx.Description, &tx.OccurredAt, &tx.CreatedAt)
		if err != nil {
			return nil, err
		}

		transactions = append(transactions, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return transactions, nil
}

// SumExpensesSince считает расходы по категории с начала периода.
func (r *TransactionRepository) SumExpensesSince(ctx context.Context, userID uuid.UUID, category string, since time.Time) (int64, error) {
	var spent int64

	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount_cents), 0)
		 FROM transactions
		 WHERE user_id = $1 AND category = $2 AND type = $3 AND occurred_at >= $4`,
		userID, category, models.TransactionTypeExpense, since,
	).Scan(&spent)
	if err != nil {
		return 0, err
	}

	return spent, nil
}

type CategoryTotal struct {
	Category   string
	SpentCents int64
}

type MonthlyTotal struct {
	Month        time.Time
	IncomeCents  int64
	ExpenseCents int64
}

// Totals считает суммарные доходы и расходы пользователя.
func (r *TransactionRepository) Totals(ctx context.Context, userID uuid.UUID) (int64, int64, error) {
	var income, expense int64

	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount_cents) FILTER (WHERE type = $2), 0),
		        COALESCE(SUM(amount_cents) FILTER (WHERE type = $3), 0)
		 FROM transactions
		 WHERE user_id = $1`,
		userID, models.TransactionTypeIncome, models.TransactionTypeExpense,
	).Scan(&income, &expense)
	if err != nil {
		return 0, 0, err
	}

	return income, expense, nil
}

// ExpensesByCategory группирует расходы по категориям за интервал.
func (r *TransactionRepository) ExpensesByCategory(ctx context.Context, userID uuid.UUID, from, to *time.Time) ([]CategoryTotal, error) {
	rows, err := r.db.Query(ctx,
		`SELECT category, COALESCE(SUM(amount_cents), 0)
		 FROM transactions
		 WHERE user_id = $1 AND type = $2
		   AND ($3::timestamptz IS NULL OR occurred_at >= $3)
		   AND ($4::timestamptz IS NULL OR occurred_at <= $4)
		 GROUP BY category
		 ORDER BY 2 DESC`,
		userID, models.TransactionTypeExpense, from, to,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := make([]CategoryTotal, 0)
	for rows.Next() {
		var total CategoryTotal
		if err := rows.Scan(&total.Category, &total.SpentCents); err != nil {
			return nil, err
		}
		totals = append(totals, total)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return totals, nil
}

// MonthlyTotals возвращает доходы и расходы по месяцам за последние N месяцев.
func (r *TransactionRepository) MonthlyTotals(ctx context.Context, userID uuid.UUID, months int) ([]MonthlyTotal, error) {
	start := time.Now().UTC().AddDate(0, -months+1, 0)
	start = time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)

	rows, err := r.db.Query(ctx,
		`SELECT date_trunc('month', occurred_at) AS month,
		        COALESCE(SUM(amount_cents) FILTER (WHERE type = $2), 0),
		        COALESCE(SUM(amount_cents) FILTER (WHERE type = $3), 0)
		 FROM transactions
		 WHERE user_id = $1 AND occurred_at >= $4
		 GROUP BY month
		 ORDER BY month DESC`,
		userID, models.TransactionTypeIncome, models.TransactionTypeExpense, start,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := make([]MonthlyTotal, 0)
	for rows.Next() {
		var total MonthlyTotal
		if err := rows.Scan(&total.Month, &total.IncomeCents, &total.ExpenseCents); err != nil {
			return nil, err
		}
		totals = append(totals, total)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return totals, nil
}
