package models

import (
	"time"

	"github.com/google/uuid"
)

type TransactionType string

type BudgetPeriod string

type AlertSeverity string

type ChallengeType string

type OutboxStatus string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"

	PeriodWeekly  BudgetPeriod = "weekly"
	PeriodMonthly BudgetPeriod = "monthly"

	SeveritySafe     AlertSeverity = "safe"
	SeverityWarning  AlertSeverity = "warning"
	SeverityDanger   AlertSeverity = "danger"
	SeverityExceeded AlertSeverity = "exceeded"

	ChallengeTypeTransactions ChallengeType = "transactions"
	ChallengeTypeSavings      ChallengeType = "savings"
	ChallengeTypeBudget       ChallengeType = "budget"
	ChallengeTypeLessons      ChallengeType = "lessons"
	ChallengeTypeStreak       ChallengeType = "streak"
	ChallengeTypeWorlds       ChallengeType = "worlds"
	ChallengeTypeGoals        ChallengeType = "goals"
	ChallengeTypeLevel        ChallengeType = "level"

	OutboxStatusPending OutboxStatus = "pending"
	OutboxStatusDone    OutboxStatus = "done"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         *string   `json:"name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type RefreshToken struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"user_id"`
	TokenHash  string     `json:"-"`
	ExpiresAt  time.Time  `json:"expires_at"`
	CreatedAt  time.Time  `json:"created_at"`
	RevokedAt  *time.Time `json:"revoked_at,omitempty"`
	ReplacedBy *uuid.UUID `json:"replaced_by,omitempty"`
}

type Transaction struct {
	ID          uuid.UUID       `json:"id"`
	UserID      uuid.UUID       `json:"user_id"`
	Type        TransactionType `json:"type"`
	AmountCents int64           `json:"amount_cents"`
	Category    string          `json:"category"`
	Emoji       string          `json:"emoji"`
	Description string          `json:"description"`
	OccurredAt  time.Time       `json:"occurred_at"`
	CreatedAt   time.Time       `json:"created_at"`
}

type BudgetLimit struct {
	ID             uuid.UUID    `json:"id"`
	UserID         uuid.UUID    `json:"user_id"`
	Category       string       `json:"category"`
	LimitCents     int64        `json:"limit_cents"`
	Period         BudgetPeriod `json:"period"`
	AlertThreshold int          `json:"alert_threshold"`
	IsActive       bool         `json:"is_active"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

type SpendingAlert struct {
	ID        uuid.UUID     `json:"id"`
	UserID    uuid.UUID     `json:"user_id"`
	Category  string        `json:"category"`
	Period    BudgetPeriod  `json:"period"`
	Severity  AlertSeverity `json:"severity"`
	Message   string        `json:"message"`
	IsRead    bool          `json:"is_read"`
	CreatedAt time.Time     `json:"created_at"`
}

type Goal struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	Title       string     `json:"title"`
	Emoji       string     `json:"emoji"`
	TargetCents int64      `json:"target_cents"`
	SavedCents  int64      `json:"saved_cents"`
	IsCompleted bool       `json:"is_completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type LessonCompletion struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	WorldID     int       `json:"world_id"`
	LessonID    int       `json:"lesson_id"`
	Stars       int       `json:"stars"`
	CompletedAt time.Time `json:"completed_at"`
}

// Challenge описывает экземпляр определения челленджа на конкретное окно периода.
type Challenge struct {
	ID           uuid.UUID    `json:"id"`
	DefinitionID string       `json:"definition_id"`
	Period       BudgetPeriod `json:"period"`
	StartDate    time.Time    `json:"start_date"`
	EndDate      time.Time    `json:"end_date"`
	IsActive     bool         `json:"is_active"`
	CreatedAt    time.Time    `json:"created_at"`
}

// UserChallenge хранит прогресс пользователя по одному определению челленджа.
type UserChallenge struct {
	ID            uuid.UUID  `json:"id"`
	UserID        uuid.UUID  `json:"user_id"`
	DefinitionID  string     `json:"definition_id"`
	Progress      int64      `json:"progress"`
	Target        int64      `json:"target"`
	IsCompleted   bool       `json:"is_completed"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	ClaimedReward bool       `json:"claimed_reward"`
	CreatedAt     time.Time  `json:"created_at"`
}

type UserStats struct {
	UserID           uuid.UUID  `json:"user_id"`
	XP               int64      `json:"xp"`
	Level            int        `json:"level"`
	Streak           int        `json:"streak"`
	LongestStreak    int        `json:"longest_streak"`
	LastTrackedOn    *time.Time `json:"last_tracked_on,omitempty"`
	TransactionCount int64      `json:"transaction_count"`
	TotalSavedCents  int64      `json:"total_saved_cents"`
	GoalsCreated     int64      `json:"goals_created"`
	GoalsCompleted   int64      `json:"goals_completed"`
	LessonsCompleted int64      `json:"lessons_completed"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

type UserBadge struct {
	UserID     uuid.UUID `json:"user_id"`
	BadgeID    string    `json:"badge_id"`
	UnlockedAt time.Time `json:"unlocked_at"`
}

// XPOutboxEntry описывает отложенное начисление XP для фонового воркера.
type XPOutboxEntry struct {
	ID          uuid.UUID    `json:"id"`
	UserID      uuid.UUID    `json:"user_id"`
	Amount      int64        `json:"amount"`
	Reason      string       `json:"reason"`
	Status      OutboxStatus `json:"status"`
	CreatedAt   time.Time    `json:"created_at"`
	ProcessedAt *time.Time   `json:"processed_at,omitempty"`
}
