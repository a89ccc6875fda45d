package gamification

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"example.com/moneyquest/backend/internal/challenges"
	"example.com/moneyquest/backend/internal/models"
	"example.com/moneyquest/backend/internal/notifications"
	"example.com/moneyquest/backend/internal/repository"
)

// Базовые начисления XP за действия пользователя.
const (
	XPTransactionLogged int64 = 10
	XPLessonBase        int64 = 25
	XPLessonPerStar     int64 = 15
	XPGoalCreated       int64 = 20
	XPGoalCompleted     int64 = 100
)

type Profile struct {
	XP            int64   `json:"xp"`
	Level         int     `json:"level"`
	XPToNextLevel int64   `json:"xp_to_next_level"`
	Streak        int     `json:"streak"`
	LongestStreak int     `json:"longest_streak"`
	Badges        []Badge `json:"badges"`
}

// Engine ведет XP, уровни, серии и бейджи пользователя.
type Engine struct {
	Stats      *repository.StatsRepository
	Challenges *challenges.Engine
	Notifier   *notifications.Hub
	Logger     *slog.Logger
}

// NewEngine создает движок геймификации.
func NewEngine(stats *repository.StatsRepository, challengeEngine *challenges.Engine, notifier *notifications.Hub, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}

	return &Engine{Stats: stats, Challenges: challengeEngine, Notifier: notifier, Logger: logger}
}

// AwardXP прибавляет XP и пересчитывает уровень.
// Повышение уровня открывает уровневые бейджи и продвигает челленджи типа level.
func (e *Engine) AwardXP(ctx context.Context, userID uuid.UUID, amount int64, reason string) (models.UserStats, error) {
	if amount <= 0 {
		return e.Stats.GetOrCreate(ctx, userID)
	}

	stats, err := e.Stats.AddXP(ctx, userID, amount)
	if err != nil {
		return stats, err
	}

	notifications.PublishXPAwarded(e.Notifier, userID, amount, reason)

	newLevel := LevelForXP(stats.XP)
	if newLevel > stats.Level {
		if err := e.Stats.SetLevel(ctx, userID, newLevel); err != nil {
			return stats, err
		}
		stats.Level = newLevel

		e.Logger.Info("level up",
			slog.String("user_id", userID.String()),
			slog.Int("level", newLevel),
		)
		notifications.PublishLevelUp(e.Notifier, userID, newLevel)

		if err := e.CheckBadges(ctx, userID); err != nil {
			return stats, err
		}

		if err := e.Challenges.UpdateProgress(ctx, userID, models.ChallengeTypeLevel, 0); err != nil {
			return stats, err
		}
	}

	return stats, nil
}

// RecordActivity отмечает день трекинга и пересчитывает серию.
// Возвращает актуальную длину серии.
func (e *Engine) RecordActivity(ctx context.Context, userID uuid.UUID, now time.Time) (int, error) {
	stats, err := e.Stats.GetOrCreate(ctx, userID)
	if err != nil {
		return 0, err
	}

	streak := NextStreak(stats.LastTrackedOn, now, stats.Streak)

	longest := stats.LongestStreak
	if streak > longest {
		longest = streak
	}

	if err := e.Stats.SetStreak(ctx, userID, streak, longest, now); err != nil {
		return 0, err
	}

	if err := e.Challenges.UpdateProgress(ctx, userID, models.ChallengeTypeStreak, int64(streak)); err != nil {
		return 0, err
	}

	if longest > stats.LongestStreak {
		if err := e.CheckBadges(ctx, userID); err != nil {
			return 0, err
		}
	}

	return streak, nil
}

// TrackTransaction учитывает новую транзакцию в статистике.
func (e *Engine) TrackTransaction(ctx context.Context, userID uuid.UUID) error {
	if err := e.Stats.IncrementTransactionCount(ctx, userID); err != nil {
		return err
	}

	return e.CheckBadges(ctx, userID)
}

// TrackSavings учитывает взнос в копилку.
func (e *Engine) TrackSavings(ctx context.Context, userID uuid.UUID, amountCents int64) error {
	if amountCents <= 0 {
		return nil
	}

	if err := e.Stats.AddSavedCents(ctx, userID, amountCents); err != nil {
		return err
	}

	return e.CheckBadges(ctx, userID)
}

// TrackGoalCreated учитывает созданную цель.
func (e *Engine) TrackGoalCreated(ctx context.Context, userID uuid.UUID) error {
	if err := e.Stats.IncrementGoalsCreated(ctx, userID); err != nil {
		return err
	}

	return e.CheckBadges(ctx, userID)
}

// TrackGoalCompleted учитывает завершенную цель.
func (e *Engine) TrackGoalCompleted(ctx context.Context, userID uuid.UUID) error {
	if err := e.Stats.IncrementGoalsCompleted(ctx, userID); err != nil {
		return err
	}

	return e.CheckBadges(ctx, userID)
}

// TrackLesson учитывает пройденный урок.
func (e *Engine) TrackLesson(ctx context.Context, userID uuid.UUID) error {
	if err := e.Stats.IncrementLessonsCompleted(ctx, userID); err != nil {
		return err
	}

	return e.CheckBadges(ctx, userID)
}

// CheckBadges открывает все бейджи, заслуженные текущей статистикой.
// Повторная проверка уже открытого бейджа ничего не меняет.
func (e *Engine) CheckBadges(ctx context.Context, userID uuid.UUID) error {
	stats, err := e.Stats.GetOrCreate(ctx, userID)
	if err != nil {
		return err
	}

	for _, badge := range EligibleBadges(stats) {
		created, err := e.Stats.UnlockBadge(ctx, userID, badge.ID)
		if err != nil {
			return err
		}

		if created {
			e.Logger.Info("badge unlocked",
				slog.String("user_id", userID.String()),
				slog.String("badge_id", badge.ID),
			)
			notifications.PublishBadgeUnlocked(e.Notifier, userID, badge.ID)
		}
	}

	return nil
}

// GetProfile возвращает профиль геймификации пользователя.
func (e *Engine) GetProfile(ctx context.Context, userID uuid.UUID) (Profile, error) {
	stats, err := e.Stats.GetOrCreate(ctx, userID)
	if err != nil {
		return Profile{}, err
	}

	rows, err := e.Stats.ListBadges(ctx, userID)
	if err != nil {
		return Profile{}, err
	}

	badges := make([]Badge, 0, len(rows))
	for _, row := range rows {
		if badge, ok := BadgeByID(row.BadgeID); ok {
			badges = append(badges, badge)
		}
	}

	return Profile{
		XP:            stats.XP,
		Level:         stats.Level,
		XPToNextLevel: XPToNextLevel(stats.XP),
		Streak:        stats.Streak,
		LongestStreak: stats.LongestStreak,
		Badges:        badges,
	}, nil
}
