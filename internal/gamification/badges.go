package gamification

import "example.com/moneyquest/backend/internal/models"

type Badge struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Emoji       string `json:"emoji"`
}

type badgeRule struct {
	Badge
	unlocked func(models.UserStats) bool
}

// badgeRules задает статический набор бейджей со стабильными идентификаторами.
func badgeRules() []badgeRule {
	return []badgeRule{
		{
			Badge:    Badge{ID: "first_transaction", Title: "First Step", Description: "Log your first transaction", Emoji: "👣"},
			unlocked: func(s models.UserStats) bool { return s.TransactionCount >= 1 },
		},
		{
			Badge:    Badge{ID: "tracker_50", Title: "Record Keeper", Description: "Log 50 transactions", Emoji: "📒"},
			unlocked: func(s models.UserStats) bool { return s.TransactionCount >= 50 },
		},
		{
			Badge:    Badge{ID: "tracker_250", Title: "Ledger Legend", Description: "Log 250 transactions", Emoji: "🏛️"},
			unlocked: func(s models.UserStats) bool { return s.TransactionCount >= 250 },
		},
		{
			Badge:    Badge{ID: "first_goal", Title: "Dream Starter", Description: "Create your first savings goal", Emoji: "🌱"},
			unlocked: func(s models.UserStats) bool { return s.GoalsCreated >= 1 },
		},
		{
			Badge:    Badge{ID: "goal_getter", Title: "Goal Getter", Description: "Complete 3 savings goals", Emoji: "🏆"},
			unlocked: func(s models.UserStats) bool { return s.GoalsCompleted >= 3 },
		},
		{
			Badge:    Badge{ID: "saver_100", Title: "Centurion Saver", Description: "Save $100 in total", Emoji: "💰"},
			unlocked: func(s models.UserStats) bool { return s.TotalSavedCents >= 10000 },
		},
		{
			Badge:    Badge{ID: "saver_500", Title: "Vault Builder", Description: "Save $500 in total", Emoji: "🏦"},
			unlocked: func(s models.UserStats) bool { return s.TotalSavedCents >= 50000 },
		},
		{
			Badge:    Badge{ID: "streak_7", Title: "One Week Strong", Description: "Track 7 days in a row", Emoji: "🔥"},
			unlocked: func(s models.UserStats) bool { return s.LongestStreak >= 7 },
		},
		{
			Badge:    Badge{ID: "streak_30", Title: "Habit Hero", Description: "Track 30 days in a row", Emoji: "🚀"},
			unlocked: func(s models.UserStats) bool { return s.LongestStreak >= 30 },
		},
		{
			Badge:    Badge{ID: "scholar_10", Title: "Money Scholar", Description: "Finish 10 lessons", Emoji: "🎓"},
			unlocked: func(s models.UserStats) bool { return s.LessonsCompleted >= 10 },
		},
		{
			Badge:    Badge{ID: "level_5", Title: "Rising Star", Description: "Reach level 5", Emoji: "⭐"},
			unlocked: func(s models.UserStats) bool { return s.Level >= 5 },
		},
		{
			Badge:    Badge{ID: "level_10", Title: "Money Master", Description: "Reach level 10", Emoji: "👑"},
			unlocked: func(s models.UserStats) bool { return s.Level >= 10 },
		},
	}
}

// EligibleBadges возвращает все бейджи, заслуженные текущей статистикой.
func EligibleBadges(stats models.UserStats) []Badge {
	var earned []Badge
	for _, rule := range badgeRules() {
		if rule.unlocked(stats) {
			earned = append(earned, rule.Badge)
		}
	}

	return earned
}

// BadgeByID возвращает описание бейджа по идентификатору.
func BadgeByID(id string) (Badge, bool) {
	for _, rule := range badgeRules() {
		if rule.ID == id {
			return rule.Badge, true
		}
	}

	return Badge{}, false
}
