package challenges

import "example.com/moneyquest/backend/internal/models"

// Definition описывает статический шаблон челленджа со стабильным идентификатором.
type Definition struct {
	ID          string               `json:"id"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Period      models.BudgetPeriod  `json:"period"`
	Type        models.ChallengeType `json:"type"`
	Target      int64                `json:"target"`
	XPReward    int64                `json:"xp_reward"`
}

func builtinDefinitions() []Definition {
	return []Definition{
		{
			ID:          "weekly_track_10",
			Title:       "Habit Builder",
			Description: "Log 10 transactions this week",
			Period:      models.PeriodWeekly,
			Type:        models.ChallengeTypeTransactions,
			Target:      10,
			XPReward:    50,
		},
		{
			ID:          "weekly_save_20",
			Title:       "Piggy Bank",
			Description: "Put $20 toward your goals this week",
			Period:      models.PeriodWeekly,
			Type:        models.ChallengeTypeSavings,
			Target:      2000,
			XPReward:    75,
		},
		{
			ID:          "weekly_smart_spender",
			Title:       "Smart Spender",
			Description: "Spend $50 while staying inside your budgets",
			Period:      models.PeriodWeekly,
			Type:        models.ChallengeTypeBudget,
			Target:      5000,
			XPReward:    60,
		},
		{
			ID:          "weekly_lessons_3",
			Title:       "Curious Mind",
			Description: "Finish 3 lessons this week",
			Period:      models.PeriodWeekly,
			Type:        models.ChallengeTypeLessons,
			Target:      3,
			XPReward:    60,
		},
		{
			ID:          "weekly_streak_7",
			Title:       "Full Week",
			Description: "Track your money 7 days in a row",
			Period:      models.PeriodWeekly,
			Type:        models.ChallengeTypeStreak,
			Target:      7,
			XPReward:    100,
		},
		{
			ID:          "monthly_track_40",
			Title:       "Bookkeeper",
			Description: "Log 40 transactions this month",
			Period:      models.PeriodMonthly,
			Type:        models.ChallengeTypeTransactions,
			Target:      40,
			XPReward:    150,
		},
		{
			ID:          "monthly_save_100",
			Title:       "Serious Saver",
			Description: "Put $100 toward your goals this month",
			Period:      models.PeriodMonthly,
			Type:        models.ChallengeTypeSavings,
			Target:      10000,
			XPReward:    200,
		},
		{
			ID:          "monthly_smart_spender",
			Title:       "Budget Master",
			Description: "Spend $200 while staying inside your budgets",
			Period:      models.PeriodMonthly,
			Type:        models.ChallengeTypeBudget,
			Target:      20000,
			XPReward:    150,
		},
		{
			ID:          "monthly_lessons_10",
			Title:       "Money Scholar",
			Description: "Finish 10 lessons this month",
			Period:      models.PeriodMonthly,
			Type:        models.ChallengeTypeLessons,
			Target:      10,
			XPReward:    180,
		},
		{
			ID:          "monthly_worlds_1",
			Title:       "World Explorer",
			Description: "Complete a whole lesson world",
			Period:      models.PeriodMonthly,
			Type:        models.ChallengeTypeWorlds,
			Target:      1,
			XPReward:    120,
		},
		{
			ID:          "monthly_goal_1",
			Title:       "Goal Crusher",
			Description: "Complete a savings goal",
			Period:      models.PeriodMonthly,
			Type:        models.ChallengeTypeGoals,
			Target:      1,
			XPReward:    150,
		},
		{
			ID:          "monthly_level_up",
			Title:       "Next Level",
			Description: "Level up once this month",
			Period:      models.PeriodMonthly,
			Type:        models.ChallengeTypeLevel,
			Target:      1,
			XPReward:    100,
		},
		{
			ID:          "monthly_streak_21",
			Title:       "Iron Habit",
			Description: "Track your money 21 days in a row",
			Period:      models.PeriodMonthly,
			Type:        models.ChallengeTypeStreak,
			Target:      21,
			XPReward:    250,
		},
	}
}

// Registry хранит определения челленджей с индексами по id и периоду.
type Registry struct {
	ordered  []Definition
	byID     map[string]Definition
	byPeriod map[models.BudgetPeriod][]Definition
}

// NewRegistry строит реестр встроенных определений при старте процесса.
func NewRegistry() *Registry {
	defs := builtinDefinitions()

	r := &Registry{
		ordered:  defs,
		byID:     make(map[string]Definition, len(defs)),
		byPeriod: make(map[models.BudgetPeriod][]Definition),
	}

	for _, def := range defs {
		r.byID[def.ID] = def
		r.byPeriod[def.Period] = append(r.byPeriod[def.Period], def)
	}

	return r
}

// Get возвращает определение по идентификатору.
func (r *Registry) Get(id string) (Definition, bool) {
	def, ok := r.byID[id]
	return def, ok
}

// ByPeriod возвращает определения указанного периода.
func (r *Registry) ByPeriod(period models.BudgetPeriod) []Definition {
	return r.byPeriod[period]
}

// All возвращает все определения в стабильном порядке.
func (r *Registry) All() []Definition {
	return r.ordered
}
