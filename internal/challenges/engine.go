package challenges

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"example.com/moneyquest/backend/internal/budget"
	"example.com/moneyquest/backend/internal/models"
	"example.com/moneyquest/backend/internal/notifications"
	"example.com/moneyquest/backend/internal/repository"
)

// ChallengeView объединяет определение с окном периода и прогрессом пользователя.
type ChallengeView struct {
	Definition
	StartDate     time.Time  `json:"start_date"`
	EndDate       time.Time  `json:"end_date"`
	Progress      int64      `json:"progress"`
	IsCompleted   bool       `json:"is_completed"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	ClaimedReward bool       `json:"claimed_reward"`
}

type RotationResult struct {
	Period            models.BudgetPeriod `json:"period"`
	StartDate         time.Time           `json:"start_date"`
	EndDate           time.Time           `json:"end_date"`
	ChallengesCreated int                 `json:"challenges_created"`
}

type Stats struct {
	TotalCompleted   int `json:"total_completed"`
	UnclaimedRewards int `json:"unclaimed_rewards"`
}

type Engine struct {
	Registry   *Registry
	Challenges *repository.ChallengeRepository
	Notifier   *notifications.Hub
	Logger     *slog.Logger
}

// NewEngine создает движок прогресса челленджей.
func NewEngine(registry *Registry, challenges *repository.ChallengeRepository, notifier *notifications.Hub, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}

	return &Engine{Registry: registry, Challenges: challenges, Notifier: notifier, Logger: logger}
}

// Initialize лениво создает недостающие записи прогресса по активным экземплярам.
func (e *Engine) Initialize(ctx context.Context, userID uuid.UUID) error {
	activeIDs, err := e.Challenges.ActiveDefinitionIDs(ctx, time.Now())
	if err != nil {
		return err
	}

	existing, err := e.Challenges.ListByUser(ctx, userID)
	if err != nil {
		return err
	}

	for _, defID := range missingDefinitionIDs(activeIDs, existing) {
		def, ok := e.Registry.Get(defID)
		if !ok {
			continue
		}

		if err := e.Challenges.EnsureUserChallenge(ctx, userID, def.ID, def.Target); err != nil {
			return err
		}
	}

	return nil
}

// missingDefinitionIDs возвращает активные определения без записи прогресса пользователя.
func missingDefinitionIDs(activeIDs []string, existing []models.UserChallenge) []string {
	have := make(map[string]struct{}, len(existing))
	for _, uc := range existing {
		have[uc.DefinitionID] = struct{}{}
	}

	missing := make([]string, 0)
	for _, id := range activeIDs {
		if _, ok := have[id]; !ok {
			missing = append(missing, id)
		}
	}

	return missing
}

// UpdateProgress продвигает все незавершенные челленджи пользователя с подходящим типом.
// Завершение одностороннее, флаг назад не снимается.
func (e *Engine) UpdateProgress(ctx context.Context, userID uuid.UUID, typ models.ChallengeType, amount int64) error {
	if err := e.Initialize(ctx, userID); err != nil {
		return err
	}

	activeIDs, err := e.Challenges.ActiveDefinitionIDs(ctx, time.Now())
	if err != nil {
		return err
	}

	activeSet := make(map[string]struct{}, len(activeIDs))
	for _, id := range activeIDs {
		activeSet[id] = struct{}{}
	}

	open, err := e.Challenges.ListOpenByUser(ctx, userID)
	if err != nil {
		return err
	}

	for _, uc := range open {
		def, ok := e.Registry.Get(uc.DefinitionID)
		if !ok || def.Type != typ {
			continue
		}

		if _, active := activeSet[uc.DefinitionID]; !active {
			continue
		}

		next, changed := NextProgress(typ, uc.Progress, amount)
		if !changed {
			continue
		}

		completed := next >= uc.Target
		if err := e.Challenges.UpdateProgress(ctx, uc.ID, next, completed); err != nil {
			return err
		}

		if completed {
			e.Logger.Info("challenge completed",
				slog.String("user_id", userID.String()),
				slog.String("definition_id", def.ID),
			)
			notifications.PublishChallengeCompleted(e.Notifier, userID, def.ID, def.XPReward)
		}
	}

	return nil
}

// Claim выдает награду за завершенный челлендж ровно один раз.
// Начисление XP пишется в outbox в той же транзакции и выполняется воркером позже.
func (e *Engine) Claim(ctx context.Context, userID, userChallengeID uuid.UUID) (int64, error) {
	uc, err := e.Challenges.GetUserChallenge(ctx, userID, userChallengeID)
	if err != nil {
		return 0, err
	}

	def, ok := e.Registry.Get(uc.DefinitionID)
	if !ok {
		return 0, repository.ErrNotFound
	}

	reason := "challenge_" + def.ID
	if err := e.Challenges.ClaimReward(ctx, userID, userChallengeID, def.XPReward, reason); err != nil {
		return 0, err
	}

	return def.XPReward, nil
}

// Rotate создает свежие экземпляры челленджей на текущее окно периода.
// Повторный вызов внутри окна ничего не создает.
func (e *Engine) Rotate(ctx context.Context, period models.BudgetPeriod, now time.Time) (RotationResult, error) {
	start, end := budget.PeriodWindow(period, now)
	result := RotationResult{Period: period, StartDate: start, EndDate: end}

	exists, err := e.Challenges.HasActiveWindow(ctx, period, start)
	if err != nil {
		return result, err
	}
	if exists {
		return result, nil
	}

	if err := e.Challenges.DeactivateLapsed(ctx, period, now); err != nil {
		return result, err
	}

	for _, def := range e.Registry.ByPeriod(period) {
		instance := models.Challenge{
			ID:           uuid.New(),
			DefinitionID: def.ID,
			Period:       period,
			StartDate:    start,
			EndDate:      end,
			IsActive:     true,
		}

		if err := e.Challenges.CreateInstance(ctx, instance); err != nil {
			return result, err
		}

		if err := e.Challenges.ResetUserProgress(ctx, def.ID, def.Target); err != nil {
			return result, err
		}
		result.ChallengesCreated++
	}

	e.Logger.Info("challenge period rotated",
		slog.String("period", string(period)),
		slog.Time("start", start),
		slog.Int("created", result.ChallengesCreated),
	)

	return result, nil
}

// Active возвращает активные челленджи периода, слитые с прогрессом пользователя.
func (e *Engine) Active(ctx context.Context, userID uuid.UUID, period models.BudgetPeriod) ([]ChallengeView, error) {
	if err := e.Initialize(ctx, userID); err != nil {
		return nil, err
	}

	instances, err := e.Challenges.ListActiveByPeriod(ctx, period, time.Now())
	if err != nil {
		return nil, err
	}

	rows, err := e.Challenges.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	byDef := make(map[string]models.UserChallenge, len(rows))
	for _, row := range rows {
		byDef[row.DefinitionID] = row
	}

	views := make([]ChallengeView, 0, len(instances))
	for _, instance := range instances {
		def, ok := e.Registry.Get(instance.DefinitionID)
		if !ok {
			continue
		}

		view := ChallengeView{
			Definition: def,
			StartDate:  instance.StartDate,
			EndDate:    instance.EndDate,
		}

		if row, ok := byDef[instance.DefinitionID]; ok {
			view.Progress = row.Progress
			view.IsCompleted = row.IsCompleted
			view.CompletedAt = row.CompletedAt
			view.ClaimedReward = row.ClaimedReward
		}

		views = append(views, view)
	}

	return views, nil
}

// UserStats возвращает сводку по завершенным и неполученным наградам.
func (e *Engine) UserStats(ctx context.Context, userID uuid.UUID) (Stats, error) {
	completed, unclaimed, err := e.Challenges.CountByUser(ctx, userID)
	if err != nil {
		return Stats{}, err
	}

	return Stats{TotalCompleted: completed, UnclaimedRewards: unclaimed}, nil
}
