package outbox

import (
	"context"
	"log/slog"
	"time"

	"example.com/moneyquest/backend/internal/config"
	"example.com/moneyquest/backend/internal/gamification"
	"example.com/moneyquest/backend/internal/repository"
)

// Worker начисляет XP по записям outbox с доставкой at-least-once.
type Worker struct {
	Outbox       *repository.OutboxRepository
	Gamification *gamification.Engine
	Logger       *slog.Logger

	pollInterval time.Duration
	batchSize    int
}

// NewWorker создает воркер обработки отложенных начислений.
func NewWorker(outbox *repository.OutboxRepository, engine *gamification.Engine, cfg config.WorkerConfig, logger *slog.Logger) *Worker {
	if logger == nil {
		logger = slog.Default()
	}

	return &Worker{
		Outbox:       outbox,
		Gamification: engine,
		Logger:       logger,
		pollInterval: cfg.PollInterval,
		batchSize:    cfg.BatchSize,
	}
}

// Run обрабатывает outbox до отмены контекста.
func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := w.ProcessBatch(ctx); err != nil && ctx.Err() == nil {
				w.Logger.Error("outbox batch failed", slog.String("error", err.Error()))
			}
		}
	}
}

// ProcessBatch начисляет XP по очередной пачке записей.
func (w *Worker) ProcessBatch(ctx context.Context) error {
	entries, err := w.Outbox.ListPending(ctx, w.batchSize)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if _, err := w.Gamification.AwardXP(ctx, entry.UserID, entry.Amount, entry.Reason); err != nil {
			w.Logger.Error("xp award failed",
				slog.String("entry_id", entry.ID.String()),
				slog.String("error", err.Error()),
			)
			continue
		}

		if err := w.Outbox.MarkDone(ctx, entry.ID); err != nil {
			return err
		}

		w.Logger.Info("xp awarded",
			slog.String("user_id", entry.UserID.String()),
			slog.Int64("amount", entry.Amount),
			slog.String("reason", entry.Reason),
		)
	}

	return nil
}
