package workflow

import (
	"context"
	"time"

	"searchai/internal/logging"
	"searchai/internal/services"
)

// Observer receives stage progress notifications.
type Observer interface {
	StageStarted(ctx context.Context, stage string)
	StageFinished(ctx context.Context, stage string, err error)
}

// NopObserver ignores all notifications.
type NopObserver struct{}

func (NopObserver) StageStarted(context.Context, string) {}

func (NopObserver) StageFinished(context.Context, string, error) {}

// runStage wraps one remote stage with observer callbacks and stage logging.
func runStage[T any](ctx context.Context, c *Coordinator, stage string, fn func(context.Context) (T, error)) (T, error) {
	stageCtx := services.WithStage(ctx, stage)
	logger := logging.WithContext(stageCtx, c.logger)
	start := time.Now()
	logger.Info("stage started", logging.String(logging.FieldEventType, "stage_start"))
	c.observer.StageStarted(stageCtx, stage)

	value, err := fn(stageCtx)
	c.observer.StageFinished(stageCtx, stage, err)
	if err != nil {
		return value, err
	}
	logger.Info("stage completed",
		logging.String(logging.FieldEventType, "stage_complete"),
		logging.Duration("duration", time.Since(start)),
	)
	return value, nil
}
