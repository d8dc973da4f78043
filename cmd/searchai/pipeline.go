package main

import (
	"context"
	"fmt"
	"log/slog"

	"searchai/internal/content"
	"searchai/internal/logging"
	"searchai/internal/render"
	"searchai/internal/search"
	"searchai/internal/services"
	"searchai/internal/services/gcs"
	"searchai/internal/services/llm"
	"searchai/internal/services/serper"
	"searchai/internal/services/vertex"
	"searchai/internal/store"
	"searchai/internal/workerpool"
	"searchai/internal/workflow"
)

// buildCoordinator wires the configured backends into a workflow coordinator.
// Clients that hold resources are closed with the command context.
func (c *commandContext) buildCoordinator(ctx context.Context, st *store.Store) (*workflow.Coordinator, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}

	completer, err := c.newCompleter(ctx)
	if err != nil {
		return nil, err
	}

	var backend search.Backend
	switch cfg.Search.Backend {
	case "agent":
		backend = search.AgentBackend{Completer: completer, Model: cfg.Search.AgentModel}
	default:
		backend = search.SerperBackend{Client: serper.NewClient(serper.Config{
			APIKey:     cfg.Search.APIKey,
			BaseURL:    cfg.Search.BaseURL,
			MaxResults: cfg.Search.MaxResults,
		})}
	}

	pool := workerpool.New(cfg.Workflow.Workers, logger)
	searchClient := search.NewClient(backend, pool, cfg.SearchTimeout(), logger)
	generator := content.NewGenerator(completer, pool, cfg.LLMTimeout(), cfg.GenerationParams, logger)
	logger.Debug("pipeline configured",
		logging.String(logging.FieldEventType, "pipeline_configured"),
		logging.String("search_backend", cfg.Search.Backend),
		logging.Duration("search_timeout", searchClient.Timeout()),
		logging.Duration("llm_timeout", generator.Timeout()),
		logging.Int("workers", pool.Size()),
	)
	c.onClose(func() error {
		reportAbandonedCalls(logger, pool)
		return nil
	})

	deps := workflow.Deps{
		Store:     st,
		Search:    searchClient,
		Generator: generator,
		Renderers: render.NewRegistry(render.WithLogger(logger)),
		Logger:    logger,
		OutputDir: cfg.Paths.OutputDir,
	}

	if cfg.Publish.Bucket != "" {
		publisher, err := gcs.NewPublisher(ctx, cfg.Publish.Bucket, cfg.Publish.Prefix)
		if err != nil {
			return nil, services.WithStageError(workflow.StagePublish, err)
		}
		c.onClose(publisher.Close)
		deps.Publisher = publisher
		deps.PublishTimeout = cfg.PublishTimeout()
	}

	return workflow.New(deps)
}

// reportAbandonedCalls warns about timed-out backend calls that are still
// running when the command exits; their results are lost.
func reportAbandonedCalls(logger *slog.Logger, pool *workerpool.Pool) {
	if n := pool.InFlight(); n > 0 {
		logging.WarnWithContext(logger, "backend calls still running at exit", "abandoned_calls",
			logging.Int("in_flight", n),
			logging.String(logging.FieldImpact, "late search or generation results are discarded"),
			logging.String(logging.FieldErrorHint, "raise search.timeout_seconds or llm.timeout_seconds if this repeats"),
		)
	}
}

func (c *commandContext) newCompleter(ctx context.Context) (services.Completer, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if cfg.LLM.Provider == "vertex" {
		client, err := vertex.NewClient(ctx, vertex.Config{
			ProjectID: cfg.LLM.ProjectID,
			Location:  cfg.LLM.Location,
			Model:     cfg.LLM.Model,
		})
		if err != nil {
			return nil, services.WithStageError("config", fmt.Errorf("%w: %w", services.ErrConfiguration, err))
		}
		c.onClose(client.Close)
		return client, nil
	}
	return llm.NewClient(llm.Config{
		APIKey:         cfg.LLM.APIKey,
		BaseURL:        cfg.LLM.BaseURL,
		Model:          cfg.LLM.Model,
		Referer:        cfg.LLM.Referer,
		Title:          cfg.LLM.Title,
		TimeoutSeconds: cfg.LLM.TimeoutSeconds,
	}), nil
}
