package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"searchai/internal/format"
	"searchai/internal/logging"
	"searchai/internal/render"
	"searchai/internal/search"
	"searchai/internal/services"
	"searchai/internal/services/gcs"
	"searchai/internal/store"
	"searchai/internal/validation"
)

// DefaultPublishTimeout bounds an upload when Deps.PublishTimeout is unset.
const DefaultPublishTimeout = 2 * time.Minute

// Stage labels attached to errors returned by Run.
const (
	StageValidate = "validate"
	StageDatabase = "database"
	StageSearch   = "search"
	StageGenerate = "generate"
	StageRender   = "render"
	StagePublish  = "publish"
)

// Store is the persistence surface the coordinator needs.
type Store interface {
	CreateQuery(ctx context.Context, text string, f format.Format) (*store.Query, error)
	UpdateStatus(ctx context.Context, id string, status store.Status, message string) error
	StoreResults(ctx context.Context, queryID string, results []store.ResultInput) (int, error)
	Results(ctx context.Context, queryID string) ([]store.SearchResult, error)
	LogDocument(ctx context.Context, queryID, path string, f format.Format, size int64) (*store.Document, error)
}

// Searcher retrieves web results for a query.
type Searcher interface {
	Search(ctx context.Context, query string) ([]search.Result, error)
}

// Generator produces document text from a query and its sources.
type Generator interface {
	Generate(ctx context.Context, query string, results []search.Result, f format.Format) (string, error)
}

// Renderers selects the renderer for a format.
type Renderers interface {
	For(f format.Format) (render.Renderer, error)
}

// Publisher mirrors a rendered document to remote storage.
type Publisher interface {
	Publish(ctx context.Context, queryID, localPath string) (string, error)
}

// Request is one document generation job.
type Request struct {
	Query     string
	Format    format.Format
	OutputDir string
}

// Outcome describes a completed job.
type Outcome struct {
	QueryID      string          `json:"query_id" yaml:"query_id"`
	Format       format.Format   `json:"format" yaml:"format"`
	Path         string          `json:"path" yaml:"path"`
	Size         int64           `json:"size" yaml:"size"`
	PublishedURI string          `json:"published_uri,omitempty" yaml:"published_uri,omitempty"`
	Results      []search.Result `json:"results" yaml:"results"`
	Duration     time.Duration   `json:"duration" yaml:"duration"`
}

// Deps bundles the collaborators of a Coordinator.
type Deps struct {
	Store     Store
	Search    Searcher
	Generator Generator
	Renderers Renderers
	// Publisher is optional; nil disables publishing.
	Publisher      Publisher
	PublishTimeout time.Duration
	// Observer is optional; nil disables progress callbacks.
	Observer Observer
	Logger   *slog.Logger
	// OutputDir is used when a request does not name one.
	OutputDir string
}

// Coordinator drives a query through search, generation, and rendering while
// recording its status after each step.
type Coordinator struct {
	store     Store
	search    Searcher
	generator Generator
	renderers Renderers
	publisher Publisher
	observer  Observer
	logger    *slog.Logger
	outputDir string

	publishTimeout time.Duration
}

// New validates deps and returns a coordinator.
func New(deps Deps) (*Coordinator, error) {
	if deps.Store == nil || deps.Search == nil || deps.Generator == nil || deps.Renderers == nil {
		return nil, errors.New("workflow requires store, search, generator, and renderers")
	}
	observer := deps.Observer
	if observer == nil {
		observer = NopObserver{}
	}
	publishTimeout := deps.PublishTimeout
	if publishTimeout <= 0 {
		publishTimeout = DefaultPublishTimeout
	}
	return &Coordinator{
		store:     deps.Store,
		search:    deps.Search,
		generator: deps.Generator,
		renderers: deps.Renderers,
		publisher: deps.Publisher,
		observer:  observer,
		logger:    logging.NewComponentLogger(deps.Logger, "workflow"),
		outputDir: deps.OutputDir,

		publishTimeout: publishTimeout,
	}, nil
}

// WithObserver returns a copy of c that reports progress to observer.
func (c *Coordinator) WithObserver(observer Observer) *Coordinator {
	clone := *c
	if observer == nil {
		observer = NopObserver{}
	}
	clone.observer = observer
	return &clone
}

// Run executes the full lifecycle for req. Input problems are reported before
// anything is written. Once the query exists, any failure marks it failed and
// the returned error carries the stage label (see services.Stage).
func (c *Coordinator) Run(ctx context.Context, req Request) (*Outcome, error) {
	start := time.Now()
	text, f, outputDir, err := c.validate(req)
	if err != nil {
		return nil, services.WithStageError(StageValidate, err)
	}

	query, err := c.store.CreateQuery(ctx, text, f)
	if err != nil {
		return nil, services.WithStageError(StageDatabase, err)
	}
	ctx = services.WithQueryID(ctx, query.ID)
	logger := logging.WithContext(ctx, c.logger).With(logging.String(logging.FieldFormat, f.String()))
	logger.Info("query accepted",
		logging.String(logging.FieldEventType, "query_created"),
		logging.String("output_dir", outputDir),
	)

	if err := c.store.UpdateStatus(ctx, query.ID, store.StatusProcessing, ""); err != nil {
		return nil, c.fail(ctx, logger, query.ID, StageDatabase, err)
	}

	results, err := runStage(ctx, c, StageSearch, func(stageCtx context.Context) ([]search.Result, error) {
		return c.search.Search(stageCtx, text)
	})
	if err != nil {
		return nil, c.fail(ctx, logger, query.ID, StageSearch, err)
	}

	if _, err := c.store.StoreResults(ctx, query.ID, toResultInputs(results)); err != nil {
		return nil, c.fail(ctx, logger, query.ID, StageDatabase, err)
	}
	stored, err := c.store.Results(ctx, query.ID)
	if err != nil {
		return nil, c.fail(ctx, logger, query.ID, StageDatabase, err)
	}
	sources := fromStored(stored)

	content, err := runStage(ctx, c, StageGenerate, func(stageCtx context.Context) (string, error) {
		return c.generator.Generate(stageCtx, text, sources, f)
	})
	if err != nil {
		return nil, c.fail(ctx, logger, query.ID, StageGenerate, err)
	}

	doc, err := runStage(ctx, c, StageRender, func(stageCtx context.Context) (renderedDoc, error) {
		return c.render(stageCtx, content, text, f, outputDir)
	})
	if err != nil {
		return nil, c.fail(ctx, logger, query.ID, StageRender, err)
	}

	outcome := &Outcome{
		QueryID: query.ID,
		Format:  f,
		Path:    doc.path,
		Size:    doc.size,
		Results: sources,
	}
	outcome.PublishedURI = c.publish(ctx, logger, query.ID, doc.path)

	if _, err := c.store.LogDocument(ctx, query.ID, doc.path, f, doc.size); err != nil {
		return nil, c.fail(ctx, logger, query.ID, StageDatabase, err)
	}
	if err := c.store.UpdateStatus(ctx, query.ID, store.StatusCompleted, ""); err != nil {
		return nil, c.fail(ctx, logger, query.ID, StageDatabase, err)
	}

	outcome.Duration = time.Since(start)
	logger.Info("query completed",
		logging.String(logging.FieldEventType, "query_completed"),
		logging.String("path", doc.path),
		logging.Int64("size_bytes", doc.size),
		logging.Int("sources", len(sources)),
		logging.Duration("duration", outcome.Duration),
	)
	return outcome, nil
}

func (c *Coordinator) validate(req Request) (string, format.Format, string, error) {
	text, err := validation.Query(req.Query)
	if err != nil {
		return "", "", "", err
	}
	f := req.Format
	if f == "" {
		f = format.Markdown
	}
	if f, err = validation.Format(string(f)); err != nil {
		return "", "", "", err
	}
	dir, err := validation.OutputDirectory(req.OutputDir, c.outputDir)
	if err != nil {
		return "", "", "", err
	}
	return text, f, dir, nil
}

type renderedDoc struct {
	path string
	size int64
}

func (c *Coordinator) render(ctx context.Context, content, query string, f format.Format, dest string) (renderedDoc, error) {
	renderer, err := c.renderers.For(f)
	if err != nil {
		return renderedDoc{}, &services.DocumentError{Format: f.String(), Detail: "no renderer", Err: err}
	}
	path, err := renderer.Render(ctx, content, query, dest)
	if err != nil {
		return renderedDoc{}, &services.DocumentError{Format: f.String(), Detail: "write failed", Err: err}
	}
	info, err := os.Stat(path)
	if err != nil {
		return renderedDoc{}, &services.DocumentError{Format: f.String(), Detail: "stat output", Err: err}
	}
	return renderedDoc{path: path, size: info.Size()}, nil
}

// publish mirrors the document when a publisher is configured. Failures only
// produce a warning.
func (c *Coordinator) publish(ctx context.Context, logger *slog.Logger, queryID, path string) string {
	if c.publisher == nil {
		return ""
	}
	c.observer.StageStarted(ctx, StagePublish)
	publishCtx, cancel := context.WithTimeout(ctx, c.publishTimeout)
	defer cancel()
	uri, err := c.publisher.Publish(publishCtx, queryID, path)
	if err != nil && errors.Is(publishCtx.Err(), context.DeadlineExceeded) {
		err = fmt.Errorf("%w after %s: %w", services.ErrTimeout, c.publishTimeout, err)
	}
	switch {
	case err == nil:
	case errors.Is(err, gcs.ErrObjectExists):
		err = nil
	default:
		logging.WarnWithContext(logger, "document publish failed", "publish_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check the storage bucket and credentials"),
			logging.String(logging.FieldImpact, "document is only available locally"),
		)
		uri = ""
	}
	c.observer.StageFinished(ctx, StagePublish, err)
	return uri
}

// fail records the failure on the query and returns err tagged with stage.
// The status write ignores caller cancellation so an interrupted run is still
// recorded as failed.
func (c *Coordinator) fail(ctx context.Context, logger *slog.Logger, queryID, stage string, err error) error {
	tagged := services.WithStageError(stage, err)
	logger.Error("stage failed",
		logging.String(logging.FieldEventType, "stage_failure"),
		logging.String(logging.FieldStage, stage),
		logging.String(logging.FieldErrorHint, services.Summary(err)),
		logging.Error(err),
	)
	message := fmt.Sprintf("%s: %s", stage, strings.TrimSpace(err.Error()))
	if markErr := c.store.UpdateStatus(context.WithoutCancel(ctx), queryID, store.StatusFailed, message); markErr != nil {
		logger.Error("failed to record query failure",
			logging.String(logging.FieldEventType, "status_update_failed"),
			logging.Error(markErr),
		)
	}
	return tagged
}

func toResultInputs(results []search.Result) []store.ResultInput {
	out := make([]store.ResultInput, 0, len(results))
	for _, r := range results {
		out = append(out, store.ResultInput{URL: r.URL, Title: r.Title, Snippet: r.Snippet})
	}
	return out
}

func fromStored(stored []store.SearchResult) []search.Result {
	out := make([]search.Result, 0, len(stored))
	for _, r := range stored {
		out = append(out, search.Result{Title: r.Title, URL: r.URL, Snippet: r.Snippet})
	}
	return out
}
