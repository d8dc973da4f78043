package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"searchai/internal/logging"
	"searchai/internal/services"
	"searchai/internal/workerpool"
)

// DefaultTimeout bounds one search call when the caller does not set one.
const DefaultTimeout = 60 * time.Second

// Result is one normalized search hit.
type Result struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// Response is what a backend returns. Structured backends fill Results;
// transcript backends return free text in Raw for ParseTranscript.
type Response struct {
	Results []Result
	Raw     string
}

// Backend performs one web search.
type Backend interface {
	Search(ctx context.Context, query string) (Response, error)
}

// Client runs searches on the shared worker pool with a stage timeout.
type Client struct {
	backend Backend
	pool    *workerpool.Pool
	timeout time.Duration
	logger  *slog.Logger
}

// NewClient wires a backend to the worker pool.
func NewClient(backend Backend, pool *workerpool.Pool, timeout time.Duration, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if pool == nil {
		pool = workerpool.New(workerpool.DefaultSize, logger)
	}
	return &Client{
		backend: backend,
		pool:    pool,
		timeout: timeout,
		logger:  logging.NewComponentLogger(logger, "search"),
	}
}

// Timeout returns the configured per-call limit.
func (c *Client) Timeout() time.Duration { return c.timeout }

// Search returns at least one result or an error carrying services.ErrSearch.
func (c *Client) Search(ctx context.Context, query string) ([]Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, services.Wrap(services.ErrValidation, "search", "", "query is empty", nil)
	}
	logger := logging.WithContext(ctx, c.logger)
	start := time.Now()
	logger.Info("search started", logging.String(logging.FieldEventType, "search_start"))

	resp, err := workerpool.Do(ctx, c.pool, c.timeout, func(callCtx context.Context) (Response, error) {
		return c.backend.Search(callCtx, query)
	})
	if err != nil {
		if errors.Is(err, services.ErrTimeout) {
			return nil, fmt.Errorf("%w: search timed out after %s: %w", services.ErrSearch, seconds(c.timeout), services.ErrTimeout)
		}
		return nil, services.Wrap(services.ErrSearch, "", "search operation failed", "", err)
	}

	var results []Result
	if len(resp.Results) > 0 {
		results = cleanResults(resp.Results, logger)
	} else {
		results = ParseTranscript(resp.Raw, logger)
	}
	if len(results) == 0 {
		return nil, services.Wrap(services.ErrSearch, "", "", "no valid search results found", nil)
	}
	logger.Info("search completed",
		logging.String(logging.FieldEventType, "search_complete"),
		logging.Int("results", len(results)),
		logging.Duration("duration", time.Since(start)),
	)
	return results, nil
}

func cleanResults(in []Result, logger *slog.Logger) []Result {
	out := make([]Result, 0, len(in))
	for i, r := range in {
		r.Title = strings.TrimSpace(r.Title)
		r.URL = strings.TrimSpace(r.URL)
		r.Snippet = strings.TrimSpace(r.Snippet)
		if r.Title == "" && r.URL == "" {
			logging.WarnWithContext(logger, "search result dropped", "search_result_dropped",
				logging.Int("position", i),
				logging.String(logging.FieldErrorHint, "backend returned an entry without url or title"),
				logging.String(logging.FieldImpact, "result omitted from document sources"),
			)
			continue
		}
		if r.Title == "" {
			r.Title = r.URL
		}
		if r.Snippet == "" {
			r.Snippet = noSummary
		}
		out = append(out, r)
	}
	return out
}

func seconds(d time.Duration) string {
	if d%time.Second == 0 {
		return fmt.Sprintf("%ds", int64(d/time.Second))
	}
	return d.String()
}
