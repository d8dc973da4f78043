package content

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"searchai/internal/format"
	"searchai/internal/logging"
	"searchai/internal/search"
	"searchai/internal/services"
	"searchai/internal/workerpool"
)

// DefaultTimeout bounds one generation call when the caller does not set one.
const DefaultTimeout = 300 * time.Second

const systemPrompt = "You are an expert researcher and writer."

// ParamsFunc resolves the sampling parameters for a format.
type ParamsFunc func(format.Format) format.Params

// Generator turns search results into document text via an LLM backend.
type Generator struct {
	llm     services.Completer
	pool    *workerpool.Pool
	timeout time.Duration
	params  ParamsFunc
	logger  *slog.Logger
}

// NewGenerator wires an LLM backend to the worker pool. A nil params func uses
// format.DefaultParams.
func NewGenerator(llm services.Completer, pool *workerpool.Pool, timeout time.Duration, params ParamsFunc, logger *slog.Logger) *Generator {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if params == nil {
		params = format.DefaultParams
	}
	if pool == nil {
		pool = workerpool.New(workerpool.DefaultSize, logger)
	}
	return &Generator{
		llm:     llm,
		pool:    pool,
		timeout: timeout,
		params:  params,
		logger:  logging.NewComponentLogger(logger, "content"),
	}
}

// Timeout returns the configured per-call limit.
func (g *Generator) Timeout() time.Duration { return g.timeout }

// Generate returns the fence-stripped document text for query. Every error
// carries services.ErrLLM.
func (g *Generator) Generate(ctx context.Context, query string, results []search.Result, f format.Format) (string, error) {
	if !f.Valid() {
		return "", services.Wrap(services.ErrValidation, "generate", "", fmt.Sprintf("unsupported format %q", f), nil)
	}
	logger := logging.WithContext(ctx, g.logger).With(logging.String(logging.FieldFormat, f.String()))
	req := services.CompletionRequest{
		System: systemPrompt,
		Prompt: BuildPrompt(query, results, f),
		Params: g.params(f),
	}
	start := time.Now()
	logger.Info("content generation started",
		logging.String(logging.FieldEventType, "generate_start"),
		logging.Int("sources", len(results)),
	)

	text, err := workerpool.Do(ctx, g.pool, g.timeout, func(callCtx context.Context) (string, error) {
		return g.llm.Complete(callCtx, req)
	})
	if err != nil {
		if errors.Is(err, services.ErrTimeout) {
			return "", fmt.Errorf("%w: content generation timed out after %s: %w", services.ErrLLM, seconds(g.timeout), services.ErrTimeout)
		}
		return "", services.Wrap(services.ErrLLM, "", "", "", err)
	}
	text = StripFences(text)
	if text == "" {
		return "", services.Wrap(services.ErrLLM, "", "", "model generated empty response", nil)
	}
	logger.Info("content generation completed",
		logging.String(logging.FieldEventType, "generate_complete"),
		logging.Int("chars", len(text)),
		logging.Duration("duration", time.Since(start)),
	)
	return text, nil
}

// BuildPrompt renders the deterministic generation prompt.
func BuildPrompt(query string, results []search.Result, f format.Format) string {
	var b strings.Builder
	b.WriteString("Your task is to create a comprehensive and well-structured document based on the following search results. ")
	fmt.Fprintf(&b, "The document should address this query: %q\n\n", strings.TrimSpace(query))
	b.WriteString("Here are the search results to use as your source material:\n\n")
	for i, r := range results {
		fmt.Fprintf(&b, "Source %d:\n", i+1)
		fmt.Fprintf(&b, "Title: %s\n", orDefault(r.Title, "Untitled"))
		fmt.Fprintf(&b, "URL: %s\n", orDefault(r.URL, "No URL"))
		fmt.Fprintf(&b, "Summary: %s\n\n", orDefault(r.Snippet, "No description"))
	}
	b.WriteString(f.Instructions())
	b.WriteString("\n\n")
	b.WriteString("Make sure your response is informative, accurate, and directly answers the query. ")
	b.WriteString("Use the provided search results as your primary source of information. ")
	b.WriteString("If you need to make educated guesses or inferences, clearly indicate them.\n\n")
	b.WriteString("Write the document now.\n")
	return b.String()
}

func orDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}

func seconds(d time.Duration) string {
	if d%time.Second == 0 {
		return fmt.Sprintf("%ds", int64(d/time.Second))
	}
	return d.String()
}
