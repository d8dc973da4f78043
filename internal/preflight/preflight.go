package preflight

import (
	"context"

	"searchai/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string `json:"name" yaml:"name"`
	Passed bool   `json:"passed" yaml:"passed"`
	Detail string `json:"detail" yaml:"detail"`
}

// Failed reports whether any result did not pass.
func Failed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return true
		}
	}
	return false
}

// RunAll executes every check that applies to cfg. Remote checks make one
// real request each.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDatabase(ctx, cfg),
		CheckOutputDirectory("Output directory", cfg.Paths.OutputDir),
		CheckOutputDirectory("Log directory", cfg.Paths.LogDir),
	}

	// The agent backend searches through the LLM, so the LLM check covers it.
	if cfg.Search.Backend == "serper" {
		results = append(results, CheckSerper(ctx, cfg.Search))
	}
	results = append(results, CheckLLM(ctx, cfg.LLM))

	if cfg.Publish.Bucket != "" {
		results = append(results, CheckBucket(ctx, cfg.Publish))
	}
	return results
}
