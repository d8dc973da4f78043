package search

import (
	"context"
	"fmt"
	"strings"

	"searchai/internal/services"
	"searchai/internal/services/serper"
)

// SerperBackend adapts the Serper.dev client to Backend.
type SerperBackend struct {
	Client *serper.Client
}

// Search implements Backend.
func (b SerperBackend) Search(ctx context.Context, query string) (Response, error) {
	hits, err := b.Client.Search(ctx, query)
	if err != nil {
		return Response{}, err
	}
	results := make([]Result, 0, len(hits))
	for _, h := range hits {
		results = append(results, Result{Title: h.Title, URL: h.Link, Snippet: h.Snippet})
	}
	return Response{Results: results}, nil
}

const agentSystemPrompt = "You are an expert web researcher specializing in finding and analyzing information from reliable sources. Find accurate and relevant information from credible sources."

// AgentBackend asks a model with web access for a result listing and returns
// the transcript for ParseTranscript.
type AgentBackend struct {
	Completer services.Completer
	Model     string
}

// Search implements Backend.
func (b AgentBackend) Search(ctx context.Context, query string) (Response, error) {
	text, err := b.Completer.Complete(ctx, services.CompletionRequest{
		System: agentSystemPrompt,
		Prompt: AgentPrompt(query),
		Model:  b.Model,
	})
	if err != nil {
		return Response{}, fmt.Errorf("research agent: %w", err)
	}
	return Response{Raw: text}, nil
}

// AgentPrompt builds the research instructions for query.
func AgentPrompt(query string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Search the web for: %s\n", strings.TrimSpace(query))
	b.WriteString("Instructions:\n")
	b.WriteString("1. Find relevant results from credible sources\n")
	b.WriteString("2. For each result found, format it as follows:\n")
	b.WriteString("   - URL on first line\n")
	b.WriteString("   - Title on second line\n")
	b.WriteString("   - Brief summary on following lines\n")
	b.WriteString("3. Separate each result with a blank line\n")
	b.WriteString("4. Return only the formatted results, no additional commentary\n")
	return b.String()
}
