package services

import (
	"context"

	"searchai/internal/format"
)

// CompletionRequest is one prompt sent to a text generation backend.
type CompletionRequest struct {
	System string
	Prompt string
	Params format.Params
	// Model overrides the backend's configured model when set.
	Model string
}

// Completer generates text for a prompt. Implementations make exactly one
// attempt per call and honour context cancellation.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
