package api

import (
	"searchai/internal/store"
	"searchai/internal/workflow"
)

// SubmitRequest is the body accepted by POST /api/v1/queries.
type SubmitRequest struct {
	Query  string `json:"query"`
	Format string `json:"format"`
}

// SubmitResponse wraps the outcome of a completed run.
type SubmitResponse struct {
	Outcome *workflow.Outcome `json:"outcome"`
}

// HistoryResponse wraps a page of queries.
type HistoryResponse struct {
	Queries []store.Query `json:"queries"`
}

// QueryDetail bundles a query with everything recorded for it.
type QueryDetail struct {
	Query     store.Query          `json:"query"`
	Results   []store.SearchResult `json:"results"`
	Documents []store.Document     `json:"documents"`
}

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
	Stage string `json:"stage,omitempty"`
}

// HealthResponse reports liveness.
type HealthResponse struct {
	Status string `json:"status"`
}
