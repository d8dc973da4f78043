// Package search retrieves web results for a query.
//
// Client wraps a Backend with the shared worker pool and a stage timeout.
// SerperBackend returns structured hits; AgentBackend returns a free-text
// listing that ParseTranscript turns into results, degrading to a single
// fallback result when the text has no recognisable structure.
package search
