package store

import (
	"strings"
	"time"

	"searchai/internal/format"
)

// Status represents the lifecycle of a query.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

var allStatuses = []Status{
	StatusPending,
	StatusProcessing,
	StatusCompleted,
	StatusFailed,
}

// predecessors lists, for each target status, the statuses it may be reached from.
var predecessors = map[Status][]Status{
	StatusProcessing: {StatusPending},
	StatusCompleted:  {StatusProcessing},
	StatusFailed:     {StatusPending, StatusProcessing},
}

// AllStatuses returns every lifecycle status in order.
func AllStatuses() []Status {
	out := make([]Status, len(allStatuses))
	copy(out, allStatuses)
	return out
}

// ParseStatus converts a string into a Status, returning false when unknown.
func ParseStatus(value string) (Status, bool) {
	normalized := Status(strings.ToLower(strings.TrimSpace(value)))
	for _, status := range allStatuses {
		if status == normalized {
			return status, true
		}
	}
	return "", false
}

// Terminal reports whether no further transitions are allowed.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// CanTransition reports whether moving from s to next is a forward move.
func (s Status) CanTransition(next Status) bool {
	for _, from := range predecessors[next] {
		if from == s {
			return true
		}
	}
	return false
}

// Query is one user request and its lifecycle state.
type Query struct {
	ID           string        `json:"id" yaml:"id"`
	Text         string        `json:"query" yaml:"query"`
	Format       format.Format `json:"format" yaml:"format"`
	Status       Status        `json:"status" yaml:"status"`
	ErrorMessage string        `json:"error_message,omitempty" yaml:"error_message,omitempty"`
	CreatedAt    time.Time     `json:"created_at" yaml:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at" yaml:"updated_at"`
}

// SearchResult is one stored search hit belonging to a query.
type SearchResult struct {
	ID        string    `json:"id" yaml:"id"`
	QueryID   string    `json:"query_id" yaml:"query_id"`
	Position  int       `json:"position" yaml:"position"`
	URL       string    `json:"url" yaml:"url"`
	Title     string    `json:"title" yaml:"title"`
	Snippet   string    `json:"snippet" yaml:"snippet"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// Document records a rendered output file.
type Document struct {
	ID        string        `json:"id" yaml:"id"`
	QueryID   string        `json:"query_id" yaml:"query_id"`
	Path      string        `json:"path" yaml:"path"`
	Format    format.Format `json:"format" yaml:"format"`
	Size      int64         `json:"size" yaml:"size"`
	CreatedAt time.Time     `json:"created_at" yaml:"created_at"`
}
