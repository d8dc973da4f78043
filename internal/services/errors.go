package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrConfiguration = errors.New("configuration error")
	ErrValidation    = errors.New("validation error")
	ErrSearch        = errors.New("search failed")
	ErrLLM           = errors.New("content generation failed")
	ErrDatabase      = errors.New("database error")
	ErrRender        = errors.New("document generation failed")
	ErrFileSystem    = errors.New("file system error")
	ErrTimeout       = errors.New("timeout")
)

// Wrap builds an error message that includes stage context while tagging it with
// the provided marker for later classification. The marker should be one of the
// exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrDatabase
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// StageError records which pipeline stage produced a failure. The coordinator
// attaches it so callers can report the stage without parsing messages.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	if e.Err == nil {
		return e.Stage
	}
	return e.Err.Error()
}

func (e *StageError) Unwrap() error { return e.Err }

// WithStageError tags err with stage. A nil err stays nil.
func WithStageError(stage string, err error) error {
	if err == nil {
		return nil
	}
	var existing *StageError
	if errors.As(err, &existing) {
		return err
	}
	return &StageError{Stage: stage, Err: err}
}

// Stage returns the stage label recorded on err, if any.
func Stage(err error) (string, bool) {
	var se *StageError
	if errors.As(err, &se) && se.Stage != "" {
		return se.Stage, true
	}
	return "", false
}

// DocumentError describes a renderer failure for a specific output format.
type DocumentError struct {
	Format string
	Detail string
	Err    error
}

func (e *DocumentError) Error() string {
	msg := fmt.Sprintf("%s: %s document", ErrRender.Error(), e.Format)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *DocumentError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrRender}
	}
	return []error{ErrRender, e.Err}
}

// Summary returns the user-facing category for err, matching the markers above.
func Summary(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrConfiguration):
		return "Configuration error"
	case errors.Is(err, ErrValidation):
		return "Invalid input"
	case errors.Is(err, ErrSearch):
		return "Search failed"
	case errors.Is(err, ErrLLM):
		return "Content generation failed"
	case errors.Is(err, ErrRender):
		return "Document generation failed"
	case errors.Is(err, ErrDatabase):
		return "Database error"
	case errors.Is(err, ErrFileSystem):
		return "File system error"
	default:
		return "Unexpected error"
	}
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
