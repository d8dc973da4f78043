package services_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"searchai/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrSearch, "search", "serper", "request failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrSearch) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"search", "serper", "request failed"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapWithoutCause(t *testing.T) {
	err := services.Wrap(services.ErrValidation, "", "", "", nil)
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("expected placeholder detail, got %q", err.Error())
	}
}

func TestStageErrorRoundTrip(t *testing.T) {
	base := services.Wrap(services.ErrLLM, "generate", "", "empty response", nil)
	err := services.WithStageError("generate", base)
	wrapped := fmt.Errorf("run: %w", err)

	stage, ok := services.Stage(wrapped)
	if !ok || stage != "generate" {
		t.Fatalf("expected generate stage, got %q %v", stage, ok)
	}
	if !errors.Is(wrapped, services.ErrLLM) {
		t.Fatalf("expected llm marker through stage error")
	}
	if again := services.WithStageError("render", err); again != err {
		t.Fatalf("expected existing stage to be preserved")
	}
	if services.WithStageError("search", nil) != nil {
		t.Fatalf("expected nil passthrough")
	}
}

func TestDocumentErrorMatchesRenderMarker(t *testing.T) {
	cause := errors.New("disk full")
	err := &services.DocumentError{Format: "pdf", Detail: "write page", Err: cause}
	if !errors.Is(err, services.ErrRender) {
		t.Fatalf("expected render marker")
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause to be reachable")
	}
	if got := err.Error(); !strings.Contains(got, "pdf document") || !strings.Contains(got, "disk full") {
		t.Fatalf("unexpected message %q", got)
	}
	if services.Summary(err) != "Document generation failed" {
		t.Fatalf("unexpected summary %q", services.Summary(err))
	}
}

func TestSummaryCategories(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{services.Wrap(services.ErrSearch, "search", "", "x", nil), "Search failed"},
		{services.Wrap(services.ErrDatabase, "store", "", "x", nil), "Database error"},
		{services.Wrap(services.ErrConfiguration, "config", "", "x", nil), "Configuration error"},
		{errors.New("other"), "Unexpected error"},
	}
	for _, tc := range cases {
		if got := services.Summary(tc.err); got != tc.want {
			t.Fatalf("Summary(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}
