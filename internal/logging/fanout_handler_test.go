package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestNewFanoutHandlerNilHandlers(t *testing.T) {
	h := newFanoutHandler(nil, nil)
	if _, ok := h.(NoopHandler); !ok {
		t.Errorf("expected NoopHandler for all nil handlers, got %T", h)
	}
}

func TestNewFanoutHandlerSingleHandler(t *testing.T) {
	var buf bytes.Buffer
	inner := slog.NewJSONHandler(&buf, nil)

	if h := newFanoutHandler(nil, inner); h != inner {
		t.Error("expected single non-nil handler to be returned unwrapped")
	}
}

func TestFanoutHandlerRespectsPerHandlerLevels(t *testing.T) {
	var console, file bytes.Buffer
	consoleHandler := slog.NewTextHandler(&console, &slog.HandlerOptions{Level: slog.LevelWarn})
	fileHandler := slog.NewTextHandler(&file, &slog.HandlerOptions{Level: slog.LevelInfo})

	logger := slog.New(TeeHandler(consoleHandler, fileHandler)).With("component", "test")
	logger.Info("progress")
	logger.Warn("careful")

	if strings.Contains(console.String(), "progress") {
		t.Errorf("console should not receive info lines: %q", console.String())
	}
	if !strings.Contains(console.String(), "careful") {
		t.Errorf("console should receive warnings: %q", console.String())
	}
	for _, msg := range []string{"progress", "careful", "component=test"} {
		if !strings.Contains(file.String(), msg) {
			t.Errorf("file output missing %q: %q", msg, file.String())
		}
	}
	if slog.New(TeeHandler(consoleHandler, fileHandler)).Enabled(context.Background(), slog.LevelDebug) {
		t.Error("expected debug to be disabled for both handlers")
	}
}
