package main

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"searchai/internal/logging"
	"searchai/internal/services"
	"searchai/internal/workerpool"
)

func TestReportAbandonedCalls(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	pool := workerpool.New(1, logging.NewNop())

	reportAbandonedCalls(logger, pool)
	if buf.Len() != 0 {
		t.Fatalf("expected no warning for an idle pool, got %s", buf.String())
	}

	release := make(chan struct{})
	defer close(release)
	_, err := workerpool.Do(context.Background(), pool, 20*time.Millisecond, func(context.Context) (string, error) {
		<-release
		return "", nil
	})
	if !errors.Is(err, services.ErrTimeout) {
		t.Fatalf("expected timeout, got %v", err)
	}

	reportAbandonedCalls(logger, pool)
	out := buf.String()
	if !strings.Contains(out, "backend calls still running at exit") || !strings.Contains(out, "in_flight=1") {
		t.Fatalf("unexpected warning output %q", out)
	}
}
