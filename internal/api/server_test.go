package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"searchai/internal/format"
	"searchai/internal/logging"
	"searchai/internal/services"
	"searchai/internal/store"
	"searchai/internal/testsupport"
	"searchai/internal/workflow"
)

type runnerFunc func(ctx context.Context, req workflow.Request) (*workflow.Outcome, error)

func (f runnerFunc) Run(ctx context.Context, req workflow.Request) (*workflow.Outcome, error) {
	return f(ctx, req)
}

func newTestServer(t *testing.T, runner Runner) (*httptest.Server, *store.Store) {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	srv, err := NewServer("127.0.0.1:0", runner, st, logging.NewNop())
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, st
}

func postQuery(t *testing.T, baseURL, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(baseURL+"/api/v1/queries", "application/json", bytes.NewBufferString(body))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestHealth(t *testing.T) {
	ts, _ := newTestServer(t, runnerFunc(func(context.Context, workflow.Request) (*workflow.Outcome, error) {
		return nil, nil
	}))
	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	var payload HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.StatusCode != http.StatusOK || payload.Status != "ok" {
		t.Fatalf("unexpected health response %d %+v", resp.StatusCode, payload)
	}
}

func TestSubmitCreatesOutcome(t *testing.T) {
	var got workflow.Request
	ts, _ := newTestServer(t, runnerFunc(func(_ context.Context, req workflow.Request) (*workflow.Outcome, error) {
		got = req
		return &workflow.Outcome{QueryID: "q-1", Format: req.Format, Path: "/tmp/out.pdf", Size: 42}, nil
	}))

	resp := postQuery(t, ts.URL, `{"query":"solar panels","format":" PDF "}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	var payload SubmitResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Outcome == nil || payload.Outcome.QueryID != "q-1" || payload.Outcome.Size != 42 {
		t.Fatalf("unexpected outcome %+v", payload.Outcome)
	}
	if got.Query != "solar panels" || got.Format != format.PDF {
		t.Fatalf("unexpected request %+v", got)
	}
}

func TestSubmitStatusCodes(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		stage  string
	}{
		{
			name:   "validation",
			err:    services.WithStageError(workflow.StageValidate, services.Wrap(services.ErrValidation, "", "", "query cannot be empty", nil)),
			status: http.StatusBadRequest,
			stage:  workflow.StageValidate,
		},
		{
			name:   "search",
			err:    services.WithStageError(workflow.StageSearch, fmt.Errorf("%w: no valid search results found", services.ErrSearch)),
			status: http.StatusBadGateway,
			stage:  workflow.StageSearch,
		},
		{
			name:   "database",
			err:    services.WithStageError(workflow.StageDatabase, fmt.Errorf("%w: disk full", services.ErrDatabase)),
			status: http.StatusInternalServerError,
			stage:  workflow.StageDatabase,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, _ := newTestServer(t, runnerFunc(func(context.Context, workflow.Request) (*workflow.Outcome, error) {
				return nil, tt.err
			}))
			resp := postQuery(t, ts.URL, `{"query":"x","format":"markdown"}`)
			if resp.StatusCode != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, resp.StatusCode)
			}
			var payload ErrorResponse
			if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if payload.Stage != tt.stage || payload.Error == "" {
				t.Fatalf("unexpected error payload %+v", payload)
			}
		})
	}
}

func TestSubmitRejectsMalformedBody(t *testing.T) {
	called := false
	ts, _ := newTestServer(t, runnerFunc(func(context.Context, workflow.Request) (*workflow.Outcome, error) {
		called = true
		return nil, nil
	}))
	resp := postQuery(t, ts.URL, `{not json`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if called {
		t.Fatal("runner should not be called for malformed body")
	}
}

func TestHistoryAndShow(t *testing.T) {
	ts, st := newTestServer(t, runnerFunc(func(context.Context, workflow.Request) (*workflow.Outcome, error) {
		return nil, nil
	}))
	ctx := context.Background()
	for _, text := range []string{"first", "second", "third"} {
		if _, err := st.CreateQuery(ctx, text, format.Markdown); err != nil {
			t.Fatalf("CreateQuery: %v", err)
		}
	}
	processing := testsupport.MustCreateProcessing(t, st, "with results")
	if _, err := st.StoreResults(ctx, processing.ID, []store.ResultInput{{URL: "https://a.example", Title: "A", Snippet: "a"}}); err != nil {
		t.Fatalf("StoreResults: %v", err)
	}

	resp, err := http.Get(ts.URL + "/api/v1/queries?limit=2")
	if err != nil {
		t.Fatalf("get history: %v", err)
	}
	defer resp.Body.Close()
	var history HistoryResponse
	if err := json.NewDecoder(resp.Body).Decode(&history); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if len(history.Queries) != 2 {
		t.Fatalf("expected 2 queries, got %d", len(history.Queries))
	}

	resp2, err := http.Get(ts.URL + "/api/v1/queries/" + processing.ID)
	if err != nil {
		t.Fatalf("get query: %v", err)
	}
	defer resp2.Body.Close()
	var detail QueryDetail
	if err := json.NewDecoder(resp2.Body).Decode(&detail); err != nil {
		t.Fatalf("decode detail: %v", err)
	}
	if detail.Query.ID != processing.ID || len(detail.Results) != 1 || detail.Results[0].URL != "https://a.example" {
		t.Fatalf("unexpected detail %+v", detail)
	}
	if detail.Documents == nil {
		t.Fatal("documents should encode as an empty list")
	}
}

func TestShowUnknownQuery(t *testing.T) {
	ts, _ := newTestServer(t, runnerFunc(func(context.Context, workflow.Request) (*workflow.Outcome, error) {
		return nil, nil
	}))
	resp, err := http.Get(ts.URL + "/api/v1/queries/does-not-exist")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestHistoryRejectsBadLimit(t *testing.T) {
	ts, _ := newTestServer(t, runnerFunc(func(context.Context, workflow.Request) (*workflow.Outcome, error) {
		return nil, nil
	}))
	resp, err := http.Get(ts.URL + "/api/v1/queries?limit=zero")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestNewServerRequiresDependencies(t *testing.T) {
	if _, err := NewServer("127.0.0.1:0", nil, nil, nil); err == nil {
		t.Fatal("expected error for missing dependencies")
	}
}

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSubmitFailureLogLevel(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		level string
	}{
		{
			name:  "database failure logs error",
			err:   services.WithStageError(workflow.StageDatabase, fmt.Errorf("%w: disk full", services.ErrDatabase)),
			level: "level=ERROR",
		},
		{
			name:  "backend failure logs warning",
			err:   services.WithStageError(workflow.StageGenerate, fmt.Errorf("%w: upstream 503", services.ErrLLM)),
			level: "level=WARN",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs lockedBuffer
			cfg := testsupport.NewConfig(t)
			st := testsupport.MustOpenStore(t, cfg)
			runner := runnerFunc(func(context.Context, workflow.Request) (*workflow.Outcome, error) {
				return nil, tt.err
			})
			srv, err := NewServer("127.0.0.1:0", runner, st, slog.New(slog.NewTextHandler(&logs, nil)))
			if err != nil {
				t.Fatalf("NewServer: %v", err)
			}
			ts := httptest.NewServer(srv.Handler())
			defer ts.Close()

			postQuery(t, ts.URL, `{"query":"x","format":"markdown"}`)

			var line string
			for _, l := range strings.Split(logs.String(), "\n") {
				if strings.Contains(l, "api query failed") {
					line = l
				}
			}
			if !strings.Contains(line, tt.level) || !strings.Contains(line, "event_type=api_query_failed") {
				t.Fatalf("expected %s api_query_failed entry, got logs:\n%s", tt.level, logs.String())
			}
		})
	}
}
