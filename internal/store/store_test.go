package store_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"searchai/internal/format"
	"searchai/internal/services"
	"searchai/internal/store"
	"searchai/internal/testsupport"
)

func TestOpenIsIdempotent(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	first := testsupport.MustOpenStore(t, cfg)
	if err := first.Init(context.Background()); err != nil {
		t.Fatalf("second Init failed: %v", err)
	}
	second := testsupport.MustOpenStore(t, cfg)
	if err := second.Ping(context.Background()); err != nil {
		t.Fatalf("Ping failed: %v", err)
	}
}

func TestOpenInMemory(t *testing.T) {
	st, err := store.OpenDSN(context.Background(), ":memory:", 0)
	if err != nil {
		t.Fatalf("OpenDSN failed: %v", err)
	}
	defer st.Close()

	if _, err := st.CreateQuery(context.Background(), "memory", format.PDF); err != nil {
		t.Fatalf("CreateQuery failed: %v", err)
	}
}

func TestOpenRejectsEmptyDSN(t *testing.T) {
	_, err := store.OpenDSN(context.Background(), " ", 0)
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestCreateQueryStartsPending(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	q, err := st.CreateQuery(ctx, "quantum computing", format.PPT)
	if err != nil {
		t.Fatalf("CreateQuery failed: %v", err)
	}
	if q.ID == "" || q.Status != store.StatusPending {
		t.Fatalf("unexpected query: %#v", q)
	}

	fetched, err := st.GetQuery(ctx, q.ID)
	if err != nil {
		t.Fatalf("GetQuery failed: %v", err)
	}
	if fetched.Text != "quantum computing" || fetched.Format != format.PPT || fetched.Status != store.StatusPending {
		t.Fatalf("unexpected fetched query: %#v", fetched)
	}
	if fetched.CreatedAt.IsZero() {
		t.Fatal("expected created_at to be populated")
	}
}

func TestCreateQueryRejectsUnknownFormat(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	if _, err := st.CreateQuery(context.Background(), "x", format.Format("docx")); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateStatusTransitions(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	cases := []struct {
		name    string
		path    []store.Status
		next    store.Status
		wantErr error
	}{
		{name: "pending to processing", next: store.StatusProcessing},
		{name: "pending to failed", next: store.StatusFailed},
		{name: "processing to completed", path: []store.Status{store.StatusProcessing}, next: store.StatusCompleted},
		{name: "processing to failed", path: []store.Status{store.StatusProcessing}, next: store.StatusFailed},
		{name: "pending to completed", next: store.StatusCompleted, wantErr: store.ErrInvalidTransition},
		{name: "processing twice", path: []store.Status{store.StatusProcessing}, next: store.StatusProcessing, wantErr: store.ErrInvalidTransition},
		{name: "completed to failed", path: []store.Status{store.StatusProcessing, store.StatusCompleted}, next: store.StatusFailed, wantErr: store.ErrInvalidTransition},
		{name: "failed to processing", path: []store.Status{store.StatusFailed}, next: store.StatusProcessing, wantErr: store.ErrInvalidTransition},
		{name: "back to pending", path: []store.Status{store.StatusProcessing}, next: store.StatusPending, wantErr: store.ErrInvalidTransition},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q, err := st.CreateQuery(ctx, tc.name, format.Markdown)
			if err != nil {
				t.Fatalf("CreateQuery failed: %v", err)
			}
			for _, step := range tc.path {
				if err := st.UpdateStatus(ctx, q.ID, step, "step"); err != nil {
					t.Fatalf("UpdateStatus(%s) failed: %v", step, err)
				}
			}
			err = st.UpdateStatus(ctx, q.ID, tc.next, "boom")
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("UpdateStatus(%s) failed: %v", tc.next, err)
				}
				fetched, err := st.GetQuery(ctx, q.ID)
				if err != nil {
					t.Fatalf("GetQuery failed: %v", err)
				}
				if fetched.Status != tc.next {
					t.Fatalf("status = %s, want %s", fetched.Status, tc.next)
				}
				if tc.next == store.StatusFailed && fetched.ErrorMessage != "boom" {
					t.Fatalf("expected failure message to be stored, got %q", fetched.ErrorMessage)
				}
				if tc.next != store.StatusFailed && fetched.ErrorMessage != "" {
					t.Fatalf("expected no message for %s, got %q", tc.next, fetched.ErrorMessage)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
			if !errors.Is(err, services.ErrDatabase) {
				t.Fatalf("expected database marker, got %v", err)
			}
		})
	}
}

func TestUpdateStatusUnknownQuery(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	err := st.UpdateStatus(context.Background(), "missing-id", store.StatusProcessing, "")
	if !errors.Is(err, store.ErrQueryNotFound) {
		t.Fatalf("expected ErrQueryNotFound, got %v", err)
	}
	if _, err := st.GetQuery(context.Background(), "missing-id"); !errors.Is(err, store.ErrQueryNotFound) {
		t.Fatalf("expected ErrQueryNotFound from GetQuery, got %v", err)
	}
}

func TestStoreResultsPreservesOrder(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()
	q := testsupport.MustCreateProcessing(t, st, "rust vs go")

	inputs := []store.ResultInput{
		{URL: "https://b.example", Title: "B", Snippet: "second letter"},
		{URL: "https://a.example", Title: "A", Snippet: "first letter"},
		{URL: "", Title: "No URL", Snippet: ""},
	}
	n, err := st.StoreResults(ctx, q.ID, inputs)
	if err != nil {
		t.Fatalf("StoreResults failed: %v", err)
	}
	if n != len(inputs) {
		t.Fatalf("stored %d, want %d", n, len(inputs))
	}

	stored, err := st.Results(ctx, q.ID)
	if err != nil {
		t.Fatalf("Results failed: %v", err)
	}
	if len(stored) != len(inputs) {
		t.Fatalf("got %d results, want %d", len(stored), len(inputs))
	}
	for i, r := range stored {
		if r.Position != i || r.Title != inputs[i].Title || r.URL != inputs[i].URL || r.QueryID != q.ID {
			t.Fatalf("result %d mismatch: %#v", i, r)
		}
	}
}

func TestStoreResultsRequiresProcessing(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	q, err := st.CreateQuery(ctx, "pending query", format.Markdown)
	if err != nil {
		t.Fatalf("CreateQuery failed: %v", err)
	}
	_, err = st.StoreResults(ctx, q.ID, []store.ResultInput{{Title: "x"}})
	if !errors.Is(err, store.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition for pending query, got %v", err)
	}
	if _, err := st.StoreResults(ctx, "missing", nil); !errors.Is(err, store.ErrQueryNotFound) {
		t.Fatalf("expected ErrQueryNotFound, got %v", err)
	}
	stored, err := st.Results(ctx, q.ID)
	if err != nil {
		t.Fatalf("Results failed: %v", err)
	}
	if len(stored) != 0 {
		t.Fatalf("expected no stored rows, got %d", len(stored))
	}
}

func TestLogDocumentAndDocuments(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()
	q := testsupport.MustCreateProcessing(t, st, "docs")

	path := filepath.Join(cfg.Paths.OutputDir, "docs.md")
	doc, err := st.LogDocument(ctx, q.ID, path, format.Markdown, 1234)
	if err != nil {
		t.Fatalf("LogDocument failed: %v", err)
	}
	if doc.ID == "" || doc.Size != 1234 {
		t.Fatalf("unexpected document: %#v", doc)
	}
	if err := st.UpdateStatus(ctx, q.ID, store.StatusCompleted, ""); err != nil {
		t.Fatalf("UpdateStatus completed failed: %v", err)
	}
	if _, err := st.LogDocument(ctx, q.ID, path, format.Markdown, 1); !errors.Is(err, store.ErrInvalidTransition) {
		t.Fatalf("expected completed query to reject documents, got %v", err)
	}

	docs, err := st.Documents(ctx, q.ID)
	if err != nil {
		t.Fatalf("Documents failed: %v", err)
	}
	if len(docs) != 1 || docs[0].Path != path || docs[0].Format != format.Markdown {
		t.Fatalf("unexpected documents: %#v", docs)
	}
}

func TestHistoryNewestFirstWithLimit(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	var ids []string
	for _, text := range []string{"first", "second", "third"} {
		q, err := st.CreateQuery(ctx, text, format.Markdown)
		if err != nil {
			t.Fatalf("CreateQuery failed: %v", err)
		}
		ids = append(ids, q.ID)
	}

	history, err := st.History(ctx, 2)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(history))
	}
	if history[0].ID != ids[2] || history[1].ID != ids[1] {
		t.Fatalf("unexpected order: %s, %s", history[0].Text, history[1].Text)
	}

	all, err := st.History(ctx, 0)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected default limit to include all 3, got %d", len(all))
	}
}

func TestStatsCountsEveryStatus(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	testsupport.MustCreateProcessing(t, st, "a")
	if _, err := st.CreateQuery(ctx, "b", format.PDF); err != nil {
		t.Fatalf("CreateQuery failed: %v", err)
	}

	stats, err := st.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats[store.StatusPending] != 1 || stats[store.StatusProcessing] != 1 || stats[store.StatusCompleted] != 0 {
		t.Fatalf("unexpected stats: %v", stats)
	}
	if len(stats) != len(store.AllStatuses()) {
		t.Fatalf("expected every status key, got %v", stats)
	}
}

func TestStatusHelpers(t *testing.T) {
	if s, ok := store.ParseStatus(" Completed "); !ok || s != store.StatusCompleted {
		t.Fatalf("ParseStatus failed: %v %v", s, ok)
	}
	if _, ok := store.ParseStatus("review"); ok {
		t.Fatal("expected unknown status to fail")
	}
	if !store.StatusFailed.Terminal() || store.StatusProcessing.Terminal() {
		t.Fatal("unexpected terminal classification")
	}
	if !store.StatusPending.CanTransition(store.StatusProcessing) || store.StatusCompleted.CanTransition(store.StatusFailed) {
		t.Fatal("unexpected transition rules")
	}
}
