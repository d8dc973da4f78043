package testsupport

import (
	"context"
	"testing"

	"searchai/internal/config"
	"searchai/internal/store"
)

// MustOpenStore opens the configured database and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()

	st, err := store.Open(context.Background(), cfg)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

// MustCreateProcessing inserts a query and moves it to processing.
func MustCreateProcessing(t testing.TB, st *store.Store, text string) *store.Query {
	t.Helper()

	ctx := context.Background()
	q, err := st.CreateQuery(ctx, text, "markdown")
	if err != nil {
		t.Fatalf("CreateQuery: %v", err)
	}
	if err := st.UpdateStatus(ctx, q.ID, store.StatusProcessing, ""); err != nil {
		t.Fatalf("UpdateStatus processing: %v", err)
	}
	q.Status = store.StatusProcessing
	return q
}
