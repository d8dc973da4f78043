package preflight

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"searchai/internal/config"
	"searchai/internal/testsupport"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckOutputDirectory_WillBeCreated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b")
	result := CheckOutputDirectory("out", path)
	if !result.Passed || !strings.Contains(result.Detail, "will be created") {
		t.Fatalf("expected pass for creatable dir, got: %+v", result)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("check must not create the directory")
	}
}

func TestCheckDatabase(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	result := CheckDatabase(context.Background(), cfg)
	if !result.Passed {
		t.Fatalf("expected database check to pass, got: %s", result.Detail)
	}
	if !strings.Contains(result.Detail, "0 queries") {
		t.Fatalf("unexpected detail %q", result.Detail)
	}
}

func TestCheckSerper(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-API-KEY") != "good-key" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"organic": []any{}})
	}))
	defer srv.Close()

	ok := CheckSerper(context.Background(), config.Search{APIKey: "good-key", BaseURL: srv.URL})
	if !ok.Passed {
		t.Fatalf("expected pass, got: %s", ok.Detail)
	}
	bad := CheckSerper(context.Background(), config.Search{APIKey: "bad-key", BaseURL: srv.URL})
	if bad.Passed || !strings.Contains(bad.Detail, "403") {
		t.Fatalf("expected 403 failure, got: %+v", bad)
	}
	missing := CheckSerper(context.Background(), config.Search{})
	if missing.Passed {
		t.Fatal("expected failure for missing key")
	}
}

func TestCheckLLM(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []any{map[string]any{"message": map[string]any{"content": `{"ok":true}`}}},
		})
	}))
	defer srv.Close()

	result := CheckLLM(context.Background(), config.LLM{Provider: "openai", APIKey: "k", BaseURL: srv.URL, Model: "m"})
	if !result.Passed {
		t.Fatalf("expected pass, got: %s", result.Detail)
	}
	if missing := CheckLLM(context.Background(), config.LLM{Provider: "openai"}); missing.Passed {
		t.Fatal("expected failure for missing key")
	}
}

func TestRunAllSkipsSerperForAgentBackend(t *testing.T) {
	llmSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []any{map[string]any{"message": map[string]any{"content": `{"ok":true}`}}},
		})
	}))
	defer llmSrv.Close()

	cfg := testsupport.NewConfig(t, testsupport.WithSearchBackend("agent"), testsupport.WithLLMBaseURL(llmSrv.URL))
	results := RunAll(context.Background(), cfg)
	for _, r := range results {
		if strings.HasPrefix(r.Name, "Search") {
			t.Fatalf("serper check should be skipped, got %+v", r)
		}
	}
	if Failed(results) {
		t.Fatalf("expected all checks to pass, got %+v", results)
	}
}
