package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"searchai/internal/format"
	"searchai/internal/services"
)

func completionServer(t *testing.T, handler func(req chatCompletionRequest) any) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test" {
			t.Errorf("unexpected auth header %q", got)
		}
		var req chatCompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if err := json.NewEncoder(w).Encode(handler(req)); err != nil {
			t.Errorf("encode response: %v", err)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func contentResponse(content string) map[string]any {
	return map[string]any{
		"choices": []any{
			map[string]any{"message": map[string]any{"content": content}},
		},
	}
}

func TestCompleteSendsSamplingParameters(t *testing.T) {
	var captured chatCompletionRequest
	server := completionServer(t, func(req chatCompletionRequest) any {
		captured = req
		return contentResponse("# Title\n\nBody")
	})

	client := NewClient(Config{APIKey: "test", BaseURL: server.URL, Model: "demo-model", Title: "searchai"})
	got, err := client.Complete(context.Background(), services.CompletionRequest{
		System: "system prompt",
		Prompt: "user prompt",
		Params: format.DefaultParams(format.PPT),
	})
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	if got != "# Title\n\nBody" {
		t.Fatalf("unexpected content %q", got)
	}
	if captured.Model != "demo-model" {
		t.Fatalf("unexpected model %q", captured.Model)
	}
	if captured.Temperature == nil || *captured.Temperature != 0.4 || captured.MaxTokens != 2048 || captured.TopP != 0.95 || captured.TopK != 40 {
		t.Fatalf("unexpected sampling params: %+v", captured)
	}
	if len(captured.Messages) != 2 || captured.Messages[0].Role != "system" || captured.Messages[1].Content != "user prompt" {
		t.Fatalf("unexpected messages: %+v", captured.Messages)
	}
}

func TestCompleteModelOverride(t *testing.T) {
	var model string
	server := completionServer(t, func(req chatCompletionRequest) any {
		model = req.Model
		return contentResponse("ok")
	})
	client := NewClient(Config{APIKey: "test", BaseURL: server.URL, Model: "default"})
	if _, err := client.Complete(context.Background(), services.CompletionRequest{Prompt: "p", Model: "research-model"}); err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	if model != "research-model" {
		t.Fatalf("expected override model, got %q", model)
	}
}

func TestCompleteDoesNotRetry(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limited"}}`))
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "test", BaseURL: server.URL, Model: "demo"})
	_, err := client.Complete(context.Background(), services.CompletionRequest{Prompt: "p"})
	if err == nil || !strings.Contains(err.Error(), "http 429") {
		t.Fatalf("expected http 429 error, got %v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("expected exactly one request, got %d", calls.Load())
	}
}

func TestCompleteEmptyContentHasSnippet(t *testing.T) {
	server := completionServer(t, func(chatCompletionRequest) any {
		return map[string]any{
			"choices": []any{
				map[string]any{"message": map[string]any{"content": ""}, "finish_reason": "length"},
			},
		}
	})
	client := NewClient(Config{APIKey: "test", BaseURL: server.URL, Model: "demo"})
	_, err := client.Complete(context.Background(), services.CompletionRequest{Prompt: "p"})
	if err == nil {
		t.Fatal("expected empty content error")
	}
	if !strings.Contains(err.Error(), `finish_reason="length"`) || !strings.Contains(err.Error(), "response_snippet=") {
		t.Fatalf("expected diagnostic detail, got %v", err)
	}
}

func TestCompleteFallsBackToDeltaAndLegacyText(t *testing.T) {
	responses := []any{
		map[string]any{"choices": []any{map[string]any{"delta": map[string]any{"content": "from delta"}}}},
		map[string]any{"choices": []any{map[string]any{"text": "from text"}}},
	}
	var idx atomic.Int32
	server := completionServer(t, func(chatCompletionRequest) any {
		return responses[idx.Add(1)-1]
	})
	client := NewClient(Config{APIKey: "test", BaseURL: server.URL, Model: "demo"})
	for _, want := range []string{"from delta", "from text"} {
		got, err := client.Complete(context.Background(), services.CompletionRequest{Prompt: "p"})
		if err != nil {
			t.Fatalf("Complete returned error: %v", err)
		}
		if got != want {
			t.Fatalf("got %q, want %q", got, want)
		}
	}
}

func TestCompleteRequiresKeyAndPrompt(t *testing.T) {
	client := NewClient(Config{BaseURL: "http://127.0.0.1:0"})
	if _, err := client.Complete(context.Background(), services.CompletionRequest{Prompt: "p"}); err == nil {
		t.Fatal("expected missing api key error")
	}
	client = NewClient(Config{APIKey: "k", BaseURL: "http://127.0.0.1:0"})
	if _, err := client.Complete(context.Background(), services.CompletionRequest{Prompt: "  "}); err == nil {
		t.Fatal("expected missing prompt error")
	}
}

func TestClientHealthCheckCodeFence(t *testing.T) {
	server := completionServer(t, func(req chatCompletionRequest) any {
		if req.ResponseFormat["type"] != jsonResponseType {
			t.Errorf("expected json response format, got %v", req.ResponseFormat)
		}
		return contentResponse("```json\n{\"ok\":true}\n```")
	})
	client := NewClient(Config{APIKey: "test", BaseURL: server.URL, Model: "demo-model"})
	if err := client.HealthCheck(context.Background()); err != nil {
		t.Fatalf("HealthCheck returned error: %v", err)
	}
}

func TestClientHealthCheckFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "test", BaseURL: server.URL, Model: "demo"})
	if err := client.HealthCheck(context.Background()); err == nil {
		t.Fatal("expected health check to fail")
	}
}

func TestDecodeLLMJSONExtractsObject(t *testing.T) {
	var parsed struct {
		OK bool `json:"ok"`
	}
	if err := DecodeLLMJSON("Sure! {\"ok\":true} hope this helps", &parsed); err != nil {
		t.Fatalf("DecodeLLMJSON returned error: %v", err)
	}
	if !parsed.OK {
		t.Fatal("expected ok=true")
	}
	if err := DecodeLLMJSON("   ", &parsed); err == nil {
		t.Fatal("expected empty payload error")
	}
}
