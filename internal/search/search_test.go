package search

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"searchai/internal/services"
	"searchai/internal/workerpool"
)

type backendFunc func(ctx context.Context, query string) (Response, error)

func (f backendFunc) Search(ctx context.Context, query string) (Response, error) {
	return f(ctx, query)
}

type stubCompleter struct {
	text string
	err  error
	got  services.CompletionRequest
}

func (s *stubCompleter) Complete(_ context.Context, req services.CompletionRequest) (string, error) {
	s.got = req
	return s.text, s.err
}

func newClient(b Backend, timeout time.Duration) *Client {
	return NewClient(b, workerpool.New(2, nil), timeout, nil)
}

func TestClientUsesStructuredResults(t *testing.T) {
	client := newClient(backendFunc(func(ctx context.Context, q string) (Response, error) {
		if q != "go" {
			t.Errorf("unexpected query %q", q)
		}
		return Response{Results: []Result{
			{Title: " A ", URL: "https://a.example", Snippet: "first"},
			{Title: "", URL: ""},
			{URL: "https://c.example"},
		}}, nil
	}), time.Second)

	got, err := client.Search(context.Background(), "  go ")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected empty entry dropped, got %+v", got)
	}
	if got[0].Title != "A" {
		t.Fatalf("expected trimmed title, got %q", got[0].Title)
	}
	if got[1].Title != "https://c.example" || got[1].Snippet != noSummary {
		t.Fatalf("expected defaults for sparse entry, got %+v", got[1])
	}
}

func TestClientParsesTranscript(t *testing.T) {
	client := newClient(backendFunc(func(context.Context, string) (Response, error) {
		return Response{Raw: "https://a.example\nTitle\nSummary"}, nil
	}), time.Second)
	got, err := client.Search(context.Background(), "q")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(got) != 1 || got[0].Title != "Title" {
		t.Fatalf("unexpected results %+v", got)
	}
}

func TestClientNoResults(t *testing.T) {
	client := newClient(backendFunc(func(context.Context, string) (Response, error) {
		return Response{}, nil
	}), time.Second)
	_, err := client.Search(context.Background(), "q")
	if !errors.Is(err, services.ErrSearch) {
		t.Fatalf("expected ErrSearch, got %v", err)
	}
	if !strings.Contains(err.Error(), "no valid search results found") {
		t.Fatalf("unexpected message %v", err)
	}
}

func TestClientBackendError(t *testing.T) {
	boom := errors.New("http 500")
	client := newClient(backendFunc(func(context.Context, string) (Response, error) {
		return Response{}, boom
	}), time.Second)
	_, err := client.Search(context.Background(), "q")
	if !errors.Is(err, services.ErrSearch) || !errors.Is(err, boom) {
		t.Fatalf("expected ErrSearch wrapping cause, got %v", err)
	}
}

func TestClientTimeout(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	client := newClient(backendFunc(func(ctx context.Context, _ string) (Response, error) {
		select {
		case <-release:
		case <-ctx.Done():
		}
		return Response{Raw: "late"}, nil
	}), 20*time.Millisecond)

	_, err := client.Search(context.Background(), "q")
	if !errors.Is(err, services.ErrSearch) || !errors.Is(err, services.ErrTimeout) {
		t.Fatalf("expected search timeout, got %v", err)
	}
}

func TestTimeoutMessageUsesSeconds(t *testing.T) {
	if got := seconds(60 * time.Second); got != "60s" {
		t.Fatalf("seconds(60s) = %q", got)
	}
	if got := seconds(1500 * time.Millisecond); got != "1.5s" {
		t.Fatalf("seconds(1.5s) = %q", got)
	}
}

func TestClientRejectsBlankQuery(t *testing.T) {
	client := newClient(backendFunc(func(context.Context, string) (Response, error) {
		t.Fatal("backend should not be called")
		return Response{}, nil
	}), time.Second)
	if _, err := client.Search(context.Background(), "   "); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAgentBackend(t *testing.T) {
	completer := &stubCompleter{text: "https://a.example\nA\nsummary"}
	backend := AgentBackend{Completer: completer, Model: "research-model"}
	resp, err := backend.Search(context.Background(), "rust async")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if resp.Raw != completer.text || len(resp.Results) != 0 {
		t.Fatalf("unexpected response %+v", resp)
	}
	if completer.got.Model != "research-model" || !strings.Contains(completer.got.Prompt, "rust async") {
		t.Fatalf("unexpected request %+v", completer.got)
	}
}

func TestAgentBackendError(t *testing.T) {
	backend := AgentBackend{Completer: &stubCompleter{err: errors.New("quota")}}
	if _, err := backend.Search(context.Background(), "q"); err == nil || !strings.Contains(err.Error(), "quota") {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}
