package search

import (
	"testing"
)

func TestParseTranscriptSegments(t *testing.T) {
	raw := "Here are the results:\n\n" +
		"https://go.dev/doc\nGo Documentation\nOfficial docs for\nthe Go language.\n\n" +
		"https://pkg.go.dev\nGo Packages\n\n"
	got := ParseTranscript(raw, nil)
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d: %+v", len(got), got)
	}
	if got[0].URL != "https://go.dev/doc" || got[0].Title != "Go Documentation" {
		t.Fatalf("unexpected first result %+v", got[0])
	}
	if got[0].Snippet != "Official docs for the Go language." {
		t.Fatalf("unexpected snippet %q", got[0].Snippet)
	}
	if got[1].Snippet != noSummary {
		t.Fatalf("expected placeholder snippet, got %q", got[1].Snippet)
	}
}

func TestParseTranscriptSkipsSegmentsWithoutTitle(t *testing.T) {
	raw := "https://a.example\n\n   \nhttps://b.example\nB title\nsummary"
	got := ParseTranscript(raw, nil)
	if len(got) != 1 || got[0].URL != "https://b.example" {
		t.Fatalf("expected only b.example, got %+v", got)
	}
}

func TestParseTranscriptFallback(t *testing.T) {
	raw := "I could not find any links, but here is what I know."
	got := ParseTranscript(raw, nil)
	if len(got) != 1 {
		t.Fatalf("expected fallback result, got %+v", got)
	}
	if got[0].Title != "Search Results" || got[0].URL != "N/A" || got[0].Snippet != raw {
		t.Fatalf("unexpected fallback %+v", got[0])
	}
}

func TestParseTranscriptNoInternet(t *testing.T) {
	got := ParseTranscript("Sorry, I do not have direct access to the internet.", nil)
	if len(got) != 1 || got[0].Title != "Error: No Internet Access" {
		t.Fatalf("expected no-internet result, got %+v", got)
	}
}

func TestParseTranscriptBlank(t *testing.T) {
	if got := ParseTranscript("  \n ", nil); len(got) != 0 {
		t.Fatalf("expected no results for blank input, got %+v", got)
	}
}
