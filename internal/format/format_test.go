package format_test

import (
	"errors"
	"strings"
	"testing"

	"searchai/internal/format"
)

func TestParseIsCaseInsensitive(t *testing.T) {
	cases := map[string]format.Format{
		"markdown": format.Markdown,
		"PDF":      format.PDF,
		" Ppt ":    format.PPT,
		"MarkDown": format.Markdown,
	}
	for input, want := range cases {
		got, err := format.Parse(input)
		if err != nil {
			t.Fatalf("Parse(%q) returned error: %v", input, err)
		}
		if got != want {
			t.Fatalf("Parse(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestParseRejectsUnknown(t *testing.T) {
	for _, input := range []string{"", "docx", "pptx", "html"} {
		_, err := format.Parse(input)
		if !errors.Is(err, format.ErrUnsupported) {
			t.Fatalf("Parse(%q) expected ErrUnsupported, got %v", input, err)
		}
		if !strings.Contains(err.Error(), "markdown, pdf, ppt") {
			t.Fatalf("expected supported list in error, got %q", err.Error())
		}
	}
}

func TestDefaultParamsPerFormat(t *testing.T) {
	prose := format.DefaultParams(format.Markdown)
	if prose.Temperature != 0.2 || prose.TopP != 0.95 || prose.TopK != 40 || prose.MaxOutputTokens != 4096 {
		t.Fatalf("unexpected prose params: %+v", prose)
	}
	if format.DefaultParams(format.PDF) != prose {
		t.Fatalf("expected pdf to share prose params")
	}
	slides := format.DefaultParams(format.PPT)
	if slides.Temperature != 0.4 || slides.MaxOutputTokens != 2048 {
		t.Fatalf("unexpected slide params: %+v", slides)
	}
}

func TestOverridesApplyAndValidate(t *testing.T) {
	temperature := 0.7
	merged := format.Overrides{Temperature: &temperature}.Apply(format.DefaultParams(format.PDF))
	if merged.Temperature != 0.7 || merged.MaxOutputTokens != 4096 || merged.TopK != 40 {
		t.Fatalf("unexpected merge result: %+v", merged)
	}
	if err := merged.Validate(); err != nil {
		t.Fatalf("expected valid params, got %v", err)
	}
	zero := 0.0
	if got := (format.Overrides{Temperature: &zero}).Apply(format.DefaultParams(format.PPT)); got.Temperature != 0 {
		t.Fatalf("explicit zero temperature replaced: %+v", got)
	}
	if err := (format.Params{Temperature: 3, MaxOutputTokens: 1}).Validate(); err == nil {
		t.Fatal("expected temperature range error")
	}
	if err := (format.Params{TopP: 0.5}).Validate(); err == nil {
		t.Fatal("expected max_output_tokens error")
	}
}

func TestInstructionsAndExtensions(t *testing.T) {
	if !strings.Contains(format.Markdown.Instructions(), "Do NOT wrap") {
		t.Fatal("markdown instructions should forbid code fences")
	}
	if !strings.Contains(format.PDF.Instructions(), "References") {
		t.Fatal("pdf instructions should request references")
	}
	if !strings.Contains(format.PPT.Instructions(), "--- Slide:") {
		t.Fatal("ppt instructions should describe slide markers")
	}
	if format.PPT.Extension() != ".pptx" || format.Markdown.Extension() != ".md" || format.PDF.Extension() != ".pdf" {
		t.Fatal("unexpected extensions")
	}
	if format.PPT.Prose() || !format.PDF.Prose() {
		t.Fatal("unexpected prose classification")
	}
}
