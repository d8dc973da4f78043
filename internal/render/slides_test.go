package render

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"errors"
	"io"
	"strings"
	"testing"

	"searchai/internal/format"
)

const sampleOutline = `--- Slide: Title ---
Title: Deep Learning Basics
Subtitle: A short tour
Theme: tech

--- Slide: Overview ---
• Neural networks
• Training & data
Layout: simple

--- Slide: Key Takeaways ---
• Start small
Image Suggestion: a lightbulb
Notes: Wrap up the talk
and invite questions.
---`

func TestParseOutline(t *testing.T) {
	slides := ParseOutline(sampleOutline, "deep learning")
	if len(slides) != 3 {
		t.Fatalf("expected 3 slides, got %d: %+v", len(slides), slides)
	}
	if slides[0].Title != "Deep Learning Basics" || slides[0].Subtitle != "A short tour" {
		t.Fatalf("unexpected title slide %+v", slides[0])
	}
	if got := strings.Join(slides[1].Bullets, "|"); got != "Neural networks|Training & data" {
		t.Fatalf("unexpected bullets %q", got)
	}
	if slides[2].Notes != "Wrap up the talk and invite questions." {
		t.Fatalf("unexpected notes %q", slides[2].Notes)
	}
	if len(slides[2].Bullets) != 1 {
		t.Fatalf("metadata lines should not become bullets: %+v", slides[2].Bullets)
	}
}

func TestParseOutlineWithoutMarkers(t *testing.T) {
	slides := ParseOutline("## First\n- a\n- b\n## Second\ntext", "my topic")
	if len(slides) != 3 {
		t.Fatalf("expected title + 2 slides, got %+v", slides)
	}
	if slides[0].Title != "My Topic" || slides[1].Title != "First" || slides[2].Bullets[0] != "text" {
		t.Fatalf("unexpected slides %+v", slides)
	}
}

func TestSlidesRendererWritesValidPackage(t *testing.T) {
	dir := t.TempDir()
	r, err := NewRegistry(WithClock(fixedClock)).For(format.PPT)
	if err != nil {
		t.Fatalf("For(ppt): %v", err)
	}
	path, err := r.Render(context.Background(), sampleOutline, "deep learning", dir)
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if !strings.HasSuffix(path, ".pptx") {
		t.Fatalf("unexpected path %q", path)
	}

	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("open pptx: %v", err)
	}
	defer zr.Close()

	names := map[string]bool{}
	for _, f := range zr.File {
		names[f.Name] = true
		assertWellFormed(t, f)
	}
	for _, want := range []string{
		"[Content_Types].xml",
		"ppt/presentation.xml",
		"ppt/slides/slide1.xml",
		"ppt/slides/slide3.xml",
		"ppt/notesSlides/notesSlide3.xml",
	} {
		if !names[want] {
			t.Fatalf("missing part %s", want)
		}
	}
	if names["ppt/slides/slide4.xml"] || names["ppt/notesSlides/notesSlide1.xml"] {
		t.Fatal("unexpected extra parts")
	}
	if body := readPart(t, zr, "ppt/slides/slide2.xml"); !strings.Contains(body, "Training &amp; data") {
		t.Fatalf("expected escaped bullet text in slide 2")
	}
}

func assertWellFormed(t *testing.T, f *zip.File) {
	t.Helper()
	rc, err := f.Open()
	if err != nil {
		t.Fatalf("open %s: %v", f.Name, err)
	}
	defer rc.Close()
	dec := xml.NewDecoder(rc)
	for {
		_, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			t.Fatalf("%s is not well-formed: %v", f.Name, err)
		}
	}
}

func readPart(t *testing.T, zr *zip.ReadCloser, name string) string {
	t.Helper()
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", name, err)
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		return string(data)
	}
	t.Fatalf("part %s not found", name)
	return ""
}
