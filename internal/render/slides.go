package render

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"text/template"
	"time"
)

// SlidesRenderer writes an OOXML presentation (.pptx).
type SlidesRenderer struct {
	w writer
}

// Render implements Renderer.
func (r *SlidesRenderer) Render(ctx context.Context, content, query, dest string) (string, error) {
	slides := ParseOutline(content, query)
	created := r.w.clock().UTC()
	return r.w.create(ctx, dest, query, ".pptx", func(out io.Writer) error {
		return writeDeck(out, deck{Title: slides[0].Title, Slides: slides, Created: created})
	})
}

type deck struct {
	Title   string
	Slides  []Slide
	Created time.Time
}

// deckPart is one zip entry: either a fixed XML document or a template.
type deckPart struct {
	name   string
	tmpl   *template.Template
	data   any
	static string
}

type slideData struct {
	Index int
	First bool
	Slide Slide
}

func writeDeck(out io.Writer, d deck) error {
	parts := []deckPart{
		{name: "[Content_Types].xml", tmpl: contentTypesTmpl, data: d},
		{name: "_rels/.rels", tmpl: rootRelsTmpl, data: d},
		{name: "docProps/core.xml", tmpl: coreTmpl, data: d},
		{name: "docProps/app.xml", tmpl: appTmpl, data: d},
		{name: "ppt/presentation.xml", tmpl: presentationTmpl, data: d},
		{name: "ppt/_rels/presentation.xml.rels", tmpl: presentationRelsTmpl, data: d},
		{name: "ppt/slideMasters/slideMaster1.xml", static: slideMasterXML},
		{name: "ppt/slideMasters/_rels/slideMaster1.xml.rels", static: slideMasterRelsXML},
		{name: "ppt/slideLayouts/slideLayout1.xml", static: slideLayoutXML},
		{name: "ppt/slideLayouts/_rels/slideLayout1.xml.rels", static: slideLayoutRelsXML},
		{name: "ppt/notesMasters/notesMaster1.xml", static: notesMasterXML},
		{name: "ppt/notesMasters/_rels/notesMaster1.xml.rels", static: notesMasterRelsXML},
		{name: "ppt/theme/theme1.xml", static: themeXML},
		{name: "ppt/theme/theme2.xml", static: themeXML},
	}
	for i, s := range d.Slides {
		data := slideData{Index: i + 1, First: i == 0, Slide: s}
		parts = append(parts,
			deckPart{name: fmt.Sprintf("ppt/slides/slide%d.xml", i+1), tmpl: slideTmpl, data: data},
			deckPart{name: fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", i+1), tmpl: slideRelsTmpl, data: data},
		)
		if s.Notes != "" {
			parts = append(parts,
				deckPart{name: fmt.Sprintf("ppt/notesSlides/notesSlide%d.xml", i+1), tmpl: notesSlideTmpl, data: data},
				deckPart{name: fmt.Sprintf("ppt/notesSlides/_rels/notesSlide%d.xml.rels", i+1), tmpl: notesSlideRelsTmpl, data: data},
			)
		}
	}

	zw := zip.NewWriter(out)
	var buf bytes.Buffer
	for _, part := range parts {
		buf.Reset()
		if part.tmpl == nil {
			buf.WriteString(part.static)
		} else if err := part.tmpl.Execute(&buf, part.data); err != nil {
			return fmt.Errorf("render %s: %w", part.name, err)
		}
		entry, err := zw.Create(part.name)
		if err != nil {
			return fmt.Errorf("add %s: %w", part.name, err)
		}
		if _, err := entry.Write(buf.Bytes()); err != nil {
			return fmt.Errorf("write %s: %w", part.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalize presentation: %w", err)
	}
	return nil
}

var templateFuncs = template.FuncMap{
	"xml": func(s string) (string, error) {
		var b bytes.Buffer
		if err := xml.EscapeText(&b, []byte(s)); err != nil {
			return "", err
		}
		return b.String(), nil
	},
	"add": func(a, b int) int { return a + b },
	"w3c": func(t time.Time) string { return t.UTC().Format("2006-01-02T15:04:05Z") },
}

func mustTemplate(name, text string) *template.Template {
	return template.Must(template.New(name).Funcs(templateFuncs).Parse(text))
}
