package render

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"unicode"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/font"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"golang.org/x/text/encoding/charmap"
)

// A4 portrait in points.
const (
	pageWidth    = 595.0
	pageHeight   = 842.0
	pageMargin   = 56.0
	lineSpacing  = 1.45
	bodyFontSize = 11
	headFontSize = 14
	titleSize    = 20
	fontRegular  = "Helvetica"
	fontBold     = "Helvetica-Bold"
)

var disablePDFConfigDir sync.Once

// PDFRenderer lays content out as plain text pages and renders them with
// pdfcpu.
type PDFRenderer struct {
	w writer
}

// Render implements Renderer.
func (r *PDFRenderer) Render(ctx context.Context, content, query, dest string) (string, error) {
	layout := layoutPDF(content, query)
	desc, err := json.Marshal(layout)
	if err != nil {
		return "", fmt.Errorf("encode page description: %w", err)
	}
	disablePDFConfigDir.Do(api.DisableConfigDir)
	conf := model.NewDefaultConfiguration()
	return r.w.create(ctx, dest, query, ".pdf", func(out io.Writer) error {
		if err := api.Create(nil, bytes.NewReader(desc), out, conf); err != nil {
			return fmt.Errorf("pdfcpu create: %w", err)
		}
		return nil
	})
}

type pdfDescription struct {
	Paper string             `json:"paper"`
	Pages map[string]pdfPage `json:"pages"`
}

type pdfPage struct {
	Content pdfContent `json:"content"`
}

type pdfContent struct {
	Text []pdfText `json:"text"`
}

type pdfText struct {
	Value string     `json:"value"`
	Pos   [2]float64 `json:"pos"`
	Font  pdfFont    `json:"font"`
}

type pdfFont struct {
	Name string `json:"name"`
	Size int    `json:"size"`
}

type pdfLine struct {
	text  string
	font  string
	size  int
	blank bool
}

// layoutPDF wraps and paginates content into a pdfcpu page description.
func layoutPDF(content, query string) pdfDescription {
	lines := pdfLines(content, query)
	desc := pdfDescription{Paper: "A4", Pages: map[string]pdfPage{}}
	pageNum := 1
	var page pdfPage
	y := pageHeight - pageMargin

	flush := func() {
		desc.Pages[strconv.Itoa(pageNum)] = page
		pageNum++
		page = pdfPage{}
		y = pageHeight - pageMargin
	}

	for _, line := range lines {
		advance := float64(line.size) * lineSpacing
		if line.blank {
			advance /= 2
			if y-advance < pageMargin {
				flush()
				continue
			}
			y -= advance
			continue
		}
		if y-advance < pageMargin {
			flush()
		}
		y -= advance
		x := pageMargin
		for _, run := range literalRuns(line.text) {
			page.Content.Text = append(page.Content.Text, pdfText{
				Value: escapePercent(run),
				Pos:   [2]float64{x, y},
				Font:  pdfFont{Name: line.font, Size: line.size},
			})
			x += runWidth(run, line.font, line.size)
		}
	}
	if len(page.Content.Text) > 0 || len(desc.Pages) == 0 {
		flush()
	}
	return desc
}

func pdfLines(content, query string) []pdfLine {
	title := winAnsi(DocumentTitle(content, query))
	lines := []pdfLine{{text: title, font: fontBold, size: titleSize}, {size: bodyFontSize, blank: true}}

	skippedTitle := false
	for _, raw := range strings.Split(strings.TrimSpace(content), "\n") {
		text := strings.TrimSpace(raw)
		if text == "" {
			lines = append(lines, pdfLine{size: bodyFontSize, blank: true})
			continue
		}
		face, size := fontRegular, bodyFontSize
		if level := headingLevel(text); level > 0 {
			text = strings.TrimSpace(text[level:])
			face, size = fontBold, headFontSize
			if !skippedTitle && level == 1 && winAnsi(text) == title {
				skippedTitle = true
				continue
			}
		}
		text = winAnsi(stripInlineMarkup(text))
		if text == "" {
			continue
		}
		for _, wrapped := range wrapText(text, charsPerLine(size)) {
			lines = append(lines, pdfLine{text: wrapped, font: face, size: size})
		}
	}
	return lines
}

// pdfcpu expands %p, %P, %t and %v in text values and drops any other
// lone '%'. A run of n percent signs yields n-1 literal ones followed by a
// pending placeholder marker, so a percent run directly before one of the
// placeholder letters cannot be escaped within a single value. literalRuns
// splits text in front of such letters so each one starts a new value.
func literalRuns(text string) []string {
	var runs []string
	start := 0
	for i := 1; i < len(text); i++ {
		if text[i-1] == '%' && strings.IndexByte("pPtv", text[i]) >= 0 {
			runs = append(runs, text[start:i])
			start = i
		}
	}
	return append(runs, text[start:])
}

// runWidth measures run in the single-byte encoding the core fonts use.
func runWidth(run, face string, size int) float64 {
	if encoded, err := charmap.Windows1252.NewEncoder().String(run); err == nil {
		run = encoded
	}
	return font.TextWidth(run, face, size)
}

// escapePercent adds one percent sign to every run of them. The resolver
// keeps all but the first sign of a run and discards the trailing marker
// when no placeholder letter follows.
func escapePercent(s string) string {
	if !strings.Contains(s, "%") {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && (i == 0 || s[i-1] != '%') {
			b.WriteByte('%')
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func headingLevel(line string) int {
	level := 0
	for level < len(line) && line[level] == '#' {
		level++
	}
	if level == 0 || level > 6 || level >= len(line) || line[level] != ' ' {
		return 0
	}
	return level
}

var inlineMarkup = strings.NewReplacer("**", "", "__", "", "`", "")

func stripInlineMarkup(line string) string {
	line = inlineMarkup.Replace(line)
	if strings.HasPrefix(line, "* ") || strings.HasPrefix(line, "- ") {
		line = "• " + line[2:]
	}
	return line
}

// Helvetica averages about half an em per glyph.
func charsPerLine(size int) int {
	return int((pageWidth - 2*pageMargin) / (float64(size) * 0.5))
}

func wrapText(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	var out []string
	var cur []rune
	for _, word := range words {
		w := []rune(word)
		for len(w) > width {
			if len(cur) > 0 {
				out = append(out, string(cur))
				cur = cur[:0]
			}
			out = append(out, string(w[:width]))
			w = w[width:]
		}
		switch {
		case len(cur) == 0:
			cur = append(cur, w...)
		case len(cur)+1+len(w) <= width:
			cur = append(cur, ' ')
			cur = append(cur, w...)
		default:
			out = append(out, string(cur))
			cur = append(cur[:0], w...)
		}
	}
	if len(cur) > 0 {
		out = append(out, string(cur))
	}
	return out
}

// winAnsi reduces s to characters the standard PDF fonts can show.
func winAnsi(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r == '\t' {
			b.WriteByte(' ')
			continue
		}
		if unicode.IsControl(r) {
			continue
		}
		if _, ok := charmap.Windows1252.EncodeRune(r); ok {
			b.WriteRune(r)
			continue
		}
		b.WriteByte('?')
	}
	return b.String()
}
