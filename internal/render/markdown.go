package render

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// MarkdownRenderer writes content as a .md file.
type MarkdownRenderer struct {
	w writer
}

// Render implements Renderer.
func (r *MarkdownRenderer) Render(ctx context.Context, content, query, dest string) (string, error) {
	body := markdownDocument(content, query, r.w.clock().UTC().Format("2006-01-02 15:04 UTC"))
	return r.w.create(ctx, dest, query, ".md", func(out io.Writer) error {
		_, err := io.WriteString(out, body)
		return err
	})
}

func markdownDocument(content, query, generatedAt string) string {
	content = strings.TrimSpace(content)
	var b strings.Builder
	if !hasTopHeading(content) {
		fmt.Fprintf(&b, "# %s\n\n", titleCase(query))
	}
	b.WriteString(content)
	b.WriteString("\n\n---\n\n")
	fmt.Fprintf(&b, "_Generated by searchai on %s for the query %q._\n", generatedAt, strings.TrimSpace(query))
	return b.String()
}
