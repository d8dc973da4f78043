package format

import (
	"errors"
	"fmt"
	"strings"
)

// Format identifies one of the supported document outputs.
type Format string

const (
	Markdown Format = "markdown"
	PDF      Format = "pdf"
	PPT      Format = "ppt"
)

// ErrUnsupported reports a format outside the supported set.
var ErrUnsupported = errors.New("unsupported output format")

var all = []Format{Markdown, PDF, PPT}

// All returns the supported formats in display order.
func All() []Format {
	out := make([]Format, len(all))
	copy(out, all)
	return out
}

// Names returns the supported format names, used for flag help and errors.
func Names() []string {
	names := make([]string, 0, len(all))
	for _, f := range all {
		names = append(names, string(f))
	}
	return names
}

// Parse matches value case-insensitively against the supported formats.
func Parse(value string) (Format, error) {
	normalized := Format(strings.ToLower(strings.TrimSpace(value)))
	if normalized.Valid() {
		return normalized, nil
	}
	return "", fmt.Errorf("%w %q: must be one of %s", ErrUnsupported, value, strings.Join(Names(), ", "))
}

// Valid reports whether f is one of the supported formats.
func (f Format) Valid() bool {
	switch f {
	case Markdown, PDF, PPT:
		return true
	default:
		return false
	}
}

// Extension returns the file extension written by the renderer for f.
func (f Format) Extension() string {
	switch f {
	case Markdown:
		return ".md"
	case PDF:
		return ".pdf"
	case PPT:
		return ".pptx"
	default:
		return ".txt"
	}
}

// Prose reports whether the format is long-form text rather than slides.
func (f Format) Prose() bool {
	return f == Markdown || f == PDF
}

func (f Format) String() string { return string(f) }
