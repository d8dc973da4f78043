package render

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"searchai/internal/format"
	"searchai/internal/logging"
)

// Renderer writes generated content for query into the destination directory
// and returns the path of the file it created.
type Renderer interface {
	Render(ctx context.Context, content, query, dest string) (string, error)
}

// Clock returns the current time; tests substitute a fixed clock.
type Clock func() time.Time

// Registry selects the renderer for an output format.
type Registry struct {
	renderers map[format.Format]Renderer
}

// Option customizes the default registry.
type Option func(*options)

type options struct {
	clock  Clock
	logger *slog.Logger
}

// WithClock overrides the time source used for file names and timestamps.
func WithClock(clock Clock) Option {
	return func(o *options) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// WithLogger sets the logger used by the renderers.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// NewRegistry returns a registry with the markdown, PDF, and slide deck
// renderers installed.
func NewRegistry(opts ...Option) *Registry {
	o := options{clock: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	logger := logging.NewComponentLogger(o.logger, "render")
	w := writer{clock: o.clock, logger: logger}
	return &Registry{renderers: map[format.Format]Renderer{
		format.Markdown: &MarkdownRenderer{w: w},
		format.PDF:      &PDFRenderer{w: w},
		format.PPT:      &SlidesRenderer{w: w},
	}}
}

// Register installs or replaces the renderer for f.
func (r *Registry) Register(f format.Format, renderer Renderer) {
	if r.renderers == nil {
		r.renderers = make(map[format.Format]Renderer)
	}
	r.renderers[f] = renderer
}

// For returns the renderer for f.
func (r *Registry) For(f format.Format) (Renderer, error) {
	renderer, ok := r.renderers[f]
	if !ok {
		return nil, fmt.Errorf("no renderer for format %q: %w", f, format.ErrUnsupported)
	}
	return renderer, nil
}
