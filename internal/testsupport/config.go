package testsupport

import (
	"path/filepath"
	"testing"

	"searchai/internal/config"
	"searchai/internal/format"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults credentials to placeholders and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.OutputDir = filepath.Join(base, "documents")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.APIBind = "127.0.0.1:0"
	cfgVal.Database.DSN = filepath.Join(base, "searchai.db")
	cfgVal.Search.APIKey = "test-search-key"
	cfgVal.LLM.APIKey = "test-llm-key"
	cfgVal.LLM.Model = "test-model"
	cfgVal.Search.AgentModel = "test-model"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithSearchBaseURL points the search backend at a test server.
func WithSearchBaseURL(url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Search.BaseURL = url
	}
}

// WithLLMBaseURL points the LLM backend at a test server.
func WithLLMBaseURL(url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.LLM.BaseURL = url
	}
}

// WithSearchBackend selects the search backend ("serper" or "agent").
func WithSearchBackend(backend string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Search.Backend = backend
	}
}

// WithTimeouts overrides the stage timeouts in seconds.
func WithTimeouts(searchSeconds, llmSeconds int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Search.TimeoutSeconds = searchSeconds
		b.cfg.LLM.TimeoutSeconds = llmSeconds
	}
}

// WithGeneration overrides the sampling parameters for one format.
func WithGeneration(f format.Format, params format.Overrides) ConfigOption {
	return func(b *configBuilder) {
		switch f {
		case format.Markdown:
			b.cfg.Generation.Markdown = params
		case format.PDF:
			b.cfg.Generation.PDF = params
		case format.PPT:
			b.cfg.Generation.PPT = params
		}
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.OutputDir)
}
