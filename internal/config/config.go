package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"searchai/internal/format"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory and bind address configuration.
type Paths struct {
	OutputDir string `toml:"output_dir"`
	LogDir    string `toml:"log_dir"`
	APIBind   string `toml:"api_bind"`
}

// Database contains the persistence settings.
type Database struct {
	DSN           string `toml:"dsn"`
	BusyTimeoutMS int    `toml:"busy_timeout_ms"`
}

// Search contains configuration for the web search backend.
type Search struct {
	// Backend selects "serper" (structured JSON API) or "agent" (LLM driven
	// research that returns a free-text transcript).
	Backend        string `toml:"backend"`
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	MaxResults     int    `toml:"max_results"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	AgentModel     string `toml:"agent_model"`
}

// LLM contains the content generation backend settings.
type LLM struct {
	// Provider selects "openai" (any OpenAI-compatible chat completions
	// endpoint, OpenRouter included) or "vertex" (Gemini on Vertex AI).
	Provider       string `toml:"provider"`
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	Model          string `toml:"model"`
	Referer        string `toml:"referer"`
	Title          string `toml:"title"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	ProjectID      string `toml:"project_id"`
	Location       string `toml:"location"`
}

// Generation holds per-format sampling overrides. Unset fields fall back to
// the built-in defaults for that format.
type Generation struct {
	Markdown format.Overrides `toml:"markdown"`
	PDF      format.Overrides `toml:"pdf"`
	PPT      format.Overrides `toml:"ppt"`
}

// Publish configures the optional Cloud Storage mirror for rendered documents.
type Publish struct {
	Bucket         string `toml:"bucket"`
	Prefix         string `toml:"prefix"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Workflow contains pipeline concurrency settings.
type Workflow struct {
	Workers int `toml:"workers"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format        string `toml:"format"`
	Level         string `toml:"level"`
	ConsoleLevel  string `toml:"console_level"`
	RetentionDays int    `toml:"retention_days"`
}

// Config encapsulates all configuration values for searchai.
//
// Configuration sections by subsystem:
//   - Paths: output/log directories and API bind address
//   - Database: SQLite location and lock timeout
//   - Search: web search backend and its credentials
//   - LLM: content generation backend and its credentials
//   - Generation: per-format sampling overrides
//   - Publish: Cloud Storage mirror for generated documents
//   - Workflow: worker pool size
//   - Logging: log format, level, and retention
type Config struct {
	Paths      Paths      `toml:"paths"`
	Database   Database   `toml:"database"`
	Search     Search     `toml:"search"`
	LLM        LLM        `toml:"llm"`
	Generation Generation `toml:"generation"`
	Publish    Publish    `toml:"publish"`
	Workflow   Workflow   `toml:"workflow"`
	Logging    Logging    `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("searchai.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the log directory. The output directory is
// created lazily by validation so a bad --output value fails the query
// instead of the whole process.
func (c *Config) EnsureDirectories() error {
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		return nil
	}
	if err := os.MkdirAll(c.Paths.LogDir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", c.Paths.LogDir, err)
	}
	return nil
}

// SearchTimeout returns the search stage deadline.
func (c *Config) SearchTimeout() time.Duration {
	return time.Duration(c.Search.TimeoutSeconds) * time.Second
}

// LLMTimeout returns the generation stage deadline.
func (c *Config) LLMTimeout() time.Duration {
	return time.Duration(c.LLM.TimeoutSeconds) * time.Second
}

// PublishTimeout bounds a single document upload.
func (c *Config) PublishTimeout() time.Duration {
	return time.Duration(c.Publish.TimeoutSeconds) * time.Second
}

// GenerationParams returns the effective sampling parameters for f.
func (c *Config) GenerationParams(f format.Format) format.Params {
	var override format.Overrides
	switch f {
	case format.Markdown:
		override = c.Generation.Markdown
	case format.PDF:
		override = c.Generation.PDF
	case format.PPT:
		override = c.Generation.PPT
	}
	return override.Apply(format.DefaultParams(f))
}

// DatabasePath returns the filesystem location encoded in the DSN, or an
// empty string for in-memory and URI-style DSNs.
func (c *Config) DatabasePath() string {
	dsn := strings.TrimSpace(c.Database.DSN)
	if dsn == "" || dsn == ":memory:" || strings.HasPrefix(dsn, "file:") {
		return ""
	}
	return dsn
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
