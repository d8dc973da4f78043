package config

import (
	"errors"
	"fmt"
	"strings"

	"searchai/internal/format"
)

// ErrMissingSettings reports that one or more required settings are absent.
var ErrMissingSettings = errors.New("missing required settings")

// Validate ensures the configuration is usable. Missing credentials are
// reported together so the operator can fix them in one pass.
func (c *Config) Validate() error {
	if err := c.validateRequired(); err != nil {
		return err
	}
	if err := c.validateSearch(); err != nil {
		return err
	}
	if err := c.validateLLM(); err != nil {
		return err
	}
	if err := c.validateGeneration(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if c.Workflow.Workers <= 0 {
		return errors.New("workflow.workers must be positive")
	}
	return nil
}

func (c *Config) validateRequired() error {
	var missing []string
	if c.Search.Backend == backendSerper && c.Search.APIKey == "" {
		missing = append(missing, "search.api_key (SERPER_API_KEY)")
	}
	switch c.LLM.Provider {
	case providerVertex:
		if c.LLM.ProjectID == "" {
			missing = append(missing, "llm.project_id (GOOGLE_CLOUD_PROJECT)")
		}
	default:
		if c.LLM.APIKey == "" {
			missing = append(missing, "llm.api_key (LLM_API_KEY or GEMINI_API_KEY)")
		}
	}
	if c.Database.DSN == "" {
		missing = append(missing, "database.dsn (DATABASE_URL)")
	}
	if len(missing) == 0 {
		return nil
	}
	defaultPath, err := DefaultConfigPath()
	if err != nil {
		defaultPath = defaultConfigPath
	}
	return fmt.Errorf("%w: %s. Set the environment variables or edit %s (create with 'searchai config init')",
		ErrMissingSettings, strings.Join(missing, ", "), defaultPath)
}

func (c *Config) validateSearch() error {
	switch c.Search.Backend {
	case backendSerper, backendAgent:
	default:
		return fmt.Errorf("search.backend: unsupported value %q (want serper or agent)", c.Search.Backend)
	}
	if c.Search.MaxResults > 100 {
		return errors.New("search.max_results must not exceed 100")
	}
	return nil
}

func (c *Config) validateLLM() error {
	switch c.LLM.Provider {
	case providerOpenAI, providerVertex:
	default:
		return fmt.Errorf("llm.provider: unsupported value %q (want openai or vertex)", c.LLM.Provider)
	}
	if c.LLM.Provider == providerOpenAI && c.LLM.BaseURL == "" {
		return errors.New("llm.base_url must be set")
	}
	return nil
}

func (c *Config) validateGeneration() error {
	for _, f := range format.All() {
		if err := c.GenerationParams(f).Validate(); err != nil {
			return fmt.Errorf("generation.%s: %w", f, err)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	for key, level := range map[string]string{"logging.level": c.Logging.Level, "logging.console_level": c.Logging.ConsoleLevel} {
		switch level {
		case "debug", "info", "warn", "error":
		default:
			return fmt.Errorf("%s: unsupported value %q", key, level)
		}
	}
	return nil
}
