package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeDatabase(); err != nil {
		return err
	}
	if err := c.normalizeLLM(); err != nil {
		return err
	}
	if err := c.normalizeSearch(); err != nil {
		return err
	}
	c.normalizePublish()
	c.normalizeWorkflow()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if value, ok := lookupEnv("SEARCHAI_OUTPUT_DIR"); ok {
		c.Paths.OutputDir = value
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	var err error
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	c.Paths.APIBind = strings.TrimSpace(c.Paths.APIBind)
	if c.Paths.APIBind == "" {
		c.Paths.APIBind = defaultAPIBind
	}
	return nil
}

func (c *Config) normalizeDatabase() error {
	if value, ok := lookupEnv("DATABASE_URL"); ok {
		c.Database.DSN = value
	}
	c.Database.DSN = strings.TrimSpace(c.Database.DSN)
	if c.DatabasePath() != "" {
		expanded, err := expandPath(c.Database.DSN)
		if err != nil {
			return fmt.Errorf("database.dsn: %w", err)
		}
		c.Database.DSN = expanded
	}
	if c.Database.BusyTimeoutMS <= 0 {
		c.Database.BusyTimeoutMS = defaultBusyTimeoutMS
	}
	return nil
}

func (c *Config) normalizeSearch() error {
	c.Search.Backend = strings.ToLower(strings.TrimSpace(c.Search.Backend))
	if c.Search.Backend == "" {
		c.Search.Backend = defaultSearchBackend
	}
	if c.Search.APIKey == "" {
		if value, ok := lookupEnv("SERPER_API_KEY"); ok {
			c.Search.APIKey = value
		}
	}
	c.Search.APIKey = strings.TrimSpace(c.Search.APIKey)
	c.Search.BaseURL = strings.TrimSpace(c.Search.BaseURL)
	if c.Search.BaseURL == "" {
		c.Search.BaseURL = defaultSerperBaseURL
	}
	if c.Search.MaxResults <= 0 {
		c.Search.MaxResults = defaultSearchMaxResults
	}
	timeout, err := envSeconds("SEARCH_TIMEOUT", c.Search.TimeoutSeconds)
	if err != nil {
		return err
	}
	c.Search.TimeoutSeconds = timeout
	if c.Search.TimeoutSeconds <= 0 {
		c.Search.TimeoutSeconds = defaultSearchTimeout
	}
	if value, ok := lookupEnv("SEARCH_AGENT_MODEL"); ok {
		c.Search.AgentModel = value
	}
	c.Search.AgentModel = strings.TrimSpace(c.Search.AgentModel)
	if c.Search.AgentModel == "" {
		c.Search.AgentModel = c.LLM.Model
	}
	return nil
}

func (c *Config) normalizeLLM() error {
	c.LLM.Provider = strings.ToLower(strings.TrimSpace(c.LLM.Provider))
	if c.LLM.Provider == "" {
		c.LLM.Provider = defaultLLMProvider
	}
	if c.LLM.APIKey == "" {
		if value, ok := lookupEnv("LLM_API_KEY"); ok {
			c.LLM.APIKey = value
		} else if value, ok := lookupEnv("GEMINI_API_KEY"); ok {
			c.LLM.APIKey = value
		}
	}
	c.LLM.APIKey = strings.TrimSpace(c.LLM.APIKey)
	if value, ok := lookupEnv("LLM_MODEL"); ok {
		c.LLM.Model = value
	}
	c.LLM.Model = strings.TrimSpace(c.LLM.Model)
	if c.LLM.Model == "" {
		if c.LLM.Provider == providerVertex {
			c.LLM.Model = defaultVertexModel
		} else {
			c.LLM.Model = defaultLLMModel
		}
	}
	c.LLM.BaseURL = strings.TrimSpace(c.LLM.BaseURL)
	if c.LLM.BaseURL == "" {
		c.LLM.BaseURL = defaultLLMBaseURL
	}
	c.LLM.Referer = strings.TrimSpace(c.LLM.Referer)
	c.LLM.Title = strings.TrimSpace(c.LLM.Title)
	if c.LLM.ProjectID == "" {
		if value, ok := lookupEnv("GOOGLE_CLOUD_PROJECT"); ok {
			c.LLM.ProjectID = value
		}
	}
	c.LLM.ProjectID = strings.TrimSpace(c.LLM.ProjectID)
	c.LLM.Location = strings.TrimSpace(c.LLM.Location)
	if c.LLM.Location == "" {
		c.LLM.Location = defaultVertexLocation
	}
	timeout, err := envSeconds("LLM_TIMEOUT", c.LLM.TimeoutSeconds)
	if err != nil {
		return err
	}
	c.LLM.TimeoutSeconds = timeout
	if c.LLM.TimeoutSeconds <= 0 {
		c.LLM.TimeoutSeconds = defaultLLMTimeout
	}
	return nil
}

func (c *Config) normalizePublish() {
	if c.Publish.Bucket == "" {
		if value, ok := lookupEnv("SEARCHAI_GCS_BUCKET"); ok {
			c.Publish.Bucket = value
		}
	}
	c.Publish.Bucket = strings.TrimSpace(c.Publish.Bucket)
	c.Publish.Prefix = strings.Trim(strings.TrimSpace(c.Publish.Prefix), "/")
	if c.Publish.TimeoutSeconds <= 0 {
		c.Publish.TimeoutSeconds = defaultPublishTimeout
	}
}

func (c *Config) normalizeWorkflow() {
	if c.Workflow.Workers <= 0 {
		c.Workflow.Workers = defaultWorkflowWorkers
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.ConsoleLevel = strings.ToLower(strings.TrimSpace(c.Logging.ConsoleLevel))
	if c.Logging.ConsoleLevel == "" {
		c.Logging.ConsoleLevel = defaultConsoleLogLevel
	}
	if c.Logging.RetentionDays < 0 {
		c.Logging.RetentionDays = 0
	}
}

func lookupEnv(key string) (string, bool) {
	value, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(value) == "" {
		return "", false
	}
	return strings.TrimSpace(value), true
}

func envSeconds(key string, current int) (int, error) {
	value, ok := lookupEnv(key)
	if !ok {
		return current, nil
	}
	seconds, err := strconv.Atoi(value)
	if err != nil || seconds <= 0 {
		return 0, fmt.Errorf("%s must be a positive number of seconds, got %q", key, value)
	}
	return seconds, nil
}
