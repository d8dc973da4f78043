package config

const (
	defaultConfigPath       = "~/.config/searchai/config.toml"
	defaultOutputDir        = "~/searchai/documents"
	defaultLogDir           = "~/.local/share/searchai/logs"
	defaultLogRetentionDays = 30
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	defaultConsoleLogLevel  = "warn"
	defaultAPIBind          = "127.0.0.1:7488"
	defaultBusyTimeoutMS    = 5000
	defaultSearchBackend    = "serper"
	defaultSerperBaseURL    = "https://google.serper.dev/search"
	defaultSearchMaxResults = 10
	defaultSearchTimeout    = 60
	defaultLLMProvider      = "openai"
	defaultLLMBaseURL       = "https://openrouter.ai/api/v1/chat/completions"
	defaultLLMModel         = "google/gemini-2.0-flash-001"
	defaultLLMReferer       = "https://github.com/searchai/searchai"
	defaultLLMTitle         = "searchai"
	defaultLLMTimeout       = 300
	defaultVertexLocation   = "us-central1"
	defaultVertexModel      = "gemini-2.0-flash"
	defaultWorkflowWorkers  = 4
	defaultPublishTimeout   = 120
	providerOpenAI          = "openai"
	providerVertex          = "vertex"
	backendSerper           = "serper"
	backendAgent            = "agent"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: defaultOutputDir,
			LogDir:    defaultLogDir,
			APIBind:   defaultAPIBind,
		},
		Database: Database{
			BusyTimeoutMS: defaultBusyTimeoutMS,
		},
		Search: Search{
			Backend:        defaultSearchBackend,
			BaseURL:        defaultSerperBaseURL,
			MaxResults:     defaultSearchMaxResults,
			TimeoutSeconds: defaultSearchTimeout,
		},
		LLM: LLM{
			Provider:       defaultLLMProvider,
			BaseURL:        defaultLLMBaseURL,
			Referer:        defaultLLMReferer,
			Title:          defaultLLMTitle,
			TimeoutSeconds: defaultLLMTimeout,
			Location:       defaultVertexLocation,
		},
		Publish: Publish{
			TimeoutSeconds: defaultPublishTimeout,
		},
		Workflow: Workflow{
			Workers: defaultWorkflowWorkers,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			ConsoleLevel:  defaultConsoleLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}
