package config

const (
	defaultDispatchRoot      = "~/.local/share/sentinel/dispatches"
	defaultDataDir           = "~/.local/share/sentinel"
	defaultAPIBind           = "127.0.0.1:7487"
	defaultNewsAPIBaseURL    = "https://newsapi.org/v2"
	defaultNewsAPILanguage   = "en"
	defaultNewsAPISortBy     = "relevancy"
	defaultNewsAPICountry    = "us"
	defaultNewsAPIPageSize   = 10
	defaultLLMProvider       = "openrouter"
	defaultLLMBaseURL        = "https://openrouter.ai/api/v1/chat/completions"
	defaultLLMModel          = "google/gemini-3-flash-preview"
	defaultLLMTitle          = "Fort Sentinel Dispatch"
	defaultLLMTimeoutSeconds = 60
	defaultNarrationBinary   = "fnafi"
	defaultNarrationTimeout  = 120
	defaultStoreRetention    = 30
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DispatchRoot: defaultDispatchRoot,
			DataDir:      defaultDataDir,
			APIBind:      defaultAPIBind,
		},
		NewsAPI: NewsAPI{
			BaseURL:  defaultNewsAPIBaseURL,
			Language: defaultNewsAPILanguage,
			SortBy:   defaultNewsAPISortBy,
			Country:  defaultNewsAPICountry,
			PageSize: defaultNewsAPIPageSize,
		},
		LLM: LLM{
			Provider:       defaultLLMProvider,
			BaseURL:        defaultLLMBaseURL,
			Model:          defaultLLMModel,
			Title:          defaultLLMTitle,
			TimeoutSeconds: defaultLLMTimeoutSeconds,
		},
		Narration: Narration{
			Binary:         defaultNarrationBinary,
			TimeoutSeconds: defaultNarrationTimeout,
		},
		Store: Store{
			RetentionDays: defaultStoreRetention,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
