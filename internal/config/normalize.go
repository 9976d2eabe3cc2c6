package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeNewsAPI()
	c.normalizeLLM()
	if err := c.normalizeNarration(); err != nil {
		return err
	}
	if c.Store.RetentionDays < 0 {
		c.Store.RetentionDays = 0
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.DispatchRoot, err = expandPath(c.Paths.DispatchRoot); err != nil {
		return fmt.Errorf("paths.dispatch_root: %w", err)
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	c.Paths.APIBind = strings.TrimSpace(c.Paths.APIBind)
	if c.Paths.APIBind == "" {
		c.Paths.APIBind = defaultAPIBind
	}
	c.Paths.APIToken = strings.TrimSpace(c.Paths.APIToken)
	return nil
}

func (c *Config) normalizeNewsAPI() {
	c.NewsAPI.APIKey = strings.TrimSpace(c.NewsAPI.APIKey)
	if c.NewsAPI.APIKey == "" {
		if value, ok := os.LookupEnv("NEWSAPI_KEY"); ok {
			c.NewsAPI.APIKey = strings.TrimSpace(value)
		}
	}
	c.NewsAPI.BaseURL = strings.TrimSpace(c.NewsAPI.BaseURL)
	if c.NewsAPI.BaseURL == "" {
		c.NewsAPI.BaseURL = defaultNewsAPIBaseURL
	}
	c.NewsAPI.Language = strings.ToLower(strings.TrimSpace(c.NewsAPI.Language))
	if c.NewsAPI.Language == "" {
		c.NewsAPI.Language = defaultNewsAPILanguage
	}
	c.NewsAPI.SortBy = strings.TrimSpace(c.NewsAPI.SortBy)
	if c.NewsAPI.SortBy == "" {
		c.NewsAPI.SortBy = defaultNewsAPISortBy
	}
	c.NewsAPI.Country = strings.ToLower(strings.TrimSpace(c.NewsAPI.Country))
	if c.NewsAPI.Country == "" {
		c.NewsAPI.Country = defaultNewsAPICountry
	}
	if c.NewsAPI.PageSize <= 0 {
		c.NewsAPI.PageSize = defaultNewsAPIPageSize
	}
}

func (c *Config) normalizeLLM() {
	c.LLM.Provider = strings.ToLower(strings.TrimSpace(c.LLM.Provider))
	if c.LLM.Provider == "" {
		c.LLM.Provider = defaultLLMProvider
	}
	c.LLM.APIKey = strings.TrimSpace(c.LLM.APIKey)
	if c.LLM.APIKey == "" {
		switch c.LLM.Provider {
		case "anthropic":
			if value, ok := os.LookupEnv("ANTHROPIC_API_KEY"); ok {
				c.LLM.APIKey = strings.TrimSpace(value)
			}
		default:
			if value, ok := os.LookupEnv("OPENROUTER_API_KEY"); ok {
				c.LLM.APIKey = strings.TrimSpace(value)
			}
		}
	}
	c.LLM.BaseURL = strings.TrimSpace(c.LLM.BaseURL)
	if c.LLM.Provider == "anthropic" && c.LLM.BaseURL == defaultLLMBaseURL {
		// The OpenRouter endpoint default does not apply to Anthropic; let the
		// client fall back to its own API base.
		c.LLM.BaseURL = ""
	}
	c.LLM.Model = strings.TrimSpace(c.LLM.Model)
	if c.LLM.Provider == "anthropic" && c.LLM.Model == defaultLLMModel {
		c.LLM.Model = ""
	}
	if c.LLM.Model == "" && c.LLM.Provider != "anthropic" {
		c.LLM.Model = defaultLLMModel
	}
	c.LLM.Referer = strings.TrimSpace(c.LLM.Referer)
	c.LLM.Title = strings.TrimSpace(c.LLM.Title)
	if c.LLM.Title == "" {
		c.LLM.Title = defaultLLMTitle
	}
	if c.LLM.TimeoutSeconds <= 0 {
		c.LLM.TimeoutSeconds = defaultLLMTimeoutSeconds
	}
}

func (c *Config) normalizeNarration() error {
	c.Narration.Binary = strings.TrimSpace(c.Narration.Binary)
	if c.Narration.Binary == "" {
		c.Narration.Binary = defaultNarrationBinary
	}
	if strings.TrimSpace(c.Narration.VoicesPath) != "" {
		expanded, err := expandPath(c.Narration.VoicesPath)
		if err != nil {
			return fmt.Errorf("narration.voices_path: %w", err)
		}
		c.Narration.VoicesPath = expanded
	}
	if c.Narration.TimeoutSeconds <= 0 {
		c.Narration.TimeoutSeconds = defaultNarrationTimeout
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
