package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable. The news key and LLM key are
// deliberately not required here: fetching and analysis report their own
// errors, and dispatch listing and narration work without either.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateNewsAPI(); err != nil {
		return err
	}
	if err := c.validateLLM(); err != nil {
		return err
	}
	if c.Narration.Binary == "" {
		return errors.New("narration.binary must be set")
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.DispatchRoot == "" {
		return errors.New("paths.dispatch_root must be set")
	}
	if c.Paths.DataDir == "" {
		return errors.New("paths.data_dir must be set")
	}
	return nil
}

func (c *Config) validateNewsAPI() error {
	if c.NewsAPI.BaseURL == "" {
		return errors.New("newsapi.base_url must be set")
	}
	if c.NewsAPI.PageSize <= 0 {
		return errors.New("newsapi.page_size must be positive")
	}
	return nil
}

func (c *Config) validateLLM() error {
	switch c.LLM.Provider {
	case "openrouter", "anthropic", "basic":
	default:
		return fmt.Errorf("llm.provider %q is not supported (openrouter, anthropic, basic)", c.LLM.Provider)
	}
	if c.LLM.TimeoutSeconds <= 0 {
		return errors.New("llm.timeout_seconds must be positive")
	}
	return nil
}
