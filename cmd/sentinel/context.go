package main

import (
	"context"
	"strings"
	"sync"
	"time"

	"log/slog"

	"sentinel/internal/analyzer"
	"sentinel/internal/api"
	"sentinel/internal/articlestore"
	"sentinel/internal/config"
	"sentinel/internal/dispatch"
	"sentinel/internal/logging"
	"sentinel/internal/narration"
	"sentinel/internal/services/anthropic"
	"sentinel/internal/services/llm"
	"sentinel/internal/services/newsapi"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		logger, err := logging.New(logging.Options{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
		})
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		c.logger = logger
	})
	return c.logger
}

// buildService assembles the workflow service. The returned closer releases
// the article store.
func (c *commandContext) buildService() (*api.Service, func(), error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	logger := c.ensureLogger()

	store, err := articlestore.Open(cfg.StorePath())
	if err != nil {
		return nil, nil, err
	}

	news := newsapi.NewClient(cfg.NewsAPI.APIKey,
		newsapi.WithBaseURL(cfg.NewsAPI.BaseURL),
		newsapi.WithLanguage(cfg.NewsAPI.Language),
		newsapi.WithSortBy(cfg.NewsAPI.SortBy),
		newsapi.WithCountry(cfg.NewsAPI.Country),
		newsapi.WithPageSize(cfg.NewsAPI.PageSize))
	annotator := analyzer.New(buildCapability(cfg), logger)
	writer := dispatch.NewWriter(cfg.Paths.DispatchRoot, logger)
	index := dispatch.NewIndex(cfg.Paths.DispatchRoot, logger)

	svc := api.NewService(news, store, annotator, writer, index, logger)
	closer := func() { _ = store.Close() }
	return svc, closer, nil
}

// pruneArticleCache drops cached articles older than the configured retention
// window. Runs synchronously, before the server starts accepting traffic.
func pruneArticleCache(ctx context.Context, svc *api.Service, cfg *config.Config, logger *slog.Logger) {
	if cfg.Store.RetentionDays <= 0 {
		return
	}
	retention := time.Duration(cfg.Store.RetentionDays) * 24 * time.Hour
	if _, err := svc.PruneArticles(ctx, retention); err != nil {
		logger.Warn("article cache prune failed", logging.Error(err))
	}
}

func buildCapability(cfg *config.Config) analyzer.Capability {
	switch cfg.LLM.Provider {
	case "anthropic":
		if cfg.LLM.APIKey == "" {
			return nil
		}
		opts := []anthropic.Option{anthropic.WithModel(cfg.LLM.Model)}
		if cfg.LLM.BaseURL != "" {
			opts = append(opts, anthropic.WithBaseURL(cfg.LLM.BaseURL))
		}
		return anthropic.NewClient(cfg.LLM.APIKey, opts...)
	case "openrouter":
		if cfg.LLM.APIKey == "" {
			return nil
		}
		return llm.NewClient(llm.Config{
			APIKey:         cfg.LLM.APIKey,
			BaseURL:        cfg.LLM.BaseURL,
			Model:          cfg.LLM.Model,
			Referer:        cfg.LLM.Referer,
			Title:          cfg.LLM.Title,
			TimeoutSeconds: cfg.LLM.TimeoutSeconds,
		})
	default:
		return nil
	}
}

func (c *commandContext) buildNarrator() (*narration.Service, *dispatch.Index, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	logger := c.ensureLogger()

	voices, err := narration.LoadVoiceTable(cfg.Narration.VoicesPath)
	if err != nil {
		return nil, nil, err
	}
	svc, err := narration.NewService(cfg.Narration.Binary, voices, cfg.Narration.TimeoutSeconds, logger)
	if err != nil {
		return nil, nil, err
	}
	return svc, dispatch.NewIndex(cfg.Paths.DispatchRoot, logger), nil
}
