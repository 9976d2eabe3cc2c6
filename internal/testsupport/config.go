// Package testsupport provides helpers for package tests: temp-directory
// configs, seeded article stores, and dispatch fixtures.
package testsupport

import (
	"path/filepath"
	"testing"

	"sentinel/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// The basic analyzer is selected so tests never reach the network.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DispatchRoot = filepath.Join(base, "dispatches")
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.APIBind = "127.0.0.1:0"
	cfg.LLM.Provider = "basic"

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithAPIToken sets the server auth token on the test config.
func WithAPIToken(token string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Paths.APIToken = token
	}
}

// WithProvider selects the analysis provider on the test config.
func WithProvider(provider string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.LLM.Provider = provider
	}
}
