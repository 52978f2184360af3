package cmd

import (
	"context"
	"fmt"

	"github.com/hyuniciel/inkwell/internal/config"
	"github.com/hyuniciel/inkwell/internal/content"
	"github.com/hyuniciel/inkwell/internal/store"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `inkwell init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// openLibrary builds the content library the config points at.
func openLibrary(cfg *config.Config) (*content.Library, error) {
	fetcher, err := content.New(cfg.Content.Dir, cfg.Content.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("creating content fetcher: %w", err)
	}
	debugf("content: dir=%q base_url=%q manifest=%q pages=%q",
		cfg.Content.Dir, cfg.Content.BaseURL, cfg.Content.Manifest, cfg.Content.PagesDir)
	return content.NewLibrary(fetcher, cfg.Content.Manifest, cfg.Content.PagesDir, cfg.Content.Include), nil
}

// loadStore loads the manifest once. A failed load leaves the store empty;
// the error has already been logged by the store.
func loadStore(ctx context.Context, lib *content.Library) *store.Store {
	st := store.New(lib)
	if err := st.Load(ctx); err == nil {
		debugf("store: loaded %d posts", st.Count())
	}
	return st
}
