package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix marks environment overrides. A double underscore separates
// nesting levels: INKWELL_SERVER__PORT sets server.port.
const EnvPrefix = "INKWELL_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (INKWELL_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

var validStorage = map[StorageBackend]bool{
	StorageCookie: true,
	StorageSQLite: true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Content.BaseURL == "" && c.Content.Dir == "" {
		return fmt.Errorf("content.dir or content.base_url is required")
	}
	if c.Content.BaseURL != "" {
		u, err := url.Parse(c.Content.BaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			return fmt.Errorf("invalid content.base_url %q: must be an http(s) URL", c.Content.BaseURL)
		}
	}
	if c.Content.Manifest == "" {
		return fmt.Errorf("content.manifest is required")
	}
	for _, pattern := range c.Content.Include {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid content.include pattern %q", pattern)
		}
	}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}

	if c.Theme.Default != "light" && c.Theme.Default != "dark" {
		return fmt.Errorf("invalid theme.default %q: must be light or dark", c.Theme.Default)
	}
	if !validStorage[c.Theme.Storage] {
		return fmt.Errorf("invalid theme.storage %q: must be cookie or sqlite", c.Theme.Storage)
	}
	if c.Theme.Storage == StorageSQLite && c.DataDir == "" {
		return fmt.Errorf("data_dir is required for sqlite theme storage")
	}

	if c.Comments.Enabled && c.Comments.Repo != "" && !strings.Contains(c.Comments.Repo, "/") {
		return fmt.Errorf("invalid comments.repo %q: want owner/name", c.Comments.Repo)
	}

	if c.Search.DebounceMS < 0 {
		return fmt.Errorf("search.debounce_ms must be non-negative")
	}

	return nil
}

// DatabasePath returns the SQLite file used for visitor preferences.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "inkwell.db")
}
