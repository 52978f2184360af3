package config

import "time"

// DefaultPath is the config file read when --config is not given.
const DefaultPath = "inkwell.yml"

// DefaultInclude limits which page files may be served.
var DefaultInclude = []string{"**/*.md"}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Site: SiteConfig{
			Title: "Blog",
		},
		Content: ContentConfig{
			Dir:      ".",
			Manifest: "posts.json",
			PagesDir: "pages",
			Include:  append([]string(nil), DefaultInclude...),
		},
		Server: ServerConfig{
			Port: 8080,
		},
		Theme: ThemeConfig{
			Default: "dark",
			Storage: StorageCookie,
		},
		Comments: CommentsConfig{
			Enabled:  true,
			Repo:     "hyuniciel/hyuniciel.github.io",
			Category: "General",
			Mapping:  "pathname",
			Lang:     "ko",
		},
		Search: SearchConfig{
			DebounceMS: 200,
		},
		Markdown: MarkdownConfig{
			HighlightStyle: "github",
		},
		DataDir: ".inkwell",
	}
}

// SearchDebounce returns the live-search delay.
func (c *Config) SearchDebounce() time.Duration {
	return time.Duration(c.Search.DebounceMS) * time.Millisecond
}
