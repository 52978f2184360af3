package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// detectContentDir looks for a posts.json in the usual places.
func detectContentDir() string {
	for _, dir := range []string{".", "public", "site", "docs"} {
		if _, err := os.Stat(filepath.Join(dir, "posts.json")); err == nil {
			return dir
		}
	}
	return "."
}

// RunWizard runs an interactive configuration wizard and saves the
// resulting Config to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to inkwell! Let's configure your blog.")
	fmt.Println()

	cfg := DefaultConfig()

	titlePrompt := promptui.Prompt{
		Label:   "Site title",
		Default: cfg.Site.Title,
	}
	title, err := titlePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("site title: %w", err)
	}
	cfg.Site.Title = title

	sourcePrompt := promptui.Select{
		Label: "Where do posts.json and pages/ live?",
		Items: []string{
			"local directory",
			"remote base URL",
		},
	}
	sourceIdx, _, err := sourcePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("content source: %w", err)
	}
	if sourceIdx == 0 {
		dirPrompt := promptui.Prompt{
			Label:   "Content directory",
			Default: detectContentDir(),
		}
		if cfg.Content.Dir, err = dirPrompt.Run(); err != nil {
			return nil, fmt.Errorf("content directory: %w", err)
		}
	} else {
		urlPrompt := promptui.Prompt{
			Label: "Content base URL",
			Validate: func(s string) error {
				if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
					return fmt.Errorf("must start with http:// or https://")
				}
				return nil
			},
		}
		if cfg.Content.BaseURL, err = urlPrompt.Run(); err != nil {
			return nil, fmt.Errorf("content base URL: %w", err)
		}
	}

	portPrompt := promptui.Prompt{
		Label:   "HTTP port",
		Default: strconv.Itoa(cfg.Server.Port),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n < 1 || n > 65535 {
				return fmt.Errorf("port must be 1-65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Server.Port, _ = strconv.Atoi(portStr)

	themePrompt := promptui.Select{
		Label: "Default theme (used when the visitor's OS has no preference)",
		Items: []string{"dark", "light"},
	}
	if _, cfg.Theme.Default, err = themePrompt.Run(); err != nil {
		return nil, fmt.Errorf("default theme: %w", err)
	}

	storagePrompt := promptui.Select{
		Label: "Remember theme choices in",
		Items: []string{
			"cookie - stored in the visitor's browser",
			"sqlite - stored server-side per visitor",
		},
	}
	storageIdx, _, err := storagePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("theme storage: %w", err)
	}
	cfg.Theme.Storage = []StorageBackend{StorageCookie, StorageSQLite}[storageIdx]

	commentsPrompt := promptui.Prompt{
		Label:     "Enable giscus comments",
		IsConfirm: true,
	}
	if _, err := commentsPrompt.Run(); err != nil {
		cfg.Comments.Enabled = false
	} else {
		if err := promptComments(&cfg.Comments); err != nil {
			return nil, err
		}
	}

	includePrompt := promptui.Prompt{
		Label:   "Page include patterns (comma-separated globs)",
		Default: strings.Join(DefaultInclude, ","),
	}
	includeStr, err := includePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("include patterns: %w", err)
	}
	if include := splitAndTrim(includeStr); len(include) > 0 {
		cfg.Content.Include = include
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

func promptComments(c *CommentsConfig) error {
	fields := []struct {
		label string
		dst   *string
	}{
		{"giscus repository (owner/name)", &c.Repo},
		{"giscus repository id", &c.RepoID},
		{"giscus category", &c.Category},
		{"giscus category id", &c.CategoryID},
		{"Widget language", &c.Lang},
	}
	for _, f := range fields {
		p := promptui.Prompt{Label: f.label, Default: *f.dst}
		v, err := p.Run()
		if err != nil {
			return fmt.Errorf("%s: %w", f.label, err)
		}
		*f.dst = v
	}
	return nil
}

// splitAndTrim splits a comma-separated string and drops empty entries.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}
