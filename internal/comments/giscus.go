// Package comments configures the giscus discussion widget.
package comments

import (
	"encoding/json"
	"strings"

	"github.com/hyuniciel/inkwell/internal/theme"
)

const (
	// Origin is the target origin for postMessage calls to the widget iframe.
	Origin = "https://giscus.app"
	// ScriptURL is the widget loader.
	ScriptURL = Origin + "/client.js"
)

// Widget theme names used by giscus.
const (
	WidgetLight = "light"
	WidgetDark  = "dark_dimmed"
)

// Config describes one giscus embedding.
type Config struct {
	Enabled    bool
	Repo       string
	RepoID     string
	Category   string
	CategoryID string
	Mapping    string
	Lang       string
}

// Active reports whether the widget should be rendered at all.
func (c Config) Active() bool {
	return c.Enabled && strings.Contains(c.Repo, "/")
}

// ThemeFor maps a site theme to the widget theme.
func ThemeFor(t theme.Theme) string {
	if t == theme.Light {
		return WidgetLight
	}
	return WidgetDark
}

// Attr is one data-* attribute on the loader script.
type Attr struct {
	Name  string
	Value string
}

// Attrs returns the script attributes in the order giscus documents them.
func (c Config) Attrs(t theme.Theme) []Attr {
	mapping := c.Mapping
	if mapping == "" {
		mapping = "pathname"
	}
	lang := c.Lang
	if lang == "" {
		lang = "ko"
	}
	return []Attr{
		{"data-repo", c.Repo},
		{"data-repo-id", c.RepoID},
		{"data-category", c.Category},
		{"data-category-id", c.CategoryID},
		{"data-mapping", mapping},
		{"data-strict", "0"},
		{"data-reactions-enabled", "1"},
		{"data-emit-metadata", "1"},
		{"data-input-position", "top"},
		{"data-theme", ThemeFor(t)},
		{"data-lang", lang},
		{"data-loading", "lazy"},
	}
}

type setConfigMessage struct {
	Giscus struct {
		SetConfig struct {
			Theme string `json:"theme"`
		} `json:"setConfig"`
	} `json:"giscus"`
}

// SetConfigMessage builds the payload that switches a loaded widget's theme.
func SetConfigMessage(t theme.Theme) ([]byte, error) {
	var m setConfigMessage
	m.Giscus.SetConfig.Theme = ThemeFor(t)
	return json.Marshal(m)
}
