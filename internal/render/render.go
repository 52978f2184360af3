// Package render converts post bodies from markdown to HTML.
package render

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// DefaultStyle is the chroma style used for fenced code blocks.
const DefaultStyle = "github"

// Markdown renders GitHub-flavoured markdown. Single newlines become <br>,
// headings get ids and raw HTML is passed through.
type Markdown struct {
	md goldmark.Markdown
}

// New creates a renderer using the given chroma style, or DefaultStyle when
// style is empty.
func New(style string) *Markdown {
	if style == "" {
		style = DefaultStyle
	}
	return &Markdown{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				highlighting.NewHighlighting(
					highlighting.WithStyle(style),
				),
			),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
			goldmark.WithRendererOptions(
				html.WithHardWraps(),
				html.WithUnsafe(),
			),
		),
	}
}

// Render converts body to HTML.
func (m *Markdown) Render(body string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := m.md.Convert([]byte(body), &buf); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}
