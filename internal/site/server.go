package site

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hyuniciel/inkwell/internal/comments"
	"github.com/hyuniciel/inkwell/internal/listing"
	"github.com/hyuniciel/inkwell/internal/post"
	"github.com/hyuniciel/inkwell/internal/prefs"
	"github.com/hyuniciel/inkwell/internal/render"
	"github.com/hyuniciel/inkwell/internal/theme"
)

// PostReader returns the raw markdown source of a post file.
type PostReader interface {
	Post(ctx context.Context, name string) ([]byte, error)
}

// BodyRenderer converts a post body from markdown to HTML.
type BodyRenderer interface {
	Render(body string) (template.HTML, error)
}

// Options holds presentation settings.
type Options struct {
	Title        string
	Description  string
	DefaultTheme theme.Theme
	Comments     comments.Config
	Debounce     time.Duration
}

// Site serves the listing, post pages, the JSON API and live search. It
// tracks open live search sessions so a reload can refresh them.
type Site struct {
	posts    post.Source
	pages    PostReader
	markdown BodyRenderer
	prefs    prefs.Factory
	opts     Options

	templates map[string]*template.Template
	cards     *template.Template

	lightMessage string
	darkMessage  string

	mu       sync.Mutex
	sessions map[*listing.Controller]struct{}
}

// New creates a Site. A nil factory stores theme choices in cookies and a nil
// markdown renderer uses the default highlight style.
func New(posts post.Source, pages PostReader, md BodyRenderer, pf prefs.Factory, opts Options) (*Site, error) {
	if md == nil {
		md = render.New("")
	}
	if pf == nil {
		var err error
		if pf, err = prefs.NewFactory(prefs.BackendCookie, nil); err != nil {
			return nil, err
		}
	}
	if !opts.DefaultTheme.Valid() {
		opts.DefaultTheme = theme.Default
	}

	s := &Site{
		posts:    posts,
		pages:    pages,
		markdown: md,
		prefs:    pf,
		opts:     opts,
		sessions: make(map[*listing.Controller]struct{}),
	}

	var err error
	if s.templates, err = parsePages(); err != nil {
		return nil, err
	}
	if s.cards, err = template.New("cards").Parse(cardsTemplate); err != nil {
		return nil, fmt.Errorf("parsing cards template: %w", err)
	}

	light, err := comments.SetConfigMessage(theme.Light)
	if err != nil {
		return nil, err
	}
	dark, err := comments.SetConfigMessage(theme.Dark)
	if err != nil {
		return nil, err
	}
	s.lightMessage, s.darkMessage = string(light), string(dark)

	return s, nil
}

func parsePages() (map[string]*template.Template, error) {
	pages := map[string]string{
		"index": indexTemplate,
		"post":  postTemplate,
		"error": errorTemplate,
	}
	out := make(map[string]*template.Template, len(pages))
	for name, body := range pages {
		t := template.New(name)
		for _, src := range []string{layoutTemplate, cardsTemplate, body} {
			if _, err := t.Parse(src); err != nil {
				return nil, fmt.Errorf("parsing %s template: %w", name, err)
			}
		}
		out[name] = t
	}
	return out, nil
}

// RegisterRoutes mounts all site routes onto the given router.
func (s *Site) RegisterRoutes(r chi.Router) {
	r.Get("/", s.handleIndex)
	r.Get("/post", s.handlePost)
	r.Get("/posts.json", s.handleManifest)
	r.Get("/api/posts", s.handlePosts)
	r.Get("/api/tags", s.handleTags)
	r.Post("/api/theme/toggle", s.handleThemeToggle)
	r.Post("/api/theme/system", s.handleThemeSystem)
	r.Get("/ws/search", s.handleLiveSearch)
	r.Get("/static/style.css", serveAsset("text/css; charset=utf-8", cssContent))
	r.Get("/static/app.js", serveAsset("application/javascript; charset=utf-8", jsContent))
}

func serveAsset(contentType, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.Write([]byte(body))
	}
}

// themeManager resolves the visitor's theme and asks the browser to send its
// colour scheme preference on later requests.
func (s *Site) themeManager(w http.ResponseWriter, r *http.Request) *theme.Manager {
	w.Header().Set("Accept-CH", "Sec-CH-Prefers-Color-Scheme")
	w.Header().Add("Vary", "Sec-CH-Prefers-Color-Scheme")
	pref := theme.ParsePreference(r.Header.Get("Sec-CH-Prefers-Color-Scheme"))
	return theme.NewManager(s.prefs(w, r), pref, s.opts.DefaultTheme)
}

// page is the data every layout needs.
type page struct {
	Title       string
	SiteTitle   string
	Description string
	Theme       theme.Theme
	ThemeStored bool
}

func (s *Site) newPage(m *theme.Manager, title, description string) page {
	if description == "" {
		description = s.opts.Description
	}
	return page{
		Title:       title,
		SiteTitle:   s.opts.Title,
		Description: description,
		Theme:       m.Current(),
		ThemeStored: m.Stored(),
	}
}

func (s *Site) renderPage(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := s.templates[name].ExecuteTemplate(&buf, "layout", data); err != nil {
		log.Printf("site: rendering %s page: %v", name, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

func (s *Site) renderCards(posts []post.Post) (string, error) {
	var buf bytes.Buffer
	if err := s.cards.ExecuteTemplate(&buf, "cards", newCards(posts)); err != nil {
		return "", fmt.Errorf("rendering cards: %w", err)
	}
	return buf.String(), nil
}
