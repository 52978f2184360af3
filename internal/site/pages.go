package site

import (
	"errors"
	"html/template"
	"log"
	"net/http"
	"net/url"

	"github.com/hyuniciel/inkwell/internal/comments"
	"github.com/hyuniciel/inkwell/internal/content"
	"github.com/hyuniciel/inkwell/internal/frontmatter"
	"github.com/hyuniciel/inkwell/internal/listing"
	"github.com/hyuniciel/inkwell/internal/post"
	"github.com/hyuniciel/inkwell/internal/theme"
)

// User-facing messages on the error page.
const (
	msgPostNotFound  = "게시글을 찾을 수 없습니다."
	msgPostLoadError = "게시글을 불러오는 중 오류가 발생했습니다."
	errorTitle       = "오류"
	untitledPage     = "Post"
)

type card struct {
	Href     string
	Title    string
	Date     string
	Category string
	Excerpt  string
	Tags     []string
}

func newCards(posts []post.Post) []card {
	cards := make([]card, len(posts))
	for i, p := range posts {
		cards[i] = card{
			Href:     postHref(p.File),
			Title:    p.Title,
			Date:     post.FormatDate(p.Date),
			Category: p.Category,
			Excerpt:  p.Excerpt,
			Tags:     p.Tags,
		}
	}
	return cards
}

func postHref(file string) string {
	return "/post?file=" + url.QueryEscape(file)
}

type tagLink struct {
	Name   string
	Href   string
	Active bool
}

// tagLinks builds one link per tag that applies the toggle when followed.
func tagLinks(tags []string, v listing.View) []tagLink {
	links := make([]tagLink, len(tags))
	for i, t := range tags {
		links[i] = tagLink{
			Name:   t,
			Href:   listingHref(v.NextTag(t), v.Query),
			Active: t == v.ActiveTag,
		}
	}
	return links
}

func listingHref(tag, query string) string {
	q := url.Values{}
	if tag != "" {
		q.Set("tag", tag)
	}
	if query != "" {
		q.Set("q", query)
	}
	if len(q) == 0 {
		return "/"
	}
	return "/?" + q.Encode()
}

type indexData struct {
	page
	ActiveTag string
	Query     string
	Tags      []tagLink
	Cards     []card
	Count     int
}

func viewFromRequest(r *http.Request) listing.View {
	q := r.URL.Query()
	return listing.View{ActiveTag: q.Get("tag"), Query: q.Get("q")}
}

func (s *Site) handleIndex(w http.ResponseWriter, r *http.Request) {
	m := s.themeManager(w, r)
	view := viewFromRequest(r)

	all := s.posts.All()
	visible := view.Visible(all)

	s.renderPage(w, http.StatusOK, "index", indexData{
		page:      s.newPage(m, s.opts.Title, ""),
		ActiveTag: view.ActiveTag,
		Query:     view.Query,
		Tags:      tagLinks(listing.TagSet(all), view),
		Cards:     newCards(visible),
		Count:     len(visible),
	})
}

type commentsData struct {
	Origin       string
	ScriptURL    string
	Attrs        []comments.Attr
	LightMessage string
	DarkMessage  string
	LightTheme   string
	DarkTheme    string
}

type postData struct {
	page
	Heading      string
	Date         string
	Category     string
	Tags         []string
	Body         template.HTML
	RenderFailed bool
	Comments     *commentsData
}

type errorData struct {
	page
	Message string
}

func (s *Site) renderError(w http.ResponseWriter, m *theme.Manager, status int, message string) {
	s.renderPage(w, status, "error", errorData{
		page:    s.newPage(m, errorTitle+" | "+s.opts.Title, ""),
		Message: message,
	})
}

func (s *Site) handlePost(w http.ResponseWriter, r *http.Request) {
	m := s.themeManager(w, r)

	file := r.URL.Query().Get("file")
	if file == "" {
		s.renderError(w, m, http.StatusBadRequest, msgPostNotFound)
		return
	}

	raw, err := s.pages.Post(r.Context(), file)
	if err != nil {
		log.Printf("site: loading post %q: %v", file, err)
		status := http.StatusBadGateway
		if errors.Is(err, content.ErrNotFound) {
			status = http.StatusNotFound
		}
		s.renderError(w, m, status, msgPostLoadError)
		return
	}

	doc := frontmatter.Parse(string(raw))
	meta := doc.Meta

	pageTitle := untitledPage
	if meta.HasTitle() {
		pageTitle = meta.Title()
	}
	data := postData{
		page:     s.newPage(m, pageTitle+" | "+s.opts.Title, meta.Description()),
		Heading:  meta.Title(),
		Category: meta.Category(),
		Tags:     meta.Tags(),
	}
	if d := meta.Date(); d != "" {
		data.Date = post.FormatDate(d)
	}

	body, err := s.markdown.Render(doc.Body)
	if err != nil {
		log.Printf("site: rendering post %q: %v", file, err)
		data.RenderFailed = true
	} else {
		data.Body = body
	}

	if cfg := s.opts.Comments; cfg.Active() {
		data.Comments = &commentsData{
			Origin:       comments.Origin,
			ScriptURL:    comments.ScriptURL,
			Attrs:        cfg.Attrs(m.Current()),
			LightMessage: s.lightMessage,
			DarkMessage:  s.darkMessage,
			LightTheme:   comments.WidgetLight,
			DarkTheme:    comments.WidgetDark,
		}
	}

	s.renderPage(w, http.StatusOK, "post", data)
}
