package site

import (
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/hyuniciel/inkwell/internal/comments"
	"github.com/hyuniciel/inkwell/internal/content"
	"github.com/hyuniciel/inkwell/internal/post"
	"github.com/hyuniciel/inkwell/internal/store"
)

const testManifest = `[
  {"file": "a.md", "title": "Hello", "date": "2024-01-02T10:00:00", "excerpt": "first", "tags": ["x"]},
  {"file": "b.md", "title": "Other", "date": "2024-02-03", "category": "Life"}
]`

const testPostA = `---
title: Hello
date: 2024-01-02
category: Dev
tags: ["x", "go"]
description: the first post
---
## Section

Some text.
`

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
}

func setupSite(t *testing.T, opts Options) (*Site, chi.Router) {
	t.Helper()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "posts.json"), testManifest)
	writeFile(t, filepath.Join(dir, "pages", "a.md"), testPostA)
	writeFile(t, filepath.Join(dir, "pages", "plain.md"), "no front matter here")
	writeFile(t, filepath.Join(dir, "secret.md"), "outside pages")

	lib := content.NewLibrary(content.NewDirFetcher(dir), "posts.json", "pages", nil)
	st := store.New(lib)
	if err := st.Load(context.Background()); err != nil {
		t.Fatalf("loading store: %v", err)
	}

	if opts.Title == "" {
		opts.Title = "Blog"
	}
	s, err := New(st, lib, nil, nil, opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	r := chi.NewRouter()
	s.RegisterRoutes(r)
	return s, r
}

func get(r http.Handler, target string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIndexListsAllPosts(t *testing.T) {
	_, r := setupSite(t, Options{})

	w := get(r, "/")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{
		"Hello", "Other",
		`href="/post?file=a.md"`,
		`data-tag="x"`,
		"2024-01-02", "2024-02-03",
		`<span class="post-card-category">Life</span>`,
		`data-theme="dark"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("index missing %q", want)
		}
	}
	if got := w.Header().Get("Accept-CH"); got != "Sec-CH-Prefers-Color-Scheme" {
		t.Errorf("Accept-CH = %q", got)
	}
}

func TestIndexTagToggle(t *testing.T) {
	_, r := setupSite(t, Options{})

	body := get(r, "/?tag=x").Body.String()
	if !strings.Contains(body, "Hello") || strings.Contains(body, "Other") {
		t.Errorf("tag filter should keep only a.md:\n%s", body)
	}
	// The active tag links back to the unfiltered list.
	if !strings.Contains(body, `class="tag active" href="/"`) {
		t.Errorf("expected active tag linking to /:\n%s", body)
	}

	body = get(r, "/").Body.String()
	if !strings.Contains(body, `href="/?tag=x"`) {
		t.Errorf("expected inactive tag linking to /?tag=x")
	}
}

func TestIndexSearch(t *testing.T) {
	_, r := setupSite(t, Options{})

	body := get(r, "/?q=LIFE").Body.String()
	if strings.Contains(body, "Hello") || !strings.Contains(body, "Other") {
		t.Errorf("category search should match only b.md")
	}

	body = get(r, "/?q=zzz").Body.String()
	if !strings.Contains(body, `id="emptyState"`) {
		t.Errorf("expected empty state for unmatched query")
	}

	body = get(r, "/?tag=x&q=other").Body.String()
	if !strings.Contains(body, `id="emptyState"`) {
		t.Errorf("tag and query should intersect to nothing")
	}
}

func TestPostPage(t *testing.T) {
	_, r := setupSite(t, Options{
		Comments: comments.Config{Enabled: true, Repo: "owner/blog", Category: "General"},
	})

	w := get(r, "/post?file=a.md")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	body := w.Body.String()

	for _, want := range []string{
		"<title>Hello | Blog</title>",
		`<meta name="description" content="the first post">`,
		`id="postTitle">Hello</h1>`,
		`id="postDate">2024-01-02</time>`,
		`id="postCategory">Dev</span>`,
		`<span class="tag">#x</span><span class="tag">#go</span>`,
		`<h2 id="section">Section</h2>`,
		`src="https://giscus.app/client.js"`,
		`data-repo="owner/blog"`,
		`data-theme="dark_dimmed"`,
		`crossorigin="anonymous"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("post page missing %q", want)
		}
	}

	titleAt := strings.Index(body, `id="postTitle"`)
	bodyAt := strings.Index(body, `id="postContent"`)
	widgetAt := strings.Index(body, `id="giscusContainer"`)
	if !(titleAt < bodyAt && bodyAt < widgetAt) {
		t.Errorf("expected metadata, content, widget order; got %d, %d, %d", titleAt, bodyAt, widgetAt)
	}
}

func TestPostPageDefaults(t *testing.T) {
	_, r := setupSite(t, Options{})

	body := get(r, "/post?file=plain.md").Body.String()
	if !strings.Contains(body, "<title>Post | Blog</title>") {
		t.Errorf("expected fallback page title")
	}
	if !strings.Contains(body, `id="postTitle">Untitled</h1>`) {
		t.Errorf("expected Untitled heading")
	}
	if !strings.Contains(body, "no front matter here") {
		t.Errorf("expected raw body rendered")
	}
	if strings.Contains(body, "giscusContainer") {
		t.Errorf("comments disabled, widget should be omitted")
	}
}

func TestPostErrors(t *testing.T) {
	_, r := setupSite(t, Options{})

	tests := []struct {
		target string
		status int
		msg    string
	}{
		{"/post", http.StatusBadRequest, msgPostNotFound},
		{"/post?file=", http.StatusBadRequest, msgPostNotFound},
		{"/post?file=missing.md", http.StatusNotFound, msgPostLoadError},
		{"/post?file=..%2Fsecret.md", http.StatusNotFound, msgPostLoadError},
		{"/post?file=notes.txt", http.StatusNotFound, msgPostLoadError},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			w := get(r, tt.target)
			if w.Code != tt.status {
				t.Errorf("status = %d, want %d", w.Code, tt.status)
			}
			body := w.Body.String()
			if !strings.Contains(body, tt.msg) {
				t.Errorf("missing message %q", tt.msg)
			}
			if !strings.Contains(body, `<a href="/" class="back-link">`) {
				t.Errorf("missing link back to the listing")
			}
			if !strings.Contains(body, "<title>오류 | Blog</title>") {
				t.Errorf("missing error title")
			}
		})
	}
}

type failingReader struct{}

func (failingReader) Post(context.Context, string) ([]byte, error) {
	return nil, errors.New("connection refused")
}

func TestPostFetchFailure(t *testing.T) {
	s, err := New(post.StaticSource(nil), failingReader{}, nil, nil, Options{Title: "Blog"})
	if err != nil {
		t.Fatal(err)
	}
	r := chi.NewRouter()
	s.RegisterRoutes(r)

	w := get(r, "/post?file=a.md")
	if w.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", w.Code)
	}
	if !strings.Contains(w.Body.String(), msgPostLoadError) {
		t.Errorf("expected generic load error message")
	}
}

func TestJSONEndpoints(t *testing.T) {
	_, r := setupSite(t, Options{})

	var manifest []post.Post
	if err := json.NewDecoder(get(r, "/posts.json").Body).Decode(&manifest); err != nil {
		t.Fatalf("decoding manifest: %v", err)
	}
	if len(manifest) != 2 || manifest[0].File != "a.md" {
		t.Errorf("unexpected manifest: %+v", manifest)
	}

	var posts postsResponse
	if err := json.NewDecoder(get(r, "/api/posts?tag=x").Body).Decode(&posts); err != nil {
		t.Fatalf("decoding posts: %v", err)
	}
	if posts.Count != 1 || posts.Posts[0].File != "a.md" || posts.ActiveTag != "x" {
		t.Errorf("unexpected filtered posts: %+v", posts)
	}

	var tags tagsResponse
	if err := json.NewDecoder(get(r, "/api/tags").Body).Decode(&tags); err != nil {
		t.Fatalf("decoding tags: %v", err)
	}
	if len(tags.Tags) != 1 || tags.Tags[0] != "x" {
		t.Errorf("tags = %v, want [x]", tags.Tags)
	}
}

func TestThemeToggle(t *testing.T) {
	_, r := setupSite(t, Options{})

	req := httptest.NewRequest(http.MethodPost, "/api/theme/toggle", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp themeResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Theme != "light" {
		t.Errorf("toggle from default dark gave %q", resp.Theme)
	}

	var stored *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == "blog-theme" {
			stored = c
		}
	}
	if stored == nil || stored.Value != "light" {
		t.Fatalf("expected blog-theme=light cookie, got %v", w.Result().Cookies())
	}

	// The stored choice wins over the OS preference.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Sec-CH-Prefers-Color-Scheme", "dark")
	req.AddCookie(stored)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	body := w.Body.String()
	if !strings.Contains(body, `data-theme="light" data-theme-stored="true"`) {
		t.Errorf("expected stored light theme on the page")
	}
}

func TestThemeFollowsOSPreference(t *testing.T) {
	_, r := setupSite(t, Options{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Sec-CH-Prefers-Color-Scheme", `"light"`)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if !strings.Contains(w.Body.String(), `data-theme="light" data-theme-stored="false"`) {
		t.Errorf("expected OS light preference to apply")
	}
}

func TestThemeSystemChange(t *testing.T) {
	_, r := setupSite(t, Options{})

	report := func(cookies ...*http.Cookie) themeResponse {
		req := httptest.NewRequest(http.MethodPost, "/api/theme/system", strings.NewReader(`{"preference":"light"}`))
		for _, c := range cookies {
			req.AddCookie(c)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		var resp themeResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatal(err)
		}
		return resp
	}

	resp := report()
	if resp.Theme != "light" || resp.Changed == nil || !*resp.Changed {
		t.Errorf("expected switch to light, got %+v", resp)
	}

	resp = report(&http.Cookie{Name: "blog-theme", Value: "dark"})
	if resp.Theme != "dark" || resp.Changed == nil || *resp.Changed {
		t.Errorf("stored choice should ignore OS change, got %+v", resp)
	}
}

func TestStaticAssets(t *testing.T) {
	_, r := setupSite(t, Options{})

	w := get(r, "/static/app.js")
	if w.Code != http.StatusOK || !strings.Contains(w.Header().Get("Content-Type"), "javascript") {
		t.Errorf("app.js: %d %s", w.Code, w.Header().Get("Content-Type"))
	}
	w = get(r, "/static/style.css")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "data-theme") {
		t.Errorf("style.css: %d", w.Code)
	}
}

func dialLive(t *testing.T, r http.Handler, query string) *websocket.Conn {
	t.Helper()
	server := httptest.NewServer(r)
	t.Cleanup(server.Close)

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/search" + query
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("websocket dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	if resp.StatusCode != http.StatusSwitchingProtocols {
		t.Fatalf("expected 101, got %d", resp.StatusCode)
	}
	return conn
}

func readLive(t *testing.T, conn *websocket.Conn) liveResponse {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var resp liveResponse
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatalf("read: %v", err)
	}
	return resp
}

func TestLiveSearch(t *testing.T) {
	_, r := setupSite(t, Options{Debounce: 10 * time.Millisecond})
	conn := dialLive(t, r, "")

	conn.WriteJSON(liveRequest{Type: "tag", Tag: "x"})
	resp := readLive(t, conn)
	if resp.Type != "results" || resp.Count != 1 || resp.ActiveTag != "x" {
		t.Errorf("after tag: %+v", resp)
	}
	if !strings.Contains(resp.HTML, "Hello") || strings.Contains(resp.HTML, "Other") {
		t.Errorf("unexpected fragment: %s", resp.HTML)
	}

	conn.WriteJSON(liveRequest{Type: "tag", Tag: "x"})
	if resp = readLive(t, conn); resp.Count != 2 || resp.ActiveTag != "" {
		t.Errorf("second toggle should clear the filter: %+v", resp)
	}

	conn.WriteJSON(liveRequest{Type: "query", Query: "zzz"})
	resp = readLive(t, conn)
	if resp.Count != 0 || resp.Query != "zzz" || !strings.Contains(resp.HTML, "emptyState") {
		t.Errorf("after query: %+v", resp)
	}

	conn.WriteJSON(liveRequest{Type: "clear"})
	if resp = readLive(t, conn); resp.Count != 2 || resp.Query != "" {
		t.Errorf("after clear: %+v", resp)
	}
}

func TestLiveSearchDebounces(t *testing.T) {
	_, r := setupSite(t, Options{Debounce: 50 * time.Millisecond})
	conn := dialLive(t, r, "?tag=x")

	for _, q := range []string{"h", "he", "hel"} {
		conn.WriteJSON(liveRequest{Type: "query", Query: q})
	}
	resp := readLive(t, conn)
	if resp.Query != "hel" {
		t.Errorf("expected only the last query to fire, got %q", resp.Query)
	}
	if resp.ActiveTag != "x" || resp.Count != 1 {
		t.Errorf("session should start from the page's tag: %+v", resp)
	}
}

func TestLiveSearchRejectsUnknownMessages(t *testing.T) {
	_, r := setupSite(t, Options{})
	conn := dialLive(t, r, "")

	conn.WriteMessage(websocket.TextMessage, []byte("not json"))
	if resp := readLive(t, conn); resp.Type != "error" || resp.Message != "invalid message format" {
		t.Errorf("got %+v", resp)
	}

	conn.WriteJSON(liveRequest{Type: "bogus"})
	if resp := readLive(t, conn); resp.Type != "error" || !strings.Contains(resp.Message, "bogus") {
		t.Errorf("got %+v", resp)
	}
}

func postJSON(r http.Handler, target, body string, cookies ...*http.Cookie) themeResponse {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var resp themeResponse
	json.NewDecoder(w.Body).Decode(&resp)
	return resp
}

func TestThemeToggleFlipsShownTheme(t *testing.T) {
	_, r := setupSite(t, Options{})

	// No client hint: the server alone would resolve dark.
	resp := postJSON(r, "/api/theme/system", `{"preference":"light","current":"dark"}`)
	if resp.Theme != "light" {
		t.Fatalf("system change: got %q, want light", resp.Theme)
	}

	resp = postJSON(r, "/api/theme/toggle", `{"current":"light"}`)
	if resp.Theme != "dark" {
		t.Errorf("toggle from shown light: got %q, want dark", resp.Theme)
	}

	tests := []struct {
		body string
		want string
	}{
		{`{"current":"dark"}`, "light"},
		{`{"current":"light"}`, "dark"},
		{`{"current":"purple"}`, "light"}, // ignored, server resolves dark
		{`{}`, "light"},
	}
	for _, tt := range tests {
		if got := postJSON(r, "/api/theme/toggle", tt.body).Theme; string(got) != tt.want {
			t.Errorf("toggle %s: got %q, want %q", tt.body, got, tt.want)
		}
	}
}

func TestThemeToggleRejectsMalformedBody(t *testing.T) {
	_, r := setupSite(t, Options{})

	req := httptest.NewRequest(http.MethodPost, "/api/theme/toggle", strings.NewReader("{not json"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestLayoutAppliesOSPreferenceBeforeStyles(t *testing.T) {
	_, r := setupSite(t, Options{})

	body := get(r, "/").Body.String()
	script := strings.Index(body, `matchMedia("(prefers-color-scheme: light)")`)
	styles := strings.Index(body, `href="/static/style.css"`)
	if script < 0 || script > styles {
		t.Errorf("expected the OS preference check in head before the stylesheet (script %d, styles %d)", script, styles)
	}
}

type failingRenderer struct{}

func (failingRenderer) Render(string) (template.HTML, error) {
	return "", errors.New("boom")
}

func TestPostRenderFailureKeepsPage(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "pages", "a.md"), testPostA)
	lib := content.NewLibrary(content.NewDirFetcher(dir), "posts.json", "pages", nil)

	s, err := New(post.StaticSource(nil), lib, failingRenderer{}, nil, Options{
		Title:    "Blog",
		Comments: comments.Config{Enabled: true, Repo: "owner/blog"},
	})
	if err != nil {
		t.Fatal(err)
	}
	r := chi.NewRouter()
	s.RegisterRoutes(r)

	w := get(r, "/post?file=a.md")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{
		"게시글을 렌더링하는 중 오류가 발생했습니다.",
		`id="postTitle">Hello</h1>`,
		`id="postDate">2024-01-02</time>`,
		`id="giscusContainer"`,
		`data-repo="owner/blog"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("post page missing %q", want)
		}
	}
	if strings.Contains(body, "Some text.") {
		t.Error("body should not be shown when rendering fails")
	}
}

// swapSource is a post source whose contents can change under a live session.
type swapSource struct {
	mu    sync.Mutex
	posts []post.Post
}

func (s *swapSource) All() []post.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.posts
}

func (s *swapSource) set(posts []post.Post) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts = posts
}

func TestRefreshPushesToLiveSessions(t *testing.T) {
	src := &swapSource{posts: []post.Post{{File: "a.md", Title: "Hello", Tags: post.Tags{"x"}}}}
	s, err := New(src, failingReader{}, nil, nil, Options{Title: "Blog", Debounce: 10 * time.Millisecond})
	if err != nil {
		t.Fatal(err)
	}
	r := chi.NewRouter()
	s.RegisterRoutes(r)
	conn := dialLive(t, r, "?tag=x")

	// A round trip guarantees the session is registered.
	conn.WriteJSON(liveRequest{Type: "query", Query: ""})
	if resp := readLive(t, conn); resp.Count != 1 {
		t.Fatalf("initial count = %d, want 1", resp.Count)
	}

	src.set([]post.Post{
		{File: "a.md", Title: "Hello", Tags: post.Tags{"x"}},
		{File: "c.md", Title: "New", Tags: post.Tags{"x"}},
		{File: "d.md", Title: "Untagged"},
	})
	s.Refresh()

	resp := readLive(t, conn)
	if resp.Type != "results" || resp.Count != 2 || resp.ActiveTag != "x" {
		t.Errorf("refresh should keep the session's view: %+v", resp)
	}
	if !strings.Contains(resp.HTML, "New") {
		t.Errorf("refreshed fragment missing the new post: %s", resp.HTML)
	}
}

func TestRefreshWithoutSessions(t *testing.T) {
	s, _ := setupSite(t, Options{})
	s.Refresh()
}
