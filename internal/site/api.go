package site

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/hyuniciel/inkwell/internal/listing"
	"github.com/hyuniciel/inkwell/internal/post"
	"github.com/hyuniciel/inkwell/internal/theme"
)

type postsResponse struct {
	Posts     []post.Post `json:"posts"`
	Count     int         `json:"count"`
	ActiveTag string      `json:"active_tag"`
	Query     string      `json:"query"`
}

type tagsResponse struct {
	Tags []string `json:"tags"`
}

type themeResponse struct {
	Theme   theme.Theme `json:"theme"`
	Changed *bool       `json:"changed,omitempty"`
}

// Current is the theme the page shows; it may differ from what the server
// would resolve when the browser sends no colour scheme hint.
type toggleRequest struct {
	Current string `json:"current"`
}

type systemRequest struct {
	Preference string `json:"preference"`
	Current    string `json:"current"`
}

// handleManifest serves the loaded snapshot in manifest form.
func (s *Site) handleManifest(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.posts.All())
}

func (s *Site) handlePosts(w http.ResponseWriter, r *http.Request) {
	view := viewFromRequest(r)
	visible := view.Visible(s.posts.All())
	writeJSON(w, http.StatusOK, postsResponse{
		Posts:     visible,
		Count:     len(visible),
		ActiveTag: view.ActiveTag,
		Query:     view.Query,
	})
}

func (s *Site) handleTags(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, tagsResponse{Tags: listing.TagSet(s.posts.All())})
}

func (s *Site) handleThemeToggle(w http.ResponseWriter, r *http.Request) {
	var req toggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	m := s.themeManager(w, r)
	m.Adopt(theme.Theme(req.Current))
	t, err := m.Toggle()
	if err != nil {
		log.Printf("site: toggling theme: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not save theme"})
		return
	}
	writeJSON(w, http.StatusOK, themeResponse{Theme: t})
}

// handleThemeSystem follows an OS colour scheme change reported by the page.
func (s *Site) handleThemeSystem(w http.ResponseWriter, r *http.Request) {
	var req systemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	m := s.themeManager(w, r)
	m.Adopt(theme.Theme(req.Current))
	changed, err := m.SystemChanged(theme.ParsePreference(req.Preference))
	if err != nil {
		log.Printf("site: reading stored theme: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not read theme"})
		return
	}
	writeJSON(w, http.StatusOK, themeResponse{Theme: m.Current(), Changed: &changed})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
