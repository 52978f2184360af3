// Package listing implements the post list: the derived tag set, the
// single-select tag filter and the substring search, composed into one view.
package listing

import (
	"sort"
	"strings"

	"github.com/hyuniciel/inkwell/internal/post"
)

// TagSet returns every tag used by posts, deduplicated and sorted ascending.
func TagSet(posts []post.Post) []string {
	seen := make(map[string]struct{})
	for _, p := range posts {
		for _, t := range p.Tags {
			seen[t] = struct{}{}
		}
	}
	tags := make([]string, 0, len(seen))
	for t := range seen {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}

// MatchesTag reports whether p carries tag. An empty tag matches every post.
func MatchesTag(p post.Post, tag string) bool {
	if tag == "" {
		return true
	}
	return p.HasTag(tag)
}

// normalize lower-cases and trims s for comparison.
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Matches reports whether p matches the free-text query. The comparison is a
// case-insensitive substring test against the title, excerpt, description,
// each tag and the category, in that order. A blank query matches everything.
func Matches(p post.Post, query string) bool {
	q := normalize(query)
	if q == "" {
		return true
	}

	if strings.Contains(normalize(p.Title), q) {
		return true
	}
	if strings.Contains(normalize(p.Excerpt), q) {
		return true
	}
	if strings.Contains(normalize(p.Description), q) {
		return true
	}
	for _, t := range p.Tags {
		if strings.Contains(normalize(t), q) {
			return true
		}
	}
	return strings.Contains(normalize(p.Category), q)
}

// Filter returns the posts for which keep returns true, preserving order.
func Filter(posts []post.Post, keep func(post.Post) bool) []post.Post {
	out := make([]post.Post, 0, len(posts))
	for _, p := range posts {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}
