// Package post holds the post summary model shared by the listing, search and
// detail components, and the capabilities they use to talk to each other.
package post

import (
	"encoding/json"
	"time"
)

// Post is one manifest entry.
type Post struct {
	File        string `json:"file"`
	Title       string `json:"title"`
	Date        string `json:"date"`
	Category    string `json:"category,omitempty"`
	Excerpt     string `json:"excerpt,omitempty"`
	Description string `json:"description,omitempty"`
	Tags        Tags   `json:"tags,omitempty"`
}

// HasTag reports whether tag is one of the post's tags (exact match).
func (p Post) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Tags is a post's ordered tag list. Decoding is lenient: a missing, null or
// non-array value yields no tags and non-string elements are dropped.
type Tags []string

func (t *Tags) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		*t = nil
		return nil
	}
	out := make(Tags, 0, len(raw))
	for _, r := range raw {
		var s string
		if err := json.Unmarshal(r, &s); err == nil {
			out = append(out, s)
		}
	}
	*t = out
	return nil
}

// Source exposes the full, unfiltered post set.
type Source interface {
	All() []Post
}

// Renderer displays a post list, replacing whatever was shown before.
type Renderer interface {
	Render(posts []Post) error
}

// StaticSource is a fixed post list.
type StaticSource []Post

func (s StaticSource) All() []Post { return s }

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate tries the date layouts used in manifests and front matter.
func ParseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDate renders s as YYYY-MM-DD. Strings in an unknown format are
// returned unchanged.
func FormatDate(s string) string {
	t, ok := ParseDate(s)
	if !ok {
		return s
	}
	return t.Format("2006-01-02")
}
