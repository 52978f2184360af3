package listing

import "github.com/hyuniciel/inkwell/internal/post"

// View is the transient filter state of a post list: at most one active tag
// and a free-text query. The two narrow the list by conjunction.
type View struct {
	ActiveTag string
	Query     string
}

// ToggleTag selects tag, or clears the filter if tag is already active.
func (v *View) ToggleTag(tag string) {
	if v.ActiveTag == tag {
		v.ActiveTag = ""
		return
	}
	v.ActiveTag = tag
}

// NextTag returns the active tag that selecting tag would produce, without
// changing v. Used to build toggle links.
func (v View) NextTag(tag string) string {
	if v.ActiveTag == tag {
		return ""
	}
	return tag
}

// Reset clears both the tag filter and the query.
func (v *View) Reset() {
	v.ActiveTag = ""
	v.Query = ""
}

// Visible applies the tag filter, then the query, to posts.
func (v View) Visible(posts []post.Post) []post.Post {
	return Filter(posts, func(p post.Post) bool {
		return MatchesTag(p, v.ActiveTag) && Matches(p, v.Query)
	})
}
