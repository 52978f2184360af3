package frontmatter

import (
	"encoding/json"
	"strings"
)

// TagSource records which strategy produced a TagList.
type TagSource int

const (
	// TagsStructured means the value was a valid JSON array of strings.
	TagsStructured TagSource = iota
	// TagsFallback means the value was split on commas by hand.
	TagsFallback
)

func (s TagSource) String() string {
	if s == TagsStructured {
		return "structured"
	}
	return "fallback"
}

// TagList is the result of parsing a bracketed tag value.
type TagList struct {
	Items  []string
	Source TagSource
}

// ParseTagList parses a value such as `["go", "web"]`. Values that are not a
// strict JSON string array, like `[go, web]` or `[a, "b]`, are split on commas
// with one leading and one trailing quote stripped from each item. It never
// fails; the fallback always yields at least one item.
func ParseTagList(raw string) TagList {
	var items []string
	if err := json.Unmarshal([]byte(raw), &items); err == nil {
		if items == nil {
			items = []string{}
		}
		return TagList{Items: items, Source: TagsStructured}
	}

	inner := strings.TrimSuffix(strings.TrimPrefix(raw, "["), "]")
	parts := strings.Split(inner, ",")
	items = make([]string, 0, len(parts))
	for _, p := range parts {
		items = append(items, stripQuotes(strings.TrimSpace(p)))
	}
	return TagList{Items: items, Source: TagsFallback}
}

// stripQuotes drops one quote character from each end independently.
func stripQuotes(s string) string {
	if strings.HasPrefix(s, `"`) || strings.HasPrefix(s, "'") {
		s = s[1:]
	}
	if strings.HasSuffix(s, `"`) || strings.HasSuffix(s, "'") {
		s = s[:len(s)-1]
	}
	return s
}
