package frontmatter

// Value is either a plain string or a list of strings.
type Value struct {
	str    string
	list   []string
	isList bool
	source TagSource
}

// StringValue wraps a plain string.
func StringValue(s string) Value { return Value{str: s} }

func listValue(tl TagList) Value {
	return Value{list: tl.Items, isList: true, source: tl.Source}
}

// Metadata maps front-matter keys to values. Only a handful of keys are
// interpreted; the rest are carried along untouched.
type Metadata map[string]Value

// DefaultTitle is shown for posts without a title.
const DefaultTitle = "Untitled"

// Get returns the plain string stored under key.
func (m Metadata) Get(key string) string {
	v, ok := m[key]
	if !ok || v.isList {
		return ""
	}
	return v.str
}

// Title returns the title, or DefaultTitle when missing or empty.
func (m Metadata) Title() string {
	if t := m.Get("title"); t != "" {
		return t
	}
	return DefaultTitle
}

// HasTitle reports whether a non-empty title is present.
func (m Metadata) HasTitle() bool { return m.Get("title") != "" }

func (m Metadata) Date() string        { return m.Get("date") }
func (m Metadata) Category() string    { return m.Get("category") }
func (m Metadata) Description() string { return m.Get("description") }

// Tags returns the tag list. A tags value that was not written as a bracketed
// list is a plain string and yields nil.
func (m Metadata) Tags() []string {
	v, ok := m["tags"]
	if !ok || !v.isList {
		return nil
	}
	return v.list
}

// TagsFellBack reports whether the tags list needed the comma-split fallback.
func (m Metadata) TagsFellBack() bool {
	v, ok := m["tags"]
	return ok && v.isList && v.source == TagsFallback
}
