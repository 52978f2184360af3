// Package frontmatter splits a markdown post into its metadata block and body.
//
// The block is the flat "key: value" form written by hand at the top of a post,
// delimited by lines containing exactly "---". It is not YAML: there is no
// nesting, and anything the parser does not understand is ignored rather than
// reported.
package frontmatter

import (
	"regexp"
	"strings"
)

const bom = "\ufeff"

// blockPattern matches an opening delimiter line, the shortest run of lines up
// to the next delimiter line, and everything after it.
var blockPattern = regexp.MustCompile(`(?s)^---\r?\n(.*?)\r?\n---\r?\n(.*)$`)

var lineBreak = regexp.MustCompile(`\r?\n`)

// Document is a parsed post source.
type Document struct {
	Meta Metadata
	Body string
}

// Parse extracts the metadata block from content. When there is no
// well-formed block, Meta is empty and Body is the whole input.
func Parse(content string) Document {
	content = strings.TrimPrefix(content, bom)

	m := blockPattern.FindStringSubmatch(content)
	if m == nil {
		return Document{Meta: Metadata{}, Body: content}
	}

	meta := Metadata{}
	for _, line := range lineBreak.Split(m[1], -1) {
		idx := strings.Index(line, ":")
		if idx <= 0 {
			continue
		}
		key := strings.TrimSpace(line[:idx])
		value := unquote(strings.TrimSpace(line[idx+1:]))

		if key == "tags" && isBracketed(value) {
			meta[key] = listValue(ParseTagList(value))
			continue
		}
		meta[key] = StringValue(value)
	}

	return Document{Meta: meta, Body: m[2]}
}

// unquote removes one layer of matching straight quotes.
func unquote(s string) string {
	for _, q := range []string{`"`, `'`} {
		if strings.HasPrefix(s, q) && strings.HasSuffix(s, q) {
			if len(s) < 2 {
				return ""
			}
			return s[1 : len(s)-1]
		}
	}
	return s
}

func isBracketed(s string) bool {
	return strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]")
}
