package bills

import (
	"regexp"
	"strings"
)

var (
	tagPattern        = regexp.MustCompile(`<[^>]*>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// htmlEntities is the fixed entity set upstream summaries are known to use.
// Order matters: &amp; is decoded last so "&amp;lt;" does not double-decode.
var htmlEntities = []struct {
	entity string
	text   string
}{
	{"&nbsp;", " "},
	{"&lt;", "<"},
	{"&gt;", ">"},
	{"&quot;", `"`},
	{"&#39;", "'"},
	{"&apos;", "'"},
	{"&amp;", "&"},
}

// CleanHTML strips markup from an HTML-bearing bill summary: all tags are
// removed, the known entity set decoded, runs of whitespace collapsed to
// single spaces, and the result trimmed.
func CleanHTML(html string) string {
	text := tagPattern.ReplaceAllString(html, " ")
	for _, e := range htmlEntities {
		text = strings.ReplaceAll(text, e.entity, e.text)
	}
	text = whitespacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
