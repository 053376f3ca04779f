package crawler

import (
	"regexp"
	"strings"
)

var tagRegex = regexp.MustCompile(`<[^>]+>`)

// entities is the fixed set of character references the site uses in
// metadata fields. Order matters: &amp; is decoded before the numeric forms.
var entities = [][2]string{
	{"&nbsp;", " "},
	{"&amp;", "&"},
	{"&#8217;", "’"},
	{"&#8211;", "–"},
	{"&#8212;", "—"},
	{"&#8220;", "“"},
	{"&#8221;", "”"},
	{"&#8230;", "…"},
}

// StripTags reduces a markup snippet to a single line of plain text.
// References outside the fixed entity set are left as-is.
func StripTags(html string) string {
	text := tagRegex.ReplaceAllString(html, "")

	for _, e := range entities {
		text = strings.ReplaceAll(text, e[0], e[1])
	}

	return strings.Join(strings.Fields(text), " ")
}
