package extract

import (
	"regexp"
	"strings"
)

var entityReplacer = strings.NewReplacer(
	"&nbsp;", " ",
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
)

var excessNewlines = regexp.MustCompile(`\n{3,}`)

// Normalize decodes the &nbsp;, &amp;, &lt; and &gt; entities, collapses
// runs of three or more newlines to two, and trims surrounding whitespace.
// Entities are replaced until none remain, so "&amp;lt;" becomes "<" and
// Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	for {
		next := entityReplacer.Replace(s)
		if next == s {
			break
		}
		s = next
	}
	s = excessNewlines.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
