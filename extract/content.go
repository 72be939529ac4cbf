package extract

import (
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/pagedigest"
)

// Content length thresholds, in characters of trimmed text.
const (
	// MinSemanticLength is the minimum length of an article/main/section block.
	MinSemanticLength = 100

	// MinBlockLength is the length a div or p must exceed to be kept.
	MinBlockLength = 50
)

// semanticTags are tried in priority order.
var semanticTags = []string{"article", "main", "section"}

// Content returns the main text of doc, normalized. Three tiers are tried
// in order, each only if the previous one produced nothing:
//
//   - semantic: the first article, main or section block (in that tag
//     order) with at least MinSemanticLength characters
//   - block: every div and p outside "ads" classes longer than
//     MinBlockLength, each preceded by a newline
//   - document: the text of the whole document
//
// Returns an empty string if the document has no text at all.
func Content(doc pagedigest.Document) string {
	text := FirstValid(nonEmpty,
		func() string { return SemanticText(doc) },
		func() string { return BlockText(doc) },
		doc.Text,
	)
	return Normalize(text)
}

// SemanticText returns the trimmed text of the first qualifying semantic
// block, or an empty string. Blocks are never concatenated.
func SemanticText(doc pagedigest.Document) string {
	for _, tag := range semanticTags {
		for _, el := range doc.Select(tag) {
			text := strings.TrimSpace(el.Text())
			if utf8.RuneCountInString(text) >= MinSemanticLength {
				return text
			}
		}
	}
	return ""
}

// BlockText concatenates the text of every qualifying div and p across the
// whole document in document order. Nested blocks each contribute their
// own text, so nested content appears more than once.
func BlockText(doc pagedigest.Document) string {
	var b strings.Builder
	for _, el := range pagedigest.FilterElements(doc.Select("div, p"), notAds) {
		text := strings.TrimSpace(el.Text())
		if utf8.RuneCountInString(text) > MinBlockLength {
			b.WriteString("\n")
			b.WriteString(text)
		}
	}
	return b.String()
}

// notAds reports whether the element's class attribute does not contain
// "ads", ignoring case.
func notAds(el pagedigest.Element) bool {
	class, _ := el.Attr("class")
	return !strings.Contains(strings.ToLower(class), "ads")
}
