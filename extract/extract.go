// Package extract resolves the title, main content and icon of a parsed page.
// Every resolver is a pure function over a pagedigest.Document: none of them
// touch the network and none of them fail. Each field is produced by an
// ordered list of candidate sources evaluated lazily until one is accepted.
package extract

import (
	"strings"

	"github.com/fwojciec/pagedigest"
)

// FirstValid evaluates candidates in order and returns the first trimmed
// value accepted by valid. Later candidates are not evaluated.
// Returns an empty string if no candidate is accepted.
func FirstValid(valid func(string) bool, candidates ...func() string) string {
	for _, candidate := range candidates {
		if v := strings.TrimSpace(candidate()); valid(v) {
			return v
		}
	}
	return ""
}

func nonEmpty(s string) bool {
	return s != ""
}

// firstText returns the text of the first element matching selector.
func firstText(doc pagedigest.Document, selector string) string {
	elems := doc.Select(selector)
	if len(elems) == 0 {
		return ""
	}
	return elems[0].Text()
}

// firstAttr returns the named attribute of the first element matching selector.
func firstAttr(doc pagedigest.Document, selector, name string) string {
	elems := doc.Select(selector)
	if len(elems) == 0 {
		return ""
	}
	v, _ := elems[0].Attr(name)
	return v
}

// collapseSpace lowercases s and collapses internal whitespace runs.
func collapseSpace(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
