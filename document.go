package pagedigest

// Element is a single node of a parsed document.
type Element interface {
	// Text returns the combined text of the element and its descendants.
	Text() string

	// Attr returns the value of the named attribute and whether it exists.
	Attr(name string) (string, bool)
}

// Document is a queryable tree built from one page's markup.
// It is owned by the processing of a single URL.
type Document interface {
	// Select returns elements matching a CSS selector in document order.
	// An invalid selector matches nothing.
	Select(selector string) []Element

	// Text returns the text of the entire document.
	Text() string
}

// Parser builds a Document from markup.
type Parser interface {
	// Parse builds a Document. Malformed markup is repaired where possible;
	// an error is returned only when no tree can be built.
	Parse(html string) (Document, error)
}

// FilterElements returns the elements for which keep returns true.
func FilterElements(elems []Element, keep func(Element) bool) []Element {
	var out []Element
	for _, el := range elems {
		if keep(el) {
			out = append(out, el)
		}
	}
	return out
}
