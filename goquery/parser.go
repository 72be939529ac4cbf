// Package goquery implements pagedigest.Parser on top of PuerkitoBio/goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pagedigest"
)

// nonContentSelector matches nodes whose text is never page content.
const nonContentSelector = "script, style, noscript, template"

// Compile-time interface verification.
var (
	_ pagedigest.Parser   = (*Parser)(nil)
	_ pagedigest.Document = (*Document)(nil)
	_ pagedigest.Element  = (*Element)(nil)
)

// Parser builds documents using the golang.org/x/net/html parser, which
// repairs malformed markup the same way browsers do.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse builds a Document from HTML. Script, style, noscript and template
// nodes are removed so that text extraction only sees readable content.
func (p *Parser) Parse(html string) (pagedigest.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, pagedigest.Errorf(pagedigest.EINVALID, "failed to parse HTML: %v", err)
	}

	doc.Find(nonContentSelector).Remove()

	return &Document{doc: doc}, nil
}

// Document wraps a goquery document.
type Document struct {
	doc *goquery.Document
}

// Select returns elements matching the CSS selector in document order.
// goquery compiles invalid selectors to a matcher that matches nothing.
func (d *Document) Select(selector string) []pagedigest.Element {
	sel := d.doc.Find(selector)
	elems := make([]pagedigest.Element, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		elems = append(elems, &Element{sel: s})
	})
	return elems
}

// Text returns the text of the entire document.
func (d *Document) Text() string {
	return d.doc.Text()
}

// Element wraps a single-node goquery selection.
type Element struct {
	sel *goquery.Selection
}

// Text returns the combined text of the element and its descendants.
func (e *Element) Text() string {
	return e.sel.Text()
}

// Attr returns the named attribute value.
func (e *Element) Attr(name string) (string, bool) {
	return e.sel.Attr(name)
}
