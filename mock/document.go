package mock

import "github.com/fwojciec/pagedigest"

var (
	_ pagedigest.Parser   = (*Parser)(nil)
	_ pagedigest.Document = (*Document)(nil)
)

// Parser is a mock implementation of pagedigest.Parser.
type Parser struct {
	ParseFn func(html string) (pagedigest.Document, error)
}

func (p *Parser) Parse(html string) (pagedigest.Document, error) {
	return p.ParseFn(html)
}

// Document is a mock implementation of pagedigest.Document.
type Document struct {
	SelectFn func(selector string) []pagedigest.Element
	TextFn   func() string
}

func (d *Document) Select(selector string) []pagedigest.Element {
	return d.SelectFn(selector)
}

func (d *Document) Text() string {
	return d.TextFn()
}
