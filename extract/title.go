package extract

import (
	"github.com/fwojciec/pagedigest"
	"golang.org/x/text/language"
)

// placeholderTitles holds generic titles that say nothing about a page,
// lowercased with whitespace collapsed.
var placeholderTitles = map[string]struct{}{
	// English
	"home":              {},
	"home page":         {},
	"homepage":          {},
	"untitled":          {},
	"untitled document": {},
	"untitled page":     {},
	"welcome":           {},
	"default title":     {},
	"index":             {},
	// German
	"startseite":    {},
	"unbenannt":     {},
	"willkommen":    {},
	"standardtitel": {},
	// French
	"accueil":          {},
	"sans titre":       {},
	"bienvenue":        {},
	"titre par défaut": {},
	// Spanish
	"inicio":                {},
	"sin título":            {},
	"bienvenido":            {},
	"bienvenida":            {},
	"título predeterminado": {},
	// Korean
	"홈":     {},
	"제목 없음": {},
	"환영합니다": {},
	"기본 제목": {},
	// Japanese
	"ホーム":       {},
	"無題":        {},
	"ようこそ":      {},
	"デフォルトタイトル": {},
}

// defaultTitles are the fallback titles per supported locale. The first
// entry is used when no locale matches.
var defaultTitles = []struct {
	tag   language.Tag
	title string
}{
	{language.English, "Provided Webpage"},
	{language.German, "Bereitgestellte Webseite"},
	{language.French, "Page web fournie"},
	{language.Spanish, "Página web proporcionada"},
	{language.Korean, "제공된 웹페이지"},
	{language.Japanese, "提供されたウェブページ"},
}

var titleMatcher = func() language.Matcher {
	tags := make([]language.Tag, len(defaultTitles))
	for i, d := range defaultTitles {
		tags[i] = d.tag
	}
	return language.NewMatcher(tags)
}()

// IsPlaceholderTitle reports whether s is a generic placeholder title.
// Matching ignores case and surrounding or repeated whitespace.
func IsPlaceholderTitle(s string) bool {
	_, ok := placeholderTitles[collapseSpace(s)]
	return ok
}

// DefaultTitle returns the fallback title for the given locale.
func DefaultTitle(lang language.Tag) string {
	_, idx, conf := titleMatcher.Match(lang)
	if conf == language.No {
		return defaultTitles[0].title
	}
	return defaultTitles[idx].title
}

func validTitle(s string) bool {
	return s != "" && !IsPlaceholderTitle(s)
}

// Title returns the best title for doc. Sources are tried in order:
// the document <title>, og:title, the first <h1>, the first <h2>, and
// finally the locale's default title. Empty and placeholder candidates are
// skipped. Titles nested in inline SVG are not document titles.
func Title(doc pagedigest.Document, lang language.Tag) string {
	return FirstValid(validTitle,
		func() string { return firstText(doc, "head > title, body > title") },
		func() string {
			return firstAttr(doc, `meta[property="og:title"], meta[name="og:title"]`, "content")
		},
		func() string { return firstText(doc, "h1") },
		func() string { return firstText(doc, "h2") },
		func() string { return DefaultTitle(lang) },
	)
}
