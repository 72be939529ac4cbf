package extract

import (
	"net/url"
	"strings"

	"github.com/fwojciec/pagedigest"
)

// Icon returns an absolute icon URL for the page at pageURL. Sources are
// tried in order: <link rel="icon"> or <link rel="shortcut icon">,
// <link rel="apple-touch-icon">, og:image, and finally /favicon.ico on the
// page's own scheme and host. pageURL must be absolute.
func Icon(doc pagedigest.Document, pageURL *url.URL) string {
	return FirstValid(nonEmpty,
		func() string {
			return firstResolved(doc, pageURL, "link[rel][href]", "href", relIs("icon", "shortcut icon"))
		},
		func() string {
			return firstResolved(doc, pageURL, "link[rel][href]", "href", relIs("apple-touch-icon"))
		},
		func() string {
			return firstResolved(doc, pageURL, `meta[property="og:image"][content]`, "content", nil)
		},
		func() string { return FaviconURL(pageURL) },
	)
}

// FaviconURL returns {scheme}://{host}/favicon.ico for u.
func FaviconURL(u *url.URL) string {
	return (&url.URL{Scheme: u.Scheme, Host: u.Host, Path: "/favicon.ico"}).String()
}

// ResolveURL resolves href against base. Values that already start with
// http:// or https:// are returned unchanged. Returns an empty string if
// href is empty, uses another scheme (data:, javascript:, ...), or does not
// resolve to a URL with a host.
func ResolveURL(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}

	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}

	if isHTTPURL(href) {
		if ref.Host == "" {
			return ""
		}
		return href
	}

	if ref.Scheme != "" {
		return ""
	}

	resolved := base.ResolveReference(ref)
	if resolved.Host == "" {
		return ""
	}
	return resolved.String()
}

func isHTTPURL(s string) bool {
	s = strings.ToLower(s)
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// relIs returns a predicate matching elements whose rel attribute equals
// one of values, ignoring case and extra whitespace.
func relIs(values ...string) func(pagedigest.Element) bool {
	return func(el pagedigest.Element) bool {
		rel, _ := el.Attr("rel")
		rel = collapseSpace(rel)
		for _, v := range values {
			if rel == v {
				return true
			}
		}
		return false
	}
}

// firstResolved returns the first attribute value among matching elements
// that resolves against base. A nil keep accepts every element.
func firstResolved(doc pagedigest.Document, base *url.URL, selector, attr string, keep func(pagedigest.Element) bool) string {
	elems := doc.Select(selector)
	if keep != nil {
		elems = pagedigest.FilterElements(elems, keep)
	}
	for _, el := range elems {
		v, _ := el.Attr(attr)
		if resolved := ResolveURL(base, v); resolved != "" {
			return resolved
		}
	}
	return ""
}
