package pagedigest

import "strings"

// FormatPages formats page results for display or LLM context.
// Uses title if available, falls back to URL.
// Pages are separated by blank lines.
func FormatPages(pages []*PageResult) string {
	if len(pages) == 0 {
		return ""
	}

	parts := make([]string, 0, len(pages))
	for _, page := range pages {
		header := page.Title
		if header == "" {
			header = page.URL
		}
		parts = append(parts, "## Page: "+header+"\nSource: "+page.URL+"\n"+page.Content)
	}

	return strings.Join(parts, "\n\n")
}
