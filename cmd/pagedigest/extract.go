package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"

	"github.com/fwojciec/pagedigest"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	urls := c.URLs
	if c.Sitemap {
		var err error
		if urls, err = c.discover(deps); err != nil {
			return err
		}
	}

	if c.Preview {
		for _, u := range urls {
			fmt.Fprintln(deps.Stdout, u)
		}
		return nil
	}

	progress := func(p pagedigest.Progress) {
		if p.Error != nil {
			fmt.Fprintf(deps.Stderr, "skip %s: %s\n", p.URL, pagedigest.ErrorMessage(p.Error))
		}
	}

	pages, err := deps.Extractor.FetchAndExtract(deps.Ctx, urls, progress)
	if err != nil {
		abortAll(deps.Stores)
		fmt.Fprintf(deps.Stderr, "interrupted after %d pages\n", len(pages))
		return err
	}

	if err := savePages(deps, pages); err != nil {
		return err
	}

	fmt.Fprintf(deps.Stderr, "extracted %d of %d pages\n", len(pages), len(urls))

	return writePages(deps.Stdout, c.Format, pages)
}

// discover expands each site URL into the URLs listed in its sitemaps.
func (c *ExtractCmd) discover(deps *Dependencies) ([]string, error) {
	var urls []string
	for _, site := range c.URLs {
		found, err := deps.Source.Discover(deps.Ctx, site)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", pagedigest.ErrorMessage(err))
			return nil, err
		}
		if len(found) == 0 {
			fmt.Fprintf(deps.Stderr, "no sitemap URLs found for %s\n", truncateURL(site, 60))
		}
		urls = append(urls, found...)
	}
	return urls, nil
}

// savePages writes pages to every store and commits them.
// A failure, or an empty batch, aborts all stores.
func savePages(deps *Dependencies, pages []*pagedigest.PageResult) error {
	if len(pages) == 0 {
		abortAll(deps.Stores)
		return nil
	}

	for _, page := range pages {
		for _, store := range deps.Stores {
			if err := store.Save(deps.Ctx, page); err != nil {
				abortAll(deps.Stores)
				fmt.Fprintf(deps.Stderr, "error saving %s: %v\n", page.URL, err)
				return err
			}
		}
	}

	var errs []error
	for _, store := range deps.Stores {
		if err := store.Commit(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func abortAll(stores []pagedigest.PageStore) {
	for _, store := range stores {
		_ = store.Abort()
	}
}

// writePages prints pages in the requested format.
func writePages(w io.Writer, format string, pages []*pagedigest.PageResult) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(pages)
	case "text", "":
		if len(pages) == 0 {
			return nil
		}
		_, err := fmt.Fprintln(w, pagedigest.FormatPages(pages))
		return err
	default:
		return pagedigest.Errorf(pagedigest.EINVALID, "unknown format %q", format)
	}
}

// truncateURL shortens a URL for display by showing only the path.
func truncateURL(rawURL string, maxLen int) string {
	if len(rawURL) <= maxLen {
		return rawURL
	}

	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return rawURL[:maxLen-3] + "..."
	}

	short := parsed.Host + parsed.Path
	if len(short) <= maxLen {
		return short
	}
	return "..." + short[len(short)-maxLen+3:]
}
