package main

import (
	"fmt"

	"github.com/fwojciec/pagedigest"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	var pages []*pagedigest.PageResult
	for _, u := range c.URLs {
		stored, err := deps.Pages.FindPages(deps.Ctx, pagedigest.PageFilter{URL: &u, Limit: 1})
		if err != nil {
			return err
		}
		if len(stored) == 0 {
			fmt.Fprintf(deps.Stderr, "no stored page for %s\n", truncateURL(u, 60))
			continue
		}
		page := stored[0].PageResult
		pages = append(pages, &page)
	}

	if pages == nil {
		pages = []*pagedigest.PageResult{}
	}
	return writePages(deps.Stdout, c.Format, pages)
}
