// Package crawl fetches batches of pages and extracts a PageResult from each.
// Every URL is processed independently so one bad page never fails the batch.
package crawl

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"github.com/fwojciec/pagedigest"
	"github.com/fwojciec/pagedigest/extract"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
)

// DefaultConcurrency is the number of URLs processed at once when
// Crawler.Concurrency is not set.
const DefaultConcurrency = 10

// Ensure Crawler implements pagedigest.BatchExtractor.
var _ pagedigest.BatchExtractor = (*Crawler)(nil)

// Crawler implements pagedigest.BatchExtractor.
type Crawler struct {
	Fetcher     pagedigest.Fetcher
	Decoder     pagedigest.Decoder
	Parser      pagedigest.Parser
	RateLimiter pagedigest.DomainLimiter // optional
	Concurrency int
	RetryDelays []time.Duration
	Locale      language.Tag
	Logger      *slog.Logger
}

// crawlResult holds the outcome of processing a single URL.
type crawlResult struct {
	position int
	url      string
	page     *pagedigest.PageResult
	err      error
}

// FetchAndExtract processes urls concurrently and returns one PageResult per
// URL that produced content, in input order. Per-URL failures are logged and
// reported through progress but never returned. The only error returned is
// the context's, alongside whatever pages completed before cancellation.
func (c *Crawler) FetchAndExtract(ctx context.Context, urls []string, progress pagedigest.ProgressFunc) ([]*pagedigest.PageResult, error) {
	if len(urls) == 0 {
		return []*pagedigest.PageResult{}, nil
	}

	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	resultCh := make(chan crawlResult, len(urls))

	// Workers never return errors, so a failing URL cannot cancel its siblings.
	var g errgroup.Group
	g.SetLimit(concurrency)

	go func() {
		for i, u := range urls {
			if ctx.Err() != nil {
				break
			}
			g.Go(func() error {
				resultCh <- c.processURL(ctx, i, u)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	completed := 0
	total := len(urls)
	results := make([]*pagedigest.PageResult, len(urls))
	for result := range resultCh {
		completed++
		results[result.position] = result.page
		if progress != nil {
			progress(pagedigest.Progress{
				URL:       result.url,
				Completed: completed,
				Total:     total,
				Error:     result.err,
			})
		}
	}

	pages := make([]*pagedigest.PageResult, 0, len(urls))
	for _, page := range results {
		if page != nil {
			pages = append(pages, page)
		}
	}

	return pages, ctx.Err()
}

// processURL runs the fetch, decode, parse and extract pipeline for one URL.
// A nil page with a nil error means the page had no content.
func (c *Crawler) processURL(ctx context.Context, position int, rawURL string) (result crawlResult) {
	result = crawlResult{position: position, url: rawURL}
	logger := c.logger()

	defer func() {
		if r := recover(); r != nil {
			result.page = nil
			result.err = pagedigest.Errorf(pagedigest.EINTERNAL, "panic processing %s: %v", rawURL, r)
			logger.Error("page processing panicked", "url", rawURL, "panic", r)
		}
	}()

	pageURL, err := parsePageURL(rawURL)
	if err != nil {
		logger.Debug("skipping invalid url", "url", rawURL, "err", err)
		result.err = err
		return result
	}

	if c.RateLimiter != nil {
		if err := c.RateLimiter.Wait(ctx, pageURL.Host); err != nil {
			result.err = err
			return result
		}
	}

	delays := c.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	resp, err := FetchWithRetryDelays(ctx, rawURL, c.Fetcher.Fetch, logger, delays)
	if err != nil {
		logger.Warn("skipping page", "url", rawURL, "stage", "fetch", "err", err)
		result.err = err
		return result
	}

	text, err := c.Decoder.Decode(resp.Body, resp.ContentType)
	if err != nil {
		logger.Warn("skipping page", "url", rawURL, "stage", "decode", "err", err)
		result.err = err
		return result
	}

	doc, err := c.Parser.Parse(text)
	if err != nil {
		logger.Warn("parse failed, using empty document", "url", rawURL, "err", err)
		doc = emptyDocument{}
	}

	content := extract.Content(doc)
	if content == "" {
		logger.Debug("dropping page without content", "url", rawURL)
		return result
	}

	result.page = &pagedigest.PageResult{
		URL:     rawURL,
		Title:   extract.Title(doc, c.Locale),
		Content: content,
		Icon:    extract.Icon(doc, pageURL),
	}
	return result
}

func (c *Crawler) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}

// parsePageURL accepts only absolute http and https URLs with a host.
func parsePageURL(rawURL string) (*url.URL, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, pagedigest.Errorf(pagedigest.EINVALID, "invalid url %q: %v", rawURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, pagedigest.Errorf(pagedigest.EINVALID, "unsupported scheme in %q", rawURL)
	}
	if u.Host == "" {
		return nil, pagedigest.Errorf(pagedigest.EINVALID, "missing host in %q", rawURL)
	}
	return u, nil
}

// emptyDocument stands in for a page whose markup could not be parsed.
type emptyDocument struct{}

func (emptyDocument) Select(string) []pagedigest.Element { return nil }
func (emptyDocument) Text() string                       { return "" }
