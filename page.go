package pagedigest

import (
	"context"
	"time"
)

// PageResult holds the extracted fields of one successfully processed page.
// A PageResult is only produced when the page yielded non-empty content.
type PageResult struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Icon    string `json:"icon"`
}

// Progress reports progress while a batch is processed.
// Error is set when the URL was skipped.
type Progress struct {
	URL       string
	Completed int
	Total     int
	Error     error
}

// ProgressFunc is called as URLs are processed.
type ProgressFunc func(Progress)

// BatchExtractor fetches a batch of URLs and extracts a PageResult from each.
type BatchExtractor interface {
	// FetchAndExtract processes every URL independently. URLs that are
	// invalid, fail to fetch or decode, or have no extractable content are
	// omitted from the results rather than failing the batch.
	FetchAndExtract(ctx context.Context, urls []string, progress ProgressFunc) ([]*PageResult, error)
}

// URLSource discovers page URLs from a site.
type URLSource interface {
	Discover(ctx context.Context, sourceURL string) ([]string, error)
}

// PageStore persists page results with atomic semantics.
// Save writes to a pending location; Commit makes changes permanent;
// Abort discards pending changes.
type PageStore interface {
	Save(ctx context.Context, page *PageResult) error
	Commit() error
	Abort() error
}

// StoredPage is a PageResult persisted as part of a batch.
type StoredPage struct {
	PageResult

	ID          string
	BatchID     string
	Position    int
	ContentHash string
	FetchedAt   time.Time
}

// PageFilter represents a filter for stored pages. Nil fields are ignored.
type PageFilter struct {
	BatchID *string
	URL     *string

	Limit  int
	Offset int
}

// PageService reads pages persisted by a PageStore.
type PageService interface {
	// FindPages returns stored pages matching the filter. Pages of one batch
	// come back in save order; otherwise the newest pages come first.
	FindPages(ctx context.Context, filter PageFilter) ([]*StoredPage, error)
}
