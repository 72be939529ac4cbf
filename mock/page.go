package mock

import (
	"context"

	"github.com/fwojciec/pagedigest"
)

// Compile-time interface verification.
var (
	_ pagedigest.URLSource      = (*URLSource)(nil)
	_ pagedigest.BatchExtractor = (*BatchExtractor)(nil)
	_ pagedigest.PageStore      = (*PageStore)(nil)
	_ pagedigest.DomainLimiter  = (*DomainLimiter)(nil)
)

// URLSource is a mock implementation of pagedigest.URLSource.
type URLSource struct {
	DiscoverFn func(ctx context.Context, sourceURL string) ([]string, error)
}

func (s *URLSource) Discover(ctx context.Context, sourceURL string) ([]string, error) {
	return s.DiscoverFn(ctx, sourceURL)
}

// BatchExtractor is a mock implementation of pagedigest.BatchExtractor.
type BatchExtractor struct {
	FetchAndExtractFn func(ctx context.Context, urls []string, progress pagedigest.ProgressFunc) ([]*pagedigest.PageResult, error)
}

func (b *BatchExtractor) FetchAndExtract(ctx context.Context, urls []string, progress pagedigest.ProgressFunc) ([]*pagedigest.PageResult, error) {
	return b.FetchAndExtractFn(ctx, urls, progress)
}

// PageStore is a mock implementation of pagedigest.PageStore.
type PageStore struct {
	SaveFn   func(ctx context.Context, page *pagedigest.PageResult) error
	CommitFn func() error
	AbortFn  func() error
}

func (s *PageStore) Save(ctx context.Context, page *pagedigest.PageResult) error {
	return s.SaveFn(ctx, page)
}

func (s *PageStore) Commit() error {
	return s.CommitFn()
}

func (s *PageStore) Abort() error {
	return s.AbortFn()
}

// DomainLimiter is a mock implementation of pagedigest.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, host string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, host string) error {
	return l.WaitFn(ctx, host)
}

var _ pagedigest.PageService = (*PageService)(nil)

// PageService is a mock implementation of pagedigest.PageService.
type PageService struct {
	FindPagesFn func(ctx context.Context, filter pagedigest.PageFilter) ([]*pagedigest.StoredPage, error)
}

func (s *PageService) FindPages(ctx context.Context, filter pagedigest.PageFilter) ([]*pagedigest.StoredPage, error) {
	return s.FindPagesFn(ctx, filter)
}
