package slog

import (
	"context"
	"log/slog"

	"github.com/fwojciec/pagedigest"
)

// Ensure LoggingPageStore implements pagedigest.PageStore.
var _ pagedigest.PageStore = (*LoggingPageStore)(nil)

// LoggingPageStore wraps a PageStore and logs saves and the final outcome.
type LoggingPageStore struct {
	next   pagedigest.PageStore
	logger *slog.Logger
	saved  int
}

// NewLoggingPageStore creates a new LoggingPageStore.
func NewLoggingPageStore(next pagedigest.PageStore, logger *slog.Logger) *LoggingPageStore {
	return &LoggingPageStore{next: next, logger: logger}
}

// Save delegates to the wrapped store. Only failures are logged.
func (s *LoggingPageStore) Save(ctx context.Context, page *pagedigest.PageResult) error {
	err := s.next.Save(ctx, page)
	if err != nil {
		s.logger.Warn("save page", "url", page.URL, "err", err)
		return err
	}
	s.saved++
	return nil
}

// Commit delegates to the wrapped store and logs the number of saved pages.
func (s *LoggingPageStore) Commit() error {
	err := s.next.Commit()
	s.logger.Info("commit pages", "count", s.saved, "err", err)
	return err
}

// Abort delegates to the wrapped store.
func (s *LoggingPageStore) Abort() error {
	err := s.next.Abort()
	s.logger.Info("abort pages", "count", s.saved, "err", err)
	return err
}
