package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/fwojciec/pagedigest"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ pagedigest.PageStore = (*PageStore)(nil)

// PageStore implements pagedigest.PageStore as one SQLite transaction per
// batch. Pages saved before Commit are invisible to other readers and are
// discarded by Abort.
//
// The transaction holds the database's only connection, so other queries on
// the same DB block until the store is committed or aborted.
type PageStore struct {
	mu       sync.Mutex
	tx       *sql.Tx
	batchID  string
	position int
	done     bool
	now      func() time.Time
}

// NewPageStore starts a new batch.
func NewPageStore(ctx context.Context, db *DB) (*PageStore, error) {
	tx, err := db.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin batch: %w", err)
	}

	s := &PageStore{
		tx:      tx,
		batchID: uuid.New().String(),
		now:     func() time.Time { return time.Now().UTC() },
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO batches (id, started_at) VALUES (?, ?)
	`, s.batchID, s.now().Format(timeFormat)); err != nil {
		_ = tx.Rollback()
		return nil, fmt.Errorf("insert batch: %w", err)
	}

	return s, nil
}

// BatchID returns the identifier shared by every page saved through s.
func (s *PageStore) BatchID() string {
	return s.batchID
}

// Save adds page to the batch. Pages keep the order they were saved in.
func (s *PageStore) Save(ctx context.Context, page *pagedigest.PageResult) error {
	if page == nil || page.URL == "" {
		return pagedigest.Errorf(pagedigest.EINVALID, "page url required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done {
		return pagedigest.Errorf(pagedigest.EINVALID, "batch %s already finished", s.batchID)
	}

	_, err := s.tx.ExecContext(ctx, `
		INSERT INTO pages (id, batch_id, position, url, title, content, icon, content_hash, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, uuid.New().String(), s.batchID, s.position, page.URL, page.Title, page.Content, page.Icon,
		hashContent(page.Content), s.now().Format(timeFormat))
	if err != nil {
		return fmt.Errorf("insert page %s: %w", page.URL, err)
	}

	s.position++
	return nil
}

// Commit marks the batch committed and makes its pages visible.
func (s *PageStore) Commit() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done {
		return pagedigest.Errorf(pagedigest.EINVALID, "batch %s already finished", s.batchID)
	}
	s.done = true

	if _, err := s.tx.Exec(`
		UPDATE batches SET committed_at = ? WHERE id = ?
	`, s.now().Format(timeFormat), s.batchID); err != nil {
		_ = s.tx.Rollback()
		return fmt.Errorf("commit batch: %w", err)
	}

	return s.tx.Commit()
}

// Abort discards the batch. Aborting a finished batch is a no-op, so Abort
// can be deferred unconditionally.
func (s *PageStore) Abort() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done {
		return nil
	}
	s.done = true

	return s.tx.Rollback()
}
