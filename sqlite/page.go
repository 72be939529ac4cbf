package sqlite

import (
	"context"
	"strings"

	"github.com/fwojciec/pagedigest"
)

// Compile-time interface verification.
var _ pagedigest.PageService = (*PageService)(nil)

// PageService implements pagedigest.PageService using SQLite.
type PageService struct {
	db *DB
}

// NewPageService creates a new PageService.
func NewPageService(db *DB) *PageService {
	return &PageService{db: db}
}

// FindPages retrieves pages matching the filter.
func (s *PageService) FindPages(ctx context.Context, filter pagedigest.PageFilter) ([]*pagedigest.StoredPage, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`SELECT id, batch_id, position, url, title, content, icon, content_hash, fetched_at FROM pages WHERE 1=1`)

	if filter.BatchID != nil {
		query.WriteString(" AND batch_id = ?")
		args = append(args, *filter.BatchID)
	}
	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}

	if filter.BatchID != nil {
		query.WriteString(" ORDER BY position ASC")
	} else {
		query.WriteString(" ORDER BY fetched_at DESC, position ASC")
	}

	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []*pagedigest.StoredPage
	for rows.Next() {
		var p pagedigest.StoredPage
		var fetchedAt string

		if err := rows.Scan(&p.ID, &p.BatchID, &p.Position, &p.URL, &p.Title,
			&p.Content, &p.Icon, &p.ContentHash, &fetchedAt); err != nil {
			return nil, err
		}

		if p.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at"); err != nil {
			return nil, err
		}

		pages = append(pages, &p)
	}

	return pages, rows.Err()
}
