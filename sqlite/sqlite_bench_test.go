package sqlite_test

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/pagedigest"
	"github.com/fwojciec/pagedigest/sqlite"
	"github.com/stretchr/testify/require"
)

// BenchmarkPageStore_Save measures saving a batch of pages to a file database.
func BenchmarkPageStore_Save(b *testing.B) {
	db := sqlite.NewDB(filepath.Join(b.TempDir(), "bench.db"))
	require.NoError(b, db.Open())
	b.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	content := strings.Repeat("Lorem ipsum dolor sit amet. ", 200)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		store, err := sqlite.NewPageStore(ctx, db)
		require.NoError(b, err)
		for j := range 100 {
			require.NoError(b, store.Save(ctx, &pagedigest.PageResult{
				URL:     fmt.Sprintf("https://example.com/%d/%d", i, j),
				Title:   "Page",
				Content: content,
			}))
		}
		require.NoError(b, store.Commit())
	}
}
