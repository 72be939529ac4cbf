package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/pagedigest"
	"github.com/fwojciec/pagedigest/mock"
	pdslog "github.com/fwojciec/pagedigest/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingPageStore(t *testing.T) {
	t.Parallel()

	t.Run("logs count of saved pages on commit", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		var saved []string
		inner := &mock.PageStore{
			SaveFn: func(_ context.Context, page *pagedigest.PageResult) error {
				if page.URL == "https://example.com/bad" {
					return errors.New("disk full")
				}
				saved = append(saved, page.URL)
				return nil
			},
			CommitFn: func() error { return nil },
		}

		store := pdslog.NewLoggingPageStore(inner, slog.New(slog.NewTextHandler(&buf, nil)))
		require.NoError(t, store.Save(context.Background(), &pagedigest.PageResult{URL: "https://example.com/a"}))
		require.Error(t, store.Save(context.Background(), &pagedigest.PageResult{URL: "https://example.com/bad"}))
		require.NoError(t, store.Commit())

		assert.Equal(t, []string{"https://example.com/a"}, saved)
		output := buf.String()
		assert.Contains(t, output, "url=https://example.com/bad")
		assert.Contains(t, output, "err=\"disk full\"")
		assert.Contains(t, output, "commit pages")
		assert.Contains(t, output, "count=1")
	})

	t.Run("abort delegates and logs", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		aborted := false
		inner := &mock.PageStore{
			AbortFn: func() error {
				aborted = true
				return nil
			},
		}

		store := pdslog.NewLoggingPageStore(inner, slog.New(slog.NewTextHandler(&buf, nil)))

		require.NoError(t, store.Abort())
		assert.True(t, aborted)
		assert.Contains(t, buf.String(), "abort pages")
	})
}
