package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/fwojciec/pagedigest"
	main "github.com/fwojciec/pagedigest/cmd/pagedigest"
	"github.com/fwojciec/pagedigest/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints the latest stored page of each URL", func(t *testing.T) {
		t.Parallel()

		var filters []pagedigest.PageFilter
		pages := &mock.PageService{
			FindPagesFn: func(_ context.Context, filter pagedigest.PageFilter) ([]*pagedigest.StoredPage, error) {
				filters = append(filters, filter)
				if *filter.URL == "https://example.com/gone" {
					return nil, nil
				}
				return []*pagedigest.StoredPage{{
					PageResult: pagedigest.PageResult{URL: *filter.URL, Title: "Saved", Content: "Body"},
				}}, nil
			},
		}

		var stdout, stderr bytes.Buffer
		cmd := &main.HistoryCmd{URLs: []string{"https://example.com/a", "https://example.com/gone"}}
		err := cmd.Run(&main.Dependencies{Ctx: context.Background(), Stdout: &stdout, Stderr: &stderr, Pages: pages})

		require.NoError(t, err)
		assert.Equal(t, "## Page: Saved\nSource: https://example.com/a\nBody\n", stdout.String())
		assert.Contains(t, stderr.String(), "no stored page for https://example.com/gone")
		require.Len(t, filters, 2)
		assert.Equal(t, 1, filters[0].Limit)
		assert.Nil(t, filters[0].BatchID)
	})

	t.Run("prints an empty JSON array when nothing is stored", func(t *testing.T) {
		t.Parallel()

		pages := &mock.PageService{
			FindPagesFn: func(context.Context, pagedigest.PageFilter) ([]*pagedigest.StoredPage, error) {
				return nil, nil
			},
		}

		var stdout bytes.Buffer
		cmd := &main.HistoryCmd{URLs: []string{"https://example.com/a"}, Format: "json"}
		err := cmd.Run(&main.Dependencies{Ctx: context.Background(), Stdout: &stdout, Stderr: &bytes.Buffer{}, Pages: pages})

		require.NoError(t, err)
		assert.Equal(t, "[]\n", stdout.String())
	})

	t.Run("returns lookup errors", func(t *testing.T) {
		t.Parallel()

		pages := &mock.PageService{
			FindPagesFn: func(context.Context, pagedigest.PageFilter) ([]*pagedigest.StoredPage, error) {
				return nil, pagedigest.Errorf(pagedigest.EINTERNAL, "disk I/O error")
			},
		}

		cmd := &main.HistoryCmd{URLs: []string{"https://example.com/a"}}
		err := cmd.Run(&main.Dependencies{Ctx: context.Background(), Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}, Pages: pages})

		assert.Equal(t, pagedigest.EINTERNAL, pagedigest.ErrorCode(err))
	})
}
