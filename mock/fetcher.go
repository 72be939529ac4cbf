package mock

import (
	"context"

	"github.com/fwojciec/pagedigest"
)

var (
	_ pagedigest.Fetcher = (*Fetcher)(nil)
	_ pagedigest.Decoder = (*Decoder)(nil)
)

// Fetcher is a mock implementation of pagedigest.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*pagedigest.Response, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*pagedigest.Response, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

// Decoder is a mock implementation of pagedigest.Decoder.
type Decoder struct {
	DecodeFn func(body []byte, contentType string) (string, error)
}

func (d *Decoder) Decode(body []byte, contentType string) (string, error) {
	return d.DecodeFn(body, contentType)
}
