package crawl

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/fwojciec/pagedigest"
)

// FetchFunc is the signature for a fetch function.
type FetchFunc func(ctx context.Context, url string) (*pagedigest.Response, error)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// FetchWithRetryDelays fetches url, retrying transport errors, 5xx and 429
// responses once per entry in delays, sleeping that long before each retry.
// It returns only successful (2xx) responses; any other final outcome is an
// EFETCH error. Other 4xx statuses are not retried. The logger, if non-nil,
// receives one debug record per retry.
func FetchWithRetryDelays(ctx context.Context, url string, fetch FetchFunc, logger *slog.Logger, delays []time.Duration) (*pagedigest.Response, error) {
	maxAttempts := len(delays) + 1 // 1 initial + N retries

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		resp, err := fetch(ctx, url)
		switch {
		case err != nil:
			lastErr = err
		case resp.OK():
			return resp, nil
		case !retryableStatus(resp.StatusCode):
			return nil, pagedigest.Errorf(pagedigest.EFETCH, "HTTP %d for %s", resp.StatusCode, url)
		default:
			lastErr = pagedigest.Errorf(pagedigest.EFETCH, "HTTP %d for %s", resp.StatusCode, url)
		}

		if attempt >= maxAttempts-1 {
			break
		}

		if logger != nil {
			logger.Debug("retry fetch", "url", url, "attempt", attempt+2, "err", lastErr)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return nil, lastErr
}

func retryableStatus(code int) bool {
	return code >= 500 || code == http.StatusTooManyRequests
}
