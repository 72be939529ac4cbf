package pagedigest

import "context"

// DomainLimiter provides per-host rate limiting for fetches.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the host.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, host string) error
}
