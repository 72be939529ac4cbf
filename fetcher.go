package pagedigest

import "context"

// Response is the raw result of fetching a URL.
type Response struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// OK reports whether the response status indicates success (2xx).
func (r *Response) OK() bool {
	return r != nil && r.StatusCode >= 200 && r.StatusCode < 300
}

// Fetcher retrieves raw bytes from URLs.
type Fetcher interface {
	// Fetch requests the URL and returns the response regardless of status.
	// An error is returned only when no response could be obtained.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (*Response, error)

	// Close releases transport resources.
	Close() error
}

// Decoder converts fetched bytes into text.
type Decoder interface {
	// Decode returns the body as UTF-8 text. The content type, if known,
	// may carry a charset parameter. Returns EDECODE if the bytes cannot
	// be interpreted as text.
	Decode(body []byte, contentType string) (string, error)
}
