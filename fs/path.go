// Package fs stores extracted pages as markdown files on disk.
package fs

import (
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/pagedigest"
)

// URLToPath converts a page URL to a relative file path rooted at the host.
// Example: https://example.com/docs/api/users → example.com/docs/api/users.md
//
// A query string adds a hash of the query to the file name, so
// /item?id=1 and /item?id=2 are stored as item.<hash>.md with different
// hashes. Fragments are ignored.
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", pagedigest.Errorf(pagedigest.EINVALID, "invalid url %q: %v", rawURL, err)
	}
	if u.Host == "" {
		return "", pagedigest.Errorf(pagedigest.EINVALID, "url %q has no host", rawURL)
	}
	host := strings.ReplaceAll(u.Host, ":", "_")

	for _, seg := range strings.Split(u.Path, "/") {
		if seg == ".." {
			return "", pagedigest.Errorf(pagedigest.EINVALID, "path traversal in %q", rawURL)
		}
	}

	ext := ".md"
	if u.RawQuery != "" {
		ext = fmt.Sprintf(".%08x.md", uint32(xxhash.Sum64String(u.RawQuery)))
	}

	p := strings.TrimPrefix(u.Path, "/")
	switch {
	case p == "":
		p = "index" + ext
	case strings.HasSuffix(p, "/"):
		p += "index" + ext
	default:
		p += ext
	}

	return path.Join(host, p), nil
}
