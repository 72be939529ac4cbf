// Package charset implements pagedigest.Decoder using the WHATWG encoding
// detection in golang.org/x/net/html/charset.
package charset

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/pagedigest"
	"golang.org/x/net/html/charset"
)

// Ensure Decoder implements pagedigest.Decoder at compile time.
var _ pagedigest.Decoder = (*Decoder)(nil)

// Decoder converts fetched bytes to UTF-8 text. The encoding is taken from
// a byte order mark, the Content-Type charset parameter, or a <meta>
// declaration, in that order, and otherwise sniffed from the content.
type Decoder struct{}

// NewDecoder creates a new Decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode returns body as UTF-8 text.
// Returns EDECODE for binary content, for content labeled UTF-8 that is
// not valid UTF-8, and for bytes the detected encoding cannot decode.
func (d *Decoder) Decode(body []byte, contentType string) (string, error) {
	enc, name, _ := charset.DetermineEncoding(body, contentType)

	if !strings.HasPrefix(name, "utf-16") && bytes.IndexByte(body, 0) >= 0 {
		return "", pagedigest.Errorf(pagedigest.EDECODE, "binary content")
	}

	if name == "utf-8" {
		body = trimPartialRune(body)
		if !utf8.Valid(body) {
			return "", pagedigest.Errorf(pagedigest.EDECODE, "invalid UTF-8")
		}
		return strings.TrimPrefix(string(body), "\ufeff"), nil
	}

	decoded, err := enc.NewDecoder().Bytes(body)
	if err != nil {
		return "", pagedigest.Errorf(pagedigest.EDECODE, "decoding %s: %v", name, err)
	}

	return strings.TrimPrefix(string(decoded), "\ufeff"), nil
}

// trimPartialRune drops an incomplete multi-byte sequence at the end of
// body, left behind when a capped read stops mid-character.
func trimPartialRune(body []byte) []byte {
	for i := len(body) - 1; i >= 0 && i >= len(body)-utf8.UTFMax; i-- {
		if !utf8.RuneStart(body[i]) {
			continue
		}
		if !utf8.FullRune(body[i:]) {
			return body[:i]
		}
		break
	}
	return body
}
