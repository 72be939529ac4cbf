package charset_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/pagedigest"
	"github.com/fwojciec/pagedigest/charset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecoder_Decode(t *testing.T) {
	t.Parallel()

	t.Run("passes through UTF-8", func(t *testing.T) {
		t.Parallel()

		got, err := charset.NewDecoder().Decode([]byte("<p>héllo wörld</p>"), "text/html; charset=utf-8")

		require.NoError(t, err)
		assert.Equal(t, "<p>héllo wörld</p>", got)
	})

	t.Run("strips UTF-8 byte order mark", func(t *testing.T) {
		t.Parallel()

		got, err := charset.NewDecoder().Decode([]byte("\xef\xbb\xbf<p>hi</p>"), "")

		require.NoError(t, err)
		assert.Equal(t, "<p>hi</p>", got)
	})

	t.Run("decodes charset from content type", func(t *testing.T) {
		t.Parallel()

		got, err := charset.NewDecoder().Decode([]byte("caf\xe9"), "text/html; charset=windows-1252")

		require.NoError(t, err)
		assert.Equal(t, "café", got)
	})

	t.Run("decodes charset from meta declaration", func(t *testing.T) {
		t.Parallel()

		body := []byte(`<html><head><meta charset="iso-8859-1"></head><body>na\xefve</body></html>`)

		got, err := charset.NewDecoder().Decode(body, "text/html")

		require.NoError(t, err)
		assert.Contains(t, got, "naïve")
	})

	t.Run("decodes UTF-16 with byte order mark", func(t *testing.T) {
		t.Parallel()

		body := []byte{0xff, 0xfe, 'h', 0, 'i', 0}

		got, err := charset.NewDecoder().Decode(body, "")

		require.NoError(t, err)
		assert.Equal(t, "hi", got)
	})

	t.Run("rejects binary content", func(t *testing.T) {
		t.Parallel()

		_, err := charset.NewDecoder().Decode([]byte{0x89, 'P', 'N', 'G', 0x00, 0x01}, "image/png")

		require.Error(t, err)
		assert.Equal(t, pagedigest.EDECODE, pagedigest.ErrorCode(err))
	})

	t.Run("rejects invalid UTF-8 when labeled UTF-8", func(t *testing.T) {
		t.Parallel()

		_, err := charset.NewDecoder().Decode([]byte("bad \xff\xfe bytes"), "text/html; charset=utf-8")

		require.Error(t, err)
		assert.Equal(t, pagedigest.EDECODE, pagedigest.ErrorCode(err))
	})

	t.Run("drops a character cut off at the end of the body", func(t *testing.T) {
		t.Parallel()

		full := []byte("<p>" + strings.Repeat("é", 200))
		cut := full[:len(full)-1] // ends with the first byte of "é"

		got, err := charset.NewDecoder().Decode(cut, "text/html; charset=utf-8")

		require.NoError(t, err)
		assert.Equal(t, "<p>"+strings.Repeat("é", 199), got)
	})

	t.Run("rejects a truncated character in the middle of the body", func(t *testing.T) {
		t.Parallel()

		_, err := charset.NewDecoder().Decode([]byte("caf\xc3 ok"), "text/html; charset=utf-8")

		require.Error(t, err)
		assert.Equal(t, pagedigest.EDECODE, pagedigest.ErrorCode(err))
	})

	t.Run("decodes empty body", func(t *testing.T) {
		t.Parallel()

		got, err := charset.NewDecoder().Decode(nil, "")

		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
