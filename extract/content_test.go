package extract_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/pagedigest/extract"
	"github.com/stretchr/testify/assert"
)

// words returns a string of exactly n characters.
func words(prefix string, n int) string {
	s := strings.Repeat(prefix+" ", n)
	return strings.TrimSpace(s[:n])
}

func TestContent_SemanticTier(t *testing.T) {
	t.Parallel()

	t.Run("returns article text ignoring divs and paragraphs", func(t *testing.T) {
		t.Parallel()

		article := words("lorem", 120)
		html := `<html><body>
<div class="intro">` + words("divtext", 80) + `</div>
<article>` + article + `</article>
<p>` + words("paragraph", 90) + `</p>
</body></html>`

		assert.Equal(t, article, extract.Content(parse(t, html)))
	})

	t.Run("accepts article of exactly the minimum length", func(t *testing.T) {
		t.Parallel()

		article := strings.Repeat("a", extract.MinSemanticLength)
		html := `<html><body><article>` + article + `</article></body></html>`

		assert.Equal(t, article, extract.Content(parse(t, html)))
	})

	t.Run("prefers article over earlier main", func(t *testing.T) {
		t.Parallel()

		main := words("main", 150)
		article := words("article", 150)
		html := `<html><body><main>` + main + `</main><article>` + article + `</article></body></html>`

		assert.Equal(t, article, extract.Content(parse(t, html)))
	})

	t.Run("skips short article and uses later qualifying article", func(t *testing.T) {
		t.Parallel()

		second := words("second", 130)
		html := `<html><body><article>short</article><article>` + second + `</article></body></html>`

		assert.Equal(t, second, extract.Content(parse(t, html)))
	})

	t.Run("falls through to main then section", func(t *testing.T) {
		t.Parallel()

		section := words("section", 110)
		html := `<html><body><article>tiny</article><main>small</main><section>` + section + `</section></body></html>`

		assert.Equal(t, section, extract.Content(parse(t, html)))
	})

	t.Run("does not concatenate semantic blocks", func(t *testing.T) {
		t.Parallel()

		first := words("first", 120)
		html := `<html><body><section>` + first + `</section><section>` + words("second", 120) + `</section></body></html>`

		assert.Equal(t, first, extract.Content(parse(t, html)))
	})
}

func TestContent_BlockTier(t *testing.T) {
	t.Parallel()

	t.Run("concatenates paragraphs excluding ads", func(t *testing.T) {
		t.Parallel()

		p1 := words("first", 60)
		p2 := words("second", 70)
		html := `<html><body>
<p>` + p1 + `</p>
<p class="sidebar-ads">` + words("buynow", 80) + `</p>
<p>` + p2 + `</p>
<p>too short</p>
</body></html>`

		assert.Equal(t, p1+"\n"+p2, extract.Content(parse(t, html)))
	})

	t.Run("ads exclusion ignores case", func(t *testing.T) {
		t.Parallel()

		p := words("keep", 60)
		html := `<html><body><div class="TopADS">` + words("banner", 60) + `</div><p>` + p + `</p></body></html>`

		assert.Equal(t, p, extract.Content(parse(t, html)))
	})

	t.Run("requires more than the minimum block length", func(t *testing.T) {
		t.Parallel()

		exact := strings.Repeat("b", extract.MinBlockLength)
		longer := strings.Repeat("c", extract.MinBlockLength+1)
		html := `<html><body><p>` + exact + `</p><p>` + longer + `</p></body></html>`

		assert.Equal(t, longer, extract.Content(parse(t, html)))
	})

	t.Run("duplicates text of nested blocks", func(t *testing.T) {
		t.Parallel()

		// Known duplication: the outer div and the inner p both qualify, so
		// the paragraph text appears twice.
		p := words("nested", 60)
		html := `<html><body><div><p>` + p + `</p></div></body></html>`

		assert.Equal(t, p+"\n"+p, extract.Content(parse(t, html)))
	})
}

func TestContent_DocumentTier(t *testing.T) {
	t.Parallel()

	t.Run("uses whole document text when no block qualifies", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><title>T</title></head><body><span>Just a short span</span></body></html>`

		got := extract.Content(parse(t, html))

		assert.Contains(t, got, "Just a short span")
	})

	t.Run("returns empty string for document without text", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><script>var a = 1;</script></head><body>   </body></html>`

		assert.Empty(t, extract.Content(parse(t, html)))
	})
}

func TestContent_Normalizes(t *testing.T) {
	t.Parallel()

	article := "Fish &amp;amp; chips&amp;nbsp;are served.\n\n\n\n" + words("more", 120)
	html := `<html><body><article>` + article + `</article></body></html>`

	got := extract.Content(parse(t, html))

	assert.True(t, strings.HasPrefix(got, "Fish & chips are served.\n\nmore"), got)
	assert.NotContains(t, got, "\n\n\n")
}

func TestContent_NoLengthCap(t *testing.T) {
	t.Parallel()

	article := words("long", 50000)
	html := `<html><body><article>` + article + `</article></body></html>`

	assert.Len(t, extract.Content(parse(t, html)), len(article))
}
