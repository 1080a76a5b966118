package htmltomarkdown_test

import (
	"testing"

	"github.com/fwojciec/darkcrawl"
	"github.com/fwojciec/darkcrawl/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Converter implements darkcrawl.Converter at compile time.
var _ darkcrawl.Converter = (*htmltomarkdown.Converter)(nil)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("converts basic paragraph", func(t *testing.T) {
		t.Parallel()

		html := `<p>Only 3 left in stock!</p>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "Only 3 left in stock!")
	})

	t.Run("converts headings", func(t *testing.T) {
		t.Parallel()

		html := `<h1>Flash Sale</h1><h2>Ends Tonight</h2><h3>Terms</h3>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "# Flash Sale")
		assert.Contains(t, md, "## Ends Tonight")
		assert.Contains(t, md, "### Terms")
	})

	t.Run("converts links", func(t *testing.T) {
		t.Parallel()

		html := `<p>See the <a href="https://example.com/deals">deals page</a> for details.</p>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "[deals page](https://example.com/deals)")
	})

	t.Run("converts lists", func(t *testing.T) {
		t.Parallel()

		html := `<ul><li>Free returns</li><li>Premium protection (pre-added)</li></ul>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "- Free returns")
		assert.Contains(t, md, "- Premium protection (pre-added)")
	})

	t.Run("converts bold and italic", func(t *testing.T) {
		t.Parallel()

		html := `<p><strong>Hurry!</strong> Offer <em>expires soon</em>.</p>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "**Hurry!**")
		assert.Contains(t, md, "*expires soon*")
	})

	t.Run("converts tables", func(t *testing.T) {
		t.Parallel()

		html := `<table>
<thead><tr><th>Plan</th><th>Price</th></tr></thead>
<tbody><tr><td>Basic</td><td>$9.99/mo after trial</td></tr></tbody>
</table>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "Plan")
		assert.Contains(t, md, "$9.99/mo after trial")
		assert.Contains(t, md, "|")
		assert.Contains(t, md, "---")
	})

	t.Run("returns error for empty input", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		_, err := conv.Convert("")

		require.Error(t, err)
		assert.Equal(t, darkcrawl.EINVALID, darkcrawl.ErrorCode(err))
	})
}
