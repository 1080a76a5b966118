package goquery_test

import (
	"testing"

	"github.com/fwojciec/darkcrawl"
	"github.com/fwojciec/darkcrawl/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkExtractor_ExtractLinks_ResolvesRelativeLinks(t *testing.T) {
	t.Parallel()

	snapshot := `<html><body>
		<a href="/pricing">Pricing</a>
		<a href="cart">Cart</a>
		<a href="https://example.com/deals">Deals</a>
	</body></html>`

	e := goquery.NewLinkExtractor()
	links, err := e.ExtractLinks(snapshot, "https://example.com/shop/")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://example.com/pricing",
		"https://example.com/shop/cart",
		"https://example.com/deals",
	}, links)
}

func TestLinkExtractor_ExtractLinks_FiltersCrossOriginAndAssets(t *testing.T) {
	t.Parallel()

	snapshot := `<html><body>
		<a href="https://other.example.org/page">External</a>
		<a href="/logo.png">Logo</a>
		<a href="/styles.css">Styles</a>
		<a href="/deals">Deals</a>
	</body></html>`

	e := goquery.NewLinkExtractor()
	links, err := e.ExtractLinks(snapshot, "https://example.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.com/deals"}, links)
}

func TestLinkExtractor_ExtractLinks_SkipsNonHTTPSchemes(t *testing.T) {
	t.Parallel()

	snapshot := `<html><body>
		<a href="javascript:void(0)">Click</a>
		<a href="mailto:a@example.com">Mail</a>
		<a href="tel:+1234567890">Call</a>
		<a href="/ok">OK</a>
	</body></html>`

	e := goquery.NewLinkExtractor()
	links, err := e.ExtractLinks(snapshot, "https://example.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.com/ok"}, links)
}

func TestLinkExtractor_ExtractLinks_DeduplicatesAndStripsFragments(t *testing.T) {
	t.Parallel()

	snapshot := `<html><body>
		<a href="/deals#top">Deals</a>
		<a href="/deals#bottom">Deals again</a>
		<a href="/deals">Deals plain</a>
	</body></html>`

	e := goquery.NewLinkExtractor()
	links, err := e.ExtractLinks(snapshot, "https://example.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.com/deals"}, links)
}

func TestLinkExtractor_ExtractLinks_RejectsInvalidBase(t *testing.T) {
	t.Parallel()

	e := goquery.NewLinkExtractor()
	_, err := e.ExtractLinks("<html></html>", "://bad")
	require.Error(t, err)
	assert.Equal(t, darkcrawl.EINVALID, darkcrawl.ErrorCode(err))
}

func TestLinkExtractor_ExtractLinks_EmptySnapshot(t *testing.T) {
	t.Parallel()

	e := goquery.NewLinkExtractor()
	links, err := e.ExtractLinks("", "https://example.com")
	require.NoError(t, err)
	assert.Empty(t, links)
}
