package crawl_test

import (
	"fmt"
	"testing"

	"github.com/fwojciec/darkcrawl/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrontier_Push_rejects_duplicate_addresses(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier()

	assert.True(t, f.Push("https://example.com/a", ""), "first push should succeed")
	assert.False(t, f.Push("https://example.com/a", "https://example.com"), "duplicate should be rejected")
	assert.Equal(t, 1, f.Len())
	assert.Equal(t, 1, f.Discovered())
}

func TestFrontier_Pop_is_FIFO(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier()
	f.Push("https://example.com/first", "")
	f.Push("https://example.com/second", "")
	f.Push("https://example.com/third", "")

	item, ok := f.Pop()
	require.True(t, ok)
	assert.Equal(t, "https://example.com/first", item.Address)
	assert.Equal(t, 0, item.Order)

	item, ok = f.Pop()
	require.True(t, ok)
	assert.Equal(t, "https://example.com/second", item.Address)
	assert.Equal(t, 1, item.Order)

	item, ok = f.Pop()
	require.True(t, ok)
	assert.Equal(t, "https://example.com/third", item.Address)

	_, ok = f.Pop()
	assert.False(t, ok, "pop on empty frontier should return false")
}

func TestFrontier_Push_RecordsDiscoverySource(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier()
	f.Push("https://example.com", "")
	f.Push("https://example.com/cart", "https://example.com")

	// A later sighting from another page must not overwrite the source.
	f.Push("https://example.com/cart", "https://example.com/b")

	f.Pop()
	item, ok := f.Pop()
	require.True(t, ok)
	assert.Equal(t, "https://example.com/cart", item.Address)
	assert.Equal(t, "https://example.com", item.DiscoveredFrom)
}

func TestFrontier_Seen_tracks_dequeued_addresses(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier()

	assert.False(t, f.Seen("https://example.com/page"))

	f.Push("https://example.com/page", "")
	assert.True(t, f.Seen("https://example.com/page"))

	f.Pop()
	assert.True(t, f.Seen("https://example.com/page"), "popped address stays seen")
	assert.False(t, f.Push("https://example.com/page", ""), "never re-queued")
}

func TestFrontier_Discovered_EqualsPendingPlusDequeued(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier()
	for i := 0; i < 500; i++ {
		f.Push(fmt.Sprintf("https://example.com/p%d", i), "")
	}

	dequeued := 0
	for i := 0; i < 300; i++ {
		_, ok := f.Pop()
		require.True(t, ok)
		dequeued++
	}

	assert.Equal(t, 500, f.Discovered())
	assert.Equal(t, 500-dequeued, f.Len())
}
