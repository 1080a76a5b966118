package bloom_test

import (
	"fmt"
	"testing"

	"github.com/fwojciec/darkcrawl/bloom"
	"github.com/stretchr/testify/assert"
)

func TestFilter_Add_and_Test(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	assert.False(t, f.Test("https://example.com/broken"))
	f.Add("https://example.com/broken")
	assert.True(t, f.Test("https://example.com/broken"))
}

func TestFilter_AddIfNew(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	assert.True(t, f.AddIfNew("javascript:void(0)"), "first sighting is new")
	assert.False(t, f.AddIfNew("javascript:void(0)"), "second sighting is not")
}

func TestFilter_EstimatedCount(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)
	for i := 0; i < 100; i++ {
		f.Add(fmt.Sprintf("candidate-%d", i))
	}

	count := f.EstimatedCount()
	assert.InDelta(t, 100, count, 10)
}
