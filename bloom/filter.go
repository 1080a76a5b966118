// Package bloom provides probabilistic membership tracking for candidate
// link strings. The crawl frontier dedups exactly on its own; this filter
// backs log-once behavior, where a false positive only suppresses a
// duplicate log line and never affects a crawl decision.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter wraps a Bloom filter over candidate strings.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected items
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add adds a candidate to the filter.
func (f *Filter) Add(s string) {
	f.f.AddString(s)
}

// Test returns true if the candidate might be in the filter.
// False positives are possible; false negatives are not.
func (f *Filter) Test(s string) bool {
	return f.f.TestString(s)
}

// AddIfNew adds the candidate and reports whether it was new.
// Returns false if the candidate was (probably) already present.
func (f *Filter) AddIfNew(s string) bool {
	return !f.f.TestOrAddString(s)
}

// EstimatedCount returns the approximate number of items in the filter.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}
