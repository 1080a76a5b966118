package mock

import "github.com/fwojciec/darkcrawl"

var _ darkcrawl.SnapshotLinkExtractor = (*SnapshotLinkExtractor)(nil)

// SnapshotLinkExtractor is a mock implementation of
// darkcrawl.SnapshotLinkExtractor.
type SnapshotLinkExtractor struct {
	ExtractLinksFn func(snapshot string, base darkcrawl.Address) ([]string, error)
}

func (e *SnapshotLinkExtractor) ExtractLinks(snapshot string, base darkcrawl.Address) ([]string, error) {
	return e.ExtractLinksFn(snapshot, base)
}

var _ darkcrawl.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of darkcrawl.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*darkcrawl.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*darkcrawl.ExtractResult, error) {
	return e.ExtractFn(html)
}

var _ darkcrawl.Converter = (*Converter)(nil)

// Converter is a mock implementation of darkcrawl.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
