package darkcrawl

// SnapshotLinkExtractor extracts link targets from a captured document
// snapshot without an execution target. It misses lazily-rendered links and
// serves as the fallback when in-page extraction dies early.
type SnapshotLinkExtractor interface {
	// ExtractLinks parses the snapshot HTML and returns raw same-origin
	// link targets. The base address is used to resolve relative URLs.
	ExtractLinks(snapshot string, base Address) ([]string, error)
}

// ExtractResult holds the main content extracted from a document snapshot.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as clean HTML, with boilerplate
	// (nav, footer, sidebar, ads) removed.
	ContentHTML string
}

// Extractor extracts main content from a document snapshot. The result is
// used as textual context in the inference prompt.
type Extractor interface {
	Extract(html string) (*ExtractResult, error)
}

// Converter transforms HTML into Markdown. Used to condense the document
// snapshot before it is embedded in the inference prompt.
type Converter interface {
	Convert(html string) (string, error)
}
