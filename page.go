package darkcrawl

import (
	"context"
	"time"
)

// Viewport describes the browser viewport at capture time. Bounding boxes in
// findings are expressed in this pixel space.
type Viewport struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// CapturedPage is one rendered page: screenshot bytes, a structural document
// snapshot, and viewport metadata. It is ephemeral - produced per visit,
// consumed immediately by the analysis stage, and not retained beyond the
// Entry assembled from it.
type CapturedPage struct {
	Address    Address
	Image      []byte // PNG screenshot
	Snapshot   string // rendered HTML at capture time
	Viewport   Viewport
	CapturedAt time.Time
}

// Browser is a browser-like execution target that renders one page at a
// time. The crawl controller opens pages strictly sequentially against it.
type Browser interface {
	// Open navigates a page to the address and waits for it to load.
	// Ordinary HTTP error pages are not errors; only unreachable or
	// timed-out conditions are. The returned session must be closed
	// before the next page is opened.
	Open(ctx context.Context, addr Address) (PageSession, error)

	// Close releases browser resources.
	// Must be called when the Browser is no longer needed.
	Close() error
}

// PageSession gives control of one rendered page. Capture and link
// extraction both run against the live page, so extraction must happen
// before the session is closed and the controller navigates away.
type PageSession interface {
	// Capture screenshots the page and snapshots its rendered document.
	Capture(ctx context.Context) (*CapturedPage, error)

	// ExtractLinks returns the deduplicated union of same-origin link
	// targets seen across scroll and "load more" iterations. Extraction
	// is best-effort: if the page dies mid-extraction, it returns
	// whatever was collected so far.
	ExtractLinks(ctx context.Context) ([]string, error)

	// Close closes the page.
	Close() error
}
