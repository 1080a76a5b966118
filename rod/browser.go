// Package rod provides the browser-backed capture adapter using Chrome
// automation. It renders pages one at a time, screenshots them, snapshots
// the rendered document, and runs the in-page link discovery protocol.
package rod

import (
	"context"
	"time"

	"github.com/fwojciec/darkcrawl"
	"github.com/go-rod/rod/lib/proto"
)

// Ensure Browser implements darkcrawl.Browser at compile time.
var _ darkcrawl.Browser = (*Browser)(nil)

// Extraction protocol defaults.
const (
	// DefaultScrollIterations bounds the scroll-and-recollect cycles used
	// to surface lazily-rendered links.
	DefaultScrollIterations = 8

	// DefaultSettleInterval is the wait after each scroll before the
	// document is re-collected.
	DefaultSettleInterval = 800 * time.Millisecond
)

// Browser is the capture adapter over a managed headless Chrome instance.
// Pages are opened strictly sequentially; the underlying browser is
// recycled periodically to keep memory bounded.
type Browser struct {
	manager    *BrowserManager
	iterations int
	settle     time.Duration
}

// Option configures a Browser.
type Option func(*Browser)

// WithScrollIterations sets the maximum scroll-and-recollect cycles during
// link extraction. Defaults to DefaultScrollIterations.
func WithScrollIterations(n int) Option {
	return func(b *Browser) {
		b.iterations = n
	}
}

// WithSettleInterval sets the wait after each scroll before links are
// re-collected. Defaults to DefaultSettleInterval.
func WithSettleInterval(d time.Duration) Option {
	return func(b *Browser) {
		b.settle = d
	}
}

// NewBrowser launches a managed headless Chrome browser.
// Close must be called when the Browser is no longer needed.
func NewBrowser(opts ...Option) (*Browser, error) {
	b := &Browser{
		iterations: DefaultScrollIterations,
		settle:     DefaultSettleInterval,
	}
	for _, opt := range opts {
		opt(b)
	}

	manager, err := NewBrowserManager()
	if err != nil {
		return nil, err
	}
	b.manager = manager
	return b, nil
}

// Open navigates a fresh page to the address and waits for it to load.
// Ordinary HTTP error pages load without error; only unreachable or
// timed-out navigation fails.
func (b *Browser) Open(ctx context.Context, addr darkcrawl.Address) (darkcrawl.PageSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	page, err := b.manager.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, darkcrawl.Errorf(darkcrawl.EUNAVAILABLE, "opening page: %v", err)
	}
	page = page.Context(ctx)

	if err := page.Navigate(addr); err != nil {
		_ = page.Close()
		return nil, darkcrawl.Errorf(darkcrawl.EUNAVAILABLE, "navigating to %s: %v", addr, err)
	}
	if err := page.WaitLoad(); err != nil {
		_ = page.Close()
		return nil, darkcrawl.Errorf(darkcrawl.EUNAVAILABLE, "waiting for %s to load: %v", addr, err)
	}

	b.manager.IncrementPageCount()

	return &Session{
		page:       page,
		addr:       addr,
		iterations: b.iterations,
		settle:     b.settle,
	}, nil
}

// Close releases browser resources.
func (b *Browser) Close() error {
	return b.manager.Close()
}
