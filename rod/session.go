package rod

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/darkcrawl"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// Ensure Session implements darkcrawl.PageSession at compile time.
var _ darkcrawl.PageSession = (*Session)(nil)

// Session controls one open page. Capture and link extraction run against
// the live document, so both must happen before Close.
type Session struct {
	page       *rod.Page
	addr       darkcrawl.Address
	iterations int
	settle     time.Duration
}

// Capture screenshots the full page and snapshots its rendered document.
func (s *Session) Capture(ctx context.Context) (*darkcrawl.CapturedPage, error) {
	page := s.page.Context(ctx)

	img, err := page.Screenshot(true, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return nil, darkcrawl.Errorf(darkcrawl.EUNAVAILABLE, "screenshotting %s: %v", s.addr, err)
	}

	html, err := page.HTML()
	if err != nil {
		return nil, darkcrawl.Errorf(darkcrawl.EUNAVAILABLE, "snapshotting %s: %v", s.addr, err)
	}

	viewport := darkcrawl.Viewport{}
	if res, err := page.Eval(viewportJS); err == nil {
		arr := res.Value.Arr()
		if len(arr) == 2 {
			viewport.Width = arr[0].Int()
			viewport.Height = arr[1].Int()
		}
	}

	return &darkcrawl.CapturedPage{
		Address:    s.addr,
		Image:      img,
		Snapshot:   html,
		Viewport:   viewport,
		CapturedAt: time.Now().UTC(),
	}, nil
}

// ExtractLinks runs the staged in-page discovery protocol:
//
//  1. Collect hyperlink targets from the document and every nested shadow
//     root at the current render state.
//  2. Scroll to the bottom, wait a settle interval, re-collect; when the
//     document height stalls for two consecutive iterations, perform one
//     corrective micro-scroll to provoke lazy-load triggers before giving
//     up.
//  3. Activate a visible "load more" control, if any, and re-collect once.
//
// Extraction is best-effort: if the page dies mid-protocol the links
// collected so far are returned alongside the error.
func (s *Session) ExtractLinks(ctx context.Context) ([]string, error) {
	page := s.page.Context(ctx)

	seen := make(map[string]struct{})
	var links []string

	collect := func() error {
		res, err := page.Eval(collectLinksJS)
		if err != nil {
			return err
		}
		for _, v := range res.Value.Arr() {
			raw := v.Str()
			if !s.crawlable(raw) {
				continue
			}
			if _, ok := seen[raw]; ok {
				continue
			}
			seen[raw] = struct{}{}
			links = append(links, raw)
		}
		return nil
	}

	if err := collect(); err != nil {
		return links, darkcrawl.Errorf(darkcrawl.EUNAVAILABLE, "collecting links on %s: %v", s.addr, err)
	}

	lastHeight := -1
	stagnant := 0
	nudged := false
	for i := 0; i < s.iterations; i++ {
		if _, err := page.Eval(scrollBottomJS); err != nil {
			return links, darkcrawl.Errorf(darkcrawl.EUNAVAILABLE, "scrolling %s: %v", s.addr, err)
		}
		if err := s.wait(ctx); err != nil {
			return links, err
		}
		if err := collect(); err != nil {
			return links, darkcrawl.Errorf(darkcrawl.EUNAVAILABLE, "re-collecting links on %s: %v", s.addr, err)
		}

		height := 0
		if res, err := page.Eval(scrollHeightJS); err == nil {
			height = res.Value.Int()
		}
		if height == lastHeight {
			stagnant++
		} else {
			stagnant = 0
			lastHeight = height
		}

		if stagnant >= 2 {
			if nudged {
				break
			}
			// One corrective micro-scroll: partial scroll up then back
			// down, to fire intersection observers that missed the jump.
			nudged = true
			if _, err := page.Eval(microScrollJS); err != nil {
				break
			}
			if err := s.wait(ctx); err != nil {
				return links, err
			}
			stagnant = 0
		}
	}

	clicked := false
	if res, err := page.Eval(clickLoadMoreJS, LoadMoreLexicon); err == nil {
		clicked = res.Value.Bool()
	}
	if clicked {
		if err := s.wait(ctx); err != nil {
			return links, err
		}
		if err := collect(); err != nil {
			return links, darkcrawl.Errorf(darkcrawl.EUNAVAILABLE, "post-click collection on %s: %v", s.addr, err)
		}
	}

	return links, nil
}

// Close closes the page.
func (s *Session) Close() error {
	return s.page.Close()
}

// wait sleeps for the settle interval, respecting cancellation.
func (s *Session) wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(s.settle):
		return nil
	}
}

// crawlable filters one collected href: same-origin http(s) targets only,
// no fragment-only self-links, no pseudo-links, no static assets.
func (s *Session) crawlable(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return false
	}
	if !darkcrawl.SameOrigin(raw, s.addr) {
		return false
	}
	if darkcrawl.IsAssetPath(u.Path) {
		return false
	}
	return true
}
