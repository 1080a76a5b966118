// Package goquery implements snapshot-based link extraction. It parses the
// captured document snapshot directly, without an execution target, and
// serves as the fallback when in-page extraction returns nothing.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/darkcrawl"
)

// Ensure LinkExtractor implements darkcrawl.SnapshotLinkExtractor at
// compile time.
var _ darkcrawl.SnapshotLinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor extracts same-origin hyperlink targets from snapshot HTML.
type LinkExtractor struct{}

// NewLinkExtractor creates a new LinkExtractor.
func NewLinkExtractor() *LinkExtractor {
	return &LinkExtractor{}
}

// ExtractLinks parses the snapshot and returns deduplicated same-origin
// link targets in document order. Relative hrefs are resolved against base.
// Asset links and non-HTTP schemes are skipped.
func (e *LinkExtractor) ExtractLinks(snapshot string, base darkcrawl.Address) ([]string, error) {
	baseURL, err := url.Parse(string(base))
	if err != nil {
		return nil, darkcrawl.Errorf(darkcrawl.EINVALID, "invalid base address: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(snapshot))
	if err != nil {
		return nil, darkcrawl.Errorf(darkcrawl.EINVALID, "failed to parse snapshot: %v", err)
	}

	seen := make(map[string]bool)
	var links []string

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists || href == "" {
			return
		}
		if isNonHTTPLink(href) {
			return
		}

		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		resolved := baseURL.ResolveReference(ref)
		resolved.Fragment = ""

		if resolved.Scheme != "http" && resolved.Scheme != "https" {
			return
		}
		if !darkcrawl.SameOrigin(darkcrawl.Address(resolved.String()), base) {
			return
		}
		if darkcrawl.IsAssetPath(resolved.Path) {
			return
		}

		target := resolved.String()
		if seen[target] {
			return
		}
		seen[target] = true
		links = append(links, target)
	})

	return links, nil
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
