package darkcrawl

import (
	"net/url"
	"strings"
)

// Address is a normalized, canonical page identifier: scheme, host, path and
// sorted query, with no fragment and no trailing slash. Two raw URLs that
// differ only by fragment, trailing slash, or query-parameter order
// normalize to the same Address.
type Address = string

// Normalize canonicalizes a raw URL string into an Address.
//
// Normalization lowercases the scheme and host, drops the fragment, strips a
// trailing slash from the path, and sorts query parameters. The input must
// parse as an absolute http(s) URL with a host; anything else returns an
// EINVALID error and the caller drops the candidate.
//
// Normalize is pure and idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(raw string) (Address, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", Errorf(EINVALID, "malformed address %q: %v", raw, err)
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return "", Errorf(EINVALID, "unsupported scheme %q in address %q", u.Scheme, raw)
	}
	if u.Host == "" {
		return "", Errorf(EINVALID, "address %q has no host", raw)
	}

	u.Scheme = scheme
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""
	u.RawFragment = ""
	u.Path = strings.TrimSuffix(u.Path, "/")
	u.RawPath = ""

	// url.Values.Encode sorts by key, collapsing query-order variants.
	if u.RawQuery != "" {
		u.RawQuery = u.Query().Encode()
	}

	return u.String(), nil
}

// assetExtensions lists path suffixes for static assets that are never
// crawlable pages: images, media, documents, archives, fonts, styles, scripts.
var assetExtensions = []string{
	".png", ".jpg", ".jpeg", ".gif", ".svg", ".webp", ".ico", ".bmp", ".avif",
	".mp4", ".webm", ".mov", ".avi", ".mp3", ".wav", ".ogg",
	".pdf", ".doc", ".docx", ".xls", ".xlsx", ".ppt", ".pptx",
	".zip", ".tar", ".gz", ".tgz", ".bz2", ".xz", ".rar", ".7z",
	".woff", ".woff2", ".ttf", ".otf", ".eot",
	".css",
	".js", ".mjs",
}

// IsAssetPath reports whether the URL path points at a static asset
// (image, media, document, archive, font, style, script) rather than a
// crawlable page.
func IsAssetPath(path string) bool {
	lower := strings.ToLower(path)
	for _, ext := range assetExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// SameOrigin reports whether two Addresses share a scheme and host.
func SameOrigin(a, b Address) bool {
	ua, err := url.Parse(a)
	if err != nil {
		return false
	}
	ub, err := url.Parse(b)
	if err != nil {
		return false
	}
	return strings.EqualFold(ua.Scheme, ub.Scheme) && strings.EqualFold(ua.Host, ub.Host)
}
