// Package trafilatura implements main-content extraction over document
// snapshots, used to condense the page text before it enters the inference
// prompt.
package trafilatura

import (
	"bytes"
	"errors"
	"strings"

	"github.com/fwojciec/darkcrawl"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements darkcrawl.Extractor at compile time.
var _ darkcrawl.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from a snapshot.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes snapshot HTML and returns the main content with
// boilerplate removed.
func (e *Extractor) Extract(rawHTML string) (*darkcrawl.ExtractResult, error) {
	if rawHTML == "" {
		return nil, errors.New("empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
	}

	return &darkcrawl.ExtractResult{
		Title:       result.Metadata.Title,
		ContentHTML: contentHTML,
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
