package mock

import (
	"context"

	"github.com/fwojciec/darkcrawl"
)

var _ darkcrawl.Analyzer = (*Analyzer)(nil)

// Analyzer is a mock implementation of darkcrawl.Analyzer.
type Analyzer struct {
	AnalyzeFn func(ctx context.Context, page *darkcrawl.CapturedPage) (*darkcrawl.FindingsResponse, error)
}

func (a *Analyzer) Analyze(ctx context.Context, page *darkcrawl.CapturedPage) (*darkcrawl.FindingsResponse, error) {
	return a.AnalyzeFn(ctx, page)
}

var _ darkcrawl.Cropper = (*Cropper)(nil)

// Cropper is a mock implementation of darkcrawl.Cropper.
type Cropper struct {
	CropFn func(image []byte, box darkcrawl.BoundingBox) ([]byte, error)
}

func (c *Cropper) Crop(image []byte, box darkcrawl.BoundingBox) ([]byte, error) {
	return c.CropFn(image, box)
}
