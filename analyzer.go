package darkcrawl

import "context"

// Analyzer turns a captured page into a set of candidate findings using a
// vision-capable inference service. Implementations own retry and backoff;
// they keep no state across calls other than retry counters scoped to one
// Analyze call.
type Analyzer interface {
	// Analyze sends the page screenshot and document context to the model
	// and returns the parsed response. After the retry budget is exhausted
	// it returns an *AnalysisFailedError rather than a raw transport error.
	Analyze(ctx context.Context, page *CapturedPage) (*FindingsResponse, error)
}

// Cropper produces a cropped evidence sub-image for a geometrically valid
// finding. Crop is a pure function over pixel data and must not mutate the
// source image.
type Cropper interface {
	// Crop returns the region of the PNG image described by the box.
	// A region outside the image bounds is an error; the caller keeps the
	// finding with its box and without a crop.
	Crop(image []byte, box BoundingBox) ([]byte, error)
}
