// Package png implements evidence cropping over PNG screenshots. Cropping
// is a pure function of the source image and a validated bounding box; a
// failed crop never invalidates the finding it belongs to.
package png

import (
	"bytes"
	"image"
	"image/png"

	"github.com/fwojciec/darkcrawl"
)

// Ensure Cropper implements darkcrawl.Cropper at compile time.
var _ darkcrawl.Cropper = (*Cropper)(nil)

// Cropper cuts bounding-box regions out of PNG screenshots.
type Cropper struct{}

// NewCropper creates a new Cropper.
func NewCropper() *Cropper {
	return &Cropper{}
}

// Crop decodes the screenshot, cuts the box region clamped to the image
// bounds, and re-encodes it as PNG. A box lying entirely outside the image
// is an error.
func (c *Cropper) Crop(screenshot []byte, box darkcrawl.BoundingBox) ([]byte, error) {
	img, err := png.Decode(bytes.NewReader(screenshot))
	if err != nil {
		return nil, darkcrawl.Errorf(darkcrawl.EINVALID, "decoding screenshot: %v", err)
	}

	region := image.Rect(box.X, box.Y, box.X+box.Width, box.Y+box.Height)
	region = region.Intersect(img.Bounds())
	if region.Empty() {
		return nil, darkcrawl.Errorf(darkcrawl.EINVALID,
			"box %dx%d at (%d,%d) lies outside the %dx%d screenshot",
			box.Width, box.Height, box.X, box.Y,
			img.Bounds().Dx(), img.Bounds().Dy())
	}

	type subImager interface {
		SubImage(r image.Rectangle) image.Image
	}
	src, ok := img.(subImager)
	if !ok {
		return nil, darkcrawl.Errorf(darkcrawl.EINTERNAL, "screenshot image does not support cropping")
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, src.SubImage(region)); err != nil {
		return nil, darkcrawl.Errorf(darkcrawl.EINTERNAL, "encoding crop: %v", err)
	}
	return buf.Bytes(), nil
}
