// Package images defines the replaced-content payload stored on replaced
// boxes. Fetching and decoding is the embedder's concern.
package images

import (
	"image"

	pr "github.com/lherbaut/boxtree/css/properties"
)

// Image is the content of a replaced box (raster image, vector
// drawing, ...), already fetched and decoded by the caller.
type Image interface {
	// IntrinsicSize returns the natural dimensions of the image,
	// in CSS pixels.
	IntrinsicSize() (width, height pr.Fl)
}

// RasterImage adapts a decoded raster image.
type RasterImage struct {
	Content image.Image
}

func (r RasterImage) IntrinsicSize() (width, height pr.Fl) {
	b := r.Content.Bounds()
	return pr.Fl(b.Dx()), pr.Fl(b.Dy())
}
