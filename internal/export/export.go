// Package export writes print-ready artifacts: a print-resolution PNG,
// a proof PDF, and a JSON document bundling the design with its
// metadata. These are thin writers; the constraint and sync logic has
// already produced the pixels and state being written.
package export

import (
	"image"
	"image/png"
	"os"

	xdraw "golang.org/x/image/draw"
)

// PrintMultiplier approximates print resolution from the design canvas.
const PrintMultiplier = 4.0

// WritePNG saves the image to path as PNG.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

// ScaleTo resamples the image to exactly w x h with Catmull-Rom
// interpolation. Used when the print target size differs from the
// rendered multiple of the canvas.
func ScaleTo(img image.Image, w, h int) image.Image {
	b := img.Bounds()
	if b.Dx() == w && b.Dy() == h {
		return img
	}
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(out, out.Bounds(), img, b, xdraw.Over, nil)
	return out
}
