package render

import (
	"image"
	"io"
)

// AutoAdjust sizes its canvas to the bounds of every added rectangle.
type AutoAdjust struct {
	accumulator
	opts options
}

// NewAutoAdjust returns an empty auto-adjusting renderer.
func NewAutoAdjust(opts ...Option) *AutoAdjust {
	return &AutoAdjust{opts: newOptions(opts)}
}

// Image draws every rectangle onto a canvas sized to the bounds.
func (a *AutoAdjust) Image() *image.RGBA {
	img := image.NewRGBA(a.bounds.Canvas())
	fill(img, a.opts.background)
	off := a.bounds.Offset()
	for i, r := range a.rects {
		r = r.Translate(off)
		strokeRect(img, r, a.opts.stroke)
		if a.opts.labels {
			drawLabel(img, r, label(i), a.opts.stroke)
		}
	}
	return img
}

// WritePNG encodes the current image to w.
func (a *AutoAdjust) WritePNG(w io.Writer) error { return encodePNG(w, a.Image()) }

// SaveImage writes the current image as a PNG file.
func (a *AutoAdjust) SaveImage(path string) error { return savePNG(path, a.Image()) }

var _ Renderer = (*AutoAdjust)(nil)
