package render

import (
	"image"
	"io"

	"github.com/kokodio/tdd/pkg/geom"
)

// Fixed draws onto a canvas of constant size with the origin at its
// center. Rectangles are drawn as soon as they are added.
type Fixed struct {
	opts  options
	img   *image.RGBA
	count int
}

// NewFixed returns a blank fixed-canvas renderer. Non-positive canvas
// dimensions are clamped to one pixel.
func NewFixed(opts ...Option) *Fixed {
	o := newOptions(opts)
	o.canvas = geom.Sz(max(o.canvas.Width, 1), max(o.canvas.Height, 1))
	f := &Fixed{opts: o}
	f.Clear()
	return f
}

// Offset maps layout coordinates onto the canvas.
func (f *Fixed) Offset() geom.Point {
	return geom.Pt(f.opts.canvas.Width/2, f.opts.canvas.Height/2)
}

func (f *Fixed) AddRectangle(r geom.Rectangle) {
	r = r.Translate(f.Offset())
	strokeRect(f.img, r, f.opts.stroke)
	if f.opts.labels {
		drawLabel(f.img, r, label(f.count), f.opts.stroke)
	}
	f.count++
}

func (f *Fixed) AddRectangles(rects []geom.Rectangle) {
	for _, r := range rects {
		f.AddRectangle(r)
	}
}

// Image returns a copy of the canvas.
func (f *Fixed) Image() *image.RGBA {
	img := image.NewRGBA(f.img.Rect)
	copy(img.Pix, f.img.Pix)
	return img
}

// Clear replaces the canvas with a blank one of the same size.
func (f *Fixed) Clear() {
	f.img = image.NewRGBA(image.Rect(0, 0, f.opts.canvas.Width, f.opts.canvas.Height))
	fill(f.img, f.opts.background)
	f.count = 0
}

// WritePNG encodes the canvas to w.
func (f *Fixed) WritePNG(w io.Writer) error { return encodePNG(w, f.img) }

// SaveImage writes the canvas as a PNG file.
func (f *Fixed) SaveImage(path string) error { return savePNG(path, f.img) }

var _ Renderer = (*Fixed)(nil)
