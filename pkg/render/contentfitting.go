package render

import (
	"image"
	"image/color"
	"io"
	"math/rand/v2"
)

// ContentFitting is an AutoAdjust variant drawn on black with a random
// colour per rectangle. Colours come from the configured seed, so the same
// rectangles always encode to the same image.
type ContentFitting struct {
	accumulator
	opts options
}

// NewContentFitting returns an empty content-fitting renderer.
func NewContentFitting(opts ...Option) *ContentFitting {
	o := newOptions(opts)
	if o.background == nil {
		o.background = color.Black
	}
	return &ContentFitting{opts: o}
}

// Image draws every rectangle onto a black canvas sized to the bounds.
func (c *ContentFitting) Image() *image.RGBA {
	img := image.NewRGBA(c.bounds.Canvas())
	fill(img, c.opts.background)
	rng := rand.New(rand.NewPCG(c.opts.seed, c.opts.seed^0xdeadbeef))
	off := c.bounds.Offset()
	for i, r := range c.rects {
		col := randomColor(rng)
		r = r.Translate(off)
		strokeRect(img, r, col)
		if c.opts.labels {
			drawLabel(img, r, label(i), col)
		}
	}
	return img
}

func randomColor(rng *rand.Rand) color.RGBA {
	return color.RGBA{
		R: uint8(rng.IntN(256)),
		G: uint8(rng.IntN(256)),
		B: uint8(rng.IntN(256)),
		A: 255,
	}
}

// WritePNG encodes the current image to w.
func (c *ContentFitting) WritePNG(w io.Writer) error { return encodePNG(w, c.Image()) }

// SaveImage writes the current image as a PNG file.
func (c *ContentFitting) SaveImage(path string) error { return savePNG(path, c.Image()) }

var _ Renderer = (*ContentFitting)(nil)
