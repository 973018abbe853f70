package render

import (
	"image"
	"image/color"
	"strconv"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/kokodio/tdd/pkg/geom"
)

var labelFace = basicfont.Face7x13

func fill(img *image.RGBA, c color.Color) {
	if c == nil {
		return
	}
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// strokeRect draws a one-pixel outline covering columns x..x+w and rows
// y..y+h inclusive. Pixels outside img are skipped.
func strokeRect(img *image.RGBA, r geom.Rectangle, c color.Color) {
	x0, y0 := r.Left(), r.Top()
	x1, y1 := r.Right(), r.Bottom()
	for x := x0; x <= x1; x++ {
		img.Set(x, y0, c)
		img.Set(x, y1, c)
	}
	for y := y0; y <= y1; y++ {
		img.Set(x0, y, c)
		img.Set(x1, y, c)
	}
}

// drawLabel centers text inside r when it fits.
func drawLabel(img *image.RGBA, r geom.Rectangle, text string, c color.Color) {
	d := &font.Drawer{Dst: img, Src: image.NewUniform(c), Face: labelFace}
	width := d.MeasureString(text).Ceil()
	m := labelFace.Metrics()
	height := (m.Ascent + m.Descent).Ceil()
	if width+2 > r.Width() || height+2 > r.Height() {
		return
	}
	x := r.Left() + (r.Width()-width)/2
	y := r.Top() + (r.Height()-height)/2 + m.Ascent.Ceil()
	d.Dot = fixed.P(x, y)
	d.DrawString(text)
}

func label(i int) string { return strconv.Itoa(i + 1) }
