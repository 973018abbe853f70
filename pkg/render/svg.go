package render

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/kokodio/tdd/pkg/geom"
)

// RenderSVG draws rects as outlined SVG rectangles on the same canvas an
// AutoAdjust renderer would produce.
func RenderSVG(rects []geom.Rectangle, opts ...Option) []byte {
	o := newOptions(opts)
	b := BoundsOf(rects)
	size := b.Size()
	off := b.Offset()

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n",
		size.Width, size.Height, size.Width, size.Height)
	if o.background != nil {
		fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%d" height="%d" fill="%s"/>`+"\n",
			size.Width, size.Height, hexColor(o.background))
	}

	stroke := hexColor(o.stroke)
	buf.WriteString(`  <g fill="none" stroke="` + stroke + `" stroke-width="1">` + "\n")
	for i, r := range rects {
		r = r.Translate(off)
		// Half-pixel shift keeps one-pixel strokes on pixel centers.
		fmt.Fprintf(&buf, `    <rect id="rect-%d" x="%.1f" y="%.1f" width="%d" height="%d"/>`+"\n",
			i+1, float64(r.Left())+0.5, float64(r.Top())+0.5, r.Width(), r.Height())
	}
	buf.WriteString("  </g>\n")

	if o.labels {
		renderSVGLabels(&buf, rects, off, stroke)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderSVGLabels(buf *bytes.Buffer, rects []geom.Rectangle, off geom.Point, fill string) {
	fmt.Fprintf(buf, `  <g font-family="monospace" font-size="11" text-anchor="middle" dominant-baseline="central" fill="%s">`+"\n", fill)
	for i, r := range rects {
		if r.IsEmpty() {
			continue
		}
		r = r.Translate(off)
		fmt.Fprintf(buf, `    <text x="%.1f" y="%.1f">%d</text>`+"\n", r.CenterX(), r.CenterY(), i+1)
	}
	buf.WriteString("  </g>\n")
}

func hexColor(c color.Color) string {
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	return fmt.Sprintf("#%02x%02x%02x", rgba.R, rgba.G, rgba.B)
}
