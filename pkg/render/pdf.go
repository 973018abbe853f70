package render

import (
	"bytes"
	"fmt"
	"image/color"
	"strconv"

	"github.com/jung-kurt/gofpdf"

	"github.com/kokodio/tdd/pkg/geom"
)

// RenderPDF draws rects onto a single PDF page sized like the AutoAdjust
// canvas, one point per pixel.
func RenderPDF(rects []geom.Rectangle, opts ...Option) ([]byte, error) {
	o := newOptions(opts)
	b := BoundsOf(rects)
	size := b.Size()
	off := b.Offset()
	w, h := float64(size.Width), float64(size.Height)

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: w, Ht: h},
		OrientationStr: "",
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle("Tag cloud layout", false)
	pdf.SetCreator("tagcloud", false)
	pdf.AddPage()

	if o.background != nil {
		setFillColor(pdf, o.background)
		pdf.Rect(0, 0, w, h, "F")
	}

	setDrawColor(pdf, o.stroke)
	pdf.SetLineWidth(1)
	for _, r := range rects {
		r = r.Translate(off)
		pdf.Rect(float64(r.Left()), float64(r.Top()), float64(r.Width()), float64(r.Height()), "D")
	}

	if o.labels {
		pdf.SetFont("Helvetica", "", 8)
		setTextColor(pdf, o.stroke)
		for i, r := range rects {
			if r.IsEmpty() {
				continue
			}
			r = r.Translate(off)
			text := strconv.Itoa(i + 1)
			tw := pdf.GetStringWidth(text)
			if tw+2 > float64(r.Width()) || 10 > r.Height() {
				continue
			}
			pdf.Text(r.CenterX()-tw/2, r.CenterY()+3, text)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func rgb(c color.Color) (int, int, int) {
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	return int(rgba.R), int(rgba.G), int(rgba.B)
}

func setDrawColor(pdf *gofpdf.Fpdf, c color.Color) { pdf.SetDrawColor(rgb(c)) }
func setFillColor(pdf *gofpdf.Fpdf, c color.Color) { pdf.SetFillColor(rgb(c)) }
func setTextColor(pdf *gofpdf.Fpdf, c color.Color) { pdf.SetTextColor(rgb(c)) }
