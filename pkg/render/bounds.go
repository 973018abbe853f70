package render

import (
	"image"

	"github.com/kokodio/tdd/pkg/geom"
)

// Bounds tracks the extreme edges of every rectangle seen so far. The zero
// value covers only the origin.
type Bounds struct {
	Left, Top, Right, Bottom int
}

// Add grows b to include r.
func (b Bounds) Add(r geom.Rectangle) Bounds {
	b.Left = min(b.Left, r.Left())
	b.Top = min(b.Top, r.Top())
	b.Right = max(b.Right, r.Right())
	b.Bottom = max(b.Bottom, r.Bottom())
	return b
}

// BoundsOf folds every rectangle into a zero Bounds.
func BoundsOf(rects []geom.Rectangle) Bounds {
	var b Bounds
	for _, r := range rects {
		b = b.Add(r)
	}
	return b
}

// Size returns the canvas size that fits b with a one-pixel stroke.
func (b Bounds) Size() geom.Size {
	return geom.Sz(abs(b.Left)+abs(b.Right)+1, abs(b.Top)+abs(b.Bottom)+1)
}

// Offset is added to every rectangle location to map it into canvas space.
func (b Bounds) Offset() geom.Point {
	return geom.Pt(abs(b.Left), abs(b.Top))
}

// Canvas returns the image rectangle for b.
func (b Bounds) Canvas() image.Rectangle {
	s := b.Size()
	return image.Rect(0, 0, s.Width, s.Height)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
