// Package geom provides the integer 2D value types shared by the placement
// engine, the renderers and the serialization layer.
//
// All types are plain values. Y grows downward, as in raster images: a
// rectangle's Location is its top-left corner, Top is its smallest y and
// Bottom its largest.
//
// Edge accessors add a size to a coordinate without overflow checks. Sizes
// entering the placement engine are capped at errors.MaxSide, which keeps
// Right and Bottom exact for any realistic number of placements.
package geom

import "fmt"

// Point is an integer 2D coordinate.
type Point struct {
	X int `json:"x" yaml:"x" toml:"x"`
	Y int `json:"y" yaml:"y" toml:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point { return Point{X: x, Y: y} }

// Add returns the component-wise sum of p and q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Sub returns the component-wise difference p - q.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// String returns a string representation of the point.
func (p Point) String() string { return fmt.Sprintf("<%d, %d>", p.X, p.Y) }

// Size describes the dimensions of a rectangle.
type Size struct {
	Width  int `json:"width" yaml:"width" toml:"width"`
	Height int `json:"height" yaml:"height" toml:"height"`
}

// Sz is shorthand for Size{Width: w, Height: h}.
func Sz(w, h int) Size { return Size{Width: w, Height: h} }

// Area returns width * height.
func (s Size) Area() int { return s.Width * s.Height }

// IsEmpty reports whether either dimension is zero or negative.
func (s Size) IsEmpty() bool { return s.Width <= 0 || s.Height <= 0 }

// IsNegative reports whether either dimension is below zero.
func (s Size) IsNegative() bool { return s.Width < 0 || s.Height < 0 }

// String returns a string representation of the size.
func (s Size) String() string { return fmt.Sprintf("<%d, %d>", s.Width, s.Height) }

// Rectangle is a location (top-left corner) paired with a size.
type Rectangle struct {
	Location Point `json:"location" yaml:"location" toml:"location"`
	Size     Size  `json:"size" yaml:"size" toml:"size"`
}

// Rect builds a rectangle from its top-left corner and dimensions.
func Rect(x, y, w, h int) Rectangle {
	return Rectangle{Location: Point{X: x, Y: y}, Size: Size{Width: w, Height: h}}
}

// Left returns the x coordinate of the left edge.
func (r Rectangle) Left() int { return r.Location.X }

// Top returns the y coordinate of the top edge.
func (r Rectangle) Top() int { return r.Location.Y }

// Right returns the x coordinate of the right edge.
func (r Rectangle) Right() int { return r.Location.X + r.Size.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rectangle) Bottom() int { return r.Location.Y + r.Size.Height }

// Width returns the horizontal extent.
func (r Rectangle) Width() int { return r.Size.Width }

// Height returns the vertical extent.
func (r Rectangle) Height() int { return r.Size.Height }

// Area returns the rectangle's area.
func (r Rectangle) Area() int { return r.Size.Area() }

// IsEmpty reports whether the rectangle has no area.
func (r Rectangle) IsEmpty() bool { return r.Size.IsEmpty() }

// CenterX returns the exact horizontal center.
func (r Rectangle) CenterX() float64 { return float64(r.Location.X) + float64(r.Size.Width)/2 }

// CenterY returns the exact vertical center.
func (r Rectangle) CenterY() float64 { return float64(r.Location.Y) + float64(r.Size.Height)/2 }

// Overlaps reports whether r and o share a region of positive area.
// Empty rectangles never overlap anything, and touching edges do not count.
func (r Rectangle) Overlaps(o Rectangle) bool {
	if r.IsEmpty() || o.IsEmpty() {
		return false
	}
	return o.Left() < r.Right() &&
		r.Left() < o.Right() &&
		o.Top() < r.Bottom() &&
		r.Top() < o.Bottom()
}

// Union returns the smallest rectangle containing both r and o.
func (r Rectangle) Union(o Rectangle) Rectangle {
	x1 := min(r.Left(), o.Left())
	y1 := min(r.Top(), o.Top())
	x2 := max(r.Right(), o.Right())
	y2 := max(r.Bottom(), o.Bottom())
	return Rect(x1, y1, x2-x1, y2-y1)
}

// Translate returns r moved by the offset d.
func (r Rectangle) Translate(d Point) Rectangle {
	r.Location = r.Location.Add(d)
	return r
}

// String returns a string describing the rectangle.
func (r Rectangle) String() string {
	return fmt.Sprintf("<%d, %d, %d, %d>", r.Location.X, r.Location.Y, r.Size.Width, r.Size.Height)
}
