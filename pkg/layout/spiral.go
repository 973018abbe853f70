package layout

import (
	"math"
	"slices"

	"github.com/kokodio/tdd/pkg/errors"
	"github.com/kokodio/tdd/pkg/geom"
)

const (
	spiralAngleStep  = 0.1
	spiralRadiusStep = 0.1
)

// Spiral places each rectangle at the first free point of an Archimedean
// spiral around the center. The walk resumes where the previous placement
// stopped, so the spiral is traversed once over the engine's lifetime.
type Spiral struct {
	center     geom.Point
	rectangles []geom.Rectangle
	angle      float64
	radius     float64
}

// NewSpiral returns an empty spiral engine.
func NewSpiral(opts ...Option) *Spiral {
	o := buildOptions(opts)
	return &Spiral{center: o.center}
}

// PutNextRectangle places a rectangle of the given size.
func (s *Spiral) PutNextRectangle(size geom.Size) (geom.Rectangle, error) {
	if err := errors.ValidateSize(size.Width, size.Height); err != nil {
		return geom.Rectangle{}, err
	}

	rect := geom.Rectangle{Location: s.center, Size: size}
	if len(s.rectangles) > 0 {
		for {
			rect.Location = s.point()
			s.radius += spiralRadiusStep
			s.angle += spiralAngleStep
			if !overlapsAny(rect, s.rectangles) {
				break
			}
		}
	}

	s.rectangles = append(s.rectangles, rect)
	return rect, nil
}

// point truncates toward zero, matching integer conversion of the polar
// coordinates.
func (s *Spiral) point() geom.Point {
	sin, cos := math.Sincos(s.angle)
	return s.center.Add(geom.Pt(int(s.radius*cos), int(s.radius*sin)))
}

// Rectangles returns a copy of the placed rectangles in insertion order.
func (s *Spiral) Rectangles() []geom.Rectangle {
	return slices.Clone(s.rectangles)
}

// Reset discards every placement and rewinds the spiral.
func (s *Spiral) Reset() {
	s.rectangles = s.rectangles[:0]
	s.angle = 0
	s.radius = 0
}

var _ Layouter = (*Spiral)(nil)
