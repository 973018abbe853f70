// Package metrics measures how well a set of placed rectangles forms a
// compact, centered cloud.
//
// All functions take the rectangles and the configured cluster center and
// are pure. An empty input yields zero values rather than NaN.
package metrics

import (
	"math"
	"slices"

	"github.com/montanaflynn/stats"

	"github.com/kokodio/tdd/pkg/geom"
)

// DefaultOutlierFraction is the share of farthest rectangles ignored when
// computing the enclosing radius for density.
const DefaultOutlierFraction = 0.02

// Quadrant indexes the result of [QuadrantShares]. A rectangle whose
// center lies on an axis counts toward the non-negative side.
type Quadrant int

const (
	BottomRight Quadrant = iota // x >= 0, y >= 0 (screen coordinates)
	BottomLeft                  // x <  0, y >= 0
	TopRight                    // x >= 0, y <  0
	TopLeft                     // x <  0, y <  0
)

// Summary bundles every measure for one layout.
type Summary struct {
	Rectangles   int            `json:"rectangles"`
	TotalArea    int            `json:"total_area"`
	Bounds       geom.Rectangle `json:"bounds"`
	Radius       float64        `json:"radius"`
	MaxRadius    float64        `json:"max_radius"`
	Density      float64        `json:"density"`
	CentroidX    float64        `json:"centroid_x"`
	CentroidY    float64        `json:"centroid_y"`
	Centering    float64        `json:"centering"`
	Quadrants    [4]float64     `json:"quadrants"`
	MeanRadius   float64        `json:"mean_radius"`
	StdDevRadius float64        `json:"stddev_radius"`
}

// Summarize computes every measure in one pass over rects.
func Summarize(rects []geom.Rectangle, center geom.Point) Summary {
	radii := Radii(rects, center)
	cx, cy := Centroid(rects)
	s := Summary{
		Rectangles:   len(rects),
		TotalArea:    TotalArea(rects),
		Bounds:       Bounds(rects),
		Radius:       TrimmedRadius(radii, DefaultOutlierFraction),
		MaxRadius:    maxOf(radii),
		CentroidX:    cx,
		CentroidY:    cy,
		Quadrants:    QuadrantShares(rects, center),
		StdDevRadius: StdDev(radii),
	}
	s.Density = density(s.TotalArea, s.Radius)
	s.Centering = centering(cx, cy, center, s.MaxRadius)
	if m, err := stats.Mean(radii); err == nil {
		s.MeanRadius = m
	}
	return s
}

// TotalArea sums the rectangle areas.
func TotalArea(rects []geom.Rectangle) int {
	total := 0
	for _, r := range rects {
		total += r.Area()
	}
	return total
}

// FarCorner returns the distance from center to the corner of r farthest
// from it.
func FarCorner(r geom.Rectangle, center geom.Point) float64 {
	dx := math.Max(math.Abs(float64(r.Left()-center.X)), math.Abs(float64(r.Right()-center.X)))
	dy := math.Max(math.Abs(float64(r.Top()-center.Y)), math.Abs(float64(r.Bottom()-center.Y)))
	return math.Hypot(dx, dy)
}

// Radii returns the far-corner distance of every rectangle, in input order.
func Radii(rects []geom.Rectangle, center geom.Point) []float64 {
	out := make([]float64, len(rects))
	for i, r := range rects {
		out[i] = FarCorner(r, center)
	}
	return out
}

// TrimmedRadius returns the largest radius once the farthest fraction of
// entries is dropped. At least one entry is always kept.
func TrimmedRadius(radii []float64, fraction float64) float64 {
	if len(radii) == 0 {
		return 0
	}
	sorted := slices.Clone(radii)
	slices.Sort(sorted)
	keep := len(sorted) - int(float64(len(sorted))*fraction)
	keep = max(keep, 1)
	return sorted[keep-1]
}

// Density is the total rectangle area divided by the area of the circle
// whose radius reaches the far corner of every non-outlier rectangle.
func Density(rects []geom.Rectangle, center geom.Point) float64 {
	r := TrimmedRadius(Radii(rects, center), DefaultOutlierFraction)
	return density(TotalArea(rects), r)
}

func density(area int, radius float64) float64 {
	if radius == 0 {
		return 0
	}
	return float64(area) / (math.Pi * radius * radius)
}

// Centroid returns the area-weighted mean of the rectangle centers. Sets
// with no area fall back to the unweighted mean.
func Centroid(rects []geom.Rectangle) (x, y float64) {
	if len(rects) == 0 {
		return 0, 0
	}
	var sx, sy, w float64
	for _, r := range rects {
		a := float64(r.Area())
		sx += r.CenterX() * a
		sy += r.CenterY() * a
		w += a
	}
	if w > 0 {
		return sx / w, sy / w
	}
	for _, r := range rects {
		sx += r.CenterX()
		sy += r.CenterY()
	}
	n := float64(len(rects))
	return sx / n, sy / n
}

// Centering is the distance between the centroid and center, relative to
// the maximum placement radius. Zero is perfectly centered.
func Centering(rects []geom.Rectangle, center geom.Point) float64 {
	cx, cy := Centroid(rects)
	return centering(cx, cy, center, maxOf(Radii(rects, center)))
}

func centering(cx, cy float64, center geom.Point, maxRadius float64) float64 {
	if maxRadius == 0 {
		return 0
	}
	return math.Hypot(cx-float64(center.X), cy-float64(center.Y)) / maxRadius
}

// QuadrantShares returns each quadrant's share of the total area, indexed
// by [Quadrant]. The shares sum to 1 unless the total area is zero.
func QuadrantShares(rects []geom.Rectangle, center geom.Point) [4]float64 {
	var q [4]float64
	total := 0.0
	for _, r := range rects {
		a := float64(r.Area())
		q[QuadrantOf(r, center)] += a
		total += a
	}
	if total == 0 {
		return [4]float64{}
	}
	for i := range q {
		q[i] /= total
	}
	return q
}

// QuadrantOf reports which quadrant around center holds the center of r.
func QuadrantOf(r geom.Rectangle, center geom.Point) Quadrant {
	var q Quadrant
	if r.CenterX() < float64(center.X) {
		q |= BottomLeft
	}
	if r.CenterY() < float64(center.Y) {
		q |= TopRight
	}
	return q
}

// Bounds returns the smallest rectangle containing every input rectangle.
func Bounds(rects []geom.Rectangle) geom.Rectangle {
	if len(rects) == 0 {
		return geom.Rectangle{}
	}
	b := rects[0]
	for _, r := range rects[1:] {
		b = b.Union(r)
	}
	return b
}

// StdDev is the sample standard deviation. Fewer than two values give 0.
func StdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	sd, err := stats.StandardDeviationSample(values)
	if err != nil {
		return 0
	}
	return sd
}

func maxOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m, err := stats.Max(values)
	if err != nil {
		return 0
	}
	return m
}
