package layout

import (
	"slices"

	"github.com/kokodio/tdd/pkg/errors"
	"github.com/kokodio/tdd/pkg/geom"
)

// Circular is the frontier-vertex placement engine.
//
// The zero value is not usable; construct with [NewCircular].
type Circular struct {
	center     geom.Point
	rectangles []geom.Rectangle
	frontier   frontier
	direction  Direction
}

// NewCircular returns an empty engine centered on the origin unless
// [WithCenter] says otherwise.
func NewCircular(opts ...Option) *Circular {
	o := buildOptions(opts)
	return &Circular{center: o.center, direction: Up}
}

// Center returns the configured cluster center.
func (c *Circular) Center() geom.Point { return c.center }

// Direction returns the current engine-wide growth direction.
func (c *Circular) Direction() Direction { return c.direction }

// Frontier returns the vertex queue counters.
func (c *Circular) Frontier() FrontierStats { return c.frontier.stats() }

// Len returns the number of placed rectangles.
func (c *Circular) Len() int { return len(c.rectangles) }

// PutNextRectangle places a rectangle of the given size.
//
// The first rectangle goes to the center. Every later one is anchored at
// the first queued vertex whose candidate does not overlap a placed
// rectangle; rejected vertices are dropped. The new rectangle's vertices
// are queued starting from the current direction, which then rotates.
//
// If the queue runs dry the call fails with EXHAUSTED_FRONTIER and the
// vertices it consumed are returned to the queue.
func (c *Circular) PutNextRectangle(size geom.Size) (geom.Rectangle, error) {
	if err := errors.ValidateSize(size.Width, size.Height); err != nil {
		return geom.Rectangle{}, err
	}

	if len(c.rectangles) == 0 {
		rect := geom.Rectangle{Location: c.center, Size: size}
		c.enqueue(rect)
		c.rectangles = append(c.rectangles, rect)
		return rect, nil
	}

	rect, err := c.nextFree(size)
	if err != nil {
		return geom.Rectangle{}, err
	}

	c.rectangles = append(c.rectangles, rect)
	c.enqueue(rect)
	c.direction = c.direction.Next()
	return rect, nil
}

// enqueue queues the four vertices of rect starting from the current
// direction.
func (c *Circular) enqueue(rect geom.Rectangle) {
	vs := Vertices(rect, c.direction)
	c.frontier.push(vs[:]...)
}

func (c *Circular) nextFree(size geom.Size) (geom.Rectangle, error) {
	var rejected []Vertex
	for {
		v, ok := c.frontier.pop()
		if !ok {
			c.frontier.unpop(rejected)
			return geom.Rectangle{}, errors.New(errors.ErrCodeExhaustedFrontier,
				"no vertex fits size %v after %d candidates (%d rectangles placed)",
				size, len(rejected), len(c.rectangles))
		}
		candidate := v.Candidate(size)
		if !overlapsAny(candidate, c.rectangles) {
			return candidate, nil
		}
		rejected = append(rejected, v)
	}
}

// Rectangles returns a copy of the placed rectangles in insertion order.
func (c *Circular) Rectangles() []geom.Rectangle {
	return slices.Clone(c.rectangles)
}

// Reset returns the engine to its freshly constructed state. The center
// is kept.
func (c *Circular) Reset() {
	c.rectangles = c.rectangles[:0]
	c.frontier.clear()
	c.direction = Up
}

var _ Layouter = (*Circular)(nil)
