package layout

import (
	"fmt"
	"strings"

	"github.com/kokodio/tdd/pkg/errors"
	"github.com/kokodio/tdd/pkg/geom"
)

// Layouter is the placement policy shared by every engine.
type Layouter interface {
	// PutNextRectangle places a rectangle of the given size and returns it.
	// A negative dimension fails with INVALID_SIZE and leaves the engine
	// untouched.
	PutNextRectangle(size geom.Size) (geom.Rectangle, error)
	// Rectangles returns a copy of the placed rectangles in insertion order.
	Rectangles() []geom.Rectangle
	// Reset discards every placement.
	Reset()
}

// Strategy names a placement engine.
type Strategy string

const (
	StrategyFrontier Strategy = "frontier"
	StrategySpiral   Strategy = "spiral"
)

// DefaultStrategy is the engine used when none is requested.
const DefaultStrategy = StrategyFrontier

// Strategies lists the supported strategies.
var Strategies = []Strategy{StrategyFrontier, StrategySpiral}

// ParseStrategy maps a user-supplied name onto a Strategy. An empty name
// selects the default.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return DefaultStrategy, nil
	case StrategyFrontier:
		return StrategyFrontier, nil
	case StrategySpiral:
		return StrategySpiral, nil
	}
	return "", errors.New(errors.ErrCodeInvalidStrategy, "unknown strategy %q (must be 'frontier' or 'spiral')", s)
}

// Option configures an engine at construction time.
type Option func(*options)

type options struct {
	center geom.Point
}

// WithCenter moves the cluster center away from the origin.
func WithCenter(p geom.Point) Option {
	return func(o *options) { o.center = p }
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// New constructs the engine for strategy.
func New(strategy Strategy, opts ...Option) (Layouter, error) {
	switch strategy {
	case StrategyFrontier, "":
		return NewCircular(opts...), nil
	case StrategySpiral:
		return NewSpiral(opts...), nil
	}
	return nil, errors.New(errors.ErrCodeInvalidStrategy, "unknown strategy %q", strategy)
}

// PlaceAll feeds sizes to l in order and returns the rectangles placed by
// this call. On failure the error names the offending index; rectangles
// placed before it stay in l.
func PlaceAll(l Layouter, sizes []geom.Size) ([]geom.Rectangle, error) {
	out := make([]geom.Rectangle, 0, len(sizes))
	for i, size := range sizes {
		rect, err := l.PutNextRectangle(size)
		if err != nil {
			return out, fmt.Errorf("place size #%d %v: %w", i, size, err)
		}
		out = append(out, rect)
	}
	return out, nil
}

func overlapsAny(candidate geom.Rectangle, placed []geom.Rectangle) bool {
	for _, r := range placed {
		if candidate.Overlaps(r) {
			return true
		}
	}
	return false
}
