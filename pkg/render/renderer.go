package render

import (
	"image"
	"image/color"
	"io"
	"slices"
	"strings"

	"github.com/kokodio/tdd/pkg/errors"
	"github.com/kokodio/tdd/pkg/geom"
)

// Renderer accumulates rectangles and encodes them as a PNG image.
type Renderer interface {
	AddRectangle(r geom.Rectangle)
	AddRectangles(rects []geom.Rectangle)
	// Image draws the current state onto a fresh canvas.
	Image() *image.RGBA
	WritePNG(w io.Writer) error
	SaveImage(path string) error
	Clear()
}

// Kind names a renderer variant.
type Kind string

const (
	KindAutoAdjust     Kind = "auto"
	KindContentFitting Kind = "content"
	KindFixed          Kind = "fixed"
)

// Kinds lists every renderer variant.
var Kinds = []Kind{KindAutoAdjust, KindContentFitting, KindFixed}

// ParseKind maps a user-supplied name onto a Kind. An empty name selects
// auto-adjust.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if k == "" {
		return KindAutoAdjust, nil
	}
	if slices.Contains(Kinds, k) {
		return k, nil
	}
	return "", errors.New(errors.ErrCodeInvalidRenderer, "unknown renderer %q (must be 'auto', 'content' or 'fixed')", s)
}

// New constructs a renderer of the given kind.
func New(kind Kind, opts ...Option) (Renderer, error) {
	switch kind {
	case KindAutoAdjust, "":
		return NewAutoAdjust(opts...), nil
	case KindContentFitting:
		return NewContentFitting(opts...), nil
	case KindFixed:
		return NewFixed(opts...), nil
	}
	return nil, errors.New(errors.ErrCodeInvalidRenderer, "unknown renderer %q", kind)
}

// =============================================================================
// Options
// =============================================================================

// DefaultCanvasSize is the canvas of a Fixed renderer without WithCanvasSize.
var DefaultCanvasSize = geom.Sz(800, 800)

// Option configures a renderer or vector sink.
type Option func(*options)

type options struct {
	stroke     color.Color
	background color.Color
	labels     bool
	seed       uint64
	canvas     geom.Size
}

func newOptions(opts []Option) options {
	o := options{
		stroke: color.Black,
		seed:   42,
		canvas: DefaultCanvasSize,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithStroke sets the outline colour. ContentFitting ignores it.
func WithStroke(c color.Color) Option { return func(o *options) { o.stroke = c } }

// WithBackground fills the canvas before drawing. The default is
// transparent.
func WithBackground(c color.Color) Option { return func(o *options) { o.background = c } }

// WithLabels writes each rectangle's 1-based insertion index inside it when
// the text fits.
func WithLabels() Option { return func(o *options) { o.labels = true } }

// WithSeed seeds the ContentFitting colour sequence.
func WithSeed(seed uint64) Option { return func(o *options) { o.seed = seed } }

// WithCanvasSize sets the Fixed renderer's canvas.
func WithCanvasSize(s geom.Size) Option { return func(o *options) { o.canvas = s } }

// =============================================================================
// Shared accumulator
// =============================================================================

type accumulator struct {
	rects  []geom.Rectangle
	bounds Bounds
}

func (a *accumulator) AddRectangle(r geom.Rectangle) {
	a.bounds = a.bounds.Add(r)
	a.rects = append(a.rects, r)
}

func (a *accumulator) AddRectangles(rects []geom.Rectangle) {
	for _, r := range rects {
		a.AddRectangle(r)
	}
}

// Rectangles returns a copy of the accumulated rectangles.
func (a *accumulator) Rectangles() []geom.Rectangle { return slices.Clone(a.rects) }

// Bounds returns the tracked canvas bounds.
func (a *accumulator) Bounds() Bounds { return a.bounds }

func (a *accumulator) Clear() {
	a.rects = a.rects[:0]
	a.bounds = Bounds{}
}
