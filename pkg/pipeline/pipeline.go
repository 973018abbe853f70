// Package pipeline provides the sizes → layout → render pipeline shared by
// the CLI and the HTTP API.
//
// By centralizing this logic both entry points validate options, cache
// results and report timings the same way.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Sizes: take explicit sizes or draw seeded random ones
//  2. Layout: place every size with the selected strategy
//  3. Render: encode the layout as PNG, SVG, PDF or JSON
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Count:   100,
//	    Formats: []string{"png"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	png := result.Artifacts["png"]
//
// Run individual stages:
//
//	l, hit, err := runner.ComputeLayout(ctx, opts)
//	artifacts, hit, err := runner.Render(ctx, l, opts)
package pipeline

import (
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/kokodio/tdd/pkg/cache"
	"github.com/kokodio/tdd/pkg/cloud"
	"github.com/kokodio/tdd/pkg/errors"
	"github.com/kokodio/tdd/pkg/geom"
	"github.com/kokodio/tdd/pkg/layout"
	"github.com/kokodio/tdd/pkg/metrics"
	"github.com/kokodio/tdd/pkg/render"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultCount is the number of random sizes drawn when none are given.
	DefaultCount = cloud.DefaultCount

	// DefaultMinSize is the inclusive lower bound for random dimensions.
	DefaultMinSize = cloud.DefaultMinSize

	// DefaultMaxSize is the exclusive upper bound for random dimensions.
	DefaultMaxSize = cloud.DefaultMaxSize

	// DefaultSeed is the default random seed for reproducibility.
	DefaultSeed = cloud.DefaultSeed

	// MaxCount caps random generation so a typo cannot allocate gigabytes.
	MaxCount = 100_000
)

// Format constants for output formats.
const (
	FormatPNG  = "png"
	FormatSVG  = "svg"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatPNG:  true,
	FormatSVG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Sizes options. Explicit Sizes win over random generation.
	Count   int         `json:"count,omitempty"`
	MinSize int         `json:"min_size,omitempty"`
	MaxSize int         `json:"max_size,omitempty"`
	Seed    uint64      `json:"seed,omitempty"`
	Sizes   []geom.Size `json:"sizes,omitempty"`

	// Layout options
	Strategy string `json:"strategy,omitempty"`
	CenterX  int    `json:"center_x,omitempty"`
	CenterY  int    `json:"center_y,omitempty"`
	Refresh  bool   `json:"refresh,omitempty"`

	// Render options
	Renderer string   `json:"renderer,omitempty"`
	Formats  []string `json:"formats,omitempty"`
	Labels   bool     `json:"labels,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
	// SnapshotDir receives a PNG of the partial layout when placement fails.
	SnapshotDir string `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Layout is the finished placement.
	Layout cloud.Layout

	// LayoutHash is the content hash of the serialized layout.
	LayoutHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Metrics summarizes the shape of the layout.
	Metrics metrics.Summary

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Rectangles int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: png, svg, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks every field and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetSizeDefaults fills in the random generation parameters.
// A zero range means "not set"; the default range is used.
func (o *Options) SetSizeDefaults() {
	if len(o.Sizes) > 0 {
		return
	}
	if o.Count == 0 {
		o.Count = DefaultCount
	}
	if o.MinSize == 0 && o.MaxSize == 0 {
		o.MinSize, o.MaxSize = DefaultMinSize, DefaultMaxSize
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetSizeDefaults()
	o.setLogger()

	strategy, err := layout.ParseStrategy(o.Strategy)
	if err != nil {
		return err
	}
	o.Strategy = string(strategy)

	for i, s := range o.Sizes {
		if err := errors.ValidateSize(s.Width, s.Height); err != nil {
			return fmt.Errorf("size #%d: %w", i, err)
		}
	}
	if len(o.Sizes) > 0 {
		return nil
	}
	if o.Count < 0 || o.Count > MaxCount {
		return errors.New(errors.ErrCodeInvalidInput, "count %d out of range [0, %d]", o.Count, MaxCount)
	}
	return errors.ValidateSizeRange(o.MinSize, o.MaxSize)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatPNG}
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	o.setLogger()
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	kind, err := render.ParseKind(o.Renderer)
	if err != nil {
		return err
	}
	o.Renderer = string(kind)
	o.Formats = uniqueFormats(o.Formats)
	return ValidateFormats(o.Formats)
}

// uniqueFormats drops repeated formats, keeping first-seen order.
func uniqueFormats(formats []string) []string {
	out := make([]string, 0, len(formats))
	for _, f := range formats {
		if !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Center returns the configured cluster center.
func (o *Options) Center() geom.Point {
	return geom.Pt(o.CenterX, o.CenterY)
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Strategy: o.Strategy,
		CenterX:  o.CenterX,
		CenterY:  o.CenterY,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
// Only PNG output depends on the renderer, and only the content-fitting
// renderer uses the seed.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format, Labels: o.Labels}
	if format == FormatPNG {
		k.Renderer = o.Renderer
		if o.Renderer == string(render.KindContentFitting) {
			k.Seed = o.Seed
		}
	}
	return k
}
