package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/kokodio/tdd/pkg/cloud"
	"github.com/kokodio/tdd/pkg/geom"
	"github.com/kokodio/tdd/pkg/layout"
	"github.com/kokodio/tdd/pkg/observability"
	"github.com/kokodio/tdd/pkg/render"
)

// =============================================================================
// Layout Generation
// =============================================================================

// GenerateLayout places sizes with the strategy and center in opts.
//
// On failure the rectangles placed so far are written to opts.SnapshotDir
// when it is set, so a broken run can be inspected visually.
func GenerateLayout(ctx context.Context, sizes []geom.Size, opts Options) (cloud.Layout, error) {
	opts.setLogger()
	strategy, err := layout.ParseStrategy(opts.Strategy)
	if err != nil {
		return cloud.Layout{}, err
	}

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, string(strategy), len(sizes))
	start := time.Now()

	engine, err := layout.New(strategy, layout.WithCenter(opts.Center()))
	if err != nil {
		return cloud.Layout{}, err
	}
	placed, err := placeAll(ctx, engine, sizes)
	hooks.OnLayoutComplete(ctx, string(strategy), len(placed), time.Since(start), err)
	if err != nil {
		if opts.SnapshotDir != "" {
			saveSnapshot(opts, strategy, placed)
		}
		return cloud.Layout{}, err
	}

	return cloud.Layout{
		Version:    cloud.LayoutVersion,
		Strategy:   strategy,
		Center:     opts.Center(),
		Seed:       layoutSeed(opts),
		Rectangles: placed,
	}, nil
}

// placeAll places sizes in order, checking for cancellation as it goes.
func placeAll(ctx context.Context, l layout.Layouter, sizes []geom.Size) ([]geom.Rectangle, error) {
	for i, size := range sizes {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return l.Rectangles(), err
			}
		}
		if _, err := l.PutNextRectangle(size); err != nil {
			return l.Rectangles(), fmt.Errorf("place size #%d %v: %w", i, size, err)
		}
	}
	return l.Rectangles(), nil
}

// layoutSeed records the seed only when the sizes were generated from it.
func layoutSeed(opts Options) uint64 {
	if len(opts.Sizes) > 0 {
		return 0
	}
	return opts.Seed
}

// saveSnapshot writes the partial layout as <strategy>-<n>.png.
func saveSnapshot(opts Options, strategy layout.Strategy, rects []geom.Rectangle) {
	name := fmt.Sprintf("%s-%d.png", strategy, len(rects))
	path := filepath.Join(opts.SnapshotDir, name)

	r := render.NewAutoAdjust(render.WithLabels())
	r.AddRectangles(rects)
	if err := r.SaveImage(path); err != nil {
		opts.Logger.Warn("failed to save layout snapshot", "path", path, "error", err)
		return
	}
	opts.Logger.Info("saved layout snapshot", "path", path, "rectangles", len(rects))
}
