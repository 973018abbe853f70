// Package pkg provides the core libraries for tagcloud rectangle placement.
//
// # Overview
//
// Tagcloud places axis-aligned rectangles one at a time around a center
// point. Each new rectangle is anchored at the oldest free corner of the
// rectangles already placed, so the cloud grows outward in rings and stays
// dense and roughly circular. The pkg directory is organized into three
// areas:
//
//  1. Engine - geometry, placement strategies and layout measures
//  2. Output - layouts, manifests and renderers
//  3. Infrastructure - pipeline, caching, sessions, errors and hooks
//
// # Architecture
//
// The typical data flow:
//
//	Sizes (manifest or seeded random)
//	         ↓
//	    [layout] package (place rectangles)
//	         ↓
//	    [cloud] package (finished layout + JSON)
//	         ↓
//	    [render] package (PNG, SVG, PDF)
//
// # Quick Start
//
// Place a handful of sizes and save a picture:
//
//	engine := layout.NewCircular()
//	for _, s := range sizes {
//	    if _, err := engine.PutNextRectangle(s); err != nil {
//	        return err
//	    }
//	}
//	img := render.NewAutoAdjust()
//	img.AddRectangles(engine.Rectangles())
//	img.SaveImage("cloud.png")
//
// # Main Packages
//
// ## Engine
//
// [geom] - Points, sizes and rectangles with half-open overlap tests.
//
// [layout] - The frontier placement engine ([layout.Circular]), its
// directions and vertices, and the Archimedean-spiral alternative behind the
// shared [layout.Layouter] interface.
//
// [metrics] - Density, centering and quadrant balance of a finished layout.
//
// ## Output
//
// [cloud] - The serializable layout, size manifests (JSON, YAML, TOML) and
// seeded random sizes.
//
// [render] - Raster renderers (auto-adjusting, content-fitting, fixed
// canvas) plus SVG and PDF output.
//
// ## Infrastructure
//
// [pipeline] - sizes → layout → render with caching, used by the CLI and the
// HTTP server alike.
//
// [cache] - Byte cache with file, Redis and null backends plus key
// derivation.
//
// [session] - Long-lived placement engines for the HTTP API, kept in memory
// or on disk.
//
// [errors] - Coded errors shared by every package.
//
// [observability] - Hooks for pipeline, cache and HTTP events.
//
// [buildinfo] - Version information set at link time.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/layout/...   # Specific package
//	go test -run Example       # Examples only
//
// [geom]: https://pkg.go.dev/github.com/kokodio/tdd/pkg/geom
// [layout]: https://pkg.go.dev/github.com/kokodio/tdd/pkg/layout
// [metrics]: https://pkg.go.dev/github.com/kokodio/tdd/pkg/metrics
// [cloud]: https://pkg.go.dev/github.com/kokodio/tdd/pkg/cloud
// [render]: https://pkg.go.dev/github.com/kokodio/tdd/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/kokodio/tdd/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/kokodio/tdd/pkg/cache
// [session]: https://pkg.go.dev/github.com/kokodio/tdd/pkg/session
// [errors]: https://pkg.go.dev/github.com/kokodio/tdd/pkg/errors
// [observability]: https://pkg.go.dev/github.com/kokodio/tdd/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/kokodio/tdd/pkg/buildinfo
package pkg
