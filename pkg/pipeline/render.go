package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/kokodio/tdd/pkg/cloud"
	"github.com/kokodio/tdd/pkg/errors"
	"github.com/kokodio/tdd/pkg/observability"
	"github.com/kokodio/tdd/pkg/render"
)

// RenderLayout generates output artifacts in the requested formats.
func RenderLayout(ctx context.Context, l cloud.Layout, opts Options) (map[string][]byte, error) {
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts, err := renderFormats(l, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	return artifacts, err
}

func renderFormats(l cloud.Layout, opts Options) (map[string][]byte, error) {
	renderOpts := buildRenderOptions(opts)
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatPNG:
			data, err = renderPNG(l, opts, renderOpts)
		case FormatSVG:
			data = render.RenderSVG(l.Rectangles, renderOpts...)
		case FormatPDF:
			data, err = render.RenderPDF(l.Rectangles, renderOpts...)
		case FormatJSON:
			data, err = cloud.MarshalLayout(l)
		default:
			return nil, errors.New(errors.ErrCodeUnsupported, "unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

func renderPNG(l cloud.Layout, opts Options, renderOpts []render.Option) ([]byte, error) {
	kind, err := render.ParseKind(opts.Renderer)
	if err != nil {
		return nil, err
	}
	r, err := render.New(kind, renderOpts...)
	if err != nil {
		return nil, err
	}
	r.AddRectangles(l.Rectangles)
	return render.PNG(r)
}

// buildRenderOptions maps pipeline options onto renderer options.
func buildRenderOptions(opts Options) []render.Option {
	var out []render.Option
	if opts.Labels {
		out = append(out, render.WithLabels())
	}
	if opts.Seed != 0 {
		out = append(out, render.WithSeed(opts.Seed))
	}
	return out
}
