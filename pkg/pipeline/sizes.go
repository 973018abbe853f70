package pipeline

import (
	"slices"

	"github.com/kokodio/tdd/pkg/cloud"
	"github.com/kokodio/tdd/pkg/geom"
)

// ResolveSizes returns the sizes the layout stage will place: the explicit
// list if one was given, otherwise Count seeded random sizes.
func ResolveSizes(opts Options) ([]geom.Size, error) {
	if len(opts.Sizes) > 0 {
		return slices.Clone(opts.Sizes), nil
	}
	opts.SetSizeDefaults()
	return cloud.RandomSizes(opts.Seed, opts.Count, opts.MinSize, opts.MaxSize)
}
