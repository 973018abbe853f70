package cloud

import (
	"math/rand/v2"

	"github.com/kokodio/tdd/pkg/errors"
	"github.com/kokodio/tdd/pkg/geom"
)

// Default random size parameters.
const (
	DefaultCount   = 100
	DefaultMinSize = 10
	DefaultMaxSize = 100
	DefaultSeed    = uint64(42)
)

// RandomSizes returns n sizes with width and height drawn independently
// from [lo, hi). When lo == hi every dimension is lo. The same seed always
// yields the same sequence.
func RandomSizes(seed uint64, n, lo, hi int) ([]geom.Size, error) {
	if n < 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "count %d must not be negative", n)
	}
	if err := errors.ValidateSizeRange(lo, hi); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
	draw := func() int {
		if hi == lo {
			return lo
		}
		return lo + rng.IntN(hi-lo)
	}

	sizes := make([]geom.Size, n)
	for i := range sizes {
		w := draw()
		h := draw()
		sizes[i] = geom.Sz(w, h)
	}
	return sizes, nil
}
