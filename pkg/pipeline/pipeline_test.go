package pipeline

import (
	"slices"
	"testing"

	"github.com/kokodio/tdd/pkg/errors"
	"github.com/kokodio/tdd/pkg/geom"
	"github.com/kokodio/tdd/pkg/layout"
	"github.com/kokodio/tdd/pkg/render"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"png", false},
		{"svg", false},
		{"pdf", false},
		{"json", false},
		{"gif", true},
		{"PNG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s, want INVALID_FORMAT", tt.format, errors.GetCode(err))
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Empty options should pass: %v", err)
	}

	if opts.Count != DefaultCount {
		t.Errorf("Count = %d, want %d", opts.Count, DefaultCount)
	}
	if opts.MinSize != DefaultMinSize || opts.MaxSize != DefaultMaxSize {
		t.Errorf("range = [%d, %d), want [%d, %d)", opts.MinSize, opts.MaxSize, DefaultMinSize, DefaultMaxSize)
	}
	if opts.Seed != DefaultSeed {
		t.Errorf("Seed = %d, want %d", opts.Seed, DefaultSeed)
	}
	if opts.Strategy != string(layout.DefaultStrategy) {
		t.Errorf("Strategy = %q, want %q", opts.Strategy, layout.DefaultStrategy)
	}
	if opts.Renderer != string(render.KindAutoAdjust) {
		t.Errorf("Renderer = %q, want %q", opts.Renderer, render.KindAutoAdjust)
	}
	if !slices.Equal(opts.Formats, []string{FormatPNG}) {
		t.Errorf("Formats = %v, want [png]", opts.Formats)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discarding logger")
	}
}

func TestOptionsExplicitSizesSkipRandomDefaults(t *testing.T) {
	opts := Options{Sizes: []geom.Size{geom.Sz(1, 2)}}
	if err := opts.ValidateForLayout(); err != nil {
		t.Fatal(err)
	}
	if opts.Count != 0 || opts.MinSize != 0 || opts.MaxSize != 0 {
		t.Errorf("random parameters set despite explicit sizes: %+v", opts)
	}
}

func TestOptionsValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"strategy", Options{Strategy: "zigzag"}, errors.ErrCodeInvalidStrategy},
		{"renderer", Options{Renderer: "oil"}, errors.ErrCodeInvalidRenderer},
		{"format", Options{Formats: []string{"png", "gif"}}, errors.ErrCodeInvalidFormat},
		{"negative size", Options{Sizes: []geom.Size{geom.Sz(1, 1), geom.Sz(-1, 4)}}, errors.ErrCodeInvalidSize},
		{"negative count", Options{Count: -1}, errors.ErrCodeInvalidInput},
		{"huge count", Options{Count: MaxCount + 1}, errors.ErrCodeInvalidInput},
		{"inverted range", Options{MinSize: 50, MaxSize: 10}, errors.ErrCodeInvalidSize},
		{"negative min", Options{MinSize: -5, MaxSize: 10}, errors.ErrCodeInvalidSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Strategy: "SPIRAL", Formats: []string{"svg"}}

	// First call
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}

	originalStrategy := opts.Strategy
	originalCount := opts.Count

	// Second call should be idempotent
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}

	if opts.Strategy != originalStrategy {
		t.Error("Strategy changed on second call")
	}
	if opts.Count != originalCount {
		t.Error("Count changed on second call")
	}
	if opts.Strategy != string(layout.StrategySpiral) {
		t.Errorf("Strategy = %q, want normalized %q", opts.Strategy, layout.StrategySpiral)
	}
}

func TestOptionsFormatsDeduplicated(t *testing.T) {
	opts := Options{Formats: []string{"svg", "png", "svg", "json", "png"}}
	if err := opts.ValidateForRender(); err != nil {
		t.Fatal(err)
	}
	if want := []string{"svg", "png", "json"}; !slices.Equal(opts.Formats, want) {
		t.Errorf("Formats = %v, want %v", opts.Formats, want)
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := Options{Renderer: "content", Seed: 7, Labels: true}

	png := opts.ArtifactKeyOpts(FormatPNG)
	if png.Renderer != "content" || png.Seed != 7 || !png.Labels {
		t.Errorf("png key opts = %+v", png)
	}

	svg := opts.ArtifactKeyOpts(FormatSVG)
	if svg.Renderer != "" || svg.Seed != 0 {
		t.Errorf("svg key opts should not depend on renderer or seed: %+v", svg)
	}

	opts.Renderer = "auto"
	if k := opts.ArtifactKeyOpts(FormatPNG); k.Seed != 0 {
		t.Errorf("auto renderer key should not depend on seed: %+v", k)
	}
}

func TestResolveSizes(t *testing.T) {
	explicit := []geom.Size{geom.Sz(3, 4), geom.Sz(5, 6)}
	got, err := ResolveSizes(Options{Sizes: explicit})
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got, explicit) {
		t.Errorf("ResolveSizes = %v, want %v", got, explicit)
	}
	got[0] = geom.Sz(0, 0)
	if explicit[0] != geom.Sz(3, 4) {
		t.Error("ResolveSizes returned the caller's slice")
	}

	a, err := ResolveSizes(Options{Count: 20, Seed: 9})
	if err != nil {
		t.Fatal(err)
	}
	b, _ := ResolveSizes(Options{Count: 20, Seed: 9})
	if len(a) != 20 || !slices.Equal(a, b) {
		t.Errorf("random sizes not reproducible: %v vs %v", a, b)
	}
	for _, s := range a {
		if s.Width < DefaultMinSize || s.Width >= DefaultMaxSize || s.Height < DefaultMinSize || s.Height >= DefaultMaxSize {
			t.Errorf("size %v outside default range", s)
		}
	}
}
