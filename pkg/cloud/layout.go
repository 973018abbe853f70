package cloud

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/kokodio/tdd/pkg/geom"
	"github.com/kokodio/tdd/pkg/layout"
)

// LayoutVersion is the current layout document version.
const LayoutVersion = 1

// Layout is a finished placement.
type Layout struct {
	Version    int              `json:"version"`
	Strategy   layout.Strategy  `json:"strategy"`
	Center     geom.Point       `json:"center"`
	Seed       uint64           `json:"seed,omitempty"`
	Rectangles []geom.Rectangle `json:"rectangles"`
}

// Build feeds sizes to a fresh engine of the given strategy and captures
// the result.
func Build(strategy layout.Strategy, center geom.Point, sizes []geom.Size) (Layout, error) {
	engine, err := layout.New(strategy, layout.WithCenter(center))
	if err != nil {
		return Layout{}, err
	}
	if _, err := layout.PlaceAll(engine, sizes); err != nil {
		return Layout{}, err
	}
	if strategy == "" {
		strategy = layout.DefaultStrategy
	}
	return Layout{
		Version:    LayoutVersion,
		Strategy:   strategy,
		Center:     center,
		Rectangles: engine.Rectangles(),
	}, nil
}

// Sizes returns the sizes of the placed rectangles in order.
func (l Layout) Sizes() []geom.Size {
	out := make([]geom.Size, len(l.Rectangles))
	for i, r := range l.Rectangles {
		out[i] = r.Size
	}
	return out
}

// Equal reports whether two layouts describe the same placement.
func (l Layout) Equal(o Layout) bool {
	return l.Strategy == o.Strategy && l.Center == o.Center && slices.Equal(l.Rectangles, o.Rectangles)
}

// MarshalLayout encodes l as indented JSON.
func MarshalLayout(l Layout) ([]byte, error) {
	if l.Rectangles == nil {
		l.Rectangles = []geom.Rectangle{}
	}
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout decodes and sanity-checks a layout document.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}
	if l.Version == 0 {
		l.Version = LayoutVersion
	}
	if l.Version > LayoutVersion {
		return Layout{}, fmt.Errorf("layout version %d is newer than supported %d", l.Version, LayoutVersion)
	}
	if l.Strategy == "" {
		l.Strategy = layout.DefaultStrategy
	}
	if _, err := layout.ParseStrategy(string(l.Strategy)); err != nil {
		return Layout{}, err
	}
	for i, r := range l.Rectangles {
		if r.Size.IsNegative() {
			return Layout{}, fmt.Errorf("rectangle #%d has negative size %v", i, r.Size)
		}
	}
	return l, nil
}

// WriteLayout writes l as JSON to w.
func WriteLayout(l Layout, w io.Writer) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

// ReadLayout reads a JSON layout from r.
func ReadLayout(r io.Reader) (Layout, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Layout{}, fmt.Errorf("read layout: %w", err)
	}
	return UnmarshalLayout(data)
}

// WriteLayoutFile writes l to path.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

// ReadLayoutFile reads the layout at path.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
