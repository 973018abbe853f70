package cloud

import (
	"bytes"
	"strings"
	"testing"

	"github.com/kokodio/tdd/pkg/geom"
	"github.com/kokodio/tdd/pkg/layout"
)

func TestBuild(t *testing.T) {
	sizes := []geom.Size{geom.Sz(10, 10), geom.Sz(5, 5), geom.Sz(8, 3)}
	l, err := Build("", geom.Pt(3, 4), sizes)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if l.Strategy != layout.StrategyFrontier {
		t.Errorf("Strategy = %q, want frontier", l.Strategy)
	}
	if len(l.Rectangles) != 3 {
		t.Fatalf("len(Rectangles) = %d, want 3", len(l.Rectangles))
	}
	if l.Rectangles[0] != geom.Rect(3, 4, 10, 10) {
		t.Errorf("first rectangle = %v, want at center", l.Rectangles[0])
	}
	got := l.Sizes()
	for i := range sizes {
		if got[i] != sizes[i] {
			t.Errorf("Sizes()[%d] = %v, want %v", i, got[i], sizes[i])
		}
	}
}

func TestBuildRejectsNegative(t *testing.T) {
	if _, err := Build(layout.StrategySpiral, geom.Point{}, []geom.Size{geom.Sz(1, -1)}); err == nil {
		t.Error("Build() accepted a negative size")
	}
	if _, err := Build("zigzag", geom.Point{}, nil); err == nil {
		t.Error("Build() accepted an unknown strategy")
	}
}

func TestLayoutJSON(t *testing.T) {
	l, err := Build(layout.StrategySpiral, geom.Point{}, []geom.Size{geom.Sz(4, 4), geom.Sz(2, 2)})
	if err != nil {
		t.Fatal(err)
	}
	l.Seed = 9

	var buf bytes.Buffer
	if err := WriteLayout(l, &buf); err != nil {
		t.Fatalf("WriteLayout() error: %v", err)
	}
	got, err := ReadLayout(&buf)
	if err != nil {
		t.Fatalf("ReadLayout() error: %v", err)
	}
	if !got.Equal(l) || got.Seed != 9 {
		t.Errorf("ReadLayout() = %+v, want %+v", got, l)
	}
}

func TestMarshalEmptyLayout(t *testing.T) {
	data, err := MarshalLayout(Layout{})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"rectangles": []`) {
		t.Errorf("MarshalLayout(empty) = %s", data)
	}
}

func TestUnmarshalLayoutValidation(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr bool
	}{
		{"defaults", `{"rectangles":[]}`, false},
		{"future version", `{"version":99}`, true},
		{"bad strategy", `{"strategy":"zigzag"}`, true},
		{"negative size", `{"rectangles":[{"location":{"x":0,"y":0},"size":{"width":-1,"height":1}}]}`, true},
		{"garbage", `[`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalLayout([]byte(tt.data))
			if (err != nil) != tt.wantErr {
				t.Errorf("UnmarshalLayout(%s) error = %v, wantErr %v", tt.data, err, tt.wantErr)
			}
		})
	}
}

func TestLayoutFile(t *testing.T) {
	path := t.TempDir() + "/layout.json"
	l := Layout{Version: LayoutVersion, Strategy: layout.StrategyFrontier, Rectangles: []geom.Rectangle{geom.Rect(0, 0, 1, 1)}}
	if err := WriteLayoutFile(l, path); err != nil {
		t.Fatalf("WriteLayoutFile() error: %v", err)
	}
	got, err := ReadLayoutFile(path)
	if err != nil {
		t.Fatalf("ReadLayoutFile() error: %v", err)
	}
	if !got.Equal(l) {
		t.Errorf("ReadLayoutFile() = %+v, want %+v", got, l)
	}
}
