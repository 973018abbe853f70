package cloud

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/kokodio/tdd/pkg/errors"
	"github.com/kokodio/tdd/pkg/geom"
)

func TestValidateManifestJSON(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{"minimal", `{"sizes": []}`, ""},
		{"full", `{"strategy": "spiral", "center": {"x": 1, "y": -2}, "sizes": [{"width": 4, "height": 5}]}`, ""},
		{"negative passes schema", `{"sizes": [{"width": -4, "height": 5}]}`, ""},
		{"missing sizes", `{"strategy": "frontier"}`, "sizes"},
		{"string width", `{"sizes": [{"width": "4", "height": 5}]}`, "width"},
		{"fractional height", `{"sizes": [{"width": 4, "height": 5.5}]}`, "height"},
		{"missing height", `{"sizes": [{"width": 4}]}`, "height"},
		{"unknown field", `{"sizes": [], "colour": "red"}`, "colour"},
		{"partial center", `{"center": {"x": 1}, "sizes": []}`, "y"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateManifestJSON([]byte(tt.data))
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("ValidateManifestJSON() error: %v", err)
				}
				return
			}
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Fatalf("error = %v, want INVALID_INPUT", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateManifestJSONMalformed(t *testing.T) {
	if err := ValidateManifestJSON([]byte(`{"sizes": [`)); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error = %v, want INVALID_INPUT", err)
	}
}

func TestMarshalledManifestMatchesSchema(t *testing.T) {
	center := geom.Pt(3, 4)
	m := Manifest{Strategy: "frontier", Center: &center, Sizes: []geom.Size{geom.Sz(1, 2)}}
	data, err := MarshalManifest(m, ManifestJSON)
	if err != nil {
		t.Fatal(err)
	}
	if err := ValidateManifestJSON(data); err != nil {
		t.Errorf("marshalled manifest rejected: %v", err)
	}
}

func TestManifestSchemaIsJSON(t *testing.T) {
	var v map[string]any
	if err := json.Unmarshal(ManifestSchema(), &v); err != nil {
		t.Fatalf("schema is not JSON: %v", err)
	}
	if v["title"] != "tagcloud sizes manifest" {
		t.Errorf("title = %v", v["title"])
	}
}
