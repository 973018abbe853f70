package cloud

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/kokodio/tdd/pkg/errors"
	"github.com/kokodio/tdd/pkg/geom"
)

// Manifest is an ordered list of sizes to place.
type Manifest struct {
	Strategy string      `json:"strategy,omitempty" yaml:"strategy,omitempty" toml:"strategy,omitempty"`
	Center   *geom.Point `json:"center,omitempty" yaml:"center,omitempty" toml:"center,omitempty"`
	Sizes    []geom.Size `json:"sizes" yaml:"sizes" toml:"sizes"`
}

// ManifestFormat names a manifest encoding.
type ManifestFormat string

const (
	ManifestJSON ManifestFormat = "json"
	ManifestTOML ManifestFormat = "toml"
	ManifestYAML ManifestFormat = "yaml"
)

// DetectManifestFormat picks the encoding from a file extension.
func DetectManifestFormat(path string) (ManifestFormat, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ManifestJSON, nil
	case ".toml":
		return ManifestTOML, nil
	case ".yaml", ".yml":
		return ManifestYAML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported manifest extension %q (want .json, .toml, .yaml)", filepath.Ext(path))
}

// ParseManifest decodes data in the given format and validates every size.
// JSON input is checked against [ManifestSchema] first.
func ParseManifest(data []byte, format ManifestFormat) (Manifest, error) {
	var m Manifest
	var err error
	switch format {
	case ManifestJSON:
		if err := ValidateManifestJSON(data); err != nil {
			return Manifest{}, err
		}
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&m)
	case ManifestTOML:
		_, err = toml.Decode(string(data), &m)
	case ManifestYAML:
		err = yaml.Unmarshal(data, &m)
	default:
		return Manifest{}, errors.New(errors.ErrCodeInvalidFormat, "unsupported manifest format %q", format)
	}
	if err != nil {
		return Manifest{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode %s manifest", format)
	}
	if err := m.Validate(); err != nil {
		return Manifest{}, err
	}
	return m, nil
}

// ReadManifest loads the manifest at path.
func ReadManifest(path string) (Manifest, error) {
	format, err := DetectManifestFormat(path)
	if err != nil {
		return Manifest{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("read %s: %w", path, err)
	}
	m, err := ParseManifest(data, format)
	if err != nil {
		return Manifest{}, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Validate rejects negative sizes, naming the first offending index.
func (m Manifest) Validate() error {
	for i, s := range m.Sizes {
		if err := errors.ValidateSize(s.Width, s.Height); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidSize, err, "size #%d", i)
		}
	}
	return nil
}

// MarshalManifest encodes m in the given format.
func MarshalManifest(m Manifest, format ManifestFormat) ([]byte, error) {
	switch format {
	case ManifestJSON:
		return json.MarshalIndent(m, "", "  ")
	case ManifestTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(m); err != nil {
			return nil, fmt.Errorf("encode toml manifest: %w", err)
		}
		return buf.Bytes(), nil
	case ManifestYAML:
		return yaml.Marshal(m)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported manifest format %q", format)
}
