package cloud

import (
	_ "embed"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"github.com/kokodio/tdd/pkg/errors"
)

// manifestSchema describes the shape of a JSON sizes manifest. Value
// checks such as negative sizes are left to [Manifest.Validate].
//
//go:embed manifest.schema.json
var manifestSchema []byte

var (
	schemaOnce     sync.Once
	compiledSchema *gojsonschema.Schema
	schemaErr      error
)

// ManifestSchema returns the JSON Schema for sizes manifests.
func ManifestSchema() []byte {
	return append([]byte(nil), manifestSchema...)
}

func loadSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiledSchema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(manifestSchema))
	})
	return compiledSchema, schemaErr
}

// ValidateManifestJSON checks raw JSON against the manifest schema and
// reports every violation in one INVALID_INPUT error.
func ValidateManifestJSON(data []byte) error {
	schema, err := loadSchema()
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "compile manifest schema")
	}
	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode json manifest")
	}
	if result.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return errors.New(errors.ErrCodeInvalidInput, "manifest does not match schema: %s", strings.Join(msgs, "; "))
}
