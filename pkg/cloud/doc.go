// Package cloud holds the serializable artifacts around a placement run:
// the input sizes manifest and the resulting layout document.
//
// # Sizes manifests
//
// A manifest lists rectangle sizes in placement order, optionally with a
// strategy and center. JSON, TOML and YAML are accepted and selected by
// file extension:
//
//	# sizes.toml
//	strategy = "frontier"
//
//	[[sizes]]
//	width = 40
//	height = 12
//
// JSON manifests are checked against [ManifestSchema] before decoding, so
// a wrong type or a misspelled key is reported with its path.
//
// [RandomSizes] generates the seeded random input used by the CLI when no
// manifest is given.
//
// # Layout documents
//
// [Layout] is the JSON form of a finished placement: strategy, center and
// the rectangles in insertion order. Layout documents are what the cache
// stores and what the render stage consumes.
package cloud
