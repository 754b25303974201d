// Package seeddata embeds the static listing dataset the store is seeded
// with at startup, together with the JSON Schema it must conform to.
package seeddata

import "embed"

//go:embed properties.json property.schema.json
var FS embed.FS

const (
	// DatasetPath is the embedded seed listing file.
	DatasetPath = "properties.json"
	// SchemaPath is the embedded schema the dataset is validated against.
	SchemaPath = "property.schema.json"
)
