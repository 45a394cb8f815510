// Package codec converts a product library to and from its file formats:
// the JSON document, the web front-end module, and YAML.
package codec

import (
	"fmt"
	"io"
	"slices"

	"github.com/mesh-intelligence/padlib/pkg/types"
)

// Format identifiers.
const (
	FormatJSON = "json"
	FormatJS   = "js"
	FormatYAML = "yaml"
)

// Importer parses a library document.
type Importer interface {
	Parse(r io.Reader) (types.Library, error)
	Format() string
}

// Exporter writes a library document.
type Exporter interface {
	Export(lib types.Library, w io.Writer) error
	Format() string
}

var (
	exporters = map[string]Exporter{
		FormatJSON: NewJSONCodec(),
		FormatJS:   NewWebModuleCodec(),
		FormatYAML: NewYAMLCodec(),
	}
	importers = map[string]Importer{
		FormatJSON: NewJSONCodec(),
		FormatYAML: NewYAMLCodec(),
	}
)

// ExporterFor returns the exporter registered for format.
func ExporterFor(format string) (Exporter, error) {
	e, ok := exporters[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q (valid: %v)", types.ErrUnknownFormat, format, ExportFormats())
	}
	return e, nil
}

// ImporterFor returns the importer registered for format.
func ImporterFor(format string) (Importer, error) {
	i, ok := importers[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q (valid: %v)", types.ErrUnknownFormat, format, ImportFormats())
	}
	return i, nil
}

// ExportFormats lists the registered export formats in sorted order.
func ExportFormats() []string {
	return sortedKeys(exporters)
}

// ImportFormats lists the registered import formats in sorted order.
func ImportFormats() []string {
	return sortedKeys(importers)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
