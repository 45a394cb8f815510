package codec

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/padlib/pkg/types"
)

// YAMLCodec reads and writes the library as YAML using the JSON key names.
type YAMLCodec struct{}

// NewYAMLCodec creates a new YAML codec.
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

// Format returns the codec format identifier.
func (c *YAMLCodec) Format() string {
	return FormatYAML
}

// Parse decodes a YAML library document.
func (c *YAMLCodec) Parse(r io.Reader) (types.Library, error) {
	var doc map[string]*productDoc
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", types.ErrSchema)
		}
		var typeErr *yaml.TypeError
		if errors.As(err, &typeErr) {
			return nil, fmt.Errorf("%w: %w", types.ErrSchema, err)
		}
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return toLibrary(doc)
}

// Export writes the library as YAML with 2-space indentation.
func (c *YAMLCodec) Export(lib types.Library, w io.Writer) error {
	if lib == nil {
		lib = types.Library{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(lib); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to flush YAML: %w", err)
	}
	return nil
}
