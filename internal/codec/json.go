package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/mesh-intelligence/padlib/pkg/types"
)

// JSONCodec reads and writes the library JSON document.
type JSONCodec struct{}

// NewJSONCodec creates a new JSON codec.
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

// Format returns the codec format identifier.
func (c *JSONCodec) Format() string {
	return FormatJSON
}

// Parse decodes a library document. Type mismatches and missing required
// keys are reported as types.ErrSchema. The input must hold exactly one
// JSON value.
func (c *JSONCodec) Parse(r io.Reader) (types.Library, error) {
	dec := json.NewDecoder(r)
	var doc map[string]*productDoc
	if err := dec.Decode(&doc); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, fmt.Errorf("%w: %w", types.ErrSchema, err)
		}
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	var extra json.RawMessage
	switch err := dec.Decode(&extra); {
	case err == nil:
		return nil, fmt.Errorf("failed to parse JSON: extra data after document at offset %d", dec.InputOffset())
	case !errors.Is(err, io.EOF):
		return nil, fmt.Errorf("failed to parse JSON: extra data after document: %w", err)
	}
	return toLibrary(doc)
}

// Export writes the library as 2-space indented JSON followed by a newline.
func (c *JSONCodec) Export(lib types.Library, w io.Writer) error {
	data, err := marshalIndent(lib)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write JSON: %w", err)
	}
	return nil
}

// marshalIndent renders the library with 2-space indentation and without
// HTML escaping. The result has no trailing newline.
func marshalIndent(lib types.Library) ([]byte, error) {
	if lib == nil {
		lib = types.Library{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(lib); err != nil {
		return nil, fmt.Errorf("failed to encode JSON: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
