package codec

import (
	"bufio"
	"fmt"
	"io"

	"github.com/mesh-intelligence/padlib/pkg/types"
)

// LibraryIdentifier is the binding the web front-end imports.
const LibraryIdentifier = "PRODUCT_LIBRARY"

const webModuleBanner = "// Auto-generated Product Library\n// Generated by padlib\n\n"

// WebModuleCodec writes the library as an ES module for the web front-end.
// The module binds LibraryIdentifier to the JSON document and default
// exports it.
type WebModuleCodec struct{}

// NewWebModuleCodec creates a new web module codec.
func NewWebModuleCodec() *WebModuleCodec {
	return &WebModuleCodec{}
}

// Format returns the codec format identifier.
func (c *WebModuleCodec) Format() string {
	return FormatJS
}

// Export writes the banner, the named export, and the default export.
func (c *WebModuleCodec) Export(lib types.Library, w io.Writer) error {
	payload, err := marshalIndent(lib)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	bw.WriteString(webModuleBanner)
	fmt.Fprintf(bw, "export const %s = ", LibraryIdentifier)
	bw.Write(payload)
	fmt.Fprintf(bw, ";\n\nexport default %s;\n", LibraryIdentifier)
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write web module: %w", err)
	}
	return nil
}
