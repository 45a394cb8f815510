// Package library implements the product library store: the working
// catalog of product types, variants, and pad layouts, together with its
// seed defaults, custom-entry authoring, and file import/export.
//
// A Store is owned by a single session and is not safe for concurrent use.
package library

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/mesh-intelligence/padlib/internal/codec"
	"github.com/mesh-intelligence/padlib/pkg/types"
)

const exportFileMode = 0o644

// Store holds the working library. It starts empty.
type Store struct {
	library types.Library
	logger  *log.Logger
}

// NewStore creates an empty Store. A nil logger uses log.Default().
func NewStore(logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Default()
	}
	return &Store{
		library: make(types.Library),
		logger:  logger,
	}
}

// Library returns a deep copy of the working library.
func (s *Store) Library() types.Library {
	return s.library.Clone()
}

// SetLibrary replaces the working library with a deep copy of lib.
func (s *Store) SetLibrary(lib types.Library) {
	s.library = lib.Clone()
}

// UseDefaults replaces the working library with the built-in defaults.
func (s *Store) UseDefaults() {
	s.library = Defaults()
	s.logger.Info("loaded default products", "types", len(s.library), "variants", s.library.VariantCount())
}

// AddCustomProduct adds or overwrites the variant variantName under
// productType. The product type is created with width and height (mm) if it
// does not exist; an existing product type keeps its dimensions. Each pad
// spec is resolved with the package defaults. A defaulted pad name is
// Pad{n}, n being the pad's 1-based position, bumped until it is unique
// within the variant.
//
// On error the library is not modified.
func (s *Store) AddCustomProduct(productType, variantName string, width, height float64, pads []types.PadSpec) error {
	variant, err := buildCustomVariant(productType, variantName, width, height, pads)
	if err != nil {
		s.logger.Debug("add custom product failed", "type", productType, "variant", variantName, "err", err)
		return fmt.Errorf("add custom product: %w", err)
	}

	pt, ok := s.library[productType]
	if !ok {
		pt = types.NewProductType(width, height)
		s.library[productType] = pt
	}
	pt.Variants[variantName] = variant

	s.logger.Info("added custom product", "type", productType, "variant", variantName, "pads", variant.ExpectedPads)
	return nil
}

func buildCustomVariant(productType, variantName string, width, height float64, pads []types.PadSpec) (*types.ProductVariant, error) {
	if strings.TrimSpace(productType) == "" {
		return nil, fmt.Errorf("%w: product type must not be empty", types.ErrInvalidName)
	}
	if strings.TrimSpace(variantName) == "" {
		return nil, fmt.Errorf("%w: variant name must not be empty", types.ErrInvalidName)
	}
	if err := types.ValidateDimensions(width, height); err != nil {
		return nil, err
	}

	used := make(map[string]bool, len(pads))
	for i, spec := range pads {
		if err := spec.Validate(); err != nil {
			return nil, fmt.Errorf("pad %d: %w", i+1, err)
		}
		if spec.Name != nil {
			used[*spec.Name] = true
		}
	}

	layout := make([]types.PadPosition, 0, len(pads))
	for i, spec := range pads {
		p := spec.Resolve(i)
		if spec.Name == nil {
			for n := i + 1; used[p.Name]; n++ {
				p.Name = types.DefaultPadName(n)
			}
			used[p.Name] = true
		}
		layout = append(layout, p)
	}

	return types.NewVariant(variantName, fmt.Sprintf("Custom %s board", productType), layout, true), nil
}

// ExportToJSON writes the library JSON document to path, replacing any
// existing file. The parent directory must exist.
func (s *Store) ExportToJSON(path string) error {
	return s.export(path, codec.FormatJSON, false)
}

// ExportForWebApp writes the library as an ES module to path, creating
// parent directories as needed.
func (s *Store) ExportForWebApp(path string) error {
	return s.export(path, codec.FormatJS, true)
}

// Export writes the library to path in the given format. Parent directories
// are created for the web module format only.
func (s *Store) Export(path, format string) error {
	return s.export(path, format, format == codec.FormatJS)
}

func (s *Store) export(path, format string, mkdirs bool) error {
	err := s.writeExport(path, format, mkdirs)
	if err != nil {
		s.logger.Debug("export failed", "format", format, "path", path, "err", err)
		return fmt.Errorf("export %s: %w", format, err)
	}
	s.logger.Info("library exported", "format", format, "path", path)
	return nil
}

func (s *Store) writeExport(path, format string, mkdirs bool) error {
	exporter, err := codec.ExporterFor(format)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := exporter.Export(s.library, &buf); err != nil {
		return err
	}

	if mkdirs {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("creating directory: %w", err)
		}
	}
	return writeFileAtomic(path, buf.Bytes(), exportFileMode)
}

// LoadFromJSON replaces the working library with the contents of the JSON
// document at path. On any error the current library is kept.
func (s *Store) LoadFromJSON(path string) error {
	return s.Load(path, codec.FormatJSON)
}

// Load replaces the working library with the document at path, decoded
// with the importer for format. On any error the current library is kept.
func (s *Store) Load(path, format string) error {
	lib, err := readLibrary(path, format)
	if err != nil {
		s.logger.Debug("load failed", "format", format, "path", path, "err", err)
		return fmt.Errorf("load %s: %w", format, err)
	}
	s.library = lib
	s.logger.Info("library loaded", "path", path, "types", len(lib), "variants", lib.VariantCount())
	return nil
}

// Parse replaces the working library with a document read from r.
func (s *Store) Parse(r io.Reader, format string) error {
	importer, err := codec.ImporterFor(format)
	if err != nil {
		return fmt.Errorf("load %s: %w", format, err)
	}
	lib, err := importer.Parse(r)
	if err != nil {
		s.logger.Debug("parse failed", "format", format, "err", err)
		return fmt.Errorf("load %s: %w", format, err)
	}
	s.library = lib
	s.logger.Info("library loaded", "source", "stream", "types", len(lib), "variants", lib.VariantCount())
	return nil
}

func readLibrary(path, format string) (types.Library, error) {
	importer, err := codec.ImporterFor(format)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return importer.Parse(f)
}

// CreateFromCADData would derive pad positions from a CAD export.
// Always returns types.ErrNotImplemented.
func (s *Store) CreateFromCADData(path string) error {
	s.logger.Warn("CAD integration not yet implemented", "path", path)
	return fmt.Errorf("create from CAD data: %w", types.ErrNotImplemented)
}

// CreateFromImageAnalysis would detect pad positions in a board photo.
// Always returns types.ErrNotImplemented.
func (s *Store) CreateFromImageAnalysis(imagePath, boardType, variantName string) error {
	s.logger.Warn("image analysis integration not yet implemented",
		"path", imagePath, "type", boardType, "variant", variantName)
	return fmt.Errorf("create from image analysis: %w", types.ErrNotImplemented)
}
