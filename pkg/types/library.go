package types

import (
	"fmt"
	"math"
	"slices"
	"strings"
)

// ProductVariant is a named pad layout for a product type.
// ExpectedPads always equals len(PadLayout) for variants built by
// NewVariant or accepted by a codec.
type ProductVariant struct {
	Name         string        `json:"name" yaml:"name"`
	Description  string        `json:"description" yaml:"description"`
	ExpectedPads int           `json:"expectedPads" yaml:"expectedPads"`
	PadLayout    []PadPosition `json:"padLayout" yaml:"padLayout"`
	IsCustom     bool          `json:"isCustom" yaml:"isCustom"`
}

// NewVariant builds a variant whose ExpectedPads matches the pad count.
// The pad slice is copied.
func NewVariant(name, description string, pads []PadPosition, custom bool) *ProductVariant {
	layout := make([]PadPosition, len(pads))
	copy(layout, pads)
	return &ProductVariant{
		Name:         name,
		Description:  description,
		ExpectedPads: len(layout),
		PadLayout:    layout,
		IsCustom:     custom,
	}
}

// RequiredPads returns the number of pads flagged as required.
func (v *ProductVariant) RequiredPads() int {
	n := 0
	for _, p := range v.PadLayout {
		if p.Required {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the variant.
func (v *ProductVariant) Clone() *ProductVariant {
	c := *v
	c.PadLayout = make([]PadPosition, len(v.PadLayout))
	copy(c.PadLayout, v.PadLayout)
	return &c
}

// ProductType is a board form factor. Width and Height are in millimetres.
type ProductType struct {
	Width    float64                    `json:"width" yaml:"width"`
	Height   float64                    `json:"height" yaml:"height"`
	Variants map[string]*ProductVariant `json:"variants" yaml:"variants"`
}

// NewProductType returns a product type with an empty variant map.
func NewProductType(width, height float64) *ProductType {
	return &ProductType{
		Width:    width,
		Height:   height,
		Variants: make(map[string]*ProductVariant),
	}
}

// VariantKeys returns the variant keys in sorted order.
func (pt *ProductType) VariantKeys() []string {
	keys := make([]string, 0, len(pt.Variants))
	for k := range pt.Variants {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Clone returns a deep copy of the product type.
func (pt *ProductType) Clone() *ProductType {
	c := NewProductType(pt.Width, pt.Height)
	for k, v := range pt.Variants {
		c.Variants[k] = v.Clone()
	}
	return c
}

// Library maps product-type keys to product types.
type Library map[string]*ProductType

// Keys returns the product-type keys in sorted order.
func (l Library) Keys() []string {
	keys := make([]string, 0, len(l))
	for k := range l {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Clone returns a deep copy of the library. A nil library clones to an
// empty one.
func (l Library) Clone() Library {
	c := make(Library, len(l))
	for k, pt := range l {
		c[k] = pt.Clone()
	}
	return c
}

// VariantCount returns the total number of variants across all product types.
func (l Library) VariantCount() int {
	n := 0
	for _, pt := range l {
		n += len(pt.Variants)
	}
	return n
}

// Validate checks the structural shape of the library: non-nil containers,
// non-empty keys, finite dimensions and pad geometry, and ExpectedPads
// matching the pad count. It does not judge whether coordinates make physical sense.
func (l Library) Validate() error {
	for _, key := range l.Keys() {
		pt := l[key]
		if strings.TrimSpace(key) == "" {
			return fmt.Errorf("%w: empty product type key", ErrInvalidName)
		}
		if pt == nil {
			return fmt.Errorf("%w: product type %q is null", ErrSchema, key)
		}
		if err := ValidateDimensions(pt.Width, pt.Height); err != nil {
			return fmt.Errorf("product type %q: %w", key, err)
		}
		if pt.Variants == nil {
			return fmt.Errorf("%w: product type %q has no variants object", ErrSchema, key)
		}
		for _, vk := range pt.VariantKeys() {
			v := pt.Variants[vk]
			if strings.TrimSpace(vk) == "" {
				return fmt.Errorf("%w: empty variant key in %q", ErrInvalidName, key)
			}
			if v == nil {
				return fmt.Errorf("%w: variant %s/%s is null", ErrSchema, key, vk)
			}
			if v.ExpectedPads != len(v.PadLayout) {
				return fmt.Errorf("%w: variant %s/%s expects %d pads, layout has %d",
					ErrPadCountMismatch, key, vk, v.ExpectedPads, len(v.PadLayout))
			}
			for i, p := range v.PadLayout {
				if err := p.Validate(); err != nil {
					return fmt.Errorf("variant %s/%s pad %d: %w", key, vk, i+1, err)
				}
			}
		}
	}
	return nil
}

// ValidateDimensions reports ErrInvalidDimension when a board dimension is
// not a finite number.
func ValidateDimensions(width, height float64) error {
	for _, d := range []float64{width, height} {
		if math.IsNaN(d) || math.IsInf(d, 0) {
			return fmt.Errorf("%w: %v", ErrInvalidDimension, d)
		}
	}
	return nil
}
