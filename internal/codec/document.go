package codec

import (
	"fmt"

	"github.com/mesh-intelligence/padlib/pkg/types"
)

// Document records mirror the exported file shape. Pointer fields mark the
// keys that must be present; a nil pointer after decoding means the key was
// missing. Unknown keys are ignored.

type productDoc struct {
	Width    *float64               `json:"width" yaml:"width"`
	Height   *float64               `json:"height" yaml:"height"`
	Variants map[string]*variantDoc `json:"variants" yaml:"variants"`
}

type variantDoc struct {
	Name         *string   `json:"name" yaml:"name"`
	Description  *string   `json:"description" yaml:"description"`
	ExpectedPads *int      `json:"expectedPads" yaml:"expectedPads"`
	PadLayout    []*padDoc `json:"padLayout" yaml:"padLayout"`
	IsCustom     *bool     `json:"isCustom" yaml:"isCustom"`
}

type padDoc struct {
	X        *float64 `json:"x" yaml:"x"`
	Y        *float64 `json:"y" yaml:"y"`
	Width    *float64 `json:"width" yaml:"width"`
	Height   *float64 `json:"height" yaml:"height"`
	Required *bool    `json:"required" yaml:"required"`
	Name     *string  `json:"name" yaml:"name"`
	Color    *string  `json:"color" yaml:"color"`
}

// toLibrary converts a decoded document into a Library, rejecting missing
// required keys and enforcing the pad count invariant.
func toLibrary(doc map[string]*productDoc) (types.Library, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: document is not an object", types.ErrSchema)
	}

	lib := make(types.Library, len(doc))
	for key, pd := range doc {
		if pd == nil {
			return nil, fmt.Errorf("%w: product type %q is null", types.ErrSchema, key)
		}
		if pd.Width == nil || pd.Height == nil {
			return nil, fmt.Errorf("%w: product type %q: missing width or height", types.ErrSchema, key)
		}
		if pd.Variants == nil {
			return nil, fmt.Errorf("%w: product type %q: missing variants", types.ErrSchema, key)
		}

		pt := types.NewProductType(*pd.Width, *pd.Height)
		for vk, vd := range pd.Variants {
			v, err := toVariant(vd)
			if err != nil {
				return nil, fmt.Errorf("variant %s/%s: %w", key, vk, err)
			}
			pt.Variants[vk] = v
		}
		lib[key] = pt
	}

	if err := lib.Validate(); err != nil {
		return nil, err
	}
	return lib, nil
}

func toVariant(vd *variantDoc) (*types.ProductVariant, error) {
	if vd == nil {
		return nil, fmt.Errorf("%w: variant is null", types.ErrSchema)
	}
	switch {
	case vd.Name == nil:
		return nil, missing("name")
	case vd.Description == nil:
		return nil, missing("description")
	case vd.ExpectedPads == nil:
		return nil, missing("expectedPads")
	case vd.PadLayout == nil:
		return nil, missing("padLayout")
	}

	pads := make([]types.PadPosition, 0, len(vd.PadLayout))
	for i, p := range vd.PadLayout {
		pad, err := toPad(p)
		if err != nil {
			return nil, fmt.Errorf("pad %d: %w", i, err)
		}
		pads = append(pads, pad)
	}

	v := &types.ProductVariant{
		Name:         *vd.Name,
		Description:  *vd.Description,
		ExpectedPads: *vd.ExpectedPads,
		PadLayout:    pads,
	}
	if vd.IsCustom != nil {
		v.IsCustom = *vd.IsCustom
	}
	return v, nil
}

func toPad(p *padDoc) (types.PadPosition, error) {
	if p == nil {
		return types.PadPosition{}, fmt.Errorf("%w: pad is null", types.ErrSchema)
	}
	switch {
	case p.X == nil:
		return types.PadPosition{}, missing("x")
	case p.Y == nil:
		return types.PadPosition{}, missing("y")
	case p.Width == nil:
		return types.PadPosition{}, missing("width")
	case p.Height == nil:
		return types.PadPosition{}, missing("height")
	case p.Required == nil:
		return types.PadPosition{}, missing("required")
	case p.Name == nil:
		return types.PadPosition{}, missing("name")
	}

	pad := types.PadPosition{
		X:        *p.X,
		Y:        *p.Y,
		Width:    *p.Width,
		Height:   *p.Height,
		Required: *p.Required,
		Name:     *p.Name,
		Color:    types.DefaultPadColor,
	}
	if p.Color != nil {
		pad.Color = *p.Color
	}
	if err := pad.Validate(); err != nil {
		return types.PadPosition{}, fmt.Errorf("%w: %w", types.ErrSchema, err)
	}
	return pad, nil
}

func missing(field string) error {
	return fmt.Errorf("%w: missing %q", types.ErrSchema, field)
}
