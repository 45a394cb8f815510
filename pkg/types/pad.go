package types

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Pad defaults applied when a PadSpec leaves a field unset.
const (
	DefaultPadColor    = "#ff6600"
	DefaultPadX        = 0.5
	DefaultPadY        = 0.5
	DefaultPadWidth    = 0.1
	DefaultPadHeight   = 0.1
	DefaultPadRequired = true
	DefaultPadPrefix   = "Pad"
)

// PadPosition is a rectangular thermal pad region on a board. Coordinates
// are fractions of the board bounds in [0,1].
type PadPosition struct {
	X        float64 `json:"x" yaml:"x"`
	Y        float64 `json:"y" yaml:"y"`
	Width    float64 `json:"width" yaml:"width"`
	Height   float64 `json:"height" yaml:"height"`
	Required bool    `json:"required" yaml:"required"`
	Name     string  `json:"name" yaml:"name"` // Unique within a variant.
	Color    string  `json:"color" yaml:"color"`
}

// Status returns "Required" or "Optional".
func (p PadPosition) Status() string {
	if p.Required {
		return "Required"
	}
	return "Optional"
}

// Validate reports ErrInvalidPad when a coordinate or size is not finite.
func (p PadPosition) Validate() error {
	return PadSpec{X: &p.X, Y: &p.Y, Width: &p.Width, Height: &p.Height}.Validate()
}

// PadSpec describes a pad to be added to a custom variant. Nil fields take
// the package defaults when the spec is resolved.
type PadSpec struct {
	X        *float64 `json:"x,omitempty" yaml:"x,omitempty"`
	Y        *float64 `json:"y,omitempty" yaml:"y,omitempty"`
	Width    *float64 `json:"width,omitempty" yaml:"width,omitempty"`
	Height   *float64 `json:"height,omitempty" yaml:"height,omitempty"`
	Required *bool    `json:"required,omitempty" yaml:"required,omitempty"`
	Name     *string  `json:"name,omitempty" yaml:"name,omitempty"`
	Color    *string  `json:"color,omitempty" yaml:"color,omitempty"`
}

// Float returns a pointer to v, for building PadSpecs inline.
func Float(v float64) *float64 { return &v }

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }

// String returns a pointer to v.
func String(v string) *string { return &v }

// Validate checks that every numeric field that is set is finite.
// Returns ErrInvalidPad on failure.
func (s PadSpec) Validate() error {
	fields := []struct {
		name string
		v    *float64
	}{
		{"x", s.X}, {"y", s.Y}, {"width", s.Width}, {"height", s.Height},
	}
	for _, f := range fields {
		if f.v == nil {
			continue
		}
		if math.IsNaN(*f.v) || math.IsInf(*f.v, 0) {
			return fmt.Errorf("%w: %s is not a finite number", ErrInvalidPad, f.name)
		}
	}
	return nil
}

// Resolve fills unset fields with defaults. index is the 0-based position of
// the pad within the variant being built and determines the default name.
func (s PadSpec) Resolve(index int) PadPosition {
	p := PadPosition{
		X:        DefaultPadX,
		Y:        DefaultPadY,
		Width:    DefaultPadWidth,
		Height:   DefaultPadHeight,
		Required: DefaultPadRequired,
		Name:     DefaultPadName(index),
		Color:    DefaultPadColor,
	}
	if s.X != nil {
		p.X = *s.X
	}
	if s.Y != nil {
		p.Y = *s.Y
	}
	if s.Width != nil {
		p.Width = *s.Width
	}
	if s.Height != nil {
		p.Height = *s.Height
	}
	if s.Required != nil {
		p.Required = *s.Required
	}
	if s.Name != nil {
		p.Name = *s.Name
	}
	if s.Color != nil {
		p.Color = *s.Color
	}
	return p
}

// DefaultPadName returns the generated name for the pad at the given 0-based
// position, e.g. "Pad1" for index 0.
func DefaultPadName(index int) string {
	return DefaultPadPrefix + strconv.Itoa(index+1)
}

// ParsePadSpec parses the comma-separated form
//
//	x,y,width,height,required[,name[,color]]
//
// Empty fields are left unset so they take defaults. The required field
// accepts true/yes/1/required and false/no/0/optional.
// Returns ErrInvalidPad when a field cannot be converted.
func ParsePadSpec(text string) (PadSpec, error) {
	parts := strings.Split(text, ",")
	if len(parts) > 7 {
		return PadSpec{}, fmt.Errorf("%w: expected at most 7 fields, got %d", ErrInvalidPad, len(parts))
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	var spec PadSpec
	numeric := []struct {
		name string
		dst  **float64
	}{
		{"x", &spec.X}, {"y", &spec.Y}, {"width", &spec.Width}, {"height", &spec.Height},
	}
	for i, f := range numeric {
		if i >= len(parts) || parts[i] == "" {
			continue
		}
		v, err := strconv.ParseFloat(parts[i], 64)
		if err != nil {
			return PadSpec{}, fmt.Errorf("%w: %s %q: %w", ErrInvalidPad, f.name, parts[i], err)
		}
		*f.dst = &v
	}

	if len(parts) > 4 && parts[4] != "" {
		req, err := parseRequired(parts[4])
		if err != nil {
			return PadSpec{}, err
		}
		spec.Required = &req
	}
	if len(parts) > 5 && parts[5] != "" {
		spec.Name = String(parts[5])
	}
	if len(parts) > 6 && parts[6] != "" {
		spec.Color = String(parts[6])
	}

	if err := spec.Validate(); err != nil {
		return PadSpec{}, err
	}
	return spec, nil
}

func parseRequired(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "true", "yes", "1", "required":
		return true, nil
	case "false", "no", "0", "optional":
		return false, nil
	}
	return false, fmt.Errorf("%w: required %q (want true/false, yes/no, 1/0, required/optional)", ErrInvalidPad, s)
}
