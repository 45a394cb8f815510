package types

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPadSpecResolve(t *testing.T) {
	t.Run("empty spec takes every default", func(t *testing.T) {
		got := PadSpec{}.Resolve(0)
		assert.Equal(t, PadPosition{
			X: 0.5, Y: 0.5, Width: 0.1, Height: 0.1,
			Required: true, Name: "Pad1", Color: "#ff6600",
		}, got)
	})

	t.Run("default name follows position", func(t *testing.T) {
		assert.Equal(t, "Pad3", PadSpec{}.Resolve(2).Name)
	})

	t.Run("set fields override defaults", func(t *testing.T) {
		spec := PadSpec{
			X:        Float(0.2),
			Y:        Float(0.8),
			Width:    Float(0.15),
			Height:   Float(0.12),
			Required: Bool(false),
			Name:     String("VRM"),
			Color:    String("#ffff00"),
		}
		assert.Equal(t, PadPosition{
			X: 0.2, Y: 0.8, Width: 0.15, Height: 0.12,
			Required: false, Name: "VRM", Color: "#ffff00",
		}, spec.Resolve(5))
	})

	t.Run("zero values are kept, not defaulted", func(t *testing.T) {
		got := PadSpec{X: Float(0), Required: Bool(false)}.Resolve(0)
		assert.Equal(t, 0.0, got.X)
		assert.False(t, got.Required)
	})
}

func TestPadSpecValidate(t *testing.T) {
	assert.NoError(t, PadSpec{}.Validate())
	assert.NoError(t, PadSpec{X: Float(1.5)}.Validate(), "range is not checked")
	assert.ErrorIs(t, PadSpec{Y: Float(math.NaN())}.Validate(), ErrInvalidPad)
	assert.ErrorIs(t, PadSpec{Width: Float(math.Inf(1))}.Validate(), ErrInvalidPad)
}

func TestParsePadSpec(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    PadPosition
		wantErr error
	}{
		{
			name:  "full record",
			input: "0.2, 0.2, 0.15, 0.15, true, CPU",
			want:  PadPosition{X: 0.2, Y: 0.2, Width: 0.15, Height: 0.15, Required: true, Name: "CPU", Color: DefaultPadColor},
		},
		{
			name:  "optional with color",
			input: "0.5,0.8,0.12,0.12,optional,Optional,#ffff00",
			want:  PadPosition{X: 0.5, Y: 0.8, Width: 0.12, Height: 0.12, Required: false, Name: "Optional", Color: "#ffff00"},
		},
		{
			name:  "empty fields default",
			input: ",,,,,Heatsink",
			want:  PadPosition{X: 0.5, Y: 0.5, Width: 0.1, Height: 0.1, Required: true, Name: "Heatsink", Color: DefaultPadColor},
		},
		{
			name:  "coordinates only",
			input: "0.1,0.9",
			want:  PadPosition{X: 0.1, Y: 0.9, Width: 0.1, Height: 0.1, Required: true, Name: "Pad1", Color: DefaultPadColor},
		},
		{
			name:  "required enumerant is case insensitive",
			input: "0.1,0.1,0.1,0.1,NO,X",
			want:  PadPosition{X: 0.1, Y: 0.1, Width: 0.1, Height: 0.1, Required: false, Name: "X", Color: DefaultPadColor},
		},
		{name: "bad number", input: "abc,0.1,0.1,0.1,true,X", wantErr: ErrInvalidPad},
		{name: "bad enumerant", input: "0.1,0.1,0.1,0.1,maybe,X", wantErr: ErrInvalidPad},
		{name: "non-finite number", input: "NaN,0.1,0.1,0.1,true,X", wantErr: ErrInvalidPad},
		{name: "too many fields", input: "1,2,3,4,true,a,b,c", wantErr: ErrInvalidPad},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := ParsePadSpec(tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, spec.Resolve(0))
		})
	}
}

func TestPadPositionStatus(t *testing.T) {
	assert.Equal(t, "Required", PadPosition{Required: true}.Status())
	assert.Equal(t, "Optional", PadPosition{}.Status())
}
