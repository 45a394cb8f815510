package codec

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/padlib/pkg/types"
)

func testLibrary() types.Library {
	pt := types.NewProductType(143.75, 74)
	pt.Variants["MXC-Standard"] = types.NewVariant("MXC Standard", "Standard MXC/XMC board", []types.PadPosition{
		{X: 0.2, Y: 0.2, Width: 0.15, Height: 0.15, Required: true, Name: "CPU", Color: types.DefaultPadColor},
		{X: 0.5, Y: 0.8, Width: 0.12, Height: 0.12, Required: false, Name: "Optional", Color: "#ffff00"},
	}, false)
	custom := types.NewProductType(50, 50)
	custom.Variants["V1"] = types.NewVariant("V1", "Custom <R&D> board", nil, true)
	return types.Library{"MXC/XMC": pt, "R&D": custom}
}

func TestRegistry(t *testing.T) {
	assert.Equal(t, []string{"js", "json", "yaml"}, ExportFormats())
	assert.Equal(t, []string{"json", "yaml"}, ImportFormats())

	e, err := ExporterFor("js")
	require.NoError(t, err)
	assert.Equal(t, FormatJS, e.Format())

	_, err = ExporterFor("xml")
	assert.ErrorIs(t, err, types.ErrUnknownFormat)
	_, err = ImporterFor("js")
	assert.ErrorIs(t, err, types.ErrUnknownFormat)
}

func TestJSONExportShape(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONCodec().Export(testLibrary(), &buf))

	out := buf.String()
	assert.True(t, strings.HasSuffix(out, "}\n"))
	assert.Contains(t, out, "\n  \"MXC/XMC\": {\n    \"width\": 143.75,\n    \"height\": 74,")
	assert.Contains(t, out, `"R&D"`, "HTML characters are not escaped")
	assert.Contains(t, out, `"padLayout": []`)

	var raw map[string]map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))
	variant := raw["MXC/XMC"]["variants"].(map[string]any)["MXC-Standard"].(map[string]any)
	assert.ElementsMatch(t,
		[]string{"name", "description", "expectedPads", "padLayout", "isCustom"},
		keysOf(variant))
	pad := variant["padLayout"].([]any)[0].(map[string]any)
	assert.ElementsMatch(t,
		[]string{"x", "y", "width", "height", "required", "name", "color"},
		keysOf(pad))
}

func TestJSONExportNilLibrary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONCodec().Export(nil, &buf))
	assert.Equal(t, "{}\n", buf.String())
}

func TestJSONRoundTrip(t *testing.T) {
	lib := testLibrary()
	var buf bytes.Buffer
	require.NoError(t, NewJSONCodec().Export(lib, &buf))

	got, err := NewJSONCodec().Parse(&buf)
	require.NoError(t, err)
	assert.Equal(t, lib, got)
}

func TestJSONParseDefaults(t *testing.T) {
	doc := `{"6U": {"width": 160, "height": 233, "variants": {"V": {
		"name": "V", "description": "d", "expectedPads": 1,
		"padLayout": [{"x": 0.1, "y": 0.2, "width": 0.3, "height": 0.4, "required": false, "name": "A"}]
	}}}}`
	lib, err := NewJSONCodec().Parse(strings.NewReader(doc))
	require.NoError(t, err)

	v := lib["6U"].Variants["V"]
	assert.False(t, v.IsCustom)
	assert.Equal(t, types.DefaultPadColor, v.PadLayout[0].Color)
	assert.Equal(t, 233.0, lib["6U"].Height)
}

func TestJSONParseIgnoresUnknownFields(t *testing.T) {
	doc := `{"X": {"width": 1, "height": 2, "depth": 25.4, "variants": {}}}`
	lib, err := NewJSONCodec().Parse(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Empty(t, lib["X"].Variants)
}

func TestJSONParseErrors(t *testing.T) {
	tests := []struct {
		name      string
		doc       string
		wantErr   error
		wantInMsg string
	}{
		{name: "syntax error", doc: `{"X": `, wantInMsg: "failed to parse JSON"},
		{name: "trailing text", doc: `{} trailing`, wantInMsg: "extra data"},
		{name: "trailing brace", doc: "{}\n}garbage not json", wantInMsg: "extra data"},
		{name: "second document", doc: `{} {}`, wantInMsg: "extra data"},
		{name: "null document", doc: `null`, wantErr: types.ErrSchema},
		{name: "array document", doc: `[]`, wantErr: types.ErrSchema},
		{name: "string width", doc: `{"X": {"width": "1", "height": 2, "variants": {}}}`, wantErr: types.ErrSchema},
		{name: "missing height", doc: `{"X": {"width": 1, "variants": {}}}`, wantErr: types.ErrSchema},
		{name: "missing variants", doc: `{"X": {"width": 1, "height": 1}}`, wantErr: types.ErrSchema},
		{name: "null product", doc: `{"X": null}`, wantErr: types.ErrSchema},
		{
			name:    "missing padLayout",
			doc:     `{"X": {"width": 1, "height": 1, "variants": {"V": {"name": "V", "description": "", "expectedPads": 0}}}}`,
			wantErr: types.ErrSchema,
		},
		{
			name:    "missing pad name",
			doc:     `{"X": {"width": 1, "height": 1, "variants": {"V": {"name": "V", "description": "", "expectedPads": 1, "padLayout": [{"x": 0, "y": 0, "width": 0, "height": 0, "required": true}]}}}}`,
			wantErr: types.ErrSchema,
		},
		{
			name:    "fractional expectedPads",
			doc:     `{"X": {"width": 1, "height": 1, "variants": {"V": {"name": "V", "description": "", "expectedPads": 1.5, "padLayout": []}}}}`,
			wantErr: types.ErrSchema,
		},
		{
			name:    "pad count mismatch",
			doc:     `{"X": {"width": 1, "height": 1, "variants": {"V": {"name": "V", "description": "", "expectedPads": 2, "padLayout": []}}}}`,
			wantErr: types.ErrPadCountMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lib, err := NewJSONCodec().Parse(strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.Nil(t, lib)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantInMsg != "" {
				assert.Contains(t, err.Error(), tt.wantInMsg)
			}
		})
	}
}

func TestWebModuleExport(t *testing.T) {
	lib := testLibrary()
	var buf bytes.Buffer
	require.NoError(t, NewWebModuleCodec().Export(lib, &buf))
	out := buf.String()

	require.True(t, strings.HasPrefix(out, "// Auto-generated Product Library\n// Generated by padlib\n\nexport const PRODUCT_LIBRARY = {\n"))
	require.True(t, strings.HasSuffix(out, "};\n\nexport default PRODUCT_LIBRARY;\n"))

	start := strings.Index(out, "= ") + 2
	end := strings.LastIndex(out, ";\n\nexport default")
	got, err := NewJSONCodec().Parse(strings.NewReader(out[start:end]))
	require.NoError(t, err)
	assert.Equal(t, lib, got)

	var jsonBuf bytes.Buffer
	require.NoError(t, NewJSONCodec().Export(lib, &jsonBuf))
	assert.Equal(t, strings.TrimSuffix(jsonBuf.String(), "\n"), out[start:end],
		"the module payload is the JSON document")
}

func TestYAMLRoundTrip(t *testing.T) {
	lib := testLibrary()
	var buf bytes.Buffer
	require.NoError(t, NewYAMLCodec().Export(lib, &buf))
	assert.Contains(t, buf.String(), "expectedPads: 2")
	assert.Contains(t, buf.String(), "padLayout:")

	got, err := NewYAMLCodec().Parse(&buf)
	require.NoError(t, err)
	assert.Equal(t, lib, got)
}

func TestYAMLParseErrors(t *testing.T) {
	_, err := NewYAMLCodec().Parse(strings.NewReader(""))
	assert.ErrorIs(t, err, types.ErrSchema)

	_, err = NewYAMLCodec().Parse(strings.NewReader("X:\n  width: wide\n  height: 1\n  variants: {}\n"))
	assert.ErrorIs(t, err, types.ErrSchema)

	for _, v := range []string{".nan", ".inf", "-.inf"} {
		doc := "X:\n  width: 1\n  height: 1\n  variants:\n    V:\n      name: V\n      description: d\n      expectedPads: 1\n" +
			"      padLayout:\n        - {x: " + v + ", y: 0.5, width: 0.1, height: 0.1, required: true, name: A}\n"
		lib, err := NewYAMLCodec().Parse(strings.NewReader(doc))
		assert.ErrorIs(t, err, types.ErrSchema, "x: %s", v)
		assert.ErrorIs(t, err, types.ErrInvalidPad, "x: %s", v)
		assert.Nil(t, lib)
	}

	_, err = NewYAMLCodec().Parse(strings.NewReader("X: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func keysOf(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}
