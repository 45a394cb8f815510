package library

import "github.com/mesh-intelligence/padlib/pkg/types"

// pad builds a seed pad with the default color.
func pad(x, y, w, h float64, required bool, name string) types.PadPosition {
	return types.PadPosition{X: x, Y: y, Width: w, Height: h, Required: required, Name: name, Color: types.DefaultPadColor}
}

// quadLayout is the four-pad layout shared by the 3U and MXC standard boards.
func quadLayout() []types.PadPosition {
	return []types.PadPosition{
		pad(0.2, 0.2, 0.15, 0.15, true, "CPU"),
		pad(0.8, 0.2, 0.15, 0.15, true, "GPU"),
		pad(0.2, 0.8, 0.15, 0.15, true, "VRM"),
		pad(0.8, 0.8, 0.15, 0.15, true, "Chipset"),
	}
}

// highPowerLayout is the six-pad layout shared by the 3U and MXC high power
// boards. The last pad is optional and drawn in yellow.
func highPowerLayout() []types.PadPosition {
	optional := pad(0.5, 0.8, 0.12, 0.12, false, "Optional")
	optional.Color = "#ffff00"
	return []types.PadPosition{
		pad(0.15, 0.15, 0.12, 0.12, true, "CPU"),
		pad(0.85, 0.15, 0.12, 0.12, true, "GPU"),
		pad(0.15, 0.85, 0.12, 0.12, true, "VRM1"),
		pad(0.85, 0.85, 0.12, 0.12, true, "VRM2"),
		pad(0.5, 0.5, 0.12, 0.12, true, "Chipset"),
		optional,
	}
}

// Defaults returns the built-in product library: 3U (160 x 100 mm),
// 6U (160 x 233 mm), and MXC/XMC (143.75 x 74 mm). Every call builds a new
// value, so callers may mutate the result freely.
func Defaults() types.Library {
	threeU := types.NewProductType(160, 100)
	threeU.Variants["3U-Basic"] = types.NewVariant(
		"3U Basic", "Standard 3U board with basic thermal management", quadLayout(), false)
	threeU.Variants["3U-HighPower"] = types.NewVariant(
		"3U High Power", "3U board with enhanced thermal management", highPowerLayout(), false)

	sixU := types.NewProductType(160, 233)
	sixU.Variants["6U-Standard"] = types.NewVariant("6U Standard", "Standard 6U board", []types.PadPosition{
		pad(0.1, 0.1, 0.1, 0.1, true, "CPU1"),
		pad(0.9, 0.1, 0.1, 0.1, true, "CPU2"),
		pad(0.1, 0.9, 0.1, 0.1, true, "GPU1"),
		pad(0.9, 0.9, 0.1, 0.1, true, "GPU2"),
		pad(0.3, 0.3, 0.1, 0.1, true, "VRM1"),
		pad(0.7, 0.3, 0.1, 0.1, true, "VRM2"),
		pad(0.3, 0.7, 0.1, 0.1, true, "Chipset1"),
		pad(0.7, 0.7, 0.1, 0.1, true, "Chipset2"),
	}, false)

	mxc := types.NewProductType(143.75, 74)
	mxc.Variants["MXC-Standard"] = types.NewVariant(
		"MXC Standard", "Standard MXC/XMC board", quadLayout(), false)
	mxc.Variants["MXC-HighPower"] = types.NewVariant(
		"MXC High Power", "MXC/XMC board with enhanced thermal management", highPowerLayout(), false)

	return types.Library{
		"3U":      threeU,
		"6U":      sixU,
		"MXC/XMC": mxc,
	}
}
