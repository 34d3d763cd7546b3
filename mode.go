package noisefx

import (
	"fmt"
	"strings"

	"github.com/gogpu/noisefx/internal/blend"
)

// ColorMode selects which noise variant reaches the output. Its value is
// the input index of the color selector node.
type ColorMode uint8

const (
	// ColorModeRGB routes the raw noise (selector input 0).
	ColorModeRGB ColorMode = iota
	// ColorModeGrayscale routes the grayscale noise (selector input 1).
	ColorModeGrayscale
)

// String returns "rgb" or "grayscale".
func (m ColorMode) String() string {
	switch m {
	case ColorModeRGB:
		return "rgb"
	case ColorModeGrayscale:
		return "grayscale"
	default:
		return fmt.Sprintf("ColorMode(%d)", uint8(m))
	}
}

// Valid reports whether m is a defined color mode.
func (m ColorMode) Valid() bool { return m <= ColorModeGrayscale }

// MarshalText implements encoding.TextMarshaler.
func (m ColorMode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("noisefx: invalid color mode %d", uint8(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. "gray" is accepted
// as an alias for "grayscale".
func (m *ColorMode) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "rgb", "color":
		*m = ColorModeRGB
	case "grayscale", "greyscale", "gray", "grey":
		*m = ColorModeGrayscale
	default:
		return fmt.Errorf("noisefx: unknown color mode %q", text)
	}
	return nil
}

// BlendMode selects the operator of the blend node. The values are stable
// indices.
type BlendMode uint8

// Blend modes, in index order.
const (
	BlendMultiply     = BlendMode(blend.ModeMultiply)
	BlendScreen       = BlendMode(blend.ModeScreen)
	BlendDarken       = BlendMode(blend.ModeDarken)
	BlendLighten      = BlendMode(blend.ModeLighten)
	BlendDissolve     = BlendMode(blend.ModeDissolve)
	BlendColorBurn    = BlendMode(blend.ModeColorBurn)
	BlendLinearBurn   = BlendMode(blend.ModeLinearBurn)
	BlendDarkerColor  = BlendMode(blend.ModeDarkerColor)
	BlendLighterColor = BlendMode(blend.ModeLighterColor)
	BlendColorDodge   = BlendMode(blend.ModeColorDodge)
	BlendLinearDodge  = BlendMode(blend.ModeLinearDodge)
	BlendOverlay      = BlendMode(blend.ModeOverlay)
	BlendSoftLight    = BlendMode(blend.ModeSoftLight)
	BlendHardLight    = BlendMode(blend.ModeHardLight)
	BlendVividLight   = BlendMode(blend.ModeVividLight)
	BlendLinearLight  = BlendMode(blend.ModeLinearLight)
	BlendPinLight     = BlendMode(blend.ModePinLight)
	BlendHardMix      = BlendMode(blend.ModeHardMix)
	BlendDifference   = BlendMode(blend.ModeDifference)
	BlendExclusion    = BlendMode(blend.ModeExclusion)
	BlendHue          = BlendMode(blend.ModeHue)
	BlendSaturation   = BlendMode(blend.ModeSaturation)
	BlendColor        = BlendMode(blend.ModeColor)
	BlendLuminosity   = BlendMode(blend.ModeLuminosity)
	BlendSubtract     = BlendMode(blend.ModeSubtract)
	BlendDivision     = BlendMode(blend.ModeDivision)
)

// BlendModes returns every defined blend mode in index order.
func BlendModes() []BlendMode {
	modes := make([]BlendMode, blend.Count)
	for i := range modes {
		modes[i] = BlendMode(i)
	}
	return modes
}

// Valid reports whether m is a defined blend mode.
func (m BlendMode) Valid() bool { return blend.Mode(m).Valid() }

// String returns the kebab-case mode name, e.g. "color-burn".
func (m BlendMode) String() string {
	if n := blend.ModeName(blend.Mode(m)); n != "" {
		return n
	}
	return fmt.Sprintf("BlendMode(%d)", uint8(m))
}

// MarshalText implements encoding.TextMarshaler.
func (m BlendMode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("noisefx: invalid blend mode %d", uint8(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Matching ignores
// case and separators, so "ColorBurn" and "color_burn" are equivalent.
func (m *BlendMode) UnmarshalText(text []byte) error {
	mode, ok := blend.ParseMode(string(text))
	if !ok {
		return fmt.Errorf("noisefx: unknown blend mode %q", text)
	}
	*m = BlendMode(mode)
	return nil
}
