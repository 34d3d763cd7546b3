// Package blend implements the compositing operators used by the blend node.
//
// Colors are straight (non-premultiplied) float32 RGBA in [0, 1]. Every mode
// is composited with the general formula from W3C Compositing and Blending
// Level 1, section 5.8:
//
//	Ao = Sa + Da*(1 - Sa)
//	Co = ((1 - Sa)*Da*Cd + (1 - Da)*Sa*Cs + Sa*Da*B(Cs, Cd)) / Ao
//
// where B is the mode's blend function.
//
// References:
//   - W3C Compositing and Blending Level 1: https://www.w3.org/TR/compositing-1/
//   - Adobe PDF Blend Modes Addendum
package blend

// Mode selects a blend function. The numeric values are stable: they are
// the indices exposed by the public BlendMode enumeration.
type Mode uint8

const (
	ModeMultiply     Mode = iota // S * D
	ModeScreen                   // S + D - S*D
	ModeDarken                   // min(S, D)
	ModeLighten                  // max(S, D)
	ModeDissolve                 // S or D, chosen per pixel by coverage
	ModeColorBurn                // 1 - (1 - D) / S
	ModeLinearBurn               // S + D - 1
	ModeDarkerColor              // whole color with the lower luminance
	ModeLighterColor             // whole color with the higher luminance
	ModeColorDodge               // D / (1 - S)
	ModeLinearDodge              // S + D
	ModeOverlay                  // HardLight with swapped layers
	ModeSoftLight                // soft version of HardLight
	ModeHardLight                // Multiply or Screen depending on source
	ModeVividLight               // ColorBurn or ColorDodge depending on source
	ModeLinearLight              // D + 2*S - 1
	ModePinLight                 // Darken or Lighten depending on source
	ModeHardMix                  // 1 if S + D >= 1, else 0
	ModeDifference               // |S - D|
	ModeExclusion                // S + D - 2*S*D
	ModeHue                      // hue of S, saturation and luminosity of D
	ModeSaturation               // saturation of S, hue and luminosity of D
	ModeColor                    // hue and saturation of S, luminosity of D
	ModeLuminosity               // luminosity of S, hue and saturation of D
	ModeSubtract                 // D - S
	ModeDivision                 // D / S

	modeCount
)

// Count is the number of defined modes.
const Count = int(modeCount)

// Valid reports whether m names a defined mode.
func (m Mode) Valid() bool { return m < modeCount }

// Color is a straight-alpha color with float32 components.
type Color struct {
	R, G, B, A float32
}

// Blend composites src over dst with mode m.
//
// ModeDissolve is resolved with a threshold of zero, which always selects
// src when it has any coverage. Use Dissolve to supply a per-pixel random
// threshold.
func Blend(src, dst Color, m Mode) Color {
	if m == ModeDissolve {
		return Dissolve(src, dst, 0)
	}
	if src.A == 0 {
		return dst
	}
	if dst.A == 0 {
		return src
	}

	if !m.Valid() {
		// Unknown modes composite as Normal.
		return composite(src, dst, src.R, src.G, src.B)
	}

	var r, g, b float32
	if f := separable[m]; f != nil {
		r, g, b = f(src.R, dst.R), f(src.G, dst.G), f(src.B, dst.B)
	} else {
		r, g, b = nonSeparable(m, vec3{src.R, src.G, src.B}, vec3{dst.R, dst.G, dst.B}).rgb()
	}
	return composite(src, dst, r, g, b)
}

// Dissolve selects src when u is below src alpha and dst otherwise.
// u is expected to be uniformly distributed in [0, 1).
func Dissolve(src, dst Color, u float32) Color {
	if u < src.A {
		return Color{R: src.R, G: src.G, B: src.B, A: 1 - (1-src.A)*(1-dst.A)}
	}
	return dst
}

// composite applies the general compositing formula to the blended
// channels (br, bg, bb).
func composite(src, dst Color, br, bg, bb float32) Color {
	sa, da := src.A, dst.A
	outA := sa + da*(1-sa)
	if outA == 0 {
		return Color{}
	}
	ws := (1 - da) * sa
	wd := (1 - sa) * da
	wb := sa * da
	return Color{
		R: clamp01((ws*src.R + wd*dst.R + wb*br) / outA),
		G: clamp01((ws*src.G + wd*dst.G + wb*bg) / outA),
		B: clamp01((ws*src.B + wd*dst.B + wb*bb) / outA),
		A: outA,
	}
}

func clamp01(v float32) float32 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
