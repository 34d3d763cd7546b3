package blend

import "math"

// channelFunc is a separable blend function B(s, d) on one channel.
type channelFunc func(s, d float32) float32

// separable maps separable modes to their channel function. Modes missing
// from the table are non-separable.
var separable = [modeCount]channelFunc{
	ModeMultiply:    multiply,
	ModeScreen:      screen,
	ModeDarken:      darken,
	ModeLighten:     lighten,
	ModeColorBurn:   colorBurn,
	ModeLinearBurn:  linearBurn,
	ModeColorDodge:  colorDodge,
	ModeLinearDodge: linearDodge,
	ModeOverlay:     overlay,
	ModeSoftLight:   softLight,
	ModeHardLight:   hardLight,
	ModeVividLight:  vividLight,
	ModeLinearLight: linearLight,
	ModePinLight:    pinLight,
	ModeHardMix:     hardMix,
	ModeDifference:  difference,
	ModeExclusion:   exclusion,
	ModeSubtract:    subtract,
	ModeDivision:    division,
}

func multiply(s, d float32) float32 { return s * d }

func screen(s, d float32) float32 { return s + d - s*d }

func darken(s, d float32) float32 { return min(s, d) }

func lighten(s, d float32) float32 { return max(s, d) }

// colorBurn darkens the backdrop to reflect the source.
func colorBurn(s, d float32) float32 {
	switch {
	case d >= 1:
		return 1
	case s <= 0:
		return 0
	}
	return 1 - min(1, (1-d)/s)
}

func linearBurn(s, d float32) float32 { return max(0, s+d-1) }

// colorDodge brightens the backdrop to reflect the source.
func colorDodge(s, d float32) float32 {
	switch {
	case d <= 0:
		return 0
	case s >= 1:
		return 1
	}
	return min(1, d/(1-s))
}

func linearDodge(s, d float32) float32 { return min(1, s+d) }

func overlay(s, d float32) float32 { return hardLight(d, s) }

func hardLight(s, d float32) float32 {
	if s <= 0.5 {
		return multiply(2*s, d)
	}
	return screen(2*s-1, d)
}

// softLight follows the W3C definition, which differs slightly from the
// Photoshop curve for dark backdrops.
func softLight(s, d float32) float32 {
	if s <= 0.5 {
		return d - (1-2*s)*d*(1-d)
	}
	var dd float32
	if d <= 0.25 {
		dd = ((16*d-12)*d + 4) * d
	} else {
		dd = float32(math.Sqrt(float64(d)))
	}
	return d + (2*s-1)*(dd-d)
}

func vividLight(s, d float32) float32 {
	if s <= 0.5 {
		return colorBurn(2*s, d)
	}
	return colorDodge(2*(s-0.5), d)
}

func linearLight(s, d float32) float32 { return clamp01(d + 2*s - 1) }

func pinLight(s, d float32) float32 {
	if s <= 0.5 {
		return min(d, 2*s)
	}
	return max(d, 2*s-1)
}

func hardMix(s, d float32) float32 {
	if s+d >= 1 {
		return 1
	}
	return 0
}

func difference(s, d float32) float32 {
	if s > d {
		return s - d
	}
	return d - s
}

func exclusion(s, d float32) float32 { return s + d - 2*s*d }

func subtract(s, d float32) float32 { return max(0, d-s) }

func division(s, d float32) float32 {
	if s <= 0 {
		if d <= 0 {
			return 0
		}
		return 1
	}
	return min(1, d/s)
}
