package blend

import "strings"

var modeNames = [modeCount]string{
	ModeMultiply:     "multiply",
	ModeScreen:       "screen",
	ModeDarken:       "darken",
	ModeLighten:      "lighten",
	ModeDissolve:     "dissolve",
	ModeColorBurn:    "color-burn",
	ModeLinearBurn:   "linear-burn",
	ModeDarkerColor:  "darker-color",
	ModeLighterColor: "lighter-color",
	ModeColorDodge:   "color-dodge",
	ModeLinearDodge:  "linear-dodge",
	ModeOverlay:      "overlay",
	ModeSoftLight:    "soft-light",
	ModeHardLight:    "hard-light",
	ModeVividLight:   "vivid-light",
	ModeLinearLight:  "linear-light",
	ModePinLight:     "pin-light",
	ModeHardMix:      "hard-mix",
	ModeDifference:   "difference",
	ModeExclusion:    "exclusion",
	ModeHue:          "hue",
	ModeSaturation:   "saturation",
	ModeColor:        "color",
	ModeLuminosity:   "luminosity",
	ModeSubtract:     "subtract",
	ModeDivision:     "division",
}

// ModeName returns the canonical kebab-case name of m, or "" for unknown
// modes.
func ModeName(m Mode) string {
	if !m.Valid() {
		return ""
	}
	return modeNames[m]
}

// ParseMode looks up a mode by name. Matching ignores case, spaces,
// hyphens and underscores, so "ColorBurn", "color burn" and "color_burn"
// all resolve to ModeColorBurn.
func ParseMode(name string) (Mode, bool) {
	key := normalize(name)
	for m, n := range modeNames {
		if normalize(n) == key {
			return Mode(m), true
		}
	}
	return 0, false
}

func normalize(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '-', '_', ' ':
			return -1
		}
		return r
	}, strings.ToLower(s))
}
