package blend

import (
	"math"
	"testing"
)

const eps = 1e-5

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) <= eps
}

func nearColor(a, b Color) bool {
	return near(a.R, b.R) && near(a.G, b.G) && near(a.B, b.B) && near(a.A, b.A)
}

func opaque(r, g, b float32) Color { return Color{R: r, G: g, B: b, A: 1} }

// =============================================================================
// Separable modes on opaque layers
// =============================================================================

func TestBlend_SeparableOpaque(t *testing.T) {
	src := opaque(0.25, 0.5, 0.75)
	dst := opaque(0.5, 0.5, 0.5)

	tests := []struct {
		mode Mode
		want Color
	}{
		{ModeMultiply, opaque(0.125, 0.25, 0.375)},
		{ModeScreen, opaque(0.625, 0.75, 0.875)},
		{ModeDarken, opaque(0.25, 0.5, 0.5)},
		{ModeLighten, opaque(0.5, 0.5, 0.75)},
		{ModeColorBurn, opaque(0, 0, 1 - 0.5/0.75)},
		{ModeLinearBurn, opaque(0, 0, 0.25)},
		{ModeColorDodge, opaque(0.5/0.75, 1, 1)},
		{ModeLinearDodge, opaque(0.75, 1, 1)},
		{ModeOverlay, opaque(0.25, 0.5, 0.75)},
		{ModeHardLight, opaque(0.25, 0.5, 0.75)},
		{ModeLinearLight, opaque(0, 0.5, 1)},
		{ModePinLight, opaque(0.5, 0.5, 0.5)},
		{ModeHardMix, opaque(0, 1, 1)},
		{ModeDifference, opaque(0.25, 0, 0.25)},
		{ModeExclusion, opaque(0.5, 0.5, 0.5)},
		{ModeSubtract, opaque(0.25, 0, 0)},
		{ModeDivision, opaque(1, 1, 0.5/0.75)},
	}

	for _, tt := range tests {
		t.Run(ModeName(tt.mode), func(t *testing.T) {
			got := Blend(src, dst, tt.mode)
			if !nearColor(got, tt.want) {
				t.Errorf("Blend(%v, %v, %v) = %v, want %v", src, dst, tt.mode, got, tt.want)
			}
		})
	}
}

func TestBlend_MultiplyExact(t *testing.T) {
	// With both layers opaque the result must be the plain product.
	src := opaque(0.7988693, 0.14877623, 0.66013443)
	dst := opaque(0.2, 0.4, 0.9)
	got := Blend(src, dst, ModeMultiply)
	want := opaque(src.R*dst.R, src.G*dst.G, src.B*dst.B)
	if got != want {
		t.Errorf("Blend multiply = %v, want %v", got, want)
	}
}

func TestBlend_TransparentLayers(t *testing.T) {
	src := Color{R: 1, G: 0, B: 0, A: 0}
	dst := opaque(0, 1, 0)
	for m := Mode(0); m.Valid(); m++ {
		if got := Blend(src, dst, m); got != dst {
			t.Errorf("%s: transparent source changed destination: %v", ModeName(m), got)
		}
		if got := Blend(dst, Color{}, m); got != dst {
			t.Errorf("%s: transparent destination: got %v, want source %v", ModeName(m), got, dst)
		}
	}
}

func TestBlend_PartialAlpha(t *testing.T) {
	src := Color{R: 1, G: 1, B: 1, A: 0.5}
	dst := opaque(0.5, 0.5, 0.5)
	got := Blend(src, dst, ModeMultiply)
	// Co = (1-0.5)*1*0.5 + 0 + 0.5*1*0.5 = 0.5
	want := opaque(0.5, 0.5, 0.5)
	if !nearColor(got, want) {
		t.Errorf("Blend = %v, want %v", got, want)
	}
}

func TestBlend_ResultInRange(t *testing.T) {
	values := []float32{0, 0.1, 0.25, 0.5, 0.75, 0.9, 1}
	for m := Mode(0); m.Valid(); m++ {
		for _, s := range values {
			for _, d := range values {
				got := Blend(opaque(s, d, s), opaque(d, s, 1-s), m)
				for _, c := range []float32{got.R, got.G, got.B, got.A} {
					if c < 0 || c > 1 || math.IsNaN(float64(c)) {
						t.Fatalf("%s(%v, %v) produced %v", ModeName(m), s, d, got)
					}
				}
			}
		}
	}
}

func TestBlend_UnknownMode(t *testing.T) {
	src := opaque(0.2, 0.3, 0.4)
	dst := opaque(0.9, 0.9, 0.9)
	if got := Blend(src, dst, Mode(200)); !nearColor(got, src) {
		t.Errorf("Blend(unknown) = %v, want source %v", got, src)
	}
}

// =============================================================================
// Dissolve
// =============================================================================

func TestDissolve(t *testing.T) {
	src := Color{R: 1, G: 0, B: 0, A: 0.5}
	dst := opaque(0, 0, 1)

	if got := Dissolve(src, dst, 0.25); got.R != 1 || got.B != 0 || got.A != 1 {
		t.Errorf("Dissolve(u=0.25) = %v, want source", got)
	}
	if got := Dissolve(src, dst, 0.75); got != dst {
		t.Errorf("Dissolve(u=0.75) = %v, want destination", got)
	}
	if got := Blend(opaque(1, 1, 1), dst, ModeDissolve); got != opaque(1, 1, 1) {
		t.Errorf("Blend(dissolve, opaque source) = %v", got)
	}
}

// =============================================================================
// Non-separable modes
// =============================================================================

func TestNonSeparable_Luminosity(t *testing.T) {
	src := opaque(0.9, 0.9, 0.9)
	dst := opaque(0.8, 0.2, 0.2)
	got := Blend(src, dst, ModeLuminosity)
	if l := Lum(got.R, got.G, got.B); !near(l, 0.9) {
		t.Errorf("Luminosity result lum = %v, want 0.9", l)
	}
}

func TestNonSeparable_ColorKeepsBackdropLum(t *testing.T) {
	src := opaque(0.1, 0.6, 0.3)
	dst := opaque(0.4, 0.4, 0.4)
	got := Blend(src, dst, ModeColor)
	if l := Lum(got.R, got.G, got.B); !near(l, 0.4) {
		t.Errorf("Color result lum = %v, want 0.4", l)
	}
}

func TestNonSeparable_HueOnGrayBackdrop(t *testing.T) {
	// A gray backdrop has zero saturation, so Hue yields gray at its lum.
	got := Blend(opaque(1, 0, 0), opaque(0.5, 0.5, 0.5), ModeHue)
	if !nearColor(got, opaque(0.5, 0.5, 0.5)) {
		t.Errorf("Hue on gray = %v, want gray 0.5", got)
	}
}

func TestNonSeparable_DarkerLighterColor(t *testing.T) {
	dark := opaque(0.1, 0.1, 0.1)
	light := opaque(0.9, 0.8, 0.7)
	if got := Blend(dark, light, ModeDarkerColor); got != dark {
		t.Errorf("DarkerColor = %v, want %v", got, dark)
	}
	if got := Blend(dark, light, ModeLighterColor); got != light {
		t.Errorf("LighterColor = %v, want %v", got, light)
	}
}

func TestOrder(t *testing.T) {
	tests := []vec3{
		{1, 2, 3}, {1, 3, 2}, {2, 1, 3}, {2, 3, 1}, {3, 1, 2}, {3, 2, 1}, {2, 2, 2},
	}
	for _, v := range tests {
		lo, mid, hi := order(v)
		if v[lo] > v[mid] || v[mid] > v[hi] {
			t.Errorf("order(%v) = %d, %d, %d", v, lo, mid, hi)
		}
		if lo == mid || mid == hi || lo == hi {
			t.Errorf("order(%v) returned duplicate indices %d, %d, %d", v, lo, mid, hi)
		}
	}
}

// =============================================================================
// Names
// =============================================================================

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
		ok   bool
	}{
		{"multiply", ModeMultiply, true},
		{"ColorBurn", ModeColorBurn, true},
		{"color burn", ModeColorBurn, true},
		{"LINEAR_DODGE", ModeLinearDodge, true},
		{"division", ModeDivision, true},
		{"normal", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseMode(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseMode(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestModeName_AllDefined(t *testing.T) {
	seen := make(map[string]bool)
	for m := Mode(0); m.Valid(); m++ {
		n := ModeName(m)
		if n == "" {
			t.Errorf("mode %d has no name", m)
		}
		if seen[n] {
			t.Errorf("duplicate mode name %q", n)
		}
		seen[n] = true
		if back, ok := ParseMode(n); !ok || back != m {
			t.Errorf("ParseMode(ModeName(%d)) = %v, %v", m, back, ok)
		}
	}
	if Count != 26 {
		t.Errorf("Count = %d, want 26", Count)
	}
}
