package noisefx

import (
	"image/color"

	"github.com/gogpu/noisefx/internal/blend"
)

// RGBA is a straight-alpha color with float32 components in [0, 1].
// float32 matches the precision of the GPU kernel, so CPU and GPU output
// can be compared bit for bit.
type RGBA struct {
	R, G, B, A float32
}

// Common colors.
var (
	Black       = RGBA{R: 0, G: 0, B: 0, A: 1}
	White       = RGBA{R: 1, G: 1, B: 1, A: 1}
	Transparent = RGBA{}
)

// Rec. 601 luma weights used by the grayscale node.
const (
	LumaR = 0.299
	LumaG = 0.587
	LumaB = 0.114
)

// Luminance returns the luma-weighted sum of the color channels.
func (c RGBA) Luminance() float32 {
	return LumaR*c.R + LumaG*c.G + LumaB*c.B
}

// Gray returns the color with R, G and B replaced by its luminance.
// Alpha is preserved.
func (c RGBA) Gray() RGBA {
	l := c.Luminance()
	return RGBA{R: l, G: l, B: l, A: c.A}
}

// NRGBA converts the color to 8-bit non-premultiplied form.
func (c RGBA) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: to8(c.R),
		G: to8(c.G),
		B: to8(c.B),
		A: to8(c.A),
	}
}

// RGBA implements color.Color.
func (c RGBA) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

// FromColor converts any color.Color to RGBA.
func FromColor(c color.Color) RGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGBA{
		R: float32(n.R) / 255,
		G: float32(n.G) / 255,
		B: float32(n.B) / 255,
		A: float32(n.A) / 255,
	}
}

func to8(v float32) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v*255 + 0.5)
}

func (c RGBA) blend() blend.Color { return blend.Color(c) }

func fromBlend(c blend.Color) RGBA { return RGBA(c) }
