package noisefx

import (
	"image"

	"github.com/gogpu/noisefx/internal/pcg"
)

// Coord is a position in rendering space.
type Coord struct {
	X, Y float32
}

// PixelCenter returns the rendering-space position of pixel (x, y) of an
// image rendered at origin. Pixels are sampled at their centers, matching
// the fragment position a GPU pipeline reports.
func PixelCenter(origin image.Point, x, y int) Coord {
	return Coord{
		X: float32(origin.X+x) + 0.5,
		Y: float32(origin.Y+y) + 0.5,
	}
}

// Evaluate returns the noise color for one pixel.
//
// R, G and B are independent values in [0, 1); A is always 1. The result
// depends only on seed and c, so Evaluate is safe to call from any number
// of goroutines and is bit-reproducible.
func Evaluate(seed uint32, c Coord) RGBA {
	r, g, b := pcg.RGB(seed, c.X, c.Y)
	return RGBA{R: r, G: g, B: b, A: 1}
}

// generateRows fills rows [y0, y1) of dst with noise. It is the CPU body of
// the generator node.
func generateRows(dst *Image, seed uint32, origin image.Point, y0, y1 int) {
	for y := y0; y < y1; y++ {
		row := dst.Row(y)
		for x := range row {
			row[x] = Evaluate(seed, PixelCenter(origin, x, y))
		}
	}
}
