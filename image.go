package noisefx

import (
	"fmt"
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
)

// Image is a rectangular buffer of float32 RGBA pixels stored row by row.
//
// Image implements image.Image so it can be passed directly to image
// encoders.
type Image struct {
	width  int
	height int
	pix    []RGBA
}

// NewImage creates a transparent image of the given size.
func NewImage(width, height int) *Image {
	if width < 0 || height < 0 {
		panic(fmt.Sprintf("noisefx: negative image size %dx%d", width, height))
	}
	return &Image{
		width:  width,
		height: height,
		pix:    make([]RGBA, width*height),
	}
}

// NewUniformImage creates an image filled with c.
func NewUniformImage(width, height int, c RGBA) *Image {
	img := NewImage(width, height)
	img.Fill(c)
	return img
}

// ImageFrom converts any image.Image to an Image of the same size.
func ImageFrom(src image.Image) *Image {
	b := src.Bounds()
	img := NewImage(b.Dx(), b.Dy())
	for y := 0; y < img.height; y++ {
		row := img.Row(y)
		for x := range row {
			row[x] = FromColor(src.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return img
}

// ImageFromScaled resamples src to width x height with bilinear filtering
// and converts the result. Sources that already have the requested size
// are converted without resampling.
func ImageFromScaled(src image.Image, width, height int) *Image {
	b := src.Bounds()
	if b.Dx() == width && b.Dy() == height {
		return ImageFrom(src)
	}
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, b, xdraw.Src, nil)
	return ImageFrom(dst)
}

// Width returns the image width in pixels.
func (m *Image) Width() int { return m.width }

// Height returns the image height in pixels.
func (m *Image) Height() int { return m.height }

// Size returns the image width and height.
func (m *Image) Size() (width, height int) { return m.width, m.height }

// Pix returns the backing pixel slice.
func (m *Image) Pix() []RGBA { return m.pix }

// Row returns the pixels of row y.
func (m *Image) Row(y int) []RGBA {
	i := y * m.width
	return m.pix[i : i+m.width : i+m.width]
}

// Pixel returns the pixel at (x, y), or Transparent when out of bounds.
func (m *Image) Pixel(x, y int) RGBA {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return Transparent
	}
	return m.pix[y*m.width+x]
}

// SetPixel sets the pixel at (x, y). Out of bounds writes are ignored.
func (m *Image) SetPixel(x, y int, c RGBA) {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return
	}
	m.pix[y*m.width+x] = c
}

// Fill sets every pixel to c.
func (m *Image) Fill(c RGBA) {
	for i := range m.pix {
		m.pix[i] = c
	}
}

// CopyFrom copies src into m. Both images must have the same size.
func (m *Image) CopyFrom(src *Image) {
	if src.width != m.width || src.height != m.height {
		panic(fmt.Sprintf("noisefx: copy %dx%d into %dx%d", src.width, src.height, m.width, m.height))
	}
	copy(m.pix, src.pix)
}

// NRGBA converts the image to an 8-bit image.NRGBA.
func (m *Image) NRGBA() *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, m.width, m.height))
	for i, c := range m.pix {
		n := c.NRGBA()
		o := i * 4
		out.Pix[o+0] = n.R
		out.Pix[o+1] = n.G
		out.Pix[o+2] = n.B
		out.Pix[o+3] = n.A
	}
	return out
}

// At implements image.Image.
func (m *Image) At(x, y int) color.Color { return m.Pixel(x, y).NRGBA() }

// Bounds implements image.Image.
func (m *Image) Bounds() image.Rectangle { return image.Rect(0, 0, m.width, m.height) }

// ColorModel implements image.Image.
func (m *Image) ColorModel() color.Model { return color.NRGBAModel }
