//go:build !nogpu

package gpu

import (
	"errors"
	"image"
	"testing"

	"github.com/gogpu/noisefx"
)

// openOrSkip opens a GPU device or skips the test when none is available.
func openOrSkip(t *testing.T) *Device {
	t.Helper()
	d, err := Open()
	if err != nil {
		t.Skipf("GPU not available: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d
}

func TestDevice_MatchesCPU(t *testing.T) {
	d := openOrSkip(t)

	k, err := d.NewNoiseKernel()
	if err != nil {
		t.Fatalf("NewNoiseKernel() error = %v", err)
	}
	defer k.Release()

	origin := image.Pt(-5, 11)
	img := noisefx.NewImage(33, 17)
	if err := k.Generate(img, 42, origin); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	for y := 0; y < img.Height(); y++ {
		for x := 0; x < img.Width(); x++ {
			want := noisefx.Evaluate(42, noisefx.PixelCenter(origin, x, y))
			if got := img.Pixel(x, y); got != want {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}

	// A second size reallocates the buffers.
	small := noisefx.NewImage(3, 2)
	if err := k.Generate(small, 42, image.Point{}); err != nil {
		t.Fatalf("Generate() resized error = %v", err)
	}
	if got, want := small.Pixel(2, 1), noisefx.Evaluate(42, noisefx.PixelCenter(image.Point{}, 2, 1)); got != want {
		t.Errorf("resized pixel = %v, want %v", got, want)
	}
}

func TestDevice_Graph(t *testing.T) {
	d := openOrSkip(t)

	g, err := noisefx.CreateGraph(d, nil)
	if err != nil {
		t.Fatalf("CreateGraph() error = %v", err)
	}
	defer noisefx.DestroyGraph(g)

	if err := noisefx.UpdateGraph(g, noisefx.Config{ColorMode: noisefx.ColorModeGrayscale}); err != nil {
		t.Fatalf("UpdateGraph() error = %v", err)
	}
	out := noisefx.NewImage(16, 16)
	if err := g.Render(out, image.Point{}); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	want := noisefx.Evaluate(g.Seed(), noisefx.PixelCenter(image.Point{}, 4, 4)).Gray()
	if got := out.Pixel(4, 4); got != want {
		t.Errorf("Pixel(4, 4) = %v, want %v", got, want)
	}
}

func TestDevice_Close(t *testing.T) {
	d := openOrSkip(t)

	k, err := d.NewNoiseKernel()
	if err != nil {
		t.Fatalf("NewNoiseKernel() error = %v", err)
	}
	k.Release()
	if err := d.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := d.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if _, err := d.NewNoiseKernel(); !errors.Is(err, noisefx.ErrDeviceLost) {
		t.Errorf("NewNoiseKernel() after Close error = %v, want ErrDeviceLost", err)
	}
	k.Release()
}

type notHAL struct{}

type wrongHAL struct{}

func (wrongHAL) HalDevice() any { return "device" }
func (wrongHAL) HalQueue() any  { return nil }

func TestOpenShared_Rejected(t *testing.T) {
	tests := []struct {
		name     string
		provider any
	}{
		{"nil", nil},
		{"no HAL methods", notHAL{}},
		{"wrong HAL types", wrongHAL{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := OpenShared(tt.provider); !errors.Is(err, ErrNotHALProvider) {
				t.Errorf("OpenShared() error = %v, want ErrNotHALProvider", err)
			}
		})
	}
}
