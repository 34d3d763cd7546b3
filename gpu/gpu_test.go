//go:build !nogpu

package gpu

import (
	"errors"
	"image"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/noisefx"
)

// mockDevice implements gpucontext.Device for testing.
type mockDevice struct{}

func (m *mockDevice) Poll(wait bool) {}
func (m *mockDevice) Destroy()       {}

// mockProvider implements gpucontext.DeviceProvider without HAL access.
type mockProvider struct {
	device gpucontext.Device
}

func (m *mockProvider) Device() gpucontext.Device             { return m.device }
func (m *mockProvider) Queue() gpucontext.Queue               { return nil }
func (m *mockProvider) Adapter() gpucontext.Adapter           { return nil }
func (m *mockProvider) SurfaceFormat() gputypes.TextureFormat { return gputypes.TextureFormatBGRA8Unorm }

func TestNewDeviceFromProvider_NoHAL(t *testing.T) {
	_, err := NewDeviceFromProvider(&mockProvider{device: &mockDevice{}})
	if !errors.Is(err, ErrNotHALProvider) {
		t.Fatalf("NewDeviceFromProvider() error = %v, want ErrNotHALProvider", err)
	}
	var re *noisefx.ResourceError
	if !errors.As(err, &re) {
		t.Errorf("NewDeviceFromProvider() error is %T, want *noisefx.ResourceError", err)
	}
}

func TestNewDeviceFromProvider_Nil(t *testing.T) {
	if _, err := NewDeviceFromProvider(nil); !errors.Is(err, ErrNotHALProvider) {
		t.Errorf("NewDeviceFromProvider(nil) error = %v, want ErrNotHALProvider", err)
	}
}

func TestOpen_Session(t *testing.T) {
	dev, err := Open()
	if err != nil {
		var re *noisefx.ResourceError
		if !errors.As(err, &re) {
			t.Errorf("Open() error is %T, want *noisefx.ResourceError", err)
		}
		t.Skipf("GPU not available: %v", err)
	}
	_ = dev.Close()

	s := noisefx.NewSession(Open, nil)
	defer s.Close()
	out := noisefx.NewImage(8, 8)
	if err := s.Render(out, image.Point{}); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
}
