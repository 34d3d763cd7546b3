//go:build !nogpu

// Package gpu provides a GPU-backed noisefx.Device.
//
// The noise generator runs as a WebGPU compute shader through the Pure Go
// gogpu/wgpu stack (Vulkan backend). The remaining graph nodes run on the
// CPU worker pool as usual, so a GPU device is a drop-in replacement for
// noisefx.NewCPUDevice.
//
// Usage:
//
//	dev, err := gpu.NewDevice()
//	if err != nil {
//		dev = noisefx.NewCPUDevice(0) // no usable GPU
//	}
//	g, err := noisefx.CreateGraph(dev, dst)
//
// Sessions can reopen the device after a loss by using Open as their
// DeviceFactory:
//
//	s := noisefx.NewSession(gpu.Open, dst)
package gpu

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/noisefx"
	gpuimpl "github.com/gogpu/noisefx/internal/gpu"
)

// Device is a noisefx.Device whose noise kernel runs on the GPU.
type Device = gpuimpl.Device

// Errors reported when no GPU device can be opened.
var (
	ErrNoBackend      = gpuimpl.ErrNoBackend
	ErrNoAdapter      = gpuimpl.ErrNoAdapter
	ErrNotHALProvider = gpuimpl.ErrNotHALProvider
)

// NewDevice opens the first suitable GPU adapter.
func NewDevice() (*Device, error) {
	d, err := gpuimpl.Open()
	if err != nil {
		return nil, &noisefx.ResourceError{Op: "open gpu device", Err: err}
	}
	return d, nil
}

// Open is NewDevice with the signature of noisefx.DeviceFactory.
func Open() (noisefx.Device, error) {
	d, err := NewDevice()
	if err != nil {
		return nil, err
	}
	return d, nil
}

var _ noisefx.DeviceFactory = Open

// NewDeviceFromProvider shares the GPU device of a host application, for
// example the one returned by gogpu.App.GPUContextProvider(). The provider
// must also implement HalDevice() any and HalQueue() any.
//
// Closing the returned device releases only noisefx's own pipeline; the
// host keeps ownership of its device.
func NewDeviceFromProvider(provider gpucontext.DeviceProvider) (*Device, error) {
	if provider == nil {
		return nil, &noisefx.ResourceError{Op: "share gpu device", Err: ErrNotHALProvider}
	}
	d, err := gpuimpl.OpenShared(provider)
	if err != nil {
		return nil, &noisefx.ResourceError{Op: "share gpu device", Err: err}
	}
	return d, nil
}
