package noisefx

import (
	"image"
	"sync/atomic"

	"github.com/gogpu/noisefx/internal/parallel"
)

// Device is a rendering context that graph nodes are created against.
//
// A device that becomes unusable reports ErrDeviceLost from its kernels;
// every graph built on it must then be destroyed and rebuilt on a new
// device.
type Device interface {
	// Name identifies the device in logs.
	Name() string

	// NewNoiseKernel allocates the generator kernel for one graph.
	NewNoiseKernel() (NoiseKernel, error)

	// Close releases the device. Kernels must be released first.
	Close() error
}

// NoiseKernel evaluates the noise generator for every pixel of an image.
type NoiseKernel interface {
	// Generate writes Evaluate(seed, PixelCenter(origin, x, y)) into each
	// pixel of dst.
	Generate(dst *Image, seed uint32, origin image.Point) error

	// Release frees the kernel's resources. Release is idempotent.
	Release()
}

// DeviceFactory opens a new device. Sessions call it whenever they need
// to (re)build their graph.
type DeviceFactory func() (Device, error)

// CPUDevice runs the noise kernel on a pool of goroutines, one band of
// rows per task.
type CPUDevice struct {
	pool   *parallel.Pool
	closed atomic.Bool
}

var _ Device = (*CPUDevice)(nil)

// NewCPUDevice creates a CPU device with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewCPUDevice(workers int) *CPUDevice {
	return &CPUDevice{pool: parallel.NewPool(workers)}
}

// Name implements Device.
func (d *CPUDevice) Name() string { return "cpu" }

// Workers returns the number of worker goroutines.
func (d *CPUDevice) Workers() int { return d.pool.Workers() }

// NewNoiseKernel implements Device.
func (d *CPUDevice) NewNoiseKernel() (NoiseKernel, error) {
	if d.closed.Load() {
		return nil, ErrDeviceLost
	}
	return &cpuKernel{dev: d}, nil
}

// Close stops the worker pool. Kernels created by the device report
// ErrDeviceLost afterwards.
func (d *CPUDevice) Close() error {
	if d.closed.CompareAndSwap(false, true) {
		d.pool.Close()
	}
	return nil
}

type cpuKernel struct {
	dev      *CPUDevice
	released bool
}

func (k *cpuKernel) Generate(dst *Image, seed uint32, origin image.Point) error {
	if k.released {
		return ErrKernelUnavailable
	}
	if k.dev.closed.Load() {
		return ErrDeviceLost
	}
	k.dev.pool.Rows(dst.Height(), func(y0, y1 int) {
		generateRows(dst, seed, origin, y0, y1)
	})
	return nil
}

func (k *cpuKernel) Release() { k.released = true }
