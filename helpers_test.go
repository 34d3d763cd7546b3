package noisefx

import (
	"errors"
	"image"
	"sync/atomic"
)

// fakeDevice is a Device whose kernel runs inline and can be made to fail.
type fakeDevice struct {
	name      string
	kernelErr error
	lost      atomic.Bool

	kernels  atomic.Int32
	released atomic.Int32
	closed   atomic.Int32
}

func newFakeDevice() *fakeDevice { return &fakeDevice{name: "fake"} }

func (d *fakeDevice) Name() string { return d.name }

func (d *fakeDevice) NewNoiseKernel() (NoiseKernel, error) {
	if d.kernelErr != nil {
		return nil, d.kernelErr
	}
	if d.lost.Load() {
		return nil, ErrDeviceLost
	}
	d.kernels.Add(1)
	return &fakeKernel{dev: d}, nil
}

func (d *fakeDevice) Close() error {
	d.closed.Add(1)
	return nil
}

type fakeKernel struct {
	dev      *fakeDevice
	released bool
}

func (k *fakeKernel) Generate(dst *Image, seed uint32, origin image.Point) error {
	if k.dev.lost.Load() {
		return ErrDeviceLost
	}
	generateRows(dst, seed, origin, 0, dst.Height())
	return nil
}

func (k *fakeKernel) Release() {
	if !k.released {
		k.released = true
		k.dev.released.Add(1)
	}
}

var errNoAdapter = errors.New("no adapter")

// testSeeds returns a deterministic seed source.
func testSeeds() *SeedSource {
	return NewSeedSource([32]byte{'n', 'o', 'i', 's', 'e'})
}

// mustPanic runs fn and returns the recovered value.
func mustPanic(fn func()) (v any) {
	defer func() { v = recover() }()
	fn()
	return nil
}
