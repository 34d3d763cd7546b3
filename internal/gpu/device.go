// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package gpu

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/noisefx"
	"github.com/gogpu/wgpu/hal"

	// Import Vulkan backend so it registers via init().
	_ "github.com/gogpu/wgpu/hal/vulkan"
)

var (
	// ErrNoBackend is returned when the Vulkan HAL backend is not registered.
	ErrNoBackend = errors.New("gpu: vulkan backend not available")

	// ErrNoAdapter is returned when the backend reports no adapters.
	ErrNoAdapter = errors.New("gpu: no GPU adapters found")

	// ErrNotHALProvider is returned by OpenShared when the provider does
	// not expose HAL types.
	ErrNotHALProvider = errors.New("gpu: provider does not expose HAL types")
)

// Device is a noisefx.Device backed by a wgpu/hal device.
//
// The compute pipeline is created once per device and shared by all of
// its kernels. Dispatches are serialized on the device mutex.
type Device struct {
	mu sync.Mutex

	instance hal.Instance
	device   hal.Device
	queue    hal.Queue
	name     string

	shader     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	pipeline   hal.ComputePipeline

	lost           bool
	closed         bool
	externalDevice bool // true when using a shared device (don't destroy on Close)
}

var _ noisefx.Device = (*Device)(nil)

// Open creates a device on the first discrete or integrated GPU, falling
// back to whatever adapter the backend reports first.
func Open() (*Device, error) {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return nil, ErrNoBackend
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("gpu: create instance: %w", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, ErrNoAdapter
	}
	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}
	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("gpu: open device: %w", err)
	}

	d := &Device{
		instance: instance,
		device:   openDev.Device,
		queue:    openDev.Queue,
		name:     "gpu:" + selected.Info.Name,
	}
	if err := d.createPipeline(); err != nil {
		d.device.Destroy()
		instance.Destroy()
		return nil, fmt.Errorf("gpu: create pipeline: %w", err)
	}
	slogger().Info("gpu: device opened", "adapter", selected.Info.Name)
	return d, nil
}

// OpenShared creates a device on top of a host's GPU device. The provider
// must implement HalDevice() any and HalQueue() any returning hal.Device
// and hal.Queue. Close releases only the pipeline; the host keeps
// ownership of the device.
func OpenShared(provider any) (*Device, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrNotHALProvider
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrNotHALProvider)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrNotHALProvider)
	}

	d := &Device{
		device:         device,
		queue:          queue,
		name:           "gpu:shared",
		externalDevice: true,
	}
	if err := d.createPipeline(); err != nil {
		return nil, fmt.Errorf("gpu: create pipeline with shared device: %w", err)
	}
	slogger().Info("gpu: using shared device")
	return d, nil
}

// Name implements noisefx.Device.
func (d *Device) Name() string { return d.name }

// SetLogger receives the logger propagated by noisefx.
func (d *Device) SetLogger(l *slog.Logger) { setLogger(l) }

// NewNoiseKernel implements noisefx.Device.
func (d *Device) NewNoiseKernel() (noisefx.NoiseKernel, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed || d.lost {
		return nil, noisefx.ErrDeviceLost
	}
	return &kernel{dev: d}, nil
}

// Close destroys the pipeline and, unless the device is shared, the HAL
// device and instance. Close is idempotent.
func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil
	}
	d.closed = true
	d.destroyPipeline()
	if !d.externalDevice {
		if d.device != nil {
			d.device.Destroy()
		}
		if d.instance != nil {
			d.instance.Destroy()
		}
	}
	d.device = nil
	d.instance = nil
	d.queue = nil
	slogger().Info("gpu: device closed", "device", d.name)
	return nil
}

// markLost records that the device can no longer be used. Callers hold d.mu.
func (d *Device) markLost(reason error) error {
	if !d.lost {
		d.lost = true
		slogger().Warn("gpu: device lost", "device", d.name, "err", reason)
	}
	return fmt.Errorf("%w: %v", noisefx.ErrDeviceLost, reason)
}

func (d *Device) createPipeline() error {
	spirv, err := noiseSPIRV()
	if err != nil {
		return err
	}
	shader, err := d.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "noise",
		Source: hal.ShaderSource{SPIRV: spirv},
	})
	if err != nil {
		return fmt.Errorf("create noise shader module: %w", err)
	}
	d.shader = shader

	bindLayout, err := d.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "noise_bind_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{Binding: 0, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform}},
			{Binding: 1, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeStorage}},
		},
	})
	if err != nil {
		d.destroyPipeline()
		return fmt.Errorf("create noise bind group layout: %w", err)
	}
	d.bindLayout = bindLayout

	pipeLayout, err := d.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label: "noise_pipe_layout", BindGroupLayouts: []hal.BindGroupLayout{d.bindLayout},
	})
	if err != nil {
		d.destroyPipeline()
		return fmt.Errorf("create noise pipeline layout: %w", err)
	}
	d.pipeLayout = pipeLayout

	pipeline, err := d.device.CreateComputePipeline(&hal.ComputePipelineDescriptor{
		Label: "noise_pipeline", Layout: d.pipeLayout,
		Compute: hal.ComputeState{Module: d.shader, EntryPoint: "main"},
	})
	if err != nil {
		d.destroyPipeline()
		return fmt.Errorf("create noise compute pipeline: %w", err)
	}
	d.pipeline = pipeline
	return nil
}

func (d *Device) destroyPipeline() {
	if d.device == nil {
		return
	}
	if d.pipeline != nil {
		d.device.DestroyComputePipeline(d.pipeline)
		d.pipeline = nil
	}
	if d.pipeLayout != nil {
		d.device.DestroyPipelineLayout(d.pipeLayout)
		d.pipeLayout = nil
	}
	if d.bindLayout != nil {
		d.device.DestroyBindGroupLayout(d.bindLayout)
		d.bindLayout = nil
	}
	if d.shader != nil {
		d.device.DestroyShaderModule(d.shader)
		d.shader = nil
	}
}
