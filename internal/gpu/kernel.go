// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package gpu

import (
	"encoding/binary"
	"fmt"
	"image"
	"math"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/noisefx"
	"github.com/gogpu/wgpu/hal"
)

const (
	// paramsSize is the size of the shader's Params uniform.
	paramsSize = 32

	// texelSize is the size of one vec4<f32> pixel.
	texelSize = 16

	// waitTimeout bounds a single dispatch. A fence that does not signal
	// in time is treated as device loss.
	waitTimeout = 5 * time.Second
)

// kernel owns the per-graph buffers. They are sized for the most recent
// image and reallocated when the size changes.
type kernel struct {
	dev *Device

	width, height int
	params        hal.Buffer
	pixels        hal.Buffer
	staging       hal.Buffer
	bindGroup     hal.BindGroup
	readback      []byte

	released bool
}

var _ noisefx.NoiseKernel = (*kernel)(nil)

// Generate implements noisefx.NoiseKernel.
func (k *kernel) Generate(dst *noisefx.Image, seed uint32, origin image.Point) error {
	d := k.dev
	d.mu.Lock()
	defer d.mu.Unlock()

	if k.released {
		return noisefx.ErrKernelUnavailable
	}
	if d.closed || d.lost {
		return noisefx.ErrDeviceLost
	}
	w, h := dst.Size()
	if w == 0 || h == 0 {
		return nil
	}
	if err := k.ensureBuffers(w, h); err != nil {
		return err
	}

	uw, uh := uint32(w), uint32(h) //nolint:gosec // image dimensions fit uint32
	d.queue.WriteBuffer(k.params, 0, packParams(uw, uh, seed, origin))
	if err := k.dispatch(uw, uh); err != nil {
		return err
	}
	unpackPixels(k.readback, dst.Pix())

	slogger().Debug("gpu: noise dispatched", "seed", seed, "width", w, "height", h)
	return nil
}

// Release implements noisefx.NoiseKernel.
func (k *kernel) Release() {
	d := k.dev
	d.mu.Lock()
	defer d.mu.Unlock()
	if k.released {
		return
	}
	k.released = true
	k.destroyBuffers()
}

// dispatch encodes one compute pass plus the copy to the staging buffer,
// submits it and reads the result back. Callers hold dev.mu.
func (k *kernel) dispatch(w, h uint32) error {
	d := k.dev
	size := uint64(len(k.readback))

	encoder, err := d.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "noise_encoder"})
	if err != nil {
		return fmt.Errorf("gpu: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("noise"); err != nil {
		return fmt.Errorf("gpu: begin encoding: %w", err)
	}

	pass := encoder.BeginComputePass(&hal.ComputePassDescriptor{Label: "noise_pass"})
	pass.SetPipeline(d.pipeline)
	pass.SetBindGroup(0, k.bindGroup, nil)
	pass.Dispatch(dispatchSize(w), dispatchSize(h), 1)
	pass.End()

	encoder.CopyBufferToBuffer(k.pixels, k.staging, []hal.BufferCopy{
		{SrcOffset: 0, DstOffset: 0, Size: size},
	})
	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("gpu: end encoding: %w", err)
	}
	defer d.device.FreeCommandBuffer(cmdBuf)

	fence, err := d.device.CreateFence()
	if err != nil {
		return fmt.Errorf("gpu: create fence: %w", err)
	}
	defer d.device.DestroyFence(fence)
	if err := d.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return d.markLost(fmt.Errorf("submit: %w", err))
	}
	fenceOK, err := d.device.Wait(fence, 1, waitTimeout)
	if err != nil {
		return d.markLost(fmt.Errorf("wait for GPU: %w", err))
	}
	if !fenceOK {
		return d.markLost(fmt.Errorf("wait for GPU: timed out after %v", waitTimeout))
	}

	if err := d.queue.ReadBuffer(k.staging, 0, k.readback); err != nil {
		return fmt.Errorf("gpu: readback: %w", err)
	}
	return nil
}

// ensureBuffers (re)allocates the buffers and bind group for a w x h
// image. Callers hold dev.mu.
func (k *kernel) ensureBuffers(w, h int) error {
	if k.bindGroup != nil && k.width == w && k.height == h {
		return nil
	}
	k.destroyBuffers()

	d := k.dev
	pixelBufSize := uint64(w) * uint64(h) * texelSize //nolint:gosec // dimensions are non-negative

	var err error
	k.params, err = d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "noise_params", Size: paramsSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("gpu: create params buffer: %w", err)
	}
	k.pixels, err = d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "noise_pixels", Size: pixelBufSize,
		Usage: gputypes.BufferUsageStorage | gputypes.BufferUsageCopySrc,
	})
	if err != nil {
		k.destroyBuffers()
		return fmt.Errorf("gpu: create pixel buffer: %w", err)
	}
	k.staging, err = d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "noise_staging", Size: pixelBufSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		k.destroyBuffers()
		return fmt.Errorf("gpu: create staging buffer: %w", err)
	}
	k.bindGroup, err = d.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label: "noise_bind", Layout: d.bindLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{Buffer: k.params.NativeHandle(), Offset: 0, Size: paramsSize}},
			{Binding: 1, Resource: gputypes.BufferBinding{Buffer: k.pixels.NativeHandle(), Offset: 0, Size: pixelBufSize}},
		},
	})
	if err != nil {
		k.destroyBuffers()
		return fmt.Errorf("gpu: create bind group: %w", err)
	}

	k.width, k.height = w, h
	k.readback = make([]byte, pixelBufSize)
	return nil
}

// destroyBuffers frees the kernel's buffers. It is a no-op after the
// device has been closed, since closing destroyed them with the device.
func (k *kernel) destroyBuffers() {
	d := k.dev
	if d.device != nil {
		if k.bindGroup != nil {
			d.device.DestroyBindGroup(k.bindGroup)
		}
		for _, b := range []hal.Buffer{k.params, k.pixels, k.staging} {
			if b != nil {
				d.device.DestroyBuffer(b)
			}
		}
	}
	k.bindGroup = nil
	k.params, k.pixels, k.staging = nil, nil, nil
	k.width, k.height = 0, 0
	k.readback = nil
}

// packParams serializes the shader's Params uniform.
func packParams(w, h, seed uint32, origin image.Point) []byte {
	out := make([]byte, paramsSize)
	binary.LittleEndian.PutUint32(out[0:], w)
	binary.LittleEndian.PutUint32(out[4:], h)
	binary.LittleEndian.PutUint32(out[8:], seed)
	binary.LittleEndian.PutUint32(out[16:], uint32(int32(origin.X))) //nolint:gosec // two's complement i32
	binary.LittleEndian.PutUint32(out[20:], uint32(int32(origin.Y))) //nolint:gosec // two's complement i32
	return out
}

// unpackPixels decodes vec4<f32> texels into dst.
func unpackPixels(packed []byte, dst []noisefx.RGBA) {
	for i := range dst {
		p := packed[i*texelSize:]
		dst[i] = noisefx.RGBA{
			R: math.Float32frombits(binary.LittleEndian.Uint32(p[0:])),
			G: math.Float32frombits(binary.LittleEndian.Uint32(p[4:])),
			B: math.Float32frombits(binary.LittleEndian.Uint32(p[8:])),
			A: math.Float32frombits(binary.LittleEndian.Uint32(p[12:])),
		}
	}
}
