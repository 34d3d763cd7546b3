// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

// Package gpu implements the noise generator as a WebGPU compute kernel.
//
// The kernel is a WGSL compute shader (shaders/noise.wgsl) compiled to
// SPIR-V with naga and dispatched through gogpu/wgpu/hal, one invocation per
// pixel in 8x8 workgroups. Results are read back into a noisefx.Image, so
// the rest of the effect graph is unaware of where the noise was produced.
//
// A Device either opens its own Vulkan adapter (Open) or borrows the HAL
// device of a host application (OpenShared). A borrowed device is never
// destroyed by Close.
//
// Build with the nogpu tag to exclude this package.
package gpu
