// Package noisefx synthesizes per-pixel noise images and composites them
// through a small fixed effect graph.
//
// # Overview
//
// The generator is a pure function of a 32-bit seed and a pixel position:
// a nested PCG hash turns (seed, x, y) into a per-pixel generator state,
// and three draws from that state give the red, green and blue channels.
// Alpha is always 1. Because no state is shared between pixels, the
// generator runs as a data-parallel kernel on the CPU or, with the gpu
// package, as a compute shader.
//
// The effect graph has five nodes in a fixed topology:
//
//	raw-noise ──┬──────────────────────► color-select[0]
//	            └──► grayscale ──────────► color-select[1]
//	color-select ─┬──────────────────────► output[0]
//	              └──► blend[source] ────► output[1]
//	destination ─────► blend[destination]
//
// ColorMode picks raw or grayscale noise, BlendingEnabled picks the noise
// itself or the noise blended over the destination image with BlendMode.
//
// # Quick Start
//
//	dev := noisefx.NewCPUDevice(0)
//	defer dev.Close()
//
//	g, err := noisefx.CreateGraph(dev, dst)
//	if err != nil {
//	    return err
//	}
//	defer noisefx.DestroyGraph(g)
//
//	_ = g.Update(noisefx.Config{
//	    ColorMode:       noisefx.ColorModeGrayscale,
//	    BlendingEnabled: true,
//	    BlendMode:       noisefx.BlendOverlay,
//	})
//	out := noisefx.NewImage(dst.Width(), dst.Height())
//	err = g.Render(out, image.Point{})
//
// # Device sessions
//
// Graph resources belong to a Device. When a device is lost the graph must
// be rebuilt on a new one; Session automates that cycle.
//
// # Logging
//
// noisefx is silent by default. Use SetLogger to route its log/slog
// output to a handler.
package noisefx
