package noisefx

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/noisefx/internal/parallel"
)

// ErrNoDestination is returned when blending is enabled but the graph has
// no destination image.
var ErrNoDestination = errors.New("noisefx: blending enabled without a destination image")

// Graph is the five-node effect graph bound to one device.
//
// The topology is fixed at creation: raw noise feeds a grayscale node and
// the color selector, the color selector feeds the blend node and the
// output selector, and the blend node feeds the output selector. Updates
// only change node parameters.
//
// Graph is not safe for concurrent use. Construction, updates and renders
// must happen on one goroutine at a time.
type Graph struct {
	dev   Device
	nodes [nodeCount]node
	dst   *Image
	cfg   Config

	seeds *SeedSource
	pool  *parallel.Pool
	built bool

	// evaluated holds per-render node outputs; reused across renders.
	evaluated [nodeCount]*Image
}

// CreateGraph builds a graph on dev. dst is the destination image used by
// the blend node; it may be nil and supplied later with SetDestination.
//
// Failure to acquire device resources returns a *ResourceError and
// leaves nothing allocated.
func CreateGraph(dev Device, dst *Image, opts ...Option) (*Graph, error) {
	if dev == nil {
		return nil, &ResourceError{Op: "create graph", Err: errors.New("nil device")}
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	propagateLogger(dev)

	kernel, err := dev.NewNoiseKernel()
	if err != nil {
		return nil, resourceError("create graph", fmt.Errorf("%s: %w", dev.Name(), err))
	}
	if kernel == nil {
		return nil, &ResourceError{Op: "create graph", Err: ErrKernelUnavailable}
	}

	g := &Graph{
		dev:   dev,
		dst:   dst,
		cfg:   DefaultConfig(),
		seeds: o.seeds,
		pool:  parallel.NewPool(o.workers),
		built: true,
	}
	for id := range g.nodes {
		g.nodes[id].kind = topology[id].kind
	}
	g.nodes[NodeRawNoise].kernel = kernel
	g.nodes[NodeBlend].mode = g.cfg.BlendMode

	Logger().Info("noisefx: graph created", "device", dev.Name(), "workers", g.pool.Workers())
	return g, nil
}

// DestroyGraph releases every node resource of g. It is a no-op for nil
// or already destroyed graphs. The device itself is not closed.
func DestroyGraph(g *Graph) {
	if g == nil || !g.built {
		return
	}
	if k := g.nodes[NodeRawNoise].kernel; k != nil {
		k.Release()
	}
	g.pool.Close()
	for id := range g.nodes {
		g.nodes[id] = node{}
	}
	g.evaluated = [nodeCount]*Image{}
	g.built = false
	Logger().Info("noisefx: graph destroyed", "device", g.dev.Name())
}

// UpdateGraph applies cfg to g and draws a new seed. See Graph.Update.
func UpdateGraph(g *Graph, cfg Config) error {
	return g.Update(cfg)
}

// Destroy is shorthand for DestroyGraph(g).
func (g *Graph) Destroy() { DestroyGraph(g) }

// Update draws a fresh seed from the graph's seed source and pushes it,
// together with the selector indices and blend operator derived from
// cfg, into the nodes. No node or edge is created or removed.
//
// Update returns an error only for an invalid cfg, in which case the
// graph is unchanged. It panics with ErrNoGraph if g was never built or
// has been destroyed.
func (g *Graph) Update(cfg Config) error {
	g.mustBeBuilt()
	if err := cfg.Validate(); err != nil {
		return err
	}
	seed := g.seeds.Uint32()

	g.nodes[NodeRawNoise].seed = seed
	g.nodes[NodeColorSelect].index = cfg.colorIndex()
	g.nodes[NodeBlend].mode = cfg.BlendMode
	g.nodes[NodeOutput].index = cfg.outputIndex()
	g.cfg = cfg

	Logger().Debug("noisefx: graph updated",
		"seed", seed,
		"color", cfg.ColorMode,
		"blending", cfg.BlendingEnabled,
		"blend_mode", cfg.BlendMode)
	return nil
}

// Render evaluates the graph into out. origin is the rendering-space
// position of out's top-left pixel.
//
// Only nodes reachable through the currently selected selector inputs are
// evaluated. When blending is enabled the destination must have the same
// size as out.
func (g *Graph) Render(out *Image, origin image.Point) error {
	g.mustBeBuilt()
	if g.nodes[NodeOutput].index == 1 {
		if g.dst == nil {
			return ErrNoDestination
		}
		if g.dst.width != out.width || g.dst.height != out.height {
			return fmt.Errorf("%w: output %dx%d, destination %dx%d",
				ErrInvalidSize, out.width, out.height, g.dst.width, g.dst.height)
		}
	}

	g.evaluated = [nodeCount]*Image{}
	// The generator writes straight into out when nothing downstream
	// needs a separate copy of raw noise.
	result, err := g.eval(NodeOutput, out, origin)
	if err != nil {
		return err
	}
	if result != out {
		out.CopyFrom(result)
	}
	return nil
}

// eval returns the output of node id, evaluating its inputs first.
func (g *Graph) eval(id NodeID, out *Image, origin image.Point) (*Image, error) {
	if id == Destination {
		return g.dst, nil
	}
	if img := g.evaluated[id]; img != nil {
		return img, nil
	}

	n := &g.nodes[id]
	inputs := topology[id].inputs
	w, h := out.width, out.height

	var img *Image
	switch n.kind {
	case KindGenerator:
		img = g.generatorTarget(out)
		if err := n.kernel.Generate(img, n.seed, origin); err != nil {
			if IsDeviceLost(err) {
				Logger().Warn("noisefx: device lost during render", "device", g.dev.Name())
			}
			return nil, resourceError("generate noise", err)
		}
		Logger().Debug("noisefx: noise generated", "seed", n.seed, "width", w, "height", h)

	case KindGrayscale:
		src, err := g.eval(inputs[0], out, origin)
		if err != nil {
			return nil, err
		}
		img = n.target(w, h)
		renderGrayscale(g.pool, img, src)

	case KindSelector:
		var err error
		if img, err = g.eval(inputs[n.index], out, origin); err != nil {
			return nil, err
		}

	case KindBlend:
		backdrop, err := g.eval(inputs[BlendPortDestination], out, origin)
		if err != nil {
			return nil, err
		}
		src, err := g.eval(inputs[BlendPortSource], out, origin)
		if err != nil {
			return nil, err
		}
		img = n.target(w, h)
		renderBlend(g.pool, img, backdrop, src, n.mode, g.nodes[NodeRawNoise].seed, origin)
	}

	g.evaluated[id] = img
	return img, nil
}

// generatorTarget picks the buffer for raw noise. Raw noise can go
// straight into out unless a later node reads it while writing out.
func (g *Graph) generatorTarget(out *Image) *Image {
	direct := g.nodes[NodeColorSelect].index == 0 && g.nodes[NodeOutput].index == 0
	if direct {
		return out
	}
	return g.nodes[NodeRawNoise].target(out.width, out.height)
}

// SetDestination replaces the destination image read by the blend node.
func (g *Graph) SetDestination(dst *Image) {
	g.mustBeBuilt()
	g.dst = dst
}

// Destination returns the current destination image.
func (g *Graph) Destination() *Image { return g.dst }

// Device returns the device the graph was built on.
func (g *Graph) Device() Device { return g.dev }

// Seed returns the seed pushed into the generator by the last Update.
func (g *Graph) Seed() uint32 {
	g.mustBeBuilt()
	return g.nodes[NodeRawNoise].seed
}

// Config returns the configuration applied by the last Update.
func (g *Graph) Config() Config { return g.cfg }

// Built reports whether g holds live node resources.
func (g *Graph) Built() bool { return g != nil && g.built }

// Nodes returns a snapshot of every node in ID order.
func (g *Graph) Nodes() []NodeInfo {
	g.mustBeBuilt()
	infos := make([]NodeInfo, nodeCount)
	for id := range g.nodes {
		n := &g.nodes[id]
		t := topology[id]
		info := NodeInfo{
			ID:     NodeID(id),
			Kind:   n.kind,
			Name:   t.name,
			Inputs: append([]NodeID(nil), t.inputs...),
		}
		switch n.kind {
		case KindGenerator:
			info.Seed = n.seed
		case KindSelector:
			info.Index = n.index
		case KindBlend:
			info.BlendMode = n.mode
		}
		infos[id] = info
	}
	return infos
}

// Edges returns the graph's edge list.
func (g *Graph) Edges() []Edge {
	g.mustBeBuilt()
	return Edges()
}

func (g *Graph) mustBeBuilt() {
	if g == nil || !g.built {
		panic(ErrNoGraph)
	}
}
