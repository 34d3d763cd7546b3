package noisefx

import (
	"fmt"
	"image"

	"github.com/gogpu/noisefx/internal/blend"
	"github.com/gogpu/noisefx/internal/parallel"
	"github.com/gogpu/noisefx/internal/pcg"
)

// NodeID identifies a node of the effect graph. IDs are also the
// evaluation order: every node's inputs have smaller IDs.
type NodeID int

// Graph nodes.
const (
	NodeRawNoise    NodeID = iota // generator
	NodeGrayscale                 // luminance of NodeRawNoise
	NodeColorSelect               // NodeRawNoise or NodeGrayscale by ColorMode
	NodeBlend                     // NodeColorSelect over the destination image
	NodeOutput                    // NodeColorSelect or NodeBlend by BlendingEnabled

	nodeCount
)

// Destination stands for the externally supplied destination image in
// edge lists. It is not a node.
const Destination NodeID = -1

// NodeCount is the number of nodes in every graph.
const NodeCount = int(nodeCount)

// String returns the node name.
func (id NodeID) String() string {
	if id == Destination {
		return "destination"
	}
	if id < 0 || id >= nodeCount {
		return fmt.Sprintf("NodeID(%d)", int(id))
	}
	return topology[id].name
}

// NodeKind is the variant of a node.
type NodeKind uint8

const (
	KindGenerator NodeKind = iota
	KindGrayscale
	KindSelector
	KindBlend
)

func (k NodeKind) String() string {
	switch k {
	case KindGenerator:
		return "generator"
	case KindGrayscale:
		return "grayscale"
	case KindSelector:
		return "selector"
	case KindBlend:
		return "blend"
	default:
		return fmt.Sprintf("NodeKind(%d)", uint8(k))
	}
}

// Edge connects the output of From to input port Port of To.
type Edge struct {
	From NodeID
	To   NodeID
	Port int
}

// Blend node ports.
const (
	BlendPortDestination = 0
	BlendPortSource      = 1
)

// topology is the fixed shape of every graph, indexed by NodeID. The
// inputs of each node are listed in port order.
var topology = [nodeCount]struct {
	kind   NodeKind
	name   string
	inputs []NodeID
}{
	NodeRawNoise:    {KindGenerator, "raw-noise", nil},
	NodeGrayscale:   {KindGrayscale, "grayscale", []NodeID{NodeRawNoise}},
	NodeColorSelect: {KindSelector, "color-select", []NodeID{NodeRawNoise, NodeGrayscale}},
	NodeBlend:       {KindBlend, "blend", []NodeID{Destination, NodeColorSelect}},
	NodeOutput:      {KindSelector, "output", []NodeID{NodeColorSelect, NodeBlend}},
}

// Edges returns the edge list shared by every graph.
func Edges() []Edge {
	var edges []Edge
	for id, t := range topology {
		for port, from := range t.inputs {
			edges = append(edges, Edge{From: from, To: NodeID(id), Port: port})
		}
	}
	return edges
}

// NodeInfo is a snapshot of one node's parameters.
type NodeInfo struct {
	ID     NodeID
	Kind   NodeKind
	Name   string
	Inputs []NodeID

	// Seed is the generator seed (KindGenerator only).
	Seed uint32
	// Index is the selected input port (KindSelector only).
	Index int
	// BlendMode is the blend operator (KindBlend only).
	BlendMode BlendMode
}

// node is one graph node: a tagged variant whose parameters are
// interpreted according to kind.
type node struct {
	kind NodeKind

	seed   uint32      // generator
	kernel NoiseKernel // generator
	index  int         // selector
	mode   BlendMode   // blend

	// buf holds the node's output. Selectors have none; they pass their
	// selected input through.
	buf *Image
}

// target returns the node's output buffer sized w x h.
func (n *node) target(w, h int) *Image {
	if n.buf == nil || n.buf.width != w || n.buf.height != h {
		n.buf = NewImage(w, h)
	}
	return n.buf
}

// renderGrayscale writes the luminance of src into dst, row band by band.
func renderGrayscale(pool *parallel.Pool, dst, src *Image) {
	pool.Rows(dst.height, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			in, out := src.Row(y), dst.Row(y)
			for x, c := range in {
				out[x] = c.Gray()
			}
		}
	})
}

// dissolveSalt decorrelates the dissolve threshold from the noise itself.
const dissolveSalt = 0x9e3779b9

// renderBlend composites src over backdrop into dst with mode.
func renderBlend(pool *parallel.Pool, dst, backdrop, src *Image, mode BlendMode, seed uint32, origin image.Point) {
	m := blend.Mode(mode)
	pool.Rows(dst.height, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			s, d, out := src.Row(y), backdrop.Row(y), dst.Row(y)
			for x := range out {
				if m == blend.ModeDissolve {
					c := PixelCenter(origin, x, y)
					st := pcg.Seed(seed^dissolveSalt, c.X, c.Y)
					out[x] = fromBlend(blend.Dissolve(s[x].blend(), d[x].blend(), st.Float()))
					continue
				}
				out[x] = fromBlend(blend.Blend(s[x].blend(), d[x].blend(), m))
			}
		}
	})
}
