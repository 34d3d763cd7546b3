// Package pcg implements the per-pixel hash-seeded PCG generator used by
// the noise kernel.
//
// The generator follows the PCG-RXS-M-XS 32-bit variant popularised for GPU
// use by Jarzynski and Olano ("Hash Functions for GPU Rendering", JCGT 2020):
// a 32-bit LCG state advance followed by a random xorshift, a multiply and a
// final xorshift. The same constants are used by the WGSL kernel in
// internal/gpu/shaders/noise.wgsl; the two must stay in sync.
package pcg

import "math"

// Generator constants. Every pinned output in the tests depends on them.
const (
	// Multiplier is the LCG multiplier.
	Multiplier uint32 = 747796405

	// Increment is the LCG increment.
	Increment uint32 = 2891336453

	mixMultiplier uint32 = 277803737
)

// floatScale maps a 24-bit integer onto [0, 1).
const floatScale = 1.0 / (1 << 24)

// State is the generator state for a single pixel evaluation.
// It must not be shared between pixels.
type State uint32

// permute is the RXS-M-XS output permutation.
func permute(s uint32) uint32 {
	w := ((s >> ((s >> 28) + 4)) ^ s) * mixMultiplier
	return (w >> 22) ^ w
}

// Hash mixes a 32-bit value into a well distributed 32-bit value.
func Hash(v uint32) uint32 {
	return permute(v*Multiplier + Increment)
}

// Seed derives the initial state for the pixel at (x, y).
//
// Coordinates enter the hash as their IEEE-754 bit patterns, so every
// float32 value (including NaN and infinities) maps to a defined state.
func Seed(seed uint32, x, y float32) State {
	hy := Hash(math.Float32bits(y))
	hx := Hash(math.Float32bits(x) + hy)
	return State(Hash(seed + hx))
}

// Next advances the state and returns the next pseudo-random word.
func (s *State) Next() uint32 {
	*s = State(uint32(*s)*Multiplier + Increment)
	return permute(uint32(*s))
}

// Float returns the next value in [0, 1) with 24 bits of precision.
func (s *State) Float() float32 {
	return float32(s.Next()>>8) * floatScale
}

// RGB draws three consecutive values for the red, green and blue channels.
func RGB(seed uint32, x, y float32) (r, g, b float32) {
	s := Seed(seed, x, y)
	r = s.Float()
	g = s.Float()
	b = s.Float()
	return r, g, b
}
