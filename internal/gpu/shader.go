//go:build !nogpu

package gpu

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/gogpu/naga"
)

//go:embed shaders/noise.wgsl
var noiseShaderSource string

// workgroupSize is the edge length of the shader's square workgroup.
const workgroupSize = 8

// noiseSPIRV compiles the noise shader once per process.
var noiseSPIRV = sync.OnceValues(func() ([]uint32, error) {
	return compileSPIRV(noiseShaderSource)
})

// compileSPIRV compiles WGSL source to SPIR-V words.
func compileSPIRV(wgsl string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(wgsl)
	if err != nil {
		return nil, fmt.Errorf("compile shader: %w", err)
	}
	if len(spirvBytes)%4 != 0 {
		return nil, fmt.Errorf("compile shader: SPIR-V length %d is not a multiple of 4", len(spirvBytes))
	}

	// SPIR-V is little-endian 32-bit words.
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return words, nil
}

// dispatchSize returns the number of workgroups covering n pixels.
func dispatchSize(n uint32) uint32 {
	return (n + workgroupSize - 1) / workgroupSize
}
