package noisefx

import (
	crand "crypto/rand"
	"math/rand/v2"
	"sync"
)

// SeedSource produces the 32-bit seeds pushed into the generator node.
//
// SeedSource is safe for concurrent use. It is never reseeded implicitly.
type SeedSource struct {
	mu  sync.Mutex
	rng *rand.ChaCha8
}

// NewSeedSource returns a deterministic source for the given key.
func NewSeedSource(key [32]byte) *SeedSource {
	return &SeedSource{rng: rand.NewChaCha8(key)}
}

// newEntropySeedSource seeds a source from the operating system.
func newEntropySeedSource() *SeedSource {
	var key [32]byte
	// crypto/rand.Read never returns an error on supported platforms.
	_, _ = crand.Read(key[:])
	return NewSeedSource(key)
}

// Uint32 draws the next seed.
func (s *SeedSource) Uint32() uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return uint32(s.rng.Uint64() >> 32)
}

// processSeeds is the process-wide source, created once at package init.
var processSeeds = newEntropySeedSource()

// DefaultSeedSource returns the process-wide seed source used by graphs
// that were not given one with WithSeedSource.
func DefaultSeedSource() *SeedSource { return processSeeds }
