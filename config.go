package noisefx

import "fmt"

// Config holds the values the host controls.
//
// Config is comparable. Hosts typically compare the new value with the
// previous one and update the graph only when they differ; SeedTrigger
// exists so that a host can force such a difference (and with it a new
// seed) without touching any visible setting.
type Config struct {
	ColorMode       ColorMode `toml:"color_mode"`
	BlendingEnabled bool      `toml:"blending"`
	BlendMode       BlendMode `toml:"blend_mode"`
	SeedTrigger     uint8     `toml:"seed_trigger"`
}

// DefaultConfig returns RGB noise without blending.
func DefaultConfig() Config {
	return Config{
		ColorMode: ColorModeRGB,
		BlendMode: BlendMultiply,
	}
}

// Validate reports whether every enumerated field holds a defined value.
func (c Config) Validate() error {
	if !c.ColorMode.Valid() {
		return fmt.Errorf("noisefx: invalid color mode %d", uint8(c.ColorMode))
	}
	if !c.BlendMode.Valid() {
		return fmt.Errorf("noisefx: invalid blend mode %d", uint8(c.BlendMode))
	}
	return nil
}

// Reseed returns c with SeedTrigger advanced, wrapping at 255.
func (c Config) Reseed() Config {
	c.SeedTrigger++
	return c
}

// colorIndex is the color selector input chosen by c.
func (c Config) colorIndex() int { return int(c.ColorMode) }

// outputIndex is the output selector input chosen by c: 0 for noise only,
// 1 for blended.
func (c Config) outputIndex() int {
	if c.BlendingEnabled {
		return 1
	}
	return 0
}
