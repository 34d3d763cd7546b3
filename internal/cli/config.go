package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/gogpu/noisefx"
)

// fileConfig is the TOML layout of a render config file:
//
//	output = "noise.png"
//	width = 512
//	height = 512
//	origin_x = 0
//	origin_y = 0
//	destination = "photo.jpg"
//	gpu = false
//	seed_key = "my-render"
//	variant = 0
//
//	[noise]
//	color_mode = "grayscale"
//	blending = true
//	blend_mode = "soft-light"
//	seed_trigger = 0
type fileConfig struct {
	Output      string         `toml:"output"`
	Width       int            `toml:"width"`
	Height      int            `toml:"height"`
	OriginX     int            `toml:"origin_x"`
	OriginY     int            `toml:"origin_y"`
	Destination string         `toml:"destination"`
	GPU         bool           `toml:"gpu"`
	SeedKey     string         `toml:"seed_key"`
	Workers     int            `toml:"workers"`
	Variant     int            `toml:"variant"`
	Noise       noisefx.Config `toml:"noise"`
}

// loadedConfig is a decoded config file together with the set of keys it
// defined. Keys not present in the file leave the corresponding flag alone.
type loadedConfig struct {
	fileConfig
	meta toml.MetaData
}

// defined reports whether key (dotted for tables, e.g. "noise.blend_mode")
// appeared in the file.
func (l *loadedConfig) defined(key string) bool {
	return l.meta.IsDefined(strings.Split(key, ".")...)
}

// loadConfig reads and decodes a TOML config file.
func loadConfig(path string) (*loadedConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return decodeConfig(path, string(data))
}

// decodeConfig decodes TOML text. Unknown keys are an error so that typos
// do not silently fall back to defaults. name is used in error messages.
func decodeConfig(name, data string) (*loadedConfig, error) {
	var l loadedConfig
	md, err := toml.Decode(data, &l.fileConfig)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", name, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("config %s: unknown keys: %s", name, strings.Join(keys, ", "))
	}
	if err := l.Noise.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", name, err)
	}
	l.meta = md
	return &l, nil
}
