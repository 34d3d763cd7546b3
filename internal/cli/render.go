package cli

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"image"

	"github.com/spf13/cobra"

	"github.com/gogpu/noisefx"
)

const (
	defaultWidth  = 512
	defaultHeight = 512
)

// errNoDestination is returned when blending is requested without --dst.
var errNoDestination = errors.New("blending requires a destination image (--dst)")

// renderOpts holds the flags of the render command.
type renderOpts struct {
	config      string // TOML config file
	output      string // output image path
	width       int
	height      int
	originX     int
	originY     int
	destination string // destination image path
	gpu         bool   // run the noise kernel on the GPU
	seedKey     string // deterministic seed source key; empty for OS entropy
	workers     int
	variant     int    // number of seeds skipped before rendering

	noise noisefx.Config
}

func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{
		width:  defaultWidth,
		height: defaultHeight,
		noise:  noisefx.DefaultConfig(),
	}
	var colorMode, blendMode string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a noise image",
		Long: `Render a noise image and write it as PNG, JPEG, BMP or TIFF.

Settings come from flags, from a TOML file (--config), or both; flags given
on the command line override the file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("color") {
				if err := opts.noise.ColorMode.UnmarshalText([]byte(colorMode)); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("blend-mode") {
				if err := opts.noise.BlendMode.UnmarshalText([]byte(blendMode)); err != nil {
					return err
				}
			}
			if opts.config != "" {
				l, err := loadConfig(opts.config)
				if err != nil {
					return err
				}
				applyConfig(&opts, l, cmd.Flags().Changed)
			}
			return c.runRender(cmd.Context(), &opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.config, "config", "", "TOML config file")
	f.StringVarP(&opts.output, "output", "o", "", "output image (.png, .jpg, .bmp, .tiff)")
	f.IntVar(&opts.width, "width", opts.width, "image width in pixels")
	f.IntVar(&opts.height, "height", opts.height, "image height in pixels")
	f.IntVar(&opts.originX, "origin-x", 0, "rendering-space x of the top-left pixel")
	f.IntVar(&opts.originY, "origin-y", 0, "rendering-space y of the top-left pixel")
	f.StringVar(&opts.destination, "dst", "", "destination image to blend over (scaled to the output size)")
	f.BoolVar(&opts.gpu, "gpu", false, "generate noise on the GPU")
	f.StringVar(&opts.seedKey, "seed-key", "", "derive seeds deterministically from this key")
	f.IntVar(&opts.workers, "workers", 0, "CPU worker goroutines (0 = GOMAXPROCS)")
	f.IntVar(&opts.variant, "variant", 0, "skip this many seeds of the source (pick another noise with the same --seed-key)")
	f.StringVar(&colorMode, "color", opts.noise.ColorMode.String(), "color mode: rgb, grayscale")
	f.BoolVar(&opts.noise.BlendingEnabled, "blend", false, "blend the noise over the destination")
	f.StringVar(&blendMode, "blend-mode", opts.noise.BlendMode.String(), "blend mode (see 'noisefx modes')")

	return cmd
}

// applyConfig copies every key defined in the file into opts unless the
// matching flag was set on the command line.
func applyConfig(opts *renderOpts, l *loadedConfig, changed func(string) bool) {
	set := func(key, flag string, apply func()) {
		if l.defined(key) && !changed(flag) {
			apply()
		}
	}
	set("output", "output", func() { opts.output = l.Output })
	set("width", "width", func() { opts.width = l.Width })
	set("height", "height", func() { opts.height = l.Height })
	set("origin_x", "origin-x", func() { opts.originX = l.OriginX })
	set("origin_y", "origin-y", func() { opts.originY = l.OriginY })
	set("destination", "dst", func() { opts.destination = l.Destination })
	set("gpu", "gpu", func() { opts.gpu = l.GPU })
	set("seed_key", "seed-key", func() { opts.seedKey = l.SeedKey })
	set("workers", "workers", func() { opts.workers = l.Workers })
	set("noise.color_mode", "color", func() { opts.noise.ColorMode = l.Noise.ColorMode })
	set("noise.blending", "blend", func() { opts.noise.BlendingEnabled = l.Noise.BlendingEnabled })
	set("noise.blend_mode", "blend-mode", func() { opts.noise.BlendMode = l.Noise.BlendMode })
	set("variant", "variant", func() { opts.variant = l.Variant })
	if l.defined("noise.seed_trigger") {
		opts.noise.SeedTrigger = l.Noise.SeedTrigger
	}
}

func (o *renderOpts) validate() error {
	if o.output == "" {
		return errors.New("no output file (use -o or set output in the config file)")
	}
	if _, err := outputFormat(o.output); err != nil {
		return err
	}
	if o.width <= 0 || o.height <= 0 {
		return fmt.Errorf("%w: %dx%d", noisefx.ErrInvalidSize, o.width, o.height)
	}
	if o.noise.BlendingEnabled && o.destination == "" {
		return errNoDestination
	}
	if o.variant < 0 {
		return fmt.Errorf("invalid variant %d", o.variant)
	}
	return o.noise.Validate()
}

// graphOptions builds the library options for o.
func (o *renderOpts) graphOptions() []noisefx.Option {
	opts := []noisefx.Option{noisefx.WithWorkers(o.workers)}
	src := noisefx.DefaultSeedSource()
	if o.seedKey != "" {
		src = noisefx.NewSeedSource(sha256.Sum256([]byte(o.seedKey)))
	}
	for range o.variant {
		src.Uint32()
	}
	return append(opts, noisefx.WithSeedSource(src))
}

func (c *CLI) runRender(ctx context.Context, o *renderOpts) error {
	if err := o.validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var dst *noisefx.Image
	if o.destination != "" {
		src, format, err := readImage(o.destination)
		if err != nil {
			return err
		}
		c.Logger.Debug("Loaded destination", "path", o.destination, "format", format, "size", src.Bounds().Size())
		dst = noisefx.ImageFromScaled(src, o.width, o.height)
	}

	open, err := c.deviceFactory(o)
	if err != nil {
		return err
	}

	p := newProgress(c.Logger)
	s := noisefx.NewSession(open, dst, o.graphOptions()...)
	defer s.Close()

	if err := s.Update(o.noise); err != nil {
		return err
	}

	out := noisefx.NewImage(o.width, o.height)
	if err := s.Render(out, image.Pt(o.originX, o.originY)); err != nil {
		return err
	}
	if err := writeImage(o.output, out.NRGBA()); err != nil {
		return err
	}
	p.done("Rendered", "output", o.output, "size", fmt.Sprintf("%dx%d", o.width, o.height),
		"seed", s.Graph().Seed(), "device", s.Graph().Device().Name())
	return nil
}
