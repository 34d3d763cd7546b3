package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gogpu/noisefx"
)

func (c *CLI) evalCommand() *cobra.Command {
	var pixel bool

	cmd := &cobra.Command{
		Use:   "eval SEED X Y",
		Short: "Print the noise color at one coordinate",
		Long: `Print the noise color for a seed at a rendering-space coordinate.

With --pixel, X and Y are integer pixel indices and the pixel center
(X+0.5, Y+0.5) is evaluated, as the render command does.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			seed, err := strconv.ParseUint(args[0], 0, 32)
			if err != nil {
				return fmt.Errorf("invalid seed %q: %w", args[0], err)
			}
			x, err := strconv.ParseFloat(args[1], 32)
			if err != nil {
				return fmt.Errorf("invalid x %q: %w", args[1], err)
			}
			y, err := strconv.ParseFloat(args[2], 32)
			if err != nil {
				return fmt.Errorf("invalid y %q: %w", args[2], err)
			}

			coord := noisefx.Coord{X: float32(x), Y: float32(y)}
			if pixel {
				coord.X += 0.5
				coord.Y += 0.5
			}
			col := noisefx.Evaluate(uint32(seed), coord)
			_, err = fmt.Fprintln(cmd.OutOrStdout(), formatColor(col))
			return err
		},
	}

	cmd.Flags().BoolVar(&pixel, "pixel", false, "treat X and Y as pixel indices and sample the pixel center")
	return cmd
}

// formatColor prints the channels with full float32 precision.
func formatColor(c noisefx.RGBA) string {
	f := func(v float32) string { return strconv.FormatFloat(float64(v), 'g', -1, 32) }
	return fmt.Sprintf("r=%s g=%s b=%s a=%s", f(c.R), f(c.G), f(c.B), f(c.A))
}
