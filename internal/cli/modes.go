package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gogpu/noisefx"
)

func (c *CLI) modesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "modes",
		Short: "List blend modes and color modes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "INDEX\tBLEND MODE")
			for _, m := range noisefx.BlendModes() {
				fmt.Fprintf(tw, "%d\t%s\n", uint8(m), m)
			}
			fmt.Fprintln(tw)
			fmt.Fprintln(tw, "INDEX\tCOLOR MODE")
			for _, m := range []noisefx.ColorMode{noisefx.ColorModeRGB, noisefx.ColorModeGrayscale} {
				fmt.Fprintf(tw, "%d\t%s\n", uint8(m), m)
			}
			return tw.Flush()
		},
	}
}
