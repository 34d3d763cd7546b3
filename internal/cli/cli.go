// Package cli implements the noisefx command-line interface.
//
// Commands:
//   - render: render a noise image, optionally blended over a destination image
//   - eval: print the noise color at one rendering-space coordinate
//   - modes: list the blend modes and their indices
//   - version: print build information
//
// Logging goes to stderr through charmbracelet/log, which also receives the
// library's slog output. --verbose lowers the level to debug.
package cli

import (
	"io"
	"log/slog"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/gogpu/noisefx"
	"github.com/gogpu/noisefx/internal/buildinfo"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	out io.Writer
}

// New creates a CLI writing command output to out and logs to logw. The
// logger is installed as the noisefx library logger.
func New(out, logw io.Writer, level log.Level) *CLI {
	c := &CLI{
		Logger: newLogger(logw, level),
		out:    out,
	}
	noisefx.SetLogger(slog.New(c.Logger))
	return c
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "noisefx",
		Short:        "noisefx renders deterministic per-pixel noise",
		Long:         `noisefx renders per-pixel PCG noise images and composites them over a destination image with any of 26 blend modes.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.SetOut(c.out)

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.evalCommand())
	root.AddCommand(c.modesCommand())
	root.AddCommand(c.versionCommand())

	return root
}

func (c *CLI) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := io.WriteString(cmd.OutOrStdout(), buildinfo.String()+"\n")
			return err
		},
	}
}
