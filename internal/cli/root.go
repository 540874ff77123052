// Package cli provides the Cobra command structure for csvdoc.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/csvdoc/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// annotationVersion carries the build version on the root command.
const annotationVersion = "csvdoc.version"

// NewRootCommand creates the root csvdoc command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "csvdoc",
		Short: "Inspect and check CSV documents",
		Long: `csvdoc parses CSV text into a lossless document of rows, cells and columns.

It maps byte offsets back to rows and columns, renders documents as grids,
filters rows with CEL expressions, exports to SQLite and checks files for
unclosed quotes, ragged rows and other structural problems. CSV blocks
embedded in Markdown can be checked as well.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		Annotations:   map[string]string{annotationVersion: info.Version},
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.AddCommand(newCheckCommand())
	rootCmd.AddCommand(newLocateCommand())
	rootCmd.AddCommand(newShowCommand())
	rootCmd.AddCommand(newColumnCommand())
	rootCmd.AddCommand(newQueryCommand())
	rootCmd.AddCommand(newExportCommand())
	rootCmd.AddCommand(newRulesCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
