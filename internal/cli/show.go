package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/csvdoc/internal/logging"
	"github.com/yaklabco/csvdoc/internal/ui/pretty"
)

type showFlags struct {
	documentFlags
	header   bool
	maxRows  int
	maxWidth int
}

func newShowCommand() *cobra.Command {
	flags := &showFlags{}

	cmd := &cobra.Command{
		Use:   "show FILE",
		Short: "Render a document as a grid",
		Long: `Draw the rows of a CSV document as a bordered grid.

Each row is numbered from 1. Rows with fewer cells than the widest row are
padded, and line breaks inside quoted values are shown as ↵. Use - to read
from standard input.`,
		Example: `  csvdoc show data.csv
  csvdoc show --header --max-rows 20 data.csv
  cat data.csv | csvdoc show -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, args[0], flags)
		},
	}

	addDocumentFlags(cmd, &flags.documentFlags)
	cmd.Flags().BoolVar(&flags.header, "header", false, "use the first row as column titles")
	cmd.Flags().IntVar(&flags.maxRows, "max-rows", 0, "maximum number of rows to draw (0 = all)")
	cmd.Flags().IntVar(&flags.maxWidth, "max-width", 0, "truncate cell values longer than this (0 = 40)")

	return cmd
}

func runShow(cmd *cobra.Command, path string, flags *showFlags) error {
	loaded, err := loadDocument(cmd, path, &flags.documentFlags)
	if err != nil {
		return err
	}

	doc := loaded.Region.Document
	if doc.RowCount() == 0 {
		logging.Default().Info("document is empty", logging.FieldPath, loaded.File.Path)
		return nil
	}

	colorMode, _ := cmd.Flags().GetString("color")
	out := cmd.OutOrStdout()
	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, out))

	grid := styles.FormatGrid(doc, pretty.GridOptions{
		Header:       flags.header,
		MaxRows:      flags.maxRows,
		MaxCellWidth: flags.maxWidth,
	})

	_, err = fmt.Fprint(out, grid)
	return err
}
