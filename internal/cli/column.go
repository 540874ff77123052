package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// ErrColumnOutOfRange is returned for a column index that is not a positive
// integer or lies past the document's last column.
var ErrColumnOutOfRange = errors.New("column out of range")

type columnFlags struct {
	documentFlags
	numbered bool
	skip     int
}

func newColumnCommand() *cobra.Command {
	flags := &columnFlags{}

	cmd := &cobra.Command{
		Use:   "column FILE INDEX",
		Short: "Print the values of one column",
		Long: `Print the value of the cell at column INDEX (1-based) of every row
that has one, one value per line and with CSV quoting removed. Rows too
short to reach the column are skipped.`,
		Example: `  csvdoc column data.csv 2
  csvdoc column --skip 1 --numbered data.csv 3`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runColumn(cmd, args[0], args[1], flags)
		},
	}

	addDocumentFlags(cmd, &flags.documentFlags)
	cmd.Flags().BoolVarP(&flags.numbered, "numbered", "n", false, "prefix each value with its row number")
	cmd.Flags().IntVar(&flags.skip, "skip", 0, "number of leading rows to skip, such as a header")

	return cmd
}

func runColumn(cmd *cobra.Command, path, indexArg string, flags *columnFlags) error {
	index, err := strconv.Atoi(indexArg)
	if err != nil || index < 1 {
		return fmt.Errorf("%w: %q is not a positive integer", ErrColumnOutOfRange, indexArg)
	}

	loaded, err := loadDocument(cmd, path, &flags.documentFlags)
	if err != nil {
		return err
	}

	doc := loaded.Region.Document
	column, ok := doc.Column(index - 1)
	if !ok {
		return fmt.Errorf("%w: %s has %d columns, requested %d",
			ErrColumnOutOfRange, loaded.File.Path, doc.ColumnCount(), index)
	}

	var out strings.Builder
	for rowIndex := max(flags.skip, 0); rowIndex < doc.RowCount(); rowIndex++ {
		cell, ok := column.Cell(rowIndex)
		if !ok {
			continue
		}
		if flags.numbered {
			fmt.Fprintf(&out, "%d\t", rowIndex+1)
		}
		out.WriteString(cell.Value())
		out.WriteByte('\n')
	}

	_, err = fmt.Fprint(cmd.OutOrStdout(), out.String())
	return err
}
