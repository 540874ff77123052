package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/csvdoc/internal/logging"
	"github.com/yaklabco/csvdoc/pkg/query"
)

// ErrMissingWhere is returned when query runs without an expression.
var ErrMissingWhere = errors.New("--where is required")

type queryFlags struct {
	documentFlags
	where  string
	header bool
	count  bool
}

func newQueryCommand() *cobra.Command {
	flags := &queryFlags{}

	cmd := &cobra.Command{
		Use:   "query FILE --where EXPR",
		Short: "Print the rows matching a CEL expression",
		Long: `Print the rows for which a CEL expression is true, exactly as they appear
in the input, so the output is itself CSV.

The expression can use:
  row      zero-based row index (int)
  cells    cell values of the row with quoting removed (list of string)
  columns  column count of the whole document (int)`,
		Example: `  csvdoc query data.csv --where 'size(cells) != columns'
  csvdoc query data.csv --header --where 'cells[2] == "DE"'
  csvdoc query data.csv --count --where 'row > 0 && cells[0].startsWith("A")'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, args[0], flags)
		},
	}

	addDocumentFlags(cmd, &flags.documentFlags)
	cmd.Flags().StringVarP(&flags.where, "where", "w", "", "CEL expression selecting rows")
	cmd.Flags().BoolVar(&flags.header, "header", false, "always print the first row")
	cmd.Flags().BoolVarP(&flags.count, "count", "c", false, "print only the number of matching rows")

	return cmd
}

func runQuery(cmd *cobra.Command, path string, flags *queryFlags) error {
	if strings.TrimSpace(flags.where) == "" {
		return ErrMissingWhere
	}

	filter, err := query.Compile(flags.where)
	if err != nil {
		return err
	}

	loaded, err := loadDocument(cmd, path, &flags.documentFlags)
	if err != nil {
		return err
	}
	doc := loaded.Region.Document

	matched, err := filter.Select(commandContext(cmd), doc)
	if err != nil {
		return err
	}

	logging.Default().Debug("query evaluated",
		logging.FieldExpression, filter.String(),
		logging.FieldRows, doc.RowCount(),
		logging.FieldMatched, len(matched),
	)

	out := cmd.OutOrStdout()
	if flags.count {
		_, err := fmt.Fprintln(out, len(matched))
		return err
	}

	if flags.header && (len(matched) == 0 || matched[0] != 0) {
		matched = append([]int{0}, matched...)
	}

	var buf strings.Builder
	for _, index := range matched {
		row, ok := doc.Row(index)
		if !ok {
			continue
		}
		buf.WriteString(row.String())
		if !row.EndsWithNewLine() {
			buf.WriteByte('\n')
		}
	}

	_, err = fmt.Fprint(out, buf.String())
	return err
}
