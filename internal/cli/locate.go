package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/csvdoc/internal/logging"
	"github.com/yaklabco/csvdoc/internal/ui/pretty"
	"github.com/yaklabco/csvdoc/pkg/source"
)

// ErrOffsetOutOfRange is returned when an offset lies outside the document.
var ErrOffsetOutOfRange = errors.New("offset outside the document")

type locateFlags struct {
	documentFlags
	json bool
}

// location is the JSON form of a locate result. Row and column are 1-based;
// column is zero when the offset is not inside a cell.
type location struct {
	Path   string `json:"path"`
	Offset int    `json:"offset"`
	Line   int    `json:"line"`
	Col    int    `json:"col"`
	Row    int    `json:"row"`
	Column int    `json:"column,omitempty"`
	Value  string `json:"value,omitempty"`
}

func newLocateCommand() *cobra.Command {
	flags := &locateFlags{}

	cmd := &cobra.Command{
		Use:   "locate FILE OFFSET",
		Short: "Map a byte offset to its row and column",
		Long: `Report the row and column of the cell containing a byte offset.

OFFSET counts bytes from the start of FILE. It may also be given as
LINE:COL, both 1-based. The offset just past a line break belongs to the
next row.`,
		Example: `  csvdoc locate data.csv 42
  csvdoc locate --json data.csv 3:7
  csvdoc locate --region 2 README.md 310`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLocate(cmd, args[0], args[1], flags)
		},
	}

	addDocumentFlags(cmd, &flags.documentFlags)
	cmd.Flags().BoolVar(&flags.json, "json", false, "print the result as JSON")

	return cmd
}

func runLocate(cmd *cobra.Command, path, offsetArg string, flags *locateFlags) error {
	loaded, err := loadDocument(cmd, path, &flags.documentFlags)
	if err != nil {
		return err
	}

	offset, err := parseOffset(loaded.File, offsetArg)
	if err != nil {
		return err
	}

	region := loaded.Region
	if offset < region.Range.Start || offset > region.Range.End {
		return fmt.Errorf("%w: %d", ErrOffsetOutOfRange, offset)
	}
	relative := offset - region.Range.Start
	logging.Default().Debug("locating offset",
		logging.FieldPath, loaded.File.Path,
		logging.FieldOffset, offset,
	)

	pos, ok := region.Document.Position(relative)
	if !ok {
		return fmt.Errorf("%w: %d", ErrOffsetOutOfRange, offset)
	}

	loc := location{
		Path:   loaded.File.Path,
		Offset: offset,
		Row:    pos.Row + 1,
	}
	loc.Line, loc.Col = loaded.File.LineAt(offset)

	if row, ok := region.Document.Row(pos.Row); ok {
		if _, inCell := row.ColumnIndex(relative); inCell {
			loc.Column = pos.Column + 1
			if cell, ok := row.Cell(pos.Column); ok {
				loc.Value = cell.Value()
			}
		}
	}

	out := cmd.OutOrStdout()
	if flags.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(loc); err != nil {
			return fmt.Errorf("encode location: %w", err)
		}
		return nil
	}

	_, err = fmt.Fprintf(out, "%s:%d:%d: %s\n", loc.Path, loc.Line, loc.Col, pretty.FormatCell(loc.Row, loc.Column))
	return err
}

// parseOffset accepts a byte offset or a LINE:COL pair.
func parseOffset(file *source.Snapshot, arg string) (int, error) {
	lineArg, colArg, isPair := strings.Cut(arg, ":")
	if !isPair {
		offset, err := strconv.Atoi(arg)
		if err != nil {
			return 0, fmt.Errorf("invalid offset %q: %w", arg, err)
		}
		return offset, nil
	}

	line, err := strconv.Atoi(lineArg)
	if err != nil {
		return 0, fmt.Errorf("invalid line %q: %w", lineArg, err)
	}
	col, err := strconv.Atoi(colArg)
	if err != nil {
		return 0, fmt.Errorf("invalid column %q: %w", colArg, err)
	}

	offset, ok := file.Offset(line, col)
	if !ok {
		return 0, fmt.Errorf("%w: line %d, col %d", ErrOffsetOutOfRange, line, col)
	}
	return offset, nil
}
