package pretty

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/yaklabco/csvdoc/pkg/csvdoc"
)

const (
	indexHeader     = "#"
	newlineMarker   = "↵"
	ellipsis        = "…"
	defaultMaxWidth = 40
)

// GridOptions controls how a document is drawn as a grid.
type GridOptions struct {
	// Header renders the first row as column titles.
	Header bool

	// MaxRows limits the number of data rows drawn. Zero draws all rows.
	MaxRows int

	// MaxCellWidth truncates longer cell values. Zero uses a default of 40.
	MaxCellWidth int
}

// FormatGrid draws the document as a bordered grid with a leading row-number
// column. Rows shorter than the widest row are padded with empty cells.
// Newlines inside quoted values are shown as a marker so every row stays on
// one line.
func (s *Styles) FormatGrid(doc *csvdoc.Document, opts GridOptions) string {
	rows := doc.Rows()
	if len(rows) == 0 {
		return ""
	}

	maxWidth := opts.MaxCellWidth
	if maxWidth <= 0 {
		maxWidth = defaultMaxWidth
	}
	columns := doc.ColumnCount()

	headers := make([]string, 0, columns+1)
	headers = append(headers, indexHeader)

	start := 0
	if opts.Header {
		values := rows[0].Values()
		for i := range columns {
			name := ""
			if i < len(values) {
				name = displayValue(values[i], maxWidth)
			}
			headers = append(headers, name)
		}
		start = 1
	} else {
		for i := range columns {
			headers = append(headers, strconv.Itoa(i+1))
		}
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.GridBorder).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return s.GridHeader
			case col == 0:
				return s.GridIndex
			default:
				return s.GridCell
			}
		})

	drawn := 0
	for i := start; i < len(rows); i++ {
		if opts.MaxRows > 0 && drawn == opts.MaxRows {
			break
		}
		values := rows[i].Values()
		line := make([]string, columns+1)
		line[0] = strconv.Itoa(i + 1)
		for j, v := range values {
			line[j+1] = displayValue(v, maxWidth)
		}
		t.Row(line...)
		drawn++
	}

	out := t.String()
	if hidden := len(rows) - start - drawn; hidden > 0 {
		out += "\n" + s.Dim.Render("… "+strconv.Itoa(hidden)+" more rows")
	}
	return out + "\n"
}

func displayValue(value string, maxWidth int) string {
	value = strings.ReplaceAll(value, "\r\n", newlineMarker)
	value = strings.ReplaceAll(value, "\n", newlineMarker)

	runes := []rune(value)
	if len(runes) <= maxWidth {
		return value
	}
	return string(runes[:maxWidth-1]) + ellipsis
}
