package csvdoc

import (
	"strings"
	"sync"
)

// Document is a parsed CSV text: an ordered list of rows.
type Document struct {
	rows []*Row

	columnsOnce sync.Once
	columns     []*Column
}

// NewDocument creates a Document over rows.
func NewDocument(rows []*Row) *Document {
	return &Document{rows: rows}
}

// Rows returns the document's rows.
func (d *Document) Rows() []*Row {
	if d == nil {
		return nil
	}
	return d.rows
}

// RowCount returns the number of rows.
func (d *Document) RowCount() int {
	return len(d.Rows())
}

// Row returns the row at index.
func (d *Document) Row(index int) (*Row, bool) {
	rows := d.Rows()
	if index < 0 || index >= len(rows) {
		return nil, false
	}
	return rows[index], true
}

// Cell returns the cell at rowIndex and columnIndex.
func (d *Document) Cell(rowIndex, columnIndex int) (*Token, bool) {
	row, ok := d.Row(rowIndex)
	if !ok {
		return nil, false
	}
	return row.Cell(columnIndex)
}

// ColumnCount returns the cell count of the widest row.
func (d *Document) ColumnCount() int {
	count := 0
	for _, row := range d.Rows() {
		count = max(count, row.CellCount())
	}
	return count
}

// Columns returns one Column view per column index.
func (d *Document) Columns() []*Column {
	if d == nil {
		return nil
	}
	d.columnsOnce.Do(func() {
		count := d.ColumnCount()
		d.columns = make([]*Column, count)
		for i := range count {
			d.columns[i] = NewColumn(d, i)
		}
	})
	return d.columns
}

// Column returns the column at index.
func (d *Document) Column(index int) (*Column, bool) {
	columns := d.Columns()
	if index < 0 || index >= len(columns) {
		return nil, false
	}
	return columns[index], true
}

// RowIndex returns the index of the row that offset falls in.
//
// Offset 0 is always row 0, even for an empty document. The offset just past
// a row's newline belongs to the next row, while the offset just past the
// final row still belongs to it. Negative offsets and offsets past the end
// of the text are unmapped.
func (d *Document) RowIndex(offset int) (int, bool) {
	if offset < 0 {
		return 0, false
	}
	if offset == 0 {
		return 0, true
	}

	for i, row := range d.Rows() {
		end, ok := row.AfterEndIndex()
		if !ok {
			continue
		}
		if row.EndsWithNewLine() {
			if offset < end {
				return i, true
			}
			if offset == end {
				return i + 1, true
			}
			continue
		}
		if offset <= end {
			return i, true
		}
	}
	return 0, false
}

// Position returns the row and column that offset falls in. The column is 0
// when the row has no cell at offset, such as the start of an empty final
// line. It reports false when the offset is outside the document.
func (d *Document) Position(offset int) (Position, bool) {
	rowIndex, ok := d.RowIndex(offset)
	if !ok {
		return Position{}, false
	}

	pos := Position{Row: rowIndex}
	if row, ok := d.Row(rowIndex); ok {
		if column, ok := row.ColumnIndex(offset); ok {
			pos.Column = column
		}
	}
	return pos, true
}

// String returns the document's text. It equals the text that was parsed.
func (d *Document) String() string {
	var builder strings.Builder
	for _, row := range d.Rows() {
		builder.WriteString(row.String())
	}
	return builder.String()
}
