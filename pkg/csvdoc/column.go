package csvdoc

import (
	"strings"
	"sync"
)

// Column is a view of one column index across the rows of a Document.
// It does not own the document.
type Column struct {
	doc   *Document
	index int

	cellsOnce sync.Once
	cells     []*Token
}

// NewColumn creates a view of column index in doc.
func NewColumn(doc *Document, index int) *Column {
	return &Column{doc: doc, index: index}
}

// Index returns the column index the view covers.
func (c *Column) Index() int {
	if c == nil {
		return -1
	}
	return c.index
}

// Cells returns the column's cells in row order. Rows that have no cell at
// the column's index contribute nothing.
func (c *Column) Cells() []*Token {
	if c == nil {
		return nil
	}
	c.cellsOnce.Do(func() {
		if c.doc == nil || c.index < 0 {
			return
		}
		for _, row := range c.doc.Rows() {
			if cell, ok := row.Cell(c.index); ok {
				c.cells = append(c.cells, cell)
			}
		}
	})
	return c.cells
}

// Cell returns the column's cell in the row at rowIndex. It reports false
// when the row does not exist or is too short to reach the column.
func (c *Column) Cell(rowIndex int) (*Token, bool) {
	if c == nil || c.doc == nil || c.index < 0 {
		return nil, false
	}
	row, ok := c.doc.Row(rowIndex)
	if !ok {
		return nil, false
	}
	return row.Cell(c.index)
}

// CellCount returns the number of cells in the column.
func (c *Column) CellCount() int {
	return len(c.Cells())
}

// String returns the column's cell texts joined with commas.
func (c *Column) String() string {
	cells := c.Cells()
	parts := make([]string, len(cells))
	for i, cell := range cells {
		parts[i] = cell.String()
	}
	return strings.Join(parts, ",")
}
