package csvdoc

import (
	"strings"
	"sync"
)

// Row is one line of a Document: the tokens from the start of the line up to
// and including its newline token, if any.
type Row struct {
	tokens []*Token

	cellsOnce sync.Once
	cells     []*Token
}

// NewRow creates a Row over tokens.
func NewRow(tokens []*Token) *Row {
	return &Row{tokens: tokens}
}

// Tokens returns every token of the row, separators and newline included.
func (r *Row) Tokens() []*Token {
	if r == nil {
		return nil
	}
	return r.tokens
}

// Cells returns the row's cells in order. Separators that are not preceded by
// a cell, and a trailing separator, contribute synthesized empty cells, so a
// row with n separators has n+1 cells. A row that holds nothing but a newline
// has no cells.
func (r *Row) Cells() []*Token {
	if r == nil {
		return nil
	}
	r.cellsOnce.Do(func() {
		r.cells = buildCells(r.tokens)
	})
	return r.cells
}

func buildCells(tokens []*Token) []*Token {
	var (
		cells            []*Token
		prevWasCell      bool
		pendingSeparator bool
	)

	for _, token := range tokens {
		switch {
		case token.IsSeparator():
			if !prevWasCell {
				cells = append(cells, emptyCell())
			}
			prevWasCell = false
			pendingSeparator = true
		case token.IsNewLine():
			// A newline ends the row; it never becomes a cell.
		default:
			cells = append(cells, token)
			prevWasCell = true
			pendingSeparator = false
		}
	}

	if pendingSeparator {
		cells = append(cells, emptyCell())
	}
	return cells
}

// Cell returns the cell at index.
func (r *Row) Cell(index int) (*Token, bool) {
	cells := r.Cells()
	if index < 0 || index >= len(cells) {
		return nil, false
	}
	return cells[index], true
}

// CellCount returns the number of cells in the row.
func (r *Row) CellCount() int {
	return len(r.Cells())
}

// EndsWithNewLine reports whether the row's last token is a newline.
func (r *Row) EndsWithNewLine() bool {
	if r == nil || len(r.tokens) == 0 {
		return false
	}
	return r.tokens[len(r.tokens)-1].IsNewLine()
}

// StartIndex returns the offset of the row's first character.
// It reports false when the row spans no text.
func (r *Row) StartIndex() (int, bool) {
	if r == nil {
		return 0, false
	}
	for _, token := range r.tokens {
		if start, ok := token.StartIndex(); ok {
			return start, true
		}
	}
	return 0, false
}

// AfterEndIndex returns the offset just past the row's last character,
// newline included. It reports false when the row spans no text.
func (r *Row) AfterEndIndex() (int, bool) {
	if r == nil {
		return 0, false
	}
	for i := len(r.tokens) - 1; i >= 0; i-- {
		if end, ok := r.tokens[i].AfterEndIndex(); ok {
			return end, true
		}
	}
	return 0, false
}

// ColumnIndex returns the index of the cell that offset falls in.
//
// A row without tokens only maps offset 0 (to column 0). Otherwise offsets
// outside [StartIndex, AfterEndIndex] are unmapped. An offset at the start of
// a separator belongs to the cell before it; an offset at the end of a
// separator belongs to the cell after it. The position of a newline is
// never mapped.
func (r *Row) ColumnIndex(offset int) (int, bool) {
	if r == nil || len(r.tokens) == 0 {
		return 0, offset == 0
	}

	start, hasStart := r.StartIndex()
	end, hasEnd := r.AfterEndIndex()
	if !hasStart || !hasEnd || offset < start || offset > end {
		return 0, false
	}

	column := 0
	for _, token := range r.tokens {
		tokenStart, ok := token.StartIndex()
		if !ok {
			continue
		}
		tokenEnd, _ := token.AfterEndIndex()

		switch {
		case token.IsSeparator():
			if offset <= tokenStart {
				return column, true
			}
			column++
			if offset == tokenEnd {
				return column, true
			}
		case token.IsNewLine():
		default:
			if offset <= tokenEnd {
				return column, true
			}
		}
	}
	return 0, false
}

// String returns the row's text, newline included.
func (r *Row) String() string {
	if r == nil {
		return ""
	}
	var builder strings.Builder
	for _, token := range r.tokens {
		builder.WriteString(token.String())
	}
	return builder.String()
}
