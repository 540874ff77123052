package csvdoc

import "fmt"

// Position is a zero-based row and column within a Document.
type Position struct {
	Row    int
	Column int
}

// String formats the position as "row:column", both one-based.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Row+1, p.Column+1)
}
