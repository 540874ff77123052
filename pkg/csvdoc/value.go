package csvdoc

import (
	"strings"

	"github.com/yaklabco/csvdoc/pkg/lex"
)

// Value returns the cell's content with quoting removed: enclosing quotes
// are dropped and a doubled quote inside them becomes one quote. Text
// outside quotes is kept as written. A quote in the middle of a cell opens a
// quoted section just as it does when parsing, so a"b,c" has the value ab,c.
// Separators and newlines have no value.
func (t *Token) Value() string {
	if !t.IsCell() || t.IsEmpty() {
		return ""
	}

	var (
		builder strings.Builder
		quoted  bool
	)
	for i := 0; i < len(t.lexes); i++ {
		l := t.lexes[i]
		if l.Kind != lex.DoubleQuote {
			builder.WriteString(l.Text)
			continue
		}
		if quoted && i+1 < len(t.lexes) && t.lexes[i+1].Kind == lex.DoubleQuote {
			builder.WriteString(l.Text)
			i++
			continue
		}
		quoted = !quoted
	}
	return builder.String()
}

// Values returns the unquoted value of every cell in the row.
func (r *Row) Values() []string {
	cells := r.Cells()
	values := make([]string, len(cells))
	for i, cell := range cells {
		values[i] = cell.Value()
	}
	return values
}
