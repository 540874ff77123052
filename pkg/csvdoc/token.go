package csvdoc

import (
	"strings"

	"github.com/yaklabco/csvdoc/pkg/lex"
)

// Token is the atomic parsed unit of a Row: a cell, a separator or a
// newline marker. A Token is immutable once created.
type Token struct {
	lexes     []lex.Lex
	separator bool
}

// NewToken creates a Token over lexes. isSeparator marks the token as a
// field separator.
func NewToken(lexes []lex.Lex, isSeparator bool) *Token {
	return &Token{
		lexes:     lexes,
		separator: isSeparator,
	}
}

// emptyCell returns a synthesized cell with no lexes.
func emptyCell() *Token {
	return &Token{}
}

// Lexes returns the lexes the token spans. The caller must not modify them.
func (t *Token) Lexes() []lex.Lex {
	if t == nil {
		return nil
	}
	return t.lexes
}

// IsSeparator reports whether the token separates two cells.
func (t *Token) IsSeparator() bool {
	return t != nil && t.separator
}

// IsNewLine reports whether the token is exactly one newline lex.
func (t *Token) IsNewLine() bool {
	return t != nil && !t.separator && len(t.lexes) == 1 && t.lexes[0].IsNewLine()
}

// IsCell reports whether the token is neither a separator nor a newline.
func (t *Token) IsCell() bool {
	return t != nil && !t.IsSeparator() && !t.IsNewLine()
}

// IsEmpty reports whether the token spans no lexes.
func (t *Token) IsEmpty() bool {
	return t == nil || len(t.lexes) == 0
}

// StartIndex returns the offset of the token's first lex.
// It reports false for an empty token.
func (t *Token) StartIndex() (int, bool) {
	if t.IsEmpty() {
		return 0, false
	}
	return t.lexes[0].StartIndex, true
}

// AfterEndIndex returns the offset just past the token's last lex.
// It reports false for an empty token.
func (t *Token) AfterEndIndex() (int, bool) {
	if t.IsEmpty() {
		return 0, false
	}
	return t.lexes[len(t.lexes)-1].AfterEndIndex(), true
}

// String returns the concatenated text of the token's lexes.
func (t *Token) String() string {
	if t.IsEmpty() {
		return ""
	}
	if len(t.lexes) == 1 {
		return t.lexes[0].Text
	}

	var builder strings.Builder
	for _, l := range t.lexes {
		builder.WriteString(l.Text)
	}
	return builder.String()
}
