// Package lex splits raw text into classified lexical units.
// Every byte of the input belongs to exactly one Lex, so concatenating the
// text of all lexes reproduces the input.
package lex

// Kind classifies a lexical unit.
type Kind uint8

// Lex kinds recognised by Scan.
const (
	Comma                 Kind = iota // ','
	NewLine                           // '\n'
	CarriageReturnNewLine             // "\r\n"
	DoubleQuote                       // '"'
	Letters                           // run of text that is none of the other kinds
	Whitespace                        // run of spaces, tabs and lone '\r'
	Digits                            // run of ASCII digits
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case Comma:
		return "Comma"
	case NewLine:
		return "NewLine"
	case CarriageReturnNewLine:
		return "CarriageReturnNewLine"
	case DoubleQuote:
		return "DoubleQuote"
	case Letters:
		return "Letters"
	case Whitespace:
		return "Whitespace"
	case Digits:
		return "Digits"
	default:
		return "Unknown"
	}
}

// Lex is a classified run of source characters.
type Lex struct {
	// Kind classifies the run.
	Kind Kind

	// Text is the exact source text of the run.
	Text string

	// StartIndex is the offset of the first byte of the run.
	StartIndex int
}

// AfterEndIndex returns the offset just past the last byte of the run.
func (l Lex) AfterEndIndex() int {
	return l.StartIndex + len(l.Text)
}

// Len returns the length of the run in bytes.
func (l Lex) Len() int {
	return len(l.Text)
}

// IsNewLine reports whether the lex is a newline or a carriage-return newline.
func (l Lex) IsNewLine() bool {
	return l.Kind == NewLine || l.Kind == CarriageReturnNewLine
}

// NewComma returns a comma lex at startIndex.
func NewComma(startIndex int) Lex {
	return Lex{Kind: Comma, Text: ",", StartIndex: startIndex}
}

// NewNewLine returns a newline lex at startIndex.
func NewNewLine(startIndex int) Lex {
	return Lex{Kind: NewLine, Text: "\n", StartIndex: startIndex}
}

// NewCarriageReturnNewLine returns a "\r\n" lex at startIndex.
func NewCarriageReturnNewLine(startIndex int) Lex {
	return Lex{Kind: CarriageReturnNewLine, Text: "\r\n", StartIndex: startIndex}
}

// NewDoubleQuote returns a double quote lex at startIndex.
func NewDoubleQuote(startIndex int) Lex {
	return Lex{Kind: DoubleQuote, Text: `"`, StartIndex: startIndex}
}

// NewLetters returns a text run lex at startIndex.
func NewLetters(text string, startIndex int) Lex {
	return Lex{Kind: Letters, Text: text, StartIndex: startIndex}
}

// NewDigits returns a digit run lex at startIndex.
func NewDigits(text string, startIndex int) Lex {
	return Lex{Kind: Digits, Text: text, StartIndex: startIndex}
}

// NewWhitespace returns a whitespace run lex at startIndex.
func NewWhitespace(text string, startIndex int) Lex {
	return Lex{Kind: Whitespace, Text: text, StartIndex: startIndex}
}
