package csvdoc

import "github.com/yaklabco/csvdoc/pkg/lex"

// Parse parses text into a Document. It never fails; malformed quoted fields
// are reported to issues, which may be nil.
func Parse(text string, issues IssueSink) *Document {
	stream := lex.NewStream(text, 0)
	stream.Next()

	var rows []*Row
	for {
		rows = append(rows, ParseRow(stream, issues))
		if !stream.HasCurrent() {
			break
		}
	}
	return NewDocument(rows)
}

// ParseBytes parses b into a Document.
func ParseBytes(b []byte, issues IssueSink) *Document {
	return Parse(string(b), issues)
}

// ParseRow parses the tokens of one row from stream, stopping after a newline
// token or when the stream is exhausted. An exhausted stream yields a row
// without tokens.
func ParseRow(stream *lex.Stream, issues IssueSink) *Row {
	if !stream.HasStarted() {
		stream.Next()
	}

	var tokens []*Token
	for stream.HasCurrent() {
		token := ParseToken(stream, issues)
		tokens = append(tokens, token)
		if token.IsNewLine() {
			break
		}
	}
	return NewRow(tokens)
}

// ParseToken parses the next token from stream.
//
// A comma or newline at the current position becomes a separator or newline
// token. Anything else is gathered into a cell token until a comma or newline
// outside quotes is reached; that lex is left current for the next call.
func ParseToken(stream *lex.Stream, issues IssueSink) *Token {
	if !stream.HasStarted() {
		stream.Next()
	}

	var (
		lexes     []lex.Lex
		inCell    bool
		separator bool
	)

loop:
	for stream.HasCurrent() {
		current, _ := stream.Current()

		switch current.Kind {
		case lex.Comma:
			if !inCell {
				lexes = append(lexes, current)
				separator = true
				stream.Next()
			}
			break loop

		case lex.NewLine, lex.CarriageReturnNewLine:
			if !inCell {
				lexes = append(lexes, current)
				stream.Next()
			}
			break loop

		case lex.DoubleQuote:
			inCell = true
			lexes = parseQuoted(stream, lexes, issues)

		default:
			inCell = true
			lexes = append(lexes, current)
			stream.Next()
		}
	}

	return NewToken(lexes, separator)
}

// parseQuoted consumes a quoted field starting at the current double quote.
// Inside the field, a run of an even number of quotes is escaped text and a
// run of an odd number closes the field.
func parseQuoted(stream *lex.Stream, lexes []lex.Lex, issues IssueSink) []lex.Lex {
	open, _ := stream.TakeCurrent()
	lexes = append(lexes, open)
	last := open

	closed := false
	for !closed && stream.HasCurrent() {
		current, _ := stream.TakeCurrent()
		lexes = append(lexes, current)
		last = current

		if current.Kind != lex.DoubleQuote {
			continue
		}

		odd := true
		for {
			next, ok := stream.Current()
			if !ok || next.Kind != lex.DoubleQuote {
				break
			}
			stream.Next()
			lexes = append(lexes, next)
			last = next
			odd = !odd
		}
		closed = odd
	}

	if !closed {
		addIssue(issues, MissingClosingQuote(Span{
			Start:  open.StartIndex,
			Length: last.AfterEndIndex() - open.StartIndex,
		}))
	}
	return lexes
}
