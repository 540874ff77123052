package lex

// scanner performs a single pass over text, emitting lexes that are
// contiguous and cover the whole input.
type scanner struct {
	text   string
	offset int
	pos    int
	lexes  []Lex
}

// Scan classifies every byte of text into lexes. The first lex starts at
// startIndex, so text taken from the middle of a larger document keeps the
// offsets of that document.
func Scan(text string, startIndex int) []Lex {
	if len(text) == 0 {
		return nil
	}

	const initialCapacityDivisor = 2
	s := &scanner{
		text:   text,
		offset: startIndex,
		lexes:  make([]Lex, 0, len(text)/initialCapacityDivisor+1),
	}

	for s.pos < len(s.text) {
		s.scanOne()
	}

	return s.lexes
}

func (s *scanner) scanOne() {
	switch c := s.text[s.pos]; {
	case c == ',':
		s.emit(Comma, s.pos+1)
	case c == '\n':
		s.emit(NewLine, s.pos+1)
	case c == '\r' && s.pos+1 < len(s.text) && s.text[s.pos+1] == '\n':
		s.emit(CarriageReturnNewLine, s.pos+2)
	case c == '"':
		s.emit(DoubleQuote, s.pos+1)
	case isDigit(c):
		s.emit(Digits, s.runEnd(isDigit))
	case isWhitespace(c):
		s.emit(Whitespace, s.whitespaceEnd())
	default:
		s.emit(Letters, s.runEnd(isLetter))
	}
}

// emit appends a lex covering [s.pos, end) and moves past it.
func (s *scanner) emit(kind Kind, end int) {
	s.lexes = append(s.lexes, Lex{
		Kind:       kind,
		Text:       s.text[s.pos:end],
		StartIndex: s.offset + s.pos,
	})
	s.pos = end
}

// runEnd returns the end of the run of bytes accepted by class.
func (s *scanner) runEnd(class func(byte) bool) int {
	end := s.pos + 1
	for end < len(s.text) && class(s.text[end]) {
		end++
	}
	return end
}

// whitespaceEnd is runEnd for whitespace, except that a '\r' directly
// followed by '\n' ends the run so the pair becomes its own lex.
func (s *scanner) whitespaceEnd() int {
	end := s.pos + 1
	for end < len(s.text) && isWhitespace(s.text[end]) {
		if s.text[end] == '\r' && end+1 < len(s.text) && s.text[end+1] == '\n' {
			break
		}
		end++
	}
	return end
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\v' || c == '\f'
}

func isLetter(c byte) bool {
	switch c {
	case ',', '\n', '"':
		return false
	}
	return !isDigit(c) && !isWhitespace(c)
}
