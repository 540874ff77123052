package lex

import "github.com/emirpasic/gods/v2/lists/arraylist"

// Stream is a positionable, forward-only iterator over lexes.
//
// A new Stream has not started: it has no current lex until Next is called.
// Stream is not safe for concurrent use.
type Stream struct {
	lexes *arraylist.List[Lex]
	index int
}

// NewStream scans text and returns an unstarted stream over its lexes.
func NewStream(text string, startIndex int) *Stream {
	return NewStreamFromLexes(Scan(text, startIndex))
}

// NewStreamFromLexes returns an unstarted stream over the given lexes.
func NewStreamFromLexes(lexes []Lex) *Stream {
	return &Stream{
		lexes: arraylist.New(lexes...),
		index: -1,
	}
}

// HasStarted reports whether Next has been called at least once.
func (s *Stream) HasStarted() bool {
	return s.index >= 0
}

// Next advances to the next lex and reports whether there is one.
// Once the stream is exhausted, Next keeps returning false.
func (s *Stream) Next() bool {
	if s.index < s.lexes.Size() {
		s.index++
	}
	return s.HasCurrent()
}

// HasCurrent reports whether the stream is positioned on a lex.
func (s *Stream) HasCurrent() bool {
	return s.index >= 0 && s.index < s.lexes.Size()
}

// Current returns the lex the stream is positioned on.
func (s *Stream) Current() (Lex, bool) {
	if !s.HasCurrent() {
		return Lex{}, false
	}
	return s.lexes.Get(s.index)
}

// TakeCurrent returns the current lex and advances past it.
func (s *Stream) TakeCurrent() (Lex, bool) {
	current, ok := s.Current()
	if ok {
		s.Next()
	}
	return current, ok
}

// Remaining returns the number of lexes from the current one to the end.
func (s *Stream) Remaining() int {
	if !s.HasStarted() {
		return s.lexes.Size()
	}
	return max(s.lexes.Size()-s.index, 0)
}
