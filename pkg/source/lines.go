package source

import "sort"

// BuildLines indexes the lines of content. Both "\n" and "\r\n" end a line.
// Content ending in a terminator has a final empty line.
func BuildLines(content []byte) []Line {
	if len(content) == 0 {
		return []Line{}
	}

	lines := make([]Line, 0, 1)
	start := 0
	for i, b := range content {
		if b != '\n' {
			continue
		}
		contentEnd := i
		if i > start && content[i-1] == '\r' {
			contentEnd = i - 1
		}
		lines = append(lines, Line{Start: start, ContentEnd: contentEnd, End: i + 1})
		start = i + 1
	}

	return append(lines, Line{Start: start, ContentEnd: len(content), End: len(content)})
}

// LineCount returns the number of lines.
func (s *Snapshot) LineCount() int {
	return len(s.Lines)
}

// LineAt converts a byte offset into a 1-based line and byte column.
// Offsets at or past the end of the content are placed on the last line.
// It returns (0, 0) for a negative offset or empty content.
func (s *Snapshot) LineAt(offset int) (int, int) {
	if offset < 0 || len(s.Lines) == 0 {
		return 0, 0
	}

	if offset >= len(s.Content) {
		last := len(s.Lines) - 1
		return last + 1, offset - s.Lines[last].Start + 1
	}

	idx := sort.Search(len(s.Lines), func(i int) bool {
		return s.Lines[i].End > offset
	})
	idx = min(idx, len(s.Lines)-1)

	return idx + 1, offset - s.Lines[idx].Start + 1
}

// PositionAt is LineAt returning a Position.
func (s *Snapshot) PositionAt(offset int) Position {
	line, column := s.LineAt(offset)
	return Position{Line: line, Column: column}
}

// Offset converts a 1-based line and column into a byte offset.
// The column may point one past the end of the line.
func (s *Snapshot) Offset(line, column int) (int, bool) {
	if line < 1 || line > len(s.Lines) || column < 1 {
		return 0, false
	}

	info := s.Lines[line-1]
	offset := info.Start + column - 1
	if offset > info.End {
		return 0, false
	}
	return offset, true
}

// LineContent returns the bytes of a 1-based line without its terminator,
// or nil when the line does not exist.
func (s *Snapshot) LineContent(line int) []byte {
	if line < 1 || line > len(s.Lines) {
		return nil
	}
	info := s.Lines[line-1]
	return s.Content[info.Start:info.ContentEnd]
}
