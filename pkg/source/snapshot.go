// Package source holds the raw bytes of an input file and maps between byte
// offsets and 1-based line/column positions.
package source

// Snapshot is an immutable view of a file's content at the time it was read.
type Snapshot struct {
	// Path is the file path. It is empty for in-memory content.
	Path string

	// Content is the full file bytes.
	Content []byte

	// Lines indexes the line boundaries of Content.
	Lines []Line

	// Hash is the content digest recorded when the file was read.
	Hash string
}

// Line records the byte boundaries of one line.
type Line struct {
	// Start is the offset of the first byte of the line.
	Start int

	// ContentEnd is the offset where the line terminator begins, or End for
	// a line without one.
	ContentEnd int

	// End is the offset just past the line terminator.
	End int
}

// NewSnapshot builds a Snapshot and its line index from content.
func NewSnapshot(path string, content []byte) *Snapshot {
	return &Snapshot{
		Path:    path,
		Content: content,
		Lines:   BuildLines(content),
	}
}

// Whole returns a Region spanning the entire content.
func (s *Snapshot) Whole() Region {
	return Region{
		Range:  Range{Start: 0, End: len(s.Content)},
		Origin: OriginFile,
	}
}
