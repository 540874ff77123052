package source

// Range is a half-open byte range [Start, End).
type Range struct {
	Start int
	End   int
}

// Len returns the number of bytes in the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// IsEmpty reports whether the range has zero length.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// Contains reports whether offset lies inside the range.
func (r Range) Contains(offset int) bool {
	return offset >= r.Start && offset < r.End
}

// Position is a 1-based line and column.
type Position struct {
	Line   int
	Column int
}

// IsValid reports whether both line and column are positive.
func (p Position) IsValid() bool {
	return p.Line > 0 && p.Column > 0
}

// Origin describes where a Region was found.
type Origin uint8

const (
	// OriginFile is a whole CSV file.
	OriginFile Origin = iota

	// OriginFence is the body of a fenced code block in a Markdown file.
	OriginFence
)

// String returns a short name for the origin.
func (o Origin) String() string {
	switch o {
	case OriginFile:
		return "file"
	case OriginFence:
		return "fence"
	default:
		return "unknown"
	}
}

// Region is a span of a file that holds CSV text.
type Region struct {
	Range  Range
	Origin Origin

	// Info is the info string of the enclosing fence, if any.
	Info string
}

// Text returns the region's bytes within content. Ranges that fall outside
// content are clamped.
func (r Region) Text(content []byte) []byte {
	start := min(max(r.Range.Start, 0), len(content))
	end := min(max(r.Range.End, start), len(content))
	return content[start:end]
}

// Absolute converts an offset relative to the region into a file offset.
func (r Region) Absolute(offset int) int {
	return r.Range.Start + offset
}
