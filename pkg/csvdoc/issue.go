package csvdoc

// Span identifies a region of source text.
type Span struct {
	// Start is the offset of the first character of the span.
	Start int

	// Length is the number of characters in the span.
	Length int
}

// End returns the offset just past the span.
func (s Span) End() int {
	return s.Start + s.Length
}

// Contains reports whether offset falls inside the span.
func (s Span) Contains(offset int) bool {
	return s.Start <= offset && offset < s.End()
}

// Issue is a non-fatal diagnostic produced while parsing.
type Issue struct {
	Message string
	Span    Span
}

// IssueSink collects Issues produced while parsing.
// The parser only ever appends to a sink; it never reads or clears it.
type IssueSink interface {
	Add(issue Issue)
}

// Issues is a slice-backed IssueSink.
type Issues []Issue

// Add appends issue to the list. Adding to a nil *Issues is a no-op.
func (i *Issues) Add(issue Issue) {
	if i == nil {
		return
	}
	*i = append(*i, issue)
}

// Len returns the number of collected issues.
func (i *Issues) Len() int {
	if i == nil {
		return 0
	}
	return len(*i)
}

// missingClosingQuoteMessage is the message of MissingClosingQuote issues.
const missingClosingQuoteMessage = `Missing closing quote (").`

// MissingClosingQuote returns the issue reported for a quoted field that is
// never closed. The span runs from the opening quote to the end of the last
// character consumed by the field.
func MissingClosingQuote(span Span) Issue {
	return Issue{Message: missingClosingQuoteMessage, Span: span}
}

// IsMissingClosingQuote reports whether issue was produced by MissingClosingQuote.
func IsMissingClosingQuote(issue Issue) bool {
	return issue.Message == missingClosingQuoteMessage
}

// addIssue reports issue to sink, dropping it when there is no sink.
func addIssue(sink IssueSink, issue Issue) {
	if sink == nil {
		return
	}
	sink.Add(issue)
}
