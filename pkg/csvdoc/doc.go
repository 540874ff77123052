// Package csvdoc parses CSV text into a lossless, randomly addressable
// document model.
//
// A Document is an ordered list of Rows. Each Row is an ordered list of
// Tokens (cells, separators and at most one trailing newline) from which the
// Row derives its Cells. Columns are views across the Rows of a Document.
// Every Token keeps the lexes it was assembled from, so every cell can be
// traced back to exact offsets in the source text and the concatenated text
// of all Rows always equals the parsed input.
//
// Parsing never fails. Grammar violations (currently only a quoted field
// without a closing quote) are reported as Issues to an optional IssueSink.
//
// Derived views (Row cells, Document columns, Column cells) are computed
// on first use and cached; a Document may be read from multiple goroutines.
package csvdoc
