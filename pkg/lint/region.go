package lint

import (
	"context"

	"github.com/yaklabco/csvdoc/pkg/csvdoc"
	"github.com/yaklabco/csvdoc/pkg/source"
)

// RegionExtractor finds CSV regions embedded in a non-CSV file.
// markdown.Extractor implements it for Markdown.
type RegionExtractor interface {
	Extract(ctx context.Context, content []byte) ([]source.Region, error)
}

// ParsedRegion is a CSV region together with its parsed document.
type ParsedRegion struct {
	source.Region

	// Document is the parsed CSV. Its offsets are relative to Region.Range.Start.
	Document *csvdoc.Document

	// Issues are the problems the parser reported for the region.
	Issues csvdoc.Issues
}

// ParseRegion parses the text of region within content.
func ParseRegion(content []byte, region source.Region) ParsedRegion {
	parsed := ParsedRegion{Region: region}
	parsed.Document = csvdoc.ParseBytes(region.Text(content), &parsed.Issues)
	return parsed
}

// FileRange converts a document-relative span into a file byte range.
func (p ParsedRegion) FileRange(start, length int) source.Range {
	abs := p.Absolute(start)
	return source.Range{Start: abs, End: abs + length}
}

// RowRange returns the file byte range of the row at index, without its
// line terminator.
func (p ParsedRegion) RowRange(index int) (source.Range, bool) {
	row, ok := p.Document.Row(index)
	if !ok {
		return source.Range{}, false
	}

	start, ok := row.StartIndex()
	if !ok {
		return source.Range{}, false
	}
	end, _ := row.AfterEndIndex()
	if row.EndsWithNewLine() {
		tokens := row.Tokens()
		end -= len(tokens[len(tokens)-1].String())
	}
	return p.FileRange(start, end-start), true
}
