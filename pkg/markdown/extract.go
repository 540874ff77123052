// Package markdown locates CSV embedded in Markdown documents.
package markdown

import (
	"context"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/csvdoc/pkg/langdetect"
	"github.com/yaklabco/csvdoc/pkg/source"
)

// Markdown flavors understood by the extractor.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// Extractor finds CSV fenced code blocks in Markdown content.
type Extractor struct {
	flavor string
	md     goldmark.Markdown
}

// NewExtractor creates an Extractor for flavor. Unknown flavors fall back to
// CommonMark.
func NewExtractor(flavor string) *Extractor {
	if flavor != FlavorGFM {
		flavor = FlavorCommonMark
	}

	var opts []goldmark.Option
	if flavor == FlavorGFM {
		opts = append(opts, goldmark.WithExtensions(extension.GFM))
	}

	return &Extractor{
		flavor: flavor,
		md:     goldmark.New(opts...),
	}
}

// Flavor returns the configured flavor.
func (e *Extractor) Flavor() string {
	return e.flavor
}

// Extract returns the bodies of fenced code blocks whose info string names
// CSV, in document order. Fences inside containers that prefix their lines
// (block quotes, list items) are skipped because their body is not a
// contiguous span of content.
func (e *Extractor) Extract(ctx context.Context, content []byte) ([]source.Region, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("extract cancelled: %w", err)
	}

	doc := e.md.Parser().Parse(text.NewReader(content), parser.WithContext(parser.NewContext()))

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("extract cancelled: %w", err)
	}

	var regions []source.Region
	err := ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		fence, ok := node.(*ast.FencedCodeBlock)
		if !ok || fence.Info == nil {
			return ast.WalkContinue, nil
		}

		info := string(fence.Info.Segment.Value(content))
		if !langdetect.IsCSVFence(info) {
			return ast.WalkSkipChildren, nil
		}

		if body, ok := fenceBody(fence); ok {
			regions = append(regions, source.Region{
				Range:  body,
				Origin: source.OriginFence,
				Info:   info,
			})
		}
		return ast.WalkSkipChildren, nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk markdown: %w", err)
	}

	return regions, nil
}

// Extract is a convenience wrapper using a CommonMark extractor.
func Extract(ctx context.Context, content []byte) ([]source.Region, error) {
	return NewExtractor(FlavorCommonMark).Extract(ctx, content)
}

// fenceBody returns the byte range of a fence's body lines. It reports false
// for an empty body or one whose lines are not contiguous in the source.
func fenceBody(fence *ast.FencedCodeBlock) (source.Range, bool) {
	lines := fence.Lines()
	if lines.Len() == 0 {
		return source.Range{}, false
	}

	first := lines.At(0)
	body := source.Range{Start: first.Start, End: first.Stop}
	for i := 1; i < lines.Len(); i++ {
		line := lines.At(i)
		if line.Start != body.End || line.Padding > 0 {
			return source.Range{}, false
		}
		body.End = line.Stop
	}
	if first.Padding > 0 {
		return source.Range{}, false
	}
	return body, true
}
