package lint

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/yaklabco/csvdoc/pkg/config"
	"github.com/yaklabco/csvdoc/pkg/langdetect"
	"github.com/yaklabco/csvdoc/pkg/source"
)

// FileResult contains the results of checking a single file.
type FileResult struct {
	Snapshot *source.Snapshot

	// Regions are the parsed CSV regions, in file order.
	Regions []ParsedRegion

	// Diagnostics are sorted by file position, then rule ID.
	Diagnostics []Diagnostic

	// RuleErrors maps rule IDs to failures of the rule itself.
	RuleErrors map[string]error
}

// HasIssues returns true if any diagnostics were found.
func (fr *FileResult) HasIssues() bool {
	return len(fr.Diagnostics) > 0
}

// IssueCount returns the total number of diagnostics.
func (fr *FileResult) IssueCount() int {
	return len(fr.Diagnostics)
}

// CountBySeverity returns the number of diagnostics with severity s.
func (fr *FileResult) CountBySeverity(s config.Severity) int {
	count := 0
	for i := range fr.Diagnostics {
		if fr.Diagnostics[i].Severity == s {
			count++
		}
	}
	return count
}

// Engine finds the CSV regions of a file, parses them and runs rules.
type Engine struct {
	// Extractor finds CSV regions in Markdown files. When nil, Markdown
	// files have no regions.
	Extractor RegionExtractor

	// Registry holds all available rules.
	Registry *Registry
}

// NewEngine creates a new Engine.
func NewEngine(extractor RegionExtractor, registry *Registry) *Engine {
	return &Engine{
		Extractor: extractor,
		Registry:  registry,
	}
}

// Regions finds and parses the CSV regions of file. Markdown files yield
// their CSV fenced blocks; every other file is one region.
func (e *Engine) Regions(ctx context.Context, file *source.Snapshot) ([]ParsedRegion, error) {
	var regions []source.Region

	switch langdetect.Classify(file.Path) {
	case langdetect.KindMarkdown:
		if e.Extractor == nil {
			return nil, nil
		}
		found, err := e.Extractor.Extract(ctx, file.Content)
		if err != nil {
			return nil, fmt.Errorf("extract regions: %w", err)
		}
		regions = found
	case langdetect.KindCSV, langdetect.KindUnknown:
		regions = []source.Region{file.Whole()}
	}

	parsed := make([]ParsedRegion, 0, len(regions))
	for _, region := range regions {
		parsed = append(parsed, ParseRegion(file.Content, region))
	}
	return parsed, nil
}

// CheckFile checks a single file's content.
func (e *Engine) CheckFile(
	ctx context.Context,
	path string,
	content []byte,
	cfg *config.Config,
) (*FileResult, error) {
	return e.CheckSnapshot(ctx, source.NewSnapshot(path, content), cfg)
}

// CheckSnapshot checks an already loaded file.
func (e *Engine) CheckSnapshot(
	ctx context.Context,
	file *source.Snapshot,
	cfg *config.Config,
) (*FileResult, error) {
	regions, err := e.Regions(ctx, file)
	if err != nil {
		return nil, err
	}

	result := &FileResult{
		Snapshot:   file,
		Regions:    regions,
		RuleErrors: make(map[string]error),
	}

	for _, rr := range ResolveRules(e.Registry, cfg) {
		select {
		case <-ctx.Done():
			return result, fmt.Errorf("check cancelled: %w", ctx.Err())
		default:
		}

		ruleCtx := NewRuleContext(ctx, file, regions, cfg, rr.Config)

		diags, err := rr.Rule.Apply(ruleCtx)
		if err != nil {
			result.RuleErrors[rr.Rule.ID()] = err
			continue
		}

		for i := range diags {
			diags[i].Severity = rr.Severity
			diags[i].RuleID = rr.Rule.ID()
			if diags[i].FilePath == "" {
				diags[i].FilePath = file.Path
			}
			if diags[i].RuleName == "" {
				diags[i].RuleName = rr.Rule.Name()
			}
		}

		result.Diagnostics = append(result.Diagnostics, diags...)
	}

	slices.SortStableFunc(result.Diagnostics, func(a, b Diagnostic) int {
		return cmp.Or(
			cmp.Compare(a.Span.Start, b.Span.Start),
			cmp.Compare(a.RuleID, b.RuleID),
		)
	})

	return result, nil
}
