package analysis

import (
	"cmp"
	"maps"
	"path/filepath"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/yaklabco/csvdoc/pkg/config"
	"github.com/yaklabco/csvdoc/pkg/lint"
	"github.com/yaklabco/csvdoc/pkg/runner"
)

// ReportVersion is the current report format version.
const ReportVersion = "1.0.0"

// displayPath makes path relative to workDir when possible.
func displayPath(path, workDir string) string {
	if workDir == "" {
		return path
	}
	rel, err := filepath.Rel(workDir, path)
	if err != nil {
		return path
	}
	return rel
}

// fileTally and ruleTally accumulate one group while diagnostics stream in.
type fileTally struct {
	analysis FileAnalysis
	rules    map[string]struct{}
}

type ruleTally struct {
	analysis RuleAnalysis
	files    map[string]struct{}
}

type aggregator struct {
	opts  Options
	files map[string]*fileTally
	rules map[string]*ruleTally
}

func (a *aggregator) file(path string) *fileTally {
	tally, ok := a.files[path]
	if !ok {
		tally = &fileTally{analysis: FileAnalysis{Path: path}, rules: map[string]struct{}{}}
		a.files[path] = tally
	}
	return tally
}

func (a *aggregator) rule(diag *lint.Diagnostic) *ruleTally {
	tally, ok := a.rules[diag.RuleID]
	if !ok {
		tally = &ruleTally{
			analysis: RuleAnalysis{
				RuleID:   diag.RuleID,
				RuleName: diag.RuleName,
				Label:    config.FormatRuleID(a.opts.RuleFormat, diag.RuleID, diag.RuleName),
			},
			files: map[string]struct{}{},
		}
		a.rules[diag.RuleID] = tally
	}
	return tally
}

// Analyze aggregates result into a Report in a single pass over its
// diagnostics. A nil result yields an empty report.
func Analyze(result *runner.Result, opts Options) *Report {
	report := &Report{
		Version:   ReportVersion,
		RunID:     cmp.Or(opts.RunID, uuid.NewString()),
		Timestamp: time.Now(),
	}
	if result == nil {
		return report
	}

	agg := &aggregator{
		opts:  opts,
		files: map[string]*fileTally{},
		rules: map[string]*ruleTally{},
	}

	for _, outcome := range result.Files {
		report.Totals.Files++
		path := displayPath(outcome.Path, opts.WorkingDir)

		if outcome.Error != nil {
			report.Totals.FilesErrored++
			report.Errors = append(report.Errors, FileError{FilePath: path, Message: outcome.Error.Error()})
			continue
		}
		if outcome.Result == nil || outcome.Result.FileResult == nil {
			continue
		}

		if outcome.Result.Stale {
			report.Totals.FilesStale++
		}

		file := agg.file(path)
		file.analysis.Regions = len(outcome.Result.Regions)
		for _, region := range outcome.Result.Regions {
			file.analysis.Rows += region.Document.RowCount()
		}
		report.Totals.Regions += file.analysis.Regions
		report.Totals.Rows += file.analysis.Rows

		diags := outcome.Result.Diagnostics
		if len(diags) > 0 {
			report.Totals.FilesWithIssues++
		}
		for i := range diags {
			diag := &diags[i]
			severity := cmp.Or(diag.Severity, config.SeverityWarning)

			report.Totals.add(severity)
			file.analysis.add(severity)
			file.rules[diag.RuleID] = struct{}{}

			rule := agg.rule(diag)
			rule.analysis.add(severity)
			rule.files[path] = struct{}{}

			if opts.IncludeDiagnostics {
				report.Diagnostics = append(report.Diagnostics, entry(path, severity, diag))
			}
		}
	}

	if opts.IncludeByRule {
		report.ByRule = agg.byRule()
	}
	if opts.IncludeByFile {
		report.ByFile = agg.byFile()
	}
	return report
}

func entry(path string, severity config.Severity, diag *lint.Diagnostic) DiagnosticEntry {
	return DiagnosticEntry{
		FilePath:    path,
		RuleID:      diag.RuleID,
		RuleName:    diag.RuleName,
		Severity:    string(severity),
		Message:     diag.Message,
		StartLine:   diag.StartLine,
		StartColumn: diag.StartColumn,
		EndLine:     diag.EndLine,
		EndColumn:   diag.EndColumn,
		Row:         diag.Row,
		Column:      diag.Column,
		Suggestion:  diag.Suggestion,
	}
}

func (a *aggregator) byRule() []RuleAnalysis {
	out := make([]RuleAnalysis, 0, len(a.rules))
	for _, tally := range a.rules {
		tally.analysis.Files = slices.Sorted(maps.Keys(tally.files))
		out = append(out, tally.analysis)
	}
	sortGroups(out, a.opts, func(r RuleAnalysis) (string, Counts) { return r.RuleID, r.Counts })
	return out
}

// byFile lists files with at least one diagnostic.
func (a *aggregator) byFile() []FileAnalysis {
	var out []FileAnalysis
	for _, tally := range a.files {
		if tally.analysis.Issues == 0 {
			continue
		}
		tally.analysis.Rules = slices.Sorted(maps.Keys(tally.rules))
		out = append(out, tally.analysis)
	}
	sortGroups(out, a.opts, func(f FileAnalysis) (string, Counts) { return f.Path, f.Counts })
	return out
}

// sortGroups orders groups by opts.SortBy. SortDesc only affects count
// ordering; severity order always puts the most errors first. Ties fall back
// to the key so the output is deterministic.
func sortGroups[T any](groups []T, opts Options, key func(T) (string, Counts)) {
	slices.SortFunc(groups, func(left, right T) int {
		leftKey, lc := key(left)
		rightKey, rc := key(right)

		var result int
		switch opts.SortBy {
		case SortByAlpha:
		case SortBySeverity:
			result = cmp.Or(
				cmp.Compare(rc.Errors, lc.Errors),
				cmp.Compare(rc.Warnings, lc.Warnings),
				cmp.Compare(rc.Issues, lc.Issues),
			)
		default:
			result = cmp.Compare(lc.Issues, rc.Issues)
			if opts.SortDesc {
				result = -result
			}
		}
		return cmp.Or(result, cmp.Compare(leftKey, rightKey))
	})
}
