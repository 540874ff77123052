package reporter

import (
	"bufio"
	"cmp"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/csvdoc/pkg/config"
	"github.com/yaklabco/csvdoc/pkg/lint"
	"github.com/yaklabco/csvdoc/pkg/runner"
	"github.com/yaklabco/csvdoc/pkg/source"
)

// jsonVersion is bumped when the document shape changes incompatibly.
const jsonVersion = "1.0.0"

// JSONOutput is the document written by the json format.
type JSONOutput struct {
	Version string           `json:"version"`
	RunID   string           `json:"runId"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult is one checked file. Error is set when the file could not
// be read; Stale when it changed while being checked.
type JSONFileResult struct {
	Path        string           `json:"path"`
	Hash        string           `json:"hash,omitempty"`
	Regions     []JSONRegion     `json:"regions,omitempty"`
	Diagnostics []JSONDiagnostic `json:"diagnostics"`
	Stale       bool             `json:"stale,omitempty"`
	Error       string           `json:"error,omitempty"`
}

// JSONRegion is one CSV region of a file; Origin is "file" or "fence".
type JSONRegion struct {
	Origin    string `json:"origin"`
	StartLine int    `json:"startLine"`
	Rows      int    `json:"rows"`
	Columns   int    `json:"columns"`
}

// JSONDiagnostic is one finding. Line and column fields are 1-based source
// positions; Row and Column are 1-based CSV coordinates.
type JSONDiagnostic struct {
	Rule        string `json:"rule"`
	RuleID      string `json:"ruleId"`
	RuleName    string `json:"ruleName"`
	Severity    string `json:"severity"`
	Message     string `json:"message"`
	StartLine   int    `json:"startLine"`
	StartColumn int    `json:"startColumn"`
	EndLine     int    `json:"endLine"`
	EndColumn   int    `json:"endColumn"`
	Row         int    `json:"row,omitempty"`
	Column      int    `json:"column,omitempty"`
	Suggestion  string `json:"suggestion,omitempty"`
}

// JSONSummary counts files and findings across the run. ByRule is keyed by
// rule ID.
type JSONSummary struct {
	FilesChecked    int            `json:"filesChecked"`
	FilesWithIssues int            `json:"filesWithIssues"`
	FilesStale      int            `json:"filesStale"`
	FilesErrored    int            `json:"filesErrored"`
	TotalIssues     int            `json:"totalIssues"`
	BySeverity      map[string]int `json:"bySeverity"`
	ByRule          map[string]int `json:"byRule,omitempty"`
}

// JSONReporter writes a single JSON document per run.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a JSON reporter writing to opts.Writer.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{opts: opts, bw: bufio.NewWriterSize(opts.Writer, bufWriterSize)}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.document(result)

	enc := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}
	return output.Summary.TotalIssues, nil
}

func (r *JSONReporter) document(result *runner.Result) *JSONOutput {
	out := &JSONOutput{
		Version: jsonVersion,
		RunID:   r.opts.runID(),
		Files:   []JSONFileResult{},
		Summary: JSONSummary{BySeverity: map[string]int{}},
	}
	if result == nil {
		return out
	}

	sum := &out.Summary
	for _, outcome := range result.Files {
		file := r.file(outcome)
		out.Files = append(out.Files, file)

		sum.FilesChecked++
		if file.Error != "" {
			sum.FilesErrored++
		}
		if file.Stale {
			sum.FilesStale++
		}
		if len(file.Diagnostics) == 0 {
			continue
		}
		sum.FilesWithIssues++
		for _, diag := range file.Diagnostics {
			sum.TotalIssues++
			sum.BySeverity[diag.Severity]++
			if sum.ByRule == nil {
				sum.ByRule = map[string]int{}
			}
			sum.ByRule[diag.RuleID]++
		}
	}
	return out
}

func (r *JSONReporter) file(outcome runner.FileOutcome) JSONFileResult {
	out := JSONFileResult{
		Path:        displayPath(outcome.Path, r.opts.WorkingDir),
		Diagnostics: []JSONDiagnostic{},
	}
	if outcome.Error != nil {
		out.Error = outcome.Error.Error()
	}
	if outcome.Result == nil {
		return out
	}
	out.Stale = outcome.Result.Stale

	fr := outcome.Result.FileResult
	if fr == nil {
		return out
	}
	if fr.Snapshot != nil {
		out.Hash = fr.Snapshot.Hash
	}
	for _, region := range fr.Regions {
		out.Regions = append(out.Regions, jsonRegion(fr.Snapshot, region))
	}
	for _, diag := range fr.Diagnostics {
		out.Diagnostics = append(out.Diagnostics, r.diagnostic(diag))
	}
	return out
}

func jsonRegion(snapshot *source.Snapshot, region lint.ParsedRegion) JSONRegion {
	out := JSONRegion{
		Origin:    region.Origin.String(),
		StartLine: 1,
		Rows:      region.Document.RowCount(),
		Columns:   region.Document.ColumnCount(),
	}
	if snapshot != nil {
		out.StartLine, _ = snapshot.LineAt(region.Range.Start)
	}
	return out
}

func (r *JSONReporter) diagnostic(diag lint.Diagnostic) JSONDiagnostic {
	return JSONDiagnostic{
		Rule:        config.FormatRuleID(r.opts.RuleFormat, diag.RuleID, diag.RuleName),
		RuleID:      diag.RuleID,
		RuleName:    diag.RuleName,
		Severity:    string(cmp.Or(diag.Severity, config.SeverityWarning)),
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
