package reporter

import (
	"bufio"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/csvdoc/internal/ui/pretty"
	"github.com/yaklabco/csvdoc/pkg/runner"
)

// TextReporter writes one block per diagnostic, optionally grouped under a
// per-file header, followed by a one-line summary.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a text reporter writing to opts.Writer.
func NewTextReporter(opts Options) *TextReporter {
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to check."))
		}
		return 0, nil
	}

	total := 0
	for _, outcome := range result.Files {
		total += r.writeFile(outcome)
	}

	switch {
	case !r.opts.ShowSummary:
	case r.opts.DetailedSummary:
		fmt.Fprint(r.bw, r.styles.FormatSummary(result.Stats))
	default:
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}
	return total, nil
}

// writeFile writes the read error or the diagnostics of one file and returns
// the number of diagnostics written.
func (r *TextReporter) writeFile(outcome runner.FileOutcome) int {
	path := displayPath(outcome.Path, r.opts.WorkingDir)

	if outcome.Error != nil {
		fmt.Fprintf(r.bw, "%s: %s\n",
			r.styles.FilePath.Render(path),
			r.styles.Error.Render(fmt.Sprintf("error: %v", outcome.Error)))
		return 0
	}
	if outcome.Result == nil || outcome.Result.FileResult == nil {
		return 0
	}

	diags := outcome.Result.Diagnostics
	if len(diags) == 0 {
		return 0
	}

	if r.opts.GroupByFile {
		fmt.Fprintln(r.bw, r.styles.FormatFileHeader(path, len(diags)))
	}
	if outcome.Result.Stale {
		fmt.Fprintf(r.bw, "%s: %s\n",
			r.styles.FilePath.Render(path),
			r.styles.Warning.Render("changed while being checked; positions may be out of date"))
	}

	snapshot := outcome.Result.Snapshot
	for _, diag := range diags {
		opts := pretty.DiagnosticOptions{RuleFormat: r.opts.RuleFormat}
		if r.opts.ShowContext && snapshot != nil {
			opts.SourceLine = string(snapshot.LineContent(diag.StartLine))
		}
		diag.FilePath = path
		fmt.Fprint(r.bw, r.styles.FormatDiagnostic(&diag, opts))
	}

	if r.opts.GroupByFile {
		fmt.Fprintln(r.bw)
	}
	return len(diags)
}

// displayPath makes path relative to workDir when possible.
func displayPath(path, workDir string) string {
	if workDir == "" || !filepath.IsAbs(path) {
		return path
	}
	rel, err := filepath.Rel(workDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return filepath.ToSlash(rel)
}
