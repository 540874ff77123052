package reporter

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"golang.org/x/term"

	"github.com/yaklabco/csvdoc/internal/ui/pretty"
	"github.com/yaklabco/csvdoc/pkg/runner"
)

// TableReporter draws diagnostics as bordered tables, either one table for
// the run or one per file.
type TableReporter struct {
	opts      Options
	styles    *pretty.Styles
	formatter *pretty.TableFormatter
	bw        *bufio.Writer
}

// NewTableReporter creates a table reporter sized to the output terminal.
func NewTableReporter(opts Options) *TableReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	styles := pretty.NewStyles(colorEnabled)

	return &TableReporter{
		opts:      opts,
		styles:    styles,
		formatter: pretty.NewTableFormatter(styles, colorEnabled, terminalWidth(opts.Writer)),
		bw:        bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TableReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		r.summaryLine(r.styles.Success.Render("No files to check."))
		return 0, nil
	}

	for _, file := range result.Files {
		if file.Error != nil {
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.FilePath.Render(file.Path),
				r.styles.Error.Render("error: "+file.Error.Error()),
			)
		}
	}

	total := result.Stats.DiagnosticsTotal
	switch {
	case total == 0:
		r.summaryLine("\n" + r.styles.Success.Render("All files passed!") + "\n" +
			r.styles.Dim.Render(fmt.Sprintf("%d files checked", result.Stats.FilesProcessed)))
	case r.opts.PerFile:
		r.writePerFile(result)
	default:
		fmt.Fprint(r.bw, r.formatter.FormatTable(result))
		r.summaryLine(r.formatter.FormatTableSummary(result.Stats, "") + "\n")
	}
	return total, nil
}

func (r *TableReporter) writePerFile(result *runner.Result) {
	for _, file := range result.Files {
		table := r.formatter.FormatFileTable(file)
		if table == "" {
			continue
		}
		fmt.Fprintln(r.bw)
		fmt.Fprintln(r.bw, r.styles.Bold.Render(file.Path))
		fmt.Fprint(r.bw, table)
	}

	r.summaryLine("\n" + r.styles.TableSeparator.Render(strings.Repeat("═", 80)) + "\n" +
		r.styles.Bold.Render("Overall Summary") + "\n" +
		r.formatter.FormatTableSummary(result.Stats, ""))
}

// summaryLine writes line when summaries are enabled.
func (r *TableReporter) summaryLine(line string) {
	if r.opts.ShowSummary {
		fmt.Fprintln(r.bw, line)
	}
}

// terminalWidth returns the width of writer's terminal, or zero when writer
// is not a terminal.
func terminalWidth(writer io.Writer) int {
	f, ok := writer.(interface{ Fd() uintptr })
	if !ok {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}
