package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/yaklabco/csvdoc/pkg/config"
	"github.com/yaklabco/csvdoc/pkg/lint"
	"github.com/yaklabco/csvdoc/pkg/runner"
)

const (
	defaultTermWidth = 100
	minMessageWidth  = 24

	// Each column costs its padding plus one border rune.
	columnOverhead = 3
)

// TableRow is one diagnostic as drawn in a table.
type TableRow struct {
	File     string
	Location string
	Cell     string
	Severity config.Severity
	Message  string
	RuleID   string
}

// TableFormatter draws diagnostics as bordered tables that fit the terminal
// width by truncating messages.
type TableFormatter struct {
	styles       *Styles
	colorEnabled bool
	termWidth    int
}

// NewTableFormatter creates a formatter. A non-positive width uses 100.
func NewTableFormatter(styles *Styles, colorEnabled bool, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{styles: styles, colorEnabled: colorEnabled, termWidth: termWidth}
}

// FormatTable draws every diagnostic of result in one table. The file name
// is shown on the first row of each file's group.
func (t *TableFormatter) FormatTable(result *runner.Result) string {
	if result == nil {
		return ""
	}

	var rows []TableRow
	for _, file := range result.Files {
		if file.Result == nil || file.Result.FileResult == nil {
			continue
		}
		for i := range file.Result.Diagnostics {
			row := DiagnosticToTableRow(file.Path, &file.Result.Diagnostics[i])
			if i > 0 {
				row.File = ""
			}
			rows = append(rows, row)
		}
	}
	if len(rows) == 0 {
		return ""
	}

	return t.render(rows, true) + t.formatLegend() + "\n"
}

// FormatFileTable draws one file's diagnostics without a file column,
// followed by the file's severity counts.
func (t *TableFormatter) FormatFileTable(file runner.FileOutcome) string {
	if file.Result == nil || file.Result.FileResult == nil || len(file.Result.Diagnostics) == 0 {
		return ""
	}

	rows := make([]TableRow, len(file.Result.Diagnostics))
	for i := range file.Result.Diagnostics {
		rows[i] = DiagnosticToTableRow(file.Path, &file.Result.Diagnostics[i])
	}

	return t.render(rows, false) + t.formatFileSummary(rows) + "\n"
}

func (t *TableFormatter) render(rows []TableRow, withFile bool) string {
	headers := []string{"LOC", "CELL", "SEVERITY", "MESSAGE", "RULE"}
	if withFile {
		headers = append([]string{"FILE"}, headers...)
	}

	cells := make([][]string, len(rows))
	widths := make([]int, len(headers))
	for i, header := range headers {
		widths[i] = len(header)
	}
	for i, row := range rows {
		line := []string{row.Location, row.Cell, string(row.Severity), row.Message, row.RuleID}
		if withFile {
			line = append([]string{row.File}, line...)
		}
		cells[i] = line
		for j, value := range line {
			widths[j] = max(widths[j], lipgloss.Width(value))
		}
	}

	// Shrink the message column until the table fits.
	messageCol := len(headers) - 2
	fixed := 1
	for j, width := range widths {
		if j != messageCol {
			fixed += width + columnOverhead
		}
	}
	maxMessage := max(minMessageWidth, t.termWidth-fixed-columnOverhead)
	for _, line := range cells {
		line[messageCol] = truncate(line[messageCol], maxMessage)
	}

	severityCol := messageCol - 1
	cellCol := messageCol - 2

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(t.styles.TableBorder).
		Headers(headers...).
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = t.styles.TableHeader
			case col == severityCol:
				style = t.severityStyle(rows[row].Severity)
			case col == cellCol:
				style = t.styles.TableCell
			case col == messageCol:
				style = t.styles.Message
			default:
				style = t.styles.Dim
			}
			return style.Padding(0, 1)
		})

	return tbl.String() + "\n"
}

func (t *TableFormatter) severityStyle(severity config.Severity) lipgloss.Style {
	switch severity {
	case config.SeverityError:
		return t.styles.TableErrorRow
	case config.SeverityWarning:
		return t.styles.TableWarnRow
	case config.SeverityInfo:
		return t.styles.TableInfoRow
	default:
		return lipgloss.NewStyle()
	}
}

func (t *TableFormatter) formatLegend() string {
	if !t.colorEnabled {
		return t.styles.TableLegend.Render(" LOC = line:column | CELL = row:column")
	}
	return t.styles.TableLegend.Render(fmt.Sprintf(" %s %s %s  LOC = line:column | CELL = row:column",
		t.styles.TableErrorRow.Render("error"),
		t.styles.TableWarnRow.Render("warning"),
		t.styles.TableInfoRow.Render("info"),
	))
}

func (t *TableFormatter) formatFileSummary(rows []TableRow) string {
	counts := map[config.Severity]int{}
	for _, row := range rows {
		counts[row.Severity]++
	}
	return " " + strings.Join(t.severityParts(counts), " | ")
}

// severityParts renders non-zero severity counts, most severe first.
func (t *TableFormatter) severityParts(counts map[config.Severity]int) []string {
	var parts []string
	if n := counts[config.SeverityError]; n > 0 {
		parts = append(parts, t.styles.Error.Render(fmt.Sprintf("%d errors", n)))
	}
	if n := counts[config.SeverityWarning]; n > 0 {
		parts = append(parts, t.styles.Warning.Render(fmt.Sprintf("%d warnings", n)))
	}
	if n := counts[config.SeverityInfo]; n > 0 {
		parts = append(parts, t.styles.Info.Render(fmt.Sprintf("%d info", n)))
	}
	return parts
}

// FormatTableSummary renders the run totals on one line. duration is
// appended when non-empty.
func (t *TableFormatter) FormatTableSummary(stats runner.Stats, duration string) string {
	counts := make(map[config.Severity]int, len(stats.DiagnosticsBySeverity))
	for severity, n := range stats.DiagnosticsBySeverity {
		counts[config.Severity(severity)] = n
	}

	parts := []string{fmt.Sprintf("%d files checked", stats.FilesProcessed)}
	parts = append(parts, t.severityParts(counts)...)
	if stats.FilesErrored > 0 {
		parts = append(parts, t.styles.Failure.Render(fmt.Sprintf("%d unreadable", stats.FilesErrored)))
	}
	if duration != "" {
		parts = append(parts, t.styles.Dim.Render(duration))
	}
	return " " + strings.Join(parts, " | ")
}

// truncate shortens s to at most width runes, marking the cut with "…".
func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-1]) + ellipsis
}

// DiagnosticToTableRow converts a diagnostic to a table row.
func DiagnosticToTableRow(path string, diag *lint.Diagnostic) TableRow {
	return TableRow{
		File:     path,
		Location: strconv.Itoa(diag.StartLine) + ":" + strconv.Itoa(diag.StartColumn),
		Cell:     cellLabel(diag.Row, diag.Column),
		Severity: diag.Severity,
		Message:  diag.Message,
		RuleID:   diag.RuleID,
	}
}

// cellLabel renders a compact "R:C" cell reference, or "-" when absent.
func cellLabel(row, column int) string {
	switch {
	case row > 0 && column > 0:
		return strconv.Itoa(row) + ":" + strconv.Itoa(column)
	case row > 0:
		return strconv.Itoa(row)
	default:
		return "-"
	}
}
