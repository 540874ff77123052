package reporter

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/yaklabco/csvdoc/internal/ui/pretty"
	"github.com/yaklabco/csvdoc/pkg/analysis"
	"github.com/yaklabco/csvdoc/pkg/config"
)

// Truncation limits for the name columns of the summary tables.
const (
	maxRuleNameLength = 28
	maxFilePathLength = 58
)

// SummaryRenderer prints per-rule and per-file tables followed by a totals
// line.
type SummaryRenderer struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
}

// NewSummaryRenderer creates a summary renderer.
func NewSummaryRenderer(opts Options) *SummaryRenderer {
	return &SummaryRenderer{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		out:    opts.Writer,
	}
}

// Render implements Renderer.
func (r *SummaryRenderer) Render(_ context.Context, report *analysis.Report) error {
	if !report.Totals.HasIssues() {
		_, err := fmt.Fprintln(r.out, r.styles.Success.Render("No issues found"))
		return err
	}

	sections := []string{r.ruleTable(report.ByRule), r.fileTable(report.ByFile)}
	if r.opts.SummaryOrder == config.SummaryOrderFiles {
		sections[0], sections[1] = sections[1], sections[0]
	}

	var b strings.Builder
	for _, section := range sections {
		if section != "" {
			b.WriteString(section)
			b.WriteString("\n")
		}
	}
	b.WriteString(r.totalsLine(report.Totals))
	b.WriteString("\n")

	_, err := io.WriteString(r.out, b.String())
	return err
}

func (r *SummaryRenderer) ruleTable(rules []analysis.RuleAnalysis) string {
	if len(rules) == 0 {
		return ""
	}

	counts := make([]analysis.Counts, len(rules))
	rows := make([][]string, len(rules))
	for i, rule := range rules {
		label := rule.Label
		if label == "" {
			label = rule.RuleID
		}
		counts[i] = rule.Counts
		rows[i] = []string{
			truncateHead(label, maxRuleNameLength),
			strconv.Itoa(rule.Issues),
			strconv.Itoa(rule.Errors),
			strconv.Itoa(rule.Warnings),
			strconv.Itoa(rule.Infos),
		}
	}

	return r.section("Rules Summary", []string{"Rule", "Count", "Errors", "Warnings", "Info"}, rows, counts)
}

func (r *SummaryRenderer) fileTable(files []analysis.FileAnalysis) string {
	if len(files) == 0 {
		return ""
	}

	counts := make([]analysis.Counts, len(files))
	rows := make([][]string, len(files))
	for i, file := range files {
		counts[i] = file.Counts
		rows[i] = []string{
			truncateTail(file.Path, maxFilePathLength),
			strconv.Itoa(file.Regions),
			strconv.Itoa(file.Rows),
			strconv.Itoa(file.Issues),
			strconv.Itoa(file.Errors),
			strconv.Itoa(file.Warnings),
		}
	}

	return r.section("Files Summary", []string{"File", "Regions", "Rows", "Count", "Errors", "Warnings"}, rows, counts)
}

// section draws a titled table. The first column takes the color of the
// row's most severe diagnostic and the numeric columns are right-aligned.
func (r *SummaryRenderer) section(title string, headers []string, rows [][]string, counts []analysis.Counts) string {
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.styles.TableBorder).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := r.styles.Message
			switch {
			case row == table.HeaderRow:
				style = r.styles.TableHeader
			case col == 0 && counts[row].Errors > 0:
				style = r.styles.TableErrorRow
			case col == 0 && counts[row].Warnings > 0:
				style = r.styles.TableWarnRow
			}
			if col > 0 {
				style = style.Align(lipgloss.Right)
			}
			return style.Padding(0, 1)
		})

	return r.styles.Bold.Render(title) + "\n" + tbl.String() + "\n"
}

// totalsLine renders, for example,
// "Total: 7 issues (2 errors, 5 warnings) in 2 files (120 rows in 4 regions)".
func (r *SummaryRenderer) totalsLine(totals analysis.Totals) string {
	line := fmt.Sprintf("%d %s", totals.Issues, plural(totals.Issues, "issue", "issues"))

	var bySeverity []string
	if totals.Errors > 0 {
		bySeverity = append(bySeverity, r.styles.Error.Render(fmt.Sprintf("%d errors", totals.Errors)))
	}
	if totals.Warnings > 0 {
		bySeverity = append(bySeverity, r.styles.Warning.Render(fmt.Sprintf("%d warnings", totals.Warnings)))
	}
	if totals.Infos > 0 {
		bySeverity = append(bySeverity, r.styles.Info.Render(fmt.Sprintf("%d info", totals.Infos)))
	}
	if len(bySeverity) > 0 {
		line += " (" + strings.Join(bySeverity, ", ") + ")"
	}

	line += fmt.Sprintf(" in %d %s", totals.FilesWithIssues, plural(totals.FilesWithIssues, "file", "files"))
	if totals.Rows > 0 {
		line += " " + r.styles.Dim.Render(fmt.Sprintf("(%d rows in %d regions)", totals.Rows, totals.Regions))
	}

	return r.styles.Bold.Render("Total:") + " " + line
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// truncateHead keeps the start of s, marking the cut with "…".
func truncateHead(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "…"
}

// truncateTail keeps the end of s, which for paths is the file name.
func truncateTail(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return "…" + s[len(s)-(limit-1):]
}
