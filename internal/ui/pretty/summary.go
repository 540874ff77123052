package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/csvdoc/pkg/runner"
)

const summaryDividerWidth = 40

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func files(n int) string {
	return strconv.Itoa(n) + " " + plural(n, "file", "files")
}

// severityCounts lists the non-zero severities of stats, most severe first.
func (s *Styles) severityCounts(stats runner.Stats) []string {
	var parts []string
	for _, sev := range []struct {
		key, label string
		style      lipgloss.Style
	}{
		{"error", "errors", s.Error},
		{"warning", "warnings", s.Warning},
		{"info", "info", s.Info},
	} {
		if n := stats.DiagnosticsBySeverity[sev.key]; n > 0 {
			parts = append(parts, sev.style.Render(fmt.Sprintf("%d %s", n, sev.label)))
		}
	}
	return parts
}

// FormatSummaryOneLine formats run statistics as a single line, e.g.
// "5 issues (2 errors, 3 warnings) in 2 files, 1 changed during check".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	var line string
	if stats.DiagnosticsTotal == 0 {
		line = s.Success.Render("No issues found") +
			s.Dim.Render(" ("+files(stats.FilesProcessed)+" checked)")
	} else {
		line = fmt.Sprintf("%d %s", stats.DiagnosticsTotal, plural(stats.DiagnosticsTotal, "issue", "issues"))
		if parts := s.severityCounts(stats); len(parts) > 0 {
			line += " (" + strings.Join(parts, ", ") + ")"
		}
		line += " in " + files(stats.FilesWithIssues)
	}

	if stats.FilesErrored > 0 {
		line += ", " + s.Failure.Render(files(stats.FilesErrored)+" unreadable")
	}
	if stats.FilesStale > 0 {
		line += ", " + s.Warning.Render(fmt.Sprintf("%d changed during check", stats.FilesStale))
	}
	return line + "\n"
}

// FormatSummary formats run statistics as a multi-line block ending in a
// pass or fail verdict.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var b strings.Builder

	row := func(depth int, label string, value int, style lipgloss.Style) {
		indent := strings.Repeat("  ", depth)
		fmt.Fprintf(&b, "%s%-*s%s\n", indent, 21-len(indent), label+":", style.Render(strconv.Itoa(value)))
	}
	optional := func(depth int, label string, value int, style lipgloss.Style) {
		if value > 0 {
			row(depth, label, value, style)
		}
	}

	b.WriteString("\n" + s.SummaryTitle.Render("Summary") + "\n")
	b.WriteString(strings.Repeat("-", summaryDividerWidth) + "\n")

	row(1, "Files checked", stats.FilesProcessed, s.SummaryValue)
	optional(1, "Files with issues", stats.FilesWithIssues, s.Failure)
	optional(1, "Files unreadable", stats.FilesErrored, s.Failure)
	optional(1, "Files changed", stats.FilesStale, s.Warning)
	row(1, "CSV regions", stats.Regions, s.SummaryValue)
	row(1, "Rows", stats.Rows, s.SummaryValue)
	b.WriteString("\n")

	bySeverity := stats.DiagnosticsBySeverity
	row(1, "Total issues", stats.DiagnosticsTotal, s.SummaryValue)
	optional(2, "Errors", bySeverity["error"], s.Error)
	optional(2, "Warnings", bySeverity["warning"], s.Warning)
	optional(2, "Info", bySeverity["info"], s.Info)
	b.WriteString("\n")

	switch {
	case bySeverity["error"] > 0:
		b.WriteString(s.Failure.Render("Check failed with errors"))
	case bySeverity["warning"] > 0:
		b.WriteString(s.Warning.Render("Check completed with warnings"))
	default:
		b.WriteString(s.Success.Render("Check passed"))
	}
	b.WriteString("\n")
	return b.String()
}
