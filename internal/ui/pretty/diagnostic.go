package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/csvdoc/pkg/config"
	"github.com/yaklabco/csvdoc/pkg/lint"
)

// contextIndent prefixes the source line and caret under a diagnostic.
const contextIndent = "        "

// DiagnosticOptions controls FormatDiagnostic.
type DiagnosticOptions struct {
	// RuleFormat selects how the rule is named. Empty means the rule ID.
	RuleFormat config.RuleFormat

	// SourceLine is printed under the diagnostic with a caret at its start
	// column. Empty prints no context.
	SourceLine string
}

// FormatDiagnostic renders one diagnostic:
//
//	data.csv:3:5  error  Missing closing quote  [row 3, col 2]  (missing-closing-quote)
func (s *Styles) FormatDiagnostic(diag *lint.Diagnostic, opts DiagnosticOptions) string {
	ruleFormat := opts.RuleFormat
	if ruleFormat == "" {
		ruleFormat = config.RuleFormatID
	}

	fields := []string{
		fmt.Sprintf("%s:%d:%d", s.FilePath.Render(diag.FilePath), diag.StartLine, diag.StartColumn),
		s.FormatSeverity(diag.Severity),
		s.Message.Render(diag.Message),
	}
	if cell := FormatCell(diag.Row, diag.Column); cell != "" {
		fields = append(fields, s.TableCell.Render("["+cell+"]"))
	}
	fields = append(fields, s.RuleID.Render("("+config.FormatRuleID(ruleFormat, diag.RuleID, diag.RuleName)+")"))

	var b strings.Builder
	b.WriteString("  " + strings.Join(fields, "  ") + "\n")

	if opts.SourceLine != "" {
		b.WriteString(contextIndent + s.SourceLine.Render(opts.SourceLine) + "\n")
		if diag.StartColumn > 0 {
			b.WriteString(contextIndent + strings.Repeat(" ", diag.StartColumn-1) + s.Caret.Render("^") + "\n")
		}
	}

	if diag.Suggestion != "" {
		b.WriteString("    " + s.Dim.Render("Suggestion:") + " " + s.Suggestion.Render(diag.Suggestion) + "\n")
	}
	return b.String()
}

// FormatCell describes a 1-based cell position. Zero means not applicable.
func FormatCell(row, column int) string {
	switch {
	case row > 0 && column > 0:
		return fmt.Sprintf("row %d, col %d", row, column)
	case row > 0:
		return fmt.Sprintf("row %d", row)
	default:
		return ""
	}
}

// FormatSeverity styles a severity name. Unknown severities are returned
// unstyled.
func (s *Styles) FormatSeverity(sev config.Severity) string {
	switch sev {
	case config.SeverityError:
		return s.Error.Render(string(sev))
	case config.SeverityWarning:
		return s.Warning.Render(string(sev))
	case config.SeverityInfo:
		return s.Info.Render(string(sev))
	default:
		return string(sev)
	}
}

// FormatFileHeader renders the header printed above a file's diagnostics.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	header := s.FilePath.Render(path)
	if issueCount > 0 {
		header += s.Dim.Render(fmt.Sprintf(" (%d %s)", issueCount, plural(issueCount, "issue", "issues")))
	}
	return header
}
