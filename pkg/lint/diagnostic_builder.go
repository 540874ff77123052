package lint

import (
	"github.com/yaklabco/csvdoc/pkg/config"
	"github.com/yaklabco/csvdoc/pkg/source"
)

// DiagnosticBuilder assembles a Diagnostic.
type DiagnosticBuilder struct {
	diag Diagnostic
}

// NewDiagnostic starts a diagnostic for span within file. Line and column
// positions are derived from the file's line index.
func NewDiagnostic(ruleID string, file *source.Snapshot, span source.Range, message string) *DiagnosticBuilder {
	diag := Diagnostic{
		RuleID:  ruleID,
		Message: message,
		Span:    span,
	}

	if file != nil {
		diag.FilePath = file.Path
		diag.StartLine, diag.StartColumn = file.LineAt(span.Start)
		diag.EndLine, diag.EndColumn = file.LineAt(span.End)
	}

	return &DiagnosticBuilder{diag: diag}
}

// WithSeverity sets the severity.
func (b *DiagnosticBuilder) WithSeverity(s config.Severity) *DiagnosticBuilder {
	b.diag.Severity = s
	return b
}

// WithCell records the zero-based row and column the diagnostic refers to.
func (b *DiagnosticBuilder) WithCell(row, column int) *DiagnosticBuilder {
	b.diag.Row = row + 1
	b.diag.Column = column + 1
	return b
}

// WithRow records the zero-based row the diagnostic refers to.
func (b *DiagnosticBuilder) WithRow(row int) *DiagnosticBuilder {
	b.diag.Row = row + 1
	return b
}

// WithSuggestion sets a hint.
func (b *DiagnosticBuilder) WithSuggestion(s string) *DiagnosticBuilder {
	b.diag.Suggestion = s
	return b
}

// Build returns the Diagnostic.
func (b *DiagnosticBuilder) Build() Diagnostic {
	return b.diag
}
