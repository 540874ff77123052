// Package lint runs diagnostics rules over the CSV regions of a file.
package lint

import (
	"github.com/yaklabco/csvdoc/pkg/config"
	"github.com/yaklabco/csvdoc/pkg/source"
)

// Diagnostic is a single problem found in a file.
type Diagnostic struct {
	// RuleID is the identifier of the rule that produced the diagnostic.
	RuleID string

	// RuleName is the human-readable rule name (e.g. "ragged-row").
	RuleName string

	Message  string
	Severity config.Severity
	FilePath string

	// Span is the byte range of the problem within the file.
	Span source.Range

	// StartLine, StartColumn, EndLine and EndColumn are 1-based.
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int

	// Row and Column locate the problem in the parsed document, 1-based.
	// Zero means not applicable.
	Row    int
	Column int

	// Suggestion is an optional hint on how to resolve the problem.
	Suggestion string
}

// Start returns the start position.
func (d *Diagnostic) Start() source.Position {
	return source.Position{Line: d.StartLine, Column: d.StartColumn}
}

// End returns the end position.
func (d *Diagnostic) End() source.Position {
	return source.Position{Line: d.EndLine, Column: d.EndColumn}
}

// Rule is a check run against every CSV region of a file.
type Rule interface {
	// ID returns the unique identifier (e.g. "CSV001").
	ID() string

	// Name returns the human-readable name.
	Name() string

	// Description explains what the rule checks.
	Description() string

	DefaultEnabled() bool
	DefaultSeverity() config.Severity

	// Tags categorise the rule.
	Tags() []string

	// Apply returns the rule's diagnostics for ctx. An error reports a
	// failure of the rule itself, not a finding.
	Apply(ctx *RuleContext) ([]Diagnostic, error)
}
