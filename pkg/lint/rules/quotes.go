package rules

import (
	"fmt"

	"github.com/yaklabco/csvdoc/pkg/config"
	"github.com/yaklabco/csvdoc/pkg/lint"
)

// MissingClosingQuoteRule reports quoted cells that are never closed.
type MissingClosingQuoteRule struct {
	lint.BaseRule
}

// NewMissingClosingQuoteRule creates the CSV001 rule.
func NewMissingClosingQuoteRule() *MissingClosingQuoteRule {
	return &MissingClosingQuoteRule{
		BaseRule: lint.NewBaseRule(
			MissingClosingQuoteID,
			"missing-closing-quote",
			"Quoted cells must end with a closing quote",
			[]string{"quotes", "syntax"},
		).WithDefaults(true, config.SeverityError),
	}
}

// Apply turns every parse issue of every region into a diagnostic.
func (r *MissingClosingQuoteRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	var diags []lint.Diagnostic

	for _, region := range ctx.Regions {
		if ctx.Cancelled() {
			return diags, fmt.Errorf("rule cancelled: %w", ctx.Ctx.Err())
		}

		for _, issue := range region.Issues {
			span := region.FileRange(issue.Span.Start, issue.Span.Length)
			builder := lint.NewDiagnostic(r.ID(), ctx.File, span, issue.Message).
				WithSuggestion(`Close the quote, or double quotes that belong to the cell ("")`)
			if pos, ok := region.Document.Position(issue.Span.Start); ok {
				builder.WithCell(pos.Row, pos.Column)
			}
			diags = append(diags, builder.Build())
		}
	}

	return diags, nil
}
