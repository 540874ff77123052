package rules

import (
	"fmt"

	"github.com/yaklabco/csvdoc/pkg/config"
	"github.com/yaklabco/csvdoc/pkg/csvdoc"
	"github.com/yaklabco/csvdoc/pkg/lint"
)

// Reference values for the ragged-row "reference" option.
const (
	referenceWidest = "widest"
	referenceHeader = "header"
)

// RaggedRowRule reports rows whose cell count differs from the rest of the
// document.
type RaggedRowRule struct {
	lint.BaseRule
}

// NewRaggedRowRule creates the CSV002 rule.
func NewRaggedRowRule() *RaggedRowRule {
	return &RaggedRowRule{
		BaseRule: lint.NewBaseRule(
			RaggedRowID,
			"ragged-row",
			"Every row should have the same number of cells",
			[]string{"structure"},
		).WithDefaults(false, config.SeverityWarning),
	}
}

// Apply compares each row against the expected width. Options:
//
//	reference: "widest" (default) or "header"
//	columns:   a fixed expected width; overrides reference when positive
func (r *RaggedRowRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	reference := ctx.OptionString("reference", referenceWidest)
	fixed := ctx.OptionInt("columns", 0)

	var diags []lint.Diagnostic

	for _, region := range ctx.Regions {
		if ctx.Cancelled() {
			return diags, fmt.Errorf("rule cancelled: %w", ctx.Ctx.Err())
		}

		expected := expectedWidth(region.Document, reference, fixed)
		for i, row := range region.Document.Rows() {
			count := row.CellCount()
			if count == 0 || count == expected {
				continue
			}

			span, ok := region.RowRange(i)
			if !ok {
				continue
			}
			msg := fmt.Sprintf("Row has %d cells, expected %d", count, expected)
			diags = append(diags, lint.NewDiagnostic(r.ID(), ctx.File, span, msg).
				WithRow(i).
				Build())
		}
	}

	return diags, nil
}

func expectedWidth(doc *csvdoc.Document, reference string, fixed int) int {
	if fixed > 0 {
		return fixed
	}
	if reference == referenceHeader {
		if header, ok := doc.Row(0); ok && header.CellCount() > 0 {
			return header.CellCount()
		}
	}
	return doc.ColumnCount()
}

// BlankRowRule reports rows that hold nothing but a line break.
type BlankRowRule struct {
	lint.BaseRule
}

// NewBlankRowRule creates the CSV003 rule.
func NewBlankRowRule() *BlankRowRule {
	return &BlankRowRule{
		BaseRule: lint.NewBaseRule(
			BlankRowID,
			"blank-row",
			"Rows should not be empty lines",
			[]string{"structure", "whitespace"},
		).WithDefaults(false, config.SeverityInfo),
	}
}

// Apply reports newline-only rows. With allow_trailing (default true), blank
// rows at the end of a region are not reported.
func (r *BlankRowRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	allowTrailing := ctx.OptionBool("allow_trailing", true)

	var diags []lint.Diagnostic

	for _, region := range ctx.Regions {
		if ctx.Cancelled() {
			return diags, fmt.Errorf("rule cancelled: %w", ctx.Ctx.Err())
		}

		rows := region.Document.Rows()
		last := len(rows)
		if allowTrailing {
			for last > 0 && isBlankRow(rows[last-1]) {
				last--
			}
		}

		for i := range last {
			if !isBlankRow(rows[i]) {
				continue
			}
			start, _ := rows[i].StartIndex()
			span := region.FileRange(start, 0)
			diags = append(diags, lint.NewDiagnostic(r.ID(), ctx.File, span, "Blank row").
				WithRow(i).
				WithSuggestion("Remove the empty line").
				Build())
		}
	}

	return diags, nil
}

func isBlankRow(row *csvdoc.Row) bool {
	return row.CellCount() == 0 && row.EndsWithNewLine()
}
