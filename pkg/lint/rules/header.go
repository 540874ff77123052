package rules

import (
	"fmt"
	"strings"

	"github.com/yaklabco/csvdoc/pkg/config"
	"github.com/yaklabco/csvdoc/pkg/lint"
)

// DuplicateHeaderRule reports header cells that repeat an earlier header.
type DuplicateHeaderRule struct {
	lint.BaseRule
}

// NewDuplicateHeaderRule creates the CSV004 rule.
func NewDuplicateHeaderRule() *DuplicateHeaderRule {
	return &DuplicateHeaderRule{
		BaseRule: lint.NewBaseRule(
			DuplicateHeaderID,
			"duplicate-header",
			"Header names in the first row should be unique",
			[]string{"header"},
		).WithDefaults(false, config.SeverityWarning),
	}
}

// Apply treats the first row of each region as its header. Names are
// compared after trimming spaces; case_sensitive (default false) controls
// letter case. Empty header cells are ignored.
func (r *DuplicateHeaderRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	caseSensitive := ctx.OptionBool("case_sensitive", false)

	var diags []lint.Diagnostic

	for _, region := range ctx.Regions {
		if ctx.Cancelled() {
			return diags, fmt.Errorf("rule cancelled: %w", ctx.Ctx.Err())
		}

		header, ok := region.Document.Row(0)
		if !ok {
			continue
		}

		seen := make(map[string]int)
		for col, cell := range header.Cells() {
			name := strings.TrimSpace(cell.Value())
			if name == "" {
				continue
			}
			key := name
			if !caseSensitive {
				key = strings.ToLower(name)
			}

			first, dup := seen[key]
			if !dup {
				seen[key] = col
				continue
			}

			start, _ := cell.StartIndex()
			end, _ := cell.AfterEndIndex()
			span := region.FileRange(start, end-start)
			msg := fmt.Sprintf("Duplicate header %q (first in column %d)", name, first+1)
			diags = append(diags, lint.NewDiagnostic(r.ID(), ctx.File, span, msg).
				WithCell(0, col).
				Build())
		}
	}

	return diags, nil
}
