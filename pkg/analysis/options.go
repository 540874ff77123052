package analysis

import (
	"slices"

	"github.com/yaklabco/csvdoc/pkg/config"
)

// SortField selects the order of the ByFile and ByRule views.
type SortField string

const (
	SortByCount    SortField = "count"    // issue count, honoring SortDesc
	SortByAlpha    SortField = "alpha"    // file path or rule ID
	SortBySeverity SortField = "severity" // errors, then warnings, then total
)

// IsValid reports whether s names a known sort order.
func (s SortField) IsValid() bool {
	return slices.Contains([]SortField{SortByCount, SortByAlpha, SortBySeverity}, s)
}

// Options configures Analyze.
type Options struct {
	// IncludeDiagnostics, IncludeByFile and IncludeByRule select which views
	// the report carries. Totals are always computed.
	IncludeDiagnostics bool
	IncludeByFile      bool
	IncludeByRule      bool

	SortBy   SortField
	SortDesc bool

	// RuleFormat renders RuleAnalysis.Label.
	RuleFormat config.RuleFormat

	// RunID identifies the run. A random UUID is generated when empty.
	RunID string

	// WorkingDir makes reported paths relative. Empty keeps them as given.
	WorkingDir string
}

// DefaultOptions includes every view, most frequent first.
func DefaultOptions() Options {
	return Options{
		IncludeDiagnostics: true,
		IncludeByFile:      true,
		IncludeByRule:      true,
		SortBy:             SortByCount,
		SortDesc:           true,
		RuleFormat:         config.RuleFormatName,
	}
}
