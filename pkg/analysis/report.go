package analysis

import (
	"time"

	"github.com/yaklabco/csvdoc/pkg/config"
)

// Report is the aggregated view of one check run. Analyze computes it once
// and every renderer reads from it.
type Report struct {
	Diagnostics []DiagnosticEntry `json:"diagnostics,omitempty"`
	ByFile      []FileAnalysis    `json:"byFile,omitempty"`
	ByRule      []RuleAnalysis    `json:"byRule,omitempty"`
	Totals      Totals            `json:"summary"`

	// Errors lists files that could not be read.
	Errors []FileError `json:"errors,omitempty"`

	Version   string    `json:"version"`
	RunID     string    `json:"runId"`
	Timestamp time.Time `json:"timestamp"`
}

// Counts tallies diagnostics by severity.
type Counts struct {
	Issues   int `json:"issues"`
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Infos    int `json:"infos"`
}

// add counts one diagnostic. An empty severity counts as a warning.
func (c *Counts) add(severity config.Severity) {
	c.Issues++
	switch severity {
	case config.SeverityError:
		c.Errors++
	case config.SeverityInfo:
		c.Infos++
	default:
		c.Warnings++
	}
}

// DiagnosticEntry is one diagnostic with its display path resolved.
type DiagnosticEntry struct {
	FilePath    string `json:"filePath"`
	RuleID      string `json:"ruleId"`
	RuleName    string `json:"ruleName"`
	Severity    string `json:"severity"`
	Message     string `json:"message"`
	StartLine   int    `json:"startLine"`
	StartColumn int    `json:"startColumn"`
	EndLine     int    `json:"endLine"`
	EndColumn   int    `json:"endColumn"`
	Row         int    `json:"row,omitempty"`
	Column      int    `json:"column,omitempty"`
	Suggestion  string `json:"suggestion,omitempty"`
}

// FileError records a file that could not be processed.
type FileError struct {
	FilePath string `json:"filePath"`
	Message  string `json:"message"`
}

// Totals aggregates the whole run.
type Totals struct {
	Counts

	Files           int `json:"filesChecked"`
	FilesWithIssues int `json:"filesWithIssues"`
	FilesErrored    int `json:"filesErrored"`
	FilesStale      int `json:"filesStale"`

	// Regions and Rows count parsed CSV regions and their rows across all
	// readable files.
	Regions int `json:"regions"`
	Rows    int `json:"rows"`
}

// HasIssues reports whether any diagnostic was recorded.
func (t Totals) HasIssues() bool {
	return t.Issues > 0
}

// HasErrors reports whether any error-severity diagnostic was recorded.
func (t Totals) HasErrors() bool {
	return t.Errors > 0
}

// FileAnalysis aggregates the diagnostics of one file.
type FileAnalysis struct {
	Path string `json:"path"`
	Counts

	Regions int      `json:"regions"`
	Rows    int      `json:"rows"`
	Rules   []string `json:"rules,omitempty"`
}

// RuleAnalysis aggregates the diagnostics of one rule.
type RuleAnalysis struct {
	RuleID   string `json:"ruleId"`
	RuleName string `json:"ruleName"`

	// Label is the rule identifier rendered in the requested rule format.
	Label string `json:"label"`
	Counts

	Files []string `json:"files,omitempty"`
}
