package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/csvdoc/internal/ui/pretty"
	"github.com/yaklabco/csvdoc/pkg/runner"
)

func TestFormatSummary(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	tests := []struct {
		name     string
		stats    runner.Stats
		contains []string
		absent   []string
	}{
		{
			name: "errors and warnings",
			stats: runner.Stats{
				FilesProcessed:        10,
				FilesWithIssues:       3,
				Regions:               11,
				Rows:                  420,
				DiagnosticsTotal:      15,
				DiagnosticsBySeverity: map[string]int{"error": 5, "warning": 10},
			},
			contains: []string{"Files checked:     10", "Files with issues: 3", "CSV regions:       11", "Rows:              420", "Errors:          5", "Check failed with errors"},
		},
		{
			name: "warnings only",
			stats: runner.Stats{
				FilesProcessed:        2,
				FilesWithIssues:       1,
				DiagnosticsTotal:      1,
				DiagnosticsBySeverity: map[string]int{"warning": 1},
			},
			contains: []string{"Check completed with warnings"},
			absent:   []string{"Errors:"},
		},
		{
			name: "clean",
			stats: runner.Stats{
				FilesProcessed:        5,
				DiagnosticsBySeverity: map[string]int{},
			},
			contains: []string{"Check passed"},
			absent:   []string{"Files with issues:", "Files unreadable:"},
		},
		{
			name: "unreadable files",
			stats: runner.Stats{
				FilesErrored:          2,
				DiagnosticsBySeverity: map[string]int{},
			},
			contains: []string{"Files unreadable:  2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := styles.FormatSummary(tt.stats)
			for _, want := range tt.contains {
				assert.Contains(t, got, want)
			}
			for _, notWant := range tt.absent {
				assert.NotContains(t, got, notWant)
			}
		})
	}
}

func TestFormatSummaryOneLine(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	tests := []struct {
		name  string
		stats runner.Stats
		want  string
	}{
		{
			name:  "no issues",
			stats: runner.Stats{FilesProcessed: 3},
			want:  "No issues found (3 files checked)\n",
		},
		{
			name:  "single file",
			stats: runner.Stats{FilesProcessed: 1},
			want:  "No issues found (1 file checked)\n",
		},
		{
			name: "mixed severities",
			stats: runner.Stats{
				FilesProcessed:        4,
				FilesWithIssues:       2,
				DiagnosticsTotal:      6,
				DiagnosticsBySeverity: map[string]int{"error": 1, "warning": 2, "info": 3},
			},
			want: "6 issues (1 errors, 2 warnings, 3 info) in 2 files\n",
		},
		{
			name: "single issue with stale and unreadable",
			stats: runner.Stats{
				FilesProcessed:        2,
				FilesWithIssues:       1,
				FilesErrored:          1,
				FilesStale:            1,
				DiagnosticsTotal:      1,
				DiagnosticsBySeverity: map[string]int{"error": 1},
			},
			want: "1 issue (1 errors) in 1 file, 1 file unreadable, 1 changed during check\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, styles.FormatSummaryOneLine(tt.stats))
		})
	}
}
