// Package pretty renders diagnostics, documents and summaries with Lipgloss.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// ANSI 256 palette indexes.
const (
	colorLight  = "7"
	colorGray   = "8"
	colorRed    = "9"
	colorGreen  = "10"
	colorYellow = "11"
	colorBlue   = "12"
	colorCyan   = "14"
)

// Styles holds every style used by CLI output.
type Styles struct {
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	// Diagnostic lines.
	FilePath   lipgloss.Style
	RuleID     lipgloss.Style
	Message    lipgloss.Style
	Suggestion lipgloss.Style
	SourceLine lipgloss.Style
	Caret      lipgloss.Style

	// Document grid drawn by show.
	GridHeader lipgloss.Style
	GridIndex  lipgloss.Style
	GridCell   lipgloss.Style
	GridBorder lipgloss.Style

	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	// Diagnostic and summary tables. Row styles follow severity.
	TableHeader    lipgloss.Style
	TableBorder    lipgloss.Style
	TableErrorRow  lipgloss.Style
	TableWarnRow   lipgloss.Style
	TableInfoRow   lipgloss.Style
	TableCell      lipgloss.Style
	TableLegend    lipgloss.Style
	TableSeparator lipgloss.Style

	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles builds the style set. Without color every style renders text
// unchanged, except grid cells which keep their padding.
func NewStyles(colorEnabled bool) *Styles {
	plain := lipgloss.NewStyle()

	fg := func(color string) lipgloss.Style {
		if !colorEnabled {
			return plain
		}
		return plain.Foreground(lipgloss.Color(color))
	}
	bold := func(style lipgloss.Style) lipgloss.Style {
		if !colorEnabled {
			return style
		}
		return style.Bold(true)
	}
	italic := func(style lipgloss.Style) lipgloss.Style {
		if !colorEnabled {
			return style
		}
		return style.Italic(true)
	}

	gray := fg(colorGray)

	return &Styles{
		Error:   bold(fg(colorRed)),
		Warning: bold(fg(colorYellow)),
		Info:    bold(fg(colorBlue)),

		FilePath:   bold(plain),
		RuleID:     gray,
		Message:    plain,
		Suggestion: italic(fg(colorGreen)),
		SourceLine: fg(colorLight),
		Caret:      fg(colorRed),

		GridHeader: bold(fg(colorCyan)).Padding(0, 1),
		GridIndex:  gray.Padding(0, 1),
		GridCell:   plain.Padding(0, 1),
		GridBorder: gray,

		SummaryTitle: bold(plain),
		SummaryValue: plain,
		Success:      bold(fg(colorGreen)),
		Failure:      bold(fg(colorRed)),

		TableHeader:    bold(fg(colorLight)),
		TableBorder:    gray,
		TableErrorRow:  fg(colorRed),
		TableWarnRow:   fg(colorYellow),
		TableInfoRow:   fg(colorBlue),
		TableCell:      fg(colorCyan),
		TableLegend:    italic(gray),
		TableSeparator: gray,

		Dim:  gray,
		Bold: bold(plain),
	}
}

// IsColorEnabled resolves a --color mode for writer. "always" and "never"
// are absolute; any other mode enables color only for a terminal when
// NO_COLOR is unset.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := writer.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
