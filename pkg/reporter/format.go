package reporter

import (
	"fmt"
	"slices"
	"strings"

	"github.com/yaklabco/csvdoc/pkg/config"
)

// Format is an output format. It shares its values with the config file's
// format key.
type Format = config.OutputFormat

// Output formats supported by the reporter.
const (
	FormatText    = config.FormatText
	FormatTable   = config.FormatTable
	FormatJSON    = config.FormatJSON
	FormatSARIF   = config.FormatSARIF
	FormatSummary = config.FormatSummary
)

// ParseFormat parses a format name. An empty name selects text.
func ParseFormat(name string) (Format, error) {
	if name == "" {
		return FormatText, nil
	}

	formats := config.OutputFormats()
	if format := Format(name); slices.Contains(formats, format) {
		return format, nil
	}

	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	return "", fmt.Errorf("unknown format %q; valid formats: %s", name, strings.Join(names, ", "))
}
