// Package config defines the configuration model of csvdoc. The types are
// plain data; discovery and merging live in internal/configloader.
package config

import "slices"

// Severity is the severity of a diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// IsValid reports whether s is a known severity.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityError, SeverityWarning, SeverityInfo:
		return true
	default:
		return false
	}
}

// RuleConfig holds per-rule settings. Nil fields keep the rule's defaults.
type RuleConfig struct {
	Enabled  *bool          `yaml:"enabled,omitempty"`
	Severity *string        `yaml:"severity,omitempty"`
	Options  map[string]any `yaml:"options,omitempty"`
}

// OutputFormat is a report format.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatTable   OutputFormat = "table"
	FormatJSON    OutputFormat = "json"
	FormatSARIF   OutputFormat = "sarif"
	FormatSummary OutputFormat = "summary"
)

// OutputFormats lists every supported report format.
func OutputFormats() []OutputFormat {
	return []OutputFormat{FormatText, FormatTable, FormatJSON, FormatSARIF, FormatSummary}
}

// IsValid reports whether f is a supported format.
func (f OutputFormat) IsValid() bool {
	return slices.Contains(OutputFormats(), f)
}

// RuleFormat controls how rule identifiers appear in output.
type RuleFormat string

const (
	RuleFormatName     RuleFormat = "name"     // "ragged-row"
	RuleFormatID       RuleFormat = "id"       // "CSV002"
	RuleFormatCombined RuleFormat = "combined" // "CSV002/ragged-row"
)

// SummaryOrder controls which table the summary format prints first.
type SummaryOrder string

const (
	SummaryOrderRules SummaryOrder = "rules"
	SummaryOrderFiles SummaryOrder = "files"
)

// IsValid reports whether s is a known order.
func (s SummaryOrder) IsValid() bool {
	return s == SummaryOrderRules || s == SummaryOrderFiles
}

// Flavor is the Markdown flavor used to find embedded CSV.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

// DefaultExtensions are the file extensions checked when none are configured.
func DefaultExtensions() []string {
	return []string{".csv"}
}

// MarkdownExtensions are added to the checked extensions when Embedded is set.
func MarkdownExtensions() []string {
	return []string{".md", ".markdown"}
}

// Config is the root configuration.
type Config struct {
	// SeverityDefault applies to rules whose severity is not configured.
	// Empty keeps each rule's own default.
	SeverityDefault string `yaml:"severity_default,omitempty"`

	// Rules holds per-rule settings keyed by rule ID or name.
	Rules map[string]RuleConfig `yaml:"rules,omitempty"`

	// Ignore holds glob patterns of paths to skip.
	Ignore []string `yaml:"ignore,omitempty"`

	// Extensions lists the file extensions to check.
	Extensions []string `yaml:"extensions,omitempty"`

	// Embedded also checks CSV fenced code blocks in Markdown files.
	Embedded bool `yaml:"embedded,omitempty"`

	// Flavor is the Markdown flavor used for embedded CSV.
	Flavor Flavor `yaml:"flavor,omitempty"`

	// CLI-only settings.

	Format       OutputFormat `yaml:"-"`
	RuleFormat   RuleFormat   `yaml:"-"`
	SummaryOrder SummaryOrder `yaml:"-"`
	Jobs         int          `yaml:"-"`
	Strict       bool         `yaml:"-"`
	EnableRules  []string     `yaml:"-"`
	DisableRules []string     `yaml:"-"`
}

// NewConfig returns a Config holding the defaults.
func NewConfig() *Config {
	return &Config{
		Rules:        make(map[string]RuleConfig),
		Flavor:       FlavorCommonMark,
		Format:       FormatText,
		RuleFormat:   RuleFormatCombined,
		SummaryOrder: SummaryOrderRules,
	}
}

// EffectiveExtensions returns the extensions a run should check.
func (c *Config) EffectiveExtensions() []string {
	exts := c.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions()
	}
	exts = slices.Clone(exts)

	if c.Embedded {
		for _, ext := range MarkdownExtensions() {
			if !slices.Contains(exts, ext) {
				exts = append(exts, ext)
			}
		}
	}
	return exts
}
