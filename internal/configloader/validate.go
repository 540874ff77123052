package configloader

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/yaklabco/csvdoc/pkg/config"
	"github.com/yaklabco/csvdoc/pkg/lint"
	"github.com/yaklabco/csvdoc/pkg/runner"
)

// ValidationError is one problem found in a configuration.
type ValidationError struct {
	// Field is the dotted path of the offending key, e.g. "rules.CSV002.severity".
	Field    string
	Value    any
	Message  string
	FilePath string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, 3)
	for _, part := range []string{e.FilePath, e.Field} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(append(parts, e.Message), ": ")
}

// ValidationResult collects the findings of Validate. Errors stop a load;
// warnings are reported and ignored.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// Valid reports whether there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// AllMessages returns errors then warnings, each prefixed with its kind.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

func (r *ValidationResult) add(list *[]ValidationError, field string, value any, format string, args ...any) {
	*list = append(*list, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

// choice checks a string-typed setting against its allowed values. Empty
// values are always accepted.
type choice struct {
	field   string
	value   string
	allowed []string
}

func choicesOf[T ~string](values ...T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

var severities = choicesOf(config.SeverityError, config.SeverityWarning, config.SeverityInfo) //nolint:gochecknoglobals

// Validate checks cfg and returns every error and warning it finds.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	choices := []choice{
		{"flavor", string(cfg.Flavor), choicesOf(config.FlavorCommonMark, config.FlavorGFM)},
		{"severity_default", cfg.SeverityDefault, severities},
		{"format", string(cfg.Format), choicesOf(config.OutputFormats()...)},
		{"rule_format", string(cfg.RuleFormat),
			choicesOf(config.RuleFormatName, config.RuleFormatID, config.RuleFormatCombined)},
		{"summary_order", string(cfg.SummaryOrder), choicesOf(config.SummaryOrderRules, config.SummaryOrderFiles)},
	}
	for _, c := range choices {
		if c.value != "" && !slices.Contains(c.allowed, c.value) {
			result.add(&result.Errors, c.field, c.value,
				"invalid %s %q; must be one of: %s", strings.ReplaceAll(c.field, "_", " "), c.value,
				strings.Join(c.allowed, ", "))
		}
	}

	if cfg.Jobs < 0 {
		result.add(&result.Errors, "jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}

	validateRules(cfg, result)

	for i, pattern := range cfg.Ignore {
		if _, err := runner.NewMatcher([]string{pattern}); err != nil {
			result.add(&result.Errors, fmt.Sprintf("ignore[%d]", i), pattern, "%v", err)
		}
	}
	for i, ext := range cfg.Extensions {
		if !strings.HasPrefix(ext, ".") {
			result.add(&result.Warnings, fmt.Sprintf("extensions[%d]", i), ext,
				"extension %q does not start with a dot and will never match", ext)
		}
	}

	return result
}

// validateRules visits rule settings in key order.
func validateRules(cfg *config.Config, result *ValidationResult) {
	known := func(key string) bool {
		_, _, ok := lint.DefaultRegistry.Resolve(key)
		return ok
	}

	for _, key := range slices.Sorted(maps.Keys(cfg.Rules)) {
		if !known(key) {
			result.add(&result.Warnings, "rules."+key, key, "unknown rule %q; it will be ignored", key)
		}
		if sev := cfg.Rules[key].Severity; sev != nil && !slices.Contains(severities, *sev) {
			result.add(&result.Errors, "rules."+key+".severity", *sev,
				"invalid severity %q; must be one of: %s", *sev, strings.Join(severities, ", "))
		}
	}

	for _, key := range slices.Concat(cfg.EnableRules, cfg.DisableRules) {
		if !known(key) {
			result.add(&result.Warnings, "rules", key, "unknown rule %q in enable/disable list", key)
		}
	}
}

// ValidateWithFile is Validate with every finding attributed to filePath.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)
	for _, list := range [][]ValidationError{result.Errors, result.Warnings} {
		for i := range list {
			list[i].FilePath = filePath
		}
	}
	return result
}
