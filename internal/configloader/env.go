package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/csvdoc/pkg/config"
)

// envVarPrefix starts every csvdoc environment variable.
const envVarPrefix = "CSVDOC_"

// envVar binds one CSVDOC_* variable to a config field.
type envVar struct {
	suffix string
	field  string
	help   string
	apply  func(cfg *config.Config, value string) error
}

func (v envVar) name() string {
	return envVarPrefix + v.suffix
}

func stringEnv(set func(*config.Config, string)) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		set(cfg, value)
		return nil
	}
}

func boolEnv(set func(*config.Config, bool)) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%q is not a boolean (expected true/false/1/0)", value)
		}
		set(cfg, b)
		return nil
	}
}

func intEnv(set func(*config.Config, int)) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%q is not an integer", value)
		}
		set(cfg, i)
		return nil
	}
}

func listEnv(set func(*config.Config, []string)) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		set(cfg, splitList(value))
		return nil
	}
}

// envVars lists the supported variables in the order they are applied.
//
//nolint:gochecknoglobals // read-only table
var envVars = []envVar{
	{"EMBEDDED", "embedded", "Check CSV fenced blocks in Markdown: true or false",
		boolEnv(func(c *config.Config, v bool) { c.Embedded = v })},
	{"EXTENSIONS", "extensions", "Comma-separated file extensions to check",
		listEnv(func(c *config.Config, v []string) { c.Extensions = v })},
	{"FLAVOR", "flavor", "Markdown flavor for embedded CSV: commonmark or gfm",
		stringEnv(func(c *config.Config, v string) { c.Flavor = config.Flavor(v) })},
	{"FORMAT", "format", "Output format: text, table, json, sarif or summary",
		stringEnv(func(c *config.Config, v string) { c.Format = config.OutputFormat(v) })},
	{"IGNORE", "ignore", "Comma-separated glob patterns of paths to skip",
		listEnv(func(c *config.Config, v []string) { c.Ignore = v })},
	{"JOBS", "jobs", "Number of parallel workers (0 = one per CPU)",
		intEnv(func(c *config.Config, v int) { c.Jobs = v })},
	{"RULE_FORMAT", "rule_format", "Rule identifiers in output: name, id or combined",
		stringEnv(func(c *config.Config, v string) { c.RuleFormat = config.RuleFormat(v) })},
	{"SEVERITY_DEFAULT", "severity_default", "Severity for rules without one: error, warning or info",
		stringEnv(func(c *config.Config, v string) { c.SeverityDefault = v })},
	{"STRICT", "strict", "Fail on warnings: true or false",
		boolEnv(func(c *config.Config, v bool) { c.Strict = v })},
}

// LoadFromEnv applies CSVDOC_* overrides to cfg.
func LoadFromEnv(cfg *config.Config) error {
	return loadFromEnv(cfg, os.Getenv)
}

func loadFromEnv(cfg *config.Config, getenv func(string) string) error {
	if cfg == nil {
		return nil
	}
	for _, v := range envVars {
		value := getenv(v.name())
		if value == "" {
			continue
		}
		if err := v.apply(cfg, value); err != nil {
			return fmt.Errorf("%s: %w", v.name(), err)
		}
	}
	return nil
}

// splitList splits a comma-separated value, dropping empty elements.
func splitList(value string) []string {
	var out []string
	for part := range strings.SplitSeq(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// GetEnvVarName returns the variable that overrides a config field, or "".
func GetEnvVarName(field string) string {
	for _, v := range envVars {
		if v.field == field {
			return v.name()
		}
	}
	return ""
}

// EnvVar describes one supported environment variable.
type EnvVar struct {
	Name string
	Help string
}

// ListEnvVars returns the supported environment variables in name order.
func ListEnvVars() []EnvVar {
	out := make([]EnvVar, len(envVars))
	for i, v := range envVars {
		out[i] = EnvVar{Name: v.name(), Help: v.help}
	}
	return out
}
