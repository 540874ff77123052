package config

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
)

// commentWrapWidth is the width at which template comments wrap.
const commentWrapWidth = 70

// RuleInfo describes a rule for template generation.
type RuleInfo struct {
	ID          string
	Name        string
	Description string
	Enabled     bool
	Severity    Severity
	Tags        []string
}

// TemplateOptions controls GenerateTemplate.
type TemplateOptions struct {
	// Full documents every rule in Rules instead of a short example.
	Full bool

	// Rules are the rules to document in a full template.
	Rules []RuleInfo
}

const templateHeader = `# csvdoc configuration
# Place this file at the root of your project as .csvdoc.yml.
`

const templateCommon = `
# Default severity for rules that do not set one: error, warning or info.
# severity_default: warning

# File extensions to check.
extensions:
  - .csv

# Also check ` + "```csv" + ` fenced code blocks in Markdown files.
embedded: false

# Markdown flavor used for embedded CSV: commonmark or gfm.
# flavor: commonmark

# Glob patterns of paths to skip.
# ignore:
#   - "testdata/**"
#   - "vendor/**"
`

// GenerateTemplate returns a commented configuration file.
func GenerateTemplate(opts TemplateOptions) []byte {
	var buf bytes.Buffer
	buf.WriteString(templateHeader)
	buf.WriteString(templateCommon)

	if !opts.Full {
		buf.WriteString(`
# Per-rule settings, keyed by rule ID or name.
# rules:
#   CSV002:
#     enabled: true
#     severity: error
`)
		return buf.Bytes()
	}

	rules := slices.Clone(opts.Rules)
	slices.SortFunc(rules, func(a, b RuleInfo) int {
		return strings.Compare(a.ID, b.ID)
	})

	buf.WriteString("\n# Per-rule settings, keyed by rule ID or name.\n")
	if len(rules) == 0 {
		buf.WriteString("rules: {}\n")
		return buf.Bytes()
	}

	buf.WriteString("rules:\n")
	for _, rule := range rules {
		fmt.Fprintf(&buf, "\n  # %s: %s\n", rule.ID, rule.Name)
		if rule.Description != "" {
			fmt.Fprintf(&buf, "  # %s\n", wrapComment(rule.Description, commentWrapWidth))
		}
		if len(rule.Tags) > 0 {
			fmt.Fprintf(&buf, "  # Tags: %s\n", strings.Join(rule.Tags, ", "))
		}
		fmt.Fprintf(&buf, "  %s:\n", rule.ID)
		fmt.Fprintf(&buf, "    enabled: %t\n", rule.Enabled)
		fmt.Fprintf(&buf, "    severity: %s\n", rule.Severity)
	}
	return buf.Bytes()
}

// wrapComment wraps text at maxWidth, continuing lines as indented comments.
func wrapComment(text string, maxWidth int) string {
	if len(text) <= maxWidth {
		return text
	}

	var (
		lines   []string
		current string
	)
	for _, word := range strings.Fields(text) {
		switch {
		case current == "":
			current = word
		case len(current)+1+len(word) <= maxWidth:
			current += " " + word
		default:
			lines = append(lines, current)
			current = word
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	return strings.Join(lines, "\n  # ")
}
