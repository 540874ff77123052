package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/csvdoc/internal/logging"
	"github.com/yaklabco/csvdoc/pkg/config"
	"github.com/yaklabco/csvdoc/pkg/lint"
)

const formatJSON = "json"

type rulesFlags struct {
	ruleFormat string
	format     string
	tag        string
	enabled    bool
}

// ruleInfo is one entry of `rules --format json`.
type ruleInfo struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Severity    string   `json:"severity"`
	Enabled     bool     `json:"enabled"`
	Tags        []string `json:"tags,omitempty"`
}

func describeRule(rule lint.Rule) ruleInfo {
	return ruleInfo{
		ID:          rule.ID(),
		Name:        rule.Name(),
		Description: rule.Description(),
		Severity:    string(rule.DefaultSeverity()),
		Enabled:     rule.DefaultEnabled(),
		Tags:        rule.Tags(),
	}
}

func newRulesCommand() *cobra.Command {
	flags := &rulesFlags{}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List available check rules",
		Long: `List the check rules with their IDs, descriptions, default severity
and whether they run without being enabled.`,
		Example: `  csvdoc rules
  csvdoc rules --tag structure
  csvdoc rules --enabled --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rules := selectRules(lint.DefaultRegistry.Rules(), flags)
			if flags.format == formatJSON {
				return outputRulesJSON(cmd.OutOrStdout(), rules)
			}
			logRules(rules, config.RuleFormat(flags.ruleFormat))
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.ruleFormat, "rule-format", "combined",
		"rule identifier format in output: name, id, or combined")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")
	cmd.Flags().StringVar(&flags.tag, "tag", "", "only list rules carrying this tag")
	cmd.Flags().BoolVar(&flags.enabled, "enabled", false, "only list rules that run by default")

	return cmd
}

// selectRules applies the --tag and --enabled filters.
func selectRules(rules []lint.Rule, flags *rulesFlags) []lint.Rule {
	return slices.DeleteFunc(slices.Clone(rules), func(rule lint.Rule) bool {
		if flags.enabled && !rule.DefaultEnabled() {
			return true
		}
		return flags.tag != "" && !slices.Contains(rule.Tags(), flags.tag)
	})
}

func logRules(rules []lint.Rule, ruleFormat config.RuleFormat) {
	logger := logging.NewInteractive()
	if len(rules) == 0 {
		logger.Info("no rules match")
		return
	}

	for _, rule := range rules {
		state := map[bool]string{true: "on", false: "off"}[rule.DefaultEnabled()]
		logger.Info(config.FormatRuleID(ruleFormat, rule.ID(), rule.Name()),
			logging.FieldSeverity, rule.DefaultSeverity(),
			logging.FieldEnabled, state,
			logging.FieldTags, strings.Join(rule.Tags(), ","),
			logging.FieldDescription, rule.Description(),
		)
	}
}

// outputRulesJSON writes rules as an indented JSON array.
func outputRulesJSON(w io.Writer, rules []lint.Rule) error {
	infos := make([]ruleInfo, 0, len(rules))
	for _, rule := range rules {
		infos = append(infos, describeRule(rule))
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		return fmt.Errorf("encode rules: %w", err)
	}
	return nil
}
