package lint

import (
	"slices"

	"github.com/yaklabco/csvdoc/pkg/config"
)

// ResolvedRule pairs a Rule with its resolved configuration.
type ResolvedRule struct {
	Rule Rule

	// Enabled indicates whether the rule should be run.
	Enabled bool

	// Severity is the resolved severity for diagnostics from this rule.
	Severity config.Severity

	// Config is the rule-specific configuration (may be nil).
	Config *config.RuleConfig
}

// ResolveRules determines which rules to run based on registry and config.
// Returns only enabled rules, ordered by ID.
func ResolveRules(registry *Registry, cfg *config.Config) []ResolvedRule {
	var resolved []ResolvedRule

	for _, rule := range registry.Rules() {
		rr := resolveRule(rule, cfg)
		if rr.Enabled {
			resolved = append(resolved, rr)
		}
	}

	return resolved
}

// resolveRule applies, in increasing precedence: rule defaults, the
// configured default severity, the rule's config entry, then the CLI
// enable and disable lists.
func resolveRule(rule Rule, cfg *config.Config) ResolvedRule {
	rr := ResolvedRule{
		Rule:     rule,
		Enabled:  rule.DefaultEnabled(),
		Severity: rule.DefaultSeverity(),
	}

	if cfg == nil {
		return rr
	}

	if sev := config.Severity(cfg.SeverityDefault); sev.IsValid() {
		rr.Severity = sev
	}

	if ruleCfg, ok := lookupRuleConfig(cfg, rule); ok {
		rr.Config = &ruleCfg

		if ruleCfg.Enabled != nil {
			rr.Enabled = *ruleCfg.Enabled
		}
		if ruleCfg.Severity != nil {
			if sev := config.Severity(*ruleCfg.Severity); sev.IsValid() {
				rr.Severity = sev
			}
		}
	}

	if matchesRule(cfg.EnableRules, rule) {
		rr.Enabled = true
	}
	if matchesRule(cfg.DisableRules, rule) {
		rr.Enabled = false
	}

	return rr
}

func lookupRuleConfig(cfg *config.Config, rule Rule) (config.RuleConfig, bool) {
	if rc, ok := cfg.Rules[rule.ID()]; ok {
		return rc, true
	}
	rc, ok := cfg.Rules[rule.Name()]
	return rc, ok
}

func matchesRule(keys []string, rule Rule) bool {
	return slices.ContainsFunc(keys, func(key string) bool {
		return key == rule.ID() || key == rule.Name()
	})
}
