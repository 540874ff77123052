package lint

import (
	"context"

	"github.com/yaklabco/csvdoc/pkg/config"
	"github.com/yaklabco/csvdoc/pkg/source"
)

// RuleContext is what a rule sees while checking one file. A new one is
// built for every rule invocation, so it carries its context.Context.
type RuleContext struct {
	Ctx     context.Context
	File    *source.Snapshot
	Regions []ParsedRegion // in file order
	Config  *config.Config

	// RuleConfig is the rule's own settings, or nil.
	RuleConfig *config.RuleConfig
}

// NewRuleContext creates a RuleContext.
func NewRuleContext(
	ctx context.Context,
	file *source.Snapshot,
	regions []ParsedRegion,
	cfg *config.Config,
	ruleCfg *config.RuleConfig,
) *RuleContext {
	return &RuleContext{Ctx: ctx, File: file, Regions: regions, Config: cfg, RuleConfig: ruleCfg}
}

// Cancelled reports whether the run was cancelled.
func (rc *RuleContext) Cancelled() bool {
	return rc.Ctx.Err() != nil
}

// Option returns the raw option value for key, or def when unset.
func (rc *RuleContext) Option(key string, def any) any {
	if rc.RuleConfig == nil {
		return def
	}
	if v, ok := rc.RuleConfig.Options[key]; ok {
		return v
	}
	return def
}

// optionOf returns the option for key when it holds a T, and def otherwise.
func optionOf[T any](rc *RuleContext, key string, def T) T {
	if v, ok := rc.Option(key, def).(T); ok {
		return v
	}
	return def
}

// OptionInt returns an integer option. Decoded YAML and JSON numbers are
// both accepted.
func (rc *RuleContext) OptionInt(key string, def int) int {
	switch v := rc.Option(key, def).(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return def
	}
}

// OptionBool returns a boolean option.
func (rc *RuleContext) OptionBool(key string, def bool) bool {
	return optionOf(rc, key, def)
}

// OptionString returns a string option.
func (rc *RuleContext) OptionString(key, def string) string {
	return optionOf(rc, key, def)
}
