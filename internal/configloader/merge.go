package configloader

import (
	"maps"

	"github.com/yaklabco/csvdoc/pkg/config"
)

// setIfNonZero assigns v to dst unless v is the zero value.
func setIfNonZero[T comparable](dst *T, v T) {
	var zero T
	if v != zero {
		*dst = v
	}
}

// setIfNonNil assigns v to dst when v is non-nil. An empty non-nil slice
// clears the setting.
func setIfNonNil[T any](dst *[]T, v []T) {
	if v != nil {
		*dst = v
	}
}

// merge layers override on top of base and returns a new Config. Zero
// scalars and nil slices in override leave base untouched, so a layer can
// switch a boolean on but never off. Rule settings merge field by field.
func merge(base, override *config.Config) *config.Config {
	switch {
	case base == nil:
		return override
	case override == nil:
		return base
	}

	out := *base

	setIfNonZero(&out.Flavor, override.Flavor)
	setIfNonZero(&out.SeverityDefault, override.SeverityDefault)
	setIfNonZero(&out.Format, override.Format)
	setIfNonZero(&out.RuleFormat, override.RuleFormat)
	setIfNonZero(&out.SummaryOrder, override.SummaryOrder)
	setIfNonZero(&out.Jobs, override.Jobs)
	setIfNonZero(&out.Embedded, override.Embedded)
	setIfNonZero(&out.Strict, override.Strict)

	setIfNonNil(&out.Ignore, override.Ignore)
	setIfNonNil(&out.Extensions, override.Extensions)
	setIfNonNil(&out.EnableRules, override.EnableRules)
	setIfNonNil(&out.DisableRules, override.DisableRules)

	out.Rules = mergeRules(base.Rules, override.Rules)
	return &out
}

// mergeRules returns a fresh map; neither input is modified.
func mergeRules(base, override map[string]config.RuleConfig) map[string]config.RuleConfig {
	if base == nil && override == nil {
		return nil
	}

	out := make(map[string]config.RuleConfig, len(base)+len(override))
	for id, rc := range base {
		out[id] = rc.Clone()
	}
	for id, rc := range override {
		prev, ok := out[id]
		if !ok {
			out[id] = rc.Clone()
			continue
		}
		if rc.Enabled != nil {
			prev.Enabled = rc.Enabled
		}
		if rc.Severity != nil {
			prev.Severity = rc.Severity
		}
		if rc.Options != nil {
			if prev.Options == nil {
				prev.Options = make(map[string]any, len(rc.Options))
			}
			maps.Copy(prev.Options, rc.Options)
		}
		out[id] = prev
	}
	return out
}

// MergeAll folds configs left to right; later entries win.
func MergeAll(configs ...*config.Config) *config.Config {
	var out *config.Config
	for i, cfg := range configs {
		if i == 0 {
			out = cfg
			continue
		}
		out = merge(out, cfg)
	}
	return out
}
