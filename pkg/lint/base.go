package lint

import "github.com/yaklabco/csvdoc/pkg/config"

// BaseRule implements the metadata half of Rule. Embed it in concrete rules.
type BaseRule struct {
	id       string
	name     string
	desc     string
	tags     []string
	enabled  bool
	severity config.Severity
}

// NewBaseRule creates an enabled BaseRule with warning severity.
func NewBaseRule(id, name, desc string, tags []string) BaseRule {
	return BaseRule{
		id:       id,
		name:     name,
		desc:     desc,
		tags:     tags,
		enabled:  true,
		severity: config.SeverityWarning,
	}
}

// WithDefaults returns a copy of r with the given default state.
func (r BaseRule) WithDefaults(enabled bool, severity config.Severity) BaseRule {
	r.enabled = enabled
	r.severity = severity
	return r
}

// ID returns the rule identifier.
func (r *BaseRule) ID() string {
	return r.id
}

// Name returns the rule name.
func (r *BaseRule) Name() string {
	return r.name
}

// Description returns the rule description.
func (r *BaseRule) Description() string {
	return r.desc
}

// DefaultEnabled reports whether the rule runs when not configured.
func (r *BaseRule) DefaultEnabled() bool {
	return r.enabled
}

// DefaultSeverity returns the severity used when not configured.
func (r *BaseRule) DefaultSeverity() config.Severity {
	return r.severity
}

// Tags returns the rule's tags.
func (r *BaseRule) Tags() []string {
	return r.tags
}

// Apply reports nothing. Concrete rules override it.
func (r *BaseRule) Apply(_ *RuleContext) ([]Diagnostic, error) {
	return nil, nil
}
