package config

// FormatRuleID renders a rule identifier in the requested format. An empty
// name always renders as the ID.
func FormatRuleID(format RuleFormat, ruleID, ruleName string) string {
	if ruleName == "" {
		return ruleID
	}

	switch format {
	case RuleFormatID:
		return ruleID
	case RuleFormatName:
		return ruleName
	case RuleFormatCombined:
		return ruleID + "/" + ruleName
	default:
		return ruleID + "/" + ruleName
	}
}
