package rules

import (
	"slices"

	"github.com/yaklabco/csvdoc/pkg/config"
)

// Pack is a named set of rule settings that `csvdoc init --pack` writes into
// a new config file.
type Pack struct {
	Name        string
	Description string

	// Rules is keyed by rule ID.
	Rules map[string]config.RuleConfig
}

// packOf enables each listed rule at the given severity.
func packOf(name, description string, severities map[string]config.Severity) Pack {
	pack := Pack{Name: name, Description: description, Rules: make(map[string]config.RuleConfig, len(severities))}
	for id, sev := range severities {
		on, level := true, string(sev)
		pack.Rules[id] = config.RuleConfig{Enabled: &on, Severity: &level}
	}
	return pack
}

// CorePack checks syntax and row shape.
func CorePack() Pack {
	return packOf("core", "Syntax errors and ragged rows", map[string]config.Severity{
		MissingClosingQuoteID: config.SeverityError,
		RaggedRowID:           config.SeverityWarning,
	})
}

// StrictPack turns every rule on as an error.
func StrictPack() Pack {
	all := make(map[string]config.Severity)
	for _, id := range []string{MissingClosingQuoteID, RaggedRowID, BlankRowID, DuplicateHeaderID} {
		all[id] = config.SeverityError
	}
	return packOf("strict", "Every rule enabled as an error", all)
}

// RelaxedPack only warns about unclosed quotes. It suits loosely structured
// exports such as logs.
func RelaxedPack() Pack {
	return packOf("relaxed", "Only unclosed quotes, as warnings", map[string]config.Severity{
		MissingClosingQuoteID: config.SeverityWarning,
	})
}

// Packs returns the built-in packs, mildest last.
func Packs() []Pack {
	return []Pack{CorePack(), StrictPack(), RelaxedPack()}
}

// PackByName returns the named pack, or nil.
func PackByName(name string) *Pack {
	i := slices.IndexFunc(Packs(), func(p Pack) bool { return p.Name == name })
	if i < 0 {
		return nil
	}
	return &Packs()[i]
}

// PackNames lists the pack names in the order of Packs.
func PackNames() []string {
	var names []string
	for _, p := range Packs() {
		names = append(names, p.Name)
	}
	return names
}
