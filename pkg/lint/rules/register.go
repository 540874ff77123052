package rules

import "github.com/yaklabco/csvdoc/pkg/lint"

// Built-in rule IDs.
const (
	MissingClosingQuoteID = "CSV001"
	RaggedRowID           = "CSV002"
	BlankRowID            = "CSV003"
	DuplicateHeaderID     = "CSV004"
)

// RegisterAll registers all built-in rules with the given registry.
func RegisterAll(registry *lint.Registry) {
	registry.Register(NewMissingClosingQuoteRule())
	registry.Register(NewRaggedRowRule())
	registry.Register(NewBlankRowRule())
	registry.Register(NewDuplicateHeaderRule())
}

// RegisterAliases registers alternative keys for built-in rules.
func RegisterAliases(registry *lint.Registry) {
	registry.RegisterAlias("unclosed-quote", MissingClosingQuoteID)
	registry.RegisterAlias("uneven-row", RaggedRowID)
	registry.RegisterAlias("empty-row", BlankRowID)
}

func init() {
	RegisterAll(lint.DefaultRegistry)
	RegisterAliases(lint.DefaultRegistry)
}
