package lint

import (
	"maps"
	"slices"
	"strings"
	"sync"
)

// Registry holds the rules available to the engine. Rules are found by ID,
// name or alias; lookups ignore case so "csv002" and "Ragged-Row" resolve
// like "CSV002".
type Registry struct {
	mu    sync.RWMutex
	rules map[string]Rule   // by ID
	names map[string]string // folded name -> ID
	alias map[string]string // folded alias -> ID
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		rules: make(map[string]Rule),
		names: make(map[string]string),
		alias: make(map[string]string),
	}
}

func fold(key string) string {
	return strings.ToLower(key)
}

// Register adds rule, replacing any rule with the same ID.
func (r *Registry) Register(rule Rule) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.rules[rule.ID()]; ok {
		delete(r.names, fold(old.Name()))
	}
	r.rules[rule.ID()] = rule
	r.names[fold(rule.Name())] = rule.ID()
}

// RegisterAlias makes alias resolve to ruleID, so a renamed rule keeps
// accepting its old configuration key.
func (r *Registry) RegisterAlias(alias, ruleID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.alias[fold(alias)] = ruleID
}

// Get finds a rule by ID or name.
func (r *Registry) Get(key string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lookup(key, false)
}

// GetByID finds a rule by its exact ID.
func (r *Registry) GetByID(id string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rule, ok := r.rules[id]
	return rule, ok
}

// GetByName finds a rule by name.
func (r *Registry) GetByName(name string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rule, ok := r.rules[r.names[fold(name)]]
	return rule, ok
}

// Resolve returns the canonical ID and rule for an ID, name or alias.
func (r *Registry) Resolve(key string) (string, Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rule, ok := r.lookup(key, true)
	if !ok {
		return "", nil, false
	}
	return rule.ID(), rule, true
}

func (r *Registry) lookup(key string, aliases bool) (Rule, bool) {
	if rule, ok := r.rules[key]; ok {
		return rule, true
	}

	folded := fold(key)
	for id := range r.rules {
		if fold(id) == folded {
			return r.rules[id], true
		}
	}
	if id, ok := r.names[folded]; ok {
		return r.rules[id], true
	}
	if aliases {
		if id, ok := r.alias[folded]; ok {
			rule, ok := r.rules[id]
			return rule, ok
		}
	}
	return nil, false
}

// Rules returns all rules ordered by ID.
func (r *Registry) Rules() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rules := make([]Rule, 0, len(r.rules))
	for _, id := range slices.Sorted(maps.Keys(r.rules)) {
		rules = append(rules, r.rules[id])
	}
	return rules
}

// IDs returns all rule IDs in order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.rules))
}

// DefaultRegistry holds the built-in rules. Importing pkg/lint/rules fills it.
//
//nolint:gochecknoglobals // rules register themselves at init
var DefaultRegistry = NewRegistry()
