package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yaklabco/csvdoc/pkg/config"
)

type mockRule struct {
	id   string
	name string
}

func (m *mockRule) ID() string                               { return m.id }
func (m *mockRule) Name() string                             { return m.name }
func (m *mockRule) Description() string                      { return "mock" }
func (m *mockRule) DefaultEnabled() bool                     { return true }
func (m *mockRule) DefaultSeverity() config.Severity         { return config.SeverityWarning }
func (m *mockRule) Tags() []string                           { return nil }
func (m *mockRule) Apply(*RuleContext) ([]Diagnostic, error) { return nil, nil }

func TestRegistry_GetByName(t *testing.T) {
	reg := NewRegistry()
	reg.Register(&mockRule{id: "CSV002", name: "ragged-row"})

	got, ok := reg.GetByName("ragged-row")
	assert.True(t, ok)
	assert.Equal(t, "CSV002", got.ID())

	_, ok = reg.GetByName("nonexistent")
	assert.False(t, ok)
}

func TestRegistry_Get_ByNameFallback(t *testing.T) {
	reg := NewRegistry()
	reg.Register(&mockRule{id: "CSV002", name: "ragged-row"})

	got, ok := reg.Get("ragged-row")
	assert.True(t, ok)
	assert.Equal(t, "CSV002", got.ID())
}

func TestRegistry_Resolve(t *testing.T) {
	reg := NewRegistry()
	reg.Register(&mockRule{id: "CSV002", name: "ragged-row"})

	tests := []struct {
		key    string
		wantID string
		wantOK bool
	}{
		{"CSV002", "CSV002", true},
		{"ragged-row", "CSV002", true},
		{"nonexistent", "", false},
	}

	for _, tt := range tests {
		id, _, ok := reg.Resolve(tt.key)
		assert.Equal(t, tt.wantOK, ok, "key: %s", tt.key)
		assert.Equal(t, tt.wantID, id, "key: %s", tt.key)
	}
}

func TestRegistry_GetByID(t *testing.T) {
	reg := NewRegistry()
	reg.Register(&mockRule{id: "CSV001", name: "missing-closing-quote"})

	got, ok := reg.GetByID("CSV001")
	assert.True(t, ok)
	assert.Equal(t, "missing-closing-quote", got.Name())

	_, ok = reg.GetByID("missing-closing-quote")
	assert.False(t, ok)
}

func TestRegistry_Rules_SortedByID(t *testing.T) {
	reg := NewRegistry()
	reg.Register(&mockRule{id: "CSV003", name: "blank-row"})
	reg.Register(&mockRule{id: "CSV001", name: "missing-closing-quote"})

	rules := reg.Rules()
	assert.Len(t, rules, 2)
	assert.Equal(t, "CSV001", rules[0].ID())
	assert.Equal(t, "CSV003", rules[1].ID())
	assert.Equal(t, []string{"CSV001", "CSV003"}, reg.IDs())
}

func TestRegistry_Register_Replaces(t *testing.T) {
	reg := NewRegistry()
	reg.Register(&mockRule{id: "CSV001", name: "old"})
	reg.Register(&mockRule{id: "CSV001", name: "new"})

	got, ok := reg.GetByID("CSV001")
	assert.True(t, ok)
	assert.Equal(t, "new", got.Name())
	assert.Len(t, reg.Rules(), 1)

	_, ok = reg.GetByName("old")
	assert.False(t, ok, "replaced rule's name no longer resolves")
}

func TestRegistry_Resolve_IgnoresCase(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	reg.Register(&mockRule{id: "CSV002", name: "ragged-row"})
	reg.RegisterAlias("Uneven-Row", "CSV002")

	for _, key := range []string{"csv002", "Ragged-Row", "RAGGED-ROW", "uneven-row"} {
		id, _, ok := reg.Resolve(key)
		assert.True(t, ok, key)
		assert.Equal(t, "CSV002", id, key)
	}

	_, ok := reg.Get("uneven-row")
	assert.False(t, ok, "Get does not follow aliases")

	_, ok = reg.GetByID("csv002")
	assert.False(t, ok, "GetByID is exact")
}

func TestRegistry_RegisterAlias(t *testing.T) {
	reg := NewRegistry()
	reg.Register(&mockRule{id: "CSV002", name: "ragged-row"})
	reg.RegisterAlias("uneven-row", "CSV002")

	id, r, ok := reg.Resolve("uneven-row")
	assert.True(t, ok)
	assert.Equal(t, "CSV002", id)
	assert.Equal(t, "ragged-row", r.Name())

	reg.RegisterAlias("dangling", "UNKNOWN")
	_, _, ok = reg.Resolve("dangling")
	assert.False(t, ok)
}
