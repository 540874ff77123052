package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/csvdoc/pkg/config"
)

func TestConfigClone(t *testing.T) {
	t.Parallel()

	t.Run("nil config returns nil", func(t *testing.T) {
		t.Parallel()

		var c *config.Config
		assert.Nil(t, c.Clone())
	})

	t.Run("deep copies rules and slices", func(t *testing.T) {
		t.Parallel()

		enabled := true
		severity := "error"
		original := &config.Config{
			SeverityDefault: "warning",
			Rules: map[string]config.RuleConfig{
				"CSV002": {Enabled: &enabled, Severity: &severity, Options: map[string]any{"min_cells": 2}},
			},
			Ignore:       []string{"vendor/**"},
			Extensions:   []string{".csv"},
			Embedded:     true,
			Format:       config.FormatJSON,
			Jobs:         4,
			Strict:       true,
			EnableRules:  []string{"CSV003"},
			DisableRules: []string{"CSV001"},
		}

		clone := original.Clone()
		require.NotNil(t, clone)
		assert.Equal(t, original, clone)

		*clone.Rules["CSV002"].Severity = "info"
		clone.Rules["CSV002"].Options["min_cells"] = 3
		clone.Ignore[0] = "changed"
		clone.EnableRules[0] = "changed"

		assert.Equal(t, "error", *original.Rules["CSV002"].Severity)
		assert.Equal(t, 2, original.Rules["CSV002"].Options["min_cells"])
		assert.Equal(t, "vendor/**", original.Ignore[0])
		assert.Equal(t, "CSV003", original.EnableRules[0])
	})
}

func TestConfigToYAML(t *testing.T) {
	t.Parallel()

	var nilConfig *config.Config
	data, err := nilConfig.ToYAML()
	require.NoError(t, err)
	assert.Nil(t, data)

	cfg := &config.Config{
		SeverityDefault: "warning",
		Embedded:        true,
		Format:          config.FormatJSON,
	}
	data, err = cfg.ToYAML()
	require.NoError(t, err)
	assert.Contains(t, string(data), "severity_default: warning")
	assert.Contains(t, string(data), "embedded: true")
	assert.NotContains(t, string(data), "json")
}

func TestFromYAML(t *testing.T) {
	t.Parallel()

	t.Run("parses fields", func(t *testing.T) {
		t.Parallel()

		cfg, err := config.FromYAML([]byte(`
severity_default: error
extensions: [.csv, .tsv]
embedded: true
flavor: gfm
ignore:
  - "testdata/**"
rules:
  ragged-row:
    enabled: true
    severity: info
`))
		require.NoError(t, err)
		assert.Equal(t, "error", cfg.SeverityDefault)
		assert.Equal(t, []string{".csv", ".tsv"}, cfg.Extensions)
		assert.True(t, cfg.Embedded)
		assert.Equal(t, config.FlavorGFM, cfg.Flavor)
		assert.Equal(t, []string{"testdata/**"}, cfg.Ignore)
		require.Contains(t, cfg.Rules, "ragged-row")
		assert.True(t, *cfg.Rules["ragged-row"].Enabled)
		assert.Equal(t, "info", *cfg.Rules["ragged-row"].Severity)
	})

	t.Run("empty document", func(t *testing.T) {
		t.Parallel()

		cfg, err := config.FromYAML([]byte("# only a comment\n"))
		require.NoError(t, err)
		assert.NotNil(t, cfg.Rules)
	})

	t.Run("unknown key", func(t *testing.T) {
		t.Parallel()

		_, err := config.FromYAML([]byte("delimiter: ';'\n"))
		require.Error(t, err)
	})

	t.Run("template parses", func(t *testing.T) {
		t.Parallel()

		for _, full := range []bool{false, true} {
			data := config.GenerateTemplate(config.TemplateOptions{
				Full: full,
				Rules: []config.RuleInfo{
					{ID: "CSV002", Name: "ragged-row", Enabled: false, Severity: config.SeverityWarning},
					{ID: "CSV001", Name: "missing-closing-quote", Enabled: true, Severity: config.SeverityError},
				},
			})

			cfg, err := config.FromYAML(data)
			require.NoError(t, err, "full=%v", full)
			assert.Equal(t, []string{".csv"}, cfg.Extensions)

			if full {
				require.Contains(t, cfg.Rules, "CSV001")
				assert.True(t, *cfg.Rules["CSV001"].Enabled)
				assert.False(t, *cfg.Rules["CSV002"].Enabled)
			}
		}
	})
}
