// Package configloader resolves the csvdoc configuration: it discovers
// config files, merges them by precedence, applies environment overrides and
// validates the result.
package configloader

import (
	"context"
	"fmt"
	"os"
	"slices"

	"github.com/yaklabco/csvdoc/pkg/config"
	"github.com/yaklabco/csvdoc/pkg/fsutil"
	"github.com/yaklabco/csvdoc/pkg/lint"
)

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is where the project config search starts. Empty means
	// the current directory.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	ExplicitPath string

	IgnoreSystemConfig  bool
	IgnoreUserConfig    bool
	IgnoreProjectConfig bool
	IgnoreEnv           bool

	// CLIConfig contains configuration from CLI flags. Only non-zero fields
	// are applied; they take highest precedence.
	CLIConfig *config.Config

	// Getenv replaces os.Getenv when set.
	Getenv func(string) string
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were actually loaded (in order).
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// ConfigEnvVar names a config file to load as the explicit layer when no
// --config flag is given.
const ConfigEnvVar = envVarPrefix + "CONFIG"

// Load resolves the final configuration. Sources apply in this order, each
// overriding the previous:
//  1. Defaults
//  2. System config (/etc/csvdoc/config.yaml)
//  3. User config ($XDG_CONFIG_HOME/csvdoc/config.yaml)
//  4. Project config (.csvdoc.yml, searched upward)
//  5. Explicit config (--config, or CSVDOC_CONFIG)
//  6. Environment variables (CSVDOC_*)
//  7. CLI flags
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	getenv := opts.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	paths, err := DiscoverPaths(ctx, opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath
	if paths.Explicit == "" && !opts.IgnoreEnv {
		paths.Explicit = getenv(ConfigEnvVar)
	}

	skip := map[LayerKind]bool{
		LayerSystem:  opts.IgnoreSystemConfig,
		LayerUser:    opts.IgnoreUserConfig,
		LayerProject: opts.IgnoreProjectConfig,
	}

	result := &LoadResult{Paths: paths}
	cfg := config.NewConfig()

	for _, layer := range paths.Layers() {
		if skip[layer.Kind] {
			continue
		}
		fileCfg, err := LoadFile(ctx, layer.Path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", layer.Kind, err)
		}
		cfg = merge(cfg, fileCfg)
		result.LoadedFrom = append(result.LoadedFrom, layer.Path)
	}

	if !opts.IgnoreEnv {
		if err := loadFromEnv(cfg, getenv); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	if opts.CLIConfig != nil {
		cfg = merge(cfg, opts.CLIConfig)
	}

	// Users may key rules by name or alias; rules are looked up by ID.
	normalizeRuleKeys(cfg, lint.DefaultRegistry, result)

	validation := Validate(cfg)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}

	result.Config = cfg
	return result, nil
}

// LoadFile reads a single YAML configuration file.
func LoadFile(ctx context.Context, path string) (*config.Config, error) {
	content, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}

	cfg, err := config.FromYAML(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// normalizeRuleKeys rewrites rule names and aliases to canonical IDs. When
// several keys name the same rule, the last key in sorted order wins and a
// warning is recorded.
func normalizeRuleKeys(cfg *config.Config, registry *lint.Registry, result *LoadResult) {
	if len(cfg.Rules) == 0 {
		return
	}

	keys := make([]string, 0, len(cfg.Rules))
	for key := range cfg.Rules {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	normalized := make(map[string]config.RuleConfig, len(cfg.Rules))
	seenIDs := make(map[string]string) // canonical ID -> original key

	for _, key := range keys {
		ruleCfg := cfg.Rules[key]

		canonicalID, _, found := registry.Resolve(key)
		if !found {
			// Kept as is; validation warns about it.
			normalized[key] = ruleCfg
			continue
		}

		if originalKey, exists := seenIDs[canonicalID]; exists {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("duplicate rule configuration: %q and %q both refer to %s; using %q",
					originalKey, key, canonicalID, key))
		}

		seenIDs[canonicalID] = key
		normalized[canonicalID] = ruleCfg
	}

	cfg.Rules = normalized
}
