package configloader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yaklabco/csvdoc/pkg/config"
	"github.com/yaklabco/csvdoc/pkg/fsutil"
	_ "github.com/yaklabco/csvdoc/pkg/lint/rules" // Register rules
)

// isolated returns options that read only files under dir.
func isolated(dir string) LoadOptions {
	return LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}
}

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), isolated(t.TempDir()))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Flavor != config.FlavorCommonMark {
		t.Errorf("expected flavor %q, got %q", config.FlavorCommonMark, result.Config.Flavor)
	}
	if result.Config.Format != config.FormatText {
		t.Errorf("expected format %q, got %q", config.FormatText, result.Config.Format)
	}
	if len(result.LoadedFrom) != 0 {
		t.Errorf("expected no loaded files, got %v", result.LoadedFrom)
	}
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	// A VCS root stops the upward search at tmpDir.
	if err := os.Mkdir(filepath.Join(tmpDir, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}
	configPath := writeConfig(t, tmpDir, ".csvdoc.yml", `
embedded: true
extensions: [".csv", ".tsv"]
rules:
  CSV002:
    enabled: true
    options:
      reference: header
`)

	nested := filepath.Join(tmpDir, "data", "raw")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	result, err := Load(context.Background(), isolated(nested))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Paths.Project != configPath {
		t.Errorf("Paths.Project = %q, want %q", result.Paths.Project, configPath)
	}
	if !result.Config.Embedded {
		t.Error("expected embedded from project config")
	}
	if got := strings.Join(result.Config.Extensions, " "); got != ".csv .tsv" {
		t.Errorf("Extensions = %q", got)
	}
	rc, ok := result.Config.Rules["CSV002"]
	if !ok || rc.Enabled == nil || !*rc.Enabled {
		t.Fatalf("expected CSV002 enabled, got %+v", rc)
	}
	if rc.Options["reference"] != "header" {
		t.Errorf("options = %v", rc.Options)
	}
}

func TestLoad_ExplicitConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, ".csvdoc.yml", "severity_default: info\nflavor: commonmark\n")
	customPath := writeConfig(t, tmpDir, "custom.yml", "flavor: gfm\n")

	opts := isolated(tmpDir)
	opts.ExplicitPath = customPath

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Flavor != config.FlavorGFM {
		t.Errorf("expected explicit flavor to win, got %q", result.Config.Flavor)
	}
	if result.Config.SeverityDefault != "info" {
		t.Errorf("expected project severity_default kept, got %q", result.Config.SeverityDefault)
	}
	if len(result.LoadedFrom) != 2 || result.LoadedFrom[1] != customPath {
		t.Errorf("LoadedFrom = %v", result.LoadedFrom)
	}
}

func TestLoad_ConfigFromEnvironment(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	envPath := writeConfig(t, tmpDir, "env.yml", "flavor: gfm\n")
	flagPath := writeConfig(t, tmpDir, "flag.yml", "flavor: commonmark\n")

	opts := isolated(tmpDir)
	opts.IgnoreEnv = false
	opts.IgnoreProjectConfig = true
	opts.Getenv = func(key string) string {
		if key == ConfigEnvVar {
			return envPath
		}
		return ""
	}

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if result.Config.Flavor != config.FlavorGFM {
		t.Errorf("expected flavor from %s, got %q", ConfigEnvVar, result.Config.Flavor)
	}

	// The flag wins over the variable.
	opts.ExplicitPath = flagPath
	result, err = Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(result.LoadedFrom) != 1 || result.LoadedFrom[0] != flagPath {
		t.Errorf("LoadedFrom = %v", result.LoadedFrom)
	}
}

func TestLoad_MissingExplicitConfig(t *testing.T) {
	t.Parallel()

	opts := isolated(t.TempDir())
	opts.ExplicitPath = filepath.Join(t.TempDir(), "nope.yml")

	_, err := Load(context.Background(), opts)
	if !errors.Is(err, fsutil.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestConfigPaths_Layers(t *testing.T) {
	t.Parallel()

	paths := &ConfigPaths{User: "u.yml", Explicit: "e.yml"}
	layers := paths.Layers()

	want := []Layer{{LayerUser, "u.yml"}, {LayerExplicit, "e.yml"}}
	if len(layers) != len(want) {
		t.Fatalf("Layers() = %v, want %v", layers, want)
	}
	for i := range want {
		if layers[i] != want[i] {
			t.Errorf("Layers()[%d] = %v, want %v", i, layers[i], want[i])
		}
	}
}

func TestLoad_EnvAndCLIPrecedence(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, ".csvdoc.yml", "ignore: [\"vendor/**\"]\n")

	env := map[string]string{
		"CSVDOC_JOBS":   "3",
		"CSVDOC_FORMAT": "json",
		"CSVDOC_IGNORE": "a/**, b/**",
	}
	opts := isolated(tmpDir)
	opts.IgnoreEnv = false
	opts.Getenv = func(key string) string { return env[key] }
	opts.CLIConfig = &config.Config{Jobs: 8}

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Jobs != 8 {
		t.Errorf("expected CLI jobs 8, got %d", result.Config.Jobs)
	}
	if result.Config.Format != config.FormatJSON {
		t.Errorf("expected env format json, got %q", result.Config.Format)
	}
	if got := strings.Join(result.Config.Ignore, " "); got != "a/** b/**" {
		t.Errorf("expected env ignore to replace project ignore, got %q", got)
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{"invalid flavor", "flavor: invalid-flavor\n"},
		{"invalid severity", "rules:\n  CSV001:\n    severity: fatal\n"},
		{"unknown key", "fix: true\n"},
		{"malformed glob", "ignore: [\"[\"]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tmpDir := t.TempDir()
			writeConfig(t, tmpDir, ".csvdoc.yml", tt.content)

			if _, err := Load(context.Background(), isolated(tmpDir)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestLoad_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Load(ctx, isolated(t.TempDir())); err == nil {
		t.Fatal("expected context cancellation error")
	}
}

func TestLoader_NormalizesRuleKeys(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, ".csvdoc.yml", `
rules:
  ragged-row:
    enabled: true
  empty-row:
    severity: error
  not-a-rule:
    enabled: true
`)

	result, err := Load(context.Background(), isolated(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if _, ok := result.Config.Rules["CSV002"]; !ok {
		t.Error("expected ragged-row normalized to CSV002")
	}
	if _, ok := result.Config.Rules["ragged-row"]; ok {
		t.Error("expected ragged-row key removed")
	}
	if rc, ok := result.Config.Rules["CSV003"]; !ok || *rc.Severity != "error" {
		t.Error("expected alias empty-row normalized to CSV003")
	}

	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "not-a-rule") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected unknown rule warning, got %v", result.Warnings)
	}
}

func TestLoader_WarnsDuplicateRules(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, ".csvdoc.yml", `
rules:
  CSV002:
    enabled: false
  ragged-row:
    enabled: true
`)

	result, err := Load(context.Background(), isolated(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	foundWarning := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "duplicate") && strings.Contains(w, "CSV002") {
			foundWarning = true
		}
	}
	if !foundWarning {
		t.Errorf("expected warning about duplicate rule, got warnings: %v", result.Warnings)
	}

	// Keys are processed in sorted order: "CSV002" < "ragged-row".
	rc := result.Config.Rules["CSV002"]
	if rc.Enabled == nil || !*rc.Enabled {
		t.Error("expected the ragged-row entry to win")
	}
}
