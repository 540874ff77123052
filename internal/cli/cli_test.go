package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/csvdoc/internal/cli"
)

func testBuildInfo() cli.BuildInfo {
	return cli.BuildInfo{
		Version: "test-version",
		Commit:  "test-commit",
		Date:    "test-date",
	}
}

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	cmd := cli.NewRootCommand(testBuildInfo())

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// writeFile creates a file under dir and returns its path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testBuildInfo())
	require.NotNil(t, cmd)

	assert.Equal(t, "csvdoc", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
	assert.True(t, cmd.SilenceUsage)
	assert.True(t, cmd.SilenceErrors)
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testBuildInfo())

	for _, name := range []string{
		"check", "locate", "show", "column", "query", "export", "rules", "init", "version",
	} {
		sub, _, err := cmd.Find([]string{name})
		if assert.NoError(t, err, name) {
			assert.Equal(t, name, sub.Name())
		}
	}
}

func TestGlobalFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testBuildInfo())

	for _, name := range []string{"debug", "config", "color"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), "missing global flag %q", name)
	}
	assert.Equal(t, "auto", cmd.PersistentFlags().Lookup("color").DefValue)
}

func TestCheckCommandFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testBuildInfo())
	check, _, err := cmd.Find([]string{"check"})
	require.NoError(t, err)

	tests := []struct {
		flag string
		def  string
	}{
		{"format", "text"},
		{"jobs", "0"},
		{"ignore", "[]"},
		{"extensions", "[]"},
		{"enable", "[]"},
		{"disable", "[]"},
		{"embedded", "false"},
		{"flavor", "commonmark"},
		{"strict", "false"},
		{"verify", "false"},
		{"no-context", "false"},
		{"compact", "false"},
		{"per-file", "false"},
		{"rule-format", "combined"},
		{"summary-order", "rules"},
	}

	for _, tt := range tests {
		flag := check.Flags().Lookup(tt.flag)
		if assert.NotNil(t, flag, "missing flag %q", tt.flag) {
			assert.Equal(t, tt.def, flag.DefValue, "default of %q", tt.flag)
		}
	}

	assert.Contains(t, check.Flags().Lookup("format").Usage, "sarif")
	assert.Contains(t, check.Long, "CSVDOC_STRICT")
	assert.Contains(t, check.Long, "CSVDOC_JOBS")
}

func TestDocumentCommandsShareRegionFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testBuildInfo())

	for _, name := range []string{"locate", "show", "column", "query", "export"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err)

		region := sub.Flags().Lookup("region")
		if assert.NotNil(t, region, name) {
			assert.Equal(t, "1", region.DefValue)
		}
		assert.NotNil(t, sub.Flags().Lookup("flavor"), name)
	}
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "", "version")
	require.NoError(t, err)

	assert.Contains(t, stdout, "csvdoc")
	assert.Contains(t, stdout, "version=test-version")
	assert.Contains(t, stdout, "commit=test-commit")
	assert.Contains(t, stdout, "built=test-date")
}

func TestHelpOutput(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "", "--color", "never", "--help")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Usage:")
	assert.Contains(t, stdout, "Commands:")
	assert.Contains(t, stdout, "check")
	assert.Contains(t, stdout, "--config")
}

func TestArgumentValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
	}{
		{"locate without offset", []string{"locate", "data.csv"}},
		{"show without file", []string{"show"}},
		{"column without index", []string{"column", "data.csv"}},
		{"query with two files", []string{"query", "a.csv", "b.csv"}},
		{"rules with argument", []string{"rules", "extra"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := execute(t, "", tt.args...)
			assert.Error(t, err)
		})
	}
}
