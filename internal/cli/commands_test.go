package cli_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/csvdoc/internal/cli"
	"github.com/yaklabco/csvdoc/pkg/export"
	"github.com/yaklabco/csvdoc/pkg/query"
)

const peopleCSV = "id,name\n1,Ann\n2,Bob\n"

func TestLocateCommand(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "people.csv", peopleCSV)

	tests := []struct {
		name   string
		offset string
		want   string
	}{
		{"byte offset inside a cell", "10", ":2:3: row 2, col 2\n"},
		{"line and column", "2:3", ":2:3: row 2, col 2\n"},
		{"start of document", "0", ":1:1: row 1, col 1\n"},
		{"on a separator", "9", ":2:2: row 2, col 1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			stdout, _, err := execute(t, "", "locate", path, tt.offset)
			require.NoError(t, err)
			assert.Equal(t, path+tt.want, stdout)
		})
	}
}

func TestLocateCommand_JSON(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "people.csv", peopleCSV)

	stdout, _, err := execute(t, "", "locate", "--json", path, "10")
	require.NoError(t, err)

	var got struct {
		Offset int    `json:"offset"`
		Line   int    `json:"line"`
		Col    int    `json:"col"`
		Row    int    `json:"row"`
		Column int    `json:"column"`
		Value  string `json:"value"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))

	assert.Equal(t, 10, got.Offset)
	assert.Equal(t, 2, got.Line)
	assert.Equal(t, 3, got.Col)
	assert.Equal(t, 2, got.Row)
	assert.Equal(t, 2, got.Column)
	assert.Equal(t, "Ann", got.Value)
}

func TestLocateCommand_Errors(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "people.csv", peopleCSV)

	_, _, err := execute(t, "", "locate", path, "100")
	require.ErrorIs(t, err, cli.ErrOffsetOutOfRange)

	_, _, err = execute(t, "", "locate", path, "9:1")
	require.ErrorIs(t, err, cli.ErrOffsetOutOfRange)

	_, _, err = execute(t, "", "locate", path, "ten")
	require.Error(t, err)

	_, _, err = execute(t, "", "locate", "--region", "2", path, "0")
	require.ErrorIs(t, err, cli.ErrNoRegion)
}

func TestLocateCommand_MarkdownRegion(t *testing.T) {
	t.Parallel()

	content := "# Data\n\n```csv\na,b\nc,d\n```\n"
	path := writeFile(t, t.TempDir(), "README.md", content)

	// "c" is at offset 19: line 5, column 1 of the file.
	stdout, _, err := execute(t, "", "locate", path, "19")
	require.NoError(t, err)
	assert.Equal(t, path+":5:1: row 2, col 1\n", stdout)

	_, _, err = execute(t, "", "locate", path, "2")
	require.ErrorIs(t, err, cli.ErrOffsetOutOfRange)
}

func TestShowCommand(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "people.csv", "id,name\n1,Ann\n2\n")

	stdout, _, err := execute(t, "", "--color", "never", "show", "--header", path)
	require.NoError(t, err)

	assert.Contains(t, stdout, "name")
	assert.Contains(t, stdout, "Ann")
	assert.Contains(t, stdout, "#")
	assert.NotContains(t, stdout, "more rows")

	stdout, _, err = execute(t, "", "--color", "never", "show", "--max-rows", "1", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "2 more rows")
}

func TestShowCommand_Stdin(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "x,\"multi\nline\"\n", "--color", "never", "show", "-")
	require.NoError(t, err)
	assert.Contains(t, stdout, "multi↵line")
}

func TestColumnCommand(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "people.csv", "id,name\n1,\"Ann, A.\"\n2\n3,Cy\n")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"values with quoting removed", []string{"2"}, "name\nAnn, A.\nCy\n"},
		{"numbered without header", []string{"--skip", "1", "--numbered", "2"}, "2\tAnn, A.\n4\tCy\n"},
		{"first column", []string{"1"}, "id\n1\n2\n3\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			args := append([]string{"column", path}, tt.args...)
			stdout, _, err := execute(t, "", args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, stdout)
		})
	}
}

func TestColumnCommand_Errors(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "people.csv", peopleCSV)

	for _, index := range []string{"0", "3", "x"} {
		_, _, err := execute(t, "", "column", path, index)
		require.ErrorIs(t, err, cli.ErrColumnOutOfRange, index)
		assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCodeForError(err), index)
	}
}

func TestQueryCommand(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "people.csv", "id,name\n1,Ann\n2,Bob\n3\n")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"matching value", []string{"--where", `size(cells) > 1 && cells[1] == "Bob"`}, "2,Bob\n"},
		{"header kept", []string{"--header", "--where", `size(cells) < columns`}, "id,name\n3\n"},
		{"header not repeated", []string{"--header", "--where", `row < 2`}, "id,name\n1,Ann\n"},
		{"count", []string{"--count", "--where", `row > 0`}, "3\n"},
		{"no matches", []string{"--where", `false`}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			args := append([]string{"query", path}, tt.args...)
			stdout, _, err := execute(t, "", args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, stdout)
		})
	}
}

func TestQueryCommand_LastRowWithoutNewline(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "a\nb", "query", "-", "--where", `cells[0] == "b"`)
	require.NoError(t, err)
	assert.Equal(t, "b\n", stdout)
}

func TestQueryCommand_Errors(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "people.csv", peopleCSV)

	_, _, err := execute(t, "", "query", path)
	require.ErrorIs(t, err, cli.ErrMissingWhere)

	_, _, err = execute(t, "", "query", path, "--where", "row >")
	require.ErrorIs(t, err, query.ErrInvalidExpression)

	_, _, err = execute(t, "", "query", path, "--where", "row + 1")
	require.ErrorIs(t, err, query.ErrNotBoolean)
}

func TestExportCommand(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "people.csv", peopleCSV)
	dbPath := filepath.Join(dir, "people.db")

	_, _, err := execute(t, "", "export", path, "--db", dbPath)
	require.NoError(t, err)

	_, _, err = execute(t, "", "export", path, "--db", dbPath, "--table", "people", "--header")
	require.NoError(t, err)

	db, err := sql.Open(export.DriverName, dbPath)
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()

	var count int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM data`).Scan(&count))
	assert.Equal(t, 3, count)

	var name string
	require.NoError(t, db.QueryRowContext(ctx, `SELECT name FROM people WHERE id = '2'`).Scan(&name))
	assert.Equal(t, "Bob", name)

	// The table exists now; only --replace may overwrite it.
	_, _, err = execute(t, "", "export", path, "--db", dbPath)
	require.Error(t, err)

	_, _, err = execute(t, "", "export", path, "--db", dbPath, "--replace")
	require.NoError(t, err)
}

func TestExportCommand_RequiresDatabase(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "people.csv", peopleCSV)

	_, _, err := execute(t, "", "export", path)
	require.ErrorIs(t, err, cli.ErrMissingDatabase)
}

func TestRulesCommand_JSON(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "", "rules", "--format", "json")
	require.NoError(t, err)

	var rules []struct {
		ID       string   `json:"id"`
		Name     string   `json:"name"`
		Severity string   `json:"severity"`
		Enabled  bool     `json:"enabled"`
		Tags     []string `json:"tags"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &rules))
	require.Len(t, rules, 4)

	assert.Equal(t, "CSV001", rules[0].ID)
	assert.Equal(t, "missing-closing-quote", rules[0].Name)
	assert.Equal(t, "error", rules[0].Severity)
	assert.True(t, rules[0].Enabled)

	assert.Equal(t, "CSV002", rules[1].ID)
	assert.Equal(t, "ragged-row", rules[1].Name)
	assert.False(t, rules[1].Enabled)

	assert.Equal(t, "CSV003", rules[2].ID)
	assert.Equal(t, "CSV004", rules[3].ID)
}

func TestRulesCommand_Filters(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"enabled", []string{"--enabled"}, []string{"CSV001"}},
		{"tag", []string{"--tag", "quotes"}, []string{"CSV001"}},
		{"unknown tag", []string{"--tag", "nope"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			args := append([]string{"rules", "--format", "json"}, tt.args...)
			stdout, _, err := execute(t, "", args...)
			require.NoError(t, err)

			var rules []struct {
				ID string `json:"id"`
			}
			require.NoError(t, json.Unmarshal([]byte(stdout), &rules))

			ids := []string{}
			for _, r := range rules {
				ids = append(ids, r.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestRulesCommand_Flags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testBuildInfo())
	rules, _, err := cmd.Find([]string{"rules"})
	require.NoError(t, err)

	assert.Equal(t, "combined", rules.Flags().Lookup("rule-format").DefValue)
	assert.Equal(t, "text", rules.Flags().Lookup("format").DefValue)
}

func TestInitCommand(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	output := filepath.Join(dir, ".csvdoc.yml")

	_, _, err := execute(t, "", "init", "--output", output)
	require.NoError(t, err)

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(content), "# csvdoc configuration")
	assert.Contains(t, string(content), "embedded: false")

	_, _, err = execute(t, "", "init", "--output", output)
	require.ErrorIs(t, err, cli.ErrConfigExists)

	_, _, err = execute(t, "", "init", "--output", output, "--force", "--pack", "strict")
	require.NoError(t, err)

	content, err = os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(content), "  CSV004:\n    enabled: true\n    severity: error\n")
}

func TestInitCommand_Packs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	relaxed := filepath.Join(dir, "relaxed.yml")
	_, _, err := execute(t, "", "init", "--output", relaxed, "--pack", "relaxed")
	require.NoError(t, err)

	content, err := os.ReadFile(relaxed)
	require.NoError(t, err)
	assert.Contains(t, string(content), "  CSV001:\n    enabled: true\n    severity: warning\n")
	assert.Contains(t, string(content), "  CSV002:\n    enabled: false\n")

	_, _, err = execute(t, "", "init", "--output", filepath.Join(dir, "x.yml"), "--pack", "nope")
	require.Error(t, err)
}
