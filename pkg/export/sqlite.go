// Package export loads CSV documents into other stores.
package export

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/yaklabco/csvdoc/pkg/csvdoc"
)

// DriverName is the database/sql driver used for SQLite.
const DriverName = "sqlite"

// DefaultTable is used when Options.Table is empty.
const DefaultTable = "data"

var (
	// ErrEmptyDocument is returned when a document has no rows to export.
	ErrEmptyDocument = errors.New("document has no rows")

	// ErrInvalidTable is returned for a table name that is not an identifier.
	ErrInvalidTable = errors.New("invalid table name")
)

// Options controls an export.
type Options struct {
	// Table is the target table name.
	Table string

	// Header uses the first row as column names instead of c1..cN.
	Header bool

	// Replace drops an existing table of the same name first.
	Replace bool
}

// Result describes what was written.
type Result struct {
	Table   string
	Columns []string
	Rows    int
}

// ToSQLite writes doc into a SQLite database file at path, creating it if
// needed.
func ToSQLite(ctx context.Context, doc *csvdoc.Document, path string, opts Options) (*Result, error) {
	db, err := sql.Open(DriverName, path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer db.Close()

	return Load(ctx, db, doc, opts)
}

// Load writes doc into db as one table of TEXT columns inside a single
// transaction. Rows without cells are skipped and short rows are padded
// with NULL.
func Load(ctx context.Context, db *sql.DB, doc *csvdoc.Document, opts Options) (*Result, error) {
	table := opts.Table
	if table == "" {
		table = DefaultTable
	}
	if !isIdentifier(table) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTable, table)
	}

	rows := nonEmptyRows(doc)
	if len(rows) == 0 {
		return nil, ErrEmptyDocument
	}

	width := doc.ColumnCount()
	var header []string
	if opts.Header {
		header = rows[0].Values()
		rows = rows[1:]
	}
	columns := ColumnNames(header, width)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if opts.Replace {
		if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+quoteIdent(table)); err != nil {
			return nil, fmt.Errorf("drop table %s: %w", table, err)
		}
	}
	if _, err := tx.ExecContext(ctx, createStatement(table, columns)); err != nil {
		return nil, fmt.Errorf("create table %s: %w", table, err)
	}

	stmt, err := tx.PrepareContext(ctx, insertStatement(table, columns))
	if err != nil {
		return nil, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	args := make([]any, width)
	for i, row := range rows {
		values := row.Values()
		for j := range args {
			if j < len(values) {
				args[j] = values[j]
			} else {
				args[j] = nil
			}
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return nil, fmt.Errorf("insert row %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	return &Result{Table: table, Columns: columns, Rows: len(rows)}, nil
}

func nonEmptyRows(doc *csvdoc.Document) []*csvdoc.Row {
	var rows []*csvdoc.Row
	for _, row := range doc.Rows() {
		if row.CellCount() > 0 {
			rows = append(rows, row)
		}
	}
	return rows
}

// ColumnNames returns width SQL column names. Header values are sanitized to
// identifiers; missing or empty names fall back to cN (1-based) and repeats
// get a numeric suffix.
func ColumnNames(header []string, width int) []string {
	names := make([]string, width)
	seen := make(map[string]int, width)

	for i := range width {
		name := ""
		if i < len(header) {
			name = sanitize(header[i])
		}
		if name == "" {
			name = "c" + strconv.Itoa(i+1)
		}

		if key := strings.ToLower(name); seen[key] > 0 {
			// The suffixed name can itself be taken by an earlier column.
			for n := seen[key] + 1; ; n++ {
				candidate := name + "_" + strconv.Itoa(n)
				if seen[strings.ToLower(candidate)] == 0 {
					seen[key] = n
					name = candidate
					break
				}
			}
		}
		seen[strings.ToLower(name)]++
		names[i] = name
	}
	return names
}

func sanitize(s string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range strings.TrimSpace(s) {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastUnderscore = r == '_'
			continue
		}
		if !lastUnderscore && b.Len() > 0 {
			b.WriteByte('_')
			lastUnderscore = true
		}
	}

	name := strings.TrimRight(b.String(), "_")
	if name != "" && unicode.IsDigit(rune(name[0])) {
		name = "c" + name
	}
	return name
}

func isIdentifier(s string) bool {
	return s != "" && sanitize(s) == s
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func createStatement(table string, columns []string) string {
	defs := make([]string, len(columns))
	for i, c := range columns {
		defs[i] = quoteIdent(c) + " TEXT"
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", quoteIdent(table), strings.Join(defs, ", "))
}

func insertStatement(table string, columns []string) string {
	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = quoteIdent(c)
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", quoteIdent(table), strings.Join(quoted, ", "), placeholders)
}
