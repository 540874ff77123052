package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/csvdoc/internal/logging"
	"github.com/yaklabco/csvdoc/pkg/export"
)

// ErrMissingDatabase is returned when export runs without --db.
var ErrMissingDatabase = errors.New("--db is required")

type exportFlags struct {
	documentFlags
	db      string
	options export.Options
}

func newExportCommand() *cobra.Command {
	flags := &exportFlags{}

	cmd := &cobra.Command{
		Use:   "export FILE --db PATH",
		Short: "Load a document into a SQLite table",
		Long: `Create a SQLite table from a CSV document and insert every non-empty row.

Columns are TEXT and named c1..cN, or taken from the first row with
--header. Rows shorter than the widest row are padded with NULL. The
database file is created if it does not exist.`,
		Example: `  csvdoc export data.csv --db data.db
  csvdoc export data.csv --db data.db --table people --header --replace`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, args[0], flags)
		},
	}

	addDocumentFlags(cmd, &flags.documentFlags)
	cmd.Flags().StringVar(&flags.db, "db", "", "path of the SQLite database file")
	cmd.Flags().StringVar(&flags.options.Table, "table", export.DefaultTable, "name of the table to create")
	cmd.Flags().BoolVar(&flags.options.Header, "header", false, "use the first row as column names")
	cmd.Flags().BoolVar(&flags.options.Replace, "replace", false, "drop an existing table of the same name")

	return cmd
}

func runExport(cmd *cobra.Command, path string, flags *exportFlags) error {
	if flags.db == "" {
		return ErrMissingDatabase
	}

	loaded, err := loadDocument(cmd, path, &flags.documentFlags)
	if err != nil {
		return err
	}

	result, err := export.ToSQLite(commandContext(cmd), loaded.Region.Document, flags.db, flags.options)
	if err != nil {
		return fmt.Errorf("export %s: %w", loaded.File.Path, err)
	}

	logging.NewInteractive().Info("exported document",
		logging.FieldPath, loaded.File.Path,
		logging.FieldDatabase, flags.db,
		logging.FieldTable, result.Table,
		logging.FieldColumns, len(result.Columns),
		logging.FieldRows, result.Rows,
	)
	return nil
}
