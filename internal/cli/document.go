package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/csvdoc/internal/logging"
	"github.com/yaklabco/csvdoc/pkg/fsutil"
	"github.com/yaklabco/csvdoc/pkg/lint"
	"github.com/yaklabco/csvdoc/pkg/markdown"
	"github.com/yaklabco/csvdoc/pkg/source"
)

// stdinPath is the argument that reads a document from standard input, and
// the path reported for it.
const (
	stdinArg  = "-"
	stdinPath = "<stdin>"
)

// ErrNoRegion is returned when a file holds no CSV region at the requested index.
var ErrNoRegion = errors.New("no CSV region")

// documentFlags select the CSV region of a Markdown file. Plain CSV files
// always have exactly one region.
type documentFlags struct {
	region int
	flavor string
}

func addDocumentFlags(cmd *cobra.Command, flags *documentFlags) {
	cmd.Flags().IntVar(&flags.region, "region", 1,
		"1-based index of the CSV fenced block to use in a Markdown file")
	cmd.Flags().StringVar(&flags.flavor, "flavor", markdown.FlavorCommonMark,
		"Markdown flavor: commonmark, gfm")
}

// loadedDocument is one parsed CSV region of a file.
type loadedDocument struct {
	File   *source.Snapshot
	Region lint.ParsedRegion
}

// readInput reads path, or standard input for "-".
func readInput(ctx context.Context, cmd *cobra.Command, path string) (*source.Snapshot, error) {
	if path == stdinArg {
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return source.NewSnapshot(stdinPath, content), nil
	}

	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}
	file := source.NewSnapshot(path, content)
	file.Hash = info.Digest.String()
	return file, nil
}

// loadDocument reads path and parses the selected CSV region.
func loadDocument(cmd *cobra.Command, path string, flags *documentFlags) (*loadedDocument, error) {
	ctx := commandContext(cmd)

	file, err := readInput(ctx, cmd, path)
	if err != nil {
		return nil, err
	}

	engine := lint.NewEngine(markdown.NewExtractor(flags.flavor), nil)
	regions, err := engine.Regions(ctx, file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if flags.region < 1 || flags.region > len(regions) {
		return nil, fmt.Errorf("%w: %s has %d, requested %d", ErrNoRegion, file.Path, len(regions), flags.region)
	}
	region := regions[flags.region-1]

	logging.Default().Debug("loaded document",
		logging.FieldPath, file.Path,
		logging.FieldDigest, file.Hash,
		logging.FieldRegions, len(regions),
		logging.FieldRows, region.Document.RowCount(),
		logging.FieldColumns, region.Document.ColumnCount(),
	)

	return &loadedDocument{File: file, Region: region}, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
