package lint

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/yaklabco/csvdoc/pkg/config"
	"github.com/yaklabco/csvdoc/pkg/fsutil"
	"github.com/yaklabco/csvdoc/pkg/source"
)

// Errors returned by Pipeline, for use with errors.Is.
var (
	ErrFileNotFound     = errors.New("file not found")
	ErrPermissionDenied = errors.New("permission denied")

	// ErrParseFailure means the CSV regions of a file could not be found,
	// for example because its Markdown could not be read.
	ErrParseFailure = errors.New("parse failure")
)

// PipelineResult is the outcome of processing one file.
type PipelineResult struct {
	*FileResult

	Path string

	// Info is the file state when it was read. Nil for in-memory content.
	Info *fsutil.FileInfo

	// Stale is set when the file changed on disk while it was checked; the
	// diagnostics then refer to content that is no longer there.
	Stale bool
}

// Summary returns "ok", "issues found" or "modified during check".
func (pr *PipelineResult) Summary() string {
	switch {
	case pr.Stale:
		return "modified during check"
	case pr.FileResult != nil && pr.HasIssues():
		return "issues found"
	default:
		return "ok"
	}
}

// PipelineOptions controls pipeline behavior.
type PipelineOptions struct {
	// VerifyUnchanged rechecks the file after linting and sets Stale when
	// its digest no longer matches.
	VerifyUnchanged bool
}

// Pipeline turns paths or raw content into checked results.
type Pipeline struct {
	Engine *Engine
}

// NewPipeline creates a pipeline around engine.
func NewPipeline(engine *Engine) *Pipeline {
	return &Pipeline{Engine: engine}
}

// ProcessFile reads and checks path.
func (p *Pipeline) ProcessFile(
	ctx context.Context,
	path string,
	cfg *config.Config,
	opts PipelineOptions,
) (*PipelineResult, error) {
	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, categorizeError(err)
	}

	result, err := p.check(ctx, path, content, info, cfg)
	if err != nil {
		return nil, err
	}

	if opts.VerifyUnchanged {
		if result.Stale, err = fsutil.CheckModified(ctx, info); err != nil {
			return nil, fmt.Errorf("check modified: %w", categorizeError(err))
		}
	}
	return result, nil
}

// ProcessContent checks content that did not come from a file on disk, such
// as standard input. path is only used for reporting.
func (p *Pipeline) ProcessContent(
	ctx context.Context,
	path string,
	content []byte,
	cfg *config.Config,
) (*PipelineResult, error) {
	return p.check(ctx, path, content, nil, cfg)
}

func (p *Pipeline) check(
	ctx context.Context,
	path string,
	content []byte,
	info *fsutil.FileInfo,
	cfg *config.Config,
) (*PipelineResult, error) {
	file := source.NewSnapshot(path, content)
	if info != nil {
		file.Hash = info.Digest.String()
	} else {
		file.Hash = fsutil.Sum(content).String()
	}

	fileResult, err := p.Engine.CheckSnapshot(ctx, file, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseFailure, err)
	}
	return &PipelineResult{FileResult: fileResult, Path: path, Info: info}, nil
}

// categorizeError tags filesystem errors with the pipeline sentinel that
// matches them. Other errors pass through unchanged.
func categorizeError(err error) error {
	categories := []struct {
		sentinel error
		causes   []error
	}{
		{ErrFileNotFound, []error{fsutil.ErrNotFound, os.ErrNotExist}},
		{ErrPermissionDenied, []error{fsutil.ErrPermissionDenied, os.ErrPermission}},
	}
	for _, category := range categories {
		for _, cause := range category.causes {
			if errors.Is(err, cause) {
				return fmt.Errorf("%w: %w", category.sentinel, err)
			}
		}
	}
	return err
}

// IsPipelineError reports whether err carries one of the pipeline sentinels.
func IsPipelineError(err error) bool {
	for _, sentinel := range []error{ErrFileNotFound, ErrPermissionDenied, ErrParseFailure} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
