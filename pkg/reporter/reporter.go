// Package reporter renders check results in the supported output formats.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/csvdoc/pkg/analysis"
	"github.com/yaklabco/csvdoc/pkg/runner"
)

// Reporter formats and writes check results.
type Reporter interface {
	// Report writes output for result and returns the number of diagnostics
	// it covered.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// Renderer presents a pre-computed analysis.Report. Renderers hold no
// per-run state.
type Renderer interface {
	Render(ctx context.Context, report *analysis.Report) error
}

// analyzed adapts a Renderer to Reporter by running the analysis first.
type analyzed struct {
	renderer Renderer
	opts     analysis.Options
}

var _ Reporter = (*analyzed)(nil)

func (a *analyzed) Report(ctx context.Context, result *runner.Result) (int, error) {
	report := analysis.Analyze(result, a.opts)
	if err := a.renderer.Render(ctx, report); err != nil {
		return 0, fmt.Errorf("render: %w", err)
	}
	return report.Totals.Issues, nil
}

func withAnalysis(renderer Renderer, opts Options) *analyzed {
	analysisOpts := analysis.DefaultOptions()
	analysisOpts.RuleFormat = opts.RuleFormat
	analysisOpts.RunID = opts.RunID
	analysisOpts.WorkingDir = opts.WorkingDir
	return &analyzed{renderer: renderer, opts: analysisOpts}
}

// constructors maps each format to its reporter.
var constructors = map[Format]func(Options) Reporter{
	FormatText:  func(o Options) Reporter { return NewTextReporter(o) },
	FormatTable: func(o Options) Reporter { return NewTableReporter(o) },
	FormatJSON:  func(o Options) Reporter { return NewJSONReporter(o) },
	FormatSARIF: func(o Options) Reporter { return NewSARIFReporter(o) },
	FormatSummary: func(o Options) Reporter {
		return withAnalysis(NewSummaryRenderer(o), o)
	},
}

// New creates a Reporter for opts.Format. A missing writer falls back to
// standard output and an empty format to text.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}
	if opts.Format == "" {
		opts.Format = FormatText
	}

	construct, ok := constructors[opts.Format]
	if !ok {
		return nil, fmt.Errorf("unsupported format: %s", opts.Format)
	}
	return construct(opts), nil
}
