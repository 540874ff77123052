package runner

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/csvdoc/pkg/config"
	"github.com/yaklabco/csvdoc/pkg/lint"
)

// Runner checks many files using a lint.Pipeline.
type Runner struct {
	Pipeline *lint.Pipeline
}

// New creates a new Runner with the given pipeline.
func New(pipeline *lint.Pipeline) *Runner {
	return &Runner{Pipeline: pipeline}
}

// Run discovers files under opts.Paths and checks them with a pool of
// workers. Outcomes are returned in discovery order regardless of which
// worker finished first. A file that fails does not stop the run; its error
// is recorded on its FileOutcome.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	pipelineOpts := lint.PipelineOptions{VerifyUnchanged: opts.VerifyUnchanged}

	workCh := make(chan int)
	outcomes := make([]FileOutcome, len(files))
	done := make([]bool, len(files))

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		defer close(workCh)
		for i := range files {
			select {
			case <-groupCtx.Done():
				return nil
			case workCh <- i:
			}
		}
		return nil
	})

	for range jobs {
		group.Go(func() error {
			// Each index is sent once, so workers write disjoint slots.
			for i := range workCh {
				if groupCtx.Err() != nil {
					return nil
				}
				outcomes[i] = r.process(groupCtx, files[i], opts.Config, pipelineOpts)
				done[i] = true
			}
			return nil
		})
	}

	_ = group.Wait() // workers never return errors

	for i := range files {
		if done[i] {
			result.accumulate(outcomes[i])
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	return result, nil
}

func (r *Runner) process(
	ctx context.Context,
	path string,
	cfg *config.Config,
	opts lint.PipelineOptions,
) FileOutcome {
	outcome := FileOutcome{Path: path}

	pr, err := r.Pipeline.ProcessFile(ctx, path, cfg, opts)
	if err != nil {
		outcome.Error = err
	} else {
		outcome.Result = pr
	}
	return outcome
}
