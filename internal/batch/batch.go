// Package batch runs the pipeline over many mesh files with a bounded pool
// of workers.
package batch

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"go.uber.org/multierr"

	"github.com/Faultbox/edgeloop/internal/pipeline"
)

// Func processes one mesh file. (*pipeline.Runner).Run satisfies it.
type Func func(ctx context.Context, path string) (*pipeline.Report, error)

// JobResult is the outcome for one input path.
type JobResult struct {
	Path   string
	Report *pipeline.Report
	Err    error
}

// Result collects job outcomes in input order.
type Result struct {
	Results   []*JobResult
	Total     int
	Completed int
	Failed    int
}

// Err combines every job error, or returns nil when all jobs succeeded.
func (r *Result) Err() error {
	var err error
	for _, jr := range r.Results {
		if jr.Err != nil {
			err = multierr.Append(err, fmt.Errorf("%s: %w", jr.Path, jr.Err))
		}
	}
	return err
}

// Run processes paths with at most workers concurrent calls to fn. A
// non-positive workers value uses one worker per CPU. Jobs not started
// before ctx is done are recorded with the context error and do not count
// as completed.
func Run(ctx context.Context, paths []string, workers int, fn Func) *Result {
	res := &Result{
		Results: make([]*JobResult, len(paths)),
		Total:   len(paths),
	}
	if len(paths) == 0 {
		return res
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	workers = min(workers, len(paths))

	jobs := make(chan int)
	ran := make([]bool, len(paths))
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				if err := ctx.Err(); err != nil {
					res.Results[i] = &JobResult{Path: paths[i], Err: err}
					continue
				}
				report, err := fn(ctx, paths[i])
				res.Results[i] = &JobResult{Path: paths[i], Report: report, Err: err}
				ran[i] = true
			}
		}()
	}

	next := 0
submit:
	for ; next < len(paths); next++ {
		select {
		case <-ctx.Done():
			break submit
		case jobs <- next:
		}
	}
	close(jobs)
	wg.Wait()

	for i := next; i < len(paths); i++ {
		res.Results[i] = &JobResult{Path: paths[i], Err: ctx.Err()}
	}
	for i, jr := range res.Results {
		if !ran[i] {
			continue
		}
		res.Completed++
		if jr.Err != nil {
			res.Failed++
		}
	}
	return res
}
