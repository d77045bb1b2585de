// Package batch applies a filter chain to many files of a working directory
// without a window, one session per file.
package batch

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sort"
	"sync"
	"time"

	"imgtransform/internal/logger"
	"imgtransform/internal/pipeline"
	"imgtransform/internal/processing/filters"
	"imgtransform/internal/session"
	"imgtransform/internal/timing"
	"imgtransform/internal/workspace"

	"golang.org/x/sync/errgroup"
)

var ErrNoFilters = errors.New("no filters given")

type Job struct {
	Dir     string
	Files   []string // empty means every image in Dir
	Filters []filters.Filter
	Workers int
}

type Result struct {
	File     string
	Output   string
	Duration time.Duration
	Err      error
}

type Report struct {
	Results []Result
	// Timings holds per-filter durations across all files, by filter name.
	Timings []timing.Stats
}

func (r Report) Failed() []Result {
	var failed []Result
	for _, res := range r.Results {
		if res.Err != nil {
			failed = append(failed, res)
		}
	}
	return failed
}

// Err joins the per-file errors, or returns nil when every file succeeded.
func (r Report) Err() error {
	var errs []error
	for _, res := range r.Failed() {
		errs = append(errs, fmt.Errorf("%s: %w", res.File, res.Err))
	}
	return errors.Join(errs...)
}

// Run processes the job. Per-file failures end up in the report; the
// returned error is reserved for invalid jobs and cancellation.
func Run(ctx context.Context, engine pipeline.Engine, log logger.Logger, job Job) (Report, error) {
	if log == nil {
		log = logger.Nop()
	}
	if len(job.Filters) == 0 {
		return Report{}, ErrNoFilters
	}

	files := job.Files
	if len(files) == 0 {
		var err error
		files, err = workspace.List(job.Dir)
		if err != nil {
			return Report{}, err
		}
	} else if err := workspace.CheckDir(job.Dir); err != nil {
		return Report{}, err
	}

	workers := job.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	log.Info("Batch", "batch started", map[string]interface{}{
		"dir":     job.Dir,
		"files":   len(files),
		"filters": len(job.Filters),
		"workers": workers,
	})

	var (
		mu      sync.Mutex
		results = make([]Result, 0, len(files))
		timings = timing.NewTracker()
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, file := range files {
		file := file
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res := processFile(engine, log, timings, job.Dir, file, job.Filters)

			mu.Lock()
			results = append(results, res)
			mu.Unlock()
			return nil
		})
	}

	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}

	sort.Slice(results, func(i, j int) bool { return results[i].File < results[j].File })
	report := Report{Results: results, Timings: timings.All()}

	log.Info("Batch", "batch finished", map[string]interface{}{
		"processed": len(results),
		"failed":    len(report.Failed()),
	})

	return report, err
}

func processFile(engine pipeline.Engine, log logger.Logger, timings *timing.Tracker, dir, file string, chain []filters.Filter) Result {
	start := time.Now()
	res := Result{File: file}

	s := session.New(engine, log, session.Options{Timings: timings})
	defer s.Close()

	if _, err := s.OpenDir(dir); err != nil {
		res.Err = err
		return res
	}
	if _, err := s.Select(file); err != nil {
		res.Err = err
		return res
	}

	for _, f := range chain {
		if _, err := s.Transform(f); err != nil {
			res.Err = err
			return res
		}
	}

	res.Output = workspace.OutputPath(s.Workdir(), file)
	res.Duration = time.Since(start)
	return res
}
