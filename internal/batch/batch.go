// Package batch runs independent comparisons in parallel, one engine run per job.
//
// Jobs share nothing mutable: each loads its own libraries and the engine
// keeps no state between runs. Outcomes are returned in manifest order.
package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"apicompat/internal/engine"
	"apicompat/internal/symbol"
)

var validate = validator.New()

// Manifest lists the comparisons of a batch.
//
//	jobs:
//	  - name: widgets
//	    sides: [v1/widgets.yaml, v2/widgets.yaml]
type Manifest struct {
	Jobs []Job `yaml:"jobs" validate:"required,min=1,dive"`
}

// Job is one comparison: the first side is the baseline.
type Job struct {
	Name  string   `yaml:"name"  validate:"required"`
	Sides []string `yaml:"sides" validate:"min=1,dive,required"`
}

// Outcome is the result of one job.
type Outcome struct {
	Job    Job
	Result *engine.Result
}

// RunFunc performs one job.
type RunFunc func(ctx context.Context, job Job) (*engine.Result, error)

// LoadManifest reads a manifest; relative side paths are resolved against
// the manifest's directory.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}

	if err := validate.Struct(&m); err != nil {
		return nil, fmt.Errorf("invalid manifest %s: %w", path, err)
	}

	dir := filepath.Dir(path)

	for i := range m.Jobs {
		for j, side := range m.Jobs[i].Sides {
			if !filepath.IsAbs(side) {
				m.Jobs[i].Sides[j] = filepath.Join(dir, side)
			}
		}
	}

	return &m, nil
}

// Run executes jobs with at most limit running at once (GOMAXPROCS when
// limit <= 0). The first failure cancels the remaining jobs.
func Run(ctx context.Context, jobs []Job, limit int, run RunFunc) ([]Outcome, error) {
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	// Each goroutine writes only its own index.
	outcomes := make([]Outcome, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(limit, len(jobs))))

	for i, job := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			res, err := run(gctx, job)
			if err != nil {
				return fmt.Errorf("job %s: %w", job.Name, err)
			}

			outcomes[i] = Outcome{Job: job, Result: res}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return outcomes, nil
}

// Diff returns a RunFunc that loads the job's side files and runs e over them.
func Diff(e *engine.Engine) RunFunc {
	return func(ctx context.Context, job Job) (*engine.Result, error) {
		libs := make([]*symbol.Library, len(job.Sides))

		for i, path := range job.Sides {
			lib, err := symbol.LoadFile(path)
			if err != nil {
				return nil, err
			}

			libs[i] = lib
		}

		return e.Run(ctx, libs...)
	}
}
