package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"apicompat/internal/filter"
	"apicompat/internal/logging"
	"apicompat/internal/mapping"
	"apicompat/internal/rules"
	"apicompat/internal/symbol"
)

// Options tune a run.
type Options struct {
	// Predicate selects the rules that run; nil runs all of them.
	Predicate rules.Predicate
	// AlwaysDiffMembers maps and visits members of wholesale types. It is
	// also enabled by the filter's own configuration when the filter is an
	// *filter.AccessibilityFilter.
	AlwaysDiffMembers bool
	// SideNames name the sides in messages; see rules.Context.SideName.
	SideNames []string
	// Logger receives debug output; nil discards it.
	Logger *slog.Logger
}

// Engine holds a filter and the selected rules. It keeps no state between
// runs and may be shared by concurrent runs.
type Engine struct {
	filter filter.Filter
	rules  []rules.Rule
	opts   Options
	mapper *mapping.Mapper
	logger *slog.Logger
}

// New validates the configuration and selects the rules to run.
func New(f filter.Filter, set *rules.Set, opts Options) (*Engine, error) {
	if f == nil {
		return nil, ErrNoFilter
	}

	if set == nil {
		return nil, ErrNoRules
	}

	if err := set.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rule set: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	opts.SideNames = append([]string(nil), opts.SideNames...)

	if af, ok := f.(*filter.AccessibilityFilter); ok && af.Config().AlwaysDiffMembers {
		opts.AlwaysDiffMembers = true
	}

	return &Engine{
		filter: f,
		rules:  set.Select(opts.Predicate).Rules(),
		opts:   opts,
		mapper: mapping.NewMapper(f, opts.AlwaysDiffMembers),
		logger: logger,
	}, nil
}

// Rules returns the names of the rules that run, in order.
func (e *Engine) Rules() []string {
	names := make([]string, len(e.rules))
	for i, r := range e.rules {
		names[i] = r.Metadata().Name
	}

	return names
}

// Run compares libs; libs[0] is the baseline. The context is checked between
// nodes so callers can abandon a run.
func (e *Engine) Run(ctx context.Context, libs ...*symbol.Library) (*Result, error) {
	tree, err := e.mapper.Map(libs...)
	if err != nil {
		return nil, fmt.Errorf("mapping sides: %w", err)
	}

	return e.Diff(ctx, tree)
}

// Diff runs the rules over an aligned tree.
func (e *Engine) Diff(ctx context.Context, tree *mapping.Tree) (*Result, error) {
	start := time.Now()
	log := e.logger.With("run_id", uuid.NewString())

	log.Debug("run started", "sides", tree.Sides, "rules", len(e.rules))

	rctx := &rules.Context{Filter: e.filter, SideNames: e.opts.SideNames, Sides: tree.Sides}

	var (
		agg    Aggregator
		nodes  int
		runErr error
	)

	tree.Walk(func(n mapping.Node) bool {
		if runErr != nil {
			return false
		}

		if err := ctx.Err(); err != nil {
			runErr = err
			return false
		}

		nodes++

		fired, err := e.evaluate(rctx, n)
		if err != nil {
			runErr = err
			return false
		}

		agg.Add(n.Base().Key, fired)

		return e.opts.AlwaysDiffMembers || !n.Base().IsWholesale()
	})

	if runErr != nil {
		log.Debug("run aborted", "nodes", nodes, "error", runErr)

		return nil, runErr
	}

	result := &Result{
		Sides:       append([]string(nil), tree.Names...),
		Differences: agg.Differences(),
		Diagnostics: tree.Diagnostics,
	}

	log.Debug("run finished",
		"nodes", nodes,
		"differences", len(result.Differences),
		"diagnostics", result.Diagnostics.Len(),
		"duration", time.Since(start))

	return result, nil
}

// evaluate runs every rule on n, in order.
func (e *Engine) evaluate(ctx *rules.Context, n mapping.Node) ([]Fired, error) {
	var fired []Fired

	for _, r := range e.rules {
		findings, err := safeDiff(r, ctx, n)
		if err != nil {
			return nil, newRuleError(r.Metadata().Name, n.Base().Key, err)
		}

		for _, f := range findings {
			fired = append(fired, Fired{Rule: r.Metadata().Name, Finding: f})
		}
	}

	return fired, nil
}

func safeDiff(r rules.Rule, ctx *rules.Context, n mapping.Node) (findings []rules.Finding, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()

	return r.Diff(ctx, n)
}
