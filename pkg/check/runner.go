package check

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stayflow-labs/dataguard/pkg/table"
	"golang.org/x/sync/errgroup"
)

// =============================================================================
// Policy
// =============================================================================

// Policy controls how the runner continues after a failing check.
type Policy int

const (
	// StopOnFirstFailure stops the run at the first failing check. This
	// matches assertion-suite behavior where any failure halts the suite.
	StopOnFirstFailure Policy = iota
	// CollectAll runs every configured check and reports all failures.
	// Halting checks still stop the run on failure.
	CollectAll
)

// String returns the config-facing name of the policy.
func (p Policy) String() string {
	switch p {
	case StopOnFirstFailure:
		return "stop-on-first"
	case CollectAll:
		return "collect-all"
	default:
		return "unknown"
	}
}

// ParsePolicy converts a string to a Policy value.
// Returns the policy and true if valid, or StopOnFirstFailure and false.
func ParsePolicy(s string) (Policy, bool) {
	switch strings.ToLower(s) {
	case "stop-on-first", "stop_on_first", "":
		return StopOnFirstFailure, true
	case "collect-all", "collect_all":
		return CollectAll, true
	default:
		return StopOnFirstFailure, false
	}
}

// =============================================================================
// Run configuration
// =============================================================================

// Config selects one check by name and carries its option bag. Configs are
// ordered: the runner executes and reports in configuration order.
type Config struct {
	Name    string         `koanf:"name"`
	Options map[string]any `koanf:"options"`
}

// RunnerOptions configures a Runner.
type RunnerOptions struct {
	Policy Policy
	// Parallel runs checks concurrently under the CollectAll policy. The
	// dataset is read-only during a run, so concurrent checks need no
	// locking. Reporting order stays the configured order.
	Parallel bool
}

// Runner executes a configured list of checks against loaded datasets and
// aggregates their outcomes. A Runner is stateless between runs and safe for
// concurrent use.
type Runner struct {
	logger *slog.Logger
	opts   RunnerOptions
}

// NewRunner creates a Runner. A nil logger defaults to slog.Default().
func NewRunner(logger *slog.Logger, opts RunnerOptions) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{logger: logger, opts: opts}
}

// =============================================================================
// Report
// =============================================================================

// Report aggregates a run's outcomes. Results hold the outcomes of checks
// that actually executed, in configuration order; under StopOnFirstFailure
// the last result is the failing one.
type Report struct {
	RunID    string        `json:"run_id"`
	Passed   bool          `json:"passed"`
	Results  []Outcome     `json:"results"`
	Duration time.Duration `json:"duration"`
}

// Failures returns the failing outcomes in report order.
func (r *Report) Failures() []Outcome {
	var failed []Outcome
	for _, o := range r.Results {
		if !o.Passed {
			failed = append(failed, o)
		}
	}
	return failed
}

// =============================================================================
// Execution
// =============================================================================

// Run executes the configured checks against ds, with ref available to
// cross-dataset checks. Checks never retry: these are deterministic
// predicates over static data, a failure is never transient.
//
// A non-nil error means a check could not be evaluated (unknown check name,
// missing reference dataset, undefined divergence); the report is nil in
// that case. A failing check is not an error: it is reported through the
// returned Report.
func (r *Runner) Run(ctx context.Context, ds, ref *table.Table, checks []Config) (*Report, error) {
	start := time.Now()

	defs := make([]Def, len(checks))
	for i, c := range checks {
		def, ok := GetByName(c.Name)
		if !ok {
			return nil, fmt.Errorf("unknown check %q", c.Name)
		}
		if def.NeedsReference && ref == nil {
			return nil, fmt.Errorf("check %q requires a reference dataset", c.Name)
		}
		defs[i] = def
	}

	var (
		results []Outcome
		err     error
	)
	if r.opts.Parallel && r.opts.Policy == CollectAll {
		results, err = r.runParallel(ctx, ds, ref, checks, defs)
	} else {
		results, err = r.runSequential(ctx, ds, ref, checks, defs)
	}
	if err != nil {
		return nil, err
	}

	report := &Report{
		RunID:    uuid.NewString(),
		Passed:   true,
		Results:  results,
		Duration: time.Since(start),
	}
	for _, o := range results {
		if !o.Passed {
			report.Passed = false
			break
		}
	}

	r.logger.Debug("check run complete",
		"run_id", report.RunID,
		"checks", len(results),
		"passed", report.Passed,
		"duration", report.Duration)

	return report, nil
}

func (r *Runner) runSequential(ctx context.Context, ds, ref *table.Table, checks []Config, defs []Def) ([]Outcome, error) {
	results := make([]Outcome, 0, len(checks))
	for i, c := range checks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r.logger.Debug("running check", "check", c.Name)
		outcome, err := defs[i].Run(ds, ref, c.Options)
		if err != nil {
			return nil, fmt.Errorf("check %s: %w", c.Name, err)
		}
		results = append(results, outcome)
		if !outcome.Passed && (r.opts.Policy == StopOnFirstFailure || defs[i].Halting) {
			break
		}
	}
	return results, nil
}

// runParallel evaluates all checks concurrently, then applies the halting
// rule in configuration order so the observable report matches a sequential
// collect-all run.
func (r *Runner) runParallel(ctx context.Context, ds, ref *table.Table, checks []Config, defs []Def) ([]Outcome, error) {
	outcomes := make([]Outcome, len(checks))
	errs := make([]error, len(checks))

	g, gctx := errgroup.WithContext(ctx)
	for i := range checks {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcomes[i], errs[i] = defs[i].Run(ds, ref, checks[i].Options)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	results := make([]Outcome, 0, len(checks))
	for i := range checks {
		if errs[i] != nil {
			return nil, fmt.Errorf("check %s: %w", checks[i].Name, errs[i])
		}
		results = append(results, outcomes[i])
		if !outcomes[i].Passed && defs[i].Halting {
			break
		}
	}
	return results, nil
}
