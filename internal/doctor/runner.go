package doctor

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/smykla-skalski/notify-complete/pkg/logger"
)

// Options configures a doctor run.
type Options struct {
	// Fix applies available fixes and re-runs the checks.
	Fix bool

	// Verbose adds check details to the report.
	Verbose bool

	// Categories limits the run. Empty runs everything.
	Categories []Category
}

// Runner runs checks, reports them and optionally applies fixes.
type Runner struct {
	registry *Registry
	reporter Reporter
	log      logger.Logger
}

// NewRunner creates a Runner.
func NewRunner(registry *Registry, reporter Reporter, log logger.Logger) *Runner {
	return &Runner{registry: registry, reporter: reporter, log: log}
}

// Run returns the final results. The error wraps ErrChecksFailed when any
// check still fails with error severity.
func (r *Runner) Run(ctx context.Context, opts Options) ([]CheckResult, error) {
	r.log.Info("starting doctor run", "fix", opts.Fix, "categories", opts.Categories)

	results := r.registry.Run(ctx, opts.Categories...)

	if err := r.reporter.Report(results, opts.Verbose); err != nil {
		return results, errors.Wrap(err, "rendering report")
	}

	fixable := fixableResults(results)

	if opts.Fix && len(fixable) > 0 {
		if err := r.applyFixes(ctx, fixable); err != nil {
			return results, err
		}

		results = r.registry.Run(ctx, opts.Categories...)

		if err := r.reporter.Report(results, opts.Verbose); err != nil {
			return results, errors.Wrap(err, "rendering report")
		}

		fixable = fixableResults(results)
	}

	return results, r.finalError(results, len(fixable) > 0 && !opts.Fix)
}

func fixableResults(results []CheckResult) []CheckResult {
	var fixable []CheckResult

	for _, res := range results {
		if res.Fixable() {
			fixable = append(fixable, res)
		}
	}

	return fixable
}

func (r *Runner) applyFixes(ctx context.Context, results []CheckResult) error {
	applied := make(map[string]bool, len(results))

	for _, res := range results {
		if applied[res.FixID] {
			continue
		}

		fixer, ok := r.registry.Fixer(res.FixID)
		if !ok {
			r.log.Error("fixer not found", "fix_id", res.FixID, "check", res.Name)

			continue
		}

		r.log.Info("applying fix", "check", res.Name, "fixer", fixer.ID())

		if err := fixer.Fix(ctx); err != nil {
			return errors.Wrapf(err, "fixing %q", res.Name)
		}

		applied[res.FixID] = true
	}

	return nil
}

func (r *Runner) finalError(results []CheckResult, suggestFix bool) error {
	var failed, warnings int

	for _, res := range results {
		switch {
		case res.IsError():
			failed++
		case res.IsWarning():
			warnings++
		}
	}

	r.log.Info("doctor finished", "errors", failed, "warnings", warnings, "total", len(results))

	if failed == 0 {
		return nil
	}

	err := errors.Wrapf(ErrChecksFailed, "%d check(s) failed", failed)
	if suggestFix {
		err = errors.WithHint(err, "run `notify-complete doctor --fix` to repair what can be fixed automatically")
	}

	return err
}
