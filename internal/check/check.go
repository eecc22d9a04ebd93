package check

import (
	"context"
	"log/slog"

	"github.com/gukoff/blogward/internal/model"
	"github.com/gukoff/blogward/internal/site"
)

// Check defines the interface that all validation checks implement.
// Checks are executed in sequence against the same loaded site and
// accumulate findings in the shared report.
//
// Design decision: We use an interface rather than function types because:
//  1. It allows checks to carry configuration state
//  2. It provides a Name() method for logging and report grouping
//  3. It is more extensible (future: per-check enable flags, ordering)
type Check interface {
	// Run executes the check. Findings go into the report; a returned
	// error means the check failed. Errors never abort the remaining
	// checks: the audit verdict aggregates all failures at the end.
	Run(ctx context.Context, s *site.Site, report *model.AuditReport) error

	// Name returns the check's name for logging and report grouping.
	Name() string
}

// Runner orchestrates the execution of checks in order.
type Runner struct {
	// checks contains the ordered list of checks to execute.
	checks []Check

	// logger is used for structured logging during execution.
	logger *slog.Logger

	// continueOnError determines whether to keep running checks after
	// one fails. The audit wants a complete report, so this defaults
	// to true; the first failure still decides the exit status.
	continueOnError bool
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithLogger sets a custom logger for the runner.
func WithLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithContinueOnError configures whether the runner keeps going after a
// failed check. Disable it to stop at the first failure, e.g. in CI where
// only the verdict matters.
func WithContinueOnError(continueOnError bool) RunnerOption {
	return func(r *Runner) {
		r.continueOnError = continueOnError
	}
}

// NewRunner creates a Runner with the given options. Checks are added
// with AddChecks after creation.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{
		checks:          make([]Check, 0),
		continueOnError: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r
}

// AddChecks appends checks to the runner in execution order.
func (r *Runner) AddChecks(checks ...Check) {
	r.checks = append(r.checks, checks...)
}

// Checks returns the names of all checks in execution order.
func (r *Runner) Checks() []string {
	names := make([]string, len(r.checks))
	for i, c := range r.checks {
		names[i] = c.Name()
	}
	return names
}

// Run executes all checks in sequence. Context cancellation is honored
// between checks; individual checks handle their own timeouts.
//
// Returns the first failure when continueOnError is false, nil otherwise.
// Either way every failure is recorded in the report, which is what the
// audit verdict is computed from.
func (r *Runner) Run(ctx context.Context, s *site.Site, report *model.AuditReport) error {
	for _, c := range r.checks {
		select {
		case <-ctx.Done():
			r.logger.Warn("audit cancelled", "check", c.Name(), "reason", ctx.Err())
			report.Error = ctx.Err()
			report.ErrorMessage = ctx.Err().Error()
			return ctx.Err()
		default:
		}

		r.logger.Info("running check", "check", c.Name())

		if err := c.Run(ctx, s, report); err != nil {
			r.logger.Error("check failed", "check", c.Name(), "error", err)
			report.MarkFailed(c.Name())
			if !r.continueOnError {
				report.PerformedChecks = append(report.PerformedChecks, c.Name())
				return err
			}
		} else {
			r.logger.Debug("check passed", "check", c.Name())
		}

		report.PerformedChecks = append(report.PerformedChecks, c.Name())
	}

	return nil
}
