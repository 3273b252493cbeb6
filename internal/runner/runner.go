// Package runner wires resolution, execution and notification into one
// invocation.
package runner

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/hako/durafmt"

	internalconfig "github.com/smykla-skalski/notify-complete/internal/config"
	execpkg "github.com/smykla-skalski/notify-complete/internal/exec"
	"github.com/smykla-skalski/notify-complete/internal/notify"
	"github.com/smykla-skalski/notify-complete/internal/resolve"
	"github.com/smykla-skalski/notify-complete/pkg/config"
	"github.com/smykla-skalski/notify-complete/pkg/logger"
)

const (
	// ExitFailure is returned for internal failures.
	ExitFailure = 1

	// ExitUsage is returned when configuration or resolution fails and
	// nothing ran.
	ExitUsage = 2

	elapsedUnits = 2
)

// ErrUsage marks command-line mistakes such as unknown flags.
var ErrUsage = errors.New("usage error")

// Result describes a finished invocation.
type Result struct {
	Plan    resolve.Plan
	Status  execpkg.ExitStatus
	Elapsed time.Duration

	// NotifyErr is set when the notification could not be delivered. It
	// never changes the exit code.
	NotifyErr error
}

// ExitCode returns the process exit code for the invocation.
func (r Result) ExitCode() int {
	return r.Status.ShellCode()
}

// Runner resolves the notification, runs the command and then notifies.
type Runner struct {
	resolver *resolve.Resolver
	commands execpkg.InteractiveRunner
	notifier notify.Notifier
	log      logger.Logger
	now      func() time.Time
}

// New creates a Runner.
func New(
	resolver *resolve.Resolver,
	commands execpkg.InteractiveRunner,
	notifier notify.Notifier,
	log logger.Logger,
) *Runner {
	return &Runner{
		resolver: resolver,
		commands: commands,
		notifier: notifier,
		log:      log,
		now:      time.Now,
	}
}

// Run executes one invocation. Resolution errors are returned before
// anything is spawned. Once the command has run the notification is sent
// whatever its exit status.
func (r *Runner) Run(ctx context.Context, ov resolve.Overrides, cfg *config.Config) (Result, error) {
	plan, err := r.resolver.Resolve(ov, cfg)
	if err != nil {
		return Result{Plan: plan}, err
	}

	n := plan.Notification
	r.log.Debug("resolved notification",
		"profile", plan.Profile,
		"title", n.Title,
		"message", n.Message,
		"timeout", n.Timeout.String(),
		"urgency", n.Urgency.String(),
		"icon", n.Icon,
	)

	r.log.Info("running command", "argv", plan.Command)

	start := r.now()

	status, err := r.commands.Run(ctx, plan.Command)
	if err != nil {
		r.log.Error("command failed to start", "argv", plan.Command, "error", err)

		return Result{Plan: plan}, err
	}

	result := Result{
		Plan:    plan,
		Status:  status,
		Elapsed: r.now().Sub(start),
	}

	r.log.Info("command finished",
		"exit_code", result.ExitCode(),
		"elapsed", durafmt.Parse(result.Elapsed).LimitFirstN(elapsedUnits).String(),
	)

	if err := r.notifier.Notify(ctx, n); err != nil {
		r.log.Error("notification failed", "backend", r.notifier.Name(), "error", err)

		result.NotifyErr = err
	} else {
		r.log.Info("notification sent", "backend", r.notifier.Name())
	}

	return result, nil
}

// ExitCodeFor maps an error that ended the invocation early to an exit code.
func ExitCodeFor(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, execpkg.ErrCommandSpawn):
		return execpkg.SpawnExitCode(err)
	case isUsageError(err):
		return ExitUsage
	default:
		return ExitFailure
	}
}

func isUsageError(err error) bool {
	return errors.IsAny(err,
		ErrUsage,
		resolve.ErrProfileNotFound,
		resolve.ErrNoCommand,
		internalconfig.ErrInvalidConfig,
		internalconfig.ErrConfigParse,
		internalconfig.ErrConfigNotFound,
		internalconfig.ErrInvalidPermissions,
		config.ErrInvalidTimeout,
		config.ErrInvalidUrgency,
		config.ErrInvalidBackend,
	)
}
