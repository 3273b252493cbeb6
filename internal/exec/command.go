// Package exec provides abstractions for executing external commands.
package exec

//go:generate mockgen -source=command.go -destination=command_mock.go -package=exec

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"

	cerrors "github.com/cockroachdb/errors"
)

// CommandResult contains the result of a captured command execution.
type CommandResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Err      error
}

// Success reports whether the command ran and exited with status 0.
func (r CommandResult) Success() bool {
	return r.Err == nil && r.ExitCode == 0
}

// Failed reports whether the command could not run or exited non-zero.
func (r CommandResult) Failed() bool {
	return !r.Success()
}

// CommandRunner executes helper commands with captured output.
type CommandRunner interface {
	// Run executes a command and returns the result.
	Run(ctx context.Context, name string, args ...string) CommandResult
}

// commandRunner implements CommandRunner.
type commandRunner struct {
	defaultTimeout time.Duration
}

// NewCommandRunner creates a new CommandRunner. Run applies defaultTimeout
// when the context carries no deadline.
func NewCommandRunner(defaultTimeout time.Duration) CommandRunner {
	return &commandRunner{
		defaultTimeout: defaultTimeout,
	}
}

// Run executes a command and returns the result. Stdin is empty.
func (r *commandRunner) Run(ctx context.Context, name string, args ...string) CommandResult {
	if _, ok := ctx.Deadline(); !ok && r.defaultTimeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, r.defaultTimeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	result := CommandResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		result.Err = cerrors.Wrapf(err, "%s exited with code %d", name, result.ExitCode)
	} else if err != nil {
		result.ExitCode = -1
		result.Err = cerrors.Wrapf(err, "executing %s", name)
	}

	return result
}
