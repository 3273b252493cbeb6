package exec

//go:generate mockgen -source=interactive.go -destination=interactive_mock.go -package=exec

import (
	"context"
	"io/fs"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/cockroachdb/errors"
)

const (
	// ExitCodeNotExecutable is the shell convention for a command that exists
	// but cannot be run.
	ExitCodeNotExecutable = 126

	// ExitCodeNotFound is the shell convention for a command that is not found.
	ExitCodeNotFound = 127

	signalExitBase = 128
)

// ErrCommandSpawn is returned when the target command cannot be started.
var ErrCommandSpawn = errors.New("failed to start command")

// ExitStatus describes how the child process terminated.
type ExitStatus struct {
	// Code is the exit code, or -1 when the process was killed by a signal.
	Code int

	// Signal is set when the process was terminated by a signal.
	Signal syscall.Signal

	// Signaled reports whether Signal is meaningful.
	Signaled bool
}

// Success reports whether the child exited with status 0.
func (s ExitStatus) Success() bool {
	return !s.Signaled && s.Code == 0
}

// ShellCode returns the status the way a POSIX shell reports it:
// the exit code, or 128+N for a process killed by signal N.
func (s ExitStatus) ShellCode() int {
	if s.Signaled {
		return signalExitBase + int(s.Signal)
	}

	return s.Code
}

// InteractiveRunner runs a command attached to the caller's terminal.
type InteractiveRunner interface {
	// Run starts argv[0] with argv[1:] and blocks until it exits.
	// A non-zero exit is reported in ExitStatus, not as an error.
	// Errors wrap ErrCommandSpawn when the command could not be started.
	Run(ctx context.Context, argv []string) (ExitStatus, error)
}

// interactiveRunner implements InteractiveRunner.
type interactiveRunner struct {
	stdin  *os.File
	stdout *os.File
	stderr *os.File
}

// NewInteractiveRunner creates an InteractiveRunner that passes the process's
// standard streams to the child.
func NewInteractiveRunner() InteractiveRunner {
	return &interactiveRunner{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
}

// Run starts the command, forwards termination signals and waits for it.
func (r *interactiveRunner) Run(ctx context.Context, argv []string) (ExitStatus, error) {
	if len(argv) == 0 || argv[0] == "" {
		return ExitStatus{}, errors.Wrap(ErrCommandSpawn, "empty command")
	}

	//nolint:gosec // G204: running the user's command is the point
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdin = r.stdin
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr

	// Keep the parent alive until the child is gone so the notification
	// still goes out. SIGINT from a terminal already reaches the whole
	// foreground process group, so only TERM and HUP are forwarded.
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)

	defer signal.Stop(signals)

	if err := cmd.Start(); err != nil {
		return ExitStatus{}, errors.Mark(errors.Wrapf(err, "starting %s", argv[0]), ErrCommandSpawn)
	}

	done := make(chan struct{})
	defer close(done)

	go forwardSignals(cmd.Process, signals, done)

	err := cmd.Wait()

	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return ExitStatus{}, errors.Wrapf(err, "waiting for %s", argv[0])
	}

	return statusOf(cmd.ProcessState), nil
}

func forwardSignals(process *os.Process, signals <-chan os.Signal, done <-chan struct{}) {
	for {
		select {
		case sig := <-signals:
			if sig == os.Interrupt {
				continue
			}

			_ = process.Signal(sig)
		case <-done:
			return
		}
	}
}

func statusOf(state *os.ProcessState) ExitStatus {
	status := ExitStatus{Code: state.ExitCode()}

	if ws, ok := state.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		status.Signaled = true
		status.Signal = ws.Signal()
	}

	return status
}

// SpawnExitCode maps a spawn failure to the shell convention:
// 127 when the executable was not found, 126 when it could not be executed.
func SpawnExitCode(err error) int {
	switch {
	case errors.Is(err, exec.ErrNotFound), errors.Is(err, fs.ErrNotExist):
		return ExitCodeNotFound
	default:
		return ExitCodeNotExecutable
	}
}
