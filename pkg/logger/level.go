package logger

import "log/slog"

// Verbosity is how much of an invocation ends up in the log file. It
// implements slog.Leveler.
type Verbosity int

const (
	// VerbosityErrors records failures only.
	VerbosityErrors Verbosity = iota

	// VerbositySteps adds one line per pipeline step (--debug).
	VerbositySteps

	// VerbosityTrace adds backend attempts and decoded config (--trace).
	VerbosityTrace
)

// VerbosityFromFlags maps the --debug and --trace flags. --trace wins.
func VerbosityFromFlags(debug, trace bool) Verbosity {
	switch {
	case trace:
		return VerbosityTrace
	case debug:
		return VerbositySteps
	default:
		return VerbosityErrors
	}
}

// Level returns the lowest slog level written at v.
func (v Verbosity) Level() slog.Level {
	switch v {
	case VerbosityTrace:
		return slog.LevelDebug
	case VerbositySteps:
		return slog.LevelInfo
	default:
		return slog.LevelError
	}
}

func (v Verbosity) String() string {
	switch v {
	case VerbosityTrace:
		return "trace"
	case VerbositySteps:
		return "steps"
	default:
		return "errors"
	}
}
