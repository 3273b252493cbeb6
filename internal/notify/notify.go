// Package notify delivers resolved notifications to the desktop.
package notify

//go:generate mockgen -source=notify.go -destination=notify_mock.go -package=notify

import (
	"context"
	"runtime"

	"github.com/cockroachdb/errors"

	execpkg "github.com/smykla-skalski/notify-complete/internal/exec"
	"github.com/smykla-skalski/notify-complete/pkg/config"
	"github.com/smykla-skalski/notify-complete/pkg/logger"
)

// ErrNotification is returned when a notification could not be delivered.
var ErrNotification = errors.New("failed to send notification")

// Notifier delivers a notification.
type Notifier interface {
	// Notify sends n. Errors wrap ErrNotification.
	Notify(ctx context.Context, n config.Notification) error

	// Name identifies the backend in logs.
	Name() string
}

// Deps are the collaborators backends need. Zero fields get real
// implementations.
type Deps struct {
	Runner    execpkg.CommandRunner
	Tools     execpkg.ToolChecker
	TempFiles execpkg.TempFileManager
	Dial      BusDialer
	GOOS      string
}

func (d Deps) withDefaults() Deps {
	if d.Runner == nil {
		d.Runner = execpkg.NewCommandRunner(helperTimeout)
	}

	if d.Tools == nil {
		d.Tools = execpkg.NewToolChecker()
	}

	if d.TempFiles == nil {
		d.TempFiles = execpkg.NewTempFileManager()
	}

	if d.Dial == nil {
		d.Dial = DialSessionBus
	}

	if d.GOOS == "" {
		d.GOOS = runtime.GOOS
	}

	return d
}

// New creates the Notifier selected by cfg.Backend.
func New(cfg config.NotifierConfig, log logger.Logger) (Notifier, error) {
	return NewWithDeps(cfg, log, Deps{})
}

// NewWithDeps creates the Notifier selected by cfg.Backend using deps.
func NewWithDeps(cfg config.NotifierConfig, log logger.Logger, deps Deps) (Notifier, error) {
	deps = deps.withDefaults()

	appName := cfg.AppName
	if appName == "" {
		appName = config.DefaultAppName
	}

	backend, err := config.ParseBackend(string(cfg.Backend))
	if err != nil {
		return nil, err
	}

	switch backend {
	case config.BackendDBus:
		return NewDBusNotifier(appName, deps.Dial), nil
	case config.BackendExec:
		return NewExecNotifier(appName, deps), nil
	case config.BackendBeeep:
		return NewBeeepNotifier(), nil
	case config.BackendNone:
		return NewNoopNotifier(log), nil
	default:
		return NewFallbackNotifier(log, autoChain(appName, deps)...), nil
	}
}

// autoChain lists the backends tried, in order, for the platform.
func autoChain(appName string, deps Deps) []Notifier {
	switch deps.GOOS {
	case "darwin", "windows":
		return []Notifier{NewExecNotifier(appName, deps), NewBeeepNotifier()}
	default:
		return []Notifier{
			NewDBusNotifier(appName, deps.Dial),
			NewExecNotifier(appName, deps),
			NewBeeepNotifier(),
		}
	}
}

// FallbackNotifier tries each backend in turn until one succeeds.
type FallbackNotifier struct {
	backends []Notifier
	log      logger.Logger
}

// NewFallbackNotifier creates a FallbackNotifier over backends.
func NewFallbackNotifier(log logger.Logger, backends ...Notifier) *FallbackNotifier {
	return &FallbackNotifier{backends: backends, log: log}
}

// Name implements Notifier.
func (*FallbackNotifier) Name() string {
	return string(config.BackendAuto)
}

// Notify implements Notifier. The returned error joins every backend failure.
func (f *FallbackNotifier) Notify(ctx context.Context, n config.Notification) error {
	var errs []error

	for _, b := range f.backends {
		err := b.Notify(ctx, n)
		if err == nil {
			f.log.Debug("notification delivered", "backend", b.Name())

			return nil
		}

		f.log.Debug("notification backend failed", "backend", b.Name(), "error", err)

		errs = append(errs, err)
	}

	if len(errs) == 0 {
		return errors.Wrap(ErrNotification, "no notification backend available")
	}

	return errors.Mark(errors.Join(errs...), ErrNotification)
}

// NoopNotifier logs the notification and sends nothing.
type NoopNotifier struct {
	log logger.Logger
}

// NewNoopNotifier creates a NoopNotifier.
func NewNoopNotifier(log logger.Logger) *NoopNotifier {
	return &NoopNotifier{log: log}
}

// Name implements Notifier.
func (*NoopNotifier) Name() string {
	return string(config.BackendNone)
}

// Notify implements Notifier.
func (n *NoopNotifier) Notify(_ context.Context, notif config.Notification) error {
	n.log.Info("notification suppressed",
		"title", notif.Title,
		"message", notif.Message,
		"urgency", notif.Urgency.String(),
		"timeout", notif.Timeout.String(),
	)

	return nil
}

func wrapFailure(err error, backend string) error {
	return errors.Mark(errors.Wrapf(err, "%s backend", backend), ErrNotification)
}
