package doctor

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	internalconfig "github.com/smykla-skalski/notify-complete/internal/config"
	execpkg "github.com/smykla-skalski/notify-complete/internal/exec"
	"github.com/smykla-skalski/notify-complete/internal/notify"
	"github.com/smykla-skalski/notify-complete/pkg/config"
)

// Fixer IDs.
const (
	FixConfigPermissions = "config-permissions"
	FixLogDir            = "log-dir"
)

const (
	busProbeTimeout = 2 * time.Second
	privateDirMode  = 0o700
	groupOtherBits  = 0o077
)

// ConfigLoader is the part of the config loader the checks use.
type ConfigLoader interface {
	Path() string
	Load(flags map[string]any) (*config.Config, error)
}

// ConfigFileChecker loads and validates the configuration file.
type ConfigFileChecker struct {
	loader ConfigLoader
}

// NewConfigFileChecker creates a ConfigFileChecker.
func NewConfigFileChecker(loader ConfigLoader) *ConfigFileChecker {
	return &ConfigFileChecker{loader: loader}
}

func (*ConfigFileChecker) Name() string       { return "Config file" }
func (*ConfigFileChecker) Category() Category { return CategoryConfig }

// Check implements HealthChecker.
func (c *ConfigFileChecker) Check(context.Context) CheckResult {
	path := c.loader.Path()

	cfg, err := c.loader.Load(nil)

	switch {
	case errors.Is(err, internalconfig.ErrInvalidPermissions):
		return FailError(c.Name(), "file is writable by other users").
			WithDetails(path).
			WithFixID(FixConfigPermissions)
	case err != nil:
		return FailError(c.Name(), firstLine(err.Error())).
			WithDetails(append([]string{path}, hintLines(err)...)...)
	case cfg.Path == "":
		return Pass(c.Name(), "not present, built-in fallbacks apply").WithDetails(path)
	default:
		return Pass(c.Name(), fmt.Sprintf("%d profile(s)", len(cfg.Profiles))).WithDetails(path)
	}
}

// ProfileCommandChecker verifies that profile commands resolve in PATH.
type ProfileCommandChecker struct {
	cfg   *config.Config
	tools execpkg.ToolChecker
}

// NewProfileCommandChecker creates a ProfileCommandChecker. cfg may be nil
// when the config failed to load.
func NewProfileCommandChecker(cfg *config.Config, tools execpkg.ToolChecker) *ProfileCommandChecker {
	return &ProfileCommandChecker{cfg: cfg, tools: tools}
}

func (*ProfileCommandChecker) Name() string       { return "Profile commands" }
func (*ProfileCommandChecker) Category() Category { return CategoryConfig }

// Check implements HealthChecker.
func (c *ProfileCommandChecker) Check(context.Context) CheckResult {
	if c.cfg == nil {
		return Skip(c.Name(), "config not loaded")
	}

	var (
		checked int
		missing []string
	)

	for _, p := range c.cfg.Profiles {
		if len(p.Command) == 0 {
			continue
		}

		checked++

		if !c.tools.IsAvailable(p.Command[0]) {
			missing = append(missing, fmt.Sprintf("profile %q: %s not found", p.Name, p.Command[0]))
		}
	}

	switch {
	case checked == 0:
		return Skip(c.Name(), "no profile defines a command")
	case len(missing) > 0:
		return FailWarning(c.Name(), fmt.Sprintf("%d of %d command(s) not found", len(missing), checked)).
			WithDetails(missing...)
	default:
		return Pass(c.Name(), fmt.Sprintf("%d command(s) found", checked))
	}
}

// BackendChecker reports which backend is configured.
type BackendChecker struct {
	backend config.Backend
	goos    string
}

// NewBackendChecker creates a BackendChecker.
func NewBackendChecker(backend config.Backend, goos string) *BackendChecker {
	return &BackendChecker{backend: backend, goos: goos}
}

func (*BackendChecker) Name() string       { return "Backend" }
func (*BackendChecker) Category() Category { return CategoryNotifier }

// Check implements HealthChecker.
func (c *BackendChecker) Check(context.Context) CheckResult {
	switch c.backend {
	case config.BackendNone:
		return FailWarning(c.Name(), "notifications are disabled").
			WithDetails(`set [notifier] backend = "auto" to enable them`)
	case config.BackendAuto:
		return Pass(c.Name(), "auto: "+strings.Join(autoOrder(c.goos), ", "))
	default:
		return Pass(c.Name(), string(c.backend))
	}
}

func autoOrder(goos string) []string {
	if usesSessionBus(goos) {
		return []string{string(config.BackendDBus), string(config.BackendExec), string(config.BackendBeeep)}
	}

	return []string{string(config.BackendExec), string(config.BackendBeeep)}
}

func usesSessionBus(goos string) bool {
	return goos != "darwin" && goos != "windows"
}

// severityFor returns how much a failing probe of backend matters given the
// configured one. ok is false when the probe is irrelevant.
func severityFor(configured, probed config.Backend) (Severity, bool) {
	switch configured {
	case probed:
		return SeverityError, true
	case config.BackendAuto:
		return SeverityWarning, true
	default:
		return SeverityInfo, false
	}
}

// SessionBusChecker queries org.freedesktop.Notifications.
type SessionBusChecker struct {
	backend config.Backend
	goos    string
	dial    notify.BusDialer
}

// NewSessionBusChecker creates a SessionBusChecker. A nil dial uses the
// real session bus.
func NewSessionBusChecker(backend config.Backend, goos string, dial notify.BusDialer) *SessionBusChecker {
	return &SessionBusChecker{backend: backend, goos: goos, dial: dial}
}

func (*SessionBusChecker) Name() string       { return "Notification server" }
func (*SessionBusChecker) Category() Category { return CategoryNotifier }

// Check implements HealthChecker.
func (c *SessionBusChecker) Check(ctx context.Context) CheckResult {
	if !usesSessionBus(c.goos) {
		return Skip(c.Name(), "no session bus on "+c.goos)
	}

	severity, relevant := severityFor(c.backend, config.BackendDBus)
	if !relevant {
		return Skip(c.Name(), "not used by the "+string(c.backend)+" backend")
	}

	ctx, cancel := context.WithTimeout(ctx, busProbeTimeout)
	defer cancel()

	info, err := notify.QueryServer(ctx, c.dial)
	if err != nil {
		return newResult(c.Name(), severity, StatusFail, "unreachable").WithDetails(err.Error())
	}

	return Pass(c.Name(), fmt.Sprintf("%s %s", info.Name, info.Version)).
		WithDetails(fmt.Sprintf("vendor %s, protocol %s", info.Vendor, info.SpecVersion))
}

// HelperToolChecker looks for the program the exec backend runs.
type HelperToolChecker struct {
	backend config.Backend
	goos    string
	tools   execpkg.ToolChecker
}

// NewHelperToolChecker creates a HelperToolChecker.
func NewHelperToolChecker(backend config.Backend, goos string, tools execpkg.ToolChecker) *HelperToolChecker {
	return &HelperToolChecker{backend: backend, goos: goos, tools: tools}
}

func (*HelperToolChecker) Name() string       { return "Helper program" }
func (*HelperToolChecker) Category() Category { return CategoryNotifier }

// Check implements HealthChecker.
func (c *HelperToolChecker) Check(context.Context) CheckResult {
	tool := notify.HelperTool(c.goos)

	severity, relevant := severityFor(c.backend, config.BackendExec)
	if !relevant {
		return Skip(c.Name(), "not used by the "+string(c.backend)+" backend")
	}

	if err := c.tools.RequireTool(tool); err != nil {
		return newResult(c.Name(), severity, StatusFail, tool+" not found").
			WithDetails(hintLines(err)...)
	}

	return Pass(c.Name(), tool)
}

// LogDirChecker verifies the log directory is private.
type LogDirChecker struct {
	dir string
}

// NewLogDirChecker creates a LogDirChecker.
func NewLogDirChecker(dir string) *LogDirChecker {
	return &LogDirChecker{dir: dir}
}

func (*LogDirChecker) Name() string       { return "Log directory" }
func (*LogDirChecker) Category() Category { return CategoryPaths }

// Check implements HealthChecker.
func (c *LogDirChecker) Check(context.Context) CheckResult {
	info, err := os.Stat(c.dir)

	switch {
	case errors.Is(err, os.ErrNotExist):
		return Skip(c.Name(), "not created yet").WithDetails(c.dir)
	case err != nil:
		return FailError(c.Name(), firstLine(err.Error())).WithDetails(c.dir)
	case !info.IsDir():
		return FailError(c.Name(), "not a directory").WithDetails(c.dir)
	case info.Mode().Perm()&groupOtherBits != 0:
		return FailWarning(c.Name(), fmt.Sprintf("mode %04o, expected %04o", info.Mode().Perm(), privateDirMode)).
			WithDetails(c.dir).
			WithFixID(FixLogDir)
	default:
		return Pass(c.Name(), "private").WithDetails(c.dir)
	}
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")

	return line
}

func hintLines(err error) []string {
	hints := errors.FlattenHints(err)
	if hints == "" {
		return nil
	}

	return strings.Split(hints, "\n")
}
