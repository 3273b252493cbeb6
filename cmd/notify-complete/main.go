// Package main provides the CLI entry point for notify-complete.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/smykla-skalski/notify-complete/internal/color"
	internalconfig "github.com/smykla-skalski/notify-complete/internal/config"
	execpkg "github.com/smykla-skalski/notify-complete/internal/exec"
	"github.com/smykla-skalski/notify-complete/internal/notify"
	"github.com/smykla-skalski/notify-complete/internal/resolve"
	"github.com/smykla-skalski/notify-complete/internal/runner"
	"github.com/smykla-skalski/notify-complete/internal/xdg"
	"github.com/smykla-skalski/notify-complete/pkg/config"
	"github.com/smykla-skalski/notify-complete/pkg/logger"
)

var (
	titleFlag    string
	messageFlag  string
	timeoutFlag  string
	urgencyFlag  string
	profileFlag  string
	iconFlag     string
	configPath   string
	backendFlag  string
	outputFormat string
	dryRun       bool
	debugMode    bool
	traceMode    bool
	noColorFlag  bool

	// exitCode is the child's status, set by run.
	exitCode int
)

func main() {
	os.Exit(mainWithExitCode())
}

func mainWithExitCode() int {
	exitCode = 0

	if err := rootCmd.Execute(); err != nil {
		printError(err)

		return runner.ExitCodeFor(err)
	}

	return exitCode
}

var rootCmd = &cobra.Command{
	Use:   "notify-complete [flags] [--] command [args...]",
	Short: "Run a command and show a desktop notification when it finishes",
	Long: `Run a command to completion and then raise a desktop notification.

The notification is built from the command-line flags, the profile selected
with --profile, the "default" profile and built-in fallbacks, in that order.
Flags must come before the command. Use -- when the command is named like a
subcommand.`,
	Args:              cobra.ArbitraryArgs,
	RunE:              run,
	SilenceErrors:     true,
	SilenceUsage:      true,
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
}

func init() {
	flags := rootCmd.Flags()
	flags.SetInterspersed(false)

	flags.StringVarP(&titleFlag, "title", "t", "", "Notification title")
	flags.StringVarP(&messageFlag, "message", "m", "", "Notification message")
	flags.StringVarP(&timeoutFlag, "timeout", "o", "", `Display time: "default", "never" or milliseconds`)
	flags.StringVarP(&urgencyFlag, "urgency", "u", "", "Urgency: low, normal or critical")
	flags.StringVarP(&profileFlag, "profile", "p", "", "Profile from the config file")
	flags.StringVarP(&iconFlag, "icon", "i", "", "Icon name or image path")
	flags.StringVar(&backendFlag, "backend", "", "Notifier backend: auto, dbus, exec, beeep or none")
	flags.BoolVar(&dryRun, "dry-run", false, "Print the resolved notification and command without running anything")
	flags.StringVar(&outputFormat, "output", formatText, "Dry-run output format: text, json, yaml or toml")

	persistent := rootCmd.PersistentFlags()
	persistent.StringVarP(
		&configPath,
		"config",
		"c",
		"",
		"Path to the configuration file (default: $XDG_CONFIG_HOME/notify-complete/config.toml)",
	)
	persistent.BoolVar(&debugMode, "debug", false, "Enable debug logging")
	persistent.BoolVar(&traceMode, "trace", false, "Enable trace logging")
	persistent.BoolVar(&noColorFlag, "no-color", false, "Disable colored output")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return errors.Mark(err, runner.ErrUsage)
	})
}

func run(cmd *cobra.Command, args []string) error {
	if versionRequested {
		fmt.Print(versionString())

		return nil
	}

	log := newLogger()
	defer closeLogger(log)

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}

	ov, err := overridesFromFlags(cmd, args)
	if err != nil {
		return err
	}

	if dryRun {
		return runDryRun(cmd, ov, cfg)
	}

	notifier, err := notify.New(cfg.Notifier, log)
	if err != nil {
		return err
	}

	r := runner.New(resolve.NewResolver(), execpkg.NewInteractiveRunner(), notifier, log)

	result, err := r.Run(context.Background(), ov, cfg)
	if err != nil {
		return err
	}

	if result.NotifyErr != nil {
		printWarning(result.NotifyErr)
	}

	exitCode = result.ExitCode()

	return nil
}

func newLoader() *internalconfig.KoanfLoader {
	if configPath != "" {
		return internalconfig.NewKoanfLoaderWithPath(configPath)
	}

	return internalconfig.NewKoanfLoader()
}

func loadConfig(log logger.Logger) (*config.Config, error) {
	loader := newLoader()

	var flags map[string]any
	if backendFlag != "" {
		flags = map[string]any{"notifier.backend": backendFlag}
	}

	cfg, err := loader.Load(flags)
	if err != nil {
		log.Error("failed to load config", "path", loader.Path(), "error", err)

		return nil, err
	}

	log.Debug("config loaded",
		"path", loader.Path(),
		"found", cfg.Path != "",
		"profiles", len(cfg.Profiles),
		"backend", string(cfg.Notifier.Backend),
	)

	return cfg, nil
}

// overridesFromFlags collects the flags the user actually set. An explicitly
// empty value still counts as set.
func overridesFromFlags(cmd *cobra.Command, args []string) (resolve.Overrides, error) {
	flags := cmd.Flags()
	ov := resolve.Overrides{Command: args}

	if flags.Changed("title") {
		ov.Title = &titleFlag
	}

	if flags.Changed("message") {
		ov.Message = &messageFlag
	}

	if flags.Changed("icon") {
		ov.Icon = &iconFlag
	}

	if flags.Changed("profile") {
		ov.Profile = &profileFlag
	}

	if flags.Changed("timeout") {
		t, err := config.ParseTimeout(timeoutFlag)
		if err != nil {
			return ov, errors.Wrap(err, "--timeout")
		}

		ov.Timeout = &t
	}

	if flags.Changed("urgency") {
		u, err := config.ParseUrgency(urgencyFlag)
		if err != nil {
			return ov, errors.Wrap(err, "--urgency")
		}

		ov.Urgency = &u
	}

	return ov, nil
}

func newLogger() logger.Logger {
	log, err := logger.NewFileLogger(xdg.LogFile(), logger.VerbosityFromFlags(debugMode, traceMode))
	if err != nil {
		return logger.NewNoOpLogger()
	}

	// Concurrent invocations share the file.
	return log.With("pid", os.Getpid())
}

func closeLogger(log logger.Logger) {
	if c, ok := log.(interface{ Close() error }); ok {
		_ = c.Close()
	}
}

func printError(err error) {
	theme := color.NewTheme(color.Enabled(os.Stderr, noColorFlag))

	fmt.Fprintf(os.Stderr, "%s %v\n", theme.Error.Render("Error:"), err)
	printHints(err, theme)
}

func printWarning(err error) {
	theme := color.NewTheme(color.Enabled(os.Stderr, noColorFlag))

	fmt.Fprintf(os.Stderr, "%s %v\n", theme.Hint.Render("Warning:"), err)
	printHints(err, theme)
}

func printHints(err error, theme color.Theme) {
	if hints := errors.FlattenHints(err); hints != "" {
		fmt.Fprintf(os.Stderr, "%s %s\n", theme.Hint.Render("Hint:"), hints)
	}
}
