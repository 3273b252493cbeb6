package main

import (
	"context"
	"os"
	"runtime"
	"slices"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/smykla-skalski/notify-complete/internal/color"
	internalconfig "github.com/smykla-skalski/notify-complete/internal/config"
	"github.com/smykla-skalski/notify-complete/internal/doctor"
	"github.com/smykla-skalski/notify-complete/internal/doctor/reporters"
	execpkg "github.com/smykla-skalski/notify-complete/internal/exec"
	"github.com/smykla-skalski/notify-complete/internal/runner"
	"github.com/smykla-skalski/notify-complete/internal/xdg"
)

var (
	doctorFix        bool
	doctorVerbose    bool
	doctorCategories []string
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the configuration and notification setup",
	Long: `Check that the configuration loads, that the selected notification
backend can deliver and that the log directory is private.

Exits non-zero when a check fails with error severity. --fix repairs file
permissions where possible.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	flags := doctorCmd.Flags()
	flags.BoolVar(&doctorFix, "fix", false, "Apply available fixes")
	flags.BoolVar(&doctorVerbose, "verbose", false, "Show check details")
	flags.StringSliceVar(&doctorCategories, "category", nil, "Only run these categories: config, notifier, paths")

	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	log := newLogger()
	defer closeLogger(log)

	categories, err := parseCategories(doctorCategories)
	if err != nil {
		return err
	}

	loader := newLoader()

	var flags map[string]any
	if backendFlag != "" {
		flags = map[string]any{"notifier.backend": backendFlag}
	}

	// A broken config is reported by the config check; the notifier checks
	// fall back to the defaults.
	cfg, loadErr := loader.Load(flags)
	notifier := internalconfig.DefaultNotifierConfig()

	if loadErr == nil {
		notifier = cfg.Notifier
	} else {
		cfg = nil
	}

	tools := execpkg.NewToolChecker()

	registry := doctor.NewRegistry()
	registry.RegisterChecker(
		doctor.NewConfigFileChecker(loader),
		doctor.NewProfileCommandChecker(cfg, tools),
		doctor.NewBackendChecker(notifier.Backend, runtime.GOOS),
		doctor.NewSessionBusChecker(notifier.Backend, runtime.GOOS, nil),
		doctor.NewHelperToolChecker(notifier.Backend, runtime.GOOS, tools),
		doctor.NewLogDirChecker(xdg.StateDir()),
	)
	registry.RegisterFixer(
		doctor.NewConfigPermissionsFixer(loader.Path()),
		doctor.NewLogDirFixer(xdg.StateDir()),
	)

	out := cmd.OutOrStdout()
	theme := color.NewTheme(false)
	width := 0

	if f, ok := out.(*os.File); ok {
		theme = color.NewTheme(color.Enabled(f, noColorFlag))
		width = reporters.TerminalWidth(f)
	}

	doc := doctor.NewRunner(registry, reporters.NewTableReporter(out, theme, width), log)

	_, err = doc.Run(context.Background(), doctor.Options{
		Fix:        doctorFix,
		Verbose:    doctorVerbose,
		Categories: categories,
	})

	return err
}

func parseCategories(raw []string) ([]doctor.Category, error) {
	categories := make([]doctor.Category, 0, len(raw))

	for _, name := range raw {
		cat := doctor.Category(name)

		if !slices.Contains(doctor.Categories(), cat) {
			return nil, errors.WithHint(
				errors.Mark(errors.Newf("unknown check category %q", name), runner.ErrUsage),
				"valid categories are: config, notifier, paths",
			)
		}

		categories = append(categories, cat)
	}

	return categories, nil
}
