package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/smykla-skalski/notify-complete/internal/color"
	"github.com/smykla-skalski/notify-complete/pkg/config"
)

const unsetCell = "-"

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List the configured profiles",
	Long: `List the profiles in the configuration file, in file order.

Empty cells inherit from the "default" profile or the built-in fallbacks.`,
	Args: cobra.NoArgs,
	RunE: runProfiles,
}

func init() {
	rootCmd.AddCommand(profilesCmd)
}

func runProfiles(cmd *cobra.Command, _ []string) error {
	log := newLogger()
	defer closeLogger(log)

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	theme := color.NewTheme(false)

	if f, ok := out.(*os.File); ok {
		theme = color.NewTheme(color.Enabled(f, noColorFlag))
	}

	if cfg.Path == "" {
		fmt.Fprintf(out, "No config file at %s\n", newLoader().Path())

		return nil
	}

	if len(cfg.Profiles) == 0 {
		fmt.Fprintf(out, "No profiles in %s\n", cfg.Path)

		return nil
	}

	fmt.Fprintf(out, "%s\n", theme.Muted.Render(cfg.Path))

	return renderProfiles(out, cfg.Profiles, theme)
}

func renderProfiles(w io.Writer, profiles []config.Profile, theme color.Theme) error {
	t := tablewriter.NewTable(w,
		tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{
			Symbols: tw.NewSymbols(tw.StyleRounded),
		})),
		tablewriter.WithPadding(tw.Padding{Left: " ", Right: " "}),
	)

	t.Header([]string{"Profile", "Title", "Message", "Timeout", "Urgency", "Icon", "Command"})

	for _, p := range profiles {
		name := p.Name
		if name == config.DefaultProfileName {
			name += " *"
		}

		if err := t.Append([]string{
			theme.Name.Render(name),
			stringCell(p.Title),
			stringCell(p.Message),
			timeoutCell(p.Timeout),
			urgencyCell(p.Urgency),
			stringCell(p.Icon),
			commandCell(p.Command),
		}); err != nil {
			return err
		}
	}

	return t.Render()
}

func stringCell(s *string) string {
	if s == nil {
		return unsetCell
	}

	return *s
}

// timeoutCell renders millisecond timeouts with digit grouping, e.g. "15,000 ms".
func timeoutCell(t *config.Timeout) string {
	if t == nil {
		return unsetCell
	}

	if t.Kind() != config.TimeoutMilliseconds {
		return t.String()
	}

	return humanize.Comma(int64(min(t.Milliseconds(), uint64(1<<63-1)))) + " ms"
}

func urgencyCell(u *config.Urgency) string {
	if u == nil {
		return unsetCell
	}

	return u.String()
}

func commandCell(argv []string) string {
	if len(argv) == 0 {
		return unsetCell
	}

	return shellJoin(argv)
}
