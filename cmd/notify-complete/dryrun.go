package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
	"mvdan.cc/sh/v3/syntax"

	"github.com/smykla-skalski/notify-complete/internal/resolve"
	"github.com/smykla-skalski/notify-complete/internal/runner"
	"github.com/smykla-skalski/notify-complete/pkg/config"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
	formatTOML = "toml"
)

// runDryRun resolves and prints the plan. A missing command is allowed so
// profiles can be inspected without one.
func runDryRun(cmd *cobra.Command, ov resolve.Overrides, cfg *config.Config) error {
	plan, err := resolve.NewResolver().Resolve(ov, cfg)
	if err != nil && !errors.Is(err, resolve.ErrNoCommand) {
		return err
	}

	return renderPlan(cmd.OutOrStdout(), plan, outputFormat)
}

func renderPlan(w io.Writer, plan resolve.Plan, format string) error {
	switch strings.ToLower(format) {
	case formatText:
		return renderPlanText(w, plan)
	case formatJSON:
		data, err := json.MarshalIndent(plan, "", "  ")
		if err != nil {
			return errors.Wrap(err, "encoding plan as JSON")
		}

		_, err = fmt.Fprintln(w, string(data))

		return err
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)

		if err := enc.Encode(plan); err != nil {
			return errors.Wrap(err, "encoding plan as YAML")
		}

		return enc.Close()
	case formatTOML:
		if err := toml.NewEncoder(w).Encode(plan); err != nil {
			return errors.Wrap(err, "encoding plan as TOML")
		}

		return nil
	default:
		return errors.WithHint(
			errors.Mark(errors.Newf("unknown output format %q", format), runner.ErrUsage),
			"valid formats are: text, json, yaml, toml",
		)
	}
}

func renderPlanText(w io.Writer, plan resolve.Plan) error {
	n := plan.Notification

	profile := plan.Profile
	if profile == "" {
		profile = "(none)"
	}

	rows := [][2]string{
		{"profile", profile},
		{"command", shellJoin(plan.Command)},
		{"title", n.Title},
		{"message", n.Message},
		{"timeout", n.Timeout.String()},
		{"urgency", n.Urgency.String()},
		{"icon", n.Icon},
	}

	for _, row := range rows {
		if _, err := fmt.Fprintf(w, "%-8s %s\n", row[0]+":", row[1]); err != nil {
			return err
		}
	}

	return nil
}

// shellJoin renders argv so that it can be pasted back into a shell.
func shellJoin(argv []string) string {
	words := make([]string, 0, len(argv))

	for _, arg := range argv {
		quoted, err := syntax.Quote(arg, syntax.LangBash)
		if err != nil {
			quoted = strconv.Quote(arg)
		}

		words = append(words, quoted)
	}

	return strings.Join(words, " ")
}
