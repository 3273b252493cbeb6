// Package resolve merges command-line overrides with configured profiles
// into the notification that is sent after the command finishes.
package resolve

import (
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/smykla-skalski/notify-complete/pkg/config"
)

var (
	// ErrProfileNotFound is returned when the selected profile is not configured.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrNoCommand is returned when neither the command line nor a profile
	// names a command to run.
	ErrNoCommand = errors.New("no command to run")
)

const (
	// FallbackTitle is used when no layer sets a title.
	FallbackTitle = "notify-complete"

	// FallbackMessage is used when no layer sets a message.
	FallbackMessage = "Command has finished"
)

// Overrides are the values given on the command line. Nil means unset.
type Overrides struct {
	Title   *string
	Message *string
	Timeout *config.Timeout
	Urgency *config.Urgency
	Icon    *string

	// Profile selects a named profile.
	Profile *string

	// Command is the argv to run. Empty means unset.
	Command []string
}

// Fallbacks are the values used when neither the overrides nor any profile
// set a field.
type Fallbacks struct {
	Title   string
	Message string
	Timeout config.Timeout
	Urgency config.Urgency
	Icon    string
}

// DefaultFallbacks returns the built-in fallbacks.
func DefaultFallbacks() Fallbacks {
	return Fallbacks{
		Title:   FallbackTitle,
		Message: FallbackMessage,
		Timeout: config.TimeoutDefault(),
		Urgency: config.UrgencyNormal,
		Icon:    "",
	}
}

// Plan is the outcome of resolution: what to run and what to send afterwards.
type Plan struct {
	Notification config.Notification `json:"notification" toml:"notification" yaml:"notification"`
	Command      []string            `json:"command" toml:"command" yaml:"command"`

	// Profile is the selected profile name, empty when none was selected.
	Profile string `json:"profile,omitempty" toml:"profile,omitempty" yaml:"profile,omitempty"`
}

// Resolver merges overrides, profiles and fallbacks.
type Resolver struct {
	fallbacks Fallbacks
}

// NewResolver creates a Resolver with the built-in fallbacks.
func NewResolver() *Resolver {
	return NewResolverWithFallbacks(DefaultFallbacks())
}

// NewResolverWithFallbacks creates a Resolver with custom fallbacks.
func NewResolverWithFallbacks(fallbacks Fallbacks) *Resolver {
	return &Resolver{fallbacks: fallbacks}
}

// Resolve builds the Plan. Each field takes the first value set by, in order,
// the overrides, the selected profile, the "default" profile and the
// fallbacks. The only failures are an unknown selected profile and a missing
// command. Resolve does not modify its inputs.
func (r *Resolver) Resolve(ov Overrides, cfg *config.Config) (Plan, error) {
	var selected *config.Profile

	if ov.Profile != nil {
		p, ok := cfg.Profile(*ov.Profile)
		if !ok {
			return Plan{}, profileNotFound(*ov.Profile, cfg)
		}

		selected = p
	}

	defaults := cfg.DefaultProfile()

	layers := []*config.Profile{selected, defaults}

	plan := Plan{
		Notification: config.Notification{
			Title: pick(ov.Title, layers, func(p *config.Profile) *string {
				return p.Title
			}, r.fallbacks.Title),
			Message: pick(ov.Message, layers, func(p *config.Profile) *string {
				return p.Message
			}, r.fallbacks.Message),
			Timeout: pick(ov.Timeout, layers, func(p *config.Profile) *config.Timeout {
				return p.Timeout
			}, r.fallbacks.Timeout),
			Urgency: pick(ov.Urgency, layers, func(p *config.Profile) *config.Urgency {
				return p.Urgency
			}, r.fallbacks.Urgency),
			Icon: pick(ov.Icon, layers, func(p *config.Profile) *string {
				return p.Icon
			}, r.fallbacks.Icon),
		},
		Command: resolveCommand(ov.Command, layers),
	}

	if selected != nil {
		plan.Profile = selected.Name
	}

	if len(plan.Command) == 0 {
		return plan, errors.WithHint(
			ErrNoCommand,
			"pass a command after the flags, e.g. notify-complete -- make build, "+
				"or set `command` in a profile",
		)
	}

	return plan, nil
}

// pick returns the first value set by the override or a profile layer.
// Nil layers are skipped.
func pick[T any](override *T, layers []*config.Profile, field func(*config.Profile) *T, fallback T) T {
	if override != nil {
		return *override
	}

	for _, layer := range layers {
		if layer == nil {
			continue
		}

		if v := field(layer); v != nil {
			return *v
		}
	}

	return fallback
}

func resolveCommand(argv []string, layers []*config.Profile) []string {
	if len(argv) > 0 {
		return append([]string(nil), argv...)
	}

	for _, layer := range layers {
		if layer != nil && len(layer.Command) > 0 {
			return append([]string(nil), layer.Command...)
		}
	}

	return nil
}

func profileNotFound(name string, cfg *config.Config) error {
	err := errors.Wrapf(ErrProfileNotFound, "%q", name)

	names := cfg.ProfileNames()
	if len(names) == 0 {
		return errors.WithHint(err, "no profiles are configured; run `notify-complete init` to create a config")
	}

	return errors.WithHintf(err, "available profiles: %s", strings.Join(names, ", "))
}
