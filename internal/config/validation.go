package config

import (
	"strconv"

	"github.com/cockroachdb/errors"
	"mvdan.cc/sh/v3/shell"

	"github.com/smykla-skalski/notify-complete/pkg/config"
)

var (
	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrEmptyProfileName is returned when a profile has no name.
	ErrEmptyProfileName = errors.New("profile name must not be empty")

	// ErrDuplicateProfile is returned when two profiles share a name.
	ErrDuplicateProfile = errors.New("duplicate profile name")

	// ErrInvalidCommand is returned when a profile command cannot be split into words.
	ErrInvalidCommand = errors.New("invalid profile command")
)

// Validator turns the decoded file into a validated Config.
type Validator struct {
	// env expands variables in profile commands. Nil uses the process environment.
	env func(string) string
}

// NewValidator creates a new Validator.
func NewValidator() *Validator {
	return &Validator{}
}

// NewValidatorWithEnv creates a Validator that expands command variables
// with env (for testing).
func NewValidatorWithEnv(env func(string) string) *Validator {
	return &Validator{env: env}
}

// Validate checks raw and converts it. All problems are reported together.
func (v *Validator) Validate(raw *config.File) (*config.Config, error) {
	if raw == nil {
		return nil, errors.WithMessage(ErrInvalidConfig, "config is nil")
	}

	var validationErrors []error

	cfg := &config.Config{
		Notifier: DefaultNotifierConfig(),
		Profiles: make([]config.Profile, 0, len(raw.Profiles)),
	}

	if raw.Notifier != nil {
		notifier, err := v.validateNotifier(raw.Notifier)
		if err != nil {
			validationErrors = append(validationErrors, err)
		}

		cfg.Notifier = notifier
	}

	seen := make(map[string]int, len(raw.Profiles))

	for i := range raw.Profiles {
		p, errs := v.validateProfile(i, &raw.Profiles[i])
		validationErrors = append(validationErrors, errs...)

		if p.Name == "" {
			continue
		}

		if first, dup := seen[p.Name]; dup {
			validationErrors = append(validationErrors, errors.Wrapf(
				ErrDuplicateProfile,
				"%q at positions %d and %d", p.Name, first+1, i+1,
			))

			continue
		}

		seen[p.Name] = i
		cfg.Profiles = append(cfg.Profiles, p)
	}

	if len(validationErrors) > 0 {
		return nil, errors.Mark(
			errors.Wrapf(
				combineErrors(validationErrors),
				"validation failed with %d error(s)",
				len(validationErrors),
			),
			ErrInvalidConfig,
		)
	}

	return cfg, nil
}

func (*Validator) validateNotifier(raw *config.NotifierConfig) (config.NotifierConfig, error) {
	out := DefaultNotifierConfig()

	backend, err := config.ParseBackend(string(raw.Backend))
	if err != nil {
		return out, err
	}

	out.Backend = backend

	if raw.AppName != "" {
		out.AppName = raw.AppName
	}

	return out, nil
}

// validateProfile parses one [[profile]] table. index is zero-based.
func (v *Validator) validateProfile(index int, raw *config.ProfileConfig) (config.Profile, []error) {
	var errs []error

	p := config.Profile{
		Name:    raw.Name,
		Title:   raw.Title,
		Message: raw.Message,
		Icon:    raw.Icon,
	}

	if raw.Name == "" {
		errs = append(errs, errors.Wrapf(ErrEmptyProfileName, "profile at position %d", index+1))
	}

	label := profileLabel(index, raw.Name)

	if raw.Timeout != nil {
		t, err := config.ParseTimeout(*raw.Timeout)
		if err != nil {
			errs = append(errs, errors.Wrapf(err, "%s", label))
		} else {
			p.Timeout = &t
		}
	}

	if raw.Urgency != nil {
		u, err := config.ParseUrgency(*raw.Urgency)
		if err != nil {
			errs = append(errs, errors.Wrapf(err, "%s", label))
		} else {
			p.Urgency = &u
		}
	}

	if raw.Command != nil {
		argv, err := shell.Fields(*raw.Command, v.env)
		if err != nil {
			errs = append(errs, errors.Wrapf(
				errors.Mark(err, ErrInvalidCommand), "%s: command %q", label, *raw.Command,
			))
		} else if len(argv) > 0 {
			p.Command = argv
		}
	}

	return p, errs
}

func profileLabel(index int, name string) string {
	if name == "" {
		return "profile #" + strconv.Itoa(index+1)
	}

	return "profile " + strconv.Quote(name)
}

// combineErrors combines multiple errors into a single error.
func combineErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	if len(errs) == 1 {
		return errs[0]
	}

	return errors.Join(errs...)
}
