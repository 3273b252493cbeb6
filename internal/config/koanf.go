// Package config provides internal configuration loading and processing.
package config

import (
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	tomlparser "github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/smykla-skalski/notify-complete/internal/xdg"
	"github.com/smykla-skalski/notify-complete/pkg/config"
)

var (
	// ErrConfigNotFound is returned when an explicitly requested config file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")

	// ErrConfigParse is returned when the config file is not valid TOML or
	// does not match the expected shape.
	ErrConfigParse = errors.New("failed to parse configuration")

	// ErrInvalidPermissions is returned when config file has insecure permissions.
	ErrInvalidPermissions = errors.New("config file has insecure permissions")
)

const (
	// EnvPrefix is the prefix of environment variables that override the config.
	EnvPrefix = "NOTIFY_COMPLETE_"

	// envSection is the only config table environment variables may set.
	envSection = "notifier"

	worldWritable = 0o002
)

// KoanfLoader loads the configuration file. Precedence (highest first):
//  1. CLI flags
//  2. Environment variables (NOTIFY_COMPLETE_NOTIFIER_*)
//  3. The config file
//  4. Defaults
type KoanfLoader struct {
	k        *koanf.Koanf
	path     string
	explicit bool
	environ  func() []string
}

// NewKoanfLoader creates a KoanfLoader for the default config file location.
func NewKoanfLoader() *KoanfLoader {
	return &KoanfLoader{
		path:    xdg.ConfigFile(),
		environ: os.Environ,
	}
}

// NewKoanfLoaderWithPath creates a KoanfLoader for an explicitly chosen file.
// Unlike the default location, a missing explicit file is an error.
func NewKoanfLoaderWithPath(path string) *KoanfLoader {
	return &KoanfLoader{
		path:     xdg.ExpandPathSilent(path),
		explicit: true,
		environ:  os.Environ,
	}
}

// WithEnviron replaces the environment the loader reads (for testing).
func (l *KoanfLoader) WithEnviron(environ func() []string) *KoanfLoader {
	l.environ = environ

	return l
}

// Path returns the config file path the loader reads.
func (l *KoanfLoader) Path() string {
	return l.path
}

// Load reads, decodes and validates the configuration. flags holds CLI
// overrides keyed by config path, e.g. "notifier.backend".
func (l *KoanfLoader) Load(flags map[string]any) (*config.Config, error) {
	raw, found, err := l.LoadRaw(flags)
	if err != nil {
		return nil, err
	}

	cfg, err := NewValidator().Validate(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid config %s", l.path)
	}

	if found {
		cfg.Path = l.path
	}

	return cfg, nil
}

// LoadRaw reads and decodes the configuration without validating it.
// found reports whether the config file existed.
func (l *KoanfLoader) LoadRaw(flags map[string]any) (*config.File, bool, error) {
	l.k = koanf.New(".")

	if err := l.k.Load(confmap.Provider(defaultsToMap(), "."), nil); err != nil {
		return nil, false, errors.Wrap(err, "failed to load defaults")
	}

	found, err := l.loadFile()
	if err != nil {
		return nil, false, err
	}

	envOpt := env.Opt{
		Prefix:        EnvPrefix,
		TransformFunc: envTransform,
		EnvironFunc:   l.environ,
	}

	if err := l.k.Load(env.Provider(".", envOpt), nil); err != nil {
		return nil, false, errors.Wrap(err, "failed to load env vars")
	}

	if len(flags) > 0 {
		if err := l.k.Load(confmap.Provider(flags, "."), nil); err != nil {
			return nil, false, errors.Wrap(err, "failed to load flags")
		}
	}

	var raw config.File

	decoderConfig := CustomDecoderConfig()
	decoderConfig.Result = &raw

	if err := l.k.UnmarshalWithConf("", &raw, koanf.UnmarshalConf{
		Tag:           "koanf",
		DecoderConfig: decoderConfig,
	}); err != nil {
		return nil, found, parseError(err, l.path)
	}

	return &raw, found, nil
}

func (l *KoanfLoader) loadFile() (bool, error) {
	info, err := os.Stat(l.path)
	if err != nil {
		if !os.IsNotExist(err) {
			return false, errors.Wrapf(err, "failed to read config %s", l.path)
		}

		if l.explicit {
			return false, errors.WithHint(
				errors.Wrapf(ErrConfigNotFound, "%s", l.path),
				"run `notify-complete init --config "+l.path+"` to create it",
			)
		}

		return false, nil
	}

	if info.Mode().Perm()&worldWritable != 0 {
		return false, errors.WithHintf(
			errors.Wrapf(ErrInvalidPermissions, "%s is world-writable (mode: %s)", l.path, info.Mode().Perm()),
			"run `chmod o-w %s`", l.path,
		)
	}

	if err := l.k.Load(file.Provider(l.path), tomlparser.Parser()); err != nil {
		return false, parseError(err, l.path)
	}

	return true, nil
}

// parseError keeps the ErrConfigParse text in the message and its identity
// for errors.Is.
func parseError(err error, path string) error {
	return errors.Mark(errors.Wrapf(err, "%s: %s", ErrConfigParse, path), ErrConfigParse)
}

// envTransform maps NOTIFY_COMPLETE_NOTIFIER_APP_NAME to notifier.app_name.
// Variables outside the notifier table are ignored.
func envTransform(key, value string) (string, any) {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))

	section, field, ok := strings.Cut(key, "_")
	if !ok || section != envSection || field == "" {
		return "", nil
	}

	return section + "." + field, value
}
