// Package xdg provides centralized path management following XDG Base Directory conventions.
// All paths notify-complete touches on disk are defined here.
package xdg

import (
	"os"
	"path/filepath"
	"strings"

	adrgxdg "github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
)

const (
	appName        = "notify-complete"
	configFileName = "config.toml"
	logFileName    = "notify-complete.log"

	// ConfigEnvVar overrides the configuration file location.
	ConfigEnvVar = "NOTIFY_COMPLETE_CONFIG"

	// LogFileEnvVar overrides the log file location.
	LogFileEnvVar = "NOTIFY_COMPLETE_LOG_FILE"
)

func userHome() (string, error) {
	return os.UserHomeDir()
}

// --- XDG base directory functions ---

// ConfigHome returns $XDG_CONFIG_HOME or the platform config directory
// (~/.config on Linux, ~/Library/Application Support on macOS, %APPDATA% on Windows).
func ConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}

	return adrgxdg.ConfigHome
}

// StateHome returns $XDG_STATE_HOME or the platform state directory.
func StateHome() string {
	if v := os.Getenv("XDG_STATE_HOME"); v != "" {
		return v
	}

	return adrgxdg.StateHome
}

// LegacyConfigHome returns ~/.config regardless of platform.
func LegacyConfigHome() string {
	home, err := userHome()
	if err != nil {
		return filepath.Join("~", ".config")
	}

	return filepath.Join(home, ".config")
}

// --- notify-complete directories ---

// ConfigDir returns ConfigHome()/notify-complete.
func ConfigDir() string {
	return filepath.Join(ConfigHome(), appName)
}

// StateDir returns StateHome()/notify-complete.
func StateDir() string {
	return filepath.Join(StateHome(), appName)
}

// --- Specific file paths ---

// GlobalConfigFile returns ConfigDir()/config.toml.
func GlobalConfigFile() string {
	return filepath.Join(ConfigDir(), configFileName)
}

// LegacyConfigFile returns ~/.config/notify-complete/config.toml.
func LegacyConfigFile() string {
	return filepath.Join(LegacyConfigHome(), appName, configFileName)
}

// ConfigFile returns the configuration file to read.
// Respects NOTIFY_COMPLETE_CONFIG, otherwise the platform location with a
// fallback to the ~/.config location when only that one exists.
func ConfigFile() string {
	if v := os.Getenv(ConfigEnvVar); v != "" {
		return ExpandPathSilent(v)
	}

	return ResolveFile(GlobalConfigFile(), LegacyConfigFile())
}

// LogFile returns the log file path.
// Respects NOTIFY_COMPLETE_LOG_FILE, otherwise StateDir()/notify-complete.log.
func LogFile() string {
	if v := os.Getenv(LogFileEnvVar); v != "" {
		return ExpandPathSilent(v)
	}

	return filepath.Join(StateDir(), logFileName)
}

// --- Utility functions ---

// ExpandPath resolves ~ prefix to the user's home directory.
// Returns the path unchanged if it doesn't start with ~.
// Returns error for invalid tilde usage like "~foo".
func ExpandPath(path string) (string, error) {
	if len(path) == 0 || path[0] != '~' {
		return path, nil
	}

	home, err := userHome()
	if err != nil {
		return "", errors.Wrap(err, "failed to get home directory")
	}

	switch {
	case path == "~":
		return home, nil
	case strings.HasPrefix(path, "~/"):
		return filepath.Join(home, path[2:]), nil
	default:
		return "", errors.Newf("paths starting with ~ must be either ~ or ~/subdir, got %q", path)
	}
}

// ExpandPathSilent resolves ~ prefix, returning the original path on error.
func ExpandPathSilent(path string) string {
	expanded, err := ExpandPath(path)
	if err != nil {
		return path
	}

	return expanded
}

// EnsureDir creates a directory with 0700 permissions if it doesn't exist,
// and fixes permissions on existing directories if they're too open.
func EnsureDir(path string) error {
	const dirMode = 0o700

	if err := os.MkdirAll(path, dirMode); err != nil {
		return errors.Wrapf(err, "failed to create directory %s", path)
	}

	// MkdirAll only sets perms on new dirs. Fix existing ones if too open.
	info, err := os.Stat(path)
	if err != nil {
		return errors.Wrapf(err, "failed to stat directory %s", path)
	}

	if info.Mode().Perm() != dirMode {
		if err := os.Chmod(path, dirMode); err != nil {
			return errors.Wrapf(err, "failed to set permissions on %s", path)
		}
	}

	return nil
}
