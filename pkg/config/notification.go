package config

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrInvalidBackend is returned when an unknown notifier backend is configured.
var ErrInvalidBackend = errors.New("invalid notifier backend")

// DefaultAppName is the application name reported to the notification server.
const DefaultAppName = "notify-complete"

// Backend names a notification delivery mechanism.
type Backend string

const (
	// BackendAuto picks the best available backend for the platform.
	BackendAuto Backend = "auto"

	// BackendDBus talks to org.freedesktop.Notifications on the session bus.
	BackendDBus Backend = "dbus"

	// BackendExec shells out to notify-send, osascript or PowerShell.
	BackendExec Backend = "exec"

	// BackendBeeep uses the cross-platform beeep library.
	BackendBeeep Backend = "beeep"

	// BackendNone disables delivery. The notification is only logged.
	BackendNone Backend = "none"
)

var backends = []Backend{BackendAuto, BackendDBus, BackendExec, BackendBeeep, BackendNone}

// ParseBackend parses a backend name case-insensitively. An empty string
// selects BackendAuto.
func ParseBackend(raw string) (Backend, error) {
	if raw == "" {
		return BackendAuto, nil
	}

	lowered := Backend(strings.ToLower(raw))
	for _, b := range backends {
		if b == lowered {
			return b, nil
		}
	}

	return BackendAuto, errors.WithHint(
		errors.Wrapf(ErrInvalidBackend, "%q", raw),
		"valid backends are: auto, dbus, exec, beeep, none",
	)
}

// NotifierConfig configures notification delivery.
type NotifierConfig struct {
	// Backend is one of auto, dbus, exec, beeep or none.
	// Default: "auto"
	Backend Backend `json:"backend,omitempty" jsonschema:"enum=auto,enum=dbus,enum=exec,enum=beeep,enum=none" koanf:"backend" toml:"backend,omitempty"`

	// AppName is reported to the notification server as the sending application.
	// Default: "notify-complete"
	AppName string `json:"app_name,omitempty" koanf:"app_name" toml:"app_name,omitempty"`
}

// Notification is a fully resolved notification. Every field is populated.
type Notification struct {
	Title   string  `json:"title" toml:"title" yaml:"title"`
	Message string  `json:"message" toml:"message" yaml:"message"`
	Timeout Timeout `json:"timeout" toml:"timeout" yaml:"timeout"`
	Urgency Urgency `json:"urgency" toml:"urgency" yaml:"urgency"`
	Icon    string  `json:"icon" toml:"icon" yaml:"icon"`
}
