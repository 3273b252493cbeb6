// Package config provides the configuration schema types for notify-complete.
package config

// DefaultProfileName is the reserved name of the profile that fills fields no
// other layer sets.
const DefaultProfileName = "default"

// File is the on-disk shape of the configuration file.
// Values are kept as strings here and parsed by the loader.
type File struct {
	// Notifier selects and configures the notification backend.
	Notifier *NotifierConfig `json:"notifier,omitempty" koanf:"notifier" toml:"notifier,omitempty"`

	// Profiles is the ordered list of [[profile]] tables.
	Profiles []ProfileConfig `json:"profile,omitempty" koanf:"profile" toml:"profile,omitempty"`
}

// ProfileConfig is a single [[profile]] table as written in the file.
type ProfileConfig struct {
	// Name identifies the profile. Required and unique.
	Name string `json:"name" jsonschema:"required,minLength=1" koanf:"name" toml:"name"`

	// Title is the notification summary.
	Title *string `json:"title,omitempty" koanf:"title" toml:"title,omitempty"`

	// Message is the notification body.
	Message *string `json:"message,omitempty" koanf:"message" toml:"message,omitempty"`

	// Timeout is "default", "never" or a number of milliseconds, written as a string.
	Timeout *string `json:"timeout,omitempty" jsonschema:"pattern=^(?i:default|never|[0-9]+)$" koanf:"timeout" toml:"timeout,omitempty"`

	// Urgency is one of "low", "normal" or "critical".
	Urgency *string `json:"urgency,omitempty" jsonschema:"enum=low,enum=normal,enum=critical" koanf:"urgency" toml:"urgency,omitempty"`

	// Icon is an icon name or a path to an image file.
	Icon *string `json:"icon,omitempty" koanf:"icon" toml:"icon,omitempty"`

	// Command runs when no command is given on the command line.
	// It is split into words with shell quoting rules.
	Command *string `json:"command,omitempty" koanf:"command" toml:"command,omitempty"`
}

// Profile is a validated, partially specified notification template.
// Nil fields inherit from the next-lower precedence layer.
type Profile struct {
	Name    string
	Title   *string
	Message *string
	Timeout *Timeout
	Urgency *Urgency
	Icon    *string
	Command []string
}

// Config is the validated configuration for one invocation. It is read-only
// once loaded.
type Config struct {
	// Notifier holds the backend settings with defaults applied.
	Notifier NotifierConfig

	// Profiles keeps the order of the file. Names are unique.
	Profiles []Profile

	// Path is the file the config was read from, empty when no file existed.
	Path string
}

// Profile returns the profile with the given name.
func (c *Config) Profile(name string) (*Profile, bool) {
	if c == nil {
		return nil, false
	}

	for i := range c.Profiles {
		if c.Profiles[i].Name == name {
			return &c.Profiles[i], true
		}
	}

	return nil, false
}

// DefaultProfile returns the "default" profile, or nil when there is none.
func (c *Config) DefaultProfile() *Profile {
	p, ok := c.Profile(DefaultProfileName)
	if !ok {
		return nil
	}

	return p
}

// ProfileNames returns the profile names in file order.
func (c *Config) ProfileNames() []string {
	if c == nil {
		return nil
	}

	names := make([]string, 0, len(c.Profiles))
	for _, p := range c.Profiles {
		names = append(names, p.Name)
	}

	return names
}
