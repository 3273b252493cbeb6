package config

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml/v2"

	"github.com/smykla-skalski/notify-complete/internal/schema"
	"github.com/smykla-skalski/notify-complete/pkg/config"
)

const (
	// ConfigFileMode is the file mode for configuration files (user read/write only).
	ConfigFileMode = 0o600

	// ConfigDirMode is the file mode for configuration directories (user rwx only).
	ConfigDirMode = 0o700

	sampleHeader = `# notify-complete configuration.
#
# Select a profile with --profile NAME. The "default" profile fills in
# anything the command line and the selected profile leave unset.
# timeout is "default", "never" or a number of milliseconds.
# urgency is "low", "normal" or "critical".
`
)

// ErrConfigExists is returned when writing would overwrite an existing file.
var ErrConfigExists = errors.New("configuration file already exists")

// Writer handles writing configuration to TOML files.
type Writer struct {
	force bool
}

// NewWriter creates a Writer that refuses to overwrite existing files.
func NewWriter() *Writer {
	return &Writer{}
}

// NewWriterWithForce creates a Writer that overwrites existing files when
// force is true.
func NewWriterWithForce(force bool) *Writer {
	return &Writer{force: force}
}

// SampleFile returns the file written by `notify-complete init`.
func SampleFile() *config.File {
	str := func(s string) *string { return &s }
	d := DefaultNotifierConfig()

	return &config.File{
		Notifier: &d,
		Profiles: []config.ProfileConfig{
			{
				Name:    config.DefaultProfileName,
				Title:   str("Command finished"),
				Timeout: str("default"),
				Urgency: str("normal"),
			},
			{
				Name:    "alert",
				Title:   str("Done"),
				Message: str("Your command has finished"),
				Timeout: str("never"),
				Urgency: str("critical"),
				Icon:    str("dialog-information"),
			},
		},
	}
}

// Encode renders raw as TOML, preceded by the schema directive.
func (*Writer) Encode(raw *config.File) ([]byte, error) {
	if raw == nil {
		return nil, errors.Wrap(ErrInvalidConfig, "config is nil")
	}

	var buf bytes.Buffer

	buf.WriteString(schema.SchemaDirective())
	buf.WriteByte('\n')
	buf.WriteString(sampleHeader)
	buf.WriteByte('\n')

	encoder := toml.NewEncoder(&buf)
	encoder.SetIndentTables(true)

	if err := encoder.Encode(raw); err != nil {
		return nil, errors.Wrap(err, "failed to encode config to TOML")
	}

	return buf.Bytes(), nil
}

// WriteFile writes raw to path, creating parent directories.
func (w *Writer) WriteFile(path string, raw *config.File) error {
	if !w.force {
		if _, err := os.Stat(path); err == nil {
			return errors.WithHint(
				errors.Wrapf(ErrConfigExists, "%s", path),
				"use --force to overwrite it",
			)
		}
	}

	data, err := w.Encode(raw)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, ConfigDirMode); err != nil {
		return errors.Wrapf(err, "failed to create directory %s", dir)
	}

	if err := os.WriteFile(path, data, ConfigFileMode); err != nil {
		return errors.Wrapf(err, "failed to write config file %s", path)
	}

	return nil
}
