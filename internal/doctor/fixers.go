package doctor

import (
	"context"
	"os"

	"github.com/cockroachdb/errors"

	"github.com/smykla-skalski/notify-complete/internal/xdg"
)

const groupOtherWrite = 0o022

// ConfigPermissionsFixer removes group and other write permission from the
// config file.
type ConfigPermissionsFixer struct {
	path string
}

// NewConfigPermissionsFixer creates a ConfigPermissionsFixer for path.
func NewConfigPermissionsFixer(path string) *ConfigPermissionsFixer {
	return &ConfigPermissionsFixer{path: path}
}

func (*ConfigPermissionsFixer) ID() string { return FixConfigPermissions }

func (f *ConfigPermissionsFixer) Description() string {
	return "remove group and other write permission from " + f.path
}

// Fix implements Fixer.
func (f *ConfigPermissionsFixer) Fix(context.Context) error {
	info, err := os.Stat(f.path)
	if err != nil {
		return errors.Wrapf(err, "stat %s", f.path)
	}

	mode := info.Mode().Perm() &^ groupOtherWrite
	if err := os.Chmod(f.path, mode); err != nil {
		return errors.Wrapf(err, "chmod %s", f.path)
	}

	return nil
}

// LogDirFixer resets the log directory to mode 0700.
type LogDirFixer struct {
	dir string
}

// NewLogDirFixer creates a LogDirFixer for dir.
func NewLogDirFixer(dir string) *LogDirFixer {
	return &LogDirFixer{dir: dir}
}

func (*LogDirFixer) ID() string { return FixLogDir }

func (f *LogDirFixer) Description() string {
	return "restrict " + f.dir + " to its owner"
}

// Fix implements Fixer.
func (f *LogDirFixer) Fix(context.Context) error {
	return xdg.EnsureDir(f.dir)
}
