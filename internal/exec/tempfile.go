package exec

//go:generate mockgen -source=tempfile.go -destination=tempfile_mock.go -package=exec

import (
	"os"

	"github.com/cockroachdb/errors"
)

// TempFileManager writes short-lived helper files, such as scripts handed
// to an interpreter.
type TempFileManager interface {
	// Create writes content to a new file matching pattern in the temp dir.
	// The returned cleanup removes the file and is safe to call more than once.
	Create(pattern, content string) (path string, cleanup func(), err error)
}

type tempFileManager struct {
	dir string
}

// NewTempFileManager creates a TempFileManager using os.TempDir.
func NewTempFileManager() TempFileManager {
	return &tempFileManager{}
}

func (m *tempFileManager) Create(pattern, content string) (string, func(), error) {
	f, err := os.CreateTemp(m.dir, pattern)
	if err != nil {
		return "", func() {}, errors.Wrap(err, "creating temp file")
	}

	path := f.Name()
	cleanup := func() { _ = os.Remove(path) }

	if _, err := f.WriteString(content); err != nil {
		_ = f.Close()

		cleanup()

		return "", func() {}, errors.Wrapf(err, "writing %s", path)
	}

	if err := f.Close(); err != nil {
		cleanup()

		return "", func() {}, errors.Wrapf(err, "closing %s", path)
	}

	return path, cleanup, nil
}
