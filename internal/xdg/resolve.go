package xdg

import "os"

// ResolveFile prefers primaryPath and falls back to legacyPath.
// Returns primaryPath if: file exists there, or file doesn't exist anywhere (new file).
// Returns legacyPath only if: file exists there but not at the primary location.
func ResolveFile(primaryPath, legacyPath string) string {
	if fileExists(primaryPath) {
		return primaryPath
	}

	if fileExists(legacyPath) {
		return legacyPath
	}

	// Neither exists - use the primary location for new files
	return primaryPath
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}

	return !info.IsDir()
}
