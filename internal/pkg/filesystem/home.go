package filesystem

import (
	"os"
	"path/filepath"
)

// UserHomeDir returns the current user's home directory.
// If the home directory cannot be determined, it returns "." as a fallback.
func UserHomeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

// RelayDir returns the application state directory (~/.relay).
func RelayDir() string {
	return filepath.Join(UserHomeDir(), ".relay")
}

// ExpandPath resolves ~/ prefixes and relative paths against the home
// directory.
func ExpandPath(path string) string {
	if path == "" {
		return RelayDir()
	}
	if filepath.IsAbs(path) {
		return path
	}
	if len(path) > 1 && path[:2] == "~/" {
		return filepath.Join(UserHomeDir(), path[2:])
	}
	return filepath.Clean(path)
}
