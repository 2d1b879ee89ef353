package utils

import (
	"path/filepath"
	"strings"
)

// SanitisePath converts a branch name to a valid directory name
// by replacing path separators with - to prevent nested directories
func SanitisePath(name string) string {
	name = strings.ReplaceAll(name, "/", "-")
	if filepath.Separator != '/' {
		name = strings.ReplaceAll(name, string(filepath.Separator), "-")
	}
	return name
}

// SamePath reports whether a and b refer to the same location once cleaned
// and with symlinks resolved. Paths that cannot be resolved are compared
// lexically.
func SamePath(a, b string) bool {
	return resolve(a) == resolve(b)
}

func resolve(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	if real, err := filepath.EvalSymlinks(abs); err == nil {
		return real
	}
	return abs
}
