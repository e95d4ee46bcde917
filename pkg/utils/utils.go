package utils

import (
	"os"
	"os/exec"
	"path/filepath"
)

// FileExists returns true if the given path exists and is a file
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// DirExists returns true if the given path exists and is a directory
func DirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// PathExists reports whether anything lives at path.
func PathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// FindExecutable attempts to find an executable by name in PATH or fallback glob patterns.
func FindExecutable(cmdName string, fallbackGlobs []string) string {
	if path, err := exec.LookPath(cmdName); err == nil {
		return path
	}
	for _, pattern := range fallbackGlobs {
		matches, err := filepath.Glob(pattern)
		if err == nil && len(matches) > 0 {
			return matches[0]
		}
	}
	return ""
}
