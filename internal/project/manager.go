package project

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/phravins/genstudio/pkg/utils"
)

// Manager resolves where projects are created.
type Manager struct {
	Workspace string
}

func NewManager(workspace string) *Manager {
	if workspace == "" {
		workspace, _ = os.Getwd()
	}
	return &Manager{Workspace: ExpandPath(workspace)}
}

// ValidateParentDir checks if the path exists and is a directory
func (m *Manager) ValidateParentDir(path string) (string, error) {
	if path == "" {
		path = m.Workspace
	}
	expanded := ExpandPath(path)
	if !utils.PathExists(expanded) {
		return "", fmt.Errorf("directory does not exist: %s", expanded)
	}
	if !utils.DirExists(expanded) {
		return "", fmt.Errorf("path is not a directory: %s", expanded)
	}
	return expanded, nil
}

// ExpandPath expands a leading ~ and environment variables.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err == nil {
			if path == "~" {
				return home
			}
			if strings.HasPrefix(path, "~/") || strings.HasPrefix(path, "~\\") {
				return filepath.Join(home, path[2:])
			}
		}
	}
	return os.ExpandEnv(path)
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slug turns a template name into a folder-friendly base name.
func Slug(s string) string {
	s = strings.ReplaceAll(strings.ToLower(s), "+", "p")
	s = strings.Trim(nonSlug.ReplaceAllString(s, "-"), "-")
	if s == "" {
		return "project"
	}
	return s
}

// SuggestName returns "<slug>-project", numbered until nothing in dir has that name.
func (m *Manager) SuggestName(templateName, dir string) string {
	if dir == "" {
		dir = m.Workspace
	}
	base := Slug(templateName) + "-project"

	name := base
	for counter := 1; ; counter++ {
		if !utils.PathExists(filepath.Join(dir, name)) && !utils.PathExists(filepath.Join(dir, name+".zip")) {
			return name
		}
		name = fmt.Sprintf("%s-%02d", base, counter)
	}
}
