package pathutils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func homeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return home, nil
}

// ToHomePathFormat shortens a path below $HOME to "~/...", for display.
func ToHomePathFormat(path string) (string, error) {
	home, err := homeDir()
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(home, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, "../") {
		return path, nil
	}
	if rel == "." {
		return "~", nil
	}
	return "~/" + rel, nil
}

// ToAbsolutePath expands a leading "~"; other paths are returned unchanged.
func ToAbsolutePath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := homeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, path[1:]), nil
}
