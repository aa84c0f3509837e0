package pathutils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ToHomePathFormat rewrites an absolute path under $HOME as ~/...
func ToHomePathFormat(path string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	rel, err := filepath.Rel(home, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path, nil
	}
	if rel == "." {
		return "~", nil
	}
	return "~/" + filepath.ToSlash(rel), nil
}

// ToAbsolutePath expands a leading ~ and cleans the result.
func ToAbsolutePath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return filepath.Clean(path), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
