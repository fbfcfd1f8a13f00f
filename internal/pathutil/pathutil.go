// Package pathutil expands the user-facing paths found in chatdock's config
// and settings files.
package pathutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrEmpty is returned for blank paths.
var ErrEmpty = errors.New("path is empty")

// Expand trims path, replaces a leading ~ with the home directory and makes
// the result absolute.
func Expand(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", ErrEmpty
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}

// Resolve expands path, or fallback when path is blank.
func Resolve(path, fallback string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return Expand(fallback)
	}
	return Expand(path)
}

// ExpandOr expands path and returns it unchanged when expansion fails.
func ExpandOr(path string) string {
	expanded, err := Expand(path)
	if err != nil {
		return path
	}
	return expanded
}
