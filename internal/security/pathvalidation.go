// Package security validates user-influenced output paths and file names.
package security

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// canonicalize resolves path to an absolute, symlink-free form. When the
// path itself does not exist yet, the nearest existing ancestor is resolved
// instead and the remaining components are rejoined, so a symlinked parent
// cannot smuggle a new file outside its apparent directory.
func canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	}

	probe := abs
	for {
		parent := filepath.Dir(probe)
		if parent == probe {
			return abs, nil
		}
		if resolved, err := filepath.EvalSymlinks(parent); err == nil {
			rel, _ := filepath.Rel(parent, abs)
			return filepath.Join(resolved, rel), nil
		}
		probe = parent
	}
}

// ValidatePathWithinDirectory rejects paths that resolve outside safeDir,
// including escapes through ".." components and symlinks.
func ValidatePathWithinDirectory(filePath, safeDir string) error {
	canonical, err := canonicalize(filePath)
	if err != nil {
		return err
	}

	absSafeDir, err := filepath.Abs(safeDir)
	if err != nil {
		return fmt.Errorf("failed to resolve safe directory path: %w", err)
	}
	canonicalSafeDir, err := filepath.EvalSymlinks(absSafeDir)
	if err != nil {
		return fmt.Errorf("failed to resolve safe directory symlinks: %w", err)
	}

	rel, err := filepath.Rel(canonicalSafeDir, canonical)
	if err != nil {
		return fmt.Errorf("path is outside safe directory: %w", err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel) {
		return fmt.Errorf("path traversal detected: %s attempts to escape %s", filePath, safeDir)
	}
	return nil
}

// ValidatePathWithinAllowedDirs accepts a path that sits inside any one of
// the allowed directories.
func ValidatePathWithinAllowedDirs(filePath string, allowedDirs []string) error {
	if len(allowedDirs) == 0 {
		return fmt.Errorf("no allowed directories specified")
	}
	for _, dir := range allowedDirs {
		if err := ValidatePathWithinDirectory(filePath, dir); err == nil {
			return nil
		}
	}
	return fmt.Errorf("path must be within one of the allowed directories: %v", allowedDirs)
}

// ValidateExportPath restricts generated output files to the temp directory
// or the current working directory.
func ValidateExportPath(filePath string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}
	return ValidatePathWithinAllowedDirs(filePath, []string{os.TempDir(), cwd})
}

// SanitizeFilename maps an arbitrary identifier to a safe file name
// fragment: ASCII letters, digits, dot, underscore and dash pass through,
// anything else collapses to a single underscore. The result is capped at
// 128 bytes and never empty.
func SanitizeFilename(s string) string {
	if s == "" {
		return "unknown"
	}

	const maxLen = 128
	var b strings.Builder
	pendingUnderscore := false
	for _, r := range s {
		if b.Len() >= maxLen {
			break
		}
		switch {
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'),
			r == '.' || r == '_' || r == '-':
			b.WriteRune(r)
			pendingUnderscore = false
		default:
			if !pendingUnderscore {
				b.WriteByte('_')
				pendingUnderscore = true
			}
		}
	}

	out := strings.Trim(b.String(), "._")
	if out == "" {
		return "unknown"
	}
	return out
}
