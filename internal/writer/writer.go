// Package writer persists destination pages with all-or-nothing semantics.
package writer

import (
	"fmt"
	"os"
	"path/filepath"
)

// Write replaces the file at path with content, creating missing parent
// directories first. The content is staged in a temporary file next to the
// destination and renamed into place, so a crash mid-write never leaves a
// partially written page. Returns the path written.
func Write(path string, content []byte) (string, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create destination directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".docsync-*")
	if err != nil {
		return "", fmt.Errorf("create temporary file in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("write temporary file %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close temporary file %s: %w", tmpPath, err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return "", fmt.Errorf("chmod temporary file %s: %w", tmpPath, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return "", fmt.Errorf("replace destination file %s: %w", path, err)
	}
	return path, nil
}
