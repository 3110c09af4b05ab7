// Package source loads canonical documents from the repository tree.
//
// A missing document is an expected condition during early project lifecycle
// (no CHANGELOG yet, for example) and is reported through the Exists flag
// rather than an error. Any other I/O failure is a real error for that
// document only.
package source

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrOutsideRoot indicates a document path that resolves outside the
// repository root. This only happens with a broken mapping override.
var ErrOutsideRoot = errors.New("source path escapes repository root")

// Document is a canonical source document read fresh on every run. There is
// no caching across runs; documents are small and staleness bugs cost more
// than the re-read.
type Document struct {
	// Path is the absolute path the document was read from.
	Path string
	// Content is the raw document text. Empty when Exists is false.
	Content []byte
	// Exists reports whether the document was present on disk.
	Exists bool
}

// Read loads the document at rel, resolved against the repository root.
// A missing file returns Exists=false and a nil error.
func Read(root, rel string) (Document, error) {
	path, err := resolve(root, rel)
	if err != nil {
		return Document{}, err
	}

	content, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Document{Path: path}, nil
	}
	if err != nil {
		return Document{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Document{Path: path, Content: content, Exists: true}, nil
}

// resolve joins rel onto root and rejects paths that escape the root after
// cleaning (".." components, absolute paths).
func resolve(root, rel string) (string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolve repository root %s: %w", root, err)
	}

	path := filepath.Clean(rel)
	if !filepath.IsAbs(path) {
		path = filepath.Clean(filepath.Join(absRoot, rel))
	}
	if path != absRoot && !strings.HasPrefix(path, absRoot+string(filepath.Separator)) {
		return "", fmt.Errorf("%q: %w", rel, ErrOutsideRoot)
	}
	return path, nil
}
