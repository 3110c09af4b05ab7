// Package manifest extracts the application version from the package
// manifest. The version is treated as opaque text and used for informational
// logging only; it is never parsed into components here.
package manifest

import (
	"errors"
	"os"
	"regexp"
	"strings"
)

// VersionUnknown is reported when the manifest has no version declaration or
// is absent entirely. Neither condition is an error.
const VersionUnknown = "unknown"

var (
	sectionRe = regexp.MustCompile(`(?m)^\s*\[`)
	versionRe = regexp.MustCompile(`(?m)^\s*version\s*=\s*"([^"]*)"`)
)

// ExtractVersion returns the value of the first version declaration inside
// the manifest's [package] section, or VersionUnknown when none exists.
//
// The search window is bounded by the next section header so version keys in
// dependency sections are never matched. Manifests without an explicit
// [package] header are scanned from the top under the same rule.
func ExtractVersion(text string) string {
	window := text
	if idx := strings.Index(text, "[package]"); idx >= 0 {
		window = text[idx+len("[package]"):]
	}
	if loc := sectionRe.FindStringIndex(window); loc != nil {
		window = window[:loc[0]]
	}

	m := versionRe.FindStringSubmatch(window)
	if m == nil || m[1] == "" {
		return VersionUnknown
	}
	return m[1]
}

// ReadVersion reads the manifest at path and extracts the version. A missing
// manifest yields VersionUnknown without an error; other read failures are
// returned as-is.
func ReadVersion(path string) (string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return VersionUnknown, nil
	}
	if err != nil {
		return VersionUnknown, err
	}
	return ExtractVersion(string(data)), nil
}
