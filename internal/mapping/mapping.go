// Package mapping defines the static table that drives the sync run: which
// canonical source documents are propagated, where each one lands in the site
// content tree, and the page metadata the site templating layer requires.
package mapping

import (
	"errors"
	"fmt"
)

// Sentinel errors for table validation. A validation failure is a programming
// or configuration error in the table itself, never a transient condition.
var (
	ErrDuplicateDestination = errors.New("duplicate destination path in mapping table")
	ErrMissingSource        = errors.New("mapping entry has empty source path")
	ErrMissingDestination   = errors.New("mapping entry has empty destination path")
	ErrMissingTitle         = errors.New("mapping entry has empty title")
	ErrMissingDescription   = errors.New("mapping entry has empty description")
)

// Entry pairs one canonical source document with exactly one destination page
// and the metadata the destination frontmatter must carry.
type Entry struct {
	// Source is the document path relative to the repository root.
	Source string `yaml:"source"`
	// Dest is the page path relative to the site content root.
	Dest string `yaml:"dest"`
	// Title and Description are synthesized into the page frontmatter. The
	// downstream templating layer renders its own top-level heading from
	// Title, which is why the transform strips the document's own H1.
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// Table is an ordered sequence of entries. Order is execution order and log
// order; entries carry no semantic dependency on one another.
type Table []Entry

// Default returns the built-in mapping table. Adding a synced document is a
// data change here, not a new code path.
func Default() Table {
	return Table{
		{
			Source:      "CHANGELOG.md",
			Dest:        "changelog.md",
			Title:       "Changelog",
			Description: "Release notes and version history",
		},
		{
			Source:      "ROADMAP.md",
			Dest:        "roadmap.md",
			Title:       "Roadmap",
			Description: "Planned features and development direction",
		},
		{
			Source:      "CONTRIBUTING.md",
			Dest:        "contributing.md",
			Title:       "Contributing",
			Description: "How to contribute to the project",
		},
		{
			Source:      "SECURITY.md",
			Dest:        "privacy.md",
			Title:       "Privacy & Security",
			Description: "Security and privacy policy",
		},
	}
}

// Validate checks the table invariants: every entry fully populated and no two
// entries writing the same destination. It reports the first violation found,
// identifying the offending entry by index and path.
func (t Table) Validate() error {
	seen := make(map[string]int, len(t))
	for i, e := range t {
		switch {
		case e.Source == "":
			return fmt.Errorf("entry %d: %w", i, ErrMissingSource)
		case e.Dest == "":
			return fmt.Errorf("entry %d (%s): %w", i, e.Source, ErrMissingDestination)
		case e.Title == "":
			return fmt.Errorf("entry %d (%s): %w", i, e.Source, ErrMissingTitle)
		case e.Description == "":
			return fmt.Errorf("entry %d (%s): %w", i, e.Source, ErrMissingDescription)
		}
		if prev, dup := seen[e.Dest]; dup {
			return fmt.Errorf("entries %d and %d both write %q: %w", prev, i, e.Dest, ErrDuplicateDestination)
		}
		seen[e.Dest] = i
	}
	return nil
}
