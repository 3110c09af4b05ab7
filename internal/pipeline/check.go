package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"git.home.luguber.info/inful/docsync/internal/config"
	"git.home.luguber.info/inful/docsync/internal/frontmatter"
	"git.home.luguber.info/inful/docsync/internal/mapping"
	"git.home.luguber.info/inful/docsync/internal/source"
	"git.home.luguber.info/inful/docsync/internal/transform"
)

// CheckState describes how a destination page relates to its source document
// without writing anything.
type CheckState string

const (
	// CheckUpToDate means the destination matches what a sync would write.
	CheckUpToDate CheckState = "up-to-date"
	// CheckStale means the destination exists but differs from the rendered
	// source.
	CheckStale CheckState = "stale"
	// CheckMissingDest means the source exists but the destination page has
	// never been written.
	CheckMissingDest CheckState = "missing-dest"
	// CheckMissingSource means the source document is absent.
	CheckMissingSource CheckState = "missing-source"
	// CheckInvalid means the destination exists but its frontmatter does not
	// parse; the page was likely hand-edited.
	CheckInvalid CheckState = "invalid"
)

// CheckResult is the dry-run outcome for one mapping entry.
type CheckResult struct {
	Entry mapping.Entry
	State CheckState
	Err   error
}

// Check performs a dry run: for every mapping entry it renders the page in
// memory and compares it with what is on disk. Nothing is written. Like Run,
// it validates the table first and refuses to proceed on a broken table.
func Check(cfg *config.Config) ([]CheckResult, error) {
	if err := cfg.Mappings.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	results := make([]CheckResult, 0, len(cfg.Mappings))
	for _, entry := range cfg.Mappings {
		res := checkEntry(cfg, entry)
		results = append(results, res)
		slog.Info("Checked page", "source", entry.Source, "dest", cfg.DestPath(entry), "state", res.State)
	}
	return results, nil
}

func checkEntry(cfg *config.Config, entry mapping.Entry) CheckResult {
	doc, err := source.Read(cfg.RepoRoot, entry.Source)
	if err != nil {
		return CheckResult{Entry: entry, State: CheckInvalid, Err: err}
	}
	if !doc.Exists {
		return CheckResult{Entry: entry, State: CheckMissingSource}
	}

	want, err := transform.Page(doc.Content, entry.Title, entry.Description)
	if err != nil {
		return CheckResult{Entry: entry, State: CheckInvalid, Err: err}
	}

	got, err := os.ReadFile(cfg.DestPath(entry))
	if errors.Is(err, os.ErrNotExist) {
		return CheckResult{Entry: entry, State: CheckMissingDest}
	}
	if err != nil {
		return CheckResult{Entry: entry, State: CheckInvalid, Err: err}
	}

	if meta, _, had, err := frontmatter.Split(got); err != nil || !had {
		return CheckResult{Entry: entry, State: CheckInvalid, Err: err}
	} else if _, err := frontmatter.Parse(meta); err != nil {
		return CheckResult{Entry: entry, State: CheckInvalid, Err: err}
	}

	if !bytes.Equal(want, got) {
		return CheckResult{Entry: entry, State: CheckStale}
	}
	return CheckResult{Entry: entry, State: CheckUpToDate}
}
