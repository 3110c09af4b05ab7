// Package pipeline drives the sync run: it walks the mapping table in order
// and reads, transforms and writes each entry, collecting per-entry outcomes
// into a report instead of aborting on the first problem.
package pipeline

import (
	"errors"
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/docsync/internal/config"
	"git.home.luguber.info/inful/docsync/internal/manifest"
	"git.home.luguber.info/inful/docsync/internal/mapping"
	"git.home.luguber.info/inful/docsync/internal/source"
	"git.home.luguber.info/inful/docsync/internal/transform"
	"git.home.luguber.info/inful/docsync/internal/writer"
)

// ErrConfiguration indicates the mapping table itself is broken. This aborts
// the run before any destination file is touched; it is a programming error
// in the table, not a transient condition.
var ErrConfiguration = errors.New("configuration error")

// Status classifies the outcome of one mapping entry. An expected absence
// (missing optional source document) and a real failure (disk write error)
// travel through different statuses so callers logging progress can tell
// them apart.
type Status string

const (
	// StatusSynced means the destination page was written.
	StatusSynced Status = "synced"
	// StatusSkipped means the source document was absent; the destination
	// was left untouched.
	StatusSkipped Status = "skipped"
	// StatusFailed means a hard error occurred for this entry (unreadable
	// source, failed write). Sibling entries still run.
	StatusFailed Status = "failed"
)

// EntryResult records what happened to a single mapping entry.
type EntryResult struct {
	Entry  mapping.Entry
	Status Status
	// Dest is the destination path written; set only for StatusSynced.
	Dest string
	// Err carries the failure for StatusFailed results.
	Err error
}

// Report aggregates a full sweep over the mapping table.
type Report struct {
	// Version is the application version extracted from the package
	// manifest, or manifest.VersionUnknown.
	Version string
	Results []EntryResult
}

// Count returns the number of entries that finished with the given status.
func (r *Report) Count(s Status) int {
	n := 0
	for _, res := range r.Results {
		if res.Status == s {
			n++
		}
	}
	return n
}

// HasFailures reports whether at least one entry hit a hard error. The
// process exit code must be non-zero in that case even though the sweep
// completed.
func (r *Report) HasFailures() bool {
	return r.Count(StatusFailed) > 0
}

// Run executes one full sweep. The mapping table is validated up front;
// a validation failure returns ErrConfiguration and nothing is written.
// All other problems are recorded per entry and the sweep always completes.
func Run(cfg *config.Config) (*Report, error) {
	if err := cfg.Mappings.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	appVersion, err := manifest.ReadVersion(cfg.ManifestPath())
	if err != nil {
		slog.Warn("Could not read package manifest", "path", cfg.ManifestPath(), "error", err)
		appVersion = manifest.VersionUnknown
	}

	report := &Report{Version: appVersion}
	for _, entry := range cfg.Mappings {
		result := syncEntry(cfg, entry)
		report.Results = append(report.Results, result)

		switch result.Status {
		case StatusSynced:
			slog.Info("Synced page", "source", entry.Source, "dest", result.Dest)
		case StatusSkipped:
			slog.Warn("Source document missing, skipping", "source", entry.Source, "dest", cfg.DestPath(entry))
		case StatusFailed:
			slog.Error("Failed to sync entry", "source", entry.Source, "dest", cfg.DestPath(entry), "error", result.Err)
		}
	}

	slog.Info("Sync complete",
		"synced", report.Count(StatusSynced),
		"skipped", report.Count(StatusSkipped),
		"failed", report.Count(StatusFailed),
		"app_version", report.Version)
	return report, nil
}

// syncEntry performs Read → Transform → Write for one entry. Each entry is
// small and bounded, so there is no retry and no cancellation surface.
func syncEntry(cfg *config.Config, entry mapping.Entry) EntryResult {
	doc, err := source.Read(cfg.RepoRoot, entry.Source)
	if err != nil {
		return EntryResult{Entry: entry, Status: StatusFailed, Err: fmt.Errorf("read source: %w", err)}
	}
	if !doc.Exists {
		return EntryResult{Entry: entry, Status: StatusSkipped}
	}

	page, err := transform.Page(doc.Content, entry.Title, entry.Description)
	if err != nil {
		return EntryResult{Entry: entry, Status: StatusFailed, Err: fmt.Errorf("transform: %w", err)}
	}

	written, err := writer.Write(cfg.DestPath(entry), page)
	if err != nil {
		return EntryResult{Entry: entry, Status: StatusFailed, Err: fmt.Errorf("write destination: %w", err)}
	}
	return EntryResult{Entry: entry, Status: StatusSynced, Dest: written}
}
