// Package watch re-runs the sync sweep whenever a canonical source document
// or the package manifest changes on disk.
//
// Editors typically replace files via rename, so the watcher observes the
// parent directories rather than the files themselves and filters events
// down to the paths the mapping table cares about. Bursts of events are
// coalesced behind a quiet window before a sweep is triggered.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/docsync/internal/config"
)

// DefaultQuietWindow is the debounce applied between the last observed
// change and the triggered sweep.
const DefaultQuietWindow = 2 * time.Second

// Watcher observes source documents and triggers sweeps.
type Watcher struct {
	cfg   *config.Config
	quiet time.Duration
	sweep func() error
}

// New creates a watcher that calls sweep after changes settle. A
// non-positive quiet window falls back to DefaultQuietWindow.
func New(cfg *config.Config, quiet time.Duration, sweep func() error) (*Watcher, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if sweep == nil {
		return nil, fmt.Errorf("sweep callback is required")
	}
	if quiet <= 0 {
		quiet = DefaultQuietWindow
	}
	return &Watcher{cfg: cfg, quiet: quiet, sweep: sweep}, nil
}

// Run blocks until ctx is cancelled, triggering a sweep after each quiet
// window that follows a relevant change. A failing sweep is logged and the
// watcher keeps running; the next change gets a fresh attempt.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer fsw.Close()

	interesting := w.watchedFiles()
	added := 0
	for _, dir := range w.watchDirs() {
		if _, err := os.Stat(dir); err != nil {
			slog.Debug("Watch directory absent, skipping", "dir", dir)
			continue
		}
		if err := fsw.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		added++
	}
	if added == 0 {
		return fmt.Errorf("no watchable directories exist")
	}

	slog.Info("Watching for document changes", "dirs", added, "quiet_window", w.quiet)

	timer := time.NewTimer(w.quiet)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if _, watched := interesting[filepath.Clean(ev.Name)]; !watched {
				continue
			}
			slog.Debug("Change detected", "path", ev.Name, "op", ev.Op.String())
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(w.quiet)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			slog.Warn("File watcher error", "error", err)
		case <-timer.C:
			if err := w.sweep(); err != nil {
				slog.Error("Sweep failed", "error", err)
			}
		}
	}
}

// watchedFiles returns the set of absolute paths whose changes trigger a
// sweep: every source document plus the package manifest.
func (w *Watcher) watchedFiles() map[string]struct{} {
	files := make(map[string]struct{}, len(w.cfg.Mappings)+1)
	for _, e := range w.cfg.Mappings {
		files[absClean(filepath.Join(w.cfg.RepoRoot, e.Source))] = struct{}{}
	}
	files[absClean(w.cfg.ManifestPath())] = struct{}{}
	return files
}

// watchDirs returns the unique parent directories of all watched files.
func (w *Watcher) watchDirs() []string {
	seen := make(map[string]struct{})
	dirs := make([]string, 0, len(w.cfg.Mappings)+1)
	for file := range w.watchedFiles() {
		dir := filepath.Dir(file)
		if _, ok := seen[dir]; ok {
			continue
		}
		seen[dir] = struct{}{}
		dirs = append(dirs, dir)
	}
	return dirs
}

func absClean(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}
