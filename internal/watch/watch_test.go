package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docsync/internal/config"
	"git.home.luguber.info/inful/docsync/internal/mapping"
)

func watchConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		RepoRoot:    t.TempDir(),
		ContentRoot: t.TempDir(),
		Manifest:    "Cargo.toml",
		Mappings:    mapping.Default(),
	}
}

func TestNew_MissingCallback_ReturnsError(t *testing.T) {
	_, err := New(watchConfig(t), time.Second, nil)
	require.Error(t, err)

	_, err = New(nil, time.Second, func() error { return nil })
	require.Error(t, err)
}

func TestNew_NonPositiveQuietWindow_UsesDefault(t *testing.T) {
	w, err := New(watchConfig(t), 0, func() error { return nil })
	require.NoError(t, err)
	assert.Equal(t, DefaultQuietWindow, w.quiet)
}

func TestWatchedFiles_CoverSourcesAndManifest(t *testing.T) {
	cfg := watchConfig(t)
	w, err := New(cfg, time.Second, func() error { return nil })
	require.NoError(t, err)

	files := w.watchedFiles()
	assert.Len(t, files, len(cfg.Mappings)+1)
	assert.Contains(t, files, filepath.Join(cfg.RepoRoot, "CHANGELOG.md"))
	assert.Contains(t, files, filepath.Join(cfg.RepoRoot, "Cargo.toml"))
}

func TestWatchDirs_DeduplicatesParents(t *testing.T) {
	cfg := watchConfig(t)
	w, err := New(cfg, time.Second, func() error { return nil })
	require.NoError(t, err)

	// All sources and the manifest share the repository root here.
	assert.Len(t, w.watchDirs(), 1)
}

func TestRun_NoWatchableDirectories_ReturnsError(t *testing.T) {
	cfg := watchConfig(t)
	cfg.RepoRoot = filepath.Join(cfg.RepoRoot, "does-not-exist")

	w, err := New(cfg, 10*time.Millisecond, func() error { return nil })
	require.NoError(t, err)

	err = w.Run(context.Background())
	require.Error(t, err)
}

func TestRun_SourceChange_TriggersSweepAfterQuietWindow(t *testing.T) {
	cfg := watchConfig(t)
	swept := make(chan struct{}, 8)
	w, err := New(cfg, 50*time.Millisecond, func() error {
		swept <- struct{}{}
		return nil
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Give the watcher a moment to register before producing events.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(cfg.RepoRoot, "CHANGELOG.md"), []byte("# Changelog\n"), 0o644))

	select {
	case <-swept:
	case <-time.After(5 * time.Second):
		t.Fatal("sweep was not triggered after source change")
	}

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop on context cancellation")
	}
}

func TestRun_UnrelatedFileChange_DoesNotTriggerSweep(t *testing.T) {
	cfg := watchConfig(t)
	swept := make(chan struct{}, 8)
	w, err := New(cfg, 50*time.Millisecond, func() error {
		swept <- struct{}{}
		return nil
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(cfg.RepoRoot, "notes.txt"), []byte("scratch\n"), 0o644))

	select {
	case <-swept:
		t.Fatal("sweep triggered by an unrelated file")
	case <-time.After(300 * time.Millisecond):
	}
}
