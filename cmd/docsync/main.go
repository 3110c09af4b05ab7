package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docsync/internal/config"
	"git.home.luguber.info/inful/docsync/internal/pipeline"
	"git.home.luguber.info/inful/docsync/internal/version"
	"git.home.luguber.info/inful/docsync/internal/watch"
)

var CLI struct {
	Config  string `short:"c" help:"Configuration file path" default:"docsync.yaml"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Sync struct {
		RepoRoot    string `short:"r" help:"Repository root containing the canonical documents"`
		ContentRoot string `short:"o" help:"Site content directory to write pages into"`
	} `cmd:"" help:"Sync canonical documents into the site content tree"`

	Check struct {
		RepoRoot    string `short:"r" help:"Repository root containing the canonical documents"`
		ContentRoot string `short:"o" help:"Site content directory to compare against"`
	} `cmd:"" help:"Report what a sync would change without writing anything"`

	Watch struct {
		RepoRoot    string        `short:"r" help:"Repository root containing the canonical documents"`
		ContentRoot string        `short:"o" help:"Site content directory to write pages into"`
		Quiet       time.Duration `help:"Quiet window before a change triggers a sync" default:"2s"`
	} `cmd:"" help:"Watch the canonical documents and re-sync on change"`

	Init struct {
		Force bool `help:"Overwrite existing configuration file"`
	} `cmd:"" help:"Initialize a new configuration file"`

	Version struct{} `cmd:"" help:"Print the docsync version"`
}

func main() {
	ctx := kong.Parse(&CLI)

	// Set up logging
	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	switch ctx.Command() {
	case "sync":
		cfg, err := loadConfig(CLI.Sync.RepoRoot, CLI.Sync.ContentRoot)
		if err != nil {
			slog.Error("Failed to load configuration", "error", err)
			os.Exit(1)
		}
		os.Exit(runSync(cfg))
	case "check":
		cfg, err := loadConfig(CLI.Check.RepoRoot, CLI.Check.ContentRoot)
		if err != nil {
			slog.Error("Failed to load configuration", "error", err)
			os.Exit(1)
		}
		os.Exit(runCheck(cfg))
	case "watch":
		cfg, err := loadConfig(CLI.Watch.RepoRoot, CLI.Watch.ContentRoot)
		if err != nil {
			slog.Error("Failed to load configuration", "error", err)
			os.Exit(1)
		}
		if err := runWatch(cfg, CLI.Watch.Quiet); err != nil {
			slog.Error("Watch failed", "error", err)
			os.Exit(1)
		}
	case "init":
		if err := config.Init(CLI.Config, CLI.Init.Force); err != nil {
			slog.Error("Init failed", "error", err)
			os.Exit(1)
		}
		slog.Info("Configuration written", "path", CLI.Config)
	case "version":
		fmt.Printf("docsync %s (built %s, commit %s)\n", version.Version, version.BuildTime, version.GitCommit)
	}
}

// loadConfig reads the config file when present (built-in defaults
// otherwise) and applies command-line path overrides on top.
func loadConfig(repoRoot, contentRoot string) (*config.Config, error) {
	cfg, err := config.LoadOrDefault(CLI.Config)
	if err != nil {
		return nil, err
	}
	if repoRoot != "" {
		cfg.RepoRoot = repoRoot
	}
	if contentRoot != "" {
		cfg.ContentRoot = contentRoot
	}
	return cfg, nil
}

// runSync executes one sweep and maps the report onto the process exit code:
// 0 for a clean sweep (missing sources included), 1 for a configuration
// error or any hard per-entry failure.
func runSync(cfg *config.Config) int {
	report, err := pipeline.Run(cfg)
	if err != nil {
		if errors.Is(err, pipeline.ErrConfiguration) {
			slog.Error("Mapping table rejected", "error", err)
		} else {
			slog.Error("Sync failed", "error", err)
		}
		return 1
	}
	if report.HasFailures() {
		return 1
	}
	return 0
}

func runCheck(cfg *config.Config) int {
	results, err := pipeline.Check(cfg)
	if err != nil {
		slog.Error("Check failed", "error", err)
		return 1
	}

	dirty := 0
	for _, res := range results {
		if res.State != pipeline.CheckUpToDate && res.State != pipeline.CheckMissingSource {
			dirty++
		}
	}
	if dirty > 0 {
		slog.Warn("Destination pages out of date", "count", dirty)
		return 1
	}
	return 0
}

func runWatch(cfg *config.Config, quiet time.Duration) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	w, err := watch.New(cfg, quiet, func() error {
		report, err := pipeline.Run(cfg)
		if err != nil {
			return err
		}
		if report.HasFailures() {
			return fmt.Errorf("%d entries failed", report.Count(pipeline.StatusFailed))
		}
		return nil
	})
	if err != nil {
		return err
	}

	// One sweep up front so the content tree is current before waiting.
	if report, err := pipeline.Run(cfg); err != nil {
		return err
	} else if report.HasFailures() {
		slog.Warn("Initial sweep had failures", "failed", report.Count(pipeline.StatusFailed))
	}

	return w.Run(ctx)
}
