// Package config loads the optional docsync configuration file. The tool is
// fully usable with no configuration at all; the file exists to relocate the
// repository root, content root or manifest, and to override the mapping
// table.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docsync/internal/mapping"
)

// Config represents the application configuration.
type Config struct {
	// RepoRoot is the directory the canonical source documents are resolved
	// against. Defaults to the current directory.
	RepoRoot string `yaml:"repo_root,omitempty"`
	// ContentRoot is the site content directory destination pages are
	// written under.
	ContentRoot string `yaml:"content_root,omitempty"`
	// Manifest is the package manifest the application version is read from,
	// relative to RepoRoot.
	Manifest string `yaml:"manifest,omitempty"`
	// Mappings overrides the built-in mapping table when non-empty.
	Mappings mapping.Table `yaml:"mappings,omitempty"`
}

// Default returns the configuration used when no config file is present.
func Default() *Config {
	return &Config{
		RepoRoot:    ".",
		ContentRoot: filepath.Join("site", "content"),
		Manifest:    filepath.Join("src-tauri", "Cargo.toml"),
		Mappings:    mapping.Default(),
	}
}

// Load loads configuration from the specified file.
func Load(configPath string) (*Config, error) {
	// Load .env file if it exists; its values may be referenced from the
	// YAML via ${VAR} expansion.
	if err := loadEnvFile(); err != nil {
		fmt.Fprintf(os.Stderr, "Note: .env file not found or couldn't be loaded: %v\n", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// LoadOrDefault loads the config file when it exists and falls back to
// Default otherwise, so the command stays invocable with no arguments.
func LoadOrDefault(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(configPath)
}

// ManifestPath returns the manifest location resolved against RepoRoot.
func (c *Config) ManifestPath() string {
	if filepath.IsAbs(c.Manifest) {
		return c.Manifest
	}
	return filepath.Join(c.RepoRoot, c.Manifest)
}

// DestPath returns the absolute destination for a mapping entry.
func (c *Config) DestPath(e mapping.Entry) string {
	if filepath.IsAbs(e.Dest) {
		return e.Dest
	}
	return filepath.Join(c.ContentRoot, e.Dest)
}

// Init creates a new configuration file with example content.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("failed to marshal example config: %w", err)
	}

	header := []byte("# docsync configuration\n# All paths are optional; the defaults below match a standard layout.\n")
	if err := os.WriteFile(configPath, append(header, data...), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func applyDefaults(cfg *Config) {
	def := Default()
	if cfg.RepoRoot == "" {
		cfg.RepoRoot = def.RepoRoot
	}
	if cfg.ContentRoot == "" {
		cfg.ContentRoot = def.ContentRoot
	}
	if cfg.Manifest == "" {
		cfg.Manifest = def.Manifest
	}
	if len(cfg.Mappings) == 0 {
		cfg.Mappings = def.Mappings
	}
}

func loadEnvFile() error {
	if _, err := os.Stat(".env"); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load()
}
