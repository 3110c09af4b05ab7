package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_MappingTableIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Mappings.Validate())
	assert.Equal(t, ".", cfg.RepoRoot)
	assert.NotEmpty(t, cfg.ContentRoot)
	assert.NotEmpty(t, cfg.Manifest)
}

func TestLoad_PartialFile_AppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "docsync.yaml")
	require.NoError(t, os.WriteFile(path, []byte("content_root: website/content\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "website/content", cfg.ContentRoot)
	assert.Equal(t, ".", cfg.RepoRoot)
	assert.Equal(t, Default().Mappings, cfg.Mappings)
}

func TestLoad_MappingOverride_ReplacesBuiltinTable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "docsync.yaml")
	content := `mappings:
  - source: NEWS.md
    dest: news.md
    title: News
    description: Project news
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Len(t, cfg.Mappings, 1)
	assert.Equal(t, "NEWS.md", cfg.Mappings[0].Source)
	assert.Equal(t, "news.md", cfg.Mappings[0].Dest)
	assert.Equal(t, "News", cfg.Mappings[0].Title)
}

func TestLoad_ExpandsEnvironmentVariables(t *testing.T) {
	t.Setenv("DOCSYNC_TEST_ROOT", "/srv/app")

	dir := t.TempDir()
	path := filepath.Join(dir, "docsync.yaml")
	require.NoError(t, os.WriteFile(path, []byte("repo_root: ${DOCSYNC_TEST_ROOT}\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/app", cfg.RepoRoot)
}

func TestLoad_MissingFile_ReturnsError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoadOrDefault_MissingFile_ReturnsDefaults(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestDestPath_JoinsContentRoot(t *testing.T) {
	cfg := &Config{ContentRoot: "site/content"}
	assert.Equal(t, filepath.Join("site", "content", "changelog.md"),
		cfg.DestPath(Default().Mappings[0]))
}

func TestManifestPath_JoinsRepoRoot(t *testing.T) {
	cfg := &Config{RepoRoot: "/repo", Manifest: "src-tauri/Cargo.toml"}
	assert.Equal(t, filepath.Join("/repo", "src-tauri", "Cargo.toml"), cfg.ManifestPath())
}

func TestInit_ExistingFileWithoutForce_ReturnsError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "docsync.yaml")
	require.NoError(t, os.WriteFile(path, []byte("repo_root: .\n"), 0o644))

	require.Error(t, Init(path, false))
	require.NoError(t, Init(path, true))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Mappings.Validate())
}
