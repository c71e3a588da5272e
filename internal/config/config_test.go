package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.LibraryDir)
	assert.Equal(t, filepath.Join(dir, "catalog.yaml"), cfg.CatalogFile)
	assert.Equal(t, filepath.Join(dir, "prompts"), cfg.PromptsDir)
	assert.Equal(t, "chatgpt", cfg.DefaultTool)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.Tools)
	assert.Equal(t, filepath.Join(dir, "logs", "prompt-catalog.log"), cfg.LogFile())
}

func TestLoad_DirFromEnvironment(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(DirEnv, dir)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.LibraryDir)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	abs := filepath.Join(t.TempDir(), "shared.yaml")
	content := `
catalog_file: ` + abs + `
prompts_dir: mine
default_tool: Claude
log_level: debug
tools:
  claude:
    base_url: https://claude.ai/new
  local:
    name: Local Model
    base_url: http://localhost:3000/chat
    query_param: text
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, abs, cfg.CatalogFile)
	assert.Equal(t, filepath.Join(dir, "mine"), cfg.PromptsDir)
	assert.Equal(t, "claude", cfg.DefaultTool)
	assert.Equal(t, "debug", cfg.LogLevel)

	require.Contains(t, cfg.Tools, "local")
	assert.Equal(t, "Local Model", cfg.Tools["local"].Name)
	assert.Equal(t, "text", cfg.Tools["local"].QueryParam)
	assert.Equal(t, "https://claude.ai/new", cfg.Tools["claude"].BaseURL)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("log_level: debug\n"), 0644))
	t.Setenv("PROMPT_CATALOG_LOG_LEVEL", "warn")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoad_Invalid(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("log_level: loud\n"), 0644))

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")

	broken := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(broken, "config.yaml"), []byte("tools: [\n"), 0644))
	_, err = Load(broken)
	assert.Error(t, err)
}
