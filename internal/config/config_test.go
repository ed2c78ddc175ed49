package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:5000", cfg.Extractor.BaseURL)
	assert.Equal(t, 60*time.Second, cfg.Extractor.Timeout)
	assert.Equal(t, 0, cfg.Extractor.MaxRetries)
	assert.Equal(t, "gemini-2.5-flash", cfg.Gemini.Model)
	assert.Equal(t, "generated_resume.tex", cfg.Output.Resume)
	assert.Equal(t, "cover_letter.txt", cfg.Output.CoverLetter)
	assert.Equal(t, "prompt_template.txt", cfg.PromptTemplate)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
extractor:
  base_url: http://extractor.internal:9000
  timeout: 90s
  max_retries: 3
  retry_base_delay: 500ms
gemini:
  model: gemini-2.5-pro
output:
  resume_path: out/resume.tex
  cover_letter_path: out/letter.txt
prompt_template: prompts/custom.txt
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://extractor.internal:9000", cfg.Extractor.BaseURL)
	assert.Equal(t, 90*time.Second, cfg.Extractor.Timeout)
	assert.Equal(t, 3, cfg.Extractor.MaxRetries)
	assert.Equal(t, 500*time.Millisecond, cfg.Extractor.RetryBaseDelay)
	assert.Equal(t, "gemini-2.5-pro", cfg.Gemini.Model)
	assert.Equal(t, "out/resume.tex", cfg.Output.Resume)
	assert.Equal(t, "out/letter.txt", cfg.Output.CoverLetter)
	assert.Equal(t, "prompts/custom.txt", cfg.PromptTemplate)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("gemini:\n  model: gemini-2.5-pro\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "gemini-2.5-pro", cfg.Gemini.Model)
	assert.Equal(t, "http://127.0.0.1:5000", cfg.Extractor.BaseURL)
}

func TestLoadInvalidDuration(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("extractor:\n  timeout: soon\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("EXTRACTOR_URL", "http://10.0.0.5:5000")
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("GEMINI_MODEL", "gemini-2.5-flash-lite")
	t.Setenv("DATABASE_URL", "postgres://localhost/resume_pilot")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "http://10.0.0.5:5000", cfg.Extractor.BaseURL)
	assert.Equal(t, "test-key", cfg.Gemini.APIKey)
	assert.Equal(t, "gemini-2.5-flash-lite", cfg.Gemini.Model)
	assert.Equal(t, "postgres://localhost/resume_pilot", cfg.DatabaseURL)
}
