package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/citectx/extract"
	"github.com/tsawler/citectx/htmldoc"
	"github.com/tsawler/citectx/model"
)

func TestDefaults(t *testing.T) {
	c := New()

	assert.Equal(t, 0, c.Workers())
	assert.Equal(t, "jsonl", c.Sink())
	assert.Equal(t, "-", c.Out())
	assert.Empty(t, c.Source())
	assert.Equal(t, "info", c.Logging().Level)

	cfg, err := c.ExtractConfig()
	require.NoError(t, err)
	want := extract.DefaultConfig()
	assert.Equal(t, want.MinParagraphChars, cfg.MinParagraphChars)
	assert.Equal(t, want.ImageDenylist, cfg.ImageDenylist)
	assert.Equal(t, want.Stopwords.Sorted(), cfg.Stopwords.Sorted())
	assert.Equal(t, htmldoc.NavigationExclusionNone, cfg.Navigation)
	assert.Equal(t, model.KindUnknown, cfg.Only)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
workers: 8
sink: sqlite
out: entities.db
base-url: "https://mirror.example.org/{id}/"
log:
  level: debug
  format: json
extract:
  min-paragraph-chars: 40
  extra-stopwords: [dataset, results]
  navigation: standard
  only: figure
`), 0o644))

	c := New()
	require.NoError(t, c.Load(path))
	assert.Equal(t, path, c.FileUsed())

	assert.Equal(t, 8, c.Workers())
	assert.Equal(t, "sqlite", c.Sink())
	assert.Equal(t, "entities.db", c.Out())
	assert.Equal(t, "https://mirror.example.org/{id}/", c.BaseURL())
	assert.Equal(t, "debug", c.Logging().Level)
	assert.Equal(t, "json", c.Logging().Format)

	cfg, err := c.ExtractConfig()
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.MinParagraphChars)
	assert.True(t, cfg.Stopwords.Contains("dataset"))
	assert.True(t, cfg.Stopwords.Contains("the"))
	assert.Equal(t, htmldoc.NavigationExclusionStandard, cfg.Navigation)
	assert.Equal(t, model.KindFigure, cfg.Only)
}

func TestLoad_MissingDefaultFile(t *testing.T) {
	t.Chdir(t.TempDir())

	c := New()
	require.NoError(t, c.Load(""))
	assert.Empty(t, c.FileUsed())
}

func TestLoad_DefaultFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultFile), []byte("workers: 3\n"), 0o644))

	c := New()
	require.NoError(t, c.Load(""))
	assert.Equal(t, 3, c.Workers())
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	c := New()
	assert.Error(t, c.Load(filepath.Join(t.TempDir(), "nope.yaml")))
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workers: 8\nextract:\n  min-image-pixels: 50\n"), 0o644))

	t.Setenv("CITECTX_WORKERS", "2")
	t.Setenv("CITECTX_EXTRACT_MIN_IMAGE_PIXELS", "300")
	t.Setenv("CITECTX_LOG_LEVEL", "warn")

	c := New()
	require.NoError(t, c.Load(path))
	assert.Equal(t, 2, c.Workers())
	assert.Equal(t, "warn", c.Logging().Level)

	cfg, err := c.ExtractConfig()
	require.NoError(t, err)
	assert.Equal(t, 300, cfg.MinImagePixels)
}

func TestExtractConfig_Invalid(t *testing.T) {
	c := New()
	c.Viper().Set(KeyNavigation, "everything")
	_, err := c.ExtractConfig()
	assert.ErrorContains(t, err, KeyNavigation)

	c = New()
	c.Viper().Set(KeyOnly, "equation")
	_, err = c.ExtractConfig()
	assert.ErrorContains(t, err, KeyOnly)
}
